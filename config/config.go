package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	BaseURL     string

	AccessSecret string
	// WebhookSecret empty means webhook signature checking is disabled.
	// That is an explicit operational choice, logged loudly at runtime.
	WebhookSecret string

	CloudinaryUrl string

	GmailUser        string
	GmailAppPassword string
	MailFrom         string
	MailFromName     string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:       os.Getenv("SERVER_PORT"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		BaseURL:          os.Getenv("FRONTEND_BASE_URL"),
		AccessSecret:     os.Getenv("ACCESS_SECRET"),
		WebhookSecret:    os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
		CloudinaryUrl:    os.Getenv("CLOUDINARY_URL"),
		GmailUser:        os.Getenv("GMAIL_USER"),
		GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailFromName:     os.Getenv("MAIL_FROM_NAME"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		KafkaTopic:       os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:    os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:    os.Getenv("KAFKA_PASSWORD"),
	}
}
