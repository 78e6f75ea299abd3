package queue

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic, username, password string) *Producer {
	if broker == "" || topic == "" {
		log.Println("Kafka not configured - lifecycle events will be skipped")
		return &Producer{}
	}

	mechanism := plain.Mechanism{
		Username: username,
		Password: password,
	}

	transport := &kafka.Transport{
		SASL: mechanism,
		TLS:  &tls.Config{},
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			Transport:    transport,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// PublishMessage is best-effort: registration and verification must not fail
// because the broker is down.
func (p *Producer) PublishMessage(key, value []byte) error {
	if p == nil || p.writer == nil {
		log.Println("Kafka producer not ready - skip publish")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
}
