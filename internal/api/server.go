package api

import (
	"log"

	"github.com/SemiSummit/registration_service/config"
	"github.com/SemiSummit/registration_service/infra/queue"
	"github.com/SemiSummit/registration_service/internal/api/rest/handlers"
	"github.com/SemiSummit/registration_service/internal/domain"
	"github.com/SemiSummit/registration_service/internal/helper"
	"github.com/SemiSummit/registration_service/internal/receipt"
	"github.com/SemiSummit/registration_service/internal/repository"
	"github.com/SemiSummit/registration_service/internal/services"
	"github.com/SemiSummit/registration_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization, X-Razorpay-Signature",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- Logger ----------
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260901

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Announcement{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	mailer := services.NewMailService(
		cfg.GmailUser,
		cfg.GmailAppPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.BaseURL,
	)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(
		userRepo,
		authHelper,
		mailer,
		kafkaProducer,
		cfg.BaseURL,
		logger,
	)
	verificationSvc := services.NewVerificationService(
		userRepo,
		authHelper,
		receipt.NewExtractor(),
		mailer,
		up,
		kafkaProducer,
		cfg.WebhookSecret,
		logger,
	)
	announcementSvc := services.NewAnnouncementService(announcementRepo)

	// ---------- Handlers ----------
	handlers.NewUserHandler(userSvc, authHelper).SetupRoutes(app)
	handlers.NewVerificationHandler(verificationSvc, authHelper).SetupRoutes(app)
	handlers.NewWebhookHandler(verificationSvc).SetupRoutes(app)
	handlers.NewAnnouncementHandler(announcementSvc, authHelper).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}
