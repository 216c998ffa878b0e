package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/leadloop/crm-backend/internal/infra/database"
	"github.com/leadloop/crm-backend/internal/infra/http/handlers"
	"github.com/leadloop/crm-backend/internal/infra/http/middleware"
	"github.com/leadloop/crm-backend/internal/infra/mail"
	"github.com/leadloop/crm-backend/internal/infra/queue"
	"github.com/leadloop/crm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	// 1. Repositories
	contactRepo := database.NewContactRepository(db)
	sessionRepo := database.NewSessionRepository(db)
	opportunityRepo := database.NewOpportunityRepository(db)
	dealRepo := database.NewDealRepository(db)
	feedbackRepo := database.NewFeedbackRepository(db)

	// 2. Email pipeline (optional: the API runs without AMQP/SMTP configured)
	var producer usecase.LeadEmailProducerInterface
	var rabbitMQ *queue.RabbitMQ
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		rabbitMQ, err = queue.NewRabbitMQ(amqpURL)
		if err != nil {
			logrus.WithError(err).Fatal("RabbitMQ connection failed")
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		smtpPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if smtpPort == 0 {
			smtpPort = 587
		}
		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"),
			smtpPort,
			os.Getenv("MAIL_USER"),
			os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
			os.Getenv("BRAND_NAME"),
			os.Getenv("PUBLIC_BASE_URL"),
			os.Getenv("TEMPLATE_DIR"),
		)

		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	} else {
		logrus.Warn("AMQP_URL not set, lead welcome emails disabled")
	}

	// 3. Lifecycle engine
	engine := usecase.NewLifecycleEngine(
		contactRepo, sessionRepo, opportunityRepo, dealRepo, feedbackRepo, producer,
	)

	// 4. Handlers
	contactHandler := handlers.NewContactHandler(engine)
	lifecycleHandler := handlers.NewLifecycleHandler(engine)
	sessionHandler := handlers.NewSessionHandler(engine)
	trackingHandler := handlers.NewTrackingHandler(engine)

	var amqpConn *amqp091.Connection
	if rabbitMQ != nil {
		amqpConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, amqpConn)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Post("/contacts", contactHandler.Create)
	r.Get("/contacts", contactHandler.List)
	r.Get("/contacts/{contactID}", contactHandler.Get)
	r.Patch("/contacts/{contactID}", contactHandler.Patch)
	r.Get("/contacts/{contactID}/history", contactHandler.History)
	r.Get("/contacts/{contactID}/financials", contactHandler.Financials)
	r.Post("/contacts/{contactID}/sessions", sessionHandler.Create)
	r.Post("/contacts/{contactID}/feedback", contactHandler.Feedback)

	r.Post("/contacts/{contactID}/promote-mql", lifecycleHandler.PromoteToMQL)
	r.Post("/contacts/{contactID}/promote-sql", lifecycleHandler.PromoteToSQL)
	r.Post("/contacts/{contactID}/opportunity", lifecycleHandler.ConvertToOpportunity)
	r.Post("/contacts/{contactID}/close-deal", lifecycleHandler.CloseDeal)
	r.Post("/contacts/{contactID}/evangelist", lifecycleHandler.ConvertToEvangelist)

	r.Get("/track/activity/{contactID}", trackingHandler.Activity)
	r.Get("/track/open/{contactID}/{token}", trackingHandler.Pixel)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("🔥 CRM API listening")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func allowedOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"http://localhost:5173"}
	}
	return strings.Split(origins, ",")
}
