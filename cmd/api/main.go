package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/infra/database"
	"github.com/xavierca1/ligue-importer/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-importer/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-importer/internal/infra/logger"
	"github.com/xavierca1/ligue-importer/internal/infra/queue"
	"github.com/xavierca1/ligue-importer/internal/infra/spreadsheet"
	"github.com/xavierca1/ligue-importer/internal/usecase"
)

func main() {
	godotenv.Load()

	log, err := logger.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "ligue-importer-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("erro ao conectar no banco", zap.Error(err))
	}
	defer db.Close()

	reportsDir := os.Getenv("REPORTS_DIR")
	if reportsDir == "" {
		reportsDir = "reports"
	}
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		log.Fatal("erro ao criar diretório de relatórios", zap.Error(err))
	}

	store := database.NewStore(db, log)
	validator := usecase.NewRowValidator(log)
	rowImporter := usecase.NewImportRowUseCase(store, validator, log)
	reports := spreadsheet.NewReportWriter(
		filepath.Join(reportsDir, "success.xlsx"),
		filepath.Join(reportsDir, "errors.xlsx"),
		log,
	)

	runUC := usecase.NewImportRunUseCase(rowImporter, reports, log)
	runUC.ErrorReportPath = filepath.Join(reportsDir, "errors.xlsx")

	var amqpConn *amqp.Connection
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(amqpURL)
		if err != nil {
			log.Fatal("erro ao conectar no RabbitMQ", zap.Error(err))
		}
		defer rabbitMQ.Close()
		runUC.Queue = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		amqpConn = rabbitMQ.Conn
	}

	importHandler := handlers.NewImportHandler(runUC, reportsDir, log)
	healthHandler := handlers.NewHealthHandler(db, amqpConn)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/import", importHandler.Handle)
	r.Get("/import/reports/{name}", importHandler.HandleReport)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("servidor de importação no ar", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal("servidor encerrou com erro", zap.Error(err))
	}
}
