package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/infra/database"
	"github.com/xavierca1/ligue-importer/internal/infra/logger"
	"github.com/xavierca1/ligue-importer/internal/infra/mail"
	"github.com/xavierca1/ligue-importer/internal/infra/queue"
	"github.com/xavierca1/ligue-importer/internal/infra/spreadsheet"
	"github.com/xavierca1/ligue-importer/internal/usecase"
)

func main() {
	godotenv.Load()

	log, err := logger.NewLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), "ligue-importer")
	if err != nil {
		fmt.Fprintln(os.Stderr, "erro ao iniciar logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	inputPath := os.Getenv("IMPORT_FILE")
	if len(os.Args) > 1 {
		inputPath = os.Args[1]
	}
	if inputPath == "" {
		log.Fatal("informe a planilha: ligue-importer <arquivo.xlsx> ou IMPORT_FILE")
	}
	if _, err := os.Stat(inputPath); err != nil {
		log.Fatal("planilha não encontrada", zap.String("path", inputPath), zap.Error(err))
	}

	reportsDir := os.Getenv("REPORTS_DIR")
	if reportsDir == "" {
		reportsDir = "."
	}
	if err := os.MkdirAll(reportsDir, 0o755); err != nil {
		log.Fatal("erro ao criar diretório de relatórios", zap.Error(err))
	}
	successPath := filepath.Join(reportsDir, "import_totalregistros.xlsx")
	errorPath := filepath.Join(reportsDir, "import_erros.xlsx")

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal("erro ao conectar no banco", zap.Error(err))
	}
	defer db.Close()

	source, err := spreadsheet.NewReader(inputPath, log)
	if err != nil {
		log.Fatal("erro ao ler planilha", zap.Error(err))
	}

	store := database.NewStore(db, log)
	validator := usecase.NewRowValidator(log)
	rowImporter := usecase.NewImportRowUseCase(store, validator, log)
	reports := spreadsheet.NewReportWriter(successPath, errorPath, log)

	runUC := usecase.NewImportRunUseCase(rowImporter, reports, log)
	runUC.ErrorReportPath = errorPath

	// Notificações opcionais: fila e email só entram quando configurados.
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(amqpURL)
		if err != nil {
			log.Fatal("erro ao conectar no RabbitMQ", zap.Error(err))
		}
		defer rabbitMQ.Close()
		runUC.Queue = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}
	if mailTo := os.Getenv("REPORT_MAIL_TO"); mailTo != "" {
		port, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if port == 0 {
			port = 587
		}
		runUC.Mail = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), port,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
		runUC.MailTo = mailTo
	}

	summary, err := runUC.Execute(context.Background(), source)
	if err != nil {
		log.Fatal("importação abortada", zap.Error(err))
	}

	fmt.Printf("Importação %s concluída: %d registro(s), %d erro(s), %d contrato(s) importado(s)\n",
		summary.RunID, summary.TotalRegistros, summary.TotalErros, summary.ContratosImportados)
	if summary.TotalErros > 0 {
		fmt.Println("Relatório de erros:", errorPath)
	}
}
