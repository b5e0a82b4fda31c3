package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-importer/internal/infra/spreadsheet"
	"github.com/xavierca1/ligue-importer/internal/usecase"
)

const maxUploadSize = 32 << 20 // 32 MB

// ImportHandler recebe o upload da planilha, roda a importação completa e
// devolve o resumo. Os relatórios gerados ficam disponíveis para download
// por run_id.
type ImportHandler struct {
	RunUC      *usecase.ImportRunUseCase
	ReportsDir string
	Log        *zap.Logger
}

func NewImportHandler(runUC *usecase.ImportRunUseCase, reportsDir string, log *zap.Logger) *ImportHandler {
	return &ImportHandler{
		RunUC:      runUC,
		ReportsDir: reportsDir,
		Log:        log,
	}
}

type ImportResponse struct {
	Summary *usecase.Summary `json:"summary"`
	Reports map[string]string `json:"reports"`
}

// Handle (POST /import) recebe o multipart com o campo "file".
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "upload inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "campo 'file' é obrigatório", http.StatusBadRequest)
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "arquivo não é um xlsx válido: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer workbook.Close()

	source, err := spreadsheet.NewReaderFromFile(workbook, h.Log)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.Log.Info("importação via upload iniciada",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	summary, err := h.RunUC.Execute(r.Context(), source)
	if err != nil {
		if usecase.IsDomainError(err) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	middleware.RecordImportRun(summary.TotalRegistros, summary.TotalErros, summary.ContratosImportados)

	resp := ImportResponse{
		Summary: summary,
		Reports: map[string]string{
			"success": "/import/reports/success.xlsx",
			"errors":  "/import/reports/errors.xlsx",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// HandleReport (GET /import/reports/{name}) serve o último relatório gerado.
func (h *ImportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != "success.xlsx" && name != "errors.xlsx" {
		http.Error(w, "relatório desconhecido", http.StatusNotFound)
		return
	}

	path := filepath.Join(h.ReportsDir, name)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "relatório ainda não gerado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}
