// Package server exposes the upload endpoint: registry export archives and
// company CSVs go in, an enriched CSV comes back.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/fetcher"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/registry"
)

//go:embed index.html
var templates embed.FS

var indexTmpl = template.Must(template.ParseFS(templates, "index.html"))

// maxUploadBytes bounds the multipart form size; monthly exports fit
// comfortably.
const maxUploadBytes = 512 << 20

// Runner executes the enrichment pipeline.
type Runner interface {
	EnrichEntities(ctx context.Context, entityIDs []string) (*pipeline.Output, error)
	EnrichCompanies(ctx context.Context, recs []model.CompanyRecord) (*pipeline.Output, error)
}

// Server handles uploads and serves the enriched CSV back.
type Server struct {
	runner  Runner
	rules   registry.FilterRules
	logFile string
}

// New builds a Server. logFile may be empty, in which case /logs reports
// that no log file is configured.
func New(runner Runner, rules registry.FilterRules, logFile string) *Server {
	return &Server{runner: runner, rules: rules, logFile: logFile}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Get("/logs", s.handleLogs)
	r.Get("/health", s.handleHealth)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, nil); err != nil {
		zap.L().Error("server: render index", zap.Error(err))
	}
}

// handleUpload accepts either a registry export ZIP (full pipeline) or a
// single company CSV (classification path) under the multipart field "file"
// and responds with the enriched companies as a CSV attachment.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "reading upload failed", http.StatusBadRequest)
		return
	}

	var out *pipeline.Output
	if fetcher.IsArchive(data) {
		out, err = s.runArchive(r, data)
	} else {
		out, err = s.runCSV(r, data)
	}
	if err != nil {
		zap.L().Error("server: upload processing failed", zap.Error(err))
		http.Error(w, fmt.Sprintf("error processing file: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="cbe_website.csv"`)
	if err := export.WriteCompanies(w, out.Companies); err != nil {
		zap.L().Error("server: write response csv", zap.Error(err))
	}
}

func (s *Server) runArchive(r *http.Request, data []byte) (*pipeline.Output, error) {
	files, err := fetcher.ReadArchive(data)
	if err != nil {
		return nil, err
	}
	activity, ok := files[fetcher.ActivityFileName]
	if !ok {
		return nil, fmt.Errorf("archive is missing %s", fetcher.ActivityFileName)
	}
	if _, ok := files[fetcher.EnterpriseFileName]; !ok {
		return nil, fmt.Errorf("archive is missing %s", fetcher.EnterpriseFileName)
	}

	rows, err := fetcher.ParseActivityRows(r.Context(), bytes.NewReader(activity))
	if err != nil {
		return nil, err
	}
	entityIDs := registry.FilterEntities(rows, s.rules)
	zap.L().Info("server: archive upload",
		zap.Int("activity_rows", len(rows)),
		zap.Int("relevant_entities", len(entityIDs)))
	return s.runner.EnrichEntities(r.Context(), entityIDs)
}

func (s *Server) runCSV(r *http.Request, data []byte) (*pipeline.Output, error) {
	recs, err := fetcher.ParseCompanies(r.Context(), bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	zap.L().Info("server: csv upload", zap.Int("companies", len(recs)))
	return s.runner.EnrichCompanies(r.Context(), recs)
}

// handleLogs streams the configured log file as chunked plain text.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	if s.logFile == "" {
		http.Error(w, "no log file configured", http.StatusNotFound)
		return
	}
	f, err := os.Open(s.logFile)
	if err != nil {
		http.Error(w, "log file unavailable", http.StatusNotFound)
		return
	}
	defer f.Close() //nolint:errcheck

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}
