// Package api serves statement extraction over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxUploadMemory is the multipart memory budget; larger uploads spill to disk.
const maxUploadMemory = 32 << 20

// Config holds the API server configuration
type Config struct {
	Port            string
	DefaultTextOnly bool
	Extraction      config.Config
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	extraction, err := config.Default()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to empty extraction config")
		extraction = &config.Config{}
	}
	return Config{
		Port:       ":8080",
		Extraction: *extraction,
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	mux    *http.ServeMux
	log    zerolog.Logger
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
		log:    log.With().Str("component", "api").Logger(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/extract", s.handleExtract)
	s.mux.HandleFunc("/classify", s.handleClassify)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.config.Port).Msg("starting server")
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ExtractOptions holds the options for extraction
type ExtractOptions struct {
	StatementOnly   bool
	TransactionOnly bool
	TextOnly        bool
	StatementType   string
}

func (s *Server) parseExtractOptions(r *http.Request) ExtractOptions {
	opts := ExtractOptions{
		StatementOnly:   flag(r, "statement_only"),
		TransactionOnly: flag(r, "transaction_only"),
		TextOnly:        flag(r, "text_only"),
		StatementType:   coalesce(r.FormValue("statement_type"), r.URL.Query().Get("statement_type")),
	}
	if !opts.TextOnly && s.config.DefaultTextOnly && r.FormValue("text_only") == "" && r.URL.Query().Get("text_only") == "" {
		opts.TextOnly = true
	}
	return opts
}

// readUpload returns the uploaded "file" part of a multipart POST.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*bytes.Reader, string, bool) {
	s.log.Debug().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Msg("request")

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, "", false
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.log.Warn().Err(err).Msg("error parsing multipart form")
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.log.Warn().Err(err).Msg("error getting file from form")
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.log.Error().Err(err).Msg("error reading file bytes")
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return nil, "", false
	}

	return bytes.NewReader(data), header.Filename, true
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	reader, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	opts := s.parseExtractOptions(r)
	if opts.TextOnly {
		s.handleTextOnlyExtract(w, reader, filename)
		return
	}

	override := common.ParseStatementType(opts.StatementType)
	statement, err := extractor.ProcessReader(reader, filename, s.config.Extraction, override)
	if err != nil {
		s.writeError(w, filename, err)
		return
	}

	writeJSON(w, http.StatusOK, extractor.CreateFinalOutput(statement, opts.TransactionOnly, opts.StatementOnly))
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	reader, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	src, err := common.NewPDFSource(reader)
	if err != nil {
		s.writeError(w, filename, err)
		return
	}
	statementType, err := extractor.ClassifySource(filename, src, s.config.Extraction.Classifier)
	if err != nil {
		s.writeError(w, filename, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"filename":       filename,
		"statement_type": string(statementType),
	})
}

func (s *Server) handleTextOnlyExtract(w http.ResponseWriter, reader *bytes.Reader, filename string) {
	src, err := common.NewPDFSource(reader)
	if err != nil {
		s.writeError(w, filename, err)
		return
	}
	pages, err := common.AllPageText(src)
	if err != nil {
		s.writeError(w, filename, err)
		return
	}

	lines := make([]string, 0)
	for _, page := range pages {
		lines = append(lines, page...)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"filename": filename,
		"text":     strings.Join(lines, "\n"),
	})
}

// writeError answers 500 for missing settings and 422 for anything else.
func (s *Server) writeError(w http.ResponseWriter, filename string, err error) {
	status := http.StatusUnprocessableEntity
	var cerr *common.ConfigError
	if errors.As(err, &cerr) {
		status = http.StatusInternalServerError
	}

	s.log.Warn().Err(err).Str("source", filename).Int("status", status).Msg("extraction failed")
	writeJSON(w, status, map[string]string{
		"filename": filename,
		"error":    err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func flag(r *http.Request, name string) bool {
	return r.FormValue(name) == "true" || r.URL.Query().Get(name) == "true"
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
