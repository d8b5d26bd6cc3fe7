package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gchange/internal/config"
	"github.com/sells-group/gchange/internal/export"
	"github.com/sells-group/gchange/internal/fetcher"
	"github.com/sells-group/gchange/internal/filter"
	"github.com/sells-group/gchange/internal/model"
	"github.com/sells-group/gchange/internal/nglist"
	"github.com/sells-group/gchange/internal/pipeline"
)

const (
	maxUploadBytes = 32 << 20
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for extraction and formatting",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c := *cfg
		c.Server.Port = resolvePort(servePort, cfg.Server.Port)
		if err := c.Validate("serve"); err != nil {
			return err
		}

		return startServer(ctx, buildRouter(&c), c.Server.Port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves h until ctx is cancelled, then shuts down gracefully.
func startServer(ctx context.Context, h http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return eris.Wrap(err, "server listen")
	}
	return nil
}

// api serves the HTTP endpoints. Every request builds its own Pipeline so
// NG list and industry mode can vary per call.
type api struct {
	cfg *config.Config
}

func buildRouter(c *config.Config) http.Handler {
	a := &api{cfg: c}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID", "X-Removed-Count"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/nglists", a.listNG)
		r.Post("/extract", a.extract)
		r.Post("/format", a.format)
		r.Post("/export", a.export)
	})

	return r
}

// requestLogger tags each request with an X-Request-ID and logs it once
// it completes.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		zap.L().Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (a *api) listNG(w http.ResponseWriter, r *http.Request) {
	lists, err := nglist.Discover(a.cfg.NG.Dir, a.cfg.NG.Pattern)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if lists == nil {
		lists = []nglist.List{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

func (a *api) extract(w http.ResponseWriter, r *http.Request) {
	res, _, ok := a.processUpload(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) format(w http.ResponseWriter, r *http.Request) {
	res, p, ok := a.processUpload(w, r)
	if !ok {
		return
	}
	writeWorkbook(w, p, res)
}

type exportRequest struct {
	Filename     string         `json:"filename"`
	NG           string         `json:"ng"`
	IndustryMode string         `json:"industry_mode"`
	Records      []model.Record `json:"records"`
}

func (a *api) export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "invalid request body"))
		return
	}

	p, status, err := a.pipelineFor(r.Context(), req.NG, req.IndustryMode)
	if err != nil {
		writeError(w, status, err)
		return
	}

	res := p.Refilter(req.Records)
	res.Path = req.Filename
	writeWorkbook(w, p, res)
}

// processUpload runs the uploaded workbook through a Pipeline. It writes
// the error response itself and reports ok=false on failure.
func (a *api) processUpload(w http.ResponseWriter, r *http.Request) (pipeline.FileResult, *pipeline.Pipeline, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "invalid multipart form"))
		return pipeline.FileResult{}, nil, false
	}

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "file is required"))
		return pipeline.FileResult{}, nil, false
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, eris.Wrap(err, "read upload"))
		return pipeline.FileResult{}, nil, false
	}

	p, status, err := a.pipelineFor(r.Context(), r.FormValue("ng"), r.FormValue("industry_mode"))
	if err != nil {
		writeError(w, status, err)
		return pipeline.FileResult{}, nil, false
	}

	wb, err := fetcher.ParseWorkbook(hdr.Filename, data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return pipeline.FileResult{}, nil, false
	}

	res := p.ProcessWorkbook(r.Context(), wb)
	if res.Err != nil {
		writeError(w, http.StatusUnprocessableEntity, res.Err)
		return pipeline.FileResult{}, nil, false
	}
	return res, p, true
}

// pipelineFor builds a Pipeline with per-request overrides and returns the
// HTTP status to use when that fails.
func (a *api) pipelineFor(ctx context.Context, ngName, industryMode string) (*pipeline.Pipeline, int, error) {
	c := *a.cfg
	if industryMode != "" {
		if _, err := filter.ParseIndustryMode(industryMode); err != nil {
			return nil, http.StatusBadRequest, err
		}
		c.Filter.IndustryMode = industryMode
	}

	p, err := initPipeline(ctx, &c, ngName)
	switch {
	case err == nil:
		return p, http.StatusOK, nil
	case errors.Is(err, nglist.ErrNotFound):
		return nil, http.StatusNotFound, err
	case errors.Is(err, nglist.ErrTooFewColumns):
		return nil, http.StatusUnprocessableEntity, err
	default:
		return nil, http.StatusInternalServerError, err
	}
}

func writeWorkbook(w http.ResponseWriter, p *pipeline.Pipeline, res pipeline.FileResult) {
	var buf bytes.Buffer
	if err := export.WriteTemplate(&buf, res.Records, p.Template()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	name := export.OutputName(res.Path)
	w.Header().Set("Content-Type", xlsxMediaType)
	w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	w.Header().Set("X-Removed-Count", strconv.Itoa(len(res.Removals)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
