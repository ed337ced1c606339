// Package server exposes the planning engine over HTTP for the wizard UI.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/launchessentials/finplan/internal/analytics"
	"github.com/launchessentials/finplan/internal/config"
	"github.com/launchessentials/finplan/internal/planner"
	"github.com/launchessentials/finplan/pkg/businessmodel"
	"github.com/launchessentials/finplan/pkg/constants"
	"github.com/launchessentials/finplan/pkg/faults"
	"github.com/launchessentials/finplan/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	recorder      *analytics.Recorder
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the planning API.
func NewHandler(logger *zap.Logger, recorder *analytics.Recorder, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = analytics.NewRecorder(logger)
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		recorder:      recorder,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Planning API endpoint for editor-driven JSON payloads
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Planning API endpoint for YAML plan file uploads
	mux.HandleFunc("/api/plan/upload", h.handlePlanUpload)

	// Business model template catalog for the wizard's model picker
	mux.HandleFunc("/api/templates", h.handleTemplates)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type planOptions struct {
	TargetRunwayMonths float64
}

type planResponse struct {
	Result   planner.Result      `json:"result"`
	Record   *planner.SaveRecord `json:"saveRecord,omitempty"`
	CSV      string              `json:"csv"`
	Warnings []string            `json:"warnings,omitempty"`
	Duration string              `json:"duration"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Category    string   `json:"category"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest,
			faults.Validationf("failed to decode plan payload: %v", err), "server.handlePlan")
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	configPayload := payload
	if rawConfig, ok := payload["config"]; ok {
		cfgMap, ok := rawConfig.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest,
				faults.Validationf("invalid config payload: expected object"), "server.handlePlan")
			return
		}
		configPayload = cfgMap
	}

	options := planOptions{}
	if rawOptions, ok := payload["options"]; ok {
		optsMap, ok := rawOptions.(map[string]interface{})
		if !ok {
			h.respondError(w, http.StatusBadRequest,
				faults.Validationf("invalid options payload: expected object"), "server.handlePlan")
			return
		}
		if runway, ok := optsMap["targetRunwayMonths"]; ok {
			options.TargetRunwayMonths = coerceFloat(runway)
		}
	}

	configBytes, err := yaml.Marshal(configPayload)
	if err != nil {
		h.respondError(w, http.StatusBadRequest,
			faults.Validationf("failed to encode plan payload: %v", err), "server.handlePlan")
		return
	}

	h.runPlan(w, configBytes, options, start, "server.handlePlan")
}

func (h *handler) handlePlanUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				faults.Validationf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handlePlanUpload")
			return
		}
		h.respondError(w, http.StatusBadRequest,
			faults.Validationf("failed to parse upload: %v", err), "server.handlePlanUpload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest,
			faults.Validationf("missing plan file"), "server.handlePlanUpload")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", "server.handlePlanUpload"),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError,
			faults.Persistence(fmt.Errorf("failed to read plan file: %w", err)), "server.handlePlanUpload")
		return
	}

	h.runPlan(w, buf.Bytes(), planOptions{}, start, "server.handlePlanUpload")
}

func (h *handler) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]businessmodel.BusinessModel{
		"templates": businessmodel.Templates(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) runPlan(w http.ResponseWriter, configBytes []byte, opts planOptions, start time.Time, op string) {
	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, faults.Validation(err), op)
		return
	}

	if opts.TargetRunwayMonths > 0 {
		cfg.Funding.TargetRunwayMonths = opts.TargetRunwayMonths
	}

	warnings := cfg.ValidateConfiguration()

	result, err := planner.Plan(h.logger, *cfg)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, faults.Validation(err), op)
		return
	}

	record := result.SaveRecord(cfg.CashFlow, time.Now())
	elapsed := time.Since(start)

	h.recorder.Record("plan_computed", map[string]interface{}{
		"model":       string(result.Model.Type),
		"periods":     len(result.Projection.Profit),
		"suggestions": len(result.Suggestions),
	})

	h.logger.Info("plan computed",
		zap.String("op", op),
		zap.String("model", string(result.Model.Type)),
		zap.Int("periods", len(result.Projection.Profit)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, planResponse{
		Result:   result,
		Record:   &record,
		CSV:      output.CsvString(result),
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, err error, op string) {
	classified := faults.Classify(err)

	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("category", string(classified.Category)),
		zap.Error(err),
	)

	h.writeJSON(w, status, errorResponse{
		Error:       err.Error(),
		Category:    string(classified.Category),
		Suggestions: classified.Suggestions,
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceFloat(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
	}
	return 0
}
