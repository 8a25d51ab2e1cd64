package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpgo/retirement-optimizer/internal/calculation"
	"github.com/rpgo/retirement-optimizer/internal/config"
	"github.com/rpgo/retirement-optimizer/internal/domain"
	"github.com/rpgo/retirement-optimizer/internal/output"
)

const maxBodyBytes = 1 << 20

var errRatesFile = errors.New("rates_file is not accepted over HTTP; send rates inline")

// contentTypes maps report formats to response content types.
var contentTypes = map[string]string{
	"console":      "text/plain; charset=utf-8",
	"console-lite": "text/plain; charset=utf-8",
	"csv":          "text/csv; charset=utf-8",
	"detailed-csv": "text/csv; charset=utf-8",
	"html":         "text/html; charset=utf-8",
	"json":         "application/json",
}

// Handler serves the calculator over HTTP.
type Handler struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger calculation.Logger
}

func NewHandler(engine *calculation.CalculationEngine, logger calculation.Logger) *Handler {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Handler{engine: engine, parser: config.NewInputParser(), logger: logger}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/fixed-growth", h.Scenario(domain.KindFixedGrowth))
	mux.HandleFunc("/v1/variable-growth", h.Scenario(domain.KindVariableGrowth))
	mux.HandleFunc("/v1/longevity", h.Scenario(domain.KindLongevity))
	mux.HandleFunc("/v1/max-withdrawal", h.Scenario(domain.KindMaxWithdrawal))
	mux.HandleFunc("/v1/report", h.Report)
	mux.HandleFunc("/healthz", h.Health)
	return mux
}

// Scenario runs one calculation of the given kind. The kind in the body, if
// any, is replaced by the route's.
func (h *Handler) Scenario(kind domain.ScenarioKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var sc domain.Scenario
		if err := decodeBody(w, r, &sc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		sc.Kind = kind
		if sc.Name == "" {
			sc.Name = string(kind)
		}
		if err := h.validate(&sc); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := h.engine.RunScenario(r.Context(), &domain.Configuration{}, &sc)
		if err != nil {
			h.logger.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// Report runs a whole configuration. The optional format query parameter selects
// any registered report format (default json).
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", output.ErrUnsupportedFormat, format))
		return
	}

	var cfg domain.Configuration
	if err := decodeBody(w, r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := h.parser.ValidateConfiguration(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].RatesFile != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("scenario %d: %v", i, errRatesFile))
			return
		}
	}
	cfg.Assumptions.DataPath = ""

	report, err := h.engine.RunScenarios(r.Context(), &cfg)
	if err != nil {
		h.logger.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := formatter.Format(report)
	if err != nil {
		h.logger.Errorf("format %s: %v", formatter.Name(), err)
		writeError(w, http.StatusInternalServerError, "failed to render report")
		return
	}
	w.Header().Set("Content-Type", contentTypes[formatter.Name()])
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validate(sc *domain.Scenario) error {
	if sc.RatesFile != "" {
		return errRatesFile
	}
	return h.parser.ValidateScenario(sc)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": strings.TrimSpace(msg)})
}
