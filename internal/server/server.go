// Package server exposes the proposal engine over HTTP for webhook callers.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/energiaa/solarproposal/internal/config"
	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/internal/report"
	"github.com/energiaa/solarproposal/pkg/artifact"
	"github.com/energiaa/solarproposal/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger    *zap.Logger
	conf      *config.Configuration
	outputDir string
	maxBody   int64
	version   string
	now       func() time.Time
}

// NewHandler constructs the HTTP handler that serves the proposal API.
func NewHandler(logger *zap.Logger, conf *config.Configuration, srvCfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:    logger,
		conf:      conf,
		outputDir: srvCfg.OutputDir,
		maxBody:   srvCfg.BodySizeBytes(),
		version:   trimmedVersion,
		now:       time.Now,
	}

	mux := http.NewServeMux()

	// Proposal API endpoint (webhook callers)
	mux.HandleFunc("/api/proposal", h.handleProposal)

	// Version endpoint for caller metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Generated artifacts
	mux.Handle("/media/", http.StripPrefix("/media/", http.FileServer(http.Dir(srvCfg.OutputDir))))

	return mux
}

type proposalRequest struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	// InvoiceAmount is accepted as text so callers may send values the way
	// customers type them ("439.85", "R$ 439,85").
	InvoiceAmount string `json:"invoiceAmount"`
}

type proposalResponse struct {
	Status         string            `json:"status"`
	Message        string            `json:"message"`
	ArtifactName   string            `json:"artifactName"`
	ArtifactURL    string            `json:"artifactUrl"`
	ArtifactBase64 string            `json:"artifactBase64"`
	Report         reportPayload     `json:"report"`
	Scenarios      []scenarioPayload `json:"scenarios"`
}

type reportPayload struct {
	FullName                string  `json:"fullName"`
	Address                 string  `json:"address"`
	InvoiceAmount           float64 `json:"invoiceAmount"`
	EstimatedConsumptionKwh float64 `json:"estimatedConsumptionKwh"`
	MinimumConsumptionKwh   float64 `json:"minimumConsumptionKwh"`
	Baseline                string  `json:"baseline"`
	GeneratedAt             string  `json:"generatedAt"`
}

type scenarioPayload struct {
	Flag             string  `json:"flag"`
	Severity         int     `json:"severity"`
	AdjustedTariff   float64 `json:"adjustedTariff"`
	CostWithoutSolar float64 `json:"costWithoutSolar"`
	CostWithSolar    float64 `json:"costWithSolar"`
	MonthlySavings   float64 `json:"monthlySavings"`
	AnnualSavings    float64 `json:"annualSavings"`
	FiveYearSavings  float64 `json:"fiveYearSavings"`
}

func (h *handler) handleProposal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req proposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBody))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	name, err := validation.ValidateCustomerName(req.FullName)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	address, err := validation.ValidateCustomerAddress(req.Address)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	invoice, err := validation.ParseInvoiceAmount(req.InvoiceAmount)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("proposal requested",
		zap.String("op", "server.handleProposal"),
		zap.String("customer", name),
		zap.Float64("invoiceAmount", invoice),
	)

	profile, err := h.conf.ResolveProfile(invoice)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	rep, err := engine.BuildReport(
		engine.CustomerInput{FullName: name, Address: address, InvoiceAmount: invoice},
		profile,
		h.conf.SurchargeTable(),
		h.conf.SolarDiscountRate(),
	)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	generatedAt := h.now()
	pdfBytes, err := report.BuildProposalPDF(rep, report.Meta{
		GeneratedAt:     generatedAt,
		DiscountPercent: h.conf.Contract.SolarDiscountPercent,
		Version:         h.version,
	})
	if err != nil {
		h.logger.Error("failed to render proposal",
			zap.String("op", "server.handleProposal"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to render proposal")
		return
	}

	mediaName := artifact.UniqueMediaName(generatedAt, "pdf")
	if _, err := artifact.Write(h.outputDir, mediaName, pdfBytes); err != nil {
		h.logger.Error("failed to store proposal artifact",
			zap.String("op", "server.handleProposal"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to store proposal artifact")
		return
	}

	resp := proposalResponse{
		Status:         "ok",
		Message:        "proposal generated",
		ArtifactName:   mediaName,
		ArtifactURL:    "/media/" + mediaName,
		ArtifactBase64: base64.StdEncoding.EncodeToString(pdfBytes),
		Report: reportPayload{
			FullName:                rep.Customer.FullName,
			Address:                 rep.Customer.Address,
			InvoiceAmount:           rep.Customer.InvoiceAmount,
			EstimatedConsumptionKwh: rep.BaselineScenario().EstimatedConsumptionKwh,
			MinimumConsumptionKwh:   rep.Profile.MinimumConsumptionKwh,
			Baseline:                rep.Baseline.String(),
			GeneratedAt:             generatedAt.Format(time.RFC3339),
		},
	}
	for _, scenario := range rep.Scenarios {
		resp.Scenarios = append(resp.Scenarios, scenarioPayload{
			Flag:             scenario.Flag.String(),
			Severity:         scenario.Flag.Severity(),
			AdjustedTariff:   scenario.AdjustedTariff,
			CostWithoutSolar: scenario.CostWithoutSolar,
			CostWithSolar:    scenario.CostWithSolar,
			MonthlySavings:   scenario.MonthlySavings,
			AnnualSavings:    scenario.AnnualSavings,
			FiveYearSavings:  scenario.FiveYearSavings,
		})
	}

	h.logger.Info("proposal generated",
		zap.String("op", "server.handleProposal"),
		zap.String("artifact", mediaName),
		zap.Duration("duration", time.Since(start)),
	)
	h.writeJSON(w, http.StatusOK, resp)
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

// respondEngineError maps the engine's typed failures onto HTTP statuses:
// caller mistakes are 400, configuration faults are 500.
func (h *handler) respondEngineError(w http.ResponseWriter, err error) {
	var inputErr *engine.InvalidInputError
	if errors.As(err, &inputErr) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var confErr *engine.InvalidConfigurationError
	if errors.As(err, &confErr) {
		h.logger.Error("configuration rejected by engine",
			zap.String("op", "server.respondEngineError"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error())
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
