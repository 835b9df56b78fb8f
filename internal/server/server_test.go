package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/energiaa/solarproposal/internal/config"
	"github.com/energiaa/solarproposal/pkg/constants"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	srvCfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	srvCfg.OutputDir = t.TempDir()
	return NewHandler(zap.NewNop(), config.Default(), srvCfg, "test")
}

func postProposal(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/proposal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func TestHandleProposal(t *testing.T) {
	handler := newTestHandler(t)
	recorder := postProposal(t, handler, `{
		"fullName": "Marcos da Silva Santos Odete",
		"address": "Rua das Flores, 124 - Centro - Campo Grande/MS",
		"invoiceAmount": "439.85"
	}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Status         string `json:"status"`
		ArtifactName   string `json:"artifactName"`
		ArtifactURL    string `json:"artifactUrl"`
		ArtifactBase64 string `json:"artifactBase64"`
		Report         struct {
			InvoiceAmount           float64 `json:"invoiceAmount"`
			EstimatedConsumptionKwh float64 `json:"estimatedConsumptionKwh"`
			Baseline                string  `json:"baseline"`
		} `json:"report"`
		Scenarios []struct {
			Flag            string  `json:"flag"`
			MonthlySavings  float64 `json:"monthlySavings"`
			FiveYearSavings float64 `json:"fiveYearSavings"`
		} `json:"scenarios"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
	if !strings.HasPrefix(resp.ArtifactName, "proposta_") || !strings.HasSuffix(resp.ArtifactName, ".pdf") {
		t.Errorf("artifactName = %q", resp.ArtifactName)
	}
	if resp.ArtifactURL != "/media/"+resp.ArtifactName {
		t.Errorf("artifactUrl = %q", resp.ArtifactURL)
	}
	if resp.Report.Baseline != "none" {
		t.Errorf("baseline = %q", resp.Report.Baseline)
	}
	if resp.Report.InvoiceAmount != 439.85 {
		t.Errorf("invoiceAmount = %v", resp.Report.InvoiceAmount)
	}
	if len(resp.Scenarios) != 5 {
		t.Fatalf("scenario count = %d, expected 5", len(resp.Scenarios))
	}
	for i := 1; i < len(resp.Scenarios); i++ {
		if resp.Scenarios[i].MonthlySavings <= resp.Scenarios[i-1].MonthlySavings {
			t.Errorf("savings not increasing with severity at scenario %d", i)
		}
	}

	pdfBytes, err := base64.StdEncoding.DecodeString(resp.ArtifactBase64)
	if err != nil {
		t.Fatalf("artifactBase64 does not decode: %v", err)
	}
	if !strings.HasPrefix(string(pdfBytes), "%PDF") {
		t.Error("decoded artifact is not a PDF")
	}
}

func TestHandleProposalAcceptsBrazilianAmounts(t *testing.T) {
	handler := newTestHandler(t)
	recorder := postProposal(t, handler, `{
		"fullName": "Ana Paula Moreira",
		"address": "Avenida Afonso Pena, 2000 - Campo Grande/MS",
		"invoiceAmount": "R$ 1.234,56"
	}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Report struct {
			InvoiceAmount float64 `json:"invoiceAmount"`
		} `json:"report"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Report.InvoiceAmount != 1234.56 {
		t.Errorf("invoiceAmount = %v, expected 1234.56", resp.Report.InvoiceAmount)
	}
}

func TestHandleProposalValidation(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "Malformed JSON",
			body: `{`,
		},
		{
			name: "Short name",
			body: `{"fullName": "Jo", "address": "Rua das Flores, 124", "invoiceAmount": "100"}`,
		},
		{
			name: "Short address",
			body: `{"fullName": "Ana Paula", "address": "Rua X", "invoiceAmount": "100"}`,
		},
		{
			name: "Zero invoice",
			body: `{"fullName": "Ana Paula", "address": "Rua das Flores, 124", "invoiceAmount": "0"}`,
		},
		{
			name: "Invoice beyond maximum",
			body: `{"fullName": "Ana Paula", "address": "Rua das Flores, 124", "invoiceAmount": "123456.78"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postProposal(t, handler, tt.body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400, body = %s", recorder.Code, recorder.Body.String())
			}
		})
	}
}

func TestHandleProposalMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/proposal", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", recorder.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "test" {
		t.Errorf("version = %q", resp["version"])
	}
}

func TestHandleProposalBodyLimit(t *testing.T) {
	srvCfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	srvCfg.OutputDir = t.TempDir()
	srvCfg.MaxBodySize = "1KB"
	if err := srvCfg.normalize(); err != nil {
		t.Fatalf("normalize() error = %v", err)
	}
	handler := NewHandler(zap.NewNop(), config.Default(), srvCfg, "test")

	padding := strings.Repeat("x", 2*1024)
	recorder := postProposal(t, handler, `{"fullName": "`+padding+`", "address": "Rua das Flores, 124", "invoiceAmount": "100"}`)
	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413", recorder.Code)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("address = %q", cfg.Address)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("bodySizeBytes = %d", cfg.BodySizeBytes())
	}
	if cfg.OutputDir != constants.DefaultOutputDirectory {
		t.Errorf("outputDir = %q", cfg.OutputDir)
	}
}
