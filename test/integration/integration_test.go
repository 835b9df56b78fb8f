package integration

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/energiaa/solarproposal/internal/config"
	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/internal/report"
	"github.com/energiaa/solarproposal/pkg/artifact"
	"github.com/energiaa/solarproposal/pkg/testutil"
	"github.com/energiaa/solarproposal/pkg/validation"
)

// TestProposalPipeline runs the full path a one-shot invocation takes: load
// configuration, validate the customer, resolve the tariff tier, build the
// report and render the proposal artifact.
func TestProposalPipeline(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if _, err := conf.ValidateConfiguration(); err != nil {
		t.Fatalf("ValidateConfiguration() error = %v", err)
	}

	name, err := validation.ValidateCustomerName("Marcos da Silva Santos")
	if err != nil {
		t.Fatalf("ValidateCustomerName() error = %v", err)
	}
	address, err := validation.ValidateCustomerAddress("Rua das Flores, 124 - Centro")
	if err != nil {
		t.Fatalf("ValidateCustomerAddress() error = %v", err)
	}
	amount, err := validation.ParseInvoiceAmount("R$ 439,85")
	if err != nil {
		t.Fatalf("ParseInvoiceAmount() error = %v", err)
	}

	profile, err := conf.ResolveProfile(amount)
	if err != nil {
		t.Fatalf("ResolveProfile() error = %v", err)
	}
	// 439.85 falls in the middle tier.
	if profile.PublicLightingFee != 61.67 || profile.MinimumConsumptionKwh != 50 {
		t.Fatalf("resolved profile = %+v, expected middle tier", profile)
	}

	rep, err := engine.BuildReport(engine.CustomerInput{
		FullName:      name,
		Address:       address,
		InvoiceAmount: amount,
	}, profile, conf.SurchargeTable(), conf.SolarDiscountRate())
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(rep.Scenarios) != len(engine.AllFlags()) {
		t.Fatalf("scenario count = %d, expected %d", len(rep.Scenarios), len(engine.AllFlags()))
	}

	// The baseline reconstructs the invoice: consumption*baseRate + fee.
	baseline := testutil.FindScenario(rep, "none")
	if baseline == nil {
		t.Fatal("baseline scenario missing")
	}
	if math.Abs(baseline.CostWithoutSolar-439.85) > 0.01 {
		t.Errorf("baseline costWithoutSolar = %v, expected 439.85", baseline.CostWithoutSolar)
	}
	if math.Abs(baseline.MonthlySavings-87.97) > 0.01 {
		t.Errorf("baseline monthlySavings = %v, expected 87.97", baseline.MonthlySavings)
	}

	// Savings grow with flag severity; five-year figures stay flat multiples.
	for i, s := range rep.Scenarios {
		if i > 0 && s.MonthlySavings <= rep.Scenarios[i-1].MonthlySavings {
			t.Errorf("monthlySavings not increasing at %s", s.Flag)
		}
		if math.Abs(s.FiveYearSavings-60*s.MonthlySavings) > 0.01 {
			t.Errorf("fiveYearSavings = %v, expected 60x monthly for %s", s.FiveYearSavings, s.Flag)
		}
	}

	// Render and store the proposal the way the webhook does.
	pdfBytes, err := report.BuildProposalPDF(rep, report.Meta{
		GeneratedAt:     time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC),
		DiscountPercent: conf.Contract.SolarDiscountPercent,
		Version:         "test",
	})
	if err != nil {
		t.Fatalf("BuildProposalPDF() error = %v", err)
	}
	if !strings.HasPrefix(string(pdfBytes), "%PDF") {
		t.Fatal("rendered artifact is not a PDF")
	}

	dir := t.TempDir()
	fileName := artifact.ProposalFileName(rep.Customer.FullName, "pdf")
	path, err := artifact.Write(dir, fileName, pdfBytes)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	stored, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read stored artifact: %v", err)
	}
	if len(stored) != len(pdfBytes) {
		t.Errorf("stored artifact size = %d, expected %d", len(stored), len(pdfBytes))
	}
	if fileName != "simulacao_Marcos_da_Silva_Santos.pdf" {
		t.Errorf("artifact name = %q", fileName)
	}
}
