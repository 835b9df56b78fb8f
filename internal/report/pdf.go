// Package report renders EconomyReport figures into proposal artifacts. It
// formats what the engine computed and derives no financial figure of its own.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/pkg/format"
)

// Meta carries presentation-only details alongside the report.
type Meta struct {
	GeneratedAt     time.Time
	DiscountPercent float64
	Version         string
}

var monthsPtBR = [...]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

func referenceMonth(t time.Time) string {
	return fmt.Sprintf("%s/%d", monthsPtBR[t.Month()-1], t.Year())
}

// BuildProposalPDF renders the customer proposal: identity header, savings
// summary, before/after invoice tables, the tariff flag spread, and a bar
// chart comparing both scenarios.
func BuildProposalPDF(rep engine.EconomyReport, meta Meta) ([]byte, error) {
	baseline := rep.BaselineScenario()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Proposta de Energia Solar por Assinatura"))
	pdf.Ln(12)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 6, tr(rep.Customer.FullName))
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(rep.Customer.Address))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Referência: %s", referenceMonth(meta.GeneratedAt))))
	pdf.Ln(10)

	// Savings summary
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Economia estimada com %.0f%% de deságio", meta.DiscountPercent)))
	pdf.Ln(9)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Mensal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Anual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Em 5 anos", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 7, tr(format.BRL(baseline.MonthlySavings)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, tr(format.BRL(baseline.AnnualSavings)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, tr(format.BRL(baseline.FiveYearSavings)), "1", 0, "C", false, 0, "")
	pdf.Ln(12)

	drawInvoiceTable(pdf, tr, "(Antes) Fatura SEM geração solar", rep, baseline, baseline.CostWithoutSolar)
	drawInvoiceTable(pdf, tr, "(Depois) Fatura COM geração solar", rep, baseline, baseline.CostWithSolar)
	drawFlagSpread(pdf, tr, rep)
	drawComparisonChart(pdf, tr, rep, baseline)

	pdf.SetY(-20)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Gerado em %s · solarproposal %s",
		meta.GeneratedAt.Format("02/01/2006 15:04"), meta.Version)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render proposal PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawInvoiceTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, rep engine.EconomyReport, scenario engine.ScenarioResult, total float64) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(9)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(80, 6, tr("Itens da fatura"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Unid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Quant", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr("Preço unit."), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Valor", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(80, 6, tr("Consumo médio mensal"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "kWh", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, tr(fmt.Sprintf("%.0f", scenario.EstimatedConsumptionKwh)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(format.Tariff(scenario.AdjustedTariff)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(format.BRL(scenario.EnergyCost)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.CellFormat(80, 6, tr("Contribuição iluminação pública (CIP)"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, tr(format.BRL(rep.Profile.PublicLightingFee)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(160, 6, "TOTAL A PAGAR", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(format.BRL(total)), "1", 0, "R", false, 0, "")
	pdf.Ln(10)
}

func drawFlagSpread(pdf *gofpdf.Fpdf, tr func(string) string, rep engine.EconomyReport) {
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, tr("Economia por bandeira tarifária"))
	pdf.Ln(9)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 6, "Bandeira", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, "Tarifa (R$/kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Mensal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Anual", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Em 5 anos", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, scenario := range rep.Scenarios {
		pdf.CellFormat(40, 6, tr(flagLabel(scenario.Flag)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(fmt.Sprintf("%.6f", scenario.AdjustedTariff)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(format.BRL(scenario.MonthlySavings)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, tr(format.BRL(scenario.AnnualSavings)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, tr(format.BRL(scenario.FiveYearSavings)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func flagLabel(flag engine.TariffFlag) string {
	switch flag {
	case engine.FlagNone:
		return "Verde (sem bandeira)"
	case engine.FlagYellow:
		return "Amarela"
	case engine.FlagRedTier1:
		return "Vermelha patamar 1"
	case engine.FlagRedTier2:
		return "Vermelha patamar 2"
	case engine.FlagWaterScarcity:
		return "Escassez hídrica"
	}
	return flag.String()
}

// drawComparisonChart draws two stacked bars (lighting fee + energy charge)
// scaled against the higher total, with the solar bar reduced by the
// contracted discount.
func drawComparisonChart(pdf *gofpdf.Fpdf, tr func(string) string, rep engine.EconomyReport, baseline engine.ScenarioResult) {
	const (
		chartX      = 30.0
		chartHeight = 55.0
		barWidth    = 30.0
		gap         = 50.0
	)

	// Rect does not trigger the automatic page break, so reserve the room
	// the chart needs up front.
	if _, pageHeight := pdf.GetPageSize(); pdf.GetY() > pageHeight-chartHeight-45 {
		pdf.AddPage()
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, tr("Comparativo mensal"))
	pdf.Ln(10)

	top := pdf.GetY()
	baseY := top + chartHeight
	maxTotal := baseline.CostWithoutSolar
	if maxTotal <= 0 {
		return
	}
	scale := chartHeight / maxTotal

	bars := []struct {
		label string
		total float64
		fee   float64
		r, g  int
		b     int
	}{
		{"SEM solar", baseline.CostWithoutSolar, rep.Profile.PublicLightingFee, 209, 29, 5},
		{"COM solar", baseline.CostWithSolar, rep.Profile.PublicLightingFee, 0, 176, 80},
	}

	x := chartX
	for _, bar := range bars {
		feeHeight := bar.fee * scale
		energyHeight := (bar.total - bar.fee) * scale
		if energyHeight < 0 {
			energyHeight = 0
		}

		// Lighting fee segment at the bottom, energy charge above it.
		pdf.SetFillColor(252, 136, 0)
		pdf.Rect(x, baseY-feeHeight, barWidth, feeHeight, "F")
		pdf.SetFillColor(bar.r, bar.g, bar.b)
		pdf.Rect(x, baseY-feeHeight-energyHeight, barWidth, energyHeight, "F")

		pdf.SetFont("Arial", "B", 9)
		pdf.SetXY(x-10, baseY+2)
		pdf.CellFormat(barWidth+20, 5, tr(bar.label), "", 0, "C", false, 0, "")
		pdf.SetXY(x-10, baseY+7)
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(barWidth+20, 5, tr(format.BRL(bar.total)), "", 0, "C", false, 0, "")

		x += barWidth + gap
	}

	pdf.SetXY(chartX, baseY+14)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, tr("Laranja: iluminação pública · Colorido: consumo faturado"), "", 0, "L", false, 0, "")
	pdf.Ln(10)
}
