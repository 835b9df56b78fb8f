package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/energiaa/solarproposal/internal/engine"
)

// BuildProposalXLSX renders the proposal as a workbook: a summary sheet with
// the baseline figures and a scenarios sheet with the full flag spread.
func BuildProposalXLSX(rep engine.EconomyReport, meta Meta) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	scenariosSheet := "scenarios"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(scenariosSheet); err != nil {
		return nil, fmt.Errorf("failed to create scenarios sheet: %w", err)
	}

	baseline := rep.BaselineScenario()

	_ = f.SetCellValue(summarySheet, "A1", "Solar Proposal")
	_ = f.SetCellValue(summarySheet, "A3", "Customer")
	_ = f.SetCellValue(summarySheet, "B3", rep.Customer.FullName)
	_ = f.SetCellValue(summarySheet, "A4", "Address")
	_ = f.SetCellValue(summarySheet, "B4", rep.Customer.Address)
	_ = f.SetCellValue(summarySheet, "A5", "Invoice Amount")
	_ = f.SetCellValue(summarySheet, "B5", rep.Customer.InvoiceAmount)
	_ = f.SetCellValue(summarySheet, "A6", "Estimated Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, "B6", baseline.EstimatedConsumptionKwh)
	_ = f.SetCellValue(summarySheet, "A7", "Minimum Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, "B7", rep.Profile.MinimumConsumptionKwh)
	_ = f.SetCellValue(summarySheet, "A8", "Public Lighting Fee")
	_ = f.SetCellValue(summarySheet, "B8", rep.Profile.PublicLightingFee)
	_ = f.SetCellValue(summarySheet, "A9", "Discount (%)")
	_ = f.SetCellValue(summarySheet, "B9", meta.DiscountPercent)
	_ = f.SetCellValue(summarySheet, "A10", "Monthly Savings")
	_ = f.SetCellValue(summarySheet, "B10", baseline.MonthlySavings)
	_ = f.SetCellValue(summarySheet, "A11", "Annual Savings")
	_ = f.SetCellValue(summarySheet, "B11", baseline.AnnualSavings)
	_ = f.SetCellValue(summarySheet, "A12", "Five-Year Savings")
	_ = f.SetCellValue(summarySheet, "B12", baseline.FiveYearSavings)
	_ = f.SetCellValue(summarySheet, "A13", "Generated")
	_ = f.SetCellValue(summarySheet, "B13", meta.GeneratedAt.Format("2006-01-02 15:04"))

	headers := []string{"Flag", "Severity", "Adjusted Tariff", "Cost Without Solar",
		"Cost With Solar", "Monthly Savings", "Annual Savings", "Five-Year Savings"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(scenariosSheet, cell, header)
	}
	for i, scenario := range rep.Scenarios {
		row := i + 2
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("A%d", row), scenario.Flag.String())
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("B%d", row), scenario.Flag.Severity())
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("C%d", row), scenario.AdjustedTariff)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("D%d", row), scenario.CostWithoutSolar)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("E%d", row), scenario.CostWithSolar)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("F%d", row), scenario.MonthlySavings)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("G%d", row), scenario.AnnualSavings)
		_ = f.SetCellValue(scenariosSheet, fmt.Sprintf("H%d", row), scenario.FiveYearSavings)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render proposal workbook: %w", err)
	}
	return buf.Bytes(), nil
}
