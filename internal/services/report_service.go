package services

import (
	"bytes"
	"context"
	"fmt"

	"boutique-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders the yearly sales report as a PDF.
type ReportService struct {
	Analytics *AnalyticsService
}

func NewReportService(analytics *AnalyticsService) *ReportService {
	return &ReportService{Analytics: analytics}
}

// YearlySalesReport builds a one-page PDF: headline figures for the
// year plus a month-by-month table and the top products.
func (s *ReportService) YearlySalesReport(ctx context.Context, systemID, year int) ([]byte, error) {
	yearly, err := s.Analytics.YearlyMetrics(ctx, systemID, year)
	if err != nil {
		return nil, err
	}
	months, err := s.Analytics.MonthlySeries(ctx, systemID, year)
	if err != nil {
		return nil, err
	}
	top, err := s.Analytics.TopProducts(ctx, systemID, true)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Sales Report %d", year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, fmt.Sprintf("Sales Report %d", year))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Cell(0, 6, "Generated "+timeutil.Now().Format(timeutil.DisplayLayout))
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Year at a glance")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(60, 7, fmt.Sprintf("Gross sales: $%.2f", yearly.GrossSales))
	pdf.Cell(60, 7, fmt.Sprintf("Revenue earned: $%.2f", yearly.RevenueEarned))
	pdf.Cell(60, 7, fmt.Sprintf("Net sales: $%.2f", yearly.NetSales))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Monthly breakdown")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(45, 7, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 7, "Gross sales", "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, "Revenue earned", "1", 0, "R", true, 0, "")
	pdf.CellFormat(45, 7, "Net sales", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range months {
		pdf.CellFormat(45, 7, m.Period, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("$%.2f", m.GrossSales), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("$%.2f", m.RevenueEarned), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, fmt.Sprintf("$%.2f", m.NetSales), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	if len(top) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Top products")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 10)
		for i, tp := range top {
			pdf.Cell(0, 6, fmt.Sprintf("%d. %s (%d sold)", i+1, tp.ProductName, tp.Sales))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
