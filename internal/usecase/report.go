package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	domainErrors "github.com/mymedina/commerce/internal/domain/errors"
	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/domain/repository"
)

// ReportUseCase builds owner-facing sales reports.
type ReportUseCase struct {
	reports repository.ReportRepository
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports}
}

// SalesReport aggregates sales between two dates, inclusive. An empty range
// defaults to the last 30 days.
func (u *ReportUseCase) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if from.After(to) {
		return nil, domainErrors.NewValidation("report start date must not be after end date")
	}
	return u.reports.SalesReport(ctx, from, to)
}

// RenderCSV serializes a sales report into a CSV export.
func (u *ReportUseCase) RenderCSV(report *model.SalesReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Sales Report", report.From.Format("2006-01-02"), report.To.Format("2006-01-02")},
		{},
		{"Total Transactions", strconv.Itoa(report.Summary.TotalTransactions)},
		{"Total Revenue", formatAmount(report.Summary.TotalRevenue)},
		{},
		{"Date", "Transactions", "Revenue"},
	}
	for _, day := range report.DailySales {
		rows = append(rows, []string{day.Date, strconv.Itoa(day.Count), formatAmount(day.Total)})
	}
	rows = append(rows, []string{}, []string{"Product", "Quantity Sold", "Revenue"})
	for _, product := range report.ProductSales {
		rows = append(rows, []string{
			product.ProductName,
			strconv.Itoa(product.QuantitySold),
			formatAmount(product.TotalRevenue),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
