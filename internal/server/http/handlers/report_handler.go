package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mymedina/commerce/internal/domain/model"
	"github.com/mymedina/commerce/internal/server/http/dto"
)

// ReportHandler serves the owner-facing sales report.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Sales handles GET /api/reports/sales.
func (h *ReportHandler) Sales(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	report, err := h.facade.SalesReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSalesReportResponse(report))
}

// ExportCSV handles GET /api/reports/sales/export.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	from, to, ok := parseReportRange(c)
	if !ok {
		return
	}
	report, err := h.facade.SalesReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	body, err := h.facade.RenderSalesCSV(report)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := "sales-" + report.From.Format("20060102") + "-" + report.To.Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", body)
}

func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid from date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid to date, expected YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}

type salesSummaryResponse struct {
	TotalTransactions int     `json:"total_transactions"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type dailySalesResponse struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type productSalesResponse struct {
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

type salesReportResponse struct {
	From         string                 `json:"from"`
	To           string                 `json:"to"`
	Summary      salesSummaryResponse   `json:"summary"`
	DailySales   []dailySalesResponse   `json:"daily_sales"`
	ProductSales []productSalesResponse `json:"product_sales"`
}

func toSalesReportResponse(report *model.SalesReport) salesReportResponse {
	response := salesReportResponse{
		From: report.From.Format("2006-01-02"),
		To:   report.To.Format("2006-01-02"),
		Summary: salesSummaryResponse{
			TotalTransactions: report.Summary.TotalTransactions,
			TotalRevenue:      report.Summary.TotalRevenue,
		},
		DailySales:   make([]dailySalesResponse, 0, len(report.DailySales)),
		ProductSales: make([]productSalesResponse, 0, len(report.ProductSales)),
	}
	for _, day := range report.DailySales {
		response.DailySales = append(response.DailySales, dailySalesResponse{
			Date:  day.Date,
			Count: day.Count,
			Total: day.Total,
		})
	}
	for _, product := range report.ProductSales {
		response.ProductSales = append(response.ProductSales, productSalesResponse{
			ProductName:  product.ProductName,
			QuantitySold: product.QuantitySold,
			TotalRevenue: product.TotalRevenue,
		})
	}
	return response
}
