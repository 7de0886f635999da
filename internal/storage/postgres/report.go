package postgres

import (
	"context"
	"time"

	"github.com/mymedina/commerce/internal/domain/model"
)

type reportRepository struct {
	storage *Storage
}

// SalesReport aggregates realized revenue between from and to inclusive.
// Orders count towards revenue once paid; the paid timestamp falls back to the
// creation timestamp for rows migrated before the paid_at column existed.
func (r *reportRepository) SalesReport(ctx context.Context, from, to time.Time) (*model.SalesReport, error) {
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())
	report := &model.SalesReport{From: from, To: end}

	const summaryQuery = `SELECT COUNT(id), COALESCE(SUM(total), 0)
                          FROM orders
                          WHERE status = ANY($1)
                            AND COALESCE(paid_at, created_at) BETWEEN $2 AND $3`
	err := r.storage.pool.QueryRow(ctx, summaryQuery, revenueStatuses(), from, end).
		Scan(&report.Summary.TotalTransactions, &report.Summary.TotalRevenue)
	if err != nil {
		return nil, err
	}

	const dailyQuery = `SELECT TO_CHAR(COALESCE(paid_at, created_at), 'YYYY-MM-DD') AS day,
                               COUNT(id), COALESCE(SUM(total), 0)
                        FROM orders
                        WHERE status = ANY($1)
                          AND COALESCE(paid_at, created_at) BETWEEN $2 AND $3
                        GROUP BY day
                        ORDER BY day`
	rows, err := r.storage.pool.Query(ctx, dailyQuery, revenueStatuses(), from, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Date, &d.Count, &d.Total); err != nil {
			return nil, err
		}
		report.DailySales = append(report.DailySales, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const productQuery = `SELECT oi.product_name,
                                 COALESCE(SUM(oi.quantity), 0),
                                 COALESCE(SUM(oi.subtotal), 0) AS revenue
                          FROM order_items oi
                          JOIN orders o ON o.id = oi.order_id
                          WHERE o.status = ANY($1)
                            AND COALESCE(o.paid_at, o.created_at) BETWEEN $2 AND $3
                          GROUP BY oi.product_name
                          ORDER BY revenue DESC
                          LIMIT 10`
	productRows, err := r.storage.pool.Query(ctx, productQuery, revenueStatuses(), from, end)
	if err != nil {
		return nil, err
	}
	defer productRows.Close()
	for productRows.Next() {
		var p model.ProductSales
		if err := productRows.Scan(&p.ProductName, &p.QuantitySold, &p.TotalRevenue); err != nil {
			return nil, err
		}
		report.ProductSales = append(report.ProductSales, p)
	}
	if err := productRows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}

func revenueStatuses() []string {
	statuses := make([]string, 0, len(model.RevenueStatuses))
	for _, s := range model.RevenueStatuses {
		statuses = append(statuses, string(s))
	}
	return statuses
}
