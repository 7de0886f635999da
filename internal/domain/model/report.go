package model

import "time"

// RevenueStatuses are the order statuses counted as realized revenue.
var RevenueStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
}

// SalesSummary aggregates transactions over a reporting period.
type SalesSummary struct {
	TotalTransactions int
	TotalRevenue      float64
}

// DailySales is revenue bucketed per calendar day.
type DailySales struct {
	Date  string
	Count int
	Total float64
}

// ProductSales is revenue attributed to a single product.
type ProductSales struct {
	ProductName  string
	QuantitySold int
	TotalRevenue float64
}

// SalesReport is the owner-facing sales report projection.
type SalesReport struct {
	From         time.Time
	To           time.Time
	Summary      SalesSummary
	DailySales   []DailySales
	ProductSales []ProductSales
}
