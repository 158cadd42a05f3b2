package models

// DashboardStats is the response of /api/dashboard/stats.
type DashboardStats struct {
	TodayInvoices int64   `json:"today_invoices"`
	TotalSales    float64 `json:"total_sales"`
	LowStockItems int64   `json:"low_stock_items"`
}
