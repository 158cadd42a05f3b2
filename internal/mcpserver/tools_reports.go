package mcpserver

import (
	"context"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

type getDashboardStatsInput struct{}

type dashboardStatsOutput struct {
	TodayInvoices int64   `json:"today_invoices"`
	TotalSales    float64 `json:"total_sales"`
	LowStockItems int64   `json:"low_stock_items"`
}

func (s *server) handleGetDashboardStats(ctx context.Context, _ *mcpsdk.CallToolRequest, _ getDashboardStatsInput) (*mcpsdk.CallToolResult, dashboardStatsOutput, error) {
	stats, err := s.upstream.DashboardStats(ctx)
	if err != nil {
		return nil, dashboardStatsOutput{}, err
	}
	return nil, dashboardStatsOutput{
		TodayInvoices: stats.TodayInvoices,
		TotalSales:    stats.TotalSales,
		LowStockItems: stats.LowStockItems,
	}, nil
}

type getInventoryReportInput struct {
	LowStockThreshold int64 `json:"low_stock_threshold,omitempty" jsonschema:"Stock level at or below which a product counts as low (default 5)"`
}

type lowStockProduct struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	StockQty int64  `json:"stock_qty"`
}

type inventoryReportOutput struct {
	ProductCount    int               `json:"product_count"`
	TotalStockValue float64           `json:"total_stock_value"`
	LowStock        []lowStockProduct `json:"low_stock"`
}

// handleGetInventoryReport aggregates the full product catalog client-side;
// the backend has no dedicated report endpoint.
func (s *server) handleGetInventoryReport(ctx context.Context, _ *mcpsdk.CallToolRequest, input getInventoryReportInput) (*mcpsdk.CallToolResult, inventoryReportOutput, error) {
	threshold := input.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	out := inventoryReportOutput{}
	for page := 1; ; page++ {
		res, err := s.upstream.Products(ctx, client.ListOptions{Page: page})
		if err != nil {
			return nil, inventoryReportOutput{}, err
		}
		for _, p := range res.Results {
			out.ProductCount++
			out.TotalStockValue += p.Price.Float64() * float64(p.StockQty)
			if p.StockQty <= threshold {
				out.LowStock = append(out.LowStock, lowStockProduct{ID: p.ID, Name: p.Name, StockQty: p.StockQty})
			}
		}
		if !res.HasNext() {
			break
		}
	}
	sort.Slice(out.LowStock, func(i, j int) bool { return out.LowStock[i].StockQty < out.LowStock[j].StockQty })
	return nil, out, nil
}

type getSalesReportInput struct {
	MaxPages int `json:"max_pages,omitempty" jsonschema:"Upper bound on invoice pages to scan (default 10)"`
}

type customerSales struct {
	CustomerName string  `json:"customer_name"`
	Invoices     int     `json:"invoices"`
	Total        float64 `json:"total"`
}

type salesReportOutput struct {
	ConfirmedInvoices int             `json:"confirmed_invoices"`
	TotalAmount       float64         `json:"total_amount"`
	ByCustomer        []customerSales `json:"by_customer"`
	Truncated         bool            `json:"truncated,omitempty"`
}

// handleGetSalesReport sums confirmed invoices. Totals are computed from
// server-reported invoice amounts; the page bound keeps huge tenants from
// turning one tool call into an unbounded crawl.
func (s *server) handleGetSalesReport(ctx context.Context, _ *mcpsdk.CallToolRequest, input getSalesReportInput) (*mcpsdk.CallToolResult, salesReportOutput, error) {
	maxPages := input.MaxPages
	if maxPages <= 0 {
		maxPages = 10
	}

	out := salesReportOutput{}
	byCustomer := map[string]*customerSales{}

	for page := 1; ; page++ {
		if page > maxPages {
			out.Truncated = true
			break
		}
		res, err := s.upstream.Invoices(ctx, client.ListOptions{Page: page, Ordering: "-created_at"})
		if err != nil {
			return nil, salesReportOutput{}, err
		}
		for i := range res.Results {
			inv := &res.Results[i]
			if inv.Status != models.InvoiceConfirmed {
				continue
			}
			amount := inv.TotalAmount.Float64()
			out.ConfirmedInvoices++
			out.TotalAmount += amount

			cs, ok := byCustomer[inv.CustomerName]
			if !ok {
				cs = &customerSales{CustomerName: inv.CustomerName}
				byCustomer[inv.CustomerName] = cs
			}
			cs.Invoices++
			cs.Total += amount
		}
		if !res.HasNext() {
			break
		}
	}

	for _, cs := range byCustomer {
		out.ByCustomer = append(out.ByCustomer, *cs)
	}
	sort.Slice(out.ByCustomer, func(i, j int) bool { return out.ByCustomer[i].Total > out.ByCustomer[j].Total })
	return nil, out, nil
}
