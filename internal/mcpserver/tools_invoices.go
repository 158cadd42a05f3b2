package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

// invoiceSummary is the compact invoice shape returned by listing tools.
type invoiceSummary struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	TotalAmount  string `json:"total_amount"`
	CreatedAt    string `json:"created_at"`
}

type invoiceLine struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         string `json:"qty"`
	PriceAtAdd  string `json:"price_at_add"`
	LineTotal   string `json:"line_total"`
}

type invoiceDetail struct {
	invoiceSummary
	CustomerID int64         `json:"customer_id"`
	Items      []invoiceLine `json:"items"`
}

func summarizeInvoice(inv *models.Invoice) invoiceSummary {
	return invoiceSummary{
		ID:           inv.ID,
		CustomerName: inv.CustomerName,
		Status:       inv.Status,
		TotalAmount:  string(inv.TotalAmount),
		CreatedAt:    inv.CreatedAt,
	}
}

func detailInvoice(inv *models.Invoice) invoiceDetail {
	d := invoiceDetail{
		invoiceSummary: summarizeInvoice(inv),
		CustomerID:     inv.Customer,
		Items:          make([]invoiceLine, 0, len(inv.Items)),
	}
	for _, item := range inv.Items {
		d.Items = append(d.Items, invoiceLine{
			ID:          item.ID,
			ProductID:   item.Product,
			ProductName: item.ProductName,
			Qty:         string(item.Qty),
			PriceAtAdd:  string(item.PriceAtAdd),
			LineTotal:   string(item.LineTotal),
		})
	}
	return d
}

type createInvoiceInput struct {
	CustomerID int64 `json:"customer_id" jsonschema:"Customer the invoice is for"`
}

func (s *server) handleCreateInvoice(ctx context.Context, _ *mcpsdk.CallToolRequest, input createInvoiceInput) (*mcpsdk.CallToolResult, invoiceDetail, error) {
	if input.CustomerID <= 0 {
		return nil, invoiceDetail{}, fmt.Errorf("customer_id is required")
	}
	inv, err := s.upstream.CreateInvoice(ctx, input.CustomerID)
	if err != nil {
		return nil, invoiceDetail{}, err
	}
	return nil, detailInvoice(inv), nil
}

type getInvoiceInput struct {
	InvoiceID int64 `json:"invoice_id" jsonschema:"Invoice id"`
}

func (s *server) handleGetInvoice(ctx context.Context, _ *mcpsdk.CallToolRequest, input getInvoiceInput) (*mcpsdk.CallToolResult, invoiceDetail, error) {
	if input.InvoiceID <= 0 {
		return nil, invoiceDetail{}, fmt.Errorf("invoice_id is required")
	}
	inv, err := s.upstream.Invoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, invoiceDetail{}, err
	}
	return nil, detailInvoice(inv), nil
}

type addItemToInvoiceInput struct {
	InvoiceID int64  `json:"invoice_id" jsonschema:"Draft invoice id"`
	ProductID int64  `json:"product_id" jsonschema:"Product to add"`
	Qty       string `json:"qty" jsonschema:"Quantity as a decimal string, e.g. \"2\" or \"1.5\""`
}

func (s *server) handleAddItemToInvoice(ctx context.Context, _ *mcpsdk.CallToolRequest, input addItemToInvoiceInput) (*mcpsdk.CallToolResult, invoiceDetail, error) {
	if input.InvoiceID <= 0 || input.ProductID <= 0 {
		return nil, invoiceDetail{}, fmt.Errorf("invoice_id and product_id are required")
	}
	if input.Qty == "" {
		return nil, invoiceDetail{}, fmt.Errorf("qty is required")
	}
	inv, err := s.upstream.AddInvoiceItem(ctx, input.InvoiceID, input.ProductID, models.Amount(input.Qty))
	if err != nil {
		return nil, invoiceDetail{}, err
	}
	return nil, detailInvoice(inv), nil
}

type confirmInvoiceInput struct {
	InvoiceID int64 `json:"invoice_id" jsonschema:"Draft invoice id"`
}

type confirmInvoiceOutput struct {
	InvoiceID int64  `json:"invoice_id"`
	Status    string `json:"status"`
}

func (s *server) handleConfirmInvoice(ctx context.Context, _ *mcpsdk.CallToolRequest, input confirmInvoiceInput) (*mcpsdk.CallToolResult, confirmInvoiceOutput, error) {
	if input.InvoiceID <= 0 {
		return nil, confirmInvoiceOutput{}, fmt.Errorf("invoice_id is required")
	}
	res, err := s.upstream.ConfirmInvoice(ctx, input.InvoiceID)
	if err != nil {
		return nil, confirmInvoiceOutput{}, err
	}
	return nil, confirmInvoiceOutput{InvoiceID: res.InvoiceID, Status: res.Status}, nil
}

type getRecentInvoicesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum invoices to return (default 10)"`
}

type invoiceListOutput struct {
	Invoices []invoiceSummary `json:"invoices"`
	Count    int              `json:"count"`
}

func (s *server) handleGetRecentInvoices(ctx context.Context, _ *mcpsdk.CallToolRequest, input getRecentInvoicesInput) (*mcpsdk.CallToolResult, invoiceListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	page, err := s.upstream.Invoices(ctx, client.ListOptions{Ordering: "-created_at"})
	if err != nil {
		return nil, invoiceListOutput{}, err
	}
	out := invoiceListOutput{Count: page.Count}
	for i := range page.Results {
		if i >= limit {
			break
		}
		out.Invoices = append(out.Invoices, summarizeInvoice(&page.Results[i]))
	}
	return nil, out, nil
}

type searchInvoicesInput struct {
	Query string `json:"query" jsonschema:"Search term, e.g. a customer name"`
}

func (s *server) handleSearchInvoices(ctx context.Context, _ *mcpsdk.CallToolRequest, input searchInvoicesInput) (*mcpsdk.CallToolResult, invoiceListOutput, error) {
	if input.Query == "" {
		return nil, invoiceListOutput{}, fmt.Errorf("query is required")
	}
	page, err := s.upstream.Invoices(ctx, client.ListOptions{Search: input.Query})
	if err != nil {
		return nil, invoiceListOutput{}, err
	}
	out := invoiceListOutput{Count: page.Count}
	for i := range page.Results {
		out.Invoices = append(out.Invoices, summarizeInvoice(&page.Results[i]))
	}
	return nil, out, nil
}
