package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

type paymentOutput struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	InvoiceID    *int64 `json:"invoice_id,omitempty"`
	Amount       string `json:"amount"`
	Method       string `json:"method,omitempty"`
	Date         string `json:"date,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

func toPaymentOutput(p *models.Payment) paymentOutput {
	return paymentOutput{
		ID:           p.ID,
		CustomerID:   p.Customer,
		CustomerName: p.CustomerName,
		InvoiceID:    p.Invoice,
		Amount:       string(p.Amount),
		Method:       p.PaymentMethod,
		Date:         p.PaymentDate,
		Notes:        p.Notes,
	}
}

type createPaymentInput struct {
	CustomerID int64  `json:"customer_id" jsonschema:"Customer making the payment"`
	Amount     string `json:"amount" jsonschema:"Payment amount as a decimal string"`
	InvoiceID  *int64 `json:"invoice_id,omitempty" jsonschema:"Optional invoice the payment settles"`
	Method     string `json:"method,omitempty" jsonschema:"Payment method, e.g. cash or transfer"`
	Notes      string `json:"notes,omitempty" jsonschema:"Optional free-text note"`
}

func (s *server) handleCreatePayment(ctx context.Context, _ *mcpsdk.CallToolRequest, input createPaymentInput) (*mcpsdk.CallToolResult, paymentOutput, error) {
	if input.CustomerID <= 0 {
		return nil, paymentOutput{}, fmt.Errorf("customer_id is required")
	}
	if input.Amount == "" {
		return nil, paymentOutput{}, fmt.Errorf("amount is required")
	}
	p, err := s.upstream.CreatePayment(ctx, models.NewPayment{
		Customer:      input.CustomerID,
		Invoice:       input.InvoiceID,
		Amount:        models.Amount(input.Amount),
		PaymentMethod: input.Method,
		Notes:         input.Notes,
	})
	if err != nil {
		return nil, paymentOutput{}, err
	}
	return nil, toPaymentOutput(p), nil
}

type getPaymentsInput struct {
	Search string `json:"search,omitempty" jsonschema:"Optional search term, e.g. a customer name"`
}

type paymentListOutput struct {
	Payments []paymentOutput `json:"payments"`
	Count    int             `json:"count"`
}

func (s *server) handleGetPayments(ctx context.Context, _ *mcpsdk.CallToolRequest, input getPaymentsInput) (*mcpsdk.CallToolResult, paymentListOutput, error) {
	page, err := s.upstream.Payments(ctx, client.ListOptions{Search: input.Search, Ordering: "-payment_date"})
	if err != nil {
		return nil, paymentListOutput{}, err
	}
	out := paymentListOutput{Count: page.Count}
	for i := range page.Results {
		out.Payments = append(out.Payments, toPaymentOutput(&page.Results[i]))
	}
	return nil, out, nil
}

type getCustomerPaymentsInput struct {
	CustomerID int64 `json:"customer_id" jsonschema:"Customer whose payments to list"`
}

func (s *server) handleGetCustomerPayments(ctx context.Context, _ *mcpsdk.CallToolRequest, input getCustomerPaymentsInput) (*mcpsdk.CallToolResult, paymentListOutput, error) {
	if input.CustomerID <= 0 {
		return nil, paymentListOutput{}, fmt.Errorf("customer_id is required")
	}
	page, err := s.upstream.Payments(ctx, client.ListOptions{Ordering: "-payment_date"})
	if err != nil {
		return nil, paymentListOutput{}, err
	}
	out := paymentListOutput{}
	for i := range page.Results {
		if page.Results[i].Customer != input.CustomerID {
			continue
		}
		out.Payments = append(out.Payments, toPaymentOutput(&page.Results[i]))
	}
	out.Count = len(out.Payments)
	return nil, out, nil
}

type getCustomerBalanceInput struct {
	CustomerID int64 `json:"customer_id" jsonschema:"Customer whose balance to fetch"`
}

type customerBalanceOutput struct {
	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	TotalInvoiced string `json:"total_invoiced"`
	TotalPaid     string `json:"total_paid"`
	TotalReturns  string `json:"total_returns"`
	Balance       string `json:"balance"`
}

func (s *server) handleGetCustomerBalance(ctx context.Context, _ *mcpsdk.CallToolRequest, input getCustomerBalanceInput) (*mcpsdk.CallToolResult, customerBalanceOutput, error) {
	if input.CustomerID <= 0 {
		return nil, customerBalanceOutput{}, fmt.Errorf("customer_id is required")
	}
	page, err := s.upstream.Balances(ctx, client.ListOptions{})
	if err != nil {
		return nil, customerBalanceOutput{}, err
	}
	for _, b := range page.Results {
		if b.Customer != input.CustomerID {
			continue
		}
		return nil, customerBalanceOutput{
			CustomerID:    b.Customer,
			CustomerName:  b.CustomerName,
			TotalInvoiced: string(b.TotalInvoiced),
			TotalPaid:     string(b.TotalPaid),
			TotalReturns:  string(b.TotalReturns),
			Balance:       string(b.Balance),
		}, nil
	}
	return nil, customerBalanceOutput{}, fmt.Errorf("no balance record for customer %d", input.CustomerID)
}
