package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

type returnOutput struct {
	ID           int64  `json:"id"`
	ReturnNumber string `json:"return_number"`
	InvoiceID    int64  `json:"invoice_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	TotalAmount  string `json:"total_amount"`
	Notes        string `json:"notes,omitempty"`
}

func toReturnOutput(r *models.Return) returnOutput {
	return returnOutput{
		ID:           r.ID,
		ReturnNumber: r.ReturnNumber,
		InvoiceID:    r.OriginalInvoice,
		CustomerName: r.CustomerName,
		Status:       r.Status,
		TotalAmount:  string(r.TotalAmount),
		Notes:        r.Notes,
	}
}

type returnItemInput struct {
	ItemID int64  `json:"item_id" jsonschema:"Line item id from the original invoice"`
	Qty    string `json:"qty" jsonschema:"Quantity returned as a decimal string"`
}

type createReturnInput struct {
	InvoiceID int64             `json:"invoice_id" jsonschema:"Confirmed invoice the return is against"`
	Items     []returnItemInput `json:"items" jsonschema:"Lines being returned"`
	Notes     string            `json:"notes,omitempty" jsonschema:"Optional reason for the return"`
}

func (s *server) handleCreateReturn(ctx context.Context, _ *mcpsdk.CallToolRequest, input createReturnInput) (*mcpsdk.CallToolResult, returnOutput, error) {
	if input.InvoiceID <= 0 {
		return nil, returnOutput{}, fmt.Errorf("invoice_id is required")
	}
	if len(input.Items) == 0 {
		return nil, returnOutput{}, fmt.Errorf("at least one item is required")
	}
	req := models.NewReturn{Invoice: input.InvoiceID, Notes: input.Notes}
	for _, item := range input.Items {
		if item.ItemID <= 0 || item.Qty == "" {
			return nil, returnOutput{}, fmt.Errorf("each item needs item_id and qty")
		}
		req.Items = append(req.Items, models.NewReturnItem{
			ItemID:      item.ItemID,
			QtyReturned: models.Amount(item.Qty),
		})
	}
	r, err := s.upstream.CreateReturn(ctx, req)
	if err != nil {
		return nil, returnOutput{}, err
	}
	return nil, toReturnOutput(r), nil
}

type getReturnsInput struct {
	Search string `json:"search,omitempty" jsonschema:"Optional search term"`
}

type returnListOutput struct {
	Returns []returnOutput `json:"returns"`
	Count   int            `json:"count"`
}

func (s *server) handleGetReturns(ctx context.Context, _ *mcpsdk.CallToolRequest, input getReturnsInput) (*mcpsdk.CallToolResult, returnListOutput, error) {
	page, err := s.upstream.Returns(ctx, client.ListOptions{Search: input.Search})
	if err != nil {
		return nil, returnListOutput{}, err
	}
	out := returnListOutput{Count: page.Count}
	for i := range page.Results {
		out.Returns = append(out.Returns, toReturnOutput(&page.Results[i]))
	}
	return nil, out, nil
}

type approveReturnInput struct {
	ReturnID int64 `json:"return_id" jsonschema:"Pending return id"`
}

func (s *server) handleApproveReturn(ctx context.Context, _ *mcpsdk.CallToolRequest, input approveReturnInput) (*mcpsdk.CallToolResult, returnOutput, error) {
	if input.ReturnID <= 0 {
		return nil, returnOutput{}, fmt.Errorf("return_id is required")
	}
	r, err := s.upstream.ApproveReturn(ctx, input.ReturnID)
	if err != nil {
		return nil, returnOutput{}, err
	}
	return nil, toReturnOutput(r), nil
}
