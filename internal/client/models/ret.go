package models

// Return statuses as the backend defines them.
const (
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
)

type ReturnItem struct {
	ID           int64  `json:"id"`
	OriginalItem int64  `json:"original_item"`
	Product      int64  `json:"product"`
	ProductName  string `json:"product_name"`
	ProductSKU   string `json:"product_sku"`
	UnitDisplay  string `json:"unit_display"`
	QtyReturned  Amount `json:"qty_returned"`
	UnitPrice    Amount `json:"unit_price"`
	LineTotal    Amount `json:"line_total"`
	CreatedAt    string `json:"created_at"`
}

type Return struct {
	ID              int64        `json:"id"`
	Company         int64        `json:"company"`
	OriginalInvoice int64        `json:"original_invoice"`
	InvoiceID       int64        `json:"invoice_id"`
	Customer        int64        `json:"customer"`
	CustomerName    string       `json:"customer_name"`
	ReturnNumber    string       `json:"return_number"`
	ReturnDate      string       `json:"return_date"`
	Status          string       `json:"status"`
	Notes           string       `json:"notes"`
	TotalAmount     Amount       `json:"total_amount"`
	CreatedBy       *int64       `json:"created_by"`
	CreatedByName   string       `json:"created_by_name"`
	ApprovedBy      *int64       `json:"approved_by"`
	ApprovedByName  string       `json:"approved_by_name"`
	ApprovedAt      *string      `json:"approved_at"`
	Items           []ReturnItem `json:"items"`
}

// NewReturnItem references a line of the original invoice.
type NewReturnItem struct {
	ItemID      int64  `json:"item_id"`
	QtyReturned Amount `json:"qty_returned"`
}

// NewReturn is the create payload for /api/v1/returns/.
type NewReturn struct {
	Invoice int64           `json:"original_invoice"`
	Items   []NewReturnItem `json:"items"`
	Notes   string          `json:"notes,omitempty"`
}
