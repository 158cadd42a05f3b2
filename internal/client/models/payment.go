package models

type Payment struct {
	ID                   int64  `json:"id"`
	Company              int64  `json:"company"`
	Customer             int64  `json:"customer"`
	CustomerName         string `json:"customer_name"`
	Invoice              *int64 `json:"invoice"`
	Amount               Amount `json:"amount"`
	PaymentMethod        string `json:"payment_method"`
	PaymentMethodDisplay string `json:"payment_method_display"`
	PaymentDate          string `json:"payment_date"`
	Notes                string `json:"notes"`
	CreatedBy            *int64 `json:"created_by"`
}

// NewPayment is the create payload for /api/v1/payments/.
type NewPayment struct {
	Customer      int64  `json:"customer"`
	Invoice       *int64 `json:"invoice,omitempty"`
	Amount        Amount `json:"amount"`
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CustomerBalance is the server-computed reconciliation row. The balance
// figures here are authoritative; client-side sums are display hints only.
type CustomerBalance struct {
	ID            int64  `json:"id"`
	Company       int64  `json:"company"`
	Customer      int64  `json:"customer"`
	CustomerName  string `json:"customer_name"`
	TotalInvoiced Amount `json:"total_invoiced"`
	TotalPaid     Amount `json:"total_paid"`
	TotalReturns  Amount `json:"total_returns"`
	Balance       Amount `json:"balance"`
	LastUpdated   string `json:"last_updated"`
}
