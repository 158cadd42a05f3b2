package models

// Invoice statuses as the backend defines them.
const (
	InvoiceDraft     = "draft"
	InvoiceConfirmed = "confirmed"
	InvoiceCancelled = "cancelled"
)

type InvoiceItem struct {
	ID          int64  `json:"id"`
	Product     int64  `json:"product"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"product_sku"`
	Qty         Amount `json:"qty"`
	PriceAtAdd  Amount `json:"price_at_add"`
	LineTotal   Amount `json:"line_total"`
	UnitDisplay string `json:"unit_display"`
	Measurement string `json:"measurement"`
	CreatedAt   string `json:"created_at"`
}

type Invoice struct {
	ID              int64         `json:"id"`
	Company         int64         `json:"company"`
	CompanyName     string        `json:"company_name"`
	CompanyCode     string        `json:"company_code"`
	Customer        int64         `json:"customer"`
	CustomerName    string        `json:"customer_name"`
	CustomerPhone   string        `json:"customer_phone"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerAddress string        `json:"customer_address"`
	Status          string        `json:"status"`
	CreatedAt       string        `json:"created_at"`
	TotalAmount     Amount        `json:"total_amount"`
	Items           []InvoiceItem `json:"items"`
}

// InvoiceConfirmation is the confirm action response.
type InvoiceConfirmation struct {
	InvoiceID int64  `json:"invoice_id"`
	Status    string `json:"status"`
}
