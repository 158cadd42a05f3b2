package models

type Category struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Parent *int64 `json:"parent"`
}

type Product struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Price        Amount `json:"price"`
	StockQty     int64  `json:"stock_qty"`
	Category     int64  `json:"category"`
	CategoryName string `json:"category_name"`
	Unit         string `json:"unit"`
	UnitDisplay  string `json:"unit_display"`
	Measurement  string `json:"measurement"`
	Description  string `json:"description"`
	Archived     bool   `json:"archived"`
	CreatedAt    string `json:"created_at"`
}

// NewProduct is the create/update payload for /api/v1/products/.
type NewProduct struct {
	Name        string `json:"name"`
	SKU         string `json:"sku,omitempty"`
	Category    int64  `json:"category"`
	Price       Amount `json:"price"`
	StockQty    int64  `json:"stock_qty"`
	Unit        string `json:"unit,omitempty"`
	Measurement string `json:"measurement,omitempty"`
	Description string `json:"description,omitempty"`
}

type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Archived  bool   `json:"archived"`
	CreatedAt string `json:"created_at"`
}

// NewCustomer is the create/update payload for /api/v1/customers/.
type NewCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}
