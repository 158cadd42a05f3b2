package mcpserver

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

type productOutput struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku,omitempty"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	StockQty     int64  `json:"stock_qty"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	Unit         string `json:"unit,omitempty"`
}

func toProductOutput(p *models.Product) productOutput {
	return productOutput{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Price:        string(p.Price),
		StockQty:     p.StockQty,
		CategoryID:   p.Category,
		CategoryName: p.CategoryName,
		Unit:         p.Unit,
	}
}

type getProductsInput struct {
	Search string `json:"search,omitempty" jsonschema:"Optional search term matched against name and SKU"`
}

type productListOutput struct {
	Products []productOutput `json:"products"`
	Count    int             `json:"count"`
}

func (s *server) handleGetProducts(ctx context.Context, _ *mcpsdk.CallToolRequest, input getProductsInput) (*mcpsdk.CallToolResult, productListOutput, error) {
	page, err := s.upstream.Products(ctx, client.ListOptions{Search: input.Search})
	if err != nil {
		return nil, productListOutput{}, err
	}
	out := productListOutput{Count: page.Count}
	for i := range page.Results {
		out.Products = append(out.Products, toProductOutput(&page.Results[i]))
	}
	return nil, out, nil
}

type addProductInput struct {
	Name       string `json:"name" jsonschema:"Product name"`
	CategoryID int64  `json:"category_id" jsonschema:"Category the product belongs to"`
	Price      string `json:"price" jsonschema:"Unit price as a decimal string"`
	StockQty   int64  `json:"stock_qty,omitempty" jsonschema:"Initial stock quantity"`
	SKU        string `json:"sku,omitempty" jsonschema:"Optional SKU; server generates one when omitted"`
	Unit       string `json:"unit,omitempty" jsonschema:"Unit of sale, e.g. piece or kg"`
}

func (s *server) handleAddProduct(ctx context.Context, _ *mcpsdk.CallToolRequest, input addProductInput) (*mcpsdk.CallToolResult, productOutput, error) {
	if input.Name == "" {
		return nil, productOutput{}, fmt.Errorf("name is required")
	}
	if input.CategoryID <= 0 {
		return nil, productOutput{}, fmt.Errorf("category_id is required")
	}
	if input.Price == "" {
		return nil, productOutput{}, fmt.Errorf("price is required")
	}
	p, err := s.upstream.CreateProduct(ctx, models.NewProduct{
		Name:     input.Name,
		SKU:      input.SKU,
		Category: input.CategoryID,
		Price:    models.Amount(input.Price),
		StockQty: input.StockQty,
		Unit:     input.Unit,
	})
	if err != nil {
		return nil, productOutput{}, err
	}
	return nil, toProductOutput(p), nil
}

type updateProductStockInput struct {
	ProductID int64 `json:"product_id" jsonschema:"Product id"`
	StockQty  int64 `json:"stock_qty" jsonschema:"New absolute stock quantity"`
}

func (s *server) handleUpdateProductStock(ctx context.Context, _ *mcpsdk.CallToolRequest, input updateProductStockInput) (*mcpsdk.CallToolResult, productOutput, error) {
	if input.ProductID <= 0 {
		return nil, productOutput{}, fmt.Errorf("product_id is required")
	}
	if input.StockQty < 0 {
		return nil, productOutput{}, fmt.Errorf("stock_qty must not be negative")
	}
	p, err := s.upstream.UpdateProduct(ctx, input.ProductID, map[string]any{"stock_qty": input.StockQty})
	if err != nil {
		return nil, productOutput{}, err
	}
	return nil, toProductOutput(p), nil
}

type categoryOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

type getCategoriesInput struct{}

type categoryListOutput struct {
	Categories []categoryOutput `json:"categories"`
}

func (s *server) handleGetCategories(ctx context.Context, _ *mcpsdk.CallToolRequest, _ getCategoriesInput) (*mcpsdk.CallToolResult, categoryListOutput, error) {
	page, err := s.upstream.Categories(ctx, client.ListOptions{})
	if err != nil {
		return nil, categoryListOutput{}, err
	}
	out := categoryListOutput{}
	for _, c := range page.Results {
		out.Categories = append(out.Categories, categoryOutput{ID: c.ID, Name: c.Name, ParentID: c.Parent})
	}
	return nil, out, nil
}

type addCategoryInput struct {
	Name     string `json:"name" jsonschema:"Category name"`
	ParentID *int64 `json:"parent_id,omitempty" jsonschema:"Optional parent category id"`
}

func (s *server) handleAddCategory(ctx context.Context, _ *mcpsdk.CallToolRequest, input addCategoryInput) (*mcpsdk.CallToolResult, categoryOutput, error) {
	if input.Name == "" {
		return nil, categoryOutput{}, fmt.Errorf("name is required")
	}
	c, err := s.upstream.CreateCategory(ctx, input.Name, input.ParentID)
	if err != nil {
		return nil, categoryOutput{}, err
	}
	return nil, categoryOutput{ID: c.ID, Name: c.Name, ParentID: c.Parent}, nil
}

type customerOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func toCustomerOutput(c *models.Customer) customerOutput {
	return customerOutput{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email, Address: c.Address}
}

type getCustomersInput struct {
	Search string `json:"search,omitempty" jsonschema:"Optional search term matched against name and phone"`
}

type customerListOutput struct {
	Customers []customerOutput `json:"customers"`
	Count     int              `json:"count"`
}

func (s *server) handleGetCustomers(ctx context.Context, _ *mcpsdk.CallToolRequest, input getCustomersInput) (*mcpsdk.CallToolResult, customerListOutput, error) {
	page, err := s.upstream.Customers(ctx, client.ListOptions{Search: input.Search})
	if err != nil {
		return nil, customerListOutput{}, err
	}
	out := customerListOutput{Count: page.Count}
	for i := range page.Results {
		out.Customers = append(out.Customers, toCustomerOutput(&page.Results[i]))
	}
	return nil, out, nil
}

type addCustomerInput struct {
	Name    string `json:"name" jsonschema:"Customer name"`
	Phone   string `json:"phone,omitempty" jsonschema:"Optional phone number"`
	Email   string `json:"email,omitempty" jsonschema:"Optional email address"`
	Address string `json:"address,omitempty" jsonschema:"Optional postal address"`
}

func (s *server) handleAddCustomer(ctx context.Context, _ *mcpsdk.CallToolRequest, input addCustomerInput) (*mcpsdk.CallToolResult, customerOutput, error) {
	if input.Name == "" {
		return nil, customerOutput{}, fmt.Errorf("name is required")
	}
	c, err := s.upstream.CreateCustomer(ctx, models.NewCustomer{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	})
	if err != nil {
		return nil, customerOutput{}, err
	}
	return nil, toCustomerOutput(c), nil
}
