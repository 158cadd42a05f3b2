// Package client implements the Stockly REST API client: bearer-token
// request interception, coalesced token refresh on 401, and typed wrappers
// for every resource the backend exposes.
package client

import (
	"context"

	"github.com/stocklyhq/stockly/internal/client/models"
)

// ListOptions map onto the backend's common query parameters.
type ListOptions struct {
	// Search filters by the resource's search fields (name, sku, phone...).
	Search string
	// Archived switches product/customer listings to archived rows.
	Archived bool
	// Page selects a result page (1-based). Zero means the first page.
	Page int
	// Ordering is a DRF ordering expression, e.g. "-created_at".
	Ordering string
}

// Client is the API surface the CLI, the sync service and the MCP bridge
// consume. *RESTClient is the only production implementation; tests
// substitute fakes.
type Client interface {
	// Auth and account flows.
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	RegisterCompany(ctx context.Context, req models.RegisterCompanyRequest) error
	SendOTP(ctx context.Context, phone, verificationType string) error
	VerifyOTP(ctx context.Context, phone, code string) error
	ResetPassword(ctx context.Context, phone, code, newPassword string) error

	// Public endpoints.
	AppConfig(ctx context.Context) (*models.AppConfig, error)
	Ping(ctx context.Context) error

	// Dashboard.
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)

	// Products.
	Products(ctx context.Context, opts ListOptions) (*models.Page[models.Product], error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]any) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ArchiveProduct(ctx context.Context, id int64) error
	RestoreProduct(ctx context.Context, id int64) error

	// Customers.
	Customers(ctx context.Context, opts ListOptions) (*models.Page[models.Customer], error)
	Customer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c models.NewCustomer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, updates map[string]any) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
	ArchiveCustomer(ctx context.Context, id int64) error
	RestoreCustomer(ctx context.Context, id int64) error

	// Categories.
	Categories(ctx context.Context, opts ListOptions) (*models.Page[models.Category], error)
	CreateCategory(ctx context.Context, name string, parent *int64) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Invoices.
	Invoices(ctx context.Context, opts ListOptions) (*models.Page[models.Invoice], error)
	Invoice(ctx context.Context, id int64) (*models.Invoice, error)
	CreateInvoice(ctx context.Context, customerID int64) (*models.Invoice, error)
	AddInvoiceItem(ctx context.Context, invoiceID, productID int64, qty models.Amount) (*models.Invoice, error)
	RemoveInvoiceItem(ctx context.Context, invoiceID, itemID int64) (*models.Invoice, error)
	ConfirmInvoice(ctx context.Context, id int64) (*models.InvoiceConfirmation, error)
	InvoicePDF(ctx context.Context, id int64) ([]byte, error)

	// Returns.
	Returns(ctx context.Context, opts ListOptions) (*models.Page[models.Return], error)
	Return(ctx context.Context, id int64) (*models.Return, error)
	CreateReturn(ctx context.Context, r models.NewReturn) (*models.Return, error)
	ApproveReturn(ctx context.Context, id int64) (*models.Return, error)
	RejectReturn(ctx context.Context, id int64) (*models.Return, error)

	// Payments and balances.
	Payments(ctx context.Context, opts ListOptions) (*models.Page[models.Payment], error)
	CreatePayment(ctx context.Context, p models.NewPayment) (*models.Payment, error)
	Balances(ctx context.Context, opts ListOptions) (*models.Page[models.CustomerBalance], error)

	// Company profile and users.
	CompanyProfile(ctx context.Context) (*models.CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, id int64, updates map[string]any) (*models.CompanyProfile, error)
	Users(ctx context.Context) (*models.Page[models.User], error)
	CreateUser(ctx context.Context, u models.NewUser) (*models.User, error)
}
