package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/common"
	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/logging"
)

const defaultTimeout = 15 * time.Second

// RESTClient talks to the Stockly backend over HTTP. All authenticated
// traffic runs through authTransport; login and refresh use a bare client
// so that the interceptor can never recurse into itself.
type RESTClient struct {
	base    *url.URL
	httpc   *http.Client
	barec   *http.Client
	store   tokens.Store
	log     logging.Logger
	timeout time.Duration

	coordinator *refreshCoordinator
}

// Option customizes RESTClient construction.
type Option func(*RESTClient)

// WithTimeout bounds every request, including the refresh call.
func WithTimeout(d time.Duration) Option {
	return func(c *RESTClient) { c.timeout = d }
}

// WithLogger attaches a structured logger.
func WithLogger(log logging.Logger) Option {
	return func(c *RESTClient) { c.log = log }
}

// WithBaseTransport overrides the underlying RoundTripper (tests).
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *RESTClient) {
		c.httpc.Transport.(*authTransport).base = rt
		c.barec.Transport = rt
	}
}

// New builds a RESTClient for baseURL backed by the given token store.
func New(baseURL string, store tokens.Store, opts ...Option) (*RESTClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	c := &RESTClient{
		base:    u,
		store:   store,
		log:     logging.NewNoopLogger(),
		timeout: defaultTimeout,
	}

	transport := &authTransport{
		base:  http.DefaultTransport,
		store: store,
	}
	c.httpc = &http.Client{Transport: transport}
	c.barec = &http.Client{Transport: http.DefaultTransport}

	for _, opt := range opts {
		opt(c)
	}

	c.httpc.Timeout = c.timeout
	c.barec.Timeout = c.timeout
	transport.log = c.log

	c.coordinator = newRefreshCoordinator(store, c.dispatchRefresh, c.timeout, c.log)
	transport.coordinator = c.coordinator

	return c, nil
}

// dispatchRefresh performs the single refresh call on the bare client.
func (c *RESTClient) dispatchRefresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	payload, err := json.Marshal(map[string]string{"refresh": refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(epRefresh, nil), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.barec.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("refresh call: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("refresh response: %w", err)
	}
	if pair.Access == "" {
		return nil, errors.New("refresh response missing access token")
	}
	return &pair, nil
}

func (c *RESTClient) resolve(path string, query url.Values) string {
	u := *c.base
	u.Path = path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do issues a JSON request through the intercepting client and decodes the
// response into out (when non-nil). Bodies are built from byte slices so
// every request is replayable after a token refresh.
func (c *RESTClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.wrapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.wrapTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// wrapTransportError maps connectivity failures onto ErrUnavailable so the
// CLI can fall back to its offline cache. Context cancellation passes
// through unchanged.
func (c *RESTClient) wrapTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

// ---- auth and account flows ----

func (c *RESTClient) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, epLogin, nil, map[string]string{
		"username": username,
		"password": password,
	}, &pair)
	if err != nil {
		return nil, err
	}
	if pair.Access == "" || pair.Refresh == "" {
		return nil, errors.New("login response missing tokens")
	}
	return &pair, nil
}

func (c *RESTClient) RegisterCompany(ctx context.Context, req models.RegisterCompanyRequest) error {
	return c.do(ctx, http.MethodPost, epRegisterCompany, nil, req, nil)
}

func (c *RESTClient) SendOTP(ctx context.Context, phone, verificationType string) error {
	return c.do(ctx, http.MethodPost, epSendOTP, nil, map[string]string{
		"phone":             phone,
		"verification_type": verificationType,
	}, nil)
}

func (c *RESTClient) VerifyOTP(ctx context.Context, phone, code string) error {
	return c.do(ctx, http.MethodPost, epVerifyOTP, nil, map[string]string{
		"phone":    phone,
		"otp_code": code,
	}, nil)
}

func (c *RESTClient) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	return c.do(ctx, http.MethodPost, epResetPassword, nil, map[string]string{
		"phone":        phone,
		"otp_code":     code,
		"new_password": newPassword,
	}, nil)
}

// ---- public endpoints ----

func (c *RESTClient) AppConfig(ctx context.Context) (*models.AppConfig, error) {
	var cfg models.AppConfig
	if err := c.do(ctx, http.MethodGet, epAppConfig, nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Ping probes server reachability via the public app-config endpoint.
func (c *RESTClient) Ping(ctx context.Context) error {
	_, err := c.AppConfig(ctx)
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	// Any HTTP-level answer, even an error status, proves reachability.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return nil
	}
	return err
}

// ---- dashboard ----

func (c *RESTClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, epDashboardStats, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func listQuery(opts ListOptions) url.Values {
	query := url.Values{}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Archived {
		query.Set("archived", "true")
	}
	if opts.Page > 1 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Ordering != "" {
		query.Set("ordering", opts.Ordering)
	}
	return query
}

func list[T any](ctx context.Context, c *RESTClient, path string, opts ListOptions) (*models.Page[T], error) {
	var page models.Page[T]
	if err := c.do(ctx, http.MethodGet, path, listQuery(opts), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func get[T any](ctx context.Context, c *RESTClient, path string) (*T, error) {
	var v T
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func post[T any](ctx context.Context, c *RESTClient, path string, body any) (*T, error) {
	var v T
	if err := c.do(ctx, http.MethodPost, path, nil, body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func patch[T any](ctx context.Context, c *RESTClient, path string, body any) (*T, error) {
	var v T
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ---- products ----

func (c *RESTClient) Products(ctx context.Context, opts ListOptions) (*models.Page[models.Product], error) {
	return list[models.Product](ctx, c, epProducts, opts)
}

func (c *RESTClient) Product(ctx context.Context, id int64) (*models.Product, error) {
	return get[models.Product](ctx, c, epProductDetail(id))
}

func (c *RESTClient) CreateProduct(ctx context.Context, p models.NewProduct) (*models.Product, error) {
	return post[models.Product](ctx, c, epProducts, p)
}

func (c *RESTClient) UpdateProduct(ctx context.Context, id int64, updates map[string]any) (*models.Product, error) {
	return patch[models.Product](ctx, c, epProductDetail(id), updates)
}

func (c *RESTClient) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, epProductDetail(id), nil, nil, nil)
}

func (c *RESTClient) ArchiveProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, epProductArchive(id), nil, nil, nil)
}

func (c *RESTClient) RestoreProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, epProductRestore(id), nil, nil, nil)
}

// ---- customers ----

func (c *RESTClient) Customers(ctx context.Context, opts ListOptions) (*models.Page[models.Customer], error) {
	return list[models.Customer](ctx, c, epCustomers, opts)
}

func (c *RESTClient) Customer(ctx context.Context, id int64) (*models.Customer, error) {
	return get[models.Customer](ctx, c, epCustomerDetail(id))
}

func (c *RESTClient) CreateCustomer(ctx context.Context, cust models.NewCustomer) (*models.Customer, error) {
	return post[models.Customer](ctx, c, epCustomers, cust)
}

func (c *RESTClient) UpdateCustomer(ctx context.Context, id int64, updates map[string]any) (*models.Customer, error) {
	return patch[models.Customer](ctx, c, epCustomerDetail(id), updates)
}

func (c *RESTClient) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, epCustomerDetail(id), nil, nil, nil)
}

func (c *RESTClient) ArchiveCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, epCustomerArchive(id), nil, nil, nil)
}

func (c *RESTClient) RestoreCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, epCustomerRestore(id), nil, nil, nil)
}

// ---- categories ----

func (c *RESTClient) Categories(ctx context.Context, opts ListOptions) (*models.Page[models.Category], error) {
	return list[models.Category](ctx, c, epCategories, opts)
}

func (c *RESTClient) CreateCategory(ctx context.Context, name string, parent *int64) (*models.Category, error) {
	body := map[string]any{"name": name}
	if parent != nil {
		body["parent"] = *parent
	}
	return post[models.Category](ctx, c, epCategories, body)
}

func (c *RESTClient) UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error) {
	return patch[models.Category](ctx, c, epCategoryDetail(id), map[string]any{"name": name})
}

func (c *RESTClient) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, epCategoryDetail(id), nil, nil, nil)
}

// ---- invoices ----

func (c *RESTClient) Invoices(ctx context.Context, opts ListOptions) (*models.Page[models.Invoice], error) {
	return list[models.Invoice](ctx, c, epInvoices, opts)
}

func (c *RESTClient) Invoice(ctx context.Context, id int64) (*models.Invoice, error) {
	return get[models.Invoice](ctx, c, epInvoiceDetail(id))
}

func (c *RESTClient) CreateInvoice(ctx context.Context, customerID int64) (*models.Invoice, error) {
	return post[models.Invoice](ctx, c, epInvoices, map[string]any{"customer": customerID})
}

func (c *RESTClient) AddInvoiceItem(ctx context.Context, invoiceID, productID int64, qty models.Amount) (*models.Invoice, error) {
	return post[models.Invoice](ctx, c, epInvoiceAddItem(invoiceID), map[string]any{
		"product": productID,
		"qty":     qty,
	})
}

func (c *RESTClient) RemoveInvoiceItem(ctx context.Context, invoiceID, itemID int64) (*models.Invoice, error) {
	return post[models.Invoice](ctx, c, epInvoiceRemoveItem(invoiceID), map[string]any{"item": itemID})
}

func (c *RESTClient) ConfirmInvoice(ctx context.Context, id int64) (*models.InvoiceConfirmation, error) {
	return post[models.InvoiceConfirmation](ctx, c, epInvoiceConfirm(id), nil)
}

// InvoicePDF downloads the rendered invoice document.
func (c *RESTClient) InvoicePDF(ctx context.Context, id int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(epInvoicePDF(id), nil), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, c.wrapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.wrapTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// ---- returns ----

func (c *RESTClient) Returns(ctx context.Context, opts ListOptions) (*models.Page[models.Return], error) {
	return list[models.Return](ctx, c, epReturns, opts)
}

func (c *RESTClient) Return(ctx context.Context, id int64) (*models.Return, error) {
	return get[models.Return](ctx, c, epReturnDetail(id))
}

func (c *RESTClient) CreateReturn(ctx context.Context, r models.NewReturn) (*models.Return, error) {
	return post[models.Return](ctx, c, epReturns, r)
}

func (c *RESTClient) ApproveReturn(ctx context.Context, id int64) (*models.Return, error) {
	return post[models.Return](ctx, c, epReturnApprove(id), nil)
}

func (c *RESTClient) RejectReturn(ctx context.Context, id int64) (*models.Return, error) {
	return post[models.Return](ctx, c, epReturnReject(id), nil)
}

// ---- payments and balances ----

func (c *RESTClient) Payments(ctx context.Context, opts ListOptions) (*models.Page[models.Payment], error) {
	return list[models.Payment](ctx, c, epPayments, opts)
}

func (c *RESTClient) CreatePayment(ctx context.Context, p models.NewPayment) (*models.Payment, error) {
	return post[models.Payment](ctx, c, epPayments, p)
}

func (c *RESTClient) Balances(ctx context.Context, opts ListOptions) (*models.Page[models.CustomerBalance], error) {
	return list[models.CustomerBalance](ctx, c, epBalances, opts)
}

// ---- company profile and users ----

// CompanyProfile fetches the caller's profile. The list endpoint is scoped
// to the authenticated tenant and holds exactly one entry.
func (c *RESTClient) CompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	page, err := list[models.CompanyProfile](ctx, c, epCompanyProfile, ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, fmt.Errorf("company profile: %w", common.ErrNotFound)
	}
	return &page.Results[0], nil
}

func (c *RESTClient) UpdateCompanyProfile(ctx context.Context, id int64, updates map[string]any) (*models.CompanyProfile, error) {
	return patch[models.CompanyProfile](ctx, c, fmt.Sprintf("%s%d/", epCompanyProfile, id), updates)
}

func (c *RESTClient) Users(ctx context.Context) (*models.Page[models.User], error) {
	return list[models.User](ctx, c, epUsers, ListOptions{})
}

func (c *RESTClient) CreateUser(ctx context.Context, u models.NewUser) (*models.User, error) {
	return post[models.User](ctx, c, epUsers, u)
}

var _ Client = (*RESTClient)(nil)
