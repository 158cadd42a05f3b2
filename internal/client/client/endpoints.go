package client

import "fmt"

// Endpoint paths exactly as the backend publishes them. The trailing
// slashes are significant: the server redirects without them and the
// redirect drops the Authorization header on some proxies.
const (
	epLogin   = "/api/auth/login/"
	epRefresh = "/api/auth/refresh/"

	epSendOTP         = "/api/v1/auth/otp/send/"
	epVerifyOTP       = "/api/v1/auth/otp/verify/"
	epResetPassword   = "/api/v1/auth/reset-password/"
	epRegisterCompany = "/api/register-company/"

	epAppConfig      = "/api/app-config/"
	epDashboardStats = "/api/dashboard/stats"

	epProducts       = "/api/v1/products/"
	epCustomers      = "/api/v1/customers/"
	epCategories     = "/api/v1/categories/"
	epInvoices       = "/api/v1/invoices/"
	epReturns        = "/api/v1/returns/"
	epPayments       = "/api/v1/payments/"
	epBalances       = "/api/v1/balances/"
	epCompanyProfile = "/api/v1/company-profile/"
	epUsers          = "/api/v1/users/"
)

func epProductDetail(id int64) string  { return fmt.Sprintf("%s%d/", epProducts, id) }
func epProductArchive(id int64) string { return fmt.Sprintf("%s%d/archive/", epProducts, id) }
func epProductRestore(id int64) string { return fmt.Sprintf("%s%d/restore/", epProducts, id) }

func epCustomerDetail(id int64) string  { return fmt.Sprintf("%s%d/", epCustomers, id) }
func epCustomerArchive(id int64) string { return fmt.Sprintf("%s%d/archive/", epCustomers, id) }
func epCustomerRestore(id int64) string { return fmt.Sprintf("%s%d/restore/", epCustomers, id) }

func epCategoryDetail(id int64) string { return fmt.Sprintf("%s%d/", epCategories, id) }

func epInvoiceDetail(id int64) string     { return fmt.Sprintf("%s%d/", epInvoices, id) }
func epInvoiceAddItem(id int64) string    { return fmt.Sprintf("%s%d/add_item/", epInvoices, id) }
func epInvoiceRemoveItem(id int64) string { return fmt.Sprintf("%s%d/remove_item/", epInvoices, id) }
func epInvoiceConfirm(id int64) string    { return fmt.Sprintf("%s%d/confirm/", epInvoices, id) }
func epInvoicePDF(id int64) string        { return fmt.Sprintf("%s%d/pdf/", epInvoices, id) }

func epReturnDetail(id int64) string  { return fmt.Sprintf("%s%d/", epReturns, id) }
func epReturnApprove(id int64) string { return fmt.Sprintf("%s%d/approve/", epReturns, id) }
func epReturnReject(id int64) string  { return fmt.Sprintf("%s%d/reject/", epReturns, id) }

// isAuthEndpoint reports whether a path belongs to the login or refresh
// endpoints. A 401 from those must never trigger a refresh attempt.
func isAuthEndpoint(path string) bool {
	return path == epLogin || path == epRefresh
}
