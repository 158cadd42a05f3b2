package mcpserver

// Tool names exposed by the Stockly MCP bridge.
const (
	toolCreateInvoice       = "create_invoice"
	toolGetInvoice          = "get_invoice"
	toolAddItemToInvoice    = "add_item_to_invoice"
	toolConfirmInvoice      = "confirm_invoice"
	toolGetRecentInvoices   = "get_recent_invoices"
	toolSearchInvoices      = "search_invoices"
	toolGetCustomers        = "get_customers"
	toolAddCustomer         = "add_customer"
	toolGetCustomerBalance  = "get_customer_balance"
	toolGetCustomerPayments = "get_customer_payments"
	toolGetProducts         = "get_products"
	toolAddProduct          = "add_product"
	toolUpdateProductStock  = "update_product_stock"
	toolGetCategories       = "get_categories"
	toolAddCategory         = "add_category"
	toolCreatePayment       = "create_payment"
	toolGetPayments         = "get_payments"
	toolGetDashboardStats   = "get_dashboard_stats"
	toolGetInventoryReport  = "get_inventory_report"
	toolGetSalesReport      = "get_sales_report"
	toolCreateReturn        = "create_return"
	toolGetReturns          = "get_returns"
	toolApproveReturn       = "approve_return"
	toolHealthCheck         = "health_check"
	toolGetSystemInfo       = "get_system_info"
)

func buildToolDescriptions() map[string]string {
	return map[string]string{
		toolCreateInvoice:       "Create a draft invoice for a customer. Items are added separately with add_item_to_invoice.",
		toolGetInvoice:          "Fetch a single invoice with its line items by id.",
		toolAddItemToInvoice:    "Add a product line to a draft invoice. Fails with stock details when the requested quantity exceeds available stock.",
		toolConfirmInvoice:      "Confirm a draft invoice. Confirmation deducts stock and freezes the invoice.",
		toolGetRecentInvoices:   "List the most recent invoices, newest first.",
		toolSearchInvoices:      "Search invoices by customer name or other indexed fields.",
		toolGetCustomers:        "List customers, optionally filtered by a search term.",
		toolAddCustomer:         "Create a new customer record.",
		toolGetCustomerBalance:  "Get the server-computed balance for one customer: invoiced, paid, returns, and outstanding amount.",
		toolGetCustomerPayments: "List payments recorded for one customer.",
		toolGetProducts:         "List products, optionally filtered by a search term.",
		toolAddProduct:          "Create a new product in the catalog.",
		toolUpdateProductStock:  "Set the stock quantity of a product.",
		toolGetCategories:       "List product categories.",
		toolAddCategory:         "Create a product category, optionally under a parent category.",
		toolCreatePayment:       "Record a customer payment, optionally tied to an invoice.",
		toolGetPayments:         "List recorded payments, newest first.",
		toolGetDashboardStats:   "Get today's invoice count, total sales, and low-stock item count.",
		toolGetInventoryReport:  "Summarize the product catalog: item count, total stock value, and items at or below the low-stock threshold.",
		toolGetSalesReport:      "Summarize confirmed invoices: count and total amount, with a per-customer breakdown.",
		toolCreateReturn:        "Create a pending return against a confirmed invoice.",
		toolGetReturns:          "List returns, optionally filtered by a search term.",
		toolApproveReturn:       "Approve a pending return. Approval restocks the returned items.",
		toolHealthCheck:         "Check whether the Stockly backend is reachable.",
		toolGetSystemInfo:       "Report bridge version and upstream configuration.",
	}
}
