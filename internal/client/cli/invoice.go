package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return 0, errors.New("missing argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return 0, err
	}
	return id, nil
}

func (a *App) Invoices(ctx context.Context, args []string) error {
	page, err := a.client.Invoices(ctx, client.ListOptions{Search: strings.Join(args, " ")})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, inv := range page.Results {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s",
			inv.ID, inv.CustomerName, inv.Status, inv.TotalAmount))
	}
	return nil
}

func (a *App) ShowInvoice(ctx context.Context, args []string) error {
	id, err := parseID(args, "invoice <id>")
	if err != nil {
		return err
	}
	inv, err := a.client.Invoice(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Invoice %d (%s) customer=%s total=%s", inv.ID, inv.Status, inv.CustomerName, inv.TotalAmount))
	for _, item := range inv.Items {
		printlnFn(fmt.Sprintf("  %d\t%s\tqty=%s\tprice=%s\ttotal=%s",
			item.ID, item.ProductName, item.Qty, item.PriceAtAdd, item.LineTotal))
	}
	return nil
}

func (a *App) NewInvoice(ctx context.Context, args []string) error {
	customerID, err := parseID(args, "newinvoice <customer-id>")
	if err != nil {
		return err
	}
	inv, err := a.client.CreateInvoice(ctx, customerID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Created draft invoice %d for %s", inv.ID, inv.CustomerName))
	return nil
}

func (a *App) AddItem(ctx context.Context, args []string) error {
	const usage = "additem <invoice-id> <product-id> <qty>"
	if len(args) < 3 {
		printlnFn("Usage: " + usage)
		return errors.New("missing argument")
	}
	invoiceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return err
	}
	productID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return err
	}

	inv, err := a.client.AddInvoiceItem(ctx, invoiceID, productID, models.Amount(args[2]))
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "insufficient_stock" {
			printlnFn("Insufficient stock:", stockDetails(apiErr))
			return err
		}
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Invoice %d total is now %s", inv.ID, inv.TotalAmount))
	return nil
}

func (a *App) RemoveItem(ctx context.Context, args []string) error {
	const usage = "removeitem <invoice-id> <item-id>"
	if len(args) < 2 {
		printlnFn("Usage: " + usage)
		return errors.New("missing argument")
	}
	invoiceID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return err
	}
	itemID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return err
	}

	inv, err := a.client.RemoveInvoiceItem(ctx, invoiceID, itemID)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Invoice %d total is now %s", inv.ID, inv.TotalAmount))
	return nil
}

// stockDetails renders the extra keys the server attaches to
// insufficient_stock errors.
func stockDetails(apiErr *client.APIError) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"available", "already_in_invoice", "can_add"} {
		if raw, ok := apiErr.Extra[key]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", key, string(raw)))
		}
	}
	if len(parts) == 0 {
		return apiErr.Detail
	}
	return strings.Join(parts, " ")
}

func (a *App) Confirm(ctx context.Context, args []string) error {
	id, err := parseID(args, "confirm <invoice-id>")
	if err != nil {
		return err
	}
	res, err := a.client.ConfirmInvoice(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Invoice %d is now %s", res.InvoiceID, res.Status))
	return nil
}
