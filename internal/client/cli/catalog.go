package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
)

func (a *App) Products(ctx context.Context, args []string) error {
	items, fromCache, err := a.catalog.Products(ctx, strings.Join(args, " "))
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if fromCache {
		printlnFn("(offline, showing cached catalog)")
	}
	for _, p := range items {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s (stock: %d)", p.ID, p.SKU, p.Name, p.Price, p.StockQty))
	}
	return nil
}

func (a *App) AddProduct(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		return err
	}
	categoryStr, err := GetSimpleText(a.reader, "Category id", os.Stdout)
	if err != nil {
		return err
	}
	category, err := strconv.ParseInt(categoryStr, 10, 64)
	if err != nil {
		log.Printf("invalid category id: %v", err)
		return err
	}
	price, err := GetSimpleText(a.reader, "Price", os.Stdout)
	if err != nil {
		return err
	}
	stockStr, err := GetSimpleText(a.reader, "Stock quantity", os.Stdout)
	if err != nil {
		return err
	}
	stock, err := strconv.ParseInt(stockStr, 10, 64)
	if err != nil {
		log.Printf("invalid stock quantity: %v", err)
		return err
	}

	p, err := a.client.CreateProduct(ctx, models.NewProduct{
		Name:     name,
		Category: category,
		Price:    models.Amount(price),
		StockQty: stock,
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Created product %d: %s", p.ID, p.Name))
	return nil
}

func (a *App) Customers(ctx context.Context, args []string) error {
	items, fromCache, err := a.catalog.Customers(ctx, strings.Join(args, " "))
	if err != nil {
		log.Println(err.Error())
		return err
	}
	if fromCache {
		printlnFn("(offline, showing cached catalog)")
	}
	for _, c := range items {
		printlnFn(fmt.Sprintf("%d\t%s\t%s", c.ID, c.Name, c.Phone))
	}
	return nil
}

func (a *App) AddCustomer(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Customer name", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := GetSimpleText(a.reader, "Phone (optional)", os.Stdout)
	if err != nil {
		return err
	}

	c, err := a.client.CreateCustomer(ctx, models.NewCustomer{Name: name, Phone: phone})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Created customer %d: %s", c.ID, c.Name))
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	page, err := a.client.Categories(ctx, client.ListOptions{})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, c := range page.Results {
		printlnFn(fmt.Sprintf("%d\t%s", c.ID, c.Name))
	}
	return nil
}

// parseResourceID parses "<product|customer> <id>" argument pairs for the
// archive and restore commands.
func parseResourceID(args []string, usage string) (string, int64, error) {
	if len(args) < 2 || (args[0] != "product" && args[0] != "customer") {
		printlnFn("Usage: " + usage)
		return "", 0, errors.New("missing argument")
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return "", 0, err
	}
	return args[0], id, nil
}

func (a *App) Archive(ctx context.Context, args []string) error {
	kind, id, err := parseResourceID(args, "archive <product|customer> <id>")
	if err != nil {
		return err
	}
	if kind == "product" {
		err = a.client.ArchiveProduct(ctx, id)
	} else {
		err = a.client.ArchiveCustomer(ctx, id)
	}
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Archived %s %d", kind, id))
	return nil
}

func (a *App) Restore(ctx context.Context, args []string) error {
	kind, id, err := parseResourceID(args, "restore <product|customer> <id>")
	if err != nil {
		return err
	}
	if kind == "product" {
		err = a.client.RestoreProduct(ctx, id)
	} else {
		err = a.client.RestoreCustomer(ctx, id)
	}
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Restored %s %d", kind, id))
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	report, err := a.catalog.Sync(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Synced %d products, %d customers", report.Products, report.Customers))
	return nil
}
