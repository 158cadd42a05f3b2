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

func (a *App) Dashboard(ctx context.Context) error {
	stats, err := a.client.DashboardStats(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Today: %d invoices, %.2f in sales, %d low-stock items",
		stats.TodayInvoices, stats.TotalSales, stats.LowStockItems))
	return nil
}

func (a *App) Payments(ctx context.Context, args []string) error {
	page, err := a.client.Payments(ctx, client.ListOptions{Search: strings.Join(args, " ")})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, p := range page.Results {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
			p.ID, p.CustomerName, p.Amount, p.PaymentMethod, p.PaymentDate))
	}
	return nil
}

func (a *App) Pay(ctx context.Context, args []string) error {
	const usage = "pay <customer-id> <amount>"
	if len(args) < 2 {
		printlnFn("Usage: " + usage)
		return errors.New("missing argument")
	}
	customerID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Usage: " + usage)
		return err
	}

	p, err := a.client.CreatePayment(ctx, models.NewPayment{
		Customer: customerID,
		Amount:   models.Amount(args[1]),
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Recorded payment %d of %s for %s", p.ID, p.Amount, p.CustomerName))
	return nil
}

func (a *App) Balances(ctx context.Context, args []string) error {
	page, err := a.client.Balances(ctx, client.ListOptions{Search: strings.Join(args, " ")})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, b := range page.Results {
		printlnFn(fmt.Sprintf("%s\tinvoiced=%s paid=%s returns=%s balance=%s",
			b.CustomerName, b.TotalInvoiced, b.TotalPaid, b.TotalReturns, b.Balance))
	}
	return nil
}

func (a *App) Returns(ctx context.Context, args []string) error {
	page, err := a.client.Returns(ctx, client.ListOptions{Search: strings.Join(args, " ")})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	for _, r := range page.Results {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s\t%s",
			r.ID, r.ReturnNumber, r.CustomerName, r.Status, r.TotalAmount))
	}
	return nil
}

func (a *App) ApproveReturn(ctx context.Context, args []string) error {
	id, err := parseID(args, "approvereturn <return-id>")
	if err != nil {
		return err
	}
	r, err := a.client.ApproveReturn(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Return %s is now %s", r.ReturnNumber, r.Status))
	return nil
}

func (a *App) RejectReturn(ctx context.Context, args []string) error {
	id, err := parseID(args, "rejectreturn <return-id>")
	if err != nil {
		return err
	}
	r, err := a.client.RejectReturn(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Return %s is now %s", r.ReturnNumber, r.Status))
	return nil
}
