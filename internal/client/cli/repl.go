package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	AddProduct(ctx context.Context) error
	Customers(ctx context.Context, args []string) error
	AddCustomer(ctx context.Context) error
	Categories(ctx context.Context) error
	Archive(ctx context.Context, args []string) error
	Restore(ctx context.Context, args []string) error
	Invoices(ctx context.Context, args []string) error
	ShowInvoice(ctx context.Context, args []string) error
	NewInvoice(ctx context.Context, args []string) error
	AddItem(ctx context.Context, args []string) error
	RemoveItem(ctx context.Context, args []string) error
	Confirm(ctx context.Context, args []string) error
	Payments(ctx context.Context, args []string) error
	Pay(ctx context.Context, args []string) error
	Balances(ctx context.Context, args []string) error
	Returns(ctx context.Context, args []string) error
	ApproveReturn(ctx context.Context, args []string) error
	RejectReturn(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
}

const loggedInHelp = `Available commands:
  products [search]   customers [search]   categories
  addproduct          addcustomer          dashboard
  archive <product|customer> <id>          restore <product|customer> <id>
  invoices [search]   invoice <id>         newinvoice <customer-id>
  additem <invoice-id> <product-id> <qty>  removeitem <invoice-id> <item-id>
  confirm <invoice-id>
  payments            pay <customer-id> <amount>
  balances            returns
  approvereturn <return-id>                rejectreturn <return-id>
  sync                whoami               logout    exit`

// runREPL starts a read-eval-print loop. It reads a line from the scanner,
// parses the first token as the command, and dispatches to methods on 'a'.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers log their
// own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("stockly> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(loggedInHelp)
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "p", "products":
			_ = a.Products(ctx, args)

		case "addproduct":
			_ = a.AddProduct(ctx)

		case "c", "customers":
			_ = a.Customers(ctx, args)

		case "addcustomer":
			_ = a.AddCustomer(ctx)

		case "categories":
			_ = a.Categories(ctx)

		case "archive":
			_ = a.Archive(ctx, args)

		case "restore":
			_ = a.Restore(ctx, args)

		case "invoices":
			_ = a.Invoices(ctx, args)

		case "invoice":
			_ = a.ShowInvoice(ctx, args)

		case "newinvoice":
			_ = a.NewInvoice(ctx, args)

		case "additem":
			_ = a.AddItem(ctx, args)

		case "removeitem":
			_ = a.RemoveItem(ctx, args)

		case "confirm":
			_ = a.Confirm(ctx, args)

		case "payments":
			_ = a.Payments(ctx, args)

		case "pay":
			_ = a.Pay(ctx, args)

		case "balances":
			_ = a.Balances(ctx, args)

		case "returns":
			_ = a.Returns(ctx, args)

		case "approvereturn":
			_ = a.ApproveReturn(ctx, args)

		case "rejectreturn":
			_ = a.RejectReturn(ctx, args)

		case "sync":
			_ = a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
