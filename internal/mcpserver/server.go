// Package mcpserver exposes the Stockly REST API as MCP tools so that
// agent frameworks can drive invoicing, catalog, and payment flows.
// Tools map 1:1 onto REST operations; no business logic lives here.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/stocklyhq/stockly/internal/buildinfo"
	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/logging"
)

// Config controls the MCP bridge runtime behavior.
type Config struct {
	// Listen is the address for the streamable HTTP transport. Empty means
	// serve MCP over stdio.
	Listen string

	// UpstreamBaseURL is the Stockly backend the bridge talks to.
	UpstreamBaseURL string

	// CredentialsPath is the token file shared with the CLI. The bridge
	// reuses a session established with the CLI's login command.
	CredentialsPath string

	// UpstreamTimeout bounds each upstream request.
	UpstreamTimeout time.Duration

	// ToolCallsPerSecond throttles tool execution. Zero means the default.
	ToolCallsPerSecond float64
}

// Server is the MCP bridge service contract.
type Server interface {
	Run(context.Context) error
}

// NewServerRequest wraps constructor inputs. Upstream is optional; when nil
// a REST client is built from the Config.
type NewServerRequest struct {
	Config   Config
	Logger   logging.Logger
	Upstream client.Client
}

type server struct {
	cfg        Config
	log        logging.Logger
	upstream   client.Client
	limiter    *rate.Limiter
	httpServer *http.Server
}

func applyDefaults(cfg *Config) {
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 15 * time.Second
	}
	if cfg.ToolCallsPerSecond <= 0 {
		cfg.ToolCallsPerSecond = 10
	}
}

// NewServer constructs the Stockly MCP bridge.
func NewServer(req NewServerRequest) (Server, error) {
	cfg := req.Config
	applyDefaults(&cfg)

	log := req.Logger
	if log == nil {
		log = logging.NewNoopLogger()
	}

	s := &server{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(cfg.ToolCallsPerSecond), int(cfg.ToolCallsPerSecond)+1),
	}

	if req.Upstream != nil {
		s.upstream = req.Upstream
	} else {
		if cfg.UpstreamBaseURL == "" {
			return nil, errors.New("upstream base URL is required")
		}
		store := tokens.NewFileStore(cfg.CredentialsPath, log)
		upstream, err := client.New(cfg.UpstreamBaseURL, store,
			client.WithTimeout(cfg.UpstreamTimeout),
			client.WithLogger(log),
		)
		if err != nil {
			return nil, fmt.Errorf("build upstream client: %w", err)
		}
		s.upstream = upstream
	}

	if cfg.Listen != "" {
		streamable := mcpsdk.NewStreamableHTTPHandler(func(_ *http.Request) *mcpsdk.Server {
			return s.buildMCPServer()
		}, nil)
		mux := http.NewServeMux()
		mux.Handle("/mcp", streamable)
		s.httpServer = &http.Server{Addr: cfg.Listen, Handler: mux}
	}

	return s, nil
}

func (s *server) buildMCPServer() *mcpsdk.Server {
	srv := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "stockly-mcp-bridge",
		Version: buildinfo.Version,
	}, nil)
	s.registerTools(srv)
	return srv
}

// Run serves MCP until ctx is cancelled. With a listen address it serves
// the streamable HTTP transport; otherwise it speaks stdio.
func (s *server) Run(ctx context.Context) error {
	if s.httpServer == nil {
		s.log.Info(ctx, "starting stockly MCP bridge on stdio")
		return s.buildMCPServer().Run(ctx, &mcpsdk.StdioTransport{})
	}

	s.log.Info(ctx, "starting stockly MCP bridge", "listen", s.cfg.Listen)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *server) registerTools(srv *mcpsdk.Server) {
	descriptions := buildToolDescriptions()
	desc := func(name string) string {
		description, ok := descriptions[name]
		if !ok {
			panic(fmt.Sprintf("missing MCP tool description for %q", name))
		}
		return description
	}
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCreateInvoice,
		Description: desc(toolCreateInvoice),
	}, withToolGuards(s, s.handleCreateInvoice))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetInvoice,
		Description: desc(toolGetInvoice),
	}, withToolGuards(s, s.handleGetInvoice))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAddItemToInvoice,
		Description: desc(toolAddItemToInvoice),
	}, withToolGuards(s, s.handleAddItemToInvoice))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolConfirmInvoice,
		Description: desc(toolConfirmInvoice),
	}, withToolGuards(s, s.handleConfirmInvoice))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetRecentInvoices,
		Description: desc(toolGetRecentInvoices),
	}, withToolGuards(s, s.handleGetRecentInvoices))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolSearchInvoices,
		Description: desc(toolSearchInvoices),
	}, withToolGuards(s, s.handleSearchInvoices))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetCustomers,
		Description: desc(toolGetCustomers),
	}, withToolGuards(s, s.handleGetCustomers))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAddCustomer,
		Description: desc(toolAddCustomer),
	}, withToolGuards(s, s.handleAddCustomer))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetCustomerBalance,
		Description: desc(toolGetCustomerBalance),
	}, withToolGuards(s, s.handleGetCustomerBalance))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetCustomerPayments,
		Description: desc(toolGetCustomerPayments),
	}, withToolGuards(s, s.handleGetCustomerPayments))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetProducts,
		Description: desc(toolGetProducts),
	}, withToolGuards(s, s.handleGetProducts))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAddProduct,
		Description: desc(toolAddProduct),
	}, withToolGuards(s, s.handleAddProduct))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolUpdateProductStock,
		Description: desc(toolUpdateProductStock),
	}, withToolGuards(s, s.handleUpdateProductStock))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetCategories,
		Description: desc(toolGetCategories),
	}, withToolGuards(s, s.handleGetCategories))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAddCategory,
		Description: desc(toolAddCategory),
	}, withToolGuards(s, s.handleAddCategory))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCreatePayment,
		Description: desc(toolCreatePayment),
	}, withToolGuards(s, s.handleCreatePayment))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetPayments,
		Description: desc(toolGetPayments),
	}, withToolGuards(s, s.handleGetPayments))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetDashboardStats,
		Description: desc(toolGetDashboardStats),
	}, withToolGuards(s, s.handleGetDashboardStats))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetInventoryReport,
		Description: desc(toolGetInventoryReport),
	}, withToolGuards(s, s.handleGetInventoryReport))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetSalesReport,
		Description: desc(toolGetSalesReport),
	}, withToolGuards(s, s.handleGetSalesReport))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCreateReturn,
		Description: desc(toolCreateReturn),
	}, withToolGuards(s, s.handleCreateReturn))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetReturns,
		Description: desc(toolGetReturns),
	}, withToolGuards(s, s.handleGetReturns))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolApproveReturn,
		Description: desc(toolApproveReturn),
	}, withToolGuards(s, s.handleApproveReturn))

	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolHealthCheck,
		Description: desc(toolHealthCheck),
	}, withToolGuards(s, s.handleHealthCheck))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetSystemInfo,
		Description: desc(toolGetSystemInfo),
	}, withToolGuards(s, s.handleGetSystemInfo))
}
