package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("requires an upstream", func(t *testing.T) {
		_, err := NewServer(NewServerRequest{})
		assert.ErrorContains(t, err, "upstream base URL")
	})

	t.Run("builds a client from config", func(t *testing.T) {
		srv, err := NewServer(NewServerRequest{Config: Config{
			UpstreamBaseURL: "http://127.0.0.1:8000",
			CredentialsPath: t.TempDir() + "/credentials.json",
		}})
		require.NoError(t, err)
		require.NotNil(t, srv)
	})

	t.Run("accepts an injected upstream", func(t *testing.T) {
		srv, err := NewServer(NewServerRequest{Upstream: &fakeUpstream{}})
		require.NoError(t, err)

		s, ok := srv.(*server)
		require.True(t, ok)
		assert.Equal(t, 15*time.Second, s.cfg.UpstreamTimeout)
		assert.NotNil(t, s.limiter)
		assert.Nil(t, s.httpServer)
	})

	t.Run("listen address enables the HTTP transport", func(t *testing.T) {
		srv, err := NewServer(NewServerRequest{
			Config:   Config{Listen: "127.0.0.1:0"},
			Upstream: &fakeUpstream{},
		})
		require.NoError(t, err)

		s := srv.(*server)
		require.NotNil(t, s.httpServer)
		assert.Equal(t, "127.0.0.1:0", s.httpServer.Addr)
	})
}

func TestBuildToolDescriptions_CoversEveryTool(t *testing.T) {
	descriptions := buildToolDescriptions()
	for _, name := range []string{
		toolCreateInvoice, toolGetInvoice, toolAddItemToInvoice, toolConfirmInvoice,
		toolGetRecentInvoices, toolSearchInvoices,
		toolGetCustomers, toolAddCustomer, toolGetCustomerBalance, toolGetCustomerPayments,
		toolGetProducts, toolAddProduct, toolUpdateProductStock, toolGetCategories, toolAddCategory,
		toolCreatePayment, toolGetPayments,
		toolGetDashboardStats, toolGetInventoryReport, toolGetSalesReport,
		toolCreateReturn, toolGetReturns, toolApproveReturn,
		toolHealthCheck, toolGetSystemInfo,
	} {
		assert.NotEmpty(t, descriptions[name], "tool %s has no description", name)
	}
}
