package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/client/tokens"
)

// authServer is a fake backend: any request without the current access
// token gets a 401, the refresh endpoint rotates the access token.
type authServer struct {
	t *testing.T

	mu           sync.Mutex
	validAccess  string
	validRefresh string
	nextAccess   string
	nextRefresh  string // empty means the server does not rotate refresh tokens
	refreshFails bool

	refreshCalls  atomic.Int64
	resourceCalls atomic.Int64
}

func (s *authServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] != "kadir" || body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"access": s.validAccess, "refresh": s.validRefresh})
	})

	mux.HandleFunc("POST /api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		var body map[string]string
		require.NoError(s.t, json.NewDecoder(r.Body).Decode(&body))

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.refreshFails || body["refresh"] != s.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
		s.validAccess = s.nextAccess
		resp := map[string]string{"access": s.validAccess}
		if s.nextRefresh != "" {
			s.validRefresh = s.nextRefresh
			resp["refresh"] = s.validRefresh
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		s.resourceCalls.Add(1)
		s.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+s.validAccess
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		if r.Method == http.MethodPost {
			var p models.NewProduct
			require.NoError(s.t, json.NewDecoder(r.Body).Decode(&p))
			_ = json.NewEncoder(w).Encode(models.Product{ID: 7, Name: p.Name})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count": 1, "next": nil, "previous": nil,
			"results": []models.Product{{ID: 1, Name: "Bolt"}},
		})
	})

	return mux
}

func newAuthedClient(t *testing.T, srv *authServer) (*RESTClient, *tokens.MemStore, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(srv.handler())
	t.Cleanup(ts.Close)

	store := tokens.NewMemStore()
	c, err := New(ts.URL, store)
	require.NoError(t, err)
	return c, store, ts
}

func TestRoundTrip_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		_ = json.NewEncoder(w).Encode(map[string]any{"count": 0, "results": []any{}})
	}))
	defer ts.Close()

	store := tokens.NewMemStore()
	store.SetTokens("access-1", "refresh-1")
	c, err := New(ts.URL, store)
	require.NoError(t, err)

	_, err = c.Products(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestRoundTrip_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"features": map[string]bool{}})
	}))
	defer ts.Close()

	c, err := New(ts.URL, tokens.NewMemStore())
	require.NoError(t, err)

	_, err = c.AppConfig(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRefreshAndReplay(t *testing.T) {
	srv := &authServer{t: t, validAccess: "new-access", validRefresh: "refresh-1", nextAccess: "newer-access"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired-access", "refresh-1")
	srv.mu.Lock()
	srv.validAccess = "fresh-access"
	srv.nextAccess = "fresh-access"
	srv.mu.Unlock()

	page, err := c.Products(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Bolt", page.Results[0].Name)

	assert.EqualValues(t, 1, srv.refreshCalls.Load())
	assert.EqualValues(t, 2, srv.resourceCalls.Load())
	assert.Equal(t, "fresh-access", store.AccessToken())
	// The server did not rotate the refresh token, so it must survive.
	assert.Equal(t, "refresh-1", store.RefreshToken())
}

func TestRefreshRotatesRefreshTokenWhenServerSendsOne(t *testing.T) {
	srv := &authServer{t: t, validAccess: "v1", validRefresh: "refresh-1", nextAccess: "v2", nextRefresh: "refresh-2"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired", "refresh-1")

	_, err := c.Products(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, "v2", store.AccessToken())
	assert.Equal(t, "refresh-2", store.RefreshToken())
}

func TestConcurrentRequestsCoalesceIntoOneRefresh(t *testing.T) {
	srv := &authServer{t: t, validAccess: "fresh", validRefresh: "refresh-1", nextAccess: "fresh"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired", "refresh-1")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Products(context.Background(), ListOptions{})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d", i)
	}
	assert.EqualValues(t, 1, srv.refreshCalls.Load())
}

func TestRefreshFailureClearsSession(t *testing.T) {
	srv := &authServer{t: t, validAccess: "other", validRefresh: "refresh-1", refreshFails: true}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired", "refresh-1")
	store.SetUser(&models.StoredUser{ID: 3, Username: "kadir"})

	_, err := c.Products(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
	assert.Nil(t, store.User())
	assert.EqualValues(t, 1, srv.refreshCalls.Load())
}

func TestLogin401DoesNotTriggerRefresh(t *testing.T) {
	srv := &authServer{t: t, validAccess: "v", validRefresh: "refresh-1"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("stale", "refresh-1")

	_, err := c.Login(context.Background(), "kadir", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.EqualValues(t, 0, srv.refreshCalls.Load())
	// A failed login must not destroy an existing session.
	assert.Equal(t, "stale", store.AccessToken())
}

func TestNoRefreshTokenMeansNoRefreshCall(t *testing.T) {
	srv := &authServer{t: t, validAccess: "other", validRefresh: "refresh-1"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired", "")

	_, err := c.Products(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.EqualValues(t, 0, srv.refreshCalls.Load())
	assert.Empty(t, store.AccessToken())
}

func TestReplayHappensAtMostOnce(t *testing.T) {
	// The resource endpoint rejects everything, even the fresh token.
	var resourceCalls atomic.Int64
	var refreshCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "fresh"})
	})
	mux.HandleFunc("/api/v1/", func(w http.ResponseWriter, r *http.Request) {
		resourceCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "still no"})
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	store := tokens.NewMemStore()
	store.SetTokens("expired", "refresh-1")
	c, err := New(ts.URL, store)
	require.NoError(t, err)

	_, err = c.Products(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.EqualValues(t, 2, resourceCalls.Load())
	assert.EqualValues(t, 1, refreshCalls.Load())
}

func TestPOSTBodyIsReplayedAfterRefresh(t *testing.T) {
	srv := &authServer{t: t, validAccess: "fresh", validRefresh: "refresh-1", nextAccess: "fresh"}
	c, store, _ := newAuthedClient(t, srv)
	store.SetTokens("expired", "refresh-1")

	p, err := c.CreateProduct(context.Background(), models.NewProduct{Name: "Washer", Category: 1, Price: "2.50"})
	require.NoError(t, err)
	assert.Equal(t, "Washer", p.Name)
	assert.EqualValues(t, 1, srv.refreshCalls.Load())
	assert.EqualValues(t, 2, srv.resourceCalls.Load())
}

func TestExplicitAuthorizationHeaderIsPreserved(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer ts.Close()

	store := tokens.NewMemStore()
	store.SetTokens("stored-token", "r")
	c, err := New(ts.URL, store)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/products/", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer explicit")

	resp, err := c.httpc.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer explicit", gotAuth)
}

func TestTransportErrorMapsToUnavailable(t *testing.T) {
	store := tokens.NewMemStore()
	c, err := New("http://127.0.0.1:1", store) // nothing listens here
	require.NoError(t, err)

	_, err = c.Products(context.Background(), ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestInsufficientStockExtraKeys(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Not enough stock","code":"insufficient_stock","available":3,"already_in_invoice":2,"can_add":1}`))
	}))
	defer ts.Close()

	store := tokens.NewMemStore()
	store.SetTokens("a", "r")
	c, err := New(ts.URL, store)
	require.NoError(t, err)

	_, err = c.AddInvoiceItem(context.Background(), 1, 2, "5")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "insufficient_stock", apiErr.Code)
	assert.Equal(t, "3", string(apiErr.Extra["available"]))
	assert.Equal(t, "1", string(apiErr.Extra["can_add"]))
	assert.True(t, strings.Contains(apiErr.Error(), "Not enough stock"))
}
