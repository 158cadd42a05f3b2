package client

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/common"
	"github.com/stocklyhq/stockly/internal/logging"
)

// authTransport is the request/response interceptor pair.
//
// Outbound: attach "Authorization: Bearer <access>" when a token is stored
// and the request does not already carry the header (explicitly set headers
// are never overwritten), and stamp a request id.
//
// Inbound: a 401 on a non-auth endpoint engages the refresh coordinator and
// replays the request once with the fresh token. The replay goes straight
// to the base transport, so a second 401 propagates instead of looping.
type authTransport struct {
	base        http.RoundTripper
	store       tokens.Store
	coordinator *refreshCoordinator
	log         logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(common.AuthorizationHeader) == "" {
		if access := t.store.AccessToken(); access != "" {
			r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+access)
		}
	}
	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Login and refresh 401s are terminal: recovering here would loop.
	if isAuthEndpoint(r.URL.Path) {
		return resp, nil
	}

	// No refresh token means no recovery: drop the session and let the
	// original error surface. No network call is made.
	if t.store.RefreshToken() == "" {
		t.store.Clear()
		return resp, nil
	}

	// A request whose body cannot be rewound cannot be replayed.
	if r.Body != nil && r.GetBody == nil {
		return resp, nil
	}

	access, rerr := t.coordinator.refresh(r.Context())
	if rerr != nil || access == "" {
		// Session already cleared by the coordinator; the caller sees the
		// original 401.
		return resp, nil
	}

	drain(resp)
	retry := req.Clone(req.Context())
	if retry.GetBody != nil {
		body, berr := retry.GetBody()
		if berr != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.Header.Set(common.AuthorizationHeader, common.BearerPrefix+access)
	retry.Header.Set(common.RequestIDHeader, uuid.NewString())
	t.log.Debug(req.Context(), "replaying request after token refresh", "method", retry.Method, "path", retry.URL.Path)
	return t.base.RoundTrip(retry)
}

// drain discards and closes a response body so the underlying connection
// can be reused for the replay.
func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
