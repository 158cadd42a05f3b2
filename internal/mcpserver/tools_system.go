package mcpserver

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stocklyhq/stockly/internal/buildinfo"
)

type healthCheckInput struct{}

type healthCheckOutput struct {
	Reachable bool   `json:"reachable"`
	LatencyMS int64  `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

func (s *server) handleHealthCheck(ctx context.Context, _ *mcpsdk.CallToolRequest, _ healthCheckInput) (*mcpsdk.CallToolResult, healthCheckOutput, error) {
	start := time.Now()
	err := s.upstream.Ping(ctx)
	out := healthCheckOutput{
		Reachable: err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		out.Detail = err.Error()
	}
	return nil, out, nil
}

type getSystemInfoInput struct{}

type systemInfoOutput struct {
	BridgeVersion string `json:"bridge_version"`
	BuildDate     string `json:"build_date,omitempty"`
	Commit        string `json:"commit,omitempty"`
	UpstreamURL   string `json:"upstream_url,omitempty"`
	Transport     string `json:"transport"`
}

func (s *server) handleGetSystemInfo(_ context.Context, _ *mcpsdk.CallToolRequest, _ getSystemInfoInput) (*mcpsdk.CallToolResult, systemInfoOutput, error) {
	transport := "stdio"
	if s.cfg.Listen != "" {
		transport = "streamable-http"
	}
	return nil, systemInfoOutput{
		BridgeVersion: buildinfo.Version,
		BuildDate:     buildinfo.Date,
		Commit:        buildinfo.Commit,
		UpstreamURL:   s.cfg.UpstreamBaseURL,
		Transport:     transport,
	}, nil
}
