package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/builddeck/builddeck-mcp/internal/common"
)

// handleGetDiagnostics serves entirely from local state: version info,
// uptime, and recent entries from the logger's memory writer. No upstream
// call is made.
func (r *Registry) handleGetDiagnostics() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 50)
		correlationID := request.GetString("correlationId", "")

		var sb strings.Builder
		sb.WriteString("# Server Diagnostics\n\n")
		sb.WriteString("## Server Info\n\n")
		sb.WriteString("| Field | Value |\n")
		sb.WriteString("|-------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Version | %s |\n", common.GetFullVersion()))
		sb.WriteString(fmt.Sprintf("| Uptime | %s |\n", time.Since(r.started).Round(time.Second)))
		sb.WriteString(fmt.Sprintf("| Upstream | %s |\n", r.cfg.Upstream.BaseURL))
		sb.WriteString(fmt.Sprintf("| Tools | %d |\n", len(r.tools)))
		sb.WriteString("\n")

		var (
			logs map[string]string
			err  error
		)
		if correlationID != "" {
			sb.WriteString(fmt.Sprintf("## Logs for %s\n\n", correlationID))
			logs, err = r.logger.GetMemoryLogsForCorrelation(correlationID)
		} else {
			sb.WriteString("## Recent Logs\n\n")
			logs, err = r.logger.GetMemoryLogsWithLimit(limit)
		}
		if err != nil {
			sb.WriteString(fmt.Sprintf("log retrieval failed: %v\n", err))
			return textResult(sb.String()), nil
		}

		if len(logs) == 0 {
			sb.WriteString("No log entries available.\n")
			return textResult(sb.String()), nil
		}

		keys := make([]string, 0, len(logs))
		for k := range logs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(logs[k])
			sb.WriteString("\n")
		}

		return textResult(sb.String()), nil
	}
}
