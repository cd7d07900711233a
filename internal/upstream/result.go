package upstream

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Kind classifies the outcome of a tool-level operation. Expected failure
// classes are carried as values, never as Go errors: callers check IsError()
// instead of relying on error propagation.
type Kind int

const (
	KindOK Kind = iota
	KindHTTPError
	KindNetworkError
	KindUnknownTool
	KindHandlerFault
)

// Result is the uniform envelope every upstream exchange resolves to.
type Result struct {
	Kind    Kind
	Status  int    // HTTP status code, KindHTTPError only
	Body    string // pretty-printed response body (KindOK, KindHTTPError)
	Message string // detail for network errors and handler faults
	Tool    string // tool name for unknown-tool and fault results
}

// OK wraps a successful, already pretty-printed response body.
func OK(body string) Result {
	return Result{Kind: KindOK, Body: body}
}

// HTTPError wraps a non-success upstream status and its body.
func HTTPError(status int, body string) Result {
	return Result{Kind: KindHTTPError, Status: status, Body: body}
}

// NetworkError wraps a transport-level failure (connection, DNS, body read,
// or response JSON parse).
func NetworkError(message string) Result {
	return Result{Kind: KindNetworkError, Message: message}
}

// NetworkErrorf is NetworkError with formatting.
func NetworkErrorf(format string, args ...any) Result {
	return NetworkError(fmt.Sprintf(format, args...))
}

// UnknownTool reports a dispatch request for a name not in the catalog.
func UnknownTool(name string) Result {
	return Result{Kind: KindUnknownTool, Tool: name}
}

// HandlerFault reports a recovered handler panic.
func HandlerFault(tool, message string) Result {
	return Result{Kind: KindHandlerFault, Tool: tool, Message: message}
}

// IsError reports whether the result carries any failure class.
func (r Result) IsError() bool {
	return r.Kind != KindOK
}

// Text renders the human-readable text for the result. Error text always
// names the failure class so the caller can diagnose without extra context.
func (r Result) Text() string {
	switch r.Kind {
	case KindOK:
		return r.Body
	case KindHTTPError:
		return fmt.Sprintf("API Error %d: %s", r.Status, r.Body)
	case KindNetworkError:
		return fmt.Sprintf("Network Error: %s", r.Message)
	case KindUnknownTool:
		return fmt.Sprintf("Unknown tool: %s", r.Tool)
	case KindHandlerFault:
		return fmt.Sprintf("Tool %s failed: %s", r.Tool, r.Message)
	default:
		return r.Message
	}
}

// ToCallResult converts the result into the MCP envelope: a single text
// content block plus the error flag.
func (r Result) ToCallResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(r.Text())},
		IsError: r.IsError(),
	}
}
