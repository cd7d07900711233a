package upstream

import (
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestResult_Text(t *testing.T) {
	cases := []struct {
		name   string
		result Result
		want   string
	}{
		{"ok", OK(`{"id": "1"}`), `{"id": "1"}`},
		{"http error", HTTPError(404, `{"error": "not found"}`), `API Error 404: {"error": "not found"}`},
		{"network error", NetworkError("connection refused"), "Network Error: connection refused"},
		{"unknown tool", UnknownTool("no_such_tool"), "Unknown tool: no_such_tool"},
		{"handler fault", HandlerFault("list_clients", "index out of range"), "Tool list_clients failed: index out of range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.result.Text(); got != tc.want {
				t.Errorf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResult_IsError(t *testing.T) {
	if OK("{}").IsError() {
		t.Error("OK result must not be an error")
	}
	for _, r := range []Result{
		HTTPError(500, "{}"),
		NetworkError("refused"),
		UnknownTool("x"),
		HandlerFault("x", "boom"),
	} {
		if !r.IsError() {
			t.Errorf("Result kind %v must be an error", r.Kind)
		}
	}
}

func TestResult_ToCallResult(t *testing.T) {
	res := HTTPError(404, `{"error": "gone"}`).ToCallResult()

	if !res.IsError {
		t.Error("Expected IsError on the call result")
	}
	if len(res.Content) != 1 {
		t.Fatalf("Content must never be empty, got %d blocks", len(res.Content))
	}
	text := res.Content[0].(mcp.TextContent).Text
	if !strings.HasPrefix(text, "API Error 404:") {
		t.Errorf("Expected API Error prefix, got %q", text)
	}

	ok := OK(`{"id": "1"}`).ToCallResult()
	if ok.IsError {
		t.Error("Success result must not set IsError")
	}
}
