package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/builddeck/builddeck-mcp/internal/upstream"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// combinedResult joins labeled sections into one text block. The error
// flag is set when any issued sub-call errored, partial text included.
func combinedResult(sections []string, isError bool) *mcp.CallToolResult {
	res := textResult(strings.Join(sections, "\n\n"))
	res.IsError = isError
	return res
}

// --- Handlers ---

func (r *Registry) handleListClients() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/clients",
			Query: map[string]any{
				"page":  request.GetInt("page", 1),
				"limit": request.GetInt("limit", r.cfg.Upstream.PageLimit),
			},
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleCreateClient() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil || name == "" {
			return errorResult("Error: name parameter is required"), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodPost,
			Path:   "/clients",
			Body:   request.GetArguments(),
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleListContacts() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if limit := request.GetInt("limit", 0); limit > 0 {
			query["limit"] = limit
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/contacts",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleCreateContact() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		firstName, err := request.RequireString("firstName")
		if err != nil || firstName == "" {
			return errorResult("Error: firstName parameter is required"), nil
		}
		lastName, err := request.RequireString("lastName")
		if err != nil || lastName == "" {
			return errorResult("Error: lastName parameter is required"), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodPost,
			Path:   "/contacts",
			Body:   request.GetArguments(),
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleListProposals() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if limit := request.GetInt("limit", 0); limit > 0 {
			query["limit"] = limit
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/proposals",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

// handleGetProposalDetails fetches a proposal and, when includeLines is
// set and the primary fetch succeeded, its line items as a second call.
func (r *Registry) handleGetProposalDetails() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		proposalID, err := request.RequireString("proposalId")
		if err != nil || proposalID == "" {
			return errorResult("Error: proposalId parameter is required"), nil
		}

		primary := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/proposals/" + url.PathEscape(proposalID),
		})

		if !request.GetBool("includeLines", false) {
			return primary.ToCallResult(), nil
		}

		sections := []string{"PROPOSAL:\n" + primary.Text()}
		if primary.IsError() {
			// No point fetching lines for a proposal that failed to load.
			return combinedResult(sections, true), nil
		}

		lines := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/proposallines",
			Query:  map[string]any{"proposalId": proposalID},
		})
		sections = append(sections, "PROPOSAL LINES:\n"+lines.Text())

		return combinedResult(sections, lines.IsError()), nil
	}
}

func (r *Registry) handleListEstimates() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if limit := request.GetInt("limit", 0); limit > 0 {
			query["limit"] = limit
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/estimates",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleListActionItems() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if projectID := request.GetString("projectId", ""); projectID != "" {
			query["projectId"] = projectID
		}
		if limit := request.GetInt("limit", 0); limit > 0 {
			query["limit"] = limit
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/action-items",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

// handleCreateActionItem validates the composed payload against the
// action-item schema before anything goes upstream: type 2 requires a
// costChange object, type 3 a scheduleChange object.
func (r *Registry) handleCreateActionItem() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("projectId")
		if err != nil || projectID == "" {
			return errorResult("Error: projectId parameter is required"), nil
		}
		actionTypeID, err := request.RequireInt("actionTypeId")
		if err != nil {
			return errorResult("Error: actionTypeId parameter is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil || title == "" {
			return errorResult("Error: title parameter is required"), nil
		}

		payload := map[string]any{
			"ProjectId":    projectID,
			"ActionTypeId": actionTypeID,
			"Title":        title,
		}
		if desc := request.GetString("description", ""); desc != "" {
			payload["Description"] = desc
		}
		args := request.GetArguments()
		if cc, ok := args["costChange"]; ok && cc != nil {
			payload["CostChange"] = cc
		}
		if sc, ok := args["scheduleChange"]; ok && sc != nil {
			payload["ScheduleChange"] = sc
		}

		if err := validateActionItemPayload(payload); err != nil {
			return errorResult(fmt.Sprintf("Invalid action item: %v", err)), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodPost,
			Path:   "/action-items",
			Body:   payload,
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleAddActionItemComment() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		actionItemID, err := request.RequireString("actionItemId")
		if err != nil || actionItemID == "" {
			return errorResult("Error: actionItemId parameter is required"), nil
		}
		comment, err := request.RequireString("comment")
		if err != nil || comment == "" {
			return errorResult("Error: comment parameter is required"), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/action-items/%s/comments", url.PathEscape(actionItemID)),
			Body:   map[string]any{"Comment": comment},
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleAssignActionItemSupervisor() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		actionItemID, err := request.RequireString("actionItemId")
		if err != nil || actionItemID == "" {
			return errorResult("Error: actionItemId parameter is required"), nil
		}
		supervisorID, err := request.RequireInt("supervisorId")
		if err != nil {
			return errorResult("Error: supervisorId parameter is required"), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodPost,
			Path:   fmt.Sprintf("/action-items/%s/supervisors", url.PathEscape(actionItemID)),
			Body:   map[string]any{"SupervisorId": supervisorID},
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleGetProjectDetails() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("projectId")
		if err != nil || projectID == "" {
			return errorResult("Error: projectId parameter is required"), nil
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/project-details/" + url.PathEscape(projectID),
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleListProjectSchedules() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if limit := request.GetInt("limit", 0); limit > 0 {
			query["limit"] = limit
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/project-schedules",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

func (r *Registry) handleGetFinancialSummary() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := map[string]any{}
		if groupBy := request.GetString("groupBy", ""); groupBy != "" {
			query["groupBy"] = groupBy
		}
		if startDate := request.GetString("startDate", ""); startDate != "" {
			query["startDate"] = startDate
		}
		if endDate := request.GetString("endDate", ""); endDate != "" {
			query["endDate"] = endDate
		}

		res := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/transactions/summary",
			Query:  query,
		})
		return res.ToCallResult(), nil
	}
}

// handleGetProjectFinances always issues both fetches; either failure
// flags the combined result while keeping whatever text came back.
func (r *Registry) handleGetProjectFinances() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("projectId")
		if err != nil || projectID == "" {
			return errorResult("Error: projectId parameter is required"), nil
		}

		balances := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/job-balances",
			Query:  map[string]any{"projectId": projectID},
		})
		variance := r.client.Do(ctx, upstream.Request{
			Method: http.MethodGet,
			Path:   "/cost-variance",
			Query:  map[string]any{"projectId": projectID},
		})

		sections := []string{
			"JOB BALANCES:\n" + balances.Text(),
			"COST VARIANCE:\n" + variance.Text(),
		}
		return combinedResult(sections, balances.IsError() || variance.IsError()), nil
	}
}
