// Package catalog holds the static table of MCP tools and the handlers
// that map each tool call onto upstream API requests.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/builddeck/builddeck-mcp/internal/common"
	"github.com/builddeck/builddeck-mcp/internal/upstream"
)

// Tool pairs an MCP tool definition with its handler.
type Tool struct {
	Def     mcp.Tool
	Handler server.ToolHandlerFunc
}

// Registry is the fixed catalog of callable tools, all backed by one
// upstream client and one validated config. It holds no mutable state
// after construction, so concurrent invocations need no locking.
type Registry struct {
	client  *upstream.Client
	cfg     *common.Config
	logger  *common.Logger
	tools   map[string]Tool
	order   []string
	started time.Time
}

// New builds the full tool table. The config has already been validated
// by the loader; the registry never re-checks it.
func New(client *upstream.Client, cfg *common.Config, logger *common.Logger) *Registry {
	r := &Registry{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		tools:   make(map[string]Tool),
		started: time.Now(),
	}

	r.add(createListClientsTool(), r.handleListClients())
	r.add(createCreateClientTool(), r.handleCreateClient())
	r.add(createListContactsTool(), r.handleListContacts())
	r.add(createCreateContactTool(), r.handleCreateContact())
	r.add(createListProposalsTool(), r.handleListProposals())
	r.add(createGetProposalDetailsTool(), r.handleGetProposalDetails())
	r.add(createListEstimatesTool(), r.handleListEstimates())
	r.add(createListActionItemsTool(), r.handleListActionItems())
	r.add(createCreateActionItemTool(), r.handleCreateActionItem())
	r.add(createAddActionItemCommentTool(), r.handleAddActionItemComment())
	r.add(createAssignActionItemSupervisorTool(), r.handleAssignActionItemSupervisor())
	r.add(createGetProjectDetailsTool(), r.handleGetProjectDetails())
	r.add(createListProjectSchedulesTool(), r.handleListProjectSchedules())
	r.add(createGetFinancialSummaryTool(), r.handleGetFinancialSummary())
	r.add(createGetProjectFinancesTool(), r.handleGetProjectFinances())
	r.add(createGetDiagnosticsTool(), r.handleGetDiagnostics())

	return r
}

func (r *Registry) add(def mcp.Tool, handler server.ToolHandlerFunc) {
	r.tools[def.Name] = Tool{Def: def, Handler: handler}
	r.order = append(r.order, def.Name)
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Attach registers every tool on the MCP server, each handler wrapped
// with correlation logging and panic recovery.
func (r *Registry) Attach(s *server.MCPServer) {
	for _, name := range r.order {
		t := r.tools[name]
		s.AddTool(t.Def, r.wrap(name, t.Handler))
	}
}

// Dispatch routes a named call to its handler. An unrecognized name
// resolves to an error result, never a fault.
func (r *Registry) Dispatch(ctx context.Context, name string, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, ok := r.tools[name]
	if !ok {
		return upstream.UnknownTool(name).ToCallResult(), nil
	}
	return r.wrap(name, t.Handler)(ctx, request)
}

// wrap tags each invocation with a correlation ID and converts handler
// panics into HandlerFault results so nothing escapes to the host.
func (r *Registry) wrap(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		correlationID := uuid.New().String()
		logger := r.logger.WithCorrelationId(correlationID)

		logger.Debug().Str("tool", name).Msg("Tool call")

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error().Str("tool", name).Msg(fmt.Sprintf("Handler panic: %v", rec))
				result = upstream.HandlerFault(name, fmt.Sprintf("%v", rec)).ToCallResult()
				err = nil
			}
		}()

		return handler(ctx, request)
	}
}
