package catalog

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

func createListClientsTool() mcp.Tool {
	return mcp.NewTool("list_clients",
		mcp.WithDescription("List clients in the BuildDeck account. Returns a paged collection of client records."),
		mcp.WithNumber("page", mcp.Description("Page number to fetch (default: 1)")),
		mcp.WithNumber("limit", mcp.Description("Maximum clients per page (default: configured page limit)")),
	)
}

func createCreateClientTool() mcp.Tool {
	return mcp.NewTool("create_client",
		mcp.WithDescription("Create a new client record."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Client or company name")),
		mcp.WithString("email", mcp.Description("Primary contact email address")),
		mcp.WithString("phone", mcp.Description("Primary contact phone number")),
		mcp.WithString("address", mcp.Description("Postal address")),
	)
}

func createListContactsTool() mcp.Tool {
	return mcp.NewTool("list_contacts",
		mcp.WithDescription("List contacts in the BuildDeck account."),
		mcp.WithNumber("limit", mcp.Description("Maximum contacts to return")),
	)
}

func createCreateContactTool() mcp.Tool {
	return mcp.NewTool("create_contact",
		mcp.WithDescription("Create a new contact record."),
		mcp.WithString("firstName", mcp.Required(), mcp.Description("Contact first name")),
		mcp.WithString("lastName", mcp.Required(), mcp.Description("Contact last name")),
		mcp.WithString("email", mcp.Description("Contact email address")),
		mcp.WithString("phone", mcp.Description("Contact phone number")),
		mcp.WithString("clientId", mcp.Description("Client this contact belongs to")),
	)
}

func createListProposalsTool() mcp.Tool {
	return mcp.NewTool("list_proposals",
		mcp.WithDescription("List proposals. Returns proposal headers without line items; use get_proposal_details for lines."),
		mcp.WithNumber("limit", mcp.Description("Maximum proposals to return")),
	)
}

func createGetProposalDetailsTool() mcp.Tool {
	return mcp.NewTool("get_proposal_details",
		mcp.WithDescription("Get a single proposal by ID, optionally including its line items."),
		mcp.WithString("proposalId", mcp.Required(), mcp.Description("Proposal identifier")),
		mcp.WithBoolean("includeLines", mcp.Description("Also fetch the proposal's line items (default: false)")),
	)
}

func createListEstimatesTool() mcp.Tool {
	return mcp.NewTool("list_estimates",
		mcp.WithDescription("List estimates."),
		mcp.WithNumber("limit", mcp.Description("Maximum estimates to return")),
	)
}

func createListActionItemsTool() mcp.Tool {
	return mcp.NewTool("list_action_items",
		mcp.WithDescription("List action items, optionally filtered to a project."),
		mcp.WithString("projectId", mcp.Description("Only return action items for this project")),
		mcp.WithNumber("limit", mcp.Description("Maximum action items to return")),
	)
}

func createCreateActionItemTool() mcp.Tool {
	return mcp.NewTool("create_action_item",
		mcp.WithDescription("Create an action item. Type 1 is a plain task; type 2 is a cost change and requires costChange; type 3 is a schedule change and requires scheduleChange."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project the action item belongs to")),
		mcp.WithNumber("actionTypeId", mcp.Required(), mcp.Description("Action type: 1 = task, 2 = cost change, 3 = schedule change")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Short action item title")),
		mcp.WithString("description", mcp.Description("Longer description of the action item")),
		mcp.WithObject("costChange", mcp.Description("Cost change details for type 2: {amount: number, reason: string}")),
		mcp.WithObject("scheduleChange", mcp.Description("Schedule change details for type 3: {days: number, reason: string}")),
	)
}

func createAddActionItemCommentTool() mcp.Tool {
	return mcp.NewTool("add_action_item_comment",
		mcp.WithDescription("Add a comment to an existing action item."),
		mcp.WithString("actionItemId", mcp.Required(), mcp.Description("Action item identifier")),
		mcp.WithString("comment", mcp.Required(), mcp.Description("Comment text to append")),
	)
}

func createAssignActionItemSupervisorTool() mcp.Tool {
	return mcp.NewTool("assign_action_item_supervisor",
		mcp.WithDescription("Assign a supervisor to an action item."),
		mcp.WithString("actionItemId", mcp.Required(), mcp.Description("Action item identifier")),
		mcp.WithNumber("supervisorId", mcp.Required(), mcp.Description("Supervisor user ID to assign")),
	)
}

func createGetProjectDetailsTool() mcp.Tool {
	return mcp.NewTool("get_project_details",
		mcp.WithDescription("Get full details for a single project."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project identifier")),
	)
}

func createListProjectSchedulesTool() mcp.Tool {
	return mcp.NewTool("list_project_schedules",
		mcp.WithDescription("List project schedules."),
		mcp.WithNumber("limit", mcp.Description("Maximum schedules to return")),
	)
}

func createGetFinancialSummaryTool() mcp.Tool {
	return mcp.NewTool("get_financial_summary",
		mcp.WithDescription("Get a transaction summary across the account, optionally grouped and bounded by date."),
		mcp.WithString("groupBy", mcp.Enum("month", "year", "week"), mcp.Description("Grouping bucket: month, year, or week")),
		mcp.WithString("startDate", mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("endDate", mcp.Description("End date in YYYY-MM-DD format")),
	)
}

func createGetProjectFinancesTool() mcp.Tool {
	return mcp.NewTool("get_project_finances",
		mcp.WithDescription("Get the financial position of a project: job balances plus cost variance, combined in one result."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project identifier")),
	)
}

func createGetDiagnosticsTool() mcp.Tool {
	return mcp.NewTool("get_diagnostics",
		mcp.WithDescription("Get server diagnostics: version, uptime, and recent log entries."),
		mcp.WithString("correlationId", mcp.Description("If provided, returns logs for a specific correlation ID")),
		mcp.WithNumber("limit", mcp.Description("Maximum recent log entries (default: 50)")),
	)
}
