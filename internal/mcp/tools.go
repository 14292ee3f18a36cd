package mcp

import "mdb/internal/envelope"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler is a function that handles a tool call
type ToolHandler func(params map[string]interface{}) (*envelope.Response, error)

// RegisterTools registers all tool handlers
func (s *MCPServer) RegisterTools() {
	s.tools["query"] = s.handleQuery
	s.tools["cross_database_query"] = s.handleCrossDatabaseQuery
	s.tools["sql"] = s.handleSQL
	s.tools["schema"] = s.handleSchema
	s.tools["databases"] = s.handleDatabases
	s.tools["unified_search"] = s.handleUnifiedSearch
	s.tools["aggregate_stats"] = s.handleAggregateStats
}

// GetToolDefinitions returns all tool definitions
func (s *MCPServer) GetToolDefinitions() []Tool {
	sourceNames := s.engine.Registry().Names()

	return []Tool{
		{
			Name:        "query",
			Description: "Ask a natural-language question; it is routed to the most relevant database and answered",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"question": map[string]interface{}{
						"type":        "string",
						"description": "Natural language question about any of the configured databases",
					},
				},
				"required": []string{"question"},
			},
		},
		{
			Name:        "cross_database_query",
			Description: "Run a question across multiple databases and combine the results",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query_description": map[string]interface{}{
						"type":        "string",
						"description": "Description of what to compare or collect across databases",
					},
					"databases": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Databases to query; omitted means auto-detect",
					},
				},
				"required": []string{"query_description"},
			},
		},
		{
			Name:        "sql",
			Description: "Execute a SQL statement directly against one database",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"database": map[string]interface{}{
						"type":        "string",
						"enum":        sourceNames,
						"description": "Database to run the statement against",
					},
					"query": map[string]interface{}{
						"type":        "string",
						"description": "SQL statement to execute",
					},
				},
				"required": []string{"database", "query"},
			},
		},
		{
			Name:        "schema",
			Description: "Inspect a database's tables, or one table's columns and row count",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"database": map[string]interface{}{
						"type":        "string",
						"enum":        sourceNames,
						"description": "Database to inspect",
					},
					"table": map[string]interface{}{
						"type":        "string",
						"description": "Table to describe; omitted lists all tables",
					},
				},
				"required": []string{"database"},
			},
		},
		{
			Name:        "databases",
			Description: "List the configured databases and what each covers",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "unified_search",
			Description: "Search for a term across every database at once",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"search_term": map[string]interface{}{
						"type":        "string",
						"description": "Term to search for",
					},
					"search_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"all", "name", "email", "title", "id"},
						"description": "What kind of field to search; defaults to all",
					},
				},
				"required": []string{"search_term"},
			},
		},
		{
			Name:        "aggregate_stats",
			Description: "Compute aggregate statistics across every database",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"metric": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"total_records", "customers", "payments", "entity_counts"},
						"description": "Metric to compute",
					},
				},
				"required": []string{"metric"},
			},
		},
	}
}
