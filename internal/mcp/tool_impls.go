package mcp

import (
	"context"

	"mdb/internal/envelope"
	mdberrors "mdb/internal/errors"
)

func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

func stringSliceParam(params map[string]interface{}, key string) []string {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *MCPServer) handleQuery(params map[string]interface{}) (*envelope.Response, error) {
	question := stringParam(params, "question")
	if question == "" {
		return nil, mdberrors.NewInvalidParameterError("question", "question is required")
	}
	return s.engine.Query(context.Background(), question)
}

func (s *MCPServer) handleCrossDatabaseQuery(params map[string]interface{}) (*envelope.Response, error) {
	description := stringParam(params, "query_description")
	if description == "" {
		return nil, mdberrors.NewInvalidParameterError("query_description", "query_description is required")
	}
	return s.engine.CrossQuery(context.Background(), description, stringSliceParam(params, "databases"))
}

func (s *MCPServer) handleSQL(params map[string]interface{}) (*envelope.Response, error) {
	database := stringParam(params, "database")
	if database == "" {
		return nil, mdberrors.NewInvalidParameterError("database", "database is required")
	}
	query := stringParam(params, "query")
	if query == "" {
		return nil, mdberrors.NewInvalidParameterError("query", "query is required")
	}
	return s.engine.ExecuteSQL(context.Background(), database, query)
}

func (s *MCPServer) handleSchema(params map[string]interface{}) (*envelope.Response, error) {
	database := stringParam(params, "database")
	if database == "" {
		return nil, mdberrors.NewInvalidParameterError("database", "database is required")
	}
	return s.engine.SchemaInfo(context.Background(), database, stringParam(params, "table"))
}

func (s *MCPServer) handleDatabases(params map[string]interface{}) (*envelope.Response, error) {
	return s.engine.ListSources()
}

func (s *MCPServer) handleUnifiedSearch(params map[string]interface{}) (*envelope.Response, error) {
	term := stringParam(params, "search_term")
	if term == "" {
		return nil, mdberrors.NewInvalidParameterError("search_term", "search_term is required")
	}
	return s.engine.UnifiedSearch(context.Background(), term, stringParam(params, "search_type"))
}

func (s *MCPServer) handleAggregateStats(params map[string]interface{}) (*envelope.Response, error) {
	metric := stringParam(params, "metric")
	if metric == "" {
		return nil, mdberrors.NewInvalidParameterError("metric", "metric is required")
	}
	return s.engine.AggregateStats(context.Background(), metric)
}
