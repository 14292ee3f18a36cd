package engine

import (
	"context"

	"mdb/internal/envelope"
	mdberrors "mdb/internal/errors"
)

// searchTypes are the accepted unified-search type values.
var searchTypes = map[string]bool{
	"all":   true,
	"name":  true,
	"email": true,
	"title": true,
	"id":    true,
}

// UnifiedSearch looks a term up across every source. Only sources with at
// least one match appear in the results; failed sources are surfaced as
// warnings and otherwise treated as matchless.
func (e *Engine) UnifiedSearch(ctx context.Context, term, searchType string) (*envelope.Response, error) {
	if term == "" {
		return nil, mdberrors.NewInvalidParameterError("search_term", "search_term must not be empty")
	}
	if searchType == "" {
		searchType = "all"
	}
	if !searchTypes[searchType] {
		return nil, mdberrors.NewInvalidParameterError("search_type",
			"search_type must be one of: all, name, email, title, id")
	}

	opID := operationID()
	e.logger.Info("unified search", "operation", opID, "term", term, "type", searchType)

	names := e.registry.Names()
	results := make(map[string]interface{})
	total := 0
	var warnings []string

	for _, src := range names {
		statement, args := e.dispatcher.SearchStatement(src, term, searchType)
		result, err := e.exec.Run(ctx, src, statement, args...)
		if err != nil {
			warnings = append(warnings, src+": "+err.Error())
			continue
		}
		if result.Count == 0 {
			continue
		}
		results[src] = map[string]interface{}{
			"matches": result.Rows,
			"count":   result.Count,
		}
		total += result.Count
	}

	builder := envelope.New().
		Data(map[string]interface{}{
			"search_term":         term,
			"search_type":         searchType,
			"total_matches":       total,
			"results_by_database": results,
			"databases_searched":  names,
		}).
		Confidence(1.0).
		Provenance(opID, names...)

	for _, w := range warnings {
		builder.WarningWithCode(string(mdberrors.ExecutionFailure), w)
	}

	return builder.Build(), nil
}
