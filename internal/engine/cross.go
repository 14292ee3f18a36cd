package engine

import (
	"context"
	"strconv"
	"strings"

	"mdb/internal/classify"
	"mdb/internal/envelope"
	mdberrors "mdb/internal/errors"
)

// CrossQuery fans one question out to several sources and merges the
// results. When no sources are named, relevance is detected from the
// question: broad wording selects every source, otherwise keyword
// matches pick the relevant ones, and no match at all also means every
// source. Sources that fail contribute an error entry instead of rows.
func (e *Engine) CrossQuery(ctx context.Context, description string, sources []string) (*envelope.Response, error) {
	if description == "" {
		return nil, mdberrors.NewInvalidParameterError("query_description", "query_description must not be empty")
	}
	for _, src := range sources {
		if !e.registry.Has(src) {
			return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
		}
	}

	opID := operationID()
	if len(sources) == 0 {
		sources = e.relevantSources(description)
	}
	e.logger.Info("cross-source query", "operation", opID, "sources", sources)

	results := make(map[string]interface{}, len(sources))
	perSource := make(map[string][]map[string]interface{}, len(sources))
	var warnings []string

	for _, src := range sources {
		statement := e.dispatcher.CrossSourceStatement(src, description)
		result, err := e.exec.Run(ctx, src, statement)
		if err != nil {
			results[src] = map[string]interface{}{
				"error": err.Error(),
				"sql":   statement,
			}
			warnings = append(warnings, src+": "+err.Error())
			continue
		}
		results[src] = map[string]interface{}{
			"data":      result.Rows,
			"row_count": result.Count,
			"sql":       statement,
		}
		perSource[src] = result.Rows
	}

	builder := envelope.New().
		Data(map[string]interface{}{
			"query_description":  description,
			"databases_queried":  sources,
			"individual_results": results,
			"combined_analysis":  e.combineResults(perSource),
		}).
		Confidence(1.0).
		Provenance(opID, sources...)

	for _, w := range warnings {
		builder.WarningWithCode(string(mdberrors.ExecutionFailure), w)
	}

	return builder.Build(), nil
}

// relevantSources picks the sources a cross-source question should hit.
func (e *Engine) relevantSources(description string) []string {
	if classify.IsBroad(description) {
		return e.registry.Names()
	}

	q := strings.ToLower(description)
	var relevant []string
	for _, name := range e.registry.Names() {
		profile, _ := e.registry.Get(name)
		for _, kw := range profile.Keywords {
			if strings.Contains(q, kw) {
				relevant = append(relevant, name)
				break
			}
		}
	}

	if len(relevant) == 0 {
		return e.registry.Names()
	}
	return relevant
}

// combineResults merges per-source rows into a cross-source analysis:
// a per-source summary and the sum of every numeric field. Which fields
// count as numeric is decided by each source's first row.
func (e *Engine) combineResults(perSource map[string][]map[string]interface{}) map[string]interface{} {
	totals := make(map[string]float64)
	summary := make([]map[string]interface{}, 0, len(perSource))

	for _, name := range e.registry.Names() {
		rows, ok := perSource[name]
		if !ok || len(rows) == 0 {
			continue
		}

		for key, value := range rows[0] {
			if _, numeric := toFloat(value); !numeric {
				continue
			}
			if _, seen := totals[key]; !seen {
				totals[key] = 0
			}
			for _, row := range rows {
				if v, ok := toFloat(row[key]); ok {
					totals[key] += v
				}
			}
		}

		profile, _ := e.registry.Get(name)
		summary = append(summary, map[string]interface{}{
			"database":      name,
			"records_found": len(rows),
			"description":   profile.Description,
		})
	}

	return map[string]interface{}{
		"summary":    summary,
		"totals":     totals,
		"comparison": []interface{}{},
	}
}

// toFloat extracts a numeric value from the shapes database/sql scans
// produce. The mysql driver's text protocol delivers COUNT and SUM
// columns as []byte, which Run decodes to string, so numeric-looking
// strings count too.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
