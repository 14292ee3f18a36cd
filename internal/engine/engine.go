// Package engine orchestrates the named operations over the configured
// sources: routed natural-language queries, cross-source fan-out, direct
// SQL, schema inspection, unified search, and aggregate statistics.
// Every operation returns a response envelope; per-source failures are
// folded into the payload rather than failing the whole call.
package engine

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"mdb/internal/classify"
	"mdb/internal/config"
	"mdb/internal/dispatch"
	"mdb/internal/envelope"
	mdberrors "mdb/internal/errors"
	"mdb/internal/executor"
	"mdb/internal/schema"
	"mdb/internal/source"
)

// Engine wires the classifier, dispatcher, and executor together.
type Engine struct {
	registry   *source.Registry
	classifier *classify.Classifier
	dispatcher *dispatch.Dispatcher
	exec       executor.Executor
	schemas    *schema.Cache
	limits     config.LimitsConfig
	logger     *slog.Logger
}

// New builds an engine over the given collaborators.
func New(registry *source.Registry, exec executor.Executor, schemas *schema.Cache, limits config.LimitsConfig, logger *slog.Logger) *Engine {
	return &Engine{
		registry:   registry,
		classifier: classify.New(registry, schemas, limits, logger),
		dispatcher: dispatch.New(limits),
		exec:       exec,
		schemas:    schemas,
		limits:     limits,
		logger:     logger,
	}
}

// Registry exposes the source registry for callers that enumerate sources.
func (e *Engine) Registry() *source.Registry {
	return e.registry
}

// Ping probes every configured source, returning per-source errors keyed
// by name. Used by the startup connectivity check; failures are reported,
// not fatal.
func (e *Engine) Ping(ctx context.Context) map[string]error {
	failures := make(map[string]error)
	for _, name := range e.registry.Names() {
		if err := e.exec.Ping(ctx, name); err != nil {
			failures[name] = err
		}
	}
	return failures
}

// Close releases the engine's connection pools.
func (e *Engine) Close() error {
	return e.exec.Close()
}

func operationID() string {
	return uuid.NewString()
}

// sourceDescriptions maps every source name to its description, for the
// listing attached to unroutable questions.
func (e *Engine) sourceDescriptions() map[string]string {
	out := make(map[string]string, e.registry.Len())
	for _, name := range e.registry.Names() {
		profile, _ := e.registry.Get(name)
		out[name] = profile.Description
	}
	return out
}

// Query answers a natural-language question: classify it to one source,
// dispatch it through that source's template catalog, and run the result.
func (e *Engine) Query(ctx context.Context, question string) (*envelope.Response, error) {
	if question == "" {
		return nil, mdberrors.NewInvalidParameterError("question", "question must not be empty")
	}

	opID := operationID()
	decision := e.classifier.Classify(ctx, question)

	switch decision.Outcome {
	case classify.Unresolved:
		e.logger.Info("query unresolved", "operation", opID, "question", question)
		return envelope.New().
			Data(map[string]interface{}{
				"success":             false,
				"question":            question,
				"scores":              decision.Scores,
				"suggestion":          "Please specify which database to query or use more specific keywords",
				"available_databases": e.sourceDescriptions(),
			}).
			ConfidenceTier(0, envelope.TierLow, decision.Reasoning...).
			Provenance(opID).
			Error(mdberrors.New(mdberrors.ClassificationUnresolved,
				"could not route the question to any configured source", nil)).
			Suggest("databases", nil, "list the available sources and what they cover").
			Build(), nil

	case classify.Ambiguous:
		e.logger.Info("query ambiguous", "operation", opID, "question", question, "candidates", decision.Candidates)
		return envelope.New().
			Data(map[string]interface{}{
				"success":    false,
				"question":   question,
				"candidates": decision.Candidates,
				"scores":     decision.Scores,
			}).
			ConfidenceTier(float64(decision.Confidence)/100, envelope.TierMedium, decision.Reasoning...).
			Provenance(opID).
			Error(mdberrors.New(mdberrors.ClassificationAmbiguous,
				"the question matches more than one source equally well", nil)).
			Suggest("cross_database_query", map[string]interface{}{"query_description": question},
				"run the question across all matching sources").
			Build(), nil
	}

	src := decision.Source
	profile, _ := e.registry.Get(src)
	statement := e.dispatcher.BuildStatement(src, question)

	e.logger.Info("query routed", "operation", opID, "source", src,
		"confidence", decision.Confidence, "score", decision.Score)

	result, err := e.exec.Run(ctx, src, statement)
	if err != nil {
		return envelope.New().
			Data(map[string]interface{}{
				"success":           false,
				"question":          question,
				"detected_database": src,
				"confidence":        decision.Confidence,
			}).
			ConfidenceTier(float64(decision.Confidence)/100, envelope.ScoreToTier(float64(decision.Confidence)/100), decision.Reasoning...).
			Provenance(opID, src).
			Error(err).
			Suggest("sql", map[string]interface{}{"database": src},
				"rephrase the question or run SQL directly against the source").
			Build(), nil
	}

	return envelope.New().
		Data(map[string]interface{}{
			"success":              true,
			"question":             question,
			"detected_database":    src,
			"confidence":           decision.Confidence,
			"reasoning":            decision.Reasoning,
			"database_description": profile.Description,
			"sql":                  statement,
			"data":                 result.Rows,
			"row_count":            result.Count,
		}).
		Confidence(float64(decision.Confidence)/100, decision.Reasoning...).
		Provenance(opID, src).
		Build(), nil
}

// ExecuteSQL runs a statement directly against a named source. Reads
// return rows; anything else returns the affected row count.
func (e *Engine) ExecuteSQL(ctx context.Context, src, statement string) (*envelope.Response, error) {
	if statement == "" {
		return nil, mdberrors.NewInvalidParameterError("query", "query must not be empty")
	}
	if !e.registry.Has(src) {
		return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
	}

	opID := operationID()
	e.logger.Info("direct sql", "operation", opID, "source", src)

	if executor.IsReadStatement(statement) {
		result, err := e.exec.Run(ctx, src, statement)
		if err != nil {
			return nil, err
		}
		return envelope.New().
			Data(map[string]interface{}{
				"success":   true,
				"database":  src,
				"columns":   result.Columns,
				"data":      result.Rows,
				"row_count": result.Count,
			}).
			Confidence(1.0).
			Provenance(opID, src).
			Build(), nil
	}

	result, err := e.exec.Exec(ctx, src, statement)
	if err != nil {
		return nil, err
	}
	return envelope.New().
		Data(map[string]interface{}{
			"success":       true,
			"database":      src,
			"rows_affected": result.RowsAffected,
		}).
		Confidence(1.0).
		Provenance(opID, src).
		Build(), nil
}

// SchemaInfo describes one source: its table listing, or one table's
// columns and row count when a table is named.
func (e *Engine) SchemaInfo(ctx context.Context, src, table string) (*envelope.Response, error) {
	if !e.registry.Has(src) {
		return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
	}

	opID := operationID()
	profile, _ := e.registry.Get(src)

	if table == "" {
		tables, err := e.exec.ListTables(ctx, src)
		if err != nil {
			return nil, err
		}
		return envelope.New().
			Data(map[string]interface{}{
				"database":    src,
				"description": profile.Description,
				"tables":      tables,
				"table_count": len(tables),
			}).
			Confidence(1.0).
			Provenance(opID, src).
			Build(), nil
	}

	columns, err := e.exec.DescribeTable(ctx, src, table)
	if err != nil {
		return nil, err
	}

	builder := envelope.New().Confidence(1.0).Provenance(opID, src)
	data := map[string]interface{}{
		"database": src,
		"table":    table,
		"columns":  columns,
	}

	count, err := e.exec.Run(ctx, src, dispatch.CountStatement(table))
	if err == nil && count.Count > 0 {
		data["row_count"] = count.Rows[0]["count"]
	} else if err != nil {
		builder.Warning("row count unavailable: " + err.Error())
	}

	return builder.Data(data).Build(), nil
}

// ListSources enumerates the configured sources.
func (e *Engine) ListSources() (*envelope.Response, error) {
	sources := make([]map[string]interface{}, 0, e.registry.Len())
	for _, name := range e.registry.Names() {
		profile, _ := e.registry.Get(name)
		cfg, _ := e.registry.Config(name)
		sources = append(sources, map[string]interface{}{
			"name":        name,
			"description": profile.Description,
			"host":        cfg.Host,
		})
	}

	return envelope.Operational(map[string]interface{}{
		"databases": sources,
		"total":     len(sources),
	}), nil
}
