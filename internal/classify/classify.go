// Package classify routes a natural-language question to one configured
// source. Classification runs in phases of increasing cost: configured
// keywords first, then live table names, then column names, stopping at
// the first phase that produces any signal.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mdb/internal/config"
	"mdb/internal/executor"
	"mdb/internal/source"
)

// Outcome is the routing decision kind.
type Outcome int

const (
	// Unresolved means no source scored at all.
	Unresolved Outcome = iota
	// Ambiguous means two or more sources tied for the top score.
	Ambiguous
	// Resolved means exactly one source won.
	Resolved
)

// Result is one routing decision.
type Result struct {
	Outcome    Outcome
	Source     string   // winning source, Resolved only
	Candidates []string // tied sources, Ambiguous only
	Score      int
	Scores     map[string]int // full per-source scoreboard
	Confidence int            // 0-100
	Reasoning  []string       // capped marker list explaining the score
}

// SchemaSource is the slice of the schema cache the classifier needs.
type SchemaSource interface {
	Tables(ctx context.Context, src string) ([]string, error)
	Columns(ctx context.Context, src, table string) ([]executor.ColumnInfo, error)
}

// Classifier scores a question against every registered source.
type Classifier struct {
	registry *source.Registry
	schemas  SchemaSource
	limits   config.LimitsConfig
	logger   *slog.Logger
}

// New builds a classifier.
func New(registry *source.Registry, schemas SchemaSource, limits config.LimitsConfig, logger *slog.Logger) *Classifier {
	return &Classifier{
		registry: registry,
		schemas:  schemas,
		limits:   limits,
		logger:   logger,
	}
}

type scoreboard struct {
	scores  map[string]int
	markers map[string][]string
}

func newScoreboard(names []string) *scoreboard {
	b := &scoreboard{
		scores:  make(map[string]int, len(names)),
		markers: make(map[string][]string, len(names)),
	}
	for _, n := range names {
		b.scores[n] = 0
	}
	return b
}

func (b *scoreboard) add(src string, points int, marker string) {
	b.scores[src] += points
	b.markers[src] = append(b.markers[src], marker)
}

func (b *scoreboard) max() int {
	max := 0
	for _, s := range b.scores {
		if s > max {
			max = s
		}
	}
	return max
}

// Classify scores the question and resolves it to a source. Schema lookup
// failures during the deeper phases are logged and treated as an empty
// schema; they never fail the call.
func (c *Classifier) Classify(ctx context.Context, question string) Result {
	q := strings.ToLower(question)
	names := c.registry.Names()
	board := newScoreboard(names)

	// Phase 1: configured keywords.
	for _, name := range names {
		profile, _ := c.registry.Get(name)
		for _, kw := range profile.Keywords {
			if strings.Contains(q, kw) {
				board.add(name, 1, "keyword:"+kw)
			}
		}
	}

	// Phase 2: table names, only when keywords said nothing.
	if board.max() == 0 {
		for _, name := range names {
			tables, err := c.schemas.Tables(ctx, name)
			if err != nil {
				c.logger.Debug("skipping table scan", "source", name, "error", err)
				continue
			}
			for _, table := range tables {
				if strings.Contains(q, table) {
					board.add(name, c.limits.TableMatchWeight, "table:"+table)
				}
			}
		}
	}

	// Phase 3: column names from the first few tables, only when table
	// names said nothing either.
	if board.max() == 0 {
		for _, name := range names {
			tables, err := c.schemas.Tables(ctx, name)
			if err != nil {
				continue
			}
			if len(tables) > c.limits.DeepSearchTables {
				tables = tables[:c.limits.DeepSearchTables]
			}
			for _, table := range tables {
				cols, err := c.schemas.Columns(ctx, name, table)
				if err != nil {
					c.logger.Debug("skipping column scan", "source", name, "table", table, "error", err)
					continue
				}
				for _, col := range cols {
					fragment := normalizeColumn(col.Name)
					if len(fragment) > c.limits.MinColumnFragment && strings.Contains(q, fragment) {
						board.add(name, 1, "column:"+strings.ToLower(col.Name))
					}
				}
			}
		}
	}

	return c.resolve(board)
}

func (c *Classifier) resolve(board *scoreboard) Result {
	top := board.max()
	if top == 0 {
		return Result{
			Outcome:   Unresolved,
			Scores:    board.scores,
			Reasoning: []string{"no source matched the question"},
		}
	}

	var winners []string
	for _, name := range c.registry.Names() {
		if board.scores[name] == top {
			winners = append(winners, name)
		}
	}

	if len(winners) > 1 {
		return Result{
			Outcome:    Ambiguous,
			Candidates: winners,
			Score:      top,
			Scores:     board.scores,
			Confidence: 50,
			Reasoning:  []string{fmt.Sprintf("%d sources tied with score %d", len(winners), top)},
		}
	}

	winner := winners[0]
	markers := board.markers[winner]
	if len(markers) > c.limits.ReasoningMarkers {
		markers = markers[:c.limits.ReasoningMarkers]
	}

	confidence := 100 * top / (top + 1)
	if confidence > 100 {
		confidence = 100
	}

	return Result{
		Outcome:    Resolved,
		Source:     winner,
		Score:      top,
		Scores:     board.scores,
		Confidence: confidence,
		Reasoning:  markers,
	}
}

// normalizeColumn strips trailing id/name suffixes so a column like
// "student_id" still matches the word "student" in a question.
func normalizeColumn(col string) string {
	c := strings.ToLower(col)
	c = strings.TrimSuffix(c, "_id")
	c = strings.TrimSuffix(c, "_name")
	return c
}

// broadTerms mark questions that want every source at once.
var broadTerms = []string{"all", "compare", "across", "every", "total"}

// IsBroad reports whether the question spans sources rather than naming one.
func IsBroad(question string) bool {
	q := strings.ToLower(question)
	for _, term := range broadTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}
