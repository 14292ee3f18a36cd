// Package dispatch maps natural-language questions onto SQL statements
// through per-source template catalogs. Templates are ordered; the first
// whose guard matches wins, and every catalog ends in a help statement so
// dispatch always produces runnable SQL.
package dispatch

import (
	"fmt"
	"strings"

	"mdb/internal/config"
)

// Template pairs a guard over the lowercased question with the statement
// it produces. Statements that page results carry a %d slot for the row cap.
type Template struct {
	Match     func(q string) bool
	Statement string
}

// contains reports whether the question mentions any of the terms.
func contains(q string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

// Dispatcher resolves questions to statements for the catalogued sources.
type Dispatcher struct {
	limits   config.LimitsConfig
	catalogs map[string][]Template
}

// New builds a dispatcher with the stock catalogs.
func New(limits config.LimitsConfig) *Dispatcher {
	return &Dispatcher{
		limits: limits,
		catalogs: map[string][]Template{
			"school_erp": schoolTemplates,
			"chinook":    chinookTemplates,
			"sakila":     sakilaTemplates,
		},
	}
}

// BuildStatement resolves a question against one source's catalog. The
// question is matched lowercased; a source with no catalog gets a stub
// statement naming the problem, mirroring what callers see for any other
// unanswerable question.
func (d *Dispatcher) BuildStatement(src, question string) string {
	catalog, ok := d.catalogs[src]
	if !ok {
		return "SELECT 'Unknown database' as error"
	}

	q := strings.ToLower(question)
	for _, tpl := range catalog {
		if tpl.Match(q) {
			return d.expand(tpl.Statement)
		}
	}
	// Catalog guards are exhaustive (the last template always matches),
	// so this is unreachable for the stock catalogs.
	return "SELECT 'Unknown database' as error"
}

// expand fills the row-cap slot of statements that page.
func (d *Dispatcher) expand(statement string) string {
	if strings.Contains(statement, "%d") {
		return fmt.Sprintf(statement, d.limits.RowCap)
	}
	return statement
}
