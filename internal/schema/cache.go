// Package schema caches table listings per source so routing does not
// hit the database on every call.
package schema

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"mdb/internal/executor"
)

// Cache memoizes the lowercased table names of each source. Failed
// lookups are not cached, so a source that comes up later is retried.
type Cache struct {
	exec   executor.Executor
	logger *slog.Logger

	mu     sync.RWMutex
	tables map[string][]string
}

// NewCache builds a cache over the given executor.
func NewCache(exec executor.Executor, logger *slog.Logger) *Cache {
	return &Cache{
		exec:   exec,
		logger: logger,
		tables: make(map[string][]string),
	}
}

// Tables returns the lowercased table names of a source, populating the
// cache on first access. Lookup failures yield an empty slice and an error;
// nothing is cached in that case.
func (c *Cache) Tables(ctx context.Context, src string) ([]string, error) {
	c.mu.RLock()
	cached, ok := c.tables[src]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	names, err := c.exec.ListTables(ctx, src)
	if err != nil {
		c.logger.Debug("table listing failed", "source", src, "error", err)
		return []string{}, err
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	c.mu.Lock()
	c.tables[src] = lowered
	c.mu.Unlock()

	return lowered, nil
}

// Columns returns column metadata for one table. Column listings are not
// cached; they are only consulted on the deep classification path and for
// explicit schema calls.
func (c *Cache) Columns(ctx context.Context, src, table string) ([]executor.ColumnInfo, error) {
	return c.exec.DescribeTable(ctx, src, table)
}
