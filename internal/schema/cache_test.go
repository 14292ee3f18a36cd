package schema

import (
	"context"
	"errors"
	"io"
	"testing"

	"mdb/internal/executor"
	"mdb/internal/logging"
)

type countingExecutor struct {
	executor.Executor

	tables    []string
	err       error
	listCalls int
}

func (c *countingExecutor) ListTables(ctx context.Context, src string) ([]string, error) {
	c.listCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.tables, nil
}

func (c *countingExecutor) DescribeTable(ctx context.Context, src, table string) ([]executor.ColumnInfo, error) {
	return []executor.ColumnInfo{{Name: "id", Type: "int"}}, nil
}

func newTestCache(t *testing.T, exec executor.Executor) *Cache {
	t.Helper()
	return NewCache(exec, logging.NewLogger(io.Discard, logging.LevelFromString("error")))
}

func TestTablesCachedAndLowercased(t *testing.T) {
	exec := &countingExecutor{tables: []string{"Album", "ARTIST"}}
	cache := newTestCache(t, exec)
	ctx := context.Background()

	got, err := cache.Tables(ctx, "chinook")
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if got[0] != "album" || got[1] != "artist" {
		t.Errorf("tables = %v, want lowercased names", got)
	}

	if _, err := cache.Tables(ctx, "chinook"); err != nil {
		t.Fatalf("Tables (cached): %v", err)
	}
	if exec.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1 (second call served from cache)", exec.listCalls)
	}
}

func TestTablesFailureNotCached(t *testing.T) {
	exec := &countingExecutor{err: errors.New("down")}
	cache := newTestCache(t, exec)
	ctx := context.Background()

	got, err := cache.Tables(ctx, "chinook")
	if err == nil {
		t.Fatal("expected the lookup error to propagate")
	}
	if len(got) != 0 {
		t.Errorf("tables = %v, want empty on failure", got)
	}

	// Source recovers; the next lookup retries instead of serving the
	// failed result.
	exec.err = nil
	exec.tables = []string{"album"}
	got, err = cache.Tables(ctx, "chinook")
	if err != nil {
		t.Fatalf("Tables after recovery: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("tables = %v, want the recovered listing", got)
	}
	if exec.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2", exec.listCalls)
	}
}

func TestColumnsUncached(t *testing.T) {
	exec := &countingExecutor{}
	cache := newTestCache(t, exec)

	cols, err := cache.Columns(context.Background(), "chinook", "album")
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	if len(cols) != 1 || cols[0].Name != "id" {
		t.Errorf("columns = %v, want the executor's answer", cols)
	}
}
