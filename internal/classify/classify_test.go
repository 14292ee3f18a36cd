package classify

import (
	"context"
	"io"
	"testing"

	"mdb/internal/config"
	"mdb/internal/executor"
	"mdb/internal/logging"
	"mdb/internal/source"
)

// fakeSchemas serves canned tables and columns and records how often the
// deeper phases were consulted.
type fakeSchemas struct {
	tables      map[string][]string
	columns     map[string][]executor.ColumnInfo // keyed by src/table
	tablesCalls int
	columnCalls int
	err         error
}

func (f *fakeSchemas) Tables(ctx context.Context, src string) ([]string, error) {
	f.tablesCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tables[src], nil
}

func (f *fakeSchemas) Columns(ctx context.Context, src, table string) ([]executor.ColumnInfo, error) {
	f.columnCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.columns[src+"/"+table], nil
}

func newTestClassifier(t *testing.T, schemas SchemaSource) *Classifier {
	t.Helper()
	cfg := config.DefaultConfig()
	registry := source.NewRegistry(cfg.Sources)
	logger := logging.NewLogger(io.Discard, logging.LevelFromString("error"))
	return New(registry, schemas, cfg.Limits, logger)
}

func TestClassifyKeywordRouting(t *testing.T) {
	tests := []struct {
		name       string
		question   string
		wantSource string
	}{
		{name: "student routes to school", question: "How many students are enrolled?", wantSource: "school_erp"},
		{name: "album routes to music store", question: "List all albums", wantSource: "chinook"},
		{name: "film routes to rentals", question: "Which films are rated PG?", wantSource: "sakila"},
		{name: "multiple keywords strengthen", question: "show teacher attendance and fee payment", wantSource: "school_erp"},
		{name: "case insensitive", question: "SHOW ME THE PLAYLIST TRACKS", wantSource: "chinook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(t, &fakeSchemas{})
			got := c.Classify(context.Background(), tt.question)

			if got.Outcome != Resolved {
				t.Fatalf("outcome = %v, want Resolved (reasoning: %v)", got.Outcome, got.Reasoning)
			}
			if got.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", got.Source, tt.wantSource)
			}
			if got.Confidence <= 0 || got.Confidence > 100 {
				t.Errorf("confidence = %d, want within (0, 100]", got.Confidence)
			}
		})
	}
}

func TestClassifyUnresolved(t *testing.T) {
	c := newTestClassifier(t, &fakeSchemas{})
	got := c.Classify(context.Background(), "what is the meaning of life?")

	if got.Outcome != Unresolved {
		t.Fatalf("outcome = %v, want Unresolved", got.Outcome)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %d, want 0", got.Confidence)
	}
	if len(got.Scores) != 3 {
		t.Fatalf("scores = %v, want an entry per source", got.Scores)
	}
	for src, score := range got.Scores {
		if score != 0 {
			t.Errorf("scores[%s] = %d, want 0", src, score)
		}
	}
}

func TestClassifyAmbiguousTie(t *testing.T) {
	// "payment" is a keyword of both school_erp and sakila.
	c := newTestClassifier(t, &fakeSchemas{})
	got := c.Classify(context.Background(), "payment details")

	if got.Outcome != Ambiguous {
		t.Fatalf("outcome = %v, want Ambiguous (scores: %v)", got.Outcome, got.Scores)
	}
	if got.Confidence != 50 {
		t.Errorf("confidence = %d, want 50", got.Confidence)
	}
	if len(got.Candidates) != 2 {
		t.Fatalf("candidates = %v, want two", got.Candidates)
	}
	for _, candidate := range []string{"school_erp", "sakila"} {
		if got.Scores[candidate] != 1 {
			t.Errorf("scores[%s] = %d, want 1", candidate, got.Scores[candidate])
		}
	}
	if got.Scores["chinook"] != 0 {
		t.Errorf("scores[chinook] = %d, want 0", got.Scores["chinook"])
	}
}

func TestClassifySkipsDeepPhasesWhenKeywordsMatch(t *testing.T) {
	schemas := &fakeSchemas{}
	c := newTestClassifier(t, schemas)

	got := c.Classify(context.Background(), "how many students")
	if got.Outcome != Resolved {
		t.Fatalf("outcome = %v, want Resolved", got.Outcome)
	}
	if schemas.tablesCalls != 0 {
		t.Errorf("tables consulted %d times, want 0 when keywords match", schemas.tablesCalls)
	}
}

func TestClassifyTableNamePhase(t *testing.T) {
	// Table names chosen to contain no configured keyword, so the
	// keyword phase stays silent.
	schemas := &fakeSchemas{
		tables: map[string][]string{
			"school_erp": {"sms_houses"},
			"chinook":    {"warehouse_bins"},
			"sakila":     {"sakila_meta"},
		},
	}
	c := newTestClassifier(t, schemas)

	got := c.Classify(context.Background(), "dump warehouse_bins rows")
	if got.Outcome != Resolved {
		t.Fatalf("outcome = %v, want Resolved (reasoning: %v)", got.Outcome, got.Reasoning)
	}
	if got.Source != "chinook" {
		t.Errorf("source = %q, want chinook", got.Source)
	}
	// A single table hit outweighs a single keyword hit.
	if got.Score != 5 {
		t.Errorf("score = %d, want 5", got.Score)
	}
}

func TestClassifyColumnPhase(t *testing.T) {
	schemas := &fakeSchemas{
		tables: map[string][]string{
			"school_erp": {"sms_students"},
			"chinook":    {},
			"sakila":     {},
		},
		columns: map[string][]executor.ColumnInfo{
			"school_erp/sms_students": {
				{Name: "guardian_name"},
				{Name: "id"},
			},
		},
	}
	c := newTestClassifier(t, schemas)

	// "guardian" appears in no keyword or table list, only as the
	// normalized guardian_name column.
	got := c.Classify(context.Background(), "who is the guardian?")
	if got.Outcome != Resolved {
		t.Fatalf("outcome = %v, want Resolved (reasoning: %v)", got.Outcome, got.Reasoning)
	}
	if got.Source != "school_erp" {
		t.Errorf("source = %q, want school_erp", got.Source)
	}
}

func TestClassifySwallowsSchemaErrors(t *testing.T) {
	schemas := &fakeSchemas{err: context.DeadlineExceeded}
	c := newTestClassifier(t, schemas)

	got := c.Classify(context.Background(), "no keywords match this at all?")
	if got.Outcome != Unresolved {
		t.Fatalf("outcome = %v, want Unresolved when schema lookups fail", got.Outcome)
	}
}

func TestClassifyReasoningCapped(t *testing.T) {
	cfg := config.DefaultConfig()
	c := newTestClassifier(t, &fakeSchemas{})

	// Seven school keywords in a single question.
	got := c.Classify(context.Background(),
		"student teacher class fee attendance marks exam")
	if got.Outcome != Resolved {
		t.Fatalf("outcome = %v, want Resolved", got.Outcome)
	}
	if len(got.Reasoning) > cfg.Limits.ReasoningMarkers {
		t.Errorf("reasoning has %d markers, cap is %d", len(got.Reasoning), cfg.Limits.ReasoningMarkers)
	}
	if got.Score <= cfg.Limits.ReasoningMarkers {
		t.Errorf("score = %d, want more than the marker cap to prove the cap trims", got.Score)
	}
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"student_id", "student"},
		{"guardian_name", "guardian"},
		{"Email", "email"},
		{"id", "id"},
	}
	for _, tt := range tests {
		if got := normalizeColumn(tt.in); got != tt.want {
			t.Errorf("normalizeColumn(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsBroad(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"compare customers across systems", true},
		{"total revenue", true},
		{"list the albums", false},
		{"EVERY database", true},
	}
	for _, tt := range tests {
		if got := IsBroad(tt.question); got != tt.want {
			t.Errorf("IsBroad(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}
