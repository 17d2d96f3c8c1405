package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"otctl/internal/journal"
	"otctl/internal/services"
	"otctl/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []journal.Entry{
		{CorrelationID: "c1", RunID: "run-1", CommandType: "loadPipette", ParamsJSON: `{"mount":"left"}`, CommandID: "cmd-1", Status: "succeeded", Outcome: services.OutcomeOK, CreatedAt: base},
		{CorrelationID: "c2", RunID: "run-1", CommandType: "aspirate", Outcome: services.OutcomeRemote, ErrorMessage: "no tip", CreatedAt: base.Add(time.Second)},
		{CorrelationID: "c3", RunID: "run-2", CommandType: "aspirate", Outcome: services.OutcomeOK, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	all, err := store.List(ctx, journal.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].CorrelationID != "c3" {
		t.Fatalf("expected newest first, got %q", all[0].CorrelationID)
	}
	if !all[2].CreatedAt.Equal(base) {
		t.Fatalf("unexpected created_at %v", all[2].CreatedAt)
	}
	if all[2].ParamsJSON != `{"mount":"left"}` || all[2].CommandID != "cmd-1" {
		t.Fatalf("unexpected entry: %#v", all[2])
	}

	run1, err := store.List(ctx, journal.Filter{RunID: "run-1"})
	if err != nil {
		t.Fatalf("List run filter failed: %v", err)
	}
	if len(run1) != 2 {
		t.Fatalf("expected 2 run-1 entries, got %d", len(run1))
	}

	aspirates, err := store.List(ctx, journal.Filter{CommandType: "aspirate", Limit: 1})
	if err != nil {
		t.Fatalf("List type filter failed: %v", err)
	}
	if len(aspirates) != 1 || aspirates[0].CorrelationID != "c3" {
		t.Fatalf("unexpected filtered entries: %#v", aspirates)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}

func TestRecordRequiresCommandType(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	if err := store.Record(context.Background(), journal.Entry{RunID: "run-1"}); err == nil {
		t.Fatal("expected error without command type")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Record(context.Background(), journal.Entry{RunID: "run-1", CommandType: "home", Outcome: services.OutcomeOK}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenJournal(t, cfg)
	count, err := reopened.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected persisted entry, got %d", count)
	}
}

func TestSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	db, err := sql.Open("sqlite", cfg.JournalPath())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE schema_version (version INTEGER NOT NULL); INSERT INTO schema_version (version) VALUES (99)"); err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	_ = db.Close()

	_, err = journal.Open(cfg)
	if !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
