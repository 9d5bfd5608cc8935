package db

import (
	"path/filepath"
	"testing"

	"github.com/thesavant42/wayback-extractor/internal/models"
)

func strPtr(s string) *string {
	return &s
}

// TestInsertRecords verifies batch insert, dedup, and counting
func TestInsertRecords(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	records := []models.CDXRecord{
		{URL: "http://example.com/", Timestamp: "20200101000000", StatusCode: strPtr("200"), MimeType: strPtr("text/html")},
		{URL: "http://example.com/a", Timestamp: "20200102000000"},
	}

	inserted, err := database.InsertRecords("example.com", records)
	if err != nil {
		t.Fatalf("InsertRecords failed: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}

	// Re-inserting the same captures is a no-op
	inserted, err = database.InsertRecords("example.com", records)
	if err != nil {
		t.Fatalf("re-insert failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("re-insert = %d, want 0", inserted)
	}

	count, err := database.RecordCount("example.com")
	if err != nil {
		t.Fatalf("RecordCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = database.RecordCount("other.com")
	if err != nil {
		t.Fatalf("RecordCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count for other domain = %d, want 0", count)
	}
}

// TestInsertRecordsEmpty verifies the empty-batch short circuit
func TestInsertRecordsEmpty(t *testing.T) {
	database, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	inserted, err := database.InsertRecords("example.com", nil)
	if err != nil {
		t.Fatalf("InsertRecords failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}
