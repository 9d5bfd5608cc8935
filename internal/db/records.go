package db

import (
	"fmt"

	"github.com/thesavant42/wayback-extractor/internal/models"
)

// InsertRecords inserts CDX records for a domain in one transaction.
// Uses INSERT OR IGNORE so re-running an extraction only adds captures
// not already stored. Returns the number of records actually inserted.
func (db *DB) InsertRecords(domain string, records []models.CDXRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertRecord)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, r := range records {
		var statusCode interface{}
		if r.StatusCode != nil {
			statusCode = *r.StatusCode
		}

		var mimeType interface{}
		if r.MimeType != nil {
			mimeType = *r.MimeType
		}

		result, err := stmt.Exec(r.URL, domain, r.Timestamp, statusCode, mimeType)
		if err != nil {
			continue
		}

		rowsAffected, _ := result.RowsAffected()
		if rowsAffected > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// RecordCount returns the number of stored records for a domain
func (db *DB) RecordCount(domain string) (int, error) {
	var count int
	if err := db.conn.QueryRow(selectRecordCount, domain).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
