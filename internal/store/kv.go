package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RecordsKey is the kv row holding the whole records payload. The schema
// version lives in the key name.
const RecordsKey = "wristtrack.v1.records"

func (s *Store) getKV(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *Store) putKV(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	return err
}

// LoadRecords reads the persisted mapping. It never fails: a missing,
// unreadable or malformed payload yields an empty mapping.
func (s *Store) LoadRecords() Records {
	raw, err := s.getKV(RecordsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return Records{}
	}
	if err != nil {
		s.log.Warn("read records failed, starting empty", "error", err)
		return Records{}
	}
	recs, err := DecodeRecords([]byte(raw))
	if err != nil {
		s.log.Warn("records payload unreadable, starting empty", "error", err)
		return Records{}
	}
	s.log.Debug("records loaded", "count", len(recs))
	return recs
}

// SaveRecords overwrites the persisted mapping with r. Stored entries that
// LoadRecords could not read are carried over untouched.
func (s *Store) SaveRecords(r Records) error {
	var extras map[string]json.RawMessage
	prev, err := s.getKV(RecordsKey)
	switch {
	case err == nil:
		extras = unreadableEntries([]byte(prev))
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("save records: %w", err)
	}

	data, err := encodeWithExtras(r, extras)
	if err != nil {
		return err
	}
	if err := s.putKV(RecordsKey, string(data)); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	s.log.Debug("records saved", "count", len(r), "kept_unreadable", len(extras))
	return nil
}
