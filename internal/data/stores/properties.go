package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/data/db"
)

// PropertyStore persists visual properties (saved selection, filter, search
// text) per scope. Values are stored as JSON.
type PropertyStore struct {
	db    *db.DB
	scope string
}

var _ selection.Persister = (*PropertyStore)(nil)

// NewPropertyStore creates a property store for scope.
func NewPropertyStore(database *db.DB, scope string) *PropertyStore {
	return &PropertyStore{db: database, scope: scope}
}

// Persist upserts every property of props under object in one transaction.
func (s *PropertyStore) Persist(ctx context.Context, object string, props map[string]any) error {
	now := time.Now().UnixNano()

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for name, value := range props {
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode %s.%s: %w", object, name, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO visual_properties (scope, object, property, value, updated_at)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (scope, object, property)
				DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				s.scope, object, name, string(raw), now,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to persist %s properties: %w", object, err)
	}
	return nil
}

// Properties returns every property stored under object. A missing object
// yields an empty map.
func (s *PropertyStore) Properties(ctx context.Context, object string) (map[string]any, error) {
	objects, err := s.query(ctx, "SELECT object, property, value FROM visual_properties WHERE scope = ? AND object = ?", s.scope, object)
	if err != nil {
		return nil, err
	}
	if props, ok := objects[object]; ok {
		return props, nil
	}
	return map[string]any{}, nil
}

// Objects returns all stored properties grouped by object, in the shape the
// data view carries them.
func (s *PropertyStore) Objects(ctx context.Context) (dataview.Objects, error) {
	return s.query(ctx, "SELECT object, property, value FROM visual_properties WHERE scope = ?", s.scope)
}

func (s *PropertyStore) query(ctx context.Context, q string, args ...any) (dataview.Objects, error) {
	rows, err := s.db.Conn().QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := dataview.Objects{}
	for rows.Next() {
		var object, property, raw string
		if err := rows.Scan(&object, &property, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", object, property, err)
		}

		if out[object] == nil {
			out[object] = map[string]any{}
		}
		out[object][property] = value
	}
	return out, rows.Err()
}

// Delete removes every stored property in scope.
func (s *PropertyStore) Delete(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, "DELETE FROM visual_properties WHERE scope = ?", s.scope); err != nil {
		return fmt.Errorf("failed to delete properties: %w", err)
	}
	return nil
}
