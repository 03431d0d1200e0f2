package stores

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/data/db"
)

// SelectionStore implements selection.Store on SQLite. Selections are
// partitioned by scope, normally the data file being sliced. The current
// selection is cached in memory so snapshot reads never touch the database.
type SelectionStore struct {
	db          *db.DB
	scope       string
	maxSelected int

	mu  sync.RWMutex
	ids []identity.ID
}

var _ selection.Store = (*SelectionStore)(nil)

// NewSelectionStore loads the persisted selection for scope. maxSelected
// caps the selection size; 0 means unlimited.
func NewSelectionStore(ctx context.Context, database *db.DB, scope string, maxSelected int) (*SelectionStore, error) {
	s := &SelectionStore{db: database, scope: scope, maxSelected: maxSelected}

	ids, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.ids = ids
	return s, nil
}

// Scope returns the partition this store reads and writes.
func (s *SelectionStore) Scope() string {
	return s.scope
}

// Select replaces the selection, or toggles each id when additive. When a
// maximum is configured, identities beyond it are rejected and the returned
// selection reflects what was actually stored.
func (s *SelectionStore) Select(ctx context.Context, ids []identity.ID, additive bool) ([]identity.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []identity.ID
	if additive {
		next = toggle(s.ids, ids)
	} else {
		next = dedupe(ids)
	}

	if s.maxSelected > 0 && len(next) > s.maxSelected {
		next = next[:s.maxSelected]
	}

	if err := s.write(ctx, next); err != nil {
		return nil, err
	}
	s.ids = next
	return slices.Clone(next), nil
}

// Clear removes every selected identity in scope.
func (s *SelectionStore) Clear(ctx context.Context) ([]identity.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, nil); err != nil {
		return nil, err
	}
	s.ids = nil
	return nil, nil
}

// HasSelection reports whether anything is selected.
func (s *SelectionStore) HasSelection() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids) > 0
}

// Selected returns a copy of the selection in selection order.
func (s *SelectionStore) Selected() []identity.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Scopes lists every scope with a non-empty selection.
func Scopes(ctx context.Context, database *db.DB) ([]string, error) {
	rows, err := database.Conn().QueryContext(ctx,
		"SELECT DISTINCT scope FROM selected_identities ORDER BY scope")
	if err != nil {
		return nil, fmt.Errorf("list selection scopes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scopes []string
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("scan selection scope: %w", err)
		}
		scopes = append(scopes, scope)
	}
	return scopes, rows.Err()
}

func (s *SelectionStore) load(ctx context.Context) ([]identity.ID, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		"SELECT identity FROM selected_identities WHERE scope = ? ORDER BY position", s.scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []identity.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan selection: %w", err)
		}
		ids = append(ids, identity.ID(id))
	}
	return ids, rows.Err()
}

func (s *SelectionStore) write(ctx context.Context, ids []identity.ID) error {
	now := time.Now().UnixNano()

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM selected_identities WHERE scope = ?", s.scope); err != nil {
			return err
		}
		for i, id := range ids {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO selected_identities (scope, identity, position, selected_at) VALUES (?, ?, ?, ?)",
				s.scope, string(id), i, now,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}

// toggle flips membership of each id against current, preserving order.
func toggle(current, ids []identity.ID) []identity.ID {
	next := slices.Clone(current)
	for _, id := range ids {
		if i := slices.Index(next, id); i >= 0 {
			next = slices.Delete(next, i, i+1)
		} else {
			next = append(next, id)
		}
	}
	return next
}

func dedupe(ids []identity.ID) []identity.ID {
	seen := identity.NewSet()
	out := make([]identity.ID, 0, len(ids))
	for _, id := range ids {
		if seen.Has(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
