package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/example/stackpr/internal/model"
)

// Title returns the stored title for a group id. The second return
// value distinguishes "no stored title" from a stored empty string.
func (s *Store) Title(ctx context.Context, groupID string) (string, bool, error) {
	var title string
	err := s.db.QueryRowContext(ctx,
		`SELECT title FROM group_titles WHERE group_id = ?`, groupID,
	).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read title for %s: %w", groupID, err)
	}
	return title, true, nil
}

// All returns the full group-id to title mapping, read wholesale before
// validation.
func (s *Store) All(ctx context.Context) (model.GroupTitles, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, title FROM group_titles ORDER BY group_id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}
	defer rows.Close()

	titles := make(model.GroupTitles)
	for rows.Next() {
		var groupID, title string
		if err := rows.Scan(&groupID, &title); err != nil {
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		titles[groupID] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return titles, nil
}

// SetTitle stores or replaces a group's title. The title is
// NFC-normalized so equal-looking strings compare equal on read.
func (s *Store) SetTitle(ctx context.Context, groupID, title string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO group_titles (group_id, title) VALUES (?, ?)
		ON CONFLICT(group_id) DO UPDATE SET title = excluded.title
	`, groupID, norm.NFC.String(title))
	if err != nil {
		return fmt.Errorf("set title for %s: %w", groupID, err)
	}
	return nil
}

// DeleteTitle removes a group's stored title. Deleting an absent row
// is not an error.
func (s *Store) DeleteTitle(ctx context.Context, groupID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM group_titles WHERE group_id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("delete title for %s: %w", groupID, err)
	}
	return nil
}

// DeleteAll clears every stored title. Used by the full group reset.
func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM group_titles`)
	if err != nil {
		return fmt.Errorf("delete titles: %w", err)
	}
	return nil
}
