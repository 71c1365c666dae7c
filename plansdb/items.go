package plansdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"loopwalk.dev/internal/logging"
)

// GetItem returns the value stored under key.
func (c *Client) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.DB.QueryRowContext(ctx,
		`SELECT item_value FROM kv_items WHERE item_key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem inserts or replaces the value stored under key.
func (c *Client) SetItem(ctx context.Context, key, value string) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "set_item")

	_, err = tx.ExecContext(ctx, `
		INSERT INTO kv_items (item_key, item_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(item_key) DO UPDATE SET
			item_value = excluded.item_value,
			updated_at = excluded.updated_at;
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("error writing item %q: %w", key, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing item %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Removing a missing key is not an error.
func (c *Client) RemoveItem(ctx context.Context, key string) error {
	if _, err := c.DB.ExecContext(ctx, `DELETE FROM kv_items WHERE item_key = ?`, key); err != nil {
		return fmt.Errorf("error removing item %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in alphabetical order.
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT item_key FROM kv_items ORDER BY item_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
