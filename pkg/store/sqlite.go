package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"tableflip.dev/snip/pkg/block"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS blocks (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	content     TEXT NOT NULL,
	category_id TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS blocks_category_id ON blocks (category_id);
`

// SQLiteStore is a Persistence backed by a single sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Persistence = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at path and applies the schema.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]block.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, created_at, updated_at FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	defer rows.Close()

	all := make([]block.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	sortCategories(all)
	return all, nil
}

func (s *SQLiteStore) ListBlocks(ctx context.Context) ([]block.Block, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, category_id, created_at, updated_at FROM blocks`)
	if err != nil {
		return nil, fmt.Errorf("store: list blocks: %w", err)
	}
	defer rows.Close()

	all := make([]block.Block, 0)
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list blocks: %w", err)
	}
	sortBlocks(all)
	return all, nil
}

func (s *SQLiteStore) GetBlock(ctx context.Context, id string) (block.Block, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, category_id, created_at, updated_at FROM blocks WHERE id = ?`, id)
	b, err := scanBlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return block.Block{}, fmt.Errorf("store: block %q: %w", id, ErrNotFound)
	}
	return b, err
}

func (s *SQLiteStore) CreateBlock(ctx context.Context, b block.Block) (block.Block, error) {
	b, err := prepareBlock(b)
	if err != nil {
		return block.Block{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO blocks (id, title, content, category_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Content, b.CategoryID, formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if err != nil {
		return block.Block{}, fmt.Errorf("store: create block: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) UpdateBlock(ctx context.Context, id string, patch block.Patch) (block.Block, error) {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return block.Block{}, err
	}
	if b, err = patchBlock(b, patch); err != nil {
		return block.Block{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE blocks SET title = ?, content = ?, category_id = ?, updated_at = ? WHERE id = ?`,
		b.Title, b.Content, b.CategoryID, formatTime(b.UpdatedAt), id)
	if err != nil {
		return block.Block{}, fmt.Errorf("store: update block: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) DeleteBlock(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete block: %w", err)
	}
	return affected(res, "block", id)
}

func (s *SQLiteStore) CreateCategory(ctx context.Context, c block.Category) (block.Category, error) {
	c, err := prepareCategory(c)
	if err != nil {
		return block.Category{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Color, formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return block.Category{}, fmt.Errorf("store: create category: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, id string, patch block.CategoryPatch) (block.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at, updated_at FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return block.Category{}, fmt.Errorf("store: category %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return block.Category{}, err
	}
	if c, err = patchCategory(c, patch); err != nil {
		return block.Category{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Color, formatTime(c.UpdatedAt), id)
	if err != nil {
		return block.Category{}, fmt.Errorf("store: update category: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: delete category: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inUse int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blocks WHERE category_id = ?`, id).Scan(&inUse); err != nil {
		return fmt.Errorf("store: delete category: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("store: category %q: %w", id, ErrCategoryInUse)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete category: %w", err)
	}
	if err := affected(res, "category", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBlock(row scanner) (block.Block, error) {
	var (
		b                block.Block
		created, updated string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Content, &b.CategoryID, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return block.Block{}, err
		}
		return block.Block{}, fmt.Errorf("store: scan block: %w", err)
	}
	var err error
	if b.CreatedAt, err = parseTime(created); err != nil {
		return block.Block{}, err
	}
	if b.UpdatedAt, err = parseTime(updated); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func scanCategory(row scanner) (block.Category, error) {
	var (
		c                block.Category
		created, updated string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return block.Category{}, err
		}
		return block.Category{}, fmt.Errorf("store: scan category: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTime(created); err != nil {
		return block.Category{}, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return block.Category{}, err
	}
	return c, nil
}

func affected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("store: %s %q: %w", kind, id, ErrNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("store: parse time %q: %w", s, err)
	}
	return t, nil
}
