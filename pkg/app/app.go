// Package app holds the snippet board's business rules. Service wraps the
// persistence backend so the CLI, MCP server, and TUI share one code path.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/logging"
	"tableflip.dev/snip/pkg/store"
)

// Service provides high-level operations for blocks and categories.
type Service struct {
	Persistence store.Persistence
	Logger      *zap.Logger
}

var (
	errNoPersistence = errors.New("app: no persistence configured")

	// ErrWatchUnsupported is returned by Watch when the backend cannot stream
	// changes.
	ErrWatchUnsupported = errors.New("app: backend does not support watching")
)

// New returns a Service over p. A nil logger discards output.
func New(p store.Persistence, logger *zap.Logger) *Service {
	return &Service{Persistence: p, Logger: logger}
}

func (s *Service) log() *zap.Logger {
	return logging.OrNop(s.Logger)
}

// fail logs a backend failure and wraps it with the operation name.
func (s *Service) fail(op string, err error, fields ...zap.Field) error {
	s.log().Error("persistence call failed", append(fields, zap.String("op", op), zap.Error(err))...)
	return fmt.Errorf("app: %s: %w", op, err)
}

func (s *Service) ready() error {
	if s == nil || s.Persistence == nil {
		return errNoPersistence
	}
	return nil
}

// Snapshot is a consistent-enough view of every record. Categories and blocks
// are read concurrently.
type Snapshot struct {
	Categories []block.Category
	Blocks     []block.Block
}

// Snapshot loads categories and blocks.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := s.ready(); err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.Persistence.ListCategories(gctx)
		if err != nil {
			return s.fail("list categories", err)
		}
		snap.Categories = cats
		return nil
	})
	g.Go(func() error {
		blocks, err := s.Persistence.ListBlocks(gctx)
		if err != nil {
			return s.fail("list blocks", err)
		}
		snap.Blocks = blocks
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Categories returns every category sorted by name.
func (s *Service) Categories(ctx context.Context) ([]block.Category, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	cats, err := s.Persistence.ListCategories(ctx)
	if err != nil {
		return nil, s.fail("list categories", err)
	}
	return viewmodel.SortCategories(cats), nil
}

// Block returns one block.
func (s *Service) Block(ctx context.Context, id string) (block.Block, error) {
	if err := s.ready(); err != nil {
		return block.Block{}, err
	}
	b, err := s.Persistence.GetBlock(ctx, strings.TrimSpace(id))
	if err != nil {
		return block.Block{}, s.fail("get block", err, zap.String("id", id))
	}
	return b, nil
}

// NewBlock describes a block to add. Category is a category id or name; empty
// leaves the block uncategorized. Raw skips content classification.
type NewBlock struct {
	Title    string
	Content  string
	Category string
	Raw      bool
}

// AddBlock classifies the content, stores the block, and returns it together
// with the classification that was applied.
func (s *Service) AddBlock(ctx context.Context, nb NewBlock) (block.Block, classify.Result, error) {
	if err := s.ready(); err != nil {
		return block.Block{}, classify.Result{}, err
	}
	title := strings.TrimSpace(nb.Title)
	if title == "" {
		return block.Block{}, classify.Result{}, errors.New("app: title is required")
	}
	if strings.TrimSpace(nb.Content) == "" {
		return block.Block{}, classify.Result{}, errors.New("app: content is required")
	}

	categoryID, err := s.resolveCategoryID(ctx, nb.Category)
	if err != nil {
		return block.Block{}, classify.Result{}, err
	}

	res := classify.Result{Kind: classify.KindPlain, Output: nb.Content}
	if !nb.Raw {
		res = classify.Classify(nb.Content)
	}

	b, err := s.Persistence.CreateBlock(ctx, block.Block{
		Title:      title,
		Content:    res.Output,
		CategoryID: categoryID,
	})
	if err != nil {
		return block.Block{}, classify.Result{}, s.fail("create block", err, zap.String("title", title))
	}
	s.log().Debug("block created", zap.String("id", b.ID), zap.String("kind", string(res.Kind)), zap.String("language", res.Language))
	return b, res, nil
}

// BlockEdit is a partial block update. Category is a category id or name, and
// a pointer to "" clears it. Format re-runs the classifier on new content.
type BlockEdit struct {
	Title    *string
	Content  *string
	Category *string
	Format   bool
}

// EditBlock applies edit to the block with the given id.
func (s *Service) EditBlock(ctx context.Context, id string, edit BlockEdit) (block.Block, error) {
	if err := s.ready(); err != nil {
		return block.Block{}, err
	}
	var patch block.Patch
	if edit.Title != nil {
		title := strings.TrimSpace(*edit.Title)
		if title == "" {
			return block.Block{}, errors.New("app: title is required")
		}
		patch.Title = &title
	}
	if edit.Content != nil {
		if strings.TrimSpace(*edit.Content) == "" {
			return block.Block{}, errors.New("app: content is required")
		}
		content := *edit.Content
		if edit.Format {
			content = classify.Format(content)
		}
		patch.Content = &content
	}
	if edit.Category != nil {
		categoryID, err := s.resolveCategoryID(ctx, *edit.Category)
		if err != nil {
			return block.Block{}, err
		}
		patch.CategoryID = &categoryID
	}
	if patch.Empty() {
		return block.Block{}, errors.New("app: nothing to change")
	}

	b, err := s.Persistence.UpdateBlock(ctx, id, patch)
	if err != nil {
		return block.Block{}, s.fail("update block", err, zap.String("id", id))
	}
	return b, nil
}

// DeleteBlock removes a block permanently.
func (s *Service) DeleteBlock(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.Persistence.DeleteBlock(ctx, id); err != nil {
		return s.fail("delete block", err, zap.String("id", id))
	}
	return nil
}

// AddCategory creates a category. The name is trimmed and color accepts a
// palette name or hex value; empty picks the default colour.
func (s *Service) AddCategory(ctx context.Context, name, color string) (block.Category, error) {
	if err := s.ready(); err != nil {
		return block.Category{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return block.Category{}, errors.New("app: category name is required")
	}
	hex, err := block.ParseColor(color)
	if err != nil {
		return block.Category{}, fmt.Errorf("app: %w", err)
	}
	c, err := s.Persistence.CreateCategory(ctx, block.Category{Name: name, Color: hex})
	if err != nil {
		return block.Category{}, s.fail("create category", err, zap.String("name", name))
	}
	return c, nil
}

// EditCategory renames or recolours the category matching ref.
func (s *Service) EditCategory(ctx context.Context, ref string, name, color *string) (block.Category, error) {
	if err := s.ready(); err != nil {
		return block.Category{}, err
	}
	c, err := s.Category(ctx, ref)
	if err != nil {
		return block.Category{}, err
	}
	var patch block.CategoryPatch
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return block.Category{}, errors.New("app: category name is required")
		}
		patch.Name = &n
	}
	if color != nil {
		hex, err := block.ParseColor(*color)
		if err != nil {
			return block.Category{}, fmt.Errorf("app: %w", err)
		}
		patch.Color = &hex
	}
	if patch.Empty() {
		return block.Category{}, errors.New("app: nothing to change")
	}
	updated, err := s.Persistence.UpdateCategory(ctx, c.ID, patch)
	if err != nil {
		return block.Category{}, s.fail("update category", err, zap.String("id", c.ID))
	}
	return updated, nil
}

// DeleteCategory removes the category matching ref. It fails with
// store.ErrCategoryInUse while blocks still reference it.
func (s *Service) DeleteCategory(ctx context.Context, ref string) (block.Category, error) {
	if err := s.ready(); err != nil {
		return block.Category{}, err
	}
	c, err := s.Category(ctx, ref)
	if err != nil {
		return block.Category{}, err
	}
	blocks, err := s.Persistence.ListBlocks(ctx)
	if err != nil {
		return block.Category{}, s.fail("list blocks", err)
	}
	if n := countInCategory(blocks, c.ID); n > 0 {
		return block.Category{}, fmt.Errorf("app: category %q has %d blocks: %w", c.Name, n, store.ErrCategoryInUse)
	}
	if err := s.Persistence.DeleteCategory(ctx, c.ID); err != nil {
		return block.Category{}, s.fail("delete category", err, zap.String("id", c.ID))
	}
	return c, nil
}

// Category finds a category by id or case-insensitive name.
func (s *Service) Category(ctx context.Context, ref string) (block.Category, error) {
	cats, err := s.Persistence.ListCategories(ctx)
	if err != nil {
		return block.Category{}, s.fail("list categories", err)
	}
	c, ok := block.ResolveCategory(cats, ref)
	if !ok {
		return block.Category{}, fmt.Errorf("app: unknown category %q", ref)
	}
	return c, nil
}

// Watch subscribes to backend change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	w, ok := s.Persistence.(store.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}

func (s *Service) resolveCategoryID(ctx context.Context, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	c, err := s.Category(ctx, ref)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func countInCategory(blocks []block.Block, id string) int {
	n := 0
	for _, b := range blocks {
		if b.CategoryID == id {
			n++
		}
	}
	return n
}
