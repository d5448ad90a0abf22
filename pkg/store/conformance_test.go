package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/snip/pkg/block"
)

// testPersistence runs the shared contract against a fresh backend.
func testPersistence(t *testing.T, open func(t *testing.T) Persistence) {
	t.Helper()

	t.Run("empty", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		cats, err := p.ListCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, cats)

		blocks, err := p.ListBlocks(ctx)
		require.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("block lifecycle", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		created, err := p.CreateBlock(ctx, block.Block{Title: "hello", Content: "world"})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

		got, err := p.GetBlock(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "hello", got.Title)
		assert.Equal(t, "world", got.Content)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

		updated, err := p.UpdateBlock(ctx, created.ID, block.Patch{Title: block.String("bye")})
		require.NoError(t, err)
		assert.Equal(t, "bye", updated.Title)
		assert.Equal(t, "world", updated.Content)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

		blocks, err := p.ListBlocks(ctx)
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "bye", blocks[0].Title)

		require.NoError(t, p.DeleteBlock(ctx, created.ID))
		_, err = p.GetBlock(ctx, created.ID)
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		assert.True(t, errors.Is(p.DeleteBlock(ctx, created.ID), ErrNotFound))
	})

	t.Run("keeps supplied id", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		created, err := p.CreateBlock(ctx, block.Block{ID: "fixed-id", Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", created.ID)
	})

	t.Run("validation", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		_, err := p.CreateBlock(ctx, block.Block{Title: " ", Content: "c"})
		assert.Error(t, err)
		_, err = p.CreateCategory(ctx, block.Category{Name: ""})
		assert.Error(t, err)
		_, err = p.CreateCategory(ctx, block.Category{Name: "x", Color: "not a colour"})
		assert.Error(t, err)
	})

	t.Run("missing records", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		_, err := p.UpdateBlock(ctx, "nope", block.Patch{Title: block.String("x")})
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		_, err = p.UpdateCategory(ctx, "nope", block.CategoryPatch{Name: block.String("x")})
		assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
		assert.True(t, errors.Is(p.DeleteCategory(ctx, "nope"), ErrNotFound))
	})

	t.Run("category lifecycle", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		c, err := p.CreateCategory(ctx, block.Category{Name: "Go", Color: "#16a34a"})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)

		c2, err := p.UpdateCategory(ctx, c.ID, block.CategoryPatch{Name: block.String("Golang")})
		require.NoError(t, err)
		assert.Equal(t, "Golang", c2.Name)
		assert.Equal(t, "#16a34a", c2.Color)

		cats, err := p.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.Equal(t, "Golang", cats[0].Name)

		require.NoError(t, p.DeleteCategory(ctx, c.ID))
		cats, err = p.ListCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, cats)
	})

	t.Run("category in use", func(t *testing.T) {
		p := open(t)
		ctx := context.Background()

		c, err := p.CreateCategory(ctx, block.Category{Name: "Shell"})
		require.NoError(t, err)
		b, err := p.CreateBlock(ctx, block.Block{Title: "ls", Content: "ls -la", CategoryID: c.ID})
		require.NoError(t, err)

		err = p.DeleteCategory(ctx, c.ID)
		assert.True(t, errors.Is(err, ErrCategoryInUse), "got %v", err)

		_, err = p.UpdateBlock(ctx, b.ID, block.Patch{CategoryID: block.String("")})
		require.NoError(t, err)
		require.NoError(t, p.DeleteCategory(ctx, c.ID))
	})

	t.Run("list order", func(t *testing.T) {
		tickingClock(t)
		p := open(t)
		ctx := context.Background()

		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			b, err := p.CreateBlock(ctx, block.Block{Title: title, Content: title})
			require.NoError(t, err)
			ids = append(ids, b.ID)
		}
		blocks, err := p.ListBlocks(ctx)
		require.NoError(t, err)
		got := make([]string, 0, len(blocks))
		for _, b := range blocks {
			got = append(got, b.ID)
		}
		assert.Equal(t, ids, got)
	})
}

// tickingClock makes now advance one second per call for the rest of t.
func tickingClock(t *testing.T) {
	t.Helper()
	orig := now
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	t.Cleanup(func() { now = orig })
}
