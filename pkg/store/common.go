package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/snip/pkg/block"
)

// now is replaced in tests that need stable timestamps.
var now = func() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.NewString()
}

// prepareBlock assigns an id and timestamps to a block about to be created.
// Ids and timestamps that are already set are kept so imports round trip.
func prepareBlock(b block.Block) (block.Block, error) {
	if err := b.Validate(); err != nil {
		return block.Block{}, err
	}
	if b.ID == "" {
		b.ID = newID()
	}
	t := now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = t
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	return b, nil
}

func patchBlock(b block.Block, patch block.Patch) (block.Block, error) {
	b = patch.Apply(b)
	if err := b.Validate(); err != nil {
		return block.Block{}, err
	}
	b.UpdatedAt = now()
	return b, nil
}

func prepareCategory(c block.Category) (block.Category, error) {
	if err := c.Validate(); err != nil {
		return block.Category{}, err
	}
	if c.ID == "" {
		c.ID = newID()
	}
	t := now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = t
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	return c, nil
}

func patchCategory(c block.Category, patch block.CategoryPatch) (block.Category, error) {
	c = patch.Apply(c)
	if err := c.Validate(); err != nil {
		return block.Category{}, err
	}
	c.UpdatedAt = now()
	return c, nil
}

// sortBlocks orders by creation time, oldest first, then by id.
func sortBlocks(blocks []block.Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return createdBefore(blocks[i].CreatedAt, blocks[j].CreatedAt, blocks[i].ID, blocks[j].ID)
	})
}

func sortCategories(categories []block.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return createdBefore(categories[i].CreatedAt, categories[j].CreatedAt, categories[i].ID, categories[j].ID)
	})
}

func createdBefore(lt, rt time.Time, lid, rid string) bool {
	switch {
	case lt.IsZero() && rt.IsZero():
		return lid < rid
	case lt.IsZero():
		return false
	case rt.IsZero():
		return true
	case lt.Equal(rt):
		return lid < rid
	default:
		return lt.Before(rt)
	}
}
