// Package block defines the snippet board records: categories and the blocks
// that reference them.
package block

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is a named, coloured label that blocks are grouped under.
type Category struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Color     string    `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Block is a single user-authored entry. An empty CategoryID means the block
// has no category.
type Block struct {
	ID         string    `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	CategoryID string    `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
}

// Patch is a partial update for a block. Nil fields are left untouched.
type Patch struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.CategoryID == nil
}

// Apply returns a copy of b with the patch fields applied.
func (p Patch) Apply(b Block) Block {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	return b
}

// CategoryPatch is a partial update for a category.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Color == nil
}

// Apply returns a copy of c with the patch fields applied.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	return c
}

// String is a pointer helper for building patches.
func String(s string) *string {
	return &s
}

// Validate checks the fields a block needs before it can be stored.
func (b Block) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("block: title is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		return errors.New("block: content is required")
	}
	return nil
}

// Validate checks the fields a category needs before it can be stored.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("block: category name is required")
	}
	if c.Color != "" {
		if _, err := ParseColor(c.Color); err != nil {
			return fmt.Errorf("block: category %q: %w", c.Name, err)
		}
	}
	return nil
}

// FindCategory returns the category with the given id.
func FindCategory(categories []Category, id string) (Category, bool) {
	if id == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ResolveCategory finds a category by id first and then by case-insensitive
// name, so CLI users can type either.
func ResolveCategory(categories []Category, ref string) (Category, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Category{}, false
	}
	if c, ok := FindCategory(categories, ref); ok {
		return c, true
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return Category{}, false
}
