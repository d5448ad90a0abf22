package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/classify"
	"tableflip.dev/snip/pkg/viewstate"
)

// Service adapts app.Service to the shapes returned over MCP.
type Service struct {
	app  *app.Service
	view *viewstate.ViewState
}

// NewService wraps svc. view is optional; without it the board shows every
// category.
func NewService(svc *app.Service, view *viewstate.ViewState) *Service {
	return &Service{app: svc, view: view}
}

// CategoryDTO is a category with its block count.
type CategoryDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	BlockCount int       `json:"block_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BlockDTO is a block with its resolved category name.
type BlockDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CategoryID string    `json:"category_id,omitempty"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// GroupDTO is one board group.
type GroupDTO struct {
	Name       string     `json:"name"`
	CategoryID string     `json:"category_id,omitempty"`
	Color      string     `json:"color,omitempty"`
	Count      int        `json:"count"`
	Blocks     []BlockDTO `json:"blocks"`
}

// BoardQuery filters list_board.
type BoardQuery struct {
	Categories []string `json:"categories"`
	Query      string   `json:"query"`
	Title      string   `json:"title"`
}

// CreateBlockOptions are the create_block arguments.
type CreateBlockOptions struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Raw      bool   `json:"raw"`
}

// UpdateBlockOptions are the update_block arguments. Empty strings leave a
// field untouched unless Uncategorized is set.
type UpdateBlockOptions struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Uncategorized bool   `json:"uncategorized"`
	Format        bool   `json:"format"`
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	snap, err := s.app.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(snap.Categories))
	for _, b := range snap.Blocks {
		counts[b.CategoryID]++
	}
	cats, err := s.app.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryDTO{
			ID:         c.ID,
			Name:       c.Name,
			Color:      c.Color,
			BlockCount: counts[c.ID],
			CreatedAt:  c.CreatedAt,
			UpdatedAt:  c.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Service) Board(ctx context.Context, q BoardQuery) ([]GroupDTO, error) {
	opts := app.BoardOptions{
		Categories: q.Categories,
		Query:      strings.TrimSpace(q.Query),
		TitleGlob:  strings.TrimSpace(q.Title),
	}
	if s.view == nil && len(q.Categories) == 0 {
		opts.All = true
	}
	board, err := s.app.Board(ctx, s.view, opts)
	if err != nil {
		return nil, err
	}
	out := make([]GroupDTO, 0, len(board.Groups))
	for _, g := range board.Groups {
		dto := GroupDTO{Name: g.Name, Count: len(g.Blocks), Blocks: make([]BlockDTO, 0, len(g.Blocks))}
		if g.Category != nil {
			dto.CategoryID = g.Category.ID
			dto.Color = g.Category.Color
		}
		for _, b := range g.Blocks {
			dto.Blocks = append(dto.Blocks, toBlockDTO(b, g.Name))
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) BlockByID(ctx context.Context, id string) (*BlockDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("block id is required")
	}
	b, err := s.app.Block(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, b)
}

func (s *Service) CreateBlock(ctx context.Context, opts CreateBlockOptions) (*BlockDTO, classify.Result, error) {
	b, res, err := s.app.AddBlock(ctx, app.NewBlock{
		Title:    opts.Title,
		Content:  opts.Content,
		Category: opts.Category,
		Raw:      opts.Raw,
	})
	if err != nil {
		return nil, classify.Result{}, err
	}
	s.app.ExpandNewCategories(ctx, s.view)
	dto, err := s.withCategory(ctx, b)
	return dto, res, err
}

func (s *Service) UpdateBlock(ctx context.Context, opts UpdateBlockOptions) (*BlockDTO, error) {
	edit := app.BlockEdit{Format: opts.Format}
	if opts.Title != "" {
		edit.Title = block.String(opts.Title)
	}
	if opts.Content != "" {
		edit.Content = block.String(opts.Content)
	}
	switch {
	case opts.Uncategorized:
		edit.Category = block.String("")
	case opts.Category != "":
		edit.Category = block.String(opts.Category)
	}
	b, err := s.app.EditBlock(ctx, opts.ID, edit)
	if err != nil {
		return nil, err
	}
	return s.withCategory(ctx, b)
}

func (s *Service) DeleteBlock(ctx context.Context, id string) error {
	return s.app.DeleteBlock(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, name, color string) (*CategoryDTO, error) {
	c, err := s.app.AddCategory(ctx, name, color)
	if err != nil {
		return nil, err
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}, nil
}

func (s *Service) DeleteCategory(ctx context.Context, ref string) (*CategoryDTO, error) {
	c, err := s.app.DeleteCategory(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &CategoryDTO{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}, nil
}

func (s *Service) withCategory(ctx context.Context, b block.Block) (*BlockDTO, error) {
	name := "Uncategorized"
	if b.CategoryID != "" {
		cats, err := s.app.Categories(ctx)
		if err != nil {
			return nil, err
		}
		if c, ok := block.FindCategory(cats, b.CategoryID); ok {
			name = c.Name
		}
	}
	dto := toBlockDTO(b, name)
	return &dto, nil
}

func toBlockDTO(b block.Block, category string) BlockDTO {
	return BlockDTO{
		ID:         b.ID,
		Title:      b.Title,
		Content:    b.Content,
		CategoryID: b.CategoryID,
		Category:   category,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
