package app

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/block"
)

// Document is the export format: every category and block.
type Document struct {
	Version    int              `json:"version" yaml:"version"`
	Categories []block.Category `json:"categories" yaml:"categories"`
	Blocks     []block.Block    `json:"blocks" yaml:"blocks"`
}

// DocumentVersion is written into every export.
const DocumentVersion = 1

// ImportReport counts what Import did.
type ImportReport struct {
	CategoriesCreated int `json:"categories_created" yaml:"categories_created"`
	CategoriesMerged  int `json:"categories_merged" yaml:"categories_merged"`
	BlocksCreated     int `json:"blocks_created" yaml:"blocks_created"`
	BlocksSkipped     int `json:"blocks_skipped" yaml:"blocks_skipped"`
}

// Export returns every record.
func (s *Service) Export(ctx context.Context) (Document, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Version:    DocumentVersion,
		Categories: snap.Categories,
		Blocks:     snap.Blocks,
	}, nil
}

// Import adds the records in doc. A category whose id already exists is kept,
// and one whose name matches an existing category (ignoring case) is merged
// into it. Blocks keep their ids and are skipped when the id already exists.
// Category references are remapped to the merged ids; references to unknown
// categories are cleared.
func (s *Service) Import(ctx context.Context, doc Document) (ImportReport, error) {
	var report ImportReport
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return report, err
	}

	remap := make(map[string]string, len(doc.Categories))
	existing := append([]block.Category(nil), snap.Categories...)
	for _, c := range doc.Categories {
		if found, ok := block.FindCategory(existing, c.ID); ok {
			remap[c.ID] = found.ID
			report.CategoriesMerged++
			continue
		}
		if found, ok := findByName(existing, c.Name); ok {
			remap[c.ID] = found.ID
			report.CategoriesMerged++
			continue
		}
		created, err := s.Persistence.CreateCategory(ctx, c)
		if err != nil {
			return report, s.fail("import category", err, zap.String("id", c.ID))
		}
		existing = append(existing, created)
		remap[c.ID] = created.ID
		report.CategoriesCreated++
	}

	have := make(map[string]struct{}, len(snap.Blocks))
	for _, b := range snap.Blocks {
		have[b.ID] = struct{}{}
	}
	for _, b := range doc.Blocks {
		if _, dup := have[b.ID]; dup && b.ID != "" {
			report.BlocksSkipped++
			continue
		}
		if b.CategoryID != "" {
			id, ok := remap[b.CategoryID]
			if !ok {
				if c, known := block.FindCategory(existing, b.CategoryID); known {
					id = c.ID
				}
			}
			b.CategoryID = id
		}
		created, err := s.Persistence.CreateBlock(ctx, b)
		if err != nil {
			return report, s.fail("import block", err, zap.String("id", b.ID))
		}
		have[created.ID] = struct{}{}
		report.BlocksCreated++
	}
	return report, nil
}

func findByName(categories []block.Category, name string) (block.Category, bool) {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return block.Category{}, false
}
