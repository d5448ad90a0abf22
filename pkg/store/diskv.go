package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/block"
)

const (
	bucketBlocks     = "blocks"
	bucketCategories = "categories"
	keySep           = ":"
)

// NewDiskv returns a Persistence that keeps one JSON file per record under
// basePath/blocks and basePath/categories.
func NewDiskv(basePath string) (*DiskvStore, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// DiskvStore is the file backed Persistence.
type DiskvStore struct {
	// mu serializes the category in-use check against block writes.
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

var _ Persistence = (*DiskvStore)(nil)
var _ Watchable = (*DiskvStore)(nil)

func (p *DiskvStore) ListCategories(ctx context.Context) ([]block.Category, error) {
	all := make([]block.Category, 0)
	for key := range p.d.KeysPrefix(bucketCategories+keySep, ctx.Done()) {
		var c block.Category
		if err := p.read(key, &c); err != nil {
			zap.L().Warn("skipping unreadable category", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, c)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortCategories(all)
	return all, nil
}

func (p *DiskvStore) ListBlocks(ctx context.Context) ([]block.Block, error) {
	all := make([]block.Block, 0)
	for key := range p.d.KeysPrefix(bucketBlocks+keySep, ctx.Done()) {
		var b block.Block
		if err := p.read(key, &b); err != nil {
			zap.L().Warn("skipping unreadable block", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, b)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortBlocks(all)
	return all, nil
}

func (p *DiskvStore) GetBlock(_ context.Context, id string) (block.Block, error) {
	if err := checkID(id); err != nil {
		return block.Block{}, err
	}
	var b block.Block
	if err := p.read(toKey(bucketBlocks, id), &b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (p *DiskvStore) CreateBlock(_ context.Context, b block.Block) (block.Block, error) {
	b, err := prepareBlock(b)
	if err != nil {
		return block.Block{}, err
	}
	if err := checkID(b.ID); err != nil {
		return block.Block{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.write(toKey(bucketBlocks, b.ID), b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (p *DiskvStore) UpdateBlock(_ context.Context, id string, patch block.Patch) (block.Block, error) {
	if err := checkID(id); err != nil {
		return block.Block{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(bucketBlocks, id)
	var b block.Block
	if err := p.read(key, &b); err != nil {
		return block.Block{}, err
	}
	b, err := patchBlock(b, patch)
	if err != nil {
		return block.Block{}, err
	}
	if err := p.write(key, b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (p *DiskvStore) DeleteBlock(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return p.erase(toKey(bucketBlocks, id))
}

func (p *DiskvStore) CreateCategory(_ context.Context, c block.Category) (block.Category, error) {
	c, err := prepareCategory(c)
	if err != nil {
		return block.Category{}, err
	}
	if err := checkID(c.ID); err != nil {
		return block.Category{}, err
	}
	if err := p.write(toKey(bucketCategories, c.ID), c); err != nil {
		return block.Category{}, err
	}
	return c, nil
}

func (p *DiskvStore) UpdateCategory(_ context.Context, id string, patch block.CategoryPatch) (block.Category, error) {
	if err := checkID(id); err != nil {
		return block.Category{}, err
	}
	key := toKey(bucketCategories, id)
	var c block.Category
	if err := p.read(key, &c); err != nil {
		return block.Category{}, err
	}
	c, err := patchCategory(c, patch)
	if err != nil {
		return block.Category{}, err
	}
	if err := p.write(key, c); err != nil {
		return block.Category{}, err
	}
	return c, nil
}

func (p *DiskvStore) DeleteCategory(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := toKey(bucketCategories, id)
	if !p.d.Has(key) {
		return fmt.Errorf("store: category %q: %w", id, ErrNotFound)
	}
	blocks, err := p.ListBlocks(ctx)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		if b.CategoryID == id {
			return fmt.Errorf("store: category %q: %w", id, ErrCategoryInUse)
		}
	}
	return p.erase(key)
}

// Close is a no-op; diskv holds no open handles.
func (p *DiskvStore) Close() error {
	return nil
}

func (p *DiskvStore) read(key string, into any) error {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: %s: %w", key, ErrNotFound)
		}
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, into); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (p *DiskvStore) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *DiskvStore) erase(key string) error {
	if !p.d.Has(key) {
		return fmt.Errorf("store: %s: %w", key, ErrNotFound)
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

// keyToPathTransform maps `bucket:id` to bucket/id.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySep)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, keySep) + keySep + pathKey.FileName
}

// checkID rejects ids that would escape the bucket directory.
func checkID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, keySep+`/\`) {
		return fmt.Errorf("store: id %q: %w", id, ErrNotFound)
	}
	return nil
}

func toKey(bucket, id string) string {
	return bucket + keySep + id
}
