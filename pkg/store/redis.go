package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"tableflip.dev/snip/pkg/block"
)

// RedisStore is a Persistence that keeps each bucket in one redis hash,
// keyed by record id with JSON values.
type RedisStore struct {
	rdb        *redis.Client
	blocks     string
	categories string
}

var _ Persistence = (*RedisStore)(nil)

// NewRedis connects to the server in cfg and pings it.
func NewRedis(cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("store: redis ping %s: %w", cfg.Addr, err)
	}
	return newRedisStore(rdb, cfg.Namespace), nil
}

func newRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "snip"
	}
	return &RedisStore{
		rdb:        rdb,
		blocks:     namespace + ":" + bucketBlocks,
		categories: namespace + ":" + bucketCategories,
	}
}

func (s *RedisStore) ListCategories(ctx context.Context) ([]block.Category, error) {
	vals, err := s.rdb.HVals(ctx, s.categories).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	all := make([]block.Category, 0, len(vals))
	for _, v := range vals {
		var c block.Category
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			return nil, fmt.Errorf("store: decode category: %w", err)
		}
		all = append(all, c)
	}
	sortCategories(all)
	return all, nil
}

func (s *RedisStore) ListBlocks(ctx context.Context) ([]block.Block, error) {
	all, err := s.listBlocks(ctx, s.rdb)
	if err != nil {
		return nil, err
	}
	sortBlocks(all)
	return all, nil
}

type hvaler interface {
	HVals(ctx context.Context, key string) *redis.StringSliceCmd
}

func (s *RedisStore) listBlocks(ctx context.Context, c hvaler) ([]block.Block, error) {
	vals, err := c.HVals(ctx, s.blocks).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list blocks: %w", err)
	}
	all := make([]block.Block, 0, len(vals))
	for _, v := range vals {
		var b block.Block
		if err := json.Unmarshal([]byte(v), &b); err != nil {
			return nil, fmt.Errorf("store: decode block: %w", err)
		}
		all = append(all, b)
	}
	return all, nil
}

func (s *RedisStore) GetBlock(ctx context.Context, id string) (block.Block, error) {
	var b block.Block
	if err := s.get(ctx, s.blocks, id, &b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (s *RedisStore) CreateBlock(ctx context.Context, b block.Block) (block.Block, error) {
	b, err := prepareBlock(b)
	if err != nil {
		return block.Block{}, err
	}
	if err := s.put(ctx, s.blocks, b.ID, b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (s *RedisStore) UpdateBlock(ctx context.Context, id string, patch block.Patch) (block.Block, error) {
	b, err := s.GetBlock(ctx, id)
	if err != nil {
		return block.Block{}, err
	}
	if b, err = patchBlock(b, patch); err != nil {
		return block.Block{}, err
	}
	if err := s.put(ctx, s.blocks, id, b); err != nil {
		return block.Block{}, err
	}
	return b, nil
}

func (s *RedisStore) DeleteBlock(ctx context.Context, id string) error {
	return s.del(ctx, s.blocks, id)
}

func (s *RedisStore) CreateCategory(ctx context.Context, c block.Category) (block.Category, error) {
	c, err := prepareCategory(c)
	if err != nil {
		return block.Category{}, err
	}
	if err := s.put(ctx, s.categories, c.ID, c); err != nil {
		return block.Category{}, err
	}
	return c, nil
}

func (s *RedisStore) UpdateCategory(ctx context.Context, id string, patch block.CategoryPatch) (block.Category, error) {
	var c block.Category
	if err := s.get(ctx, s.categories, id, &c); err != nil {
		return block.Category{}, err
	}
	c, err := patchCategory(c, patch)
	if err != nil {
		return block.Category{}, err
	}
	if err := s.put(ctx, s.categories, id, c); err != nil {
		return block.Category{}, err
	}
	return c, nil
}

// DeleteCategory watches the blocks hash so a block written between the
// in-use check and the delete aborts the transaction.
func (s *RedisStore) DeleteCategory(ctx context.Context, id string) error {
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		blocks, err := s.listBlocks(ctx, tx)
		if err != nil {
			return err
		}
		for _, b := range blocks {
			if b.CategoryID == id {
				return fmt.Errorf("store: category %q: %w", id, ErrCategoryInUse)
			}
		}
		exists, err := tx.HExists(ctx, s.categories, id).Result()
		if err != nil {
			return fmt.Errorf("store: delete category: %w", err)
		}
		if !exists {
			return fmt.Errorf("store: category %q: %w", id, ErrNotFound)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, s.categories, id)
			return nil
		})
		return err
	}, s.blocks)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("store: delete category %q: blocks changed concurrently: %w", id, err)
	}
	return err
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) get(ctx context.Context, key, id string, into any) error {
	val, err := s.rdb.HGet(ctx, key, id).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("store: %s %q: %w", key, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: get %s %q: %w", key, id, err)
	}
	if err := json.Unmarshal([]byte(val), into); err != nil {
		return fmt.Errorf("store: decode %s %q: %w", key, id, err)
	}
	return nil
}

func (s *RedisStore) put(ctx context.Context, key, id string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.rdb.HSet(ctx, key, id, data).Err(); err != nil {
		return fmt.Errorf("store: put %s %q: %w", key, id, err)
	}
	return nil
}

func (s *RedisStore) del(ctx context.Context, key, id string) error {
	n, err := s.rdb.HDel(ctx, key, id).Result()
	if err != nil {
		return fmt.Errorf("store: delete %s %q: %w", key, id, err)
	}
	if n == 0 {
		return fmt.Errorf("store: %s %q: %w", key, id, ErrNotFound)
	}
	return nil
}
