package parser

import (
	"context"
	"sync"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

// Source fetches one dataset.
type Source interface {
	Fetch(ctx context.Context) (*models.Table, error)
}

// FileSource reads a table file on every fetch.
type FileSource struct {
	Path    string
	Options LoadOptions
}

// Fetch loads the file unless ctx is already done.
func (s FileSource) Fetch(ctx context.Context) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadTable(s.Path, s.Options)
}

// StaticSource serves a table already in memory.
type StaticSource struct {
	Table *models.Table
}

// Fetch returns the table unless ctx is already done.
func (s StaticSource) Fetch(ctx context.Context) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Table, nil
}

// CachedSource fetches from an underlying source until one fetch succeeds,
// then serves that table for the rest of its lifetime.
type CachedSource struct {
	src Source

	mu    sync.Mutex
	table *models.Table
}

// Cache wraps src so the dataset is loaded once.
func Cache(src Source) *CachedSource {
	return &CachedSource{src: src}
}

// Fetch returns the cached table, loading it on first use.
func (c *CachedSource) Fetch(ctx context.Context) (*models.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil {
		return c.table, nil
	}
	t, err := c.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.table = t
	return t, nil
}
