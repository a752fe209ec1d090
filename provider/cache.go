package provider

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
	"github.com/qosasa/qosasa/pkg"
)

// Cache loads format files, compiling each distinct content once. Entries
// are keyed by the hash of the file contents, so an edited file is
// recompiled on its next load. A Cache is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	nodes map[uint64]*format.Node
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{nodes: make(map[uint64]*format.Node)}
}

// Load reads the format file at path and returns its compiled schema.
func (c *Cache) Load(ctx context.Context, path string) (*format.Node, error) {
	p, err := forFile(path)
	if err != nil {
		return nil, err
	}

	data, err := read(ctx, path)
	if err != nil {
		return nil, err
	}

	hash := xxh3.Hash(data)

	c.mu.Lock()
	node, ok := c.nodes[hash]
	c.mu.Unlock()

	if ok {
		log.TraceContext(ctx, "format cache hit",
			slog.String("path", path), slog.Uint64("hash", hash))

		return node, nil
	}

	raw, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	node, err = format.Compile(raw)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("file", path))
	}

	c.mu.Lock()
	if c.nodes == nil {
		c.nodes = make(map[uint64]*format.Node)
	}

	c.nodes[hash] = node
	c.mu.Unlock()

	log.TraceContext(ctx, "format compiled",
		slog.String("path", path), slog.Uint64("hash", hash))

	return node, nil
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.nodes)
}
