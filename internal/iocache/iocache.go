// Package iocache keeps intermediate book records on disk, one JSON file
// per identifier. An entry is written once and trusted afterwards, there
// is no invalidation.
package iocache

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gutendb/internal/iofs"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/lifecycle"
)

// Parser creates a record from the metadata file of a book.
type Parser func(id int, path string) (catalog.Record, error)

type cache struct {
	dir   string
	parse Parser
	enc   gnfmt.GNjson
	hits  atomic.Int64
}

// New creates a cache in dir. With an empty dir every call goes
// straight to parse.
func New(dir string, parse Parser) lifecycle.Cache {
	return &cache{dir: dir, parse: parse}
}

// GetOrParse returns the cached record of the book, or parses the
// source file and caches the result. Failed parses are not cached.
func (c *cache) GetOrParse(id int, source string) (catalog.Record, error) {
	if c.dir == "" {
		return c.parse(id, source)
	}

	path := c.path(id)
	rec, err := c.get(path)
	if err == nil {
		c.hits.Add(1)
		return rec, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return catalog.Record{}, err
	}

	rec, err = c.parse(id, source)
	if err != nil {
		return catalog.Record{}, err
	}

	if err = c.put(path, rec); err != nil {
		return catalog.Record{}, err
	}
	slog.Debug("Cached record", "id", id, "path", path)
	return rec, nil
}

// Hits returns the number of records served from disk.
func (c *cache) Hits() int {
	return int(c.hits.Load())
}

// Clear removes all cached records.
func (c *cache) Clear() error {
	if c.dir == "" {
		return nil
	}
	return iofs.ClearDir(c.dir)
}

func (c *cache) path(id int) string {
	return filepath.Join(c.dir, strconv.Itoa(id)+".json")
}

func (c *cache) get(path string) (catalog.Record, error) {
	var res catalog.Record
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, err
		}
		return res, ReadError(path, err)
	}

	if err = c.enc.Decode(data, &res); err != nil {
		return res, DecodeError(path, err)
	}
	return res, nil
}

func (c *cache) put(path string, rec catalog.Record) error {
	data, err := c.enc.Encode(rec)
	if err != nil {
		return EncodeError(rec.ID, err)
	}
	if err = iofs.WriteAtomic(path, data); err != nil {
		return WriteError(path, err)
	}
	return nil
}
