package iocache

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// ReadError is returned when a cache entry exists but cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read cached record <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read cache entry %s: %w", path, err),
	}
}

// DecodeError is returned for a corrupted cache entry.
func DecodeError(path string, err error) error {
	msg := `Cached record <em>%s</em> is corrupted

<em>How to fix:</em>
  Remove the file or run ingest with <em>--clear-cache</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode cache entry %s: %w", path, err),
	}
}

// EncodeError is returned when a record cannot be serialized.
func EncodeError(id int, err error) error {
	msg := "Cannot encode record of book <em>%d</em>"
	vars := []any{id}

	return &gn.Error{
		Code: errcode.IngestCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode record %d: %w", id, err),
	}
}

// WriteError is returned when a cache entry cannot be saved.
func WriteError(path string, err error) error {
	msg := "Cannot save cached record <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write cache entry %s: %w", path, err),
	}
}
