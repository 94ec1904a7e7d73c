package iocache_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/internal/iocache"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/gnames/gutendb/pkg/roles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string {
	return &s
}

// countingParser returns a fixed record and counts calls.
type countingParser struct {
	mu    sync.Mutex
	calls int
}

func (p *countingParser) parse(id int, _ string) (catalog.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	downloads := 10
	return catalog.Record{
		ID:        id,
		Title:     str("Title"),
		Downloads: &downloads,
		Subjects:  []string{"Fiction"},
		Agents: map[string][]catalog.Person{
			roles.Author: {{Name: str("Doe, Jane")}},
		},
	}, nil
}

func TestGetOrParse(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "json")
	p := &countingParser{}
	c := iocache.New(dir, p.parse)

	rec, err := c.GetOrParse(84, "pg84.rdf")
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 0, c.Hits())
	assert.FileExists(t, filepath.Join(dir, "84.json"))

	cached, err := c.GetOrParse(84, "pg84.rdf")
	require.NoError(t, err)
	assert.Equal(t, 1, p.calls, "second call does not parse")
	assert.Equal(t, 1, c.Hits())
	assert.Equal(t, rec, cached)

	// unknown fields stay unknown after the round trip
	assert.Nil(t, cached.Description)
	assert.Nil(t, cached.Agents[roles.Author][0].Alias)
}

func TestGetOrParseTrustsEntry(t *testing.T) {
	dir := t.TempDir()
	p := &countingParser{}
	c := iocache.New(dir, p.parse)

	err := os.WriteFile(filepath.Join(dir, "7.json"),
		[]byte(`{"id":7,"title":"Stale title"}`), 0644)
	require.NoError(t, err)

	rec, err := c.GetOrParse(7, "pg7.rdf")
	require.NoError(t, err)
	assert.Equal(t, 0, p.calls)
	require.NotNil(t, rec.Title)
	assert.Equal(t, "Stale title", *rec.Title)
}

func TestGetOrParseNoDir(t *testing.T) {
	p := &countingParser{}
	c := iocache.New("", p.parse)

	for range 3 {
		_, err := c.GetOrParse(1, "pg1.rdf")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.calls)
	assert.Equal(t, 0, c.Hits())
}

func TestGetOrParseFailure(t *testing.T) {
	dir := t.TempDir()
	parseErr := errors.New("bad rdf")
	c := iocache.New(dir, func(int, string) (catalog.Record, error) {
		return catalog.Record{}, parseErr
	})

	_, err := c.GetOrParse(3, "pg3.rdf")
	assert.ErrorIs(t, err, parseErr)
	assert.NoFileExists(t, filepath.Join(dir, "3.json"),
		"failed parse is not cached")
}

func TestGetOrParseCorrupted(t *testing.T) {
	dir := t.TempDir()
	p := &countingParser{}
	c := iocache.New(dir, p.parse)

	path := filepath.Join(dir, "5.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":`), 0644))

	_, err := c.GetOrParse(5, "pg5.rdf")
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.IngestCacheError, gnErr.Code)
	assert.Equal(t, []any{path}, gnErr.Vars)
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	p := &countingParser{}
	c := iocache.New(dir, p.parse)

	_, err := c.GetOrParse(1, "pg1.rdf")
	require.NoError(t, err)
	require.NoError(t, c.Clear())
	assert.NoFileExists(t, filepath.Join(dir, "1.json"))

	_, err = c.GetOrParse(1, "pg1.rdf")
	require.NoError(t, err)
	assert.Equal(t, 2, p.calls)
}

func TestConcurrentReaders(t *testing.T) {
	dir := t.TempDir()
	p := &countingParser{}
	c := iocache.New(dir, p.parse)

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			rec, err := c.GetOrParse(id, "")
			assert.NoError(t, err)
			assert.Equal(t, id, rec.ID)
		}(i)
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
