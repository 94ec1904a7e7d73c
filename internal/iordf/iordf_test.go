package iordf_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/internal/iordf"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/gnames/gutendb/pkg/graph"
	"github.com/gnames/gutendb/pkg/reader"
	"github.com/gnames/gutendb/pkg/roles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	g, err := iordf.Load(filepath.Join("testdata", "pg84.rdf"))
	require.NoError(t, err)

	book := graph.NewIRI(reader.BookIRI(84))
	assert.True(t, g.Has(book))
	title := g.Value(book, "http://purl.org/dc/terms/title")
	require.NotNil(t, title)
	assert.Equal(t, "Frankenstein; Or, The Modern Prometheus", *title)
}

func TestLoadThenRead(t *testing.T) {
	g, err := iordf.Load(filepath.Join("testdata", "pg84.rdf"))
	require.NoError(t, err)

	rec, err := reader.Read(84, g)
	require.NoError(t, err)

	require.NotNil(t, rec.Format)
	assert.Equal(t, "Text", *rec.Format)
	require.NotNil(t, rec.Downloads)
	assert.Equal(t, 91234, *rec.Downloads)
	assert.Equal(t, []string{"en"}, rec.Languages)
	assert.ElementsMatch(t, []string{"Science fiction", "Horror tales"}, rec.Subjects)
	assert.Equal(t, []string{"Gothic Fiction"}, rec.Bookshelves)

	require.Len(t, rec.Resources, 1)
	res := rec.Resources[0]
	assert.Equal(t, "https://www.gutenberg.org/ebooks/84.epub3.images", res.URI)
	require.NotNil(t, res.MediaType)
	assert.Equal(t, "application/epub+zip", *res.MediaType)

	require.Len(t, rec.Agents[roles.Author], 1)
	author := rec.Agents[roles.Author][0]
	require.NotNil(t, author.Webpage)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Mary_Shelley", *author.Webpage)

	require.Len(t, rec.Agents["Illustrator"], 1)
	ill := rec.Agents["Illustrator"][0]
	assert.Nil(t, ill.Alias)
	assert.Nil(t, ill.BirthDate)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join("testdata", "pg0.rdf")},
		{"broken xml", filepath.Join("testdata", "broken.rdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iordf.Load(tt.path)
			require.Error(t, err)

			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, errcode.IngestParseError, gnErr.Code)
			assert.Equal(t, []any{tt.path}, gnErr.Vars)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	doc := `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
</rdf:RDF>`
	_, err := iordf.Decode(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		iri, want string
	}{
		{"ebooks/84", "http://www.gutenberg.org/ebooks/84"},
		{"2009/agents/61", "http://www.gutenberg.org/2009/agents/61"},
		{"https://www.gutenberg.org/ebooks/84.txt.utf-8",
			"https://www.gutenberg.org/ebooks/84.txt.utf-8"},
		{"http://purl.org/dc/terms/title", "http://purl.org/dc/terms/title"},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			assert.Equal(t, tt.want, iordf.Resolve(tt.iri))
		})
	}
}

func TestRecord(t *testing.T) {
	path := filepath.Join("testdata", "pg84.rdf")
	rec, err := iordf.Record(84, path)
	require.NoError(t, err)
	assert.Equal(t, 84, rec.ID)

	// the file describes another book
	_, err = iordf.Record(85, path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.IngestParseError, gnErr.Code)
}
