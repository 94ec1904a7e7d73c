package iostore

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/gnames/gutendb/pkg/roles"
	"github.com/gnames/gutendb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string {
	return &s
}

func newStore(t *testing.T) *store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "books.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.(*store)
}

func count(t *testing.T, s *store, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Table(table).Count(&n).Error)
	return n
}

func counts(t *testing.T, s *store) map[string]int64 {
	res := make(map[string]int64)
	for _, m := range schema.AllModels() {
		res[m.TableName()] = count(t, s, m.TableName())
	}
	return res
}

func frankenstein() catalog.Record {
	downloads := 91234
	size := int64(476520)
	return catalog.Record{
		ID:          84,
		Format:      str("Text"),
		Title:       str("Frankenstein; Or, The Modern Prometheus"),
		License:     str("http://www.gutenberg.org/license"),
		Downloads:   &downloads,
		Subjects:    []string{"Science fiction", "Horror tales"},
		Languages:   []string{"en"},
		Bookshelves: []string{"Gothic Fiction"},
		Resources: []catalog.Resource{
			{
				URI:       "https://www.gutenberg.org/ebooks/84.epub3.images",
				Size:      &size,
				Modified:  str("2024-10-01T06:30:44.123"),
				MediaType: str("application/epub+zip"),
			},
			{URI: "https://www.gutenberg.org/ebooks/84.txt.utf-8"},
		},
		Agents: map[string][]catalog.Person{
			roles.Author: {{
				Name:      str("Shelley, Mary Wollstonecraft"),
				BirthDate: str("1797"),
				DeathDate: str("1851"),
			}},
			"Illustrator": {{Name: str("Holst, Theodor von")}},
		},
	}
}

func TestOpenSeedsRoles(t *testing.T) {
	s := newStore(t)
	assert.Equal(t, int64(len(roles.All())), count(t, s, "contributor_roles"))
}

func TestOpenError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "books.sqlite3")
	_, err := Open(path)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.StoreOpenError, gnErr.Code)
	assert.Equal(t, []any{path}, gnErr.Vars)
}

func TestApply(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Apply(ctx, frankenstein()))

	var book schema.Book
	require.NoError(t, s.db.Take(&book, 84).Error)
	assert.Equal(t, "Frankenstein; Or, The Modern Prometheus", book.Title.String)
	assert.False(t, book.Description.Valid)
	assert.Equal(t, int64(91234), book.Downloads.Int64)

	c := counts(t, s)
	assert.Equal(t, int64(1), c["books"])
	assert.Equal(t, int64(2), c["people"])
	assert.Equal(t, int64(2), c["contributions"])
	assert.Equal(t, int64(2), c["book_contributions"])
	assert.Equal(t, int64(2), c["subjects"])
	assert.Equal(t, int64(1), c["languages"])
	assert.Equal(t, int64(1), c["bookshelves"])
	assert.Equal(t, int64(2), c["resources"])
	assert.Equal(t, int64(2), c["book_resources"])

	var roleNames []string
	err := s.db.Model(&schema.Contribution{}).Order("role").
		Pluck("role", &roleNames).Error
	require.NoError(t, err)
	assert.Equal(t, []string{roles.Author, "Illustrator"}, roleNames)
}

// contents returns every row of every table ordered by all columns.
func contents(t *testing.T, s *store) map[string][]map[string]any {
	t.Helper()
	res := make(map[string][]map[string]any)
	for _, m := range schema.AllModels() {
		var rows []map[string]any
		err := s.db.Table(m.TableName()).
			Order(strings.Join(schema.Columns(m), ", ")).
			Find(&rows).Error
		require.NoError(t, err)
		res[m.TableName()] = rows
	}
	return res
}

func TestApplyIdempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, frankenstein()))
	first := contents(t, s)
	require.Len(t, first["books"], 1)
	require.Len(t, first["people"], 2)
	require.Len(t, first["resources"], 2)

	require.NoError(t, s.Apply(ctx, frankenstein()))
	assert.Equal(t, first, contents(t, s))
}

func TestApplyMissingFields(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Apply(context.Background(), catalog.Record{ID: 7}))

	var book schema.Book
	require.NoError(t, s.db.Take(&book, 7).Error)
	assert.False(t, book.Format.Valid)
	assert.False(t, book.Title.Valid)
	assert.False(t, book.License.Valid)
	assert.False(t, book.Downloads.Valid)

	c := counts(t, s)
	assert.Equal(t, int64(0), c["people"])
	assert.Equal(t, int64(0), c["book_subjects"])
	assert.Equal(t, int64(0), c["book_resources"])
}

func TestApplyNaturalKeys(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 1; i <= 100; i++ {
		rec := catalog.Record{
			ID:          i,
			Title:       str(fmt.Sprintf("Book %d", i)),
			Subjects:    []string{"Fiction"},
			Bookshelves: []string{"Best Books Ever Listings"},
			Languages:   []string{"en"},
		}
		require.NoError(t, s.Apply(ctx, rec))
	}

	c := counts(t, s)
	assert.Equal(t, int64(100), c["books"])
	assert.Equal(t, int64(1), c["subjects"])
	assert.Equal(t, int64(100), c["book_subjects"])
	assert.Equal(t, int64(1), c["bookshelves"])
	assert.Equal(t, int64(100), c["book_bookshelves"])
	assert.Equal(t, int64(1), c["languages"])
	assert.Equal(t, int64(100), c["book_languages"])
}

func TestApplyPersonIdentity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	twain := catalog.Person{Name: str("Twain, Mark"), BirthDate: str("1835")}
	sameTwain := catalog.Person{Name: str("Twain, Mark"), BirthDate: str("1835")}
	// empty alias is a known value, different from an unknown one
	otherTwain := catalog.Person{
		Name: str("Twain, Mark"), Alias: str(""), BirthDate: str("1835"),
	}

	recs := []catalog.Record{
		{ID: 74, Agents: map[string][]catalog.Person{roles.Author: {twain}}},
		{ID: 76, Agents: map[string][]catalog.Person{roles.Author: {sameTwain}}},
		{ID: 86, Agents: map[string][]catalog.Person{
			roles.Author: {otherTwain},
			"Editor":     {sameTwain},
		}},
	}
	for _, v := range recs {
		require.NoError(t, s.Apply(ctx, v))
	}

	c := counts(t, s)
	assert.Equal(t, int64(2), c["people"])
	// (twain, Author), (otherTwain, Author), (twain, Editor)
	assert.Equal(t, int64(3), c["contributions"])
	assert.Equal(t, int64(4), c["book_contributions"])

	var person schema.Person
	err := s.db.Where("tuple_key = ?", twain.TupleKey().String()).
		Take(&person).Error
	require.NoError(t, err)
	assert.False(t, person.Alias.Valid)
	assert.False(t, person.DeathDate.Valid)
}

func TestApplyReplacesBook(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	rec := frankenstein()
	require.NoError(t, s.Apply(ctx, rec))

	rec.Title = str("Frankenstein")
	rec.Description = str("A novel")
	rec.Downloads = nil
	rec.Subjects = []string{"Monsters"}
	require.NoError(t, s.Apply(ctx, rec))

	var book schema.Book
	require.NoError(t, s.db.Take(&book, 84).Error)
	assert.Equal(t, "Frankenstein", book.Title.String)
	assert.Equal(t, "A novel", book.Description.String)
	assert.False(t, book.Downloads.Valid)

	// links are only added
	assert.Equal(t, int64(3), count(t, s, "book_subjects"))
}

func TestApplyResourceFirstSeen(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	small, large := int64(10), int64(20)
	uri := "https://www.gutenberg.org/cache/epub/1/cover.jpg"
	recs := []catalog.Record{
		{ID: 1, Resources: []catalog.Resource{
			{URI: uri, Size: &small, Modified: str("not a date")},
		}},
		{ID: 2, Resources: []catalog.Resource{
			{URI: uri, Size: &large, MediaType: str("image/jpeg")},
		}},
	}
	for _, v := range recs {
		require.NoError(t, s.Apply(ctx, v))
	}

	var res schema.Resource
	require.NoError(t, s.db.Where("uri = ?", uri).Take(&res).Error)
	assert.Equal(t, int64(10), res.Size.Int64)
	assert.False(t, res.MediaType.Valid)
	assert.False(t, res.Modified.Valid, "unparsable time is unknown")

	assert.Equal(t, int64(1), count(t, s, "resources"))
	assert.Equal(t, int64(2), count(t, s, "book_resources"))
}

func TestApplyModified(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Apply(context.Background(), frankenstein()))

	var res schema.Resource
	err := s.db.Where("uri = ?", "https://www.gutenberg.org/ebooks/84.epub3.images").
		Take(&res).Error
	require.NoError(t, err)
	require.True(t, res.Modified.Valid)
	assert.Equal(t, 2024, res.Modified.Time.Year())
	assert.Equal(t, 30, res.Modified.Time.Minute())
}

func TestApplyCancelled(t *testing.T) {
	s := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Apply(ctx, frankenstein())
	require.Error(t, err)
	assert.Equal(t, int64(0), count(t, s, "books"))
}

func TestClear(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Apply(ctx, frankenstein()))

	require.NoError(t, s.Clear(ctx))
	for table, n := range counts(t, s) {
		if table == "contributor_roles" {
			assert.Equal(t, int64(len(roles.All())), n)
			continue
		}
		assert.Equal(t, int64(0), n, table)
	}

	// the store is usable after clearing
	require.NoError(t, s.Apply(ctx, frankenstein()))
	assert.Equal(t, int64(1), count(t, s, "books"))
}
