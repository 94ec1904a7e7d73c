// Package reader extracts a catalog.Record from the metadata graph of a
// book. Every relation has its own accessor that returns zero-or-one or
// zero-or-many typed values, a missing relation is never an error.
package reader

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/graph"
	"github.com/gnames/gutendb/pkg/roles"
)

// Base is the namespace of book and agent IRIs. Relative IRIs of a
// metadata file are resolved against it.
const Base = "http://www.gutenberg.org/"

const (
	dcterms = "http://purl.org/dc/terms/"
	pgterms = "http://www.gutenberg.org/2009/pgterms/"
	rdfNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

var (
	rdfValue = rdfNS + "value"

	dcTitle       = dcterms + "title"
	dcDescription = dcterms + "description"
	dcLicense     = dcterms + "license"
	dcType        = dcterms + "type"
	dcSubject     = dcterms + "subject"
	dcLanguage    = dcterms + "language"
	dcCreator     = dcterms + "creator"
	dcHasFormat   = dcterms + "hasFormat"
	dcExtent      = dcterms + "extent"
	dcModified    = dcterms + "modified"
	dcFormat      = dcterms + "format"

	pgDownloads = pgterms + "downloads"
	pgBookshelf = pgterms + "bookshelf"
	pgName      = pgterms + "name"
	pgAlias     = pgterms + "alias"
	pgBirthdate = pgterms + "birthdate"
	pgDeathdate = pgterms + "deathdate"
	pgWebpage   = pgterms + "webpage"
)

// BookIRI returns the IRI of the root node of a book.
func BookIRI(id int) string {
	return Base + "ebooks/" + strconv.Itoa(id)
}

// Read creates a record of the book with the given identifier. It fails
// only if the graph says nothing about that book.
func Read(id int, g *graph.Graph) (catalog.Record, error) {
	book := graph.NewIRI(BookIRI(id))
	if !g.Has(book) {
		return catalog.Record{}, BookNotFoundError(id)
	}

	res := catalog.Record{
		ID:          id,
		Format:      format(g, book),
		Title:       g.Value(book, dcTitle),
		Description: g.Value(book, dcDescription),
		License:     g.Value(book, dcLicense),
		Downloads:   downloads(g, book),
		Subjects:    uniq(g.DerefAll(book, dcSubject, rdfValue)),
		Languages:   uniq(g.DerefAll(book, dcLanguage, rdfValue)),
		Bookshelves: uniq(g.DerefAll(book, pgBookshelf, rdfValue)),
		Resources:   resources(g, book),
		Agents:      agents(g, book),
	}
	return res, nil
}

func format(g *graph.Graph, book graph.Node) *string {
	return g.Deref(book, dcType, rdfValue)
}

func downloads(g *graph.Graph, book graph.Node) *int {
	v := g.Value(book, pgDownloads)
	if v == nil {
		return nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return nil
	}
	return &i
}

func resources(g *graph.Graph, book graph.Node) []catalog.Resource {
	var res []catalog.Resource
	for _, file := range g.Objects(book, dcHasFormat) {
		// a file without IRI cannot be identified
		if file.Kind != graph.IRI {
			continue
		}
		res = append(res, catalog.Resource{
			URI:       file.Value,
			Size:      size(g, file),
			Modified:  g.Value(file, dcModified),
			MediaType: g.Deref(file, dcFormat, rdfValue),
		})
	}
	return res
}

func size(g *graph.Graph, file graph.Node) *int64 {
	v := g.Value(file, dcExtent)
	if v == nil {
		return nil
	}
	i, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
	if err != nil {
		return nil
	}
	return &i
}

func agents(g *graph.Graph, book graph.Node) map[string][]catalog.Person {
	res := make(map[string][]catalog.Person)
	for _, node := range g.Objects(book, dcCreator) {
		if node.IsResource() {
			res[roles.Author] = append(res[roles.Author], person(g, node))
		}
	}

	for _, pred := range g.Predicates(book) {
		role, ok := roles.Classify(pred)
		if !ok {
			continue
		}
		for _, node := range g.Objects(book, pred) {
			if node.IsResource() {
				res[role] = append(res[role], person(g, node))
			}
		}
	}
	return res
}

func person(g *graph.Graph, agent graph.Node) catalog.Person {
	return catalog.Person{
		Name:      g.Value(agent, pgName),
		Alias:     g.Value(agent, pgAlias),
		BirthDate: g.Value(agent, pgBirthdate),
		DeathDate: g.Value(agent, pgDeathdate),
		Webpage:   g.Value(agent, pgWebpage),
	}
}

// uniq removes repeated values keeping the first occurrence.
func uniq(ss []string) []string {
	var res []string
	for _, v := range ss {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}
