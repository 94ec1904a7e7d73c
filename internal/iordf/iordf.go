// Package iordf decodes RDF/XML metadata files into a graph.Graph.
// This is an impure I/O package, all knowledge of the RDF library stays
// here.
package iordf

import (
	"errors"
	"io"
	"net/url"
	"os"

	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/graph"
	"github.com/gnames/gutendb/pkg/reader"
	"github.com/knakk/rdf"
)

var base, _ = url.Parse(reader.Base)

// Load reads and decodes an RDF/XML file.
func Load(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, DecodeError(path, err)
	}
	return g, nil
}

// Decode converts an RDF/XML document to a graph. Relative IRIs are
// resolved against reader.Base.
func Decode(r io.Reader) (*graph.Graph, error) {
	g := graph.New()
	dec := rdf.NewTripleDecoder(r, rdf.RDFXML)
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		g.Add(node(tr.Subj), Resolve(tr.Pred.String()), node(tr.Obj))
	}

	if g.Len() == 0 {
		return nil, errors.New("document has no statements")
	}
	return g, nil
}

func node(t rdf.Term) graph.Node {
	switch v := t.(type) {
	case rdf.IRI:
		return graph.NewIRI(Resolve(v.String()))
	case rdf.Blank:
		return graph.NewBlank(v.String())
	case rdf.Literal:
		if lang := v.Lang(); lang != "" {
			n := graph.NewLiteral(v.String())
			n.Lang = lang
			return n
		}
		return graph.NewTypedLiteral(v.String(), v.DataType.String())
	}
	return graph.NewLiteral(t.String())
}

// Resolve makes a relative IRI absolute. Absolute and malformed IRIs
// are returned unchanged.
func Resolve(iri string) string {
	u, err := url.Parse(iri)
	if err != nil || u.IsAbs() {
		return iri
	}
	return base.ResolveReference(u).String()
}

// Record loads the metadata file of a book and reads its record.
func Record(id int, path string) (catalog.Record, error) {
	g, err := Load(path)
	if err != nil {
		return catalog.Record{}, err
	}
	return reader.Read(id, g)
}
