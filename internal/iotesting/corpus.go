package iotesting

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

const bookTemplate = `<?xml version="1.0" encoding="utf-8"?>
<rdf:RDF xml:base="http://www.gutenberg.org/"
  xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
  xmlns:dcterms="http://purl.org/dc/terms/"
  xmlns:pgterms="http://www.gutenberg.org/2009/pgterms/"
  xmlns:marcrel="http://id.loc.gov/vocabulary/relators/">
  <pgterms:ebook rdf:about="http://www.gutenberg.org/ebooks/%[1]d">
    <dcterms:title>Book number %[1]d</dcterms:title>
    <pgterms:downloads rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">%[1]d</pgterms:downloads>
    <dcterms:type>
      <rdf:Description>
        <rdf:value>Text</rdf:value>
      </rdf:Description>
    </dcterms:type>
    <dcterms:language>
      <rdf:Description>
        <rdf:value>en</rdf:value>
      </rdf:Description>
    </dcterms:language>
    <dcterms:subject>
      <rdf:Description>
        <rdf:value>Fiction</rdf:value>
      </rdf:Description>
    </dcterms:subject>
    <pgterms:bookshelf>
      <rdf:Description>
        <rdf:value>Best Books Ever Listings</rdf:value>
      </rdf:Description>
    </pgterms:bookshelf>
    <dcterms:creator>
      <pgterms:agent rdf:about="http://www.gutenberg.org/2009/agents/53">
        <pgterms:name>Twain, Mark</pgterms:name>
        <pgterms:birthdate rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">1835</pgterms:birthdate>
        <pgterms:deathdate rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">1910</pgterms:deathdate>
      </pgterms:agent>
    </dcterms:creator>
    <marcrel:edt>
      <pgterms:agent rdf:about="http://www.gutenberg.org/2009/agents/9%[1]d">
        <pgterms:name>Editor %[1]d</pgterms:name>
      </pgterms:agent>
    </marcrel:edt>
    <dcterms:hasFormat>
      <pgterms:file rdf:about="https://www.gutenberg.org/ebooks/%[1]d.txt.utf-8">
        <dcterms:extent rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">1%[1]d</dcterms:extent>
        <dcterms:modified rdf:datatype="http://www.w3.org/2001/XMLSchema#dateTime">2024-01-02T03:04:05</dcterms:modified>
        <dcterms:format>
          <rdf:Description>
            <rdf:value rdf:datatype="http://purl.org/dc/terms/IMT">text/plain; charset=utf-8</rdf:value>
          </rdf:Description>
        </dcterms:format>
      </pgterms:file>
    </dcterms:hasFormat>
  </pgterms:ebook>
</rdf:RDF>
`

// BookRDF returns an RDF/XML metadata document of a book. All books
// share an author, a subject, a bookshelf and a language, every book
// has its own editor and one text file.
func BookRDF(id int) string {
	return fmt.Sprintf(bookTemplate, id)
}

// WriteCorpus creates {root}/{id}/pg{id}.rdf files for the given
// identifiers.
func WriteCorpus(t *testing.T, root string, ids ...int) {
	t.Helper()
	for _, id := range ids {
		name := strconv.Itoa(id)
		WriteItem(t, root, name, "pg"+name+".rdf", BookRDF(id))
	}
}

// WriteItem creates a corpus directory with one file in it.
// An empty file name creates an empty directory.
func WriteItem(t *testing.T, root, dir, file, content string) {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create corpus dir: %v", err)
	}
	if file == "" {
		return
	}
	err := os.WriteFile(filepath.Join(path, file), []byte(content), 0644)
	if err != nil {
		t.Fatalf("Failed to write corpus file: %v", err)
	}
}
