// Package catalog contains the intermediate representation of a book
// extracted from its metadata graph, and the report of a batch run.
//
// Record fields that can be absent in the source are pointers; nil is the
// explicit "unknown" marker and is stored as NULL.
package catalog

// Record is a flat view of one book's metadata graph.
type Record struct {
	// ID is the book identifier (the corpus directory name).
	ID int `json:"id"`

	// Format is the DCMI type label of the book, usually "Text".
	Format *string `json:"format"`

	Title       *string `json:"title"`
	Description *string `json:"description"`

	// License is the license URI.
	License *string `json:"license"`

	// Downloads is the download count reported by the library.
	Downloads *int `json:"downloads"`

	Subjects    []string `json:"subjects"`
	Languages   []string `json:"languages"`
	Bookshelves []string `json:"bookshelves"`

	// Resources are the downloadable artifacts of the book.
	Resources []Resource `json:"resources"`

	// Agents maps a contributor role name to people that contributed
	// to the book in that role.
	Agents map[string][]Person `json:"agents"`
}

// Person is a contributor described by five nullable fields. Two
// persons are the same only when all five fields are equal.
type Person struct {
	Name      *string `json:"name"`
	Alias     *string `json:"alias"`
	BirthDate *string `json:"birth_date"`
	DeathDate *string `json:"death_date"`
	Webpage   *string `json:"webpage"`
}

// Resource is a downloadable file of a book.
type Resource struct {
	URI string `json:"uri"`

	// Size in bytes.
	Size *int64 `json:"size"`

	// Modified is the last-modified timestamp as given in the source.
	Modified *string `json:"modified"`

	// MediaType is the MIME type of the file.
	MediaType *string `json:"media_type"`
}
