// Package schema provides database schema models for gutendb.
// The same models describe the SQLite ingestion store and the
// PostgreSQL database built by the load command.
package schema

import (
	"database/sql"
)

// Book is one catalogue entry keyed by its Project Gutenberg number.
type Book struct {
	// ID is the ebook number from the corpus directory name.
	ID int `db:"id" gorm:"primaryKey;autoIncrement:false"`

	// Format is the dcterms:type value, usually "Text" or "Sound".
	Format sql.NullString `db:"format"`

	Title sql.NullString `db:"title"`

	Description sql.NullString `db:"description"`

	// License is an IRI of the license statement.
	License sql.NullString `db:"license"`

	// Downloads is the download count for the last 30 days.
	Downloads sql.NullInt64 `db:"downloads"`
}

// Person is a contributor. Two people are the same only when all
// five descriptive fields match, unknown values included.
type Person struct {
	ID int64 `db:"id" gorm:"primaryKey"`

	// TupleKey is UUID v5 computed from the five descriptive fields.
	// Unique indexes treat NULLs as distinct, so the key carries
	// identity instead of a composite index.
	TupleKey string `db:"tuple_key" gorm:"type:varchar(36);uniqueIndex;not null"`

	Name      sql.NullString `db:"name"`
	Alias     sql.NullString `db:"alias"`
	BirthDate sql.NullString `db:"birth_date"`
	DeathDate sql.NullString `db:"death_date"`
	Webpage   sql.NullString `db:"webpage"`
}

// ContributorRole is a closed vocabulary of contribution roles.
type ContributorRole struct {
	Name string `db:"name" gorm:"primaryKey;type:varchar(50)"`
}

// Contribution is a person acting in a role.
type Contribution struct {
	ID       int64  `db:"id" gorm:"primaryKey"`
	PersonID int64  `db:"person_id" gorm:"not null;uniqueIndex:idx_contributions_person_role"`
	Role     string `db:"role" gorm:"type:varchar(50);not null;uniqueIndex:idx_contributions_person_role"`
}

type Bookshelf struct {
	ID   int64  `db:"id" gorm:"primaryKey"`
	Name string `db:"name" gorm:"not null;uniqueIndex"`
}

type Subject struct {
	ID   int64  `db:"id" gorm:"primaryKey"`
	Name string `db:"name" gorm:"not null;uniqueIndex"`
}

// Language is keyed by its code, for example "en".
type Language struct {
	Name string `db:"name" gorm:"primaryKey;type:varchar(20)"`
}

// Resource is a downloadable file of a book.
type Resource struct {
	ID int64 `db:"id" gorm:"primaryKey"`

	URI string `db:"uri" gorm:"column:uri;not null;uniqueIndex"`

	// Size in bytes.
	Size sql.NullInt64 `db:"size"`

	Modified sql.NullTime `db:"modified"`

	// MediaType, for example "application/epub+zip".
	MediaType sql.NullString `db:"media_type" gorm:"index"`
}

type BookSubject struct {
	BookID    int   `db:"book_id" gorm:"primaryKey;autoIncrement:false"`
	SubjectID int64 `db:"subject_id" gorm:"primaryKey;autoIncrement:false"`
}

type BookBookshelf struct {
	BookID      int   `db:"book_id" gorm:"primaryKey;autoIncrement:false"`
	BookshelfID int64 `db:"bookshelf_id" gorm:"primaryKey;autoIncrement:false"`
}

type BookLanguage struct {
	BookID       int    `db:"book_id" gorm:"primaryKey;autoIncrement:false"`
	LanguageName string `db:"language_name" gorm:"primaryKey;type:varchar(20)"`
}

type BookResource struct {
	BookID     int   `db:"book_id" gorm:"primaryKey;autoIncrement:false"`
	ResourceID int64 `db:"resource_id" gorm:"primaryKey;autoIncrement:false"`
}

type BookContribution struct {
	BookID         int   `db:"book_id" gorm:"primaryKey;autoIncrement:false"`
	ContributionID int64 `db:"contribution_id" gorm:"primaryKey;autoIncrement:false"`
}

func (Book) TableName() string             { return "books" }
func (Person) TableName() string           { return "people" }
func (ContributorRole) TableName() string  { return "contributor_roles" }
func (Contribution) TableName() string     { return "contributions" }
func (Bookshelf) TableName() string        { return "bookshelves" }
func (Subject) TableName() string          { return "subjects" }
func (Language) TableName() string         { return "languages" }
func (Resource) TableName() string         { return "resources" }
func (BookSubject) TableName() string      { return "book_subjects" }
func (BookBookshelf) TableName() string    { return "book_bookshelves" }
func (BookLanguage) TableName() string     { return "book_languages" }
func (BookResource) TableName() string     { return "book_resources" }
func (BookContribution) TableName() string { return "book_contributions" }
