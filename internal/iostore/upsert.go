package iostore

import (
	"database/sql"
	"errors"
	"log/slog"
	"slices"

	"github.com/araddon/dateparse"
	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/gnames/gutendb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func upsertBook(tx *gorm.DB, rec catalog.Record) error {
	book := schema.Book{
		ID:          rec.ID,
		Format:      nullString(rec.Format),
		Title:       nullString(rec.Title),
		Description: nullString(rec.Description),
		License:     nullString(rec.License),
	}
	if rec.Downloads != nil {
		book.Downloads = sql.NullInt64{Int64: int64(*rec.Downloads), Valid: true}
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&book).Error
}

func applyResources(tx *gorm.DB, rec catalog.Record) error {
	for _, v := range rec.Resources {
		row := schema.Resource{
			URI:       v.URI,
			MediaType: nullString(v.MediaType),
			Modified:  modified(rec.ID, v),
		}
		if v.Size != nil {
			row.Size = sql.NullInt64{Int64: *v.Size, Valid: true}
		}

		res, err := ensure(tx, row, map[string]any{"uri": v.URI})
		if err != nil {
			return err
		}
		err = link(tx, &schema.BookResource{BookID: rec.ID, ResourceID: res.ID})
		if err != nil {
			return err
		}
	}
	return nil
}

func applyContributions(tx *gorm.DB, rec catalog.Record) error {
	roleNames := make([]string, 0, len(rec.Agents))
	for k := range rec.Agents {
		roleNames = append(roleNames, k)
	}
	slices.Sort(roleNames)

	for _, role := range roleNames {
		for _, p := range rec.Agents[role] {
			key := p.TupleKey().String()
			person, err := ensure(tx, schema.Person{
				TupleKey:  key,
				Name:      nullString(p.Name),
				Alias:     nullString(p.Alias),
				BirthDate: nullString(p.BirthDate),
				DeathDate: nullString(p.DeathDate),
				Webpage:   nullString(p.Webpage),
			}, map[string]any{"tuple_key": key})
			if err != nil {
				return err
			}

			contrib, err := ensure(tx,
				schema.Contribution{PersonID: person.ID, Role: role},
				map[string]any{"person_id": person.ID, "role": role},
			)
			if err != nil {
				return err
			}

			err = link(tx, &schema.BookContribution{
				BookID:         rec.ID,
				ContributionID: contrib.ID,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func applyBookshelves(tx *gorm.DB, rec catalog.Record) error {
	for _, name := range rec.Bookshelves {
		shelf, err := ensure(tx, schema.Bookshelf{Name: name},
			map[string]any{"name": name})
		if err != nil {
			return err
		}
		err = link(tx, &schema.BookBookshelf{BookID: rec.ID, BookshelfID: shelf.ID})
		if err != nil {
			return err
		}
	}
	return nil
}

func applySubjects(tx *gorm.DB, rec catalog.Record) error {
	for _, name := range rec.Subjects {
		subj, err := ensure(tx, schema.Subject{Name: name},
			map[string]any{"name": name})
		if err != nil {
			return err
		}
		err = link(tx, &schema.BookSubject{BookID: rec.ID, SubjectID: subj.ID})
		if err != nil {
			return err
		}
	}
	return nil
}

func applyLanguages(tx *gorm.DB, rec catalog.Record) error {
	for _, name := range rec.Languages {
		lang, err := ensure(tx, schema.Language{Name: name},
			map[string]any{"name": name})
		if err != nil {
			return err
		}
		err = link(tx, &schema.BookLanguage{BookID: rec.ID, LanguageName: lang.Name})
		if err != nil {
			return err
		}
	}
	return nil
}

// ensure inserts row unless a row with the same natural key exists,
// then returns the stored row.
func ensure[T schema.Table](
	tx *gorm.DB,
	row T,
	key map[string]any,
) (T, error) {
	var res T
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	if err != nil {
		return res, err
	}

	err = tx.Where(key).Take(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return res, ConstraintError(row.TableName(), key)
	}
	return res, err
}

// link inserts a join row unless it exists.
func link(tx *gorm.DB, row schema.Table) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// modified parses the modification time of a resource. Values that
// cannot be parsed are stored as unknown.
func modified(id int, r catalog.Resource) sql.NullTime {
	if r.Modified == nil {
		return sql.NullTime{}
	}
	t, err := dateparse.ParseAny(*r.Modified)
	if err != nil {
		slog.Warn("Cannot parse resource modification time",
			"book", id, "uri", r.URI, "value", *r.Modified)
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
