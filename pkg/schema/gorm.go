package schema

import (
	"github.com/gnames/gutendb/pkg/roles"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is a model that knows its table name.
type Table interface {
	TableName() string
}

// AllModels returns all schema models for GORM AutoMigrate.
// Entity tables come before the join tables that refer to them.
func AllModels() []Table {
	return []Table{
		&Book{},
		&Person{},
		&ContributorRole{},
		&Contribution{},
		&Bookshelf{},
		&Subject{},
		&Language{},
		&Resource{},
		&BookSubject{},
		&BookBookshelf{},
		&BookLanguage{},
		&BookResource{},
		&BookContribution{},
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	models := AllModels()
	res := make([]any, len(models))
	for i := range models {
		res[i] = models[i]
	}
	return db.AutoMigrate(res...)
}

// SeedRoles inserts the full contributor role vocabulary.
// Existing roles are left untouched.
func SeedRoles(db *gorm.DB) error {
	names := roles.All()
	rows := make([]ContributorRole, len(names))
	for i := range names {
		rows[i] = ContributorRole{Name: names[i]}
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
