package catalog_test

import (
	"testing"

	"github.com/gnames/gutendb/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func str(s string) *string {
	return &s
}

func TestTupleKey(t *testing.T) {
	shelley := catalog.Person{
		Name:      str("Shelley, Mary Wollstonecraft"),
		BirthDate: str("1797"),
		DeathDate: str("1851"),
	}

	tests := []struct {
		msg   string
		other catalog.Person
		equal bool
	}{
		{"same tuple", catalog.Person{
			Name:      str("Shelley, Mary Wollstonecraft"),
			BirthDate: str("1797"),
			DeathDate: str("1851"),
		}, true},
		{"empty alias is not unknown alias", catalog.Person{
			Name:      str("Shelley, Mary Wollstonecraft"),
			Alias:     str(""),
			BirthDate: str("1797"),
			DeathDate: str("1851"),
		}, false},
		{"different death date", catalog.Person{
			Name:      str("Shelley, Mary Wollstonecraft"),
			BirthDate: str("1797"),
			DeathDate: str("1852"),
		}, false},
		{"value moved to another field", catalog.Person{
			Name:      str("Shelley, Mary Wollstonecraft"),
			DeathDate: str("1797"),
			Webpage:   str("1851"),
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if tt.equal {
				assert.Equal(t, shelley.TupleKey(), tt.other.TupleKey())
				return
			}
			assert.NotEqual(t, shelley.TupleKey(), tt.other.TupleKey())
		})
	}
}

func TestTupleKeyUnknown(t *testing.T) {
	var empty catalog.Person
	assert.Equal(t, empty.TupleKey(), catalog.Person{}.TupleKey())
	assert.NotEqual(t, empty.TupleKey(), catalog.Person{Name: str("")}.TupleKey())
}

func TestReportFailures(t *testing.T) {
	r := catalog.Report{Processed: 3, Succeeded: 1}
	assert.False(t, r.HasFailures())

	r.Failures = []catalog.Failure{
		{Item: "abc", Kind: catalog.IdentifierFailure, Reason: "not a number"},
		{Item: "12", ID: 12, Kind: catalog.ParseFailure, Reason: "bad xml"},
	}
	assert.True(t, r.HasFailures())
	assert.Len(t, r.FailuresOf(catalog.ParseFailure), 1)
	assert.Empty(t, r.FailuresOf(catalog.ConstraintFailure))
}
