package catalog

import (
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// nullField marks an absent value in a person's tuple encoding.
// Present values get a prefix, so nil and "" never collide.
const nullField = "\x00"

// TupleKey returns a deterministic identifier of a person's five-field
// tuple. Persons with equal keys are equal in every field, nulls included.
func (p Person) TupleKey() uuid.UUID {
	fields := []*string{p.Name, p.Alias, p.BirthDate, p.DeathDate, p.Webpage}
	parts := make([]string, len(fields))
	for i, v := range fields {
		if v == nil {
			parts[i] = nullField
			continue
		}
		parts[i] = "=" + *v
	}
	return gnuuid.New(strings.Join(parts, "\x1f"))
}
