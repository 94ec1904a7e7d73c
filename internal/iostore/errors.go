package iostore

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// OpenError is returned when the store file cannot be opened.
func OpenError(path string, err error) error {
	msg := `Cannot open store <em>%s</em>

<em>Possible causes:</em>
  - The directory does not exist or is not writable
  - The file is not a SQLite database`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open store %s: %w", path, err),
	}
}

// MigrateError is returned when tables cannot be created.
func MigrateError(path string, err error) error {
	msg := "Cannot create catalogue tables in <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot migrate store %s: %w", path, err),
	}
}

// SeedError is returned when contributor roles cannot be inserted.
func SeedError(err error) error {
	msg := "Cannot seed contributor roles"

	return &gn.Error{
		Code: errcode.SchemaSeedError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot seed roles: %w", err),
	}
}

// ClearError is returned when the store cannot be wiped.
func ClearError(path string, err error) error {
	msg := "Cannot delete data from <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StoreClearError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot clear store %s: %w", path, err),
	}
}

// ConstraintError is returned when a row with a natural key cannot be
// found right after it was inserted or kept.
func ConstraintError(table string, key map[string]any) error {
	msg := "Cannot find <em>%s</em> row with <em>%s</em>"
	vars := []any{table, formatKey(key)}

	return &gn.Error{
		Code: errcode.StoreConstraintError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no %s row with %s", table, formatKey(key)),
	}
}

// ApplyError wraps any other failure of a record transaction.
func ApplyError(id int, err error) error {
	msg := "Cannot save book <em>%d</em>"
	vars := []any{id}

	return &gn.Error{
		Code: errcode.StoreApplyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot apply record %d: %w", id, err),
	}
}

func formatKey(key map[string]any) string {
	res := make([]string, 0, len(key))
	for _, k := range slices.Sorted(maps.Keys(key)) {
		res = append(res, fmt.Sprintf("%s=%v", k, key[k]))
	}
	return strings.Join(res, ", ")
}
