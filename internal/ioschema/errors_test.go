package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"gorm", GORMConnectionError(cause),
			errcode.SchemaGORMConnectionError, nil},
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError, nil},
		{"seed", SeedError(cause), errcode.SchemaSeedError, nil},
		{"collation", CollationError("subjects", "name", cause),
			errcode.SchemaCollationError, []any{"subjects", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Equal(t, tt.vars, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}
}

func TestNotConnectedError(t *testing.T) {
	gnErr, ok := NotConnectedError().(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestCollationSQL(t *testing.T) {
	assert.Equal(t,
		`ALTER TABLE "books" ALTER COLUMN "title" TYPE TEXT COLLATE "C"`,
		collationSQL("books", "title"))
	assert.Len(t, sortedColumns, 4)
}
