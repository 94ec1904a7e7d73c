package reader

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// BookNotFoundError is returned when a graph has no statements about
// the book it was loaded for.
func BookNotFoundError(id int) error {
	msg := "Metadata graph does not describe book <em>%d</em>"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.IngestParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("node %s not found in graph", BookIRI(id)),
	}
}
