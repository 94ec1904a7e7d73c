package iordf

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// OpenError is returned when a metadata file cannot be opened.
func OpenError(path string, err error) error {
	msg := "Cannot open metadata file <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}

// DecodeError is returned when a metadata file is not valid RDF/XML.
func DecodeError(path string, err error) error {
	msg := `Cannot decode RDF/XML from <em>%s</em>

<em>Possible causes:</em>
  - The file is truncated
  - The file is not RDF/XML`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode %s: %w", path, err),
	}
}
