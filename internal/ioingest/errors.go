package ioingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// CorpusError is returned when the corpus root cannot be listed.
func CorpusError(root string, err error) error {
	msg := `Cannot read corpus directory <em>%s</em>

<em>How to fix:</em>
  1. Check the path given with <em>--corpus-dir</em>
  2. Check ingest.corpus_dir in the config file`
	vars := []any{root}

	return &gn.Error{
		Code: errcode.IngestCorpusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read corpus %s: %w", root, err),
	}
}

// IdentifierError is returned for a corpus directory whose name is not
// a book identifier.
func IdentifierError(name string, err error) error {
	msg := "Directory name <em>%s</em> is not a book identifier"
	vars := []any{name}

	return &gn.Error{
		Code: errcode.IngestIdentifierError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid identifier %q: %w", name, err),
	}
}

// GraphFileError is returned when a corpus directory has no single
// metadata file.
func GraphFileError(dir string, found int) error {
	msg := "Cannot find metadata file in <em>%s</em>"
	vars := []any{dir}

	return &gn.Error{
		Code: errcode.IngestParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("expected one RDF file in %s, found %d", dir, found),
	}
}

// CancelledError is returned when ingestion is interrupted.
func CancelledError(err error) error {
	msg := "Ingestion was cancelled, processed items are kept"

	return &gn.Error{
		Code: errcode.IngestCancelledError,
		Msg:  msg,
		Err:  fmt.Errorf("ingestion cancelled: %w", err),
	}
}

// ItemsFailedError is returned by the CLI when some items were skipped.
func ItemsFailedError(failed, processed int) error {
	msg := "<warn>%d of %d items were not ingested</warn>"
	vars := []any{failed, processed}

	return &gn.Error{
		Code: errcode.IngestItemsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d of %d items failed", failed, processed),
	}
}

// ReportError is returned when the batch report cannot be saved.
func ReportError(path string, err error) error {
	msg := "Cannot write report to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.IngestReportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write report %s: %w", path, err),
	}
}
