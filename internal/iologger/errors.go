package iologger

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

// CreateLogFileError is returned when the log file cannot be created.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot create log file <em>%s</em>

Use <em>GUTENDB_LOG_DESTINATION=stderr</em> to log to the terminal`
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create log file %s: %w", path, err),
	}
}
