package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gutendb/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create <em>%s</em>", "create directory", dir, err)
}

func RemoveDirError(dir string, err error) error {
	return fsError(errcode.RemoveDirError,
		"Cannot remove <em>%s</em>", "remove directory", dir, err)
}

func CopyFileError(file string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot copy config file to <em>%s</em>", "copy file", file, err)
}

func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}

func WriteFileError(path string, err error) error {
	return fsError(errcode.WriteFileError,
		"Cannot write <em>%s</em>", "write", path, err)
}

// fsError records the function that called the public constructor.
func fsError(
	code gn.ErrorCode,
	msg, action, path string,
	err error,
) error {
	fnName := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		fnName = runtime.FuncForPC(pc).Name()
	}
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot %s %s: %w",
			fnName, action, path, err),
	}
}
