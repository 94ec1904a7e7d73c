package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/gutendb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ClearDir removes everything from dir and creates it again.
func ClearDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return RemoveDirError(dir, err)
	}
	return touchDir(dir)
}

// WriteAtomic writes data to a temporary file next to path and renames
// it into place. Readers see either no file or the complete one.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := touchDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return WriteFileError(path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return WriteFileError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteFileError(path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}
