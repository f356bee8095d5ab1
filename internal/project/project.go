package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotInitialized means the working directory has no marker directory.
	ErrNotInitialized = errors.New("deposito directory doesn't exist, you can create one using `deposito init`")
	// ErrAlreadyInitialized means Init found an existing marker directory.
	ErrAlreadyInitialized = errors.New("deposito directory already exists")
)

// Exists reports whether dir contains a directory called name.
// Failing to read dir is returned as an error; a missing marker is not.
func Exists(dir, name string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("unable to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.Name() != name {
			continue
		}
		if entry.IsDir() {
			return true, nil
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return false, fmt.Errorf("unable to read filetype of %s: %w", name, err)
		}
		return info.IsDir(), nil
	}
	return false, nil
}

// Require returns ErrNotInitialized unless the marker directory exists.
func Require(dir, name string) error {
	ok, err := Exists(dir, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotInitialized
	}
	return nil
}

// Init creates the marker directory and returns its path.
func Init(dir, name string) (string, error) {
	ok, err := Exists(dir, name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if ok {
		return path, ErrAlreadyInitialized
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", fmt.Errorf("unable to create %s: %w", path, err)
	}
	return path, nil
}
