/*
Package util includes path and run directory helpers shared by the commands.
*/
package util

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandUser expands '~' to user's home directory, if found, otherwise returns original path
func ExpandUser(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}
	if path == "~" {
		return usr.HomeDir
	} else if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(usr.HomeDir, path[2:])
	} else {
		return path
	}
}

// AbsPath returns absolute path after expanding '~' to user's home dir
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandUser(path))
}

// FileExists checks if a file exists at the given path.
// It returns a boolean indicating whether the file exists, and an error if the
// path refers to a non-regular file, e.g., a directory.
func FileExists(path string) (exists bool, err error) {
	var fileInfo fs.FileInfo
	fileInfo, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			exists = false
			err = nil
			return
		}
		return
	}
	if !fileInfo.Mode().IsRegular() {
		err = fmt.Errorf("%s not a file", path)
		return
	}
	exists = true
	return
}

// DirectoryExists checks if the specified directory exists.
// It returns a boolean indicating whether the directory exists and an error if the
// path refers to anything other than a directory, e.g., a regular file.
func DirectoryExists(path string) (exists bool, err error) {
	var fileInfo fs.FileInfo
	fileInfo, err = os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			exists = false
			err = nil
			return
		}
		return
	}
	if !fileInfo.Mode().IsDir() {
		err = fmt.Errorf("%s not a directory", path)
		return
	}
	exists = true
	return
}

// CreateDirectoryIfNotExists creates a directory at the specified path if it does not already exist.
// If the directory already exists, it does nothing and returns nil.
func CreateDirectoryIfNotExists(dir string, perm os.FileMode) error {
	exists, err := DirectoryExists(dir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create directory: '%s', error: '%s'", dir, err.Error())
	}
	return nil
}

// SanitizeRunName turns a user supplied run identifier into a directory name.
// Leading and trailing dots are stripped, then leading and trailing slashes,
// then prefix if the result starts with it. For example, with prefix "data/",
// "./data/run1/" becomes "run1".
func SanitizeRunName(name string, prefix string) (string, error) {
	sanitized := strings.Trim(name, ".")
	sanitized = strings.Trim(sanitized, "/")
	if prefix != "" {
		sanitized = strings.TrimPrefix(sanitized, prefix)
	}
	if sanitized == "" {
		return "", fmt.Errorf("run name %q is empty after sanitizing", name)
	}
	cleaned := filepath.Clean(sanitized)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("run name %q resolves outside the output directory", name)
	}
	return sanitized, nil
}

// PrepareRunDir creates <root>/<name> if needed and returns its path. An
// existing directory is reused.
func PrepareRunDir(root string, name string) (string, error) {
	dir := filepath.Join(root, name)
	if err := CreateDirectoryIfNotExists(dir, 0755); err != nil { // #nosec G301
		return "", err
	}
	return dir, nil
}

// FlamegraphPath is where the profiler writes the run's flamegraph.
func FlamegraphPath(runDir string, runName string) string {
	return filepath.Join(runDir, "flamegraph-"+filepath.Base(runName)+".svg")
}
