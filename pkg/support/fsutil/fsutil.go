// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package fsutil contains utilities for working with the file system.
//
// All functions take an afero.Fs, so they work on the OS filesystem (afero.NewOsFs) as well
// as on in-memory filesystems used in tests.
package fsutil

import (
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// FileExists returns whether the file or directory exists or an error if something went wrong in the filesystem.
func FileExists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "failed to FileExists(%q)", path)
}

// isHidden follows the shell glob convention: names starting with "." are not matched by "*".
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isDir reports whether the entry of dir is a directory, following symbolic links.
// Broken links are not directories.
func isDir(fs afero.Fs, dir string, entry os.FileInfo) bool {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.IsDir()
	}
	target, err := fs.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && target.IsDir()
}

// Subdirs lists the names of the immediate (non-hidden) subdirectories of dir, sorted by name.
// Symbolic links to directories are included.
//
// If dir doesn't exist the returned error matches os.ErrNotExist.
func Subdirs(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list directory %q", dir)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if isHidden(entry.Name()) || !isDir(fs, dir, entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// FilesWithSuffix lists the names of the (non-hidden) files in dir whose names end with suffix, sorted by name.
// Symbolic links to files are included.
func FilesWithSuffix(fs afero.Fs, dir, suffix string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list directory %q", dir)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if isHidden(name) || !strings.HasSuffix(name, suffix) || isDir(fs, dir, entry) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// MustReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It may panic with an error if `dir` has an unknown user (e.g: `~unknown/...`)
func MustReplaceTildeInDir(dir string) string {
	dir, err := ReplaceTildeInDir(dir)
	if err != nil {
		panic(err)
	}
	return dir
}

// ReplaceTildeInDir by the user's home directory. Returns dir if it doesn't start with "~".
//
// It returns an error if `dir` has an unknown user or some other filesystem error (e.g: `~unknown/...`)
func ReplaceTildeInDir(dir string) (string, error) {
	if len(dir) == 0 || dir[0] != '~' {
		return dir, nil
	}
	var userName string
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		sepIdx := strings.IndexRune(dir, '/')
		if sepIdx == -1 {
			userName = dir[1:]
		} else {
			userName = dir[1:sepIdx]
		}
	}
	var usr *user.User
	var err error
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	return path.Join(usr.HomeDir, dir[1+len(userName):]), nil
}
