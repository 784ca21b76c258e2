// Package fsutil provides the read-only file system primitives used by skillcheck.
// It handles lenient text decoding, existence checks and error categorization.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// ReadFile reads a regular file and returns its raw content.
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, categorize(path, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, categorize(path, err)
	}

	return content, nil
}

// ReadText reads a file as text.
// Invalid UTF-8 sequences are replaced with U+FFFD and line endings are
// normalized to "\n", so callers never fail on encoding problems.
func ReadText(ctx context.Context, path string) (string, error) {
	content, err := ReadFile(ctx, path)
	if err != nil {
		return "", err
	}
	return DecodeText(content), nil
}

// DecodeText converts raw bytes into normalized text.
func DecodeText(content []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(content)
	if err != nil {
		// The UTF-8 decoder substitutes rather than failing; keep the raw bytes if it ever does.
		decoded = content
	}
	text := string(decoded)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// Exists reports whether path exists (file, directory or other).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsRegular reports whether path exists and is a regular file.
func IsRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func categorize(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
