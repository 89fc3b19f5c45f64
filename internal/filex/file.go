// Package filex has the few filesystem helpers the client needs to save
// exported files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxStemRunes caps the part of a file name before its extension.
const maxStemRunes = 100

var unsafeNameChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-",
	"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
)

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// SanitizeName replaces path separators and other characters that are not
// allowed in file names. A long name is cut before its extension, on a rune
// boundary, so the extension survives.
func SanitizeName(name string) string {
	name = unsafeNameChars.Replace(strings.TrimSpace(name))
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if utf8.RuneCountInString(stem) > maxStemRunes {
		stem = string([]rune(stem)[:maxStemRunes])
	}
	return stem + ext
}

// WriteFile stores data as dir/name, creating dir first, and returns the full
// path of the written file. The data goes to a temporary file in dir that is
// renamed over the target, so a failed write never leaves a partial file.
func WriteFile(dir, name string, data []byte) (string, error) {
	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(abs, SanitizeName(name))

	tmp, err := os.CreateTemp(abs, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w", abs, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o640); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename to %s: %w", path, err)
	}
	return path, nil
}
