package models

import (
	"fmt"
	"strings"
)

// FilterKind selects the dimension a filter query is matched against.
type FilterKind string

const (
	FilterAll   FilterKind = "all"
	FilterTag   FilterKind = "tag"
	FilterTitle FilterKind = "title"
	// FilterLang applies to snippets only.
	FilterLang FilterKind = "lang"
)

func ParseFilterKind(s string) (FilterKind, error) {
	switch k := FilterKind(strings.ToLower(strings.TrimSpace(s))); k {
	case FilterAll, FilterTag, FilterTitle, FilterLang:
		return k, nil
	case "":
		return FilterAll, nil
	default:
		return "", fmt.Errorf("unknown filter kind %q", s)
	}
}

// ExportFormat is the file format of a per-resource export.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatJSON     ExportFormat = "json"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Extension is the file extension used for the saved file.
func (f ExportFormat) Extension() string {
	if f == FormatJSON {
		return "json"
	}
	return "md"
}

// PathSuffix is the short form used in export URLs.
func (f ExportFormat) PathSuffix() string {
	if f == FormatJSON {
		return "json"
	}
	return "md"
}

// ResourceKind distinguishes entries from snippets in shared code paths.
type ResourceKind string

const (
	KindEntry   ResourceKind = "entry"
	KindSnippet ResourceKind = "snippet"
)

// Label is the capitalised name used in file names and messages.
func (k ResourceKind) Label() string {
	if k == KindSnippet {
		return "Snippet"
	}
	return "Entry"
}
