// Package content locates and parses metadata descriptors for posts and
// projects, producing validated Metadata records for the rest of the build.
package content

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Kind distinguishes the two kinds of authored content the site publishes.
type Kind string

const (
	KindPost    Kind = "post"
	KindProject Kind = "project"
)

// DescriptorName returns the metadata file name expected in each content
// directory of this kind.
func (k Kind) DescriptorName() string {
	if k == KindProject {
		return "proj.json"
	}
	return "post.json"
}

// BuildDir returns the subdirectory of the output root holding built pages
// of this kind.
func (k Kind) BuildDir() string {
	if k == KindProject {
		return "projects"
	}
	return "posts"
}

// Date is a calendar date with no time-of-day component.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Validate reports whether the date is a real calendar date.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("month %d out of range", d.Month)
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || int(t.Month()) != d.Month || t.Year() != d.Year {
		return fmt.Errorf("invalid calendar date %d-%d-%d", d.Year, d.Month, d.Day)
	}
	return nil
}

// Time returns the date at midnight UTC, for ordering.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// Format renders the date as "<Month name> <day>, <year>" with no zero
// padding on the day, e.g. "March 3, 2024".
func (d Date) Format() string {
	return fmt.Sprintf("%s %d, %d", time.Month(d.Month).String(), d.Day, d.Year)
}

// Metadata describes one content item as declared by its descriptor file.
// Post-only fields (Authors, Projects, Tags) are empty for projects.
type Metadata struct {
	Kind        Kind
	SourcePath  string // Relative path to the raw body file within Directory
	Directory   string // The item's own subdirectory name; its identity slug
	Format      string // Source markup format tag, passed opaquely to the converter
	StaticDir   string // Optional subdirectory of supplementary files; empty means none
	Title       string // Display title (post title or project name)
	Authors     []string
	Date        Date
	Description string
	Thumbnail   string // Resolved relative to the final output location
	Projects    []string
	Tags        []string
}

// Key returns the stable identity of the item: kind plus directory, computed
// at discovery time. Used for deduplication instead of the title.
func (m Metadata) Key() string {
	return string(m.Kind) + "/" + m.Directory
}

// OutputBase returns the output file name for the item's page: the source
// base name with its extension replaced by .html.
func (m Metadata) OutputBase() string {
	base := filepath.Base(m.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}

// validate checks the invariants shared by both kinds plus the post-only
// rules. Field-shape problems are reported with the offending field named.
func (m Metadata) validate() error {
	required := []struct {
		field, value string
	}{
		{"file_path", m.SourcePath},
		{"directory", m.Directory},
		{"format", m.Format},
		{"title", m.Title},
		{"description", m.Description},
		{"thumbnail", m.Thumbnail},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: field %q is missing or empty", ErrMalformedMetadata, r.field)
		}
	}
	if err := m.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if m.Kind == KindPost && len(m.Authors) == 0 {
		return fmt.Errorf("%w: field \"authors\" must not be empty", ErrNoAuthors)
	}
	return nil
}
