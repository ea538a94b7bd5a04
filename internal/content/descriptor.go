package content

import (
	"encoding/json"
	"fmt"
)

// Descriptor shapes mirror the on-disk JSON metadata files (post.json and
// proj.json). Required fields are pointers so that absence can be told apart
// from the zero value.

type postDescriptor struct {
	FilePath    *string  `json:"file_path"`
	PostDir     *string  `json:"post_dir"`
	Format      *string  `json:"format"`
	StaticDir   *string  `json:"static_dir"`
	Title       *string  `json:"title"`
	Authors     []string `json:"authors"`
	Day         *int     `json:"day"`
	Month       *int     `json:"month"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Projects    []string `json:"projects"`
	Tags        []string `json:"tags"`
}

type projectDescriptor struct {
	FilePath    *string `json:"file_path"`
	ProjDir     *string `json:"proj_dir"`
	Format      *string `json:"format"`
	StaticDir   *string `json:"static_dir"`
	Thumbnail   *string `json:"thumbnail"`
	Project     *string `json:"project"`
	Day         *int    `json:"day"`
	Month       *int    `json:"month"`
	Year        *int    `json:"year"`
	Description *string `json:"description"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ParseDescriptor parses a descriptor of the given kind into a validated
// Metadata record. Shape problems (missing required fields, non-integer date
// components) are reported as ErrMalformedMetadata with the field named.
func ParseDescriptor(kind Kind, data []byte) (Metadata, error) {
	switch kind {
	case KindPost:
		return parsePost(data)
	case KindProject:
		return parseProject(data)
	default:
		return Metadata{}, fmt.Errorf("%w: unknown content kind %q", ErrMalformedMetadata, kind)
	}
}

func parsePost(data []byte) (Metadata, error) {
	var d postDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if err := requireDate(d.Day, d.Month, d.Year); err != nil {
		return Metadata{}, err
	}
	m := Metadata{
		Kind:        KindPost,
		SourcePath:  deref(d.FilePath),
		Directory:   deref(d.PostDir),
		Format:      deref(d.Format),
		StaticDir:   deref(d.StaticDir),
		Title:       deref(d.Title),
		Authors:     d.Authors,
		Date:        Date{Day: deref(d.Day), Month: deref(d.Month), Year: deref(d.Year)},
		Description: deref(d.Description),
		Thumbnail:   deref(d.Thumbnail),
		Projects:    d.Projects,
		Tags:        d.Tags,
	}
	if d.PostDir == nil {
		return Metadata{}, fmt.Errorf("%w: field %q is missing or empty", ErrMalformedMetadata, "post_dir")
	}
	if err := m.validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func parseProject(data []byte) (Metadata, error) {
	var d projectDescriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if err := requireDate(d.Day, d.Month, d.Year); err != nil {
		return Metadata{}, err
	}
	m := Metadata{
		Kind:        KindProject,
		SourcePath:  deref(d.FilePath),
		Directory:   deref(d.ProjDir),
		Format:      deref(d.Format),
		StaticDir:   deref(d.StaticDir),
		Title:       deref(d.Project),
		Date:        Date{Day: deref(d.Day), Month: deref(d.Month), Year: deref(d.Year)},
		Description: deref(d.Description),
		Thumbnail:   deref(d.Thumbnail),
	}
	if d.ProjDir == nil {
		return Metadata{}, fmt.Errorf("%w: field %q is missing or empty", ErrMalformedMetadata, "proj_dir")
	}
	if d.Project == nil {
		return Metadata{}, fmt.Errorf("%w: field %q is missing or empty", ErrMalformedMetadata, "project")
	}
	if err := m.validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

func requireDate(day, month, year *int) error {
	for _, f := range []struct {
		name string
		val  *int
	}{{"day", day}, {"month", month}, {"year", year}} {
		if f.val == nil {
			return fmt.Errorf("%w: field %q is missing or empty", ErrMalformedMetadata, f.name)
		}
	}
	return nil
}

// EncodeDescriptor serializes a Metadata record back into its on-disk
// descriptor shape. Round-trips with ParseDescriptor.
func EncodeDescriptor(m Metadata) ([]byte, error) {
	var v any
	switch m.Kind {
	case KindPost:
		v = postDescriptor{
			FilePath:    &m.SourcePath,
			PostDir:     &m.Directory,
			Format:      &m.Format,
			StaticDir:   optional(m.StaticDir),
			Title:       &m.Title,
			Authors:     m.Authors,
			Day:         &m.Date.Day,
			Month:       &m.Date.Month,
			Year:        &m.Date.Year,
			Description: &m.Description,
			Thumbnail:   &m.Thumbnail,
			Projects:    m.Projects,
			Tags:        m.Tags,
		}
	case KindProject:
		v = projectDescriptor{
			FilePath:    &m.SourcePath,
			ProjDir:     &m.Directory,
			Format:      &m.Format,
			StaticDir:   optional(m.StaticDir),
			Thumbnail:   &m.Thumbnail,
			Project:     &m.Title,
			Day:         &m.Date.Day,
			Month:       &m.Date.Month,
			Year:        &m.Date.Year,
			Description: &m.Description,
		}
	default:
		return nil, fmt.Errorf("%w: unknown content kind %q", ErrMalformedMetadata, m.Kind)
	}
	return json.MarshalIndent(v, "", "  ")
}

// optional maps the empty string to a JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
