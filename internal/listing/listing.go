// Package listing sorts and groups built content items and renders summary
// blocks plus aggregate listing pages (blog index, tag pages, projects
// index).
package listing

import (
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/ALescoulie/sitegen/internal/compose"
	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/logfields"
	"github.com/ALescoulie/sitegen/internal/site"
	"github.com/ALescoulie/sitegen/internal/templates"
)

// Builder renders listing blocks and pages through the template engine.
type Builder struct {
	engine   templates.Engine
	composer *compose.Composer
}

// NewBuilder creates a listing Builder sharing the composer's chrome.
func NewBuilder(engine templates.Engine, composer *compose.Composer) *Builder {
	return &Builder{engine: engine, composer: composer}
}

// SortByDate returns a stable date-sorted copy of pages. Ascending order is
// oldest first.
func SortByDate(pages []site.BuiltPage, ascending bool) []site.BuiltPage {
	out := make([]site.BuiltPage, len(pages))
	copy(out, pages)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Meta.Date.Before(out[j].Meta.Date)
		}
		return out[j].Meta.Date.Before(out[i].Meta.Date)
	})
	return out
}

// PostBlocks renders a summary block per post, sorted by date. Links within
// each block are resolved relative to the given link depth.
func (b *Builder) PostBlocks(posts []site.BuiltPage, depth int, ascending bool) ([]string, error) {
	block, err := b.engine.Load("post-block")
	if err != nil {
		return nil, err
	}

	prefix := compose.DepthPrefix(depth)
	sorted := SortByDate(posts, ascending)
	blocks := make([]string, 0, len(sorted))
	for _, p := range sorted {
		author, err := content.FormatAuthors(p.Meta.Authors)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", p.Meta.Kind, p.Meta.Directory, err)
		}
		tags, err := b.renderTags(p.Meta.Tags, depth)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", p.Meta.Kind, p.Meta.Directory, err)
		}

		itemDir := path.Join(p.Meta.Kind.BuildDir(), p.Meta.Directory)
		rendered, err := block.Render(map[string]string{
			"title":    p.Meta.Title,
			"img_link": path.Join(prefix, itemDir, p.Meta.Thumbnail),
			"link":     path.Join(prefix, itemDir, p.Meta.OutputBase()),
			"date":     p.Meta.Date.Format(),
			"author":   author,
			"summary":  p.Meta.Description,
			"tags":     tags,
		})
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", p.Meta.Kind, p.Meta.Directory, err)
		}
		blocks = append(blocks, rendered)
	}
	return blocks, nil
}

// renderTags renders the comma-joined tag link list for one post, each link
// resolved relative to the current link depth.
func (b *Builder) renderTags(tags []string, depth int) (string, error) {
	if len(tags) == 0 {
		return "", nil
	}
	tpl, err := b.engine.Load("tag")
	if err != nil {
		return "", err
	}

	prefix := compose.DepthPrefix(depth)
	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		link, err := tpl.Render(map[string]string{
			"link": path.Join(prefix, tag+".html"),
			"tag":  tag,
		})
		if err != nil {
			return "", err
		}
		rendered = append(rendered, link)
	}
	return strings.Join(rendered, ", "), nil
}

// BlogPage composes a blog-style listing page of the given posts, most
// recent first, with links resolved from the site root.
func (b *Builder) BlogPage(posts []site.BuiltPage, title string) (string, error) {
	blocks, err := b.PostBlocks(posts, 0, false)
	if err != nil {
		return "", err
	}

	header, navbar, err := b.composer.Chrome(title, 0)
	if err != nil {
		return "", err
	}

	tpl, err := b.engine.Load("blog-listing")
	if err != nil {
		return "", err
	}
	return tpl.Render(map[string]string{
		"header": header,
		"navbar": navbar,
		"title":  title,
		"posts":  strings.Join(blocks, "\n"),
	})
}

// TagPages partitions posts by tag membership and composes one listing page
// per distinct tag, titled "<tag> Blog Posts". A post with N tags appears on
// exactly those N pages.
func (b *Builder) TagPages(posts []site.BuiltPage) (map[string]string, error) {
	byTag := make(map[string][]site.BuiltPage)
	for _, p := range posts {
		for _, tag := range p.Meta.Tags {
			byTag[tag] = append(byTag[tag], p)
		}
	}

	pages := make(map[string]string, len(byTag))
	for tag, tagged := range byTag {
		page, err := b.BlogPage(tagged, tag+" Blog Posts")
		if err != nil {
			return nil, fmt.Errorf("tag %q: %w", tag, err)
		}
		pages[tag] = page
		slog.Debug("Composed tag page", logfields.Tag(tag), logfields.Count(len(tagged)))
	}
	return pages, nil
}

// ProjectBlocks renders a summary block per project in chronological order.
func (b *Builder) ProjectBlocks(projects []site.BuiltPage) ([]string, error) {
	block, err := b.engine.Load("project-block")
	if err != nil {
		return nil, err
	}

	sorted := SortByDate(projects, true)
	blocks := make([]string, 0, len(sorted))
	for _, p := range sorted {
		itemDir := path.Join(p.Meta.Kind.BuildDir(), p.Meta.Directory)
		rendered, err := block.Render(map[string]string{
			"title":    p.Meta.Title,
			"img_link": path.Join(itemDir, p.Meta.Thumbnail),
			"link":     path.Join(itemDir, p.Meta.OutputBase()),
			"date":     p.Meta.Date.Format(),
			"summary":  p.Meta.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", p.Meta.Kind, p.Meta.Directory, err)
		}
		blocks = append(blocks, rendered)
	}
	return blocks, nil
}

// ProjectsPage composes the top-level projects index.
func (b *Builder) ProjectsPage(projects []site.BuiltPage) (string, error) {
	blocks, err := b.ProjectBlocks(projects)
	if err != nil {
		return "", err
	}

	header, navbar, err := b.composer.Chrome("Projects - "+b.composer.SiteName(), 0)
	if err != nil {
		return "", err
	}

	tpl, err := b.engine.Load("project-listing")
	if err != nil {
		return "", err
	}
	return tpl.Render(map[string]string{
		"header":   header,
		"navbar":   navbar,
		"projects": strings.Join(blocks, "\n"),
	})
}
