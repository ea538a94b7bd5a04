package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ALescoulie/sitegen/internal/config"
	"github.com/ALescoulie/sitegen/internal/content"
)

// fixtureSite lays out a complete source tree: templates, top-level pages,
// two posts (one tagged and linked to a project), and one project.
func fixtureSite(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Config{
		SiteName:     "Test Site",
		SourceDir:    filepath.Join(root, "site_src"),
		StaticDir:    filepath.Join(root, "site_src", "static"),
		PostsDir:     filepath.Join(root, "blog_posts"),
		ProjectsDir:  filepath.Join(root, "projects"),
		TemplatesDir: filepath.Join(root, "templates"),
		OutputDir:    filepath.Join(root, "site_out"),
	}

	mkdir := func(path string) {
		require.NoError(t, os.MkdirAll(path, 0o755))
	}
	write := func(path, data string) {
		mkdir(filepath.Dir(path))
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	}

	// Shared templates.
	write(filepath.Join(cfg.TemplatesDir, "header.html.tmpl"), `<head><title>{{.title}}</title><base href="{{.depth}}"></head>`)
	write(filepath.Join(cfg.TemplatesDir, "navbar.html.tmpl"), `<nav><a href="{{.depth}}blog.html">Blog</a></nav>`)
	write(filepath.Join(cfg.TemplatesDir, "post-page.html.tmpl"), "{{.header}}{{.navbar}}<h1>{{.post_title}}</h1><p>{{.post_author}} - {{.post_date}}</p>{{.post_html}}")
	write(filepath.Join(cfg.TemplatesDir, "project-page.html.tmpl"), "{{.header}}{{.navbar}}<h1>{{.project_name}}</h1>{{.project_html}}<section>{{.posts}}</section>")
	write(filepath.Join(cfg.TemplatesDir, "blog-listing.html.tmpl"), "{{.header}}{{.navbar}}<h1>{{.title}}</h1>{{.posts}}")
	write(filepath.Join(cfg.TemplatesDir, "project-listing.html.tmpl"), "{{.header}}{{.navbar}}{{.projects}}")
	write(filepath.Join(cfg.TemplatesDir, "post-block.html.tmpl"), `<div><a href="{{.link}}">{{.title}}</a>|{{.date}}|{{.author}}|{{.summary}}|{{.tags}}</div>`)
	write(filepath.Join(cfg.TemplatesDir, "project-block.html.tmpl"), `<div><a href="{{.link}}">{{.title}}</a>|{{.date}}|{{.summary}}</div>`)
	write(filepath.Join(cfg.TemplatesDir, "tag.html.tmpl"), `<a href="{{.link}}">{{.tag}}</a>`)

	// Top-level pages and site-wide static assets.
	write(filepath.Join(cfg.SourceDir, "index.html.tmpl"), "{{.header}}{{.navbar}}<main>welcome</main>")
	write(filepath.Join(cfg.StaticDir, "style.css"), "body{}")

	// January post: tagged, linked to siteA, with its own assets.
	write(filepath.Join(cfg.PostsDir, "january", "post.json"), `{
  "file_path": "entry.md",
  "post_dir": "january",
  "format": "markdown",
  "static_dir": "static",
  "title": "January Post",
  "authors": ["Ann"],
  "day": 1, "month": 1, "year": 2024,
  "description": "first",
  "thumbnail": "static/thumb.png",
  "projects": ["siteA"],
  "tags": ["rust", "webdev"]
}`)
	write(filepath.Join(cfg.PostsDir, "january", "entry.md"), "# January\n\njanuary body fragment\n")
	write(filepath.Join(cfg.PostsDir, "january", "static", "thumb.png"), "png")

	// June post: no assets, no projects.
	write(filepath.Join(cfg.PostsDir, "june", "post.json"), `{
  "file_path": "entry.md",
  "post_dir": "june",
  "format": "markdown",
  "static_dir": null,
  "title": "June Post",
  "authors": ["Ann", "Bo"],
  "day": 1, "month": 6, "year": 2024,
  "description": "second",
  "thumbnail": "thumb.png",
  "projects": null,
  "tags": ["rust"]
}`)
	write(filepath.Join(cfg.PostsDir, "june", "entry.md"), "june body fragment\n")

	// One project.
	write(filepath.Join(cfg.ProjectsDir, "siteA", "proj.json"), `{
  "file_path": "writeup.md",
  "proj_dir": "siteA",
  "format": "markdown",
  "static_dir": null,
  "thumbnail": "thumb.png",
  "project": "siteA",
  "day": 5, "month": 2, "year": 2023,
  "description": "the project"
}`)
	write(filepath.Join(cfg.ProjectsDir, "siteA", "writeup.md"), "project body fragment\n")

	return cfg
}

func readOutput(t *testing.T, cfg config.Config, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{cfg.OutputDir}, parts...)...))
	require.NoError(t, err)
	return string(data)
}

func TestRun_BuildsFullSite(t *testing.T) {
	cfg := fixtureSite(t)

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.BuildID)
	require.Equal(t, 2, report.Posts)
	require.Equal(t, 1, report.Projects)
	require.Equal(t, 2, report.TagPages)
	require.Empty(t, report.Errors)

	// Post pages land at deterministic paths and contain the body verbatim.
	jan := readOutput(t, cfg, "posts", "january", "entry.html")
	require.Contains(t, jan, "january body fragment")
	require.Contains(t, jan, "<title>January Post - Test Site</title>")
	require.Contains(t, jan, `href="../../blog.html"`)

	// Project page lists its associated post.
	proj := readOutput(t, cfg, "projects", "siteA", "writeup.html")
	require.Contains(t, proj, "project body fragment")
	require.Contains(t, proj, "January Post")
	require.NotContains(t, proj, "June Post")

	// Top-level pages.
	require.Contains(t, readOutput(t, cfg, "index.html"), "<main>welcome</main>")
	require.Contains(t, readOutput(t, cfg, "projects.html"), "siteA")
	require.Equal(t, "body{}", readOutput(t, cfg, "static", "style.css"))
	require.Equal(t, "png", readOutput(t, cfg, "posts", "january", "static", "thumb.png"))

	// The June post declared no assets, so no static dir is staged.
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "posts", "june", "static"))
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_BlogListsMostRecentFirst(t *testing.T) {
	cfg := fixtureSite(t)

	_, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	blog := readOutput(t, cfg, "blog.html")
	require.Less(t, strings.Index(blog, "June Post"), strings.Index(blog, "January Post"))
}

func TestRun_TagPagesPartitionPosts(t *testing.T) {
	cfg := fixtureSite(t)

	_, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	rust := readOutput(t, cfg, "rust.html")
	require.Contains(t, rust, "January Post")
	require.Contains(t, rust, "June Post")
	require.Contains(t, rust, "rust Blog Posts")

	webdev := readOutput(t, cfg, "webdev.html")
	require.Contains(t, webdev, "January Post")
	require.NotContains(t, webdev, "June Post")
}

func TestRun_EmptySourceTrees_WarnsAndSkipsListings(t *testing.T) {
	cfg := fixtureSite(t)
	require.NoError(t, os.RemoveAll(cfg.PostsDir))
	require.NoError(t, os.RemoveAll(cfg.ProjectsDir))

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Warnings, 2)

	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "blog.html"))
	require.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(cfg.OutputDir, "projects.html"))
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_MalformedDescriptor_AbortsNamingItem(t *testing.T) {
	cfg := fixtureSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PostsDir, "january", "post.json"), []byte(`{"post_dir":"january"}`), 0o644))

	report, err := New(cfg).Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, content.ErrMalformedMetadata)
	require.Contains(t, err.Error(), "january")
	require.NotEmpty(t, report.Errors)
}

func TestRun_MissingBodyFile_AbortsNamingItem(t *testing.T) {
	cfg := fixtureSite(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.PostsDir, "june", "entry.md")))

	_, err := New(cfg).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "june")
}

func TestRun_FullRebuildClearsStaleOutput(t *testing.T) {
	cfg := fixtureSite(t)
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o755))
	stale := filepath.Join(cfg.OutputDir, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(stale)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_CanceledContext_StopsBuild(t *testing.T) {
	cfg := fixtureSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := New(cfg).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotEmpty(t, report.Errors)
}

func TestRun_RecordsStageDurations(t *testing.T) {
	cfg := fixtureSite(t)

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, report.StageDurations, "build_posts")
	require.Contains(t, report.StageDurations, "tag_pages")
}
