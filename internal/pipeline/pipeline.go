// Package pipeline orchestrates the full site build as an ordered sequence
// of stages: prepare output, copy site static assets, compose top-level
// pages, then per-item post and project builds, and finally the aggregate
// listing, tag, and association pages, which derive from the completed set
// of built items.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ALescoulie/sitegen/internal/assoc"
	"github.com/ALescoulie/sitegen/internal/compose"
	"github.com/ALescoulie/sitegen/internal/config"
	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/convert"
	"github.com/ALescoulie/sitegen/internal/listing"
	"github.com/ALescoulie/sitegen/internal/logfields"
	"github.com/ALescoulie/sitegen/internal/site"
	"github.com/ALescoulie/sitegen/internal/templates"
)

// Report summarizes one build run.
type Report struct {
	BuildID        string
	StartedAt      time.Time
	Duration       time.Duration
	Posts          int
	Projects       int
	TagPages       int
	PagesWritten   int
	StageDurations map[string]time.Duration
	Warnings       []error
	Errors         []error
}

// BuildState carries mutable state across stages.
type BuildState struct {
	Report *Report

	PostMeta    []content.Metadata
	ProjectMeta []content.Metadata
	Posts       []site.BuiltPage
	Projects    []site.BuiltPage
}

// Pipeline wires the build collaborators together for one configuration.
type Pipeline struct {
	cfg       config.Config
	converter convert.Converter
	engine    templates.Engine
	pages     templates.Engine
	composer  *compose.Composer
	listing   *listing.Builder
	writer    *site.Writer
}

// New constructs a Pipeline from the configuration, using the goldmark
// markdown converter and directory-backed template engines.
func New(cfg config.Config) *Pipeline {
	engine := templates.NewDirEngine(cfg.TemplatesDir)
	composer := compose.New(engine, cfg.SiteName)
	return &Pipeline{
		cfg:       cfg,
		converter: convert.NewMarkdown(),
		engine:    engine,
		pages:     templates.NewDirEngine(cfg.SourceDir),
		composer:  composer,
		listing:   listing.NewBuilder(engine, composer),
		writer:    site.NewWriter(cfg.OutputDir),
	}
}

// Run executes a full rebuild from scratch. The first fatal stage error
// aborts the build; the returned report is always populated with whatever
// completed.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:        uuid.NewString(),
		StartedAt:      time.Now(),
		StageDurations: make(map[string]time.Duration),
	}
	bs := &BuildState{Report: report}

	slog.Info("Starting site build",
		logfields.BuildID(report.BuildID),
		logfields.Path(p.cfg.OutputDir))

	stages := []namedStage{
		{"prepare_output", p.stagePrepareOutput},
		{"copy_site_static", p.stageCopySiteStatic},
		{"site_pages", p.stageSitePages},
		{"collect_posts", p.stageCollectPosts},
		{"build_posts", p.stageBuildPosts},
		{"stage_post_assets", p.stagePostAssets},
		{"blog_page", p.stageBlogPage},
		{"tag_pages", p.stageTagPages},
		{"collect_projects", p.stageCollectProjects},
		{"build_projects", p.stageBuildProjects},
		{"stage_project_assets", p.stageProjectAssets},
		{"projects_page", p.stageProjectsPage},
	}

	err := runStages(ctx, bs, stages)
	report.Duration = time.Since(report.StartedAt)
	if err != nil {
		slog.Error("Site build failed", logfields.BuildID(report.BuildID), logfields.Error(err))
		return report, err
	}

	slog.Info("Site build complete",
		logfields.BuildID(report.BuildID),
		slog.Int("posts", report.Posts),
		slog.Int("projects", report.Projects),
		slog.Int("tag_pages", report.TagPages),
		slog.Int("pages_written", report.PagesWritten),
		slog.Duration("duration", report.Duration))
	return report, nil
}

// stagePrepareOutput clears the previous build and recreates the output
// root. A rebuild is always a full rebuild.
func (p *Pipeline) stagePrepareOutput(ctx context.Context, bs *BuildState) error {
	if err := site.Clean(p.cfg.OutputDir); err != nil {
		return err
	}
	return p.writer.Prepare()
}

func (p *Pipeline) stageCopySiteStatic(ctx context.Context, bs *BuildState) error {
	return p.writer.CopySiteStatic(p.cfg.StaticDir)
}

// stageSitePages composes the top-level pages authored in the source
// directory (index, about, ...).
func (p *Pipeline) stageSitePages(ctx context.Context, bs *BuildState) error {
	names, err := compose.DiscoverPages(p.cfg.SourceDir)
	if err != nil {
		return err
	}
	for _, name := range names {
		page, err := p.composer.StaticPage(p.pages, name)
		if err != nil {
			return err
		}
		if _, err := p.writer.WriteTopLevel(name+".html", page); err != nil {
			return err
		}
		bs.Report.PagesWritten++
		slog.Debug("Wrote top-level page", logfields.Path(name+".html"))
	}
	return nil
}

func (p *Pipeline) stageCollectPosts(ctx context.Context, bs *BuildState) error {
	posts, err := content.Collect(content.KindPost, p.cfg.PostsDir)
	if err != nil {
		return err
	}
	bs.PostMeta = posts
	return nil
}

// stageBuildPosts converts, composes, and writes each post page. Items are
// independent; the first failing item aborts the build with its directory
// named.
func (p *Pipeline) stageBuildPosts(ctx context.Context, bs *BuildState) error {
	bs.Posts = make([]site.BuiltPage, 0, len(bs.PostMeta))
	for _, meta := range bs.PostMeta {
		select {
		case <-ctx.Done():
			return newCanceledStageError("build_posts", ctx.Err())
		default:
		}

		rendered, err := convert.Render(p.converter, meta, p.cfg.PostsDir)
		if err != nil {
			return err
		}
		page, err := p.composer.PostPage(rendered)
		if err != nil {
			return err
		}
		built, err := p.writer.WritePage(meta, page)
		if err != nil {
			return err
		}
		bs.Posts = append(bs.Posts, built)
		bs.Report.Posts++
		bs.Report.PagesWritten++
		slog.Debug("Built post page", logfields.Directory(meta.Directory), logfields.Path(built.Path))
	}
	return nil
}

func (p *Pipeline) stagePostAssets(ctx context.Context, bs *BuildState) error {
	for _, built := range bs.Posts {
		if err := p.writer.StageAssets(built.Meta, p.cfg.PostsDir); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) stageBlogPage(ctx context.Context, bs *BuildState) error {
	if len(bs.Posts) == 0 {
		return newWarnStageError("blog_page", fmt.Errorf("no posts collected; skipping blog page"))
	}
	page, err := p.listing.BlogPage(bs.Posts, "Blog")
	if err != nil {
		return err
	}
	if _, err := p.writer.WriteTopLevel("blog.html", page); err != nil {
		return err
	}
	bs.Report.PagesWritten++
	return nil
}

func (p *Pipeline) stageTagPages(ctx context.Context, bs *BuildState) error {
	pages, err := p.listing.TagPages(bs.Posts)
	if err != nil {
		return err
	}
	for tag, page := range pages {
		if _, err := p.writer.WriteTopLevel(tag+".html", page); err != nil {
			return err
		}
		bs.Report.TagPages++
		bs.Report.PagesWritten++
	}
	return nil
}

func (p *Pipeline) stageCollectProjects(ctx context.Context, bs *BuildState) error {
	projects, err := content.Collect(content.KindProject, p.cfg.ProjectsDir)
	if err != nil {
		return err
	}
	bs.ProjectMeta = projects
	return nil
}

// stageBuildProjects composes each project page with the blocks of its
// associated posts, in chronological order at the page's link depth.
func (p *Pipeline) stageBuildProjects(ctx context.Context, bs *BuildState) error {
	bs.Projects = make([]site.BuiltPage, 0, len(bs.ProjectMeta))
	for _, meta := range bs.ProjectMeta {
		select {
		case <-ctx.Done():
			return newCanceledStageError("build_projects", ctx.Err())
		default:
		}

		rendered, err := convert.Render(p.converter, meta, p.cfg.ProjectsDir)
		if err != nil {
			return err
		}

		linked := assoc.PostsForProject(meta.Title, bs.Posts)
		blocks, err := p.listing.PostBlocks(linked, compose.ContentDepth, true)
		if err != nil {
			return err
		}

		page, err := p.composer.ProjectPage(rendered, blocks)
		if err != nil {
			return err
		}
		built, err := p.writer.WritePage(meta, page)
		if err != nil {
			return err
		}
		bs.Projects = append(bs.Projects, built)
		bs.Report.Projects++
		bs.Report.PagesWritten++
		slog.Debug("Built project page",
			logfields.Directory(meta.Directory),
			slog.Int("linked_posts", len(linked)))
	}
	return nil
}

func (p *Pipeline) stageProjectAssets(ctx context.Context, bs *BuildState) error {
	for _, built := range bs.Projects {
		if err := p.writer.StageAssets(built.Meta, p.cfg.ProjectsDir); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) stageProjectsPage(ctx context.Context, bs *BuildState) error {
	if len(bs.Projects) == 0 {
		return newWarnStageError("projects_page", fmt.Errorf("no projects collected; skipping projects page"))
	}
	page, err := p.listing.ProjectsPage(bs.Projects)
	if err != nil {
		return err
	}
	if _, err := p.writer.WriteTopLevel("projects.html", page); err != nil {
		return err
	}
	bs.Report.PagesWritten++
	return nil
}
