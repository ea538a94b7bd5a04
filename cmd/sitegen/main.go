package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ALescoulie/sitegen/internal/config"
	"github.com/ALescoulie/sitegen/internal/content"
	"github.com/ALescoulie/sitegen/internal/pipeline"
	"github.com/ALescoulie/sitegen/internal/scaffold"
	"github.com/ALescoulie/sitegen/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"sitegen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Override the output directory"`
	} `cmd:"" help:"Run a full site build"`

	Clean struct{} `cmd:"" help:"Remove the build output directory"`

	NewPost struct {
		Name string `arg:"" help:"Directory name for the new post"`
	} `cmd:"" help:"Scaffold a new blog post directory"`

	NewProject struct {
		Name string `arg:"" help:"Directory name for the new project"`
	} `cmd:"" help:"Scaffold a new project directory"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	switch ctx.Command() {
	case "build":
		if CLI.Build.Output != "" {
			cfg.OutputDir = CLI.Build.Output
		}
		if _, err := pipeline.New(cfg).Run(context.Background()); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "clean":
		if err := site.Clean(cfg.OutputDir); err != nil {
			slog.Error("Clean failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Removed build output", "path", cfg.OutputDir)
	case "new-post <name>":
		if err := scaffold.New(content.KindPost, cfg.PostsDir, CLI.NewPost.Name); err != nil {
			slog.Error("Failed to scaffold post", "error", err)
			os.Exit(1)
		}
	case "new-project <name>":
		if err := scaffold.New(content.KindProject, cfg.ProjectsDir, CLI.NewProject.Name); err != nil {
			slog.Error("Failed to scaffold project", "error", err)
			os.Exit(1)
		}
	}
}
