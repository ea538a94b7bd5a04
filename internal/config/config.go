// Package config holds the site build configuration. Core packages receive a
// Config explicitly; defaults are supplied only at the CLI boundary.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the site generator configuration.
type Config struct {
	SiteName     string `yaml:"site_name"`     // Suffix for page titles, e.g. "About - <SiteName>"
	SourceDir    string `yaml:"source_dir"`    // Top-level page templates
	StaticDir    string `yaml:"static_dir"`    // Site-wide static assets
	PostsDir     string `yaml:"posts_dir"`     // Blog post source tree
	ProjectsDir  string `yaml:"projects_dir"`  // Project source tree
	TemplatesDir string `yaml:"templates_dir"` // Shared page templates (header, navbar, ...)
	OutputDir    string `yaml:"output_dir"`    // Build output root
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		SiteName:     "Alia Lescoulie",
		SourceDir:    "site_src",
		StaticDir:    "site_src/static",
		PostsDir:     "blog_posts",
		ProjectsDir:  "projects",
		TemplatesDir: "templates",
		OutputDir:    "site_out",
	}
}

// Load loads configuration from the specified file. A missing file is not an
// error: defaults are returned. Environment variables referenced in the YAML
// are expanded, and a .env file is loaded first when present.
func Load(configPath string) (Config, error) {
	// Missing .env is fine; existing env vars are never overridden.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config file %s: %w", configPath, err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills any field left empty by the config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.SiteName == "" {
		c.SiteName = def.SiteName
	}
	if c.SourceDir == "" {
		c.SourceDir = def.SourceDir
	}
	if c.StaticDir == "" {
		c.StaticDir = def.StaticDir
	}
	if c.PostsDir == "" {
		c.PostsDir = def.PostsDir
	}
	if c.ProjectsDir == "" {
		c.ProjectsDir = def.ProjectsDir
	}
	if c.TemplatesDir == "" {
		c.TemplatesDir = def.TemplatesDir
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
}
