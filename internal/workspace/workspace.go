// Package workspace loads the modmv.hcl configuration and exposes the
// source roots and filesystem handle the engine operates on.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/agentic-research/modmv/api"
)

// ConfigName is the workspace file searched for in the working
// directory and its ancestors.
const ConfigName = "modmv.hcl"

// Workspace is the loaded configuration: the filesystem to operate on
// and the source roots, as absolute forward-slash paths.
type Workspace struct {
	FS    billy.Filesystem
	Roots []string
	Dir   string // directory holding the config file
}

// Load reads and decodes the workspace file at configPath. Relative
// root paths are resolved against the config file's directory.
func Load(configPath string) (*Workspace, error) {
	src, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, configPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", configPath, diags.Error())
	}

	var cfg api.Workspace
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", configPath, diags.Error())
	}
	if len(cfg.Roots) == 0 {
		return nil, fmt.Errorf("%s declares no source roots", configPath)
	}

	dir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, err
	}

	roots := make([]string, len(cfg.Roots))
	for i, r := range cfg.Roots {
		p := r.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		roots[i] = filepath.ToSlash(p)
	}

	return &Workspace{
		FS:    osfs.New("/"),
		Roots: roots,
		Dir:   filepath.ToSlash(dir),
	}, nil
}

// Find locates the workspace file, walking from startDir upward.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent", ConfigName, startDir)
		}
		dir = parent
	}
}
