package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/modmv/internal/workspace"
)

const version = "0.3.0"

var (
	configPath string
	jsonOut    bool
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the workspace file (default: modmv.hcl, searched upward)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:          "modmv",
	Short:        "Modmv: module-aware renames for multi-root source trees",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetReportTimestamp(false)
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openWorkspace resolves the workspace file (flag, else upward search
// from the working directory) and loads it.
func openWorkspace() (*workspace.Workspace, error) {
	p := configPath
	if p == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		p, err = workspace.Find(wd)
		if err != nil {
			return nil, err
		}
	}
	return workspace.Load(p)
}

// absPath resolves p against the working directory; inputs may be
// absolute or relative to the caller.
func absPath(p string) (string, error) {
	a, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(a), nil
}

// emit prints v as JSON when --json is set, else line-by-line for
// string slices and plain Println otherwise.
func emit(v any) error {
	if jsonOut {
		fmt.Println(oj.JSON(v, 2))
		return nil
	}
	if paths, ok := v.([]string); ok {
		for _, p := range paths {
			fmt.Println(p)
		}
		return nil
	}
	fmt.Println(v)
	return nil
}
