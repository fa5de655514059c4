package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentic-research/modmv/internal/graph"
	"github.com/agentic-research/modmv/internal/module"
	"github.com/agentic-research/modmv/internal/workspace"
)

// depsReport is the JSON shape of the deps command output.
type depsReport struct {
	Module       string   `json:"module"`
	Path         string   `json:"path,omitempty"`
	Dependencies []string `json:"dependencies"`
	Dependents   []string `json:"dependents"`
}

var depsCmd = &cobra.Command{
	Use:   "deps <path|module>",
	Short: "Show direct dependencies and dependents of a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		name, err := argToModule(ws, args[0])
		if err != nil {
			return err
		}

		g, err := graph.NewBuilder(ws.FS, ws.Roots, log.Default()).Build()
		if err != nil {
			return err
		}

		report := depsReport{
			Module:       string(name),
			Dependencies: nameStrings(g.DependenciesOf(name)),
			Dependents:   nameStrings(g.DependentsOf(name)),
		}
		if p, err := g.PathOf(name); err == nil {
			report.Path = p
		}

		if jsonOut {
			return emit(report)
		}
		fmt.Printf("module %s\n", report.Module)
		if report.Path != "" {
			fmt.Printf("path   %s\n", report.Path)
		}
		printList("dependencies", report.Dependencies)
		printList("dependents", report.Dependents)
		return nil
	},
}

// argToModule accepts either a dotted module name or a file path.
func argToModule(ws *workspace.Workspace, arg string) (module.Name, error) {
	if !strings.ContainsAny(arg, "/\\") && !strings.HasSuffix(arg, module.Ext) {
		return module.Name(arg), nil
	}
	p, err := absPath(arg)
	if err != nil {
		return "", err
	}
	return module.NewResolver(ws.Roots).Resolve(p)
}

func nameStrings(names []module.Name) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func printList(label string, items []string) {
	if len(items) == 0 {
		fmt.Printf("%s: none\n", label)
		return
	}
	fmt.Printf("%s:\n", label)
	for _, it := range items {
		fmt.Printf("  %s\n", it)
	}
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
