package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentic-research/modmv/internal/graph"
	"github.com/agentic-research/modmv/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export <output.db>",
	Short: "Write a SQLite snapshot of the dependency graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output := args[0]

		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		g, err := graph.NewBuilder(ws.FS, ws.Roots, log.Default()).Build()
		if err != nil {
			return err
		}

		_ = os.Remove(output) // overwrite
		start := time.Now()
		if err := snapshot.Export(g, output); err != nil {
			return err
		}
		fmt.Printf("Exported %d modules to %s in %v.\n", g.Len(), output, time.Since(start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
