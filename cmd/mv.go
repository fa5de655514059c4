package cmd

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/agentic-research/modmv/internal/rename"
)

var mvCmd = &cobra.Command{
	Use:   "mv <old-path> <new-path>",
	Short: "Rename a source file or directory and rewrite its dependents",
	Long: `Renames a file or directory inside the workspace. Every module whose
declaration header depends on a renamed module, or that references it by
qualified or flattened name, is rewritten to the new identity. Prints the
paths of all modified files.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		oldPath, err := absPath(args[0])
		if err != nil {
			return err
		}
		newPath, err := absPath(args[1])
		if err != nil {
			return err
		}

		mover := rename.NewMover(ws.FS, ws.Roots, log.Default())
		start := time.Now()
		modified, err := mover.Move(oldPath, newPath)
		if err != nil {
			return err
		}
		log.Debug("rename complete", "modified", len(modified), "elapsed", time.Since(start))
		return emit(modified)
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
