package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/modmv/internal/graph"
	"github.com/agentic-research/modmv/internal/module"
	"github.com/agentic-research/modmv/internal/rename"
	"github.com/agentic-research/modmv/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rename and dependency tools over MCP on stdio",
	Long: `Exposes the workspace to MCP clients (agents, editors) as two tools:
"rename" moves a file or directory and rewrites dependents, "dependents"
reports the direct dependents of a module.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		t := &toolset{ws: ws}

		s := server.NewMCPServer("modmv", version)

		s.AddTool(mcp.NewTool("rename",
			mcp.WithDescription("Rename a source file or directory and rewrite every dependent module. Returns the modified file paths."),
			mcp.WithString("old_path", mcp.Required(), mcp.Description("Current path of the file or directory")),
			mcp.WithString("new_path", mcp.Required(), mcp.Description("Destination path; must fall under a configured source root")),
		), t.handleRename)

		s.AddTool(mcp.NewTool("dependents",
			mcp.WithDescription("List the modules that directly depend on the given module."),
			mcp.WithString("module", mcp.Required(), mcp.Description("Dotted module name, e.g. pkg.util.a")),
		), t.handleDependents)

		log.Info("serving MCP on stdio", "roots", len(ws.Roots))
		return server.ServeStdio(s)
	},
}

// toolset binds the MCP tool handlers to a loaded workspace.
type toolset struct {
	ws *workspace.Workspace
}

func (t *toolset) handleRename(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldPath, err := req.RequireString("old_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newPath, err := req.RequireString("new_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mover := rename.NewMover(t.ws.FS, t.ws.Roots, log.Default())
	modified, err := mover.Move(oldPath, newPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(oj.JSON(modified)), nil
}

func (t *toolset) handleDependents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("module")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := graph.NewBuilder(t.ws.FS, t.ws.Roots, log.Default()).Build()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dependents := nameStrings(g.DependentsOf(module.Name(name)))
	return mcp.NewToolResultText(oj.JSON(dependents)), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
