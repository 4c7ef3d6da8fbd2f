package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/codeforge/internal/repository"
	"github.com/alexanderramin/codeforge/internal/server"
)

// App holds the wired collaborators the CLI commands run against.
type App struct {
	Server   *server.Server
	Sessions repository.SessionRepo
	Addr     string
	Logger   *slog.Logger
}

// NewRootCmd creates the top-level "codeforge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "codeforge",
		Short: "AI-assisted code generation service",
	}

	root.AddCommand(
		newServeCmd(app),
		newCleanupCmd(app),
	)

	return root
}
