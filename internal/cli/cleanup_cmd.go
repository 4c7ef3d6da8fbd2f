package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Remove expired login sessions and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Sessions.DeleteExpired(cmd.Context())
			if err != nil {
				return fmt.Errorf("purging expired sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired session(s)\n", n)
			return nil
		},
	}
}
