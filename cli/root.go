// Package cli holds the todo-api command tree.
package cli

import (
	"fmt"

	"TodoAPI/global"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree with every sub-command registered.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo-api",
		Short: global.AppName + " server",
		Long: `todo-api serves the task management REST API and the rule-based task assistant.

Configuration is read from config.yaml, an optional .env file and the environment.
DATABASE_URL selects the SQL driver (sqlite, postgres, mysql or sqlserver).`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newHealthcheckCommand(),
		newAuditCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	if err := NewRootCommand().Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}
