package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillsql/quill/pkg/dialect"

	// Register the built-in dialect engines.
	_ "github.com/quillsql/quill/pkg/dialects/mysql"
	_ "github.com/quillsql/quill/pkg/dialects/postgres"
	_ "github.com/quillsql/quill/pkg/dialects/sqlite"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported SQL dialects",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range dialect.List() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
