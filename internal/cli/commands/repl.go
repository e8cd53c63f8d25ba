package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/quillsql/quill/internal/completer"
	"github.com/quillsql/quill/internal/schema"
	"github.com/quillsql/quill/pkg/dialect"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var dotCommands = []string{
	".help", ".tables", ".schema", ".dialect", ".format", ".clear", ".quit", ".exit",
}

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	Format string
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}

	cmd := &cobra.Command{
		Use:   "repl [connection|dsn]",
		Short: "Start an interactive SQL session",
		Long: `Start an interactive SQL session against a configured connection or an
ad hoc DSN.

Statements run when terminated with a semicolon; everything else keeps
accumulating on a continuation prompt. Tab completes keywords, tables,
columns, and dialect operators from the live schema.`,
		Example: `  # Use the default connection from quill.yaml
  quill repl

  # Use a named connection
  quill repl dev

  # Connect directly
  quill repl postgres://app@localhost/appdb
  quill repl ./local.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			return runREPL(cmd, name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv, md")

	return cmd
}

func runREPL(cmd *cobra.Command, name string, opts *REPLOptions) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	conn, _, typ, err := connect(ctx, cfg, name)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	engine := dialect.For(typ)
	provider := schema.NewProvider(conn, typ, nil)
	go provider.WarmUp(ctx, "")

	historyFile := cfg.HistoryFile
	if dir := filepath.Dir(historyFile); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o750)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptStyle.Render(typ.String()) + "> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer.New(engine, provider, dotCommands),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	format := resolveFormat(opts.Format, cfg)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "quill (%s)\n", typ)
	_, _ = fmt.Fprintln(out, infoStyle.Render("Type .help for commands, .quit to exit"))
	_, _ = fmt.Fprintln(out)

	session := &replSession{
		conn:     conn,
		typ:      typ,
		provider: provider,
		format:   format,
	}

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(promptStyle.Render(typ.String()) + "> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if session.handleDotCommand(ctx, cmd, line) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("   ...> ")
			continue
		}
		rl.SetPrompt(promptStyle.Render(typ.String()) + "> ")

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := session.executeAndRender(ctx, out, query); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		_, _ = fmt.Fprintln(out)
	}

	return nil
}

// replSession carries the mutable state of one interactive session.
type replSession struct {
	conn     *sql.DB
	typ      dialect.DatabaseType
	provider *schema.DBProvider
	format   string
}

func (s *replSession) executeAndRender(ctx context.Context, w io.Writer, query string) error {
	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(w, rows, s.format)
}

func (s *replSession) handleDotCommand(ctx context.Context, cmd *cobra.Command, line string) bool {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(out)
		return true

	case ".tables":
		tables := s.provider.Tables(ctx, "")
		if len(tables) == 0 {
			_, _ = fmt.Fprintln(out, "(no tables)")
			return true
		}
		for _, t := range tables {
			_, _ = fmt.Fprintln(out, t)
		}
		return true

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .schema <table>")
			return true
		}
		cols := s.provider.Columns(ctx, "", parts[1])
		rendered := make([]columnRow, 0, len(cols))
		for _, col := range cols {
			nullable := "YES"
			if !col.Nullable {
				nullable = "NO"
			}
			rendered = append(rendered, columnRow{Name: col.Name, Type: col.DataType, Nullable: nullable})
		}
		if err := renderColumns(out, parts[1], rendered, s.format); err != nil {
			_, _ = fmt.Fprintln(errOut, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		}
		return true

	case ".dialect":
		_, _ = fmt.Fprintln(out, s.typ)
		return true

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(out, s.format)
			return true
		}
		switch parts[1] {
		case "table", "json", "csv", "md", "markdown":
			s.format = parts[1]
		default:
			_, _ = fmt.Fprintf(errOut, "Unknown format: %s (table, json, csv, markdown)\n", parts[1])
		}
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .tables          List tables and views
  .schema <name>   Show columns of a table or view
  .dialect         Show the active SQL dialect
  .format [name]   Show or set the output format
  .clear           Clear the screen
  .quit / .exit    Exit the session

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completes keywords, tables, and columns
`
	_, _ = fmt.Fprintln(w, help)
}
