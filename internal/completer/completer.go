// Package completer wires SQL cursor context and live schema metadata
// into a readline tab completer.
package completer

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/quillsql/quill/internal/schema"
	"github.com/quillsql/quill/pkg/dialect"
	"github.com/quillsql/quill/pkg/sqlparse"
)

// lookupTimeout bounds schema metadata fetches triggered by a keystroke.
const lookupTimeout = 2 * time.Second

// Completer implements readline.AutoCompleter over a dialect engine and a
// schema provider.
type Completer struct {
	engine      dialect.Engine
	provider    schema.Provider
	dotCommands []string
}

// New builds a completer. provider may be nil, which disables table and
// column completion. dotCommands are offered when the line starts with a
// dot.
func New(engine dialect.Engine, provider schema.Provider, dotCommands []string) *Completer {
	return &Completer{
		engine:      engine,
		provider:    provider,
		dotCommands: dotCommands,
	}
}

// Do returns completion candidates for the partial word ending at pos.
// The returned slices hold the suffix to append, per readline contract.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	if strings.HasPrefix(strings.TrimLeft(text, " \t"), ".") {
		return c.completeDotCommand(strings.TrimLeft(text, " \t"))
	}

	partial := partialWord(text)
	candidates := c.candidates(text, partial)

	var out [][]rune
	for _, cand := range candidates {
		if len(cand) < len(partial) {
			continue
		}
		if !strings.EqualFold(cand[:len(partial)], partial) {
			continue
		}
		out = append(out, []rune(matchTypedCase(partial, cand[len(partial):])))
	}
	return out, len([]rune(partial))
}

// matchTypedCase folds an uppercase candidate tail to lowercase when the
// typed fragment is lowercase. Readline appends the suffix after the
// fragment exactly as typed, so "cou" completes to "count(" and "COU" to
// "COUNT(". Identifier candidates keep their catalog spelling.
func matchTypedCase(partial, suffix string) string {
	if partial == "" || suffix == "" {
		return suffix
	}
	if suffix != strings.ToUpper(suffix) {
		return suffix
	}
	if partial == strings.ToLower(partial) && partial != strings.ToUpper(partial) {
		return strings.ToLower(suffix)
	}
	return suffix
}

func (c *Completer) completeDotCommand(text string) ([][]rune, int) {
	var out [][]rune
	for _, cmd := range c.dotCommands {
		if strings.HasPrefix(cmd, text) {
			out = append(out, []rune(cmd[len(text):]))
		}
	}
	return out, len([]rune(text))
}

// candidates merges expectation-driven completions with dialect hints.
// The cursor sits at the end of text, which holds the line up to it.
func (c *Completer) candidates(text, partial string) []string {
	ctx := c.engine.ParseAtCursor(text, len(text))

	seen := make(map[string]bool)
	var out []string
	add := func(items ...string) {
		for _, item := range items {
			if item == "" || seen[strings.ToUpper(item)] {
				continue
			}
			seen[strings.ToUpper(item)] = true
			out = append(out, item)
		}
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	for _, exp := range ctx.Base.Expecting {
		switch exp.Kind {
		case sqlparse.ExpectTable:
			add(c.tableCandidates(lookupCtx, partial)...)
		case sqlparse.ExpectColumn:
			add(c.columnCandidates(lookupCtx, ctx.Base, partial)...)
		case sqlparse.ExpectKeyword:
			add(exp.Keywords...)
		case sqlparse.ExpectFunction:
			for _, fn := range c.engine.Functions() {
				add(fn + "(")
			}
		}
	}

	add(rankedHints(c.engine.Hints(ctx))...)
	add(c.engine.Suggestions(ctx, partial)...)

	return out
}

// tableCandidates lists table names, schema-qualified when the partial is
// already qualified.
func (c *Completer) tableCandidates(ctx context.Context, partial string) []string {
	if c.provider == nil {
		return nil
	}

	if schemaName, _, ok := strings.Cut(partial, "."); ok {
		var out []string
		for _, table := range c.provider.Tables(ctx, schemaName) {
			out = append(out, schemaName+"."+table)
		}
		return out
	}

	tables := c.provider.Tables(ctx, "")
	out := append([]string(nil), tables...)
	for _, s := range c.provider.Schemas(ctx) {
		out = append(out, s+".")
	}
	return out
}

// columnCandidates resolves columns for the tables referenced in the
// statement. A qualified partial like "u." resolves the alias first.
func (c *Completer) columnCandidates(ctx context.Context, base *sqlparse.Context, partial string) []string {
	if c.provider == nil {
		return nil
	}

	if qualifier, _, ok := strings.Cut(partial, "."); ok {
		ref := resolveQualifier(base.Tables, qualifier)
		if ref == nil {
			return nil
		}
		var out []string
		for _, col := range c.provider.Columns(ctx, ref.Schema, ref.Table) {
			out = append(out, qualifier+"."+col.Name)
		}
		return out
	}

	var out []string
	for _, ref := range base.Tables {
		for _, col := range c.provider.Columns(ctx, ref.Schema, ref.Table) {
			out = append(out, col.Name)
		}
	}
	return out
}

// resolveQualifier matches a qualifier against aliases first, then table
// names.
func resolveQualifier(refs []sqlparse.TableRef, qualifier string) *sqlparse.TableRef {
	for i := range refs {
		if strings.EqualFold(refs[i].Alias, qualifier) {
			return &refs[i]
		}
	}
	for i := range refs {
		if strings.EqualFold(refs[i].Table, qualifier) {
			return &refs[i]
		}
	}
	return nil
}

// rankedHints orders hints by priority descending and returns their
// texts.
func rankedHints(hints []dialect.CompletionHint) []string {
	sorted := append([]dialect.CompletionHint(nil), hints...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	out := make([]string, 0, len(sorted))
	for _, h := range sorted {
		text := h.Text
		if h.RequiresParens && !strings.HasSuffix(text, "(") {
			text += "("
		}
		out = append(out, text)
	}
	return out
}

// partialWord returns the identifier fragment immediately before the
// cursor, including a dot qualifier ("u.na" stays whole).
func partialWord(text string) string {
	end := len(text)
	start := end
	for start > 0 {
		ch := text[start-1]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' || ch == '_' || ch == '.' {
			start--
			continue
		}
		break
	}
	return text[start:end]
}
