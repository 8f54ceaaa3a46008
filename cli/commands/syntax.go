package commands

import (
	"github.com/spf13/cobra"

	"github.com/yabx-net/mysql/cli/internal/ui"
)

const syntaxReference = "# Template syntax\n\n" +
	"Placeholders are replaced in a single pass; substituted text is never scanned again.\n\n" +
	"| Form | Replaced by | Example |\n" +
	"|------|-------------|---------|\n" +
	"| `{$name}` | escaped value | `WHERE id = {$id}` |\n" +
	"| `{&name}` | escaped identifier | `FROM {&table}` |\n" +
	"| `{#name}` | raw text, not escaped | `ORDER BY {#order}` |\n\n" +
	"Placeholders without a matching parameter are left as written.\n\n" +
	"## Values\n\n" +
	"- `NULL` becomes `NULL`\n" +
	"- numbers are written as is, booleans as `TRUE` / `FALSE`\n" +
	"- strings and times are double-quoted and escaped\n" +
	"- lists become `(a, b, c)`; an empty list becomes `(NULL)`\n\n" +
	"## Identifiers\n\n" +
	"- `db.table` becomes `` `db`.`table` ``\n" +
	"- `*` is left unquoted\n\n" +
	"## Flags\n\n" +
	"Pass parameters as `-p key=value`. The value `NULL` means SQL NULL and\n" +
	"repeating a key builds a list.\n"

func newSyntaxCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "syntax",
		Short: "Show the template placeholder reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.PrintMarkdown(syntaxReference)
		},
	}
}
