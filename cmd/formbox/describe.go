package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"formbox/internal/config"
	"formbox/internal/form"
	"formbox/internal/option"
	"formbox/internal/ui"
)

// maxListedOptions caps the static options printed per field.
const maxListedOptions = 10

func addDescribe(topLevel *cobra.Command, g *globalOptions) {
	var (
		format string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "describe FIELDS.yaml",
		Short: "Print a summary of a form definition.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := map[string]any{}
			if cmd.Flags().Changed("output-format") {
				extra[config.KeyOutputFormat] = format
			}
			if err := initConfig(cmd, g, extra); err != nil {
				return err
			}
			def, err := form.Load(args[0])
			if err != nil {
				return err
			}
			render := ui.BuildMarkdownRenderer(config.GetString(config.KeyOutputFormat), width)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render(describeMarkdown(def)))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "output-format", "rich", "Markdown style (rich, light, plain)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width")

	topLevel.AddCommand(cmd)
}

func describeMarkdown(def form.Definition) string {
	var b strings.Builder
	title := strings.TrimSpace(def.Title)
	if title == "" {
		title = "Form"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if d := strings.TrimSpace(def.Description); d != "" {
		fmt.Fprintf(&b, "%s\n\n", d)
	}

	for _, field := range def.Fields {
		fmt.Fprintf(&b, "## %s (`%s`)\n\n", field.DisplayLabel(), field.Key)
		if h := strings.TrimSpace(field.Help); h != "" {
			fmt.Fprintf(&b, "%s\n\n", h)
		}
		fmt.Fprintf(&b, "- **Type:** %s\n", describeType(field))
		if flags := describeFlags(field); flags != "" {
			fmt.Fprintf(&b, "- **Flags:** %s\n", flags)
		}
		if field.Match != "" {
			fmt.Fprintf(&b, "- **Match:** %s\n", option.ParseMatch(field.Match))
		}
		if field.Default != nil {
			if opts := defaultOptions(field); len(opts) > 0 {
				fmt.Fprintf(&b, "- **Default:** %s\n", option.JoinLabels(opts))
			}
		}
		b.WriteString(describeSource(field))
		b.WriteString("\n")
	}
	return b.String()
}

// defaultOptions decodes the field default, taking labels from the static
// options where the values match.
func defaultOptions(field form.Field) []option.Option {
	opts := option.Decode(field.Default)
	for i, o := range opts {
		if j := option.IndexOf(field.Options, o.Value); j >= 0 {
			opts[i] = field.Options[j]
		}
	}
	return opts
}

func describeType(field form.Field) string {
	kind := string(field.Type)
	if field.Multi() && !strings.HasSuffix(kind, "-multi") {
		kind += " (multiple)"
	}
	if !field.Type.Selectable() {
		kind += " (not supported)"
	}
	return kind
}

func describeFlags(field form.Field) string {
	var flags []string
	if field.Required {
		flags = append(flags, "required")
	}
	if field.Disabled {
		flags = append(flags, "disabled")
	}
	if field.ReadOnly {
		flags = append(flags, "read-only ("+string(field.Style())+")")
	}
	return strings.Join(flags, ", ")
}

func describeSource(field form.Field) string {
	r := field.Remote
	if r == nil {
		if len(field.Options) == 0 {
			return "- **Options:** none\n"
		}
		var b strings.Builder
		fmt.Fprintf(&b, "- **Options:** %d\n", len(field.Options))
		for i, o := range field.Options {
			if i == maxListedOptions {
				fmt.Fprintf(&b, "  - … %d more\n", len(field.Options)-maxListedOptions)
				break
			}
			fmt.Fprintf(&b, "  - %s (`%s`)\n", o.Display(), o.Value)
		}
		return b.String()
	}
	switch r.Kind {
	case form.RemoteHTTP:
		method := r.Method
		if method == "" {
			method = "GET"
		}
		return fmt.Sprintf("- **Remote:** %s `%s`\n", strings.ToUpper(method), r.URL)
	case form.RemoteSQLite:
		table := r.Table
		if table == "" {
			table = "options"
		}
		return fmt.Sprintf("- **Remote:** sqlite `%s` table `%s`\n", r.Path, table)
	default:
		return fmt.Sprintf("- **Remote:** %s\n", r.Kind)
	}
}
