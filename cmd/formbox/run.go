package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"formbox/internal/config"
	"formbox/internal/debug"
	"formbox/internal/form"
	"formbox/internal/ui"
	"formbox/internal/ui/theme"
)

type runOptions struct {
	storePath string
	debounce  time.Duration
	width     int
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(tea.Model) programRunner

func defaultProgram(m tea.Model) programRunner {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
}

func addRun(topLevel *cobra.Command, g *globalOptions) {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run FIELDS.yaml",
		Short: "Fill in a form and print the committed values as JSON.",
		Example: `
formbox run fields.yaml
formbox run fields.yaml --store ./answers --theme nord
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra := map[string]any{}
			if cmd.Flags().Changed("store") {
				extra[config.KeyStorePath] = ro.storePath
			}
			if cmd.Flags().Changed("debounce") {
				extra[config.KeySearchDebounce] = ro.debounce
			}
			if err := initConfig(cmd, g, extra); err != nil {
				return err
			}
			return runForm(args[0], ro.width, cmd.OutOrStdout(), defaultProgram)
		},
	}

	cmd.Flags().StringVar(&ro.storePath, "store", "", "Persist values under this directory instead of in memory")
	cmd.Flags().DurationVar(&ro.debounce, "debounce", config.DefaultSearchDebounce, "Delay before a search term is sent to a remote source")
	cmd.Flags().IntVar(&ro.width, "width", 0, "Field width (default: fit the terminal)")

	topLevel.AddCommand(cmd)
}

// runForm loads the definition at path, runs it through factory and writes
// the values to out when the user submits.
func runForm(path string, width int, out io.Writer, factory programFactory) error {
	if err := debug.InitAt(config.GetBool(config.KeyDebugEnabled), config.GetString(config.KeyDebugLogPath)); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	defer debug.Close()

	startTheme := strings.TrimSpace(config.GetString(config.KeyTheme))
	if startTheme != "" && !theme.Set(startTheme) {
		debug.Logf("unknown theme %q, keeping %s", startTheme, theme.CurrentName())
	}
	startTheme = theme.CurrentName()

	def, err := form.Load(path)
	if err != nil {
		return err
	}
	store, err := openStore(config.GetString(config.KeyStorePath))
	if err != nil {
		return err
	}

	f, err := ui.NewForm(def, store, ui.MountOptions{
		BaseDir:     filepath.Dir(path),
		Debounce:    config.SearchDebounce(),
		BlurGrace:   config.BlurGrace(),
		Timeout:     config.RemoteTimeout(),
		MaxVisible:  config.MaxVisible(),
		RemoteLimit: config.RemoteLimit(),
		Width:       width,
	})
	if err != nil {
		return err
	}
	defer f.Close()

	if factory == nil {
		return errors.New("program factory is nil")
	}
	prog := factory(f)
	if prog == nil {
		return errors.New("program is nil")
	}
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("run UI: %w", err)
	}

	if name := theme.CurrentName(); name != startTheme {
		if err := config.SaveTheme(name); err != nil {
			debug.Logf("save theme %s: %v", name, err)
		}
	}

	done, ok := final.(ui.Form)
	if !ok || !done.Submitted() {
		return nil
	}
	return writeValues(out, def, done.Store())
}

func openStore(path string) (form.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return form.NewMemoryStore(nil), nil
	}
	return form.NewDiskStore(path)
}

// collectValues reads every field key from store. Keys never written are
// omitted.
func collectValues(def form.Definition, store form.Store) map[string]any {
	values := make(map[string]any, len(def.Fields))
	for _, field := range def.Fields {
		if v, ok := store.Get(field.Key); ok {
			values[field.Key] = v
		}
	}
	return values
}

func writeValues(out io.Writer, def form.Definition, store form.Store) error {
	data, err := json.MarshalIndent(collectValues(def, store), "", "  ")
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
