package anew

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type cli struct {
	cfg    *Config
	logger *slog.Logger
}

func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = NewLogger(cmd.ErrOrStderr(), ParseLevel(cfg.LogLevel))
	return nil
}

func (c *cli) app() (*App, error) {
	return NewApp(c.cfg, c.logger)
}

// logStack writes the stack of a recovered panic at debug level, so it shows
// with --verbose.
func (c *cli) logStack(err error) {
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		c.logger.Debug("recovered panic", "error", detailed.Err, "stack", string(detailed.Stack))
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *cli) completeTemplates(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	if err := c.load(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	app, err := c.app()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := app.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func NewCmdRoot() *cobra.Command {
	c := &cli{}
	var flags struct {
		interactive bool
		quiet       bool
		noAnimation bool
	}

	rootCmd := &cobra.Command{
		Use:   "anew NAME [DIRECTORY]",
		Short: "Create, list and apply personal file templates",
		Long: `anew stores named collections of files and directories under
~/.anew/templates and copies them into a directory on demand.

Example: anew create go-cli main.go go.mod && anew go-cli ./newproject`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		ValidArgsFunction: c.completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			var name, dir string
			switch {
			case flags.interactive:
				if len(args) > 1 {
					return fmt.Errorf("expected at most one DIRECTORY with --interactive")
				}
				names, err := app.List()
				if err != nil {
					return err
				}
				if name, err = PickTemplate(names); err != nil || name == "" {
					return err
				}
				if len(args) == 1 {
					dir = args[0]
				}
			case len(args) == 0:
				return fmt.Errorf("expected argument NAME\nnote: You must choose a template to apply")
			default:
				name = args[0]
				if len(args) == 2 {
					dir = args[1]
				}
			}
			if dir == "" {
				dir = "."
			}

			dest, err := app.PathResolver().Canonicalize(dir)
			if err != nil {
				return fmt.Errorf("destination directory file error: %w", err)
			}

			ui := NewTUI(app, cmd.ErrOrStderr(), flags.quiet || flags.noAnimation || !isTerminal(os.Stderr))
			summary, err := ui.Run("Applying", func() (Summary, error) {
				return app.Apply(name, dest)
			})
			c.logStack(err)
			if errors.Is(err, ErrTemplateNotFound) {
				return fmt.Errorf("%w\n(use 'anew dir' to list available templates)", err)
			}
			if err != nil {
				return err
			}

			ReloadOverwritten(summary, c.logger)
			if !flags.quiet {
				fmt.Fprint(cmd.OutOrStdout(), FormatSummary(summary, dest))
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("store", "", "Template store directory (default ~/.anew/templates)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Do not print a summary")
	rootCmd.PersistentFlags().BoolVar(&flags.noAnimation, "no-animation", false, "Disable spinner")
	rootCmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Choose the template to apply interactively")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(newCmdCreate(c, &flags.quiet, &flags.noAnimation))
	rootCmd.AddCommand(newCmdRemove(c))
	rootCmd.AddCommand(newCmdList(c))

	return rootCmd
}

func newCmdCreate(c *cli, quiet, noAnimation *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME [FILES...]",
		Short: "Create a new template",
		Long: `Create a new template from files or folders. FILES may be glob patterns.
Without FILES, paths are read one per line from piped stdin or the clipboard.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			name, patterns := args[0], args[1:]
			if err := ValidateName(name); err != nil {
				return err
			}
			if len(patterns) == 0 {
				if patterns, err = NewSourceProvider().GetPaths(); err != nil {
					return fmt.Errorf("failed to read file list: %w", err)
				}
			}
			if len(patterns) == 0 {
				return ErrEmptyFileSet
			}

			mode := app.DefaultMode()
			sources, err := app.PathResolver().ExpandSources(patterns, mode)
			if err != nil {
				return err
			}

			ui := NewTUI(app, cmd.ErrOrStderr(), *quiet || *noAnimation || !isTerminal(os.Stderr))
			summary, err := ui.Run("Creating", func() (Summary, error) {
				return app.Create(name, sources, mode)
			})
			c.logStack(err)
			if err != nil {
				return err
			}

			if !*quiet {
				base, _ := app.Store().Path(name)
				fmt.Fprint(cmd.OutOrStdout(), FormatSummary(summary, base))
			}
			return nil
		},
	}

	cmd.Flags().Bool("no-copy", false, "Don't create a copy of the files in the template (use a link instead)")
	return cmd
}

func newCmdRemove(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:               "remove NAME",
		Short:             "Remove a template",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeTemplates,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			removed, err := app.Remove(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Template does not exist: %s\n", args[0])
			}
			return nil
		},
	}
}

func newCmdList(c *cli) *cobra.Command {
	var flags struct {
		long bool
		json bool
	}

	cmd := &cobra.Command{
		Use:     "ls",
		Short:   "List available templates",
		Aliases: []string{"dir"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.app()
			if err != nil {
				return err
			}

			names, err := app.List()
			if err != nil {
				return err
			}

			if !flags.long && !flags.json {
				fmt.Fprint(cmd.OutOrStdout(), FormatTemplateList(names))
				return nil
			}

			infos := make([]TemplateInfo, 0, len(names))
			for _, n := range names {
				info, err := app.Info(n)
				if err != nil {
					c.logger.Warn("skipping unreadable template", "name", n, "error", err)
					continue
				}
				infos = append(infos, info)
			}

			if flags.json {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetEscapeHTML(false)
				if isatty.IsTerminal(os.Stdout.Fd()) {
					encoder.SetIndent("", "  ")
				}
				return encoder.Encode(infos)
			}

			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found")
				return nil
			}

			var printer tableprinter.TablePrinter
			if isatty.IsTerminal(os.Stdout.Fd()) {
				width, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					return fmt.Errorf("failed to get terminal size: %w", err)
				}
				printer = tableprinter.New(cmd.OutOrStdout(), true, width)
			} else {
				printer = tableprinter.New(cmd.OutOrStdout(), false, 0)
			}

			printer.AddHeader([]string{"Name", "Entries", "Description"})
			for _, info := range infos {
				printer.AddField(info.Name)
				printer.AddField(fmt.Sprintf("%d", info.Entries))
				printer.AddField(info.Description)
				printer.EndRow()
			}
			return printer.Render()
		},
	}

	cmd.Flags().BoolVarP(&flags.long, "long", "l", false, "Show entry counts and descriptions")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output as json")
	return cmd
}

func Execute() error {
	return NewCmdRoot().Execute()
}
