package csfix

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type CLIConfig struct {
	Extensions  []string
	Passes      []string
	RulesFile   string
	Diff        bool
	Clipboard   bool
	NoAnimation bool
	Verbose     bool
	Completion  string
	ReportCopy  bool
}

var cfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "csfix [flags] [path]",
	Short: "Rewrite C# sources to satisfy style analyzers.",
	Long: `Rewrite C# sources in place: brace single-statement blocks, add trailing
commas before closing brackets, separate members with blank lines and retire
stale identifiers.

Example: csfix -e cs src/Gateway`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Completion != "" {
			return handleCompletion(cmd)
		}

		setupLogging()
		normalizeExtensions()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if cfg.Clipboard && path != "" {
			return fmt.Errorf("error: --clipboard and a path are mutually exclusive")
		}
		if path == "" && !cfg.Clipboard {
			if !stdinIsPiped() {
				return fmt.Errorf("no path given (pass a file, a directory, or - for stdin)")
			}
			path = "-"
		}

		appCfg := &Config{
			Path:       path,
			Extensions: cfg.Extensions,
			Passes:     cfg.Passes,
			RulesFile:  cfg.RulesFile,
			Diff:       cfg.Diff,
			Clipboard:  cfg.Clipboard,
		}

		app, err := NewApp(appCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if path == "-" || cfg.Diff {
			_, err := app.Execute()
			return err
		}

		ui := NewTUI(app, cfg.NoAnimation || stdinIsPiped())
		return ui.Run()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <results.trx>",
	Short: "Summarize the failures in a test results file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		summary, err := ParseReport(args[0])
		if err != nil {
			return err
		}

		out := FormatReport(summary)
		if cfg.ReportCopy {
			if err := clipboard.WriteAll(out); err != nil {
				return fmt.Errorf("could not copy summary to clipboard: %w", err)
			}
		}
		fmt.Print(out)
		return nil
	},
}

func handleCompletion(cmd *cobra.Command) error {
	switch cfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cfg.Completion)
	}
}

func normalizeExtensions() {
	for i, ext := range cfg.Extensions {
		if len(ext) > 0 && ext[0] != '.' {
			cfg.Extensions[i] = "." + ext
		}
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Completion, "completion", "", "Generate completion script")
	rootCmd.Flags().StringSliceVarP(&cfg.Extensions, "extension", "e", []string{".cs"}, "File extensions to rewrite")
	rootCmd.Flags().StringSliceVarP(&cfg.Passes, "pass", "p", []string{}, "Run only the named passes (rename, brace, comma, blank)")
	rootCmd.Flags().StringVarP(&cfg.RulesFile, "rules", "r", "", "Rule table replacing the built-in renames")
	rootCmd.Flags().BoolVarP(&cfg.Diff, "diff", "d", false, "Print unified diffs instead of writing")
	rootCmd.Flags().BoolVar(&cfg.Clipboard, "clipboard", false, "Rewrite the clipboard instead of files")
	rootCmd.Flags().BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable spinner")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")

	reportCmd.Flags().BoolVar(&cfg.ReportCopy, "copy", false, "Copy the summary to the clipboard")
	rootCmd.AddCommand(reportCmd)

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
