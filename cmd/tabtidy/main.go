package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tabtidy/internal/config"
	"tabtidy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tabtidy",
	Short: "Formatter and linter for tabular test files",
	Long:  `Tabtidy aligns, splits, and checks tabular test suites (.robot/.resource files)`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
// If command execution returns an error, the process exits with status code 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per file")
	rootCmd.PersistentFlags().String("config", "", "explicit path to "+config.FileName)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		enabled, err := colorEnabled(mode)
		if err != nil {
			return err
		}
		color.NoColor = !enabled
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func colorEnabled(mode string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// loadConfig resolves the manifest: an explicit --config path wins, then the
// upward search from the working directory, then stock defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, ok, err := config.Find(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &config.Config{}, nil
	}
	return config.Load(path)
}
