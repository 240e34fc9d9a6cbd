package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tansive/tristate/internal/cli/config"
	"github.com/tansive/tristate/internal/common/apperrors"
	"github.com/tansive/tristate/internal/common/logtrace"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	logLevel   string
	noColor    bool

	cfg *config.Config
)

var okLabel = color.New(color.FgGreen)
var nullLabel = color.New(color.FgYellow)
var errorLabel = color.New(color.FgRed)

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tristate [command] [flags]",
		Short: "Inspect, patch and diff JSON documents with absent, null and present values",
		Long: `tristate works with partial updates where a missing member, an explicit null
and a value mean three different things.

Documents and patches are read as JSON or YAML (multi-document YAML patches are
applied in order). Use "-" to read from standard input.

Examples:
  # Show the state of members of a document
  tristate inspect -f service.json spec.replicas spec.owner

  # Apply a JSON merge patch and validate the result
  tristate patch -f service.json -p change.yaml --schema service.schema.json

  # Compute the merge patch between two documents
  tristate diff -f before.json -t after.json

  # Render the UPDATE statement for a patch
  tristate sql --table services --where id=7 -p change.json`,
		PersistentPreRunE: preRunHandlePersistents,
		SilenceErrors:     true, // Prevent Cobra from printing the error
		SilenceUsage:      true, // Prevent Cobra from printing usage on error
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return ErrUsage.Err(err)
	})

	// Set up persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&noColor, "no-color", "", false, "Disable colored output")

	// Add commands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newSQLCmd())
	return rootCmd
}

// Execute runs the CLI and exits with the exit code carried by the error,
// if any. This is called by main.main().
func Execute() {
	err := newRootCmd().Execute()
	if err == nil {
		return
	}
	if jsonOutput {
		printJSON(os.Stdout, map[string]string{
			"error":  err.Error(),
			"detail": apperrors.Detail(err),
		})
	} else {
		errorLabel.Fprintf(os.Stderr, "Error: %v\n", apperrors.Detail(err))
	}
	os.Exit(apperrors.ExitCode(err))
}

// preRunHandlePersistents loads the configuration and sets up logging and
// colors before a command runs.
func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		cfg = &config.Config{}
	} else {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return err
		}
	}

	level := logLevel
	if level == "" {
		level = cfg.LogLevel.UnwrapOr("warn")
	}
	if err := logtrace.InitLogger(level); err != nil {
		return ErrUsage.Err(err)
	}

	cmd.SetContext(logtrace.WithRun(cmd.Context()))

	if noColor || cfg.Color.IsPresentAnd(func(enabled bool) bool { return !enabled }) {
		color.NoColor = true
	}
	return nil
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tristate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := configFile
			if configPath == "" {
				var err error
				if configPath, err = config.DefaultPath(); err != nil {
					configPath = "unknown"
				}
			}

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"version":        Version,
					"config_file":    configPath,
					"config_version": config.FormatVersion,
				})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "tristate %s\n", Version)
			fmt.Fprintf(w, "Config file: %s (format %s)\n", configPath, config.FormatVersion)
			return nil
		},
	}
}

// Version is the CLI version.
const Version = "v0.1.0"

// printJSON writes data to w as indented JSON
func printJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return ErrOutput.Err(err)
	}
	return nil
}
