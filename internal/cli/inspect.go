package cli

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tansive/tristate/internal/common/logtrace"
	"github.com/tansive/tristate/internal/mergepatch"
	"github.com/tansive/tristate/pkg/tristate"
)

// inspectResult is one line of inspect output. Value is left out of the JSON
// form when the path is absent and is null when the path holds null.
type inspectResult struct {
	Path  string                          `json:"path"`
	State string                          `json:"state"`
	Value tristate.Value[json.RawMessage] `json:"value,omitzero"`
}

func newInspectCmd() *cobra.Command {
	var (
		file      string
		expandEnv bool
	)
	cmd := &cobra.Command{
		Use:   "inspect -f FILE [PATH...]",
		Short: "Show whether paths of a document are absent, null or present",
		Long: `Show whether paths of a document are absent, null or present.

Paths use gjson syntax, e.g. spec.replicas or items.0.name. Without paths, the
top-level members of the document are listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, file, expandEnv)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				paths = topLevelPaths(doc)
			}

			results := make([]inspectResult, 0, len(paths))
			for _, path := range paths {
				v := tristate.Map(mergepatch.Lookup(doc, path), func(r gjson.Result) json.RawMessage {
					return json.RawMessage(r.Raw)
				})
				results = append(results, inspectResult{Path: path, State: v.State().String(), Value: v})
			}
			logger := logtrace.Logger(logtrace.WithOperation(cmd.Context(), "inspect"))
			logger.Debug().Int("paths", len(paths)).Msg("inspected document")

			if jsonOutput {
				return printJSON(cmd.OutOrStdout(), results)
			}
			return printInspect(cmd, results)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to inspect (JSON or YAML, - for stdin)")
	cmd.Flags().BoolVar(&expandEnv, "env", false, "Expand {{ .ENV.VAR }} placeholders in the input")
	cmd.MarkFlagRequired("file")
	return cmd
}

func topLevelPaths(doc []byte) []string {
	var paths []string
	for name := range mergepatch.Members(doc, "").UnwrapOrZero() {
		paths = append(paths, gjson.Escape(name))
	}
	slices.Sort(paths)
	return paths
}

var stateTitle = cases.Title(language.English)

func stateLabel(s tristate.State) *color.Color {
	switch s {
	case tristate.StatePresent:
		return okLabel
	case tristate.StateNull:
		return nullLabel
	default:
		return errorLabel
	}
}

func printInspect(cmd *cobra.Command, results []inspectResult) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range results {
		state := stateLabel(r.Value.State()).Sprint(stateTitle.String(r.State))
		raw := r.Value.UnwrapOrNullDefault(nil, json.RawMessage("null"))
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, state, raw)
	}
	if err := w.Flush(); err != nil {
		return ErrOutput.Err(err)
	}
	return nil
}
