package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansive/tristate/internal/common/logtrace"
	"github.com/tansive/tristate/internal/mergepatch"
)

func newPatchCmd() *cobra.Command {
	var (
		file      string
		patchFile string
		schema    string
		canonical bool
		expandEnv bool
	)
	cmd := &cobra.Command{
		Use:   "patch -f FILE -p PATCH [--schema SCHEMA] [--canonical]",
		Short: "Apply a JSON merge patch to a document",
		Long: `Apply a JSON merge patch (RFC 7396) to a document.

Members left out of the patch keep their value, null members are removed and
any other member replaces the target. A multi-document YAML patch file applies
each document in order. With --schema the result must validate against the
given JSON schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logtrace.Logger(logtrace.WithOperation(cmd.Context(), "patch"))

			doc, err := readDocument(cmd, file, expandEnv)
			if err != nil {
				return err
			}
			patches, err := readDocuments(cmd, patchFile, expandEnv)
			if err != nil {
				return err
			}
			for i, p := range patches {
				if doc, err = mergepatch.Apply(doc, p); err != nil {
					return err
				}
				logger.Debug().Int("patch", i).Msg("applied merge patch")
			}

			if schema != "" {
				s, err := readInput(cmd, schema, false)
				if err != nil {
					return err
				}
				if err := mergepatch.Validate(doc, s); err != nil {
					return err
				}
			}
			if canonical {
				if doc, err = mergepatch.Canonical(doc); err != nil {
					return err
				}
			}
			return writeDocument(cmd, doc)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to patch (JSON or YAML, - for stdin)")
	cmd.Flags().StringVarP(&patchFile, "patch", "p", "", "Merge patch to apply (JSON or YAML)")
	cmd.Flags().StringVar(&schema, "schema", "", "JSON schema the patched document must satisfy")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Print the result in canonical JSON form (RFC 8785)")
	cmd.Flags().BoolVar(&expandEnv, "env", false, "Expand {{ .ENV.VAR }} placeholders in the inputs")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("patch")
	return cmd
}

func newDiffCmd() *cobra.Command {
	var (
		from      string
		to        string
		expandEnv bool
	)
	cmd := &cobra.Command{
		Use:   "diff -f FROM -t TO",
		Short: "Print the JSON merge patch that turns one document into another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := readDocument(cmd, from, expandEnv)
			if err != nil {
				return err
			}
			modified, err := readDocument(cmd, to, expandEnv)
			if err != nil {
				return err
			}
			patch, err := mergepatch.Diff(original, modified)
			if err != nil {
				return err
			}
			return writeDocument(cmd, patch)
		},
	}
	cmd.Flags().StringVarP(&from, "file", "f", "", "Original document (JSON or YAML)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Modified document (JSON or YAML)")
	cmd.Flags().BoolVar(&expandEnv, "env", false, "Expand {{ .ENV.VAR }} placeholders in the inputs")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("to")
	return cmd
}

func writeDocument(cmd *cobra.Command, doc []byte) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", doc); err != nil {
		return ErrOutput.Err(err)
	}
	return nil
}
