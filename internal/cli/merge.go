package cli

import (
	"github.com/spf13/cobra"
)

// NewMergeCommand creates the merge command.
func NewMergeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "merge <file> <file>...",
		Short: "Join documents left to right",
		Long: `Join documents left to right. Later documents overwrite values of keys
already present without moving them; new keys are appended in their
document order. The shape, if any, applies to the first document.

Examples:
  ordrec merge base.yaml override.yaml
  ordrec merge base.yaml a.yaml b.yaml --format json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			first, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			rest, err := loadDocuments(&DocumentOptions{RootOptions: opts.RootOptions}, formatter, args[1:]...)
			if err != nil {
				return formatter.Fail(err)
			}

			merged := first[0]
			for _, doc := range rest {
				merged.Join(doc)
			}
			return formatter.Success(viewOf(merged), renderRecord(merged, opts.Describe))
		},
	}

	addDocumentFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Describe, "describe", false, "show shape names and quoted strings")

	return cmd
}
