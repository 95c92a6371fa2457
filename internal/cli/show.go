package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a document as a record",
		Long: `Print a YAML or JSON document as a record, keys in document order.

Examples:
  ordrec show packet.yaml
  ordrec show packet.yaml --describe
  ordrec show packet.yaml --shapes shapes.cue --shape Packet --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			docs, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(viewOf(docs[0]), renderRecord(docs[0], opts.Describe))
		},
	}

	addDocumentFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Describe, "describe", false, "show shape names and quoted strings")

	return cmd
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys <file>",
		Short: "List a document's keys in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			docs, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}
			keys := viewOf(docs[0]).Keys
			return formatter.Success(keys, strings.Join(keys, "\n"))
		},
	}

	addDocumentFlags(cmd, opts)

	return cmd
}
