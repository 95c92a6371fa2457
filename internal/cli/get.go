package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/ordrec/internal/record"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print the value at a key or dot path",
		Long: `Print the value at a key or a dot path (meta.owner.name). A missing
key is reported with exit code 1; nothing is inserted.

Examples:
  ordrec get packet.yaml a
  ordrec get packet.yaml pay_load.src`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			docs, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			v, ok := docs[0].GetPath(args[1])
			if !ok {
				return formatter.Fail(&record.KeyError{Op: "get", Key: args[1], Err: record.ErrKeyNotFound})
			}
			return formatter.Success(record.Plain(v), record.Format(v))
		},
	}

	addDocumentFlags(cmd, opts)

	return cmd
}
