package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/ordrec/internal/record"
)

// NewAtCommand creates the at command.
func NewAtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "at <file> <index>",
		Short: "Print the entry at a position",
		Long: `Print the single entry at a position. Negative positions count from
the end; put them after -- so they are not read as flags.

Examples:
  ordrec at packet.yaml 0
  ordrec at packet.yaml -- -1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return formatter.Fail(&argumentError{fmt.Errorf("index %q: %w", args[1], err)})
			}

			docs, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			entry, err := docs[0].At(index)
			if err != nil {
				return formatter.Fail(err)
			}
			return formatter.Success(viewOf(entry), renderRecord(entry, opts.Describe))
		},
	}

	addDocumentFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Describe, "describe", false, "show shape names and quoted strings")

	return cmd
}

// NewSliceCommand creates the slice command.
func NewSliceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "slice <file> <start:stop[:step]>",
		Short: "Print the entries a slice selects",
		Long: `Print a new record holding the entries selected by a start:stop[:step]
slice, in slice order. Omitted bounds cover the full extent; out-of-range
bounds are clamped, so a slice never fails on a valid range.

Examples:
  ordrec slice packet.yaml 1:3
  ordrec slice packet.yaml ::-1
  ordrec slice packet.yaml -- -2:`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			rg, err := record.ParseRange(args[1])
			if err != nil {
				return formatter.Fail(&argumentError{err})
			}

			docs, err := loadDocuments(opts, formatter, args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			out := docs[0].Slice(rg)
			return formatter.Success(viewOf(out), renderRecord(out, opts.Describe))
		},
	}

	addDocumentFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.Describe, "describe", false, "show shape names and quoted strings")

	return cmd
}
