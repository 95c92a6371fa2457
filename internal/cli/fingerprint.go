package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FingerprintResult is one document's content fingerprint.
type FingerprintResult struct {
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
}

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DocumentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fingerprint <file>...",
		Short: "Print content fingerprints of documents",
		Long: `Print a SHA-256 fingerprint of each document's canonical form. Key
order does not affect the fingerprint, so documents that compare equal
share one.

Examples:
  ordrec fingerprint a.yaml b.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			docs, err := loadDocuments(opts, formatter, args...)
			if err != nil {
				return formatter.Fail(err)
			}

			results := make([]FingerprintResult, len(docs))
			var text strings.Builder
			for i, doc := range docs {
				fp, err := doc.Fingerprint()
				if err != nil {
					return formatter.Fail(fmt.Errorf("%s: %w", args[i], err))
				}
				results[i] = FingerprintResult{Path: args[i], Fingerprint: fp}
				fmt.Fprintf(&text, "%s  %s\n", fp, args[i])
			}
			return formatter.Success(results, text.String())
		},
	}

	addDocumentFlags(cmd, opts)

	return cmd
}
