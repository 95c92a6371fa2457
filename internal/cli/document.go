package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ordrec/internal/loader"
	"github.com/roach88/ordrec/internal/record"
)

// DocumentOptions holds the flags shared by commands that read documents.
type DocumentOptions struct {
	*RootOptions
	Shapes   string // CUE file declaring shapes
	Shape    string // shape to build documents with
	Describe bool   // render with shape names and quoted strings
}

func addDocumentFlags(cmd *cobra.Command, opts *DocumentOptions) {
	cmd.Flags().StringVar(&opts.Shapes, "shapes", "", "CUE file declaring shapes")
	cmd.Flags().StringVar(&opts.Shape, "shape", "", "shape to apply (default: the only declared shape)")
}

// RecordView is the JSON form of a record: its plain values plus the key
// order JSON objects do not carry.
type RecordView struct {
	Shape  string         `json:"shape"`
	Keys   []string       `json:"keys"`
	Values map[string]any `json:"values"`
}

func viewOf(r *record.Record) RecordView {
	keys := r.KeyList()
	if keys == nil {
		keys = []string{}
	}
	return RecordView{Shape: r.Shape(), Keys: keys, Values: r.ToPlain()}
}

// loadDocuments reads each path and applies the selected shape, if any.
func loadDocuments(opts *DocumentOptions, formatter *OutputFormatter, paths ...string) ([]*record.Record, error) {
	var schema *record.Schema
	if opts.Shapes != "" {
		schemas, err := loader.LoadShapes(opts.Shapes)
		if err != nil {
			return nil, err
		}
		if schema, err = selectShape(schemas, opts.Shape); err != nil {
			return nil, err
		}
		formatter.VerboseLog("Using shape %s from %s", schema.Name(), opts.Shapes)
	} else if opts.Shape != "" {
		return nil, &argumentError{fmt.Errorf("--shape %s needs --shapes", opts.Shape)}
	}

	docs := make([]*record.Record, 0, len(paths))
	for _, path := range paths {
		doc, err := loader.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if doc, err = loader.Apply(schema, doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		formatter.VerboseLog("Loaded %s (%d keys)", path, doc.Len())
		docs = append(docs, doc)
	}
	return docs, nil
}

func selectShape(schemas []*record.Schema, name string) (*record.Schema, error) {
	if name != "" {
		return loader.FindShape(schemas, name)
	}
	if len(schemas) == 1 {
		return schemas[0], nil
	}
	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.Name()
	}
	return nil, &argumentError{fmt.Errorf("--shape is required, declared shapes: %s", strings.Join(names, ", "))}
}

// renderRecord is the text form used by show, at, slice and merge.
func renderRecord(r *record.Record, describe bool) string {
	if describe {
		return r.Describe()
	}
	return r.String()
}
