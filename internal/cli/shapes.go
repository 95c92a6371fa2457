package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ordrec/internal/loader"
	"github.com/roach88/ordrec/internal/record"
)

// ShapeView is the JSON form of a compiled shape.
type ShapeView struct {
	Name   string      `json:"name"`
	Fields []FieldView `json:"fields"`
}

// FieldView is one declared key of a shape.
type FieldView struct {
	Name       string `json:"name"`
	Default    any    `json:"default,omitempty"`
	HasDefault bool   `json:"has_default"`
}

// NewShapesCommand creates the shapes command.
func NewShapesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shapes <file.cue>",
		Short: "List the shapes a CUE file declares",
		Long: `Compile the shapes declared under the top-level "shape" struct and list
their keys and defaults in declaration order.

Examples:
  ordrec shapes shapes.cue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			schemas, err := loader.LoadShapes(args[0])
			if err != nil {
				return formatter.Fail(err)
			}

			views := make([]ShapeView, len(schemas))
			var text strings.Builder
			for i, s := range schemas {
				views[i] = shapeView(s)
				fmt.Fprintln(&text, s.Name())
				for _, f := range s.Fields() {
					if f.HasDefault {
						def, err := record.ValueOf(f.Default)
						if err != nil {
							return formatter.Fail(err)
						}
						fmt.Fprintf(&text, "  %s = %s\n", f.Name, record.Format(def))
					} else {
						fmt.Fprintf(&text, "  %s\n", f.Name)
					}
				}
			}
			return formatter.Success(views, text.String())
		},
	}

	return cmd
}

func shapeView(s *record.Schema) ShapeView {
	fields := s.Fields()
	view := ShapeView{Name: s.Name(), Fields: make([]FieldView, len(fields))}
	for i, f := range fields {
		view.Fields[i] = FieldView{Name: f.Name, HasDefault: f.HasDefault}
		if f.HasDefault {
			if def, err := record.ValueOf(f.Default); err == nil {
				view.Fields[i].Default = record.Plain(def)
			}
		}
	}
	return view
}
