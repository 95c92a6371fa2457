package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/ordrec/internal/compiler"
	"github.com/roach88/ordrec/internal/record"
)

// ErrShapeNotFound is returned by FindShape for an undeclared name.
var ErrShapeNotFound = errors.New("loader: shape not found")

// LoadShapes compiles the shapes declared in a CUE file.
func LoadShapes(path string) ([]*record.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shapes: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	schemas, err := compiler.CompileShapes(v)
	if err != nil {
		return nil, err
	}

	slog.Debug("shapes compiled", "path", path, "count", len(schemas))
	return schemas, nil
}

// FindShape returns the schema called name.
func FindShape(schemas []*record.Schema, name string) (*record.Schema, error) {
	for _, s := range schemas {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrShapeNotFound, name)
}

// Apply builds a record of the given shape seeded with doc. A nil schema
// returns a copy of doc.
func Apply(schema *record.Schema, doc *record.Record) (*record.Record, error) {
	if schema == nil {
		return doc.Copy(), nil
	}
	return schema.New(doc)
}
