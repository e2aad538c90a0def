package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/minefarer/metagen/internal/schema"
)

// runtimeModule is the client module the generated bindings live in and
// import their value types from.
const runtimeModule = "github.com/minefarer/emerald"

// Generator is the per-run emission context: output buffer, rename map and
// the set of already-emitted holder symbols. A fresh Generator is built for
// every run and discarded with it; no state crosses runs.
type Generator struct {
	dump    *schema.Dump
	maps    *schema.Mappings
	pkg     string
	renames RenameMap
	emitted map[string]bool
	buf     bytes.Buffer
}

// Generate runs the full pipeline over the dump and returns the formatted
// source of the bindings file. A run either produces the complete artifact
// or fails; there is no partial output.
func Generate(d *schema.Dump, m *schema.Mappings, pkg string) ([]byte, error) {
	g := &Generator{
		dump:    d,
		maps:    m,
		pkg:     pkg,
		emitted: make(map[string]bool),
	}

	renames, err := ResolveNames(d, m)
	if err != nil {
		return nil, err
	}
	g.renames = renames

	g.writePreamble()
	for _, e := range d.Entities {
		if err := g.emitEntity(e.ID); err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.ID, err)
		}
	}
	g.emitDispatcher()

	src, err := format.Source(g.buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

func (g *Generator) writePreamble() {
	fmt.Fprintf(&g.buf, "// Code generated by metagen. DO NOT EDIT.\n\npackage %s\n\n", g.pkg)
	fmt.Fprintf(&g.buf, `import (
	"fmt"

	"github.com/google/uuid"

	"%[1]s/block"
	"%[1]s/chat"
	"%[1]s/core"
	"%[1]s/ecs"
	"%[1]s/nbt"
	"%[1]s/registry"
)

// WrongTypeError reports a metadata value whose wire type does not match
// the type declared for its index.
type WrongTypeError struct {
	Value EntityDataValue
}

func (e WrongTypeError) Error() string {
	return fmt.Sprintf("wrong type (%%v)", e.Value)
}

`, runtimeModule)
}

// markerName is the exported name of a concrete entity's marker type.
func markerName(id string) string {
	return toCamel(strings.Trim(id, "~"))
}

// queryName is the unexported name of an entity's aggregate query struct.
func queryName(id string) string {
	return toLowerCamel(strings.Trim(id, "~")) + "Query"
}
