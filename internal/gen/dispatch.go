package gen

import (
	"fmt"
	"strings"
)

// emitDispatcher writes the single top-level router. Concrete entities are
// tried in declaration order; the first whose query matches the entity
// consumes the whole batch. An entity matching no binding is not an error
// here, unknown kinds are filtered upstream.
func (g *Generator) emitDispatcher() {
	g.buf.WriteString("// UpdateMetadata applies a metadata update batch to whichever concrete\n")
	g.buf.WriteString("// entity binding matches the given entity.\n")
	g.buf.WriteString("func UpdateMetadata(w *ecs.World, e ecs.Entity, data EntityMetadataItems) error {\n")
	for _, ent := range g.dump.Entities {
		if strings.HasPrefix(ent.ID, "~") {
			continue
		}
		fmt.Fprintf(&g.buf, "\tif q, ok := ecs.QueryOne[%s](w, e); ok {\n", queryName(ent.ID))
		g.buf.WriteString("\t\treturn q.updateMetadata(data)\n\t}\n")
	}
	g.buf.WriteString("\treturn nil\n}\n")
}
