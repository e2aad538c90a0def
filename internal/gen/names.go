package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minefarer/metagen/internal/schema"
)

// ErrImportedTypeCollision aborts generation when a field backed by an
// imported-once type shows up in more than one entity. That configuration
// would need a generated holder for a type the bindings import directly, so
// the catalog must be reworked by hand first.
var ErrImportedTypeCollision = errors.New("imported-once type used by multiple entities")

// RenameMap holds, per entity, the disambiguated spelling of every field
// name that collides across entity boundaries. Built once per run and
// read-only afterwards.
type RenameMap map[string]map[string]string

// Apply returns the output spelling of a field introduced by the given
// entity.
func (r RenameMap) Apply(entityID, name string) string {
	if renamed, ok := r[entityID][name]; ok {
		return renamed
	}
	return name
}

// normalizeName rewrites the reserved identifier "type" to "kind". This
// happens before collision checking so that the rewrite applies whether or
// not the name is duplicated.
func normalizeName(name string) string {
	if name == "type" {
		return "kind"
	}
	return name
}

// ResolveNames scans the whole dump for field names that appear in more
// than one entity (entity ids share the namespace and always force a
// rename) and assigns each collider its `{entity}_{field}` spelling. The
// name "type" is rewritten to "kind" first; it is reserved in the output
// language.
func ResolveNames(d *schema.Dump, m *schema.Mappings) (RenameMap, error) {
	seen := make(map[string]bool)
	duplicate := make(map[string]bool)

	mark := func(name string) {
		name = normalizeName(name)
		if seen[name] {
			duplicate[name] = true
		} else {
			seen[name] = true
		}
	}

	for _, e := range d.Entities {
		specs := e.FieldSpecs(m)
		for _, idx := range schema.Indices(specs) {
			spec := specs[idx]
			if spec.IsBitfield() {
				for _, b := range spec.Bits {
					mark(b.Name)
				}
			} else {
				mark(spec.Name)
			}
		}
		// Entity ids count as taken names so that a same-named field is
		// always disambiguated away from the marker type.
		duplicate[e.ID] = true
	}

	for name := range importedOnce {
		if duplicate[name] {
			return nil, fmt.Errorf("%w: %s", ErrImportedTypeCollision, name)
		}
	}

	renames := make(RenameMap, len(d.Entities))
	for _, e := range d.Entities {
		renames[e.ID] = make(map[string]string)
		stripped := strings.Trim(e.ID, "~")
		assign := func(name string) {
			newName := normalizeName(name)
			if duplicate[newName] {
				renames[e.ID][name] = stripped + "_" + newName
			} else if newName != name {
				renames[e.ID][name] = newName
			}
		}
		specs := e.FieldSpecs(m)
		for _, idx := range schema.Indices(specs) {
			spec := specs[idx]
			if spec.IsBitfield() {
				for _, b := range spec.Bits {
					assign(b.Name)
				}
			} else {
				assign(spec.Name)
			}
		}
	}
	return renames, nil
}
