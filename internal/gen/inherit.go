package gen

import (
	"errors"
	"fmt"

	"github.com/minefarer/metagen/internal/schema"
)

// ErrIndexGap aborts generation when the indices collected across an
// entity's parent chain are not contiguous from zero. The dump and the
// generator's tables have drifted out of sync; nothing emitted from such a
// schema can be trusted.
var ErrIndexGap = errors.New("non-contiguous metadata index")

// FlatField is one entry of a flattened inheritance chain: the field spec
// at a metadata index together with the entity that introduced it.
type FlatField struct {
	Index int
	Spec  schema.FieldSpec
	Owner string
}

// ResolvedEntity is the root-first flattening of one entity's full parent
// chain, plus the concatenated raw attribute records used to look up the
// serializer and default per index.
type ResolvedEntity struct {
	ID     string
	Fields []FlatField
	Raw    []schema.RawAttr
}

// ResolveInheritance walks the parent chain of the given entity and
// flattens the per-entity field specs into declaration order. Each spec's
// position in the flat list must equal its declared metadata index.
func ResolveInheritance(d *schema.Dump, m *schema.Mappings, id string) (*ResolvedEntity, error) {
	chain, err := d.ParentChain(id)
	if err != nil {
		return nil, err
	}

	re := &ResolvedEntity{ID: id}
	for i := len(chain) - 1; i >= 0; i-- {
		e, ok := d.Entity(chain[i])
		if !ok {
			return nil, fmt.Errorf("unknown entity %q", chain[i])
		}
		specs := e.FieldSpecs(m)
		for _, idx := range schema.Indices(specs) {
			if idx != len(re.Fields) {
				return nil, fmt.Errorf("%w: entity %q declares index %d, expected %d",
					ErrIndexGap, e.ID, idx, len(re.Fields))
			}
			re.Fields = append(re.Fields, FlatField{Index: idx, Spec: specs[idx], Owner: e.ID})
		}
		re.Raw = append(re.Raw, e.RawMetadata()...)
	}
	return re, nil
}

// RawAt returns the first raw attribute record declared for the index.
func (re *ResolvedEntity) RawAt(index int) (schema.RawAttr, bool) {
	for _, a := range re.Raw {
		if a.Index == index {
			return a, true
		}
	}
	return schema.RawAttr{}, false
}

// TypeAt resolves the semantic type declared for the index.
func (re *ResolvedEntity) TypeAt(index int) (SemanticType, error) {
	a, ok := re.RawAt(index)
	if !ok {
		return SemanticType{}, fmt.Errorf("entity %q: no raw metadata for index %d", re.ID, index)
	}
	return ResolveType(a.SerializerID)
}
