// Package schema holds the input side of the generator: the Burger-style
// entity dump and the ProGuard name mappings that deobfuscate it.
package schema

import (
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
)

// Dump is a parsed Burger entity dump. Entities keeps the declaration order
// of the source document; generation and dispatch order both follow it.
type Dump struct {
	Entities []*Entity

	byID map[string]*Entity
}

// Entity is one entity record from the dump. IDs starting with '~' mark
// abstract entities that only exist to share metadata with descendants.
type Entity struct {
	ID       string
	Metadata []MetadataItem
}

// MetadataItem is one class block of an entity's metadata listing.
type MetadataItem struct {
	Class     string      `json:"class"`
	Entity    string      `json:"entity"`
	Data      []Attribute `json:"data"`
	Bitfields []Bitfield  `json:"bitfields"`
}

// Attribute is a single replicated field declaration.
// Default is nil when the dump carries no default for the field.
type Attribute struct {
	Index        int    `json:"index"`
	Serializer   string `json:"serializer"`
	SerializerID int    `json:"serializer_id"`
	Field        string `json:"field"`
	Default      any    `json:"default"`
}

// Bitfield is one boolean bit inside a byte-typed metadata slot. Class is
// empty when the accessor lives on the same class as the slot itself.
type Bitfield struct {
	Class  string `json:"class"`
	Method string `json:"method"`
	Mask   int    `json:"mask"`
}

type entityRecord struct {
	Metadata []MetadataItem `json:"metadata"`
}

// NewDump builds a dump from already-constructed entities, keeping their
// order as declaration order.
func NewDump(entities ...*Entity) *Dump {
	d := &Dump{byID: make(map[string]*Entity, len(entities))}
	for _, e := range entities {
		d.Entities = append(d.Entities, e)
		d.byID[e.ID] = e
	}
	return d
}

// LoadDump reads and decodes a Burger entity dump. The top-level object is
// token-decoded so that entity order survives; unmarshalling into a map
// would shuffle it and break output determinism.
func LoadDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	d := &Dump{byID: make(map[string]*Entity)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read dump: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read dump: unexpected token %v", tok)
		}
		var rec entityRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode entity %q: %w", id, err)
		}
		e := &Entity{ID: id, Metadata: rec.Metadata}
		d.Entities = append(d.Entities, e)
		d.byID[id] = e
	}
	return d, nil
}

// Entity returns the entity with the given id.
func (d *Dump) Entity(id string) (*Entity, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// ParentChain returns the ids from the entity itself up to the root of its
// inheritance chain, self first.
func (d *Dump) ParentChain(id string) ([]string, error) {
	var chain []string
	for id != "" {
		e, ok := d.byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown entity %q in parent chain", id)
		}
		chain = append(chain, id)
		id = e.Parent()
	}
	return chain, nil
}

// Parent returns the id of the parent entity, or "" for a root.
func (e *Entity) Parent() string {
	if len(e.Metadata) == 0 {
		return ""
	}
	return e.Metadata[0].Entity
}

// RawAttr is the per-index record used to look up type and default during
// emission.
type RawAttr struct {
	Index        int
	SerializerID int
	Default      any
}

// RawMetadata flattens the entity's own attribute records.
func (e *Entity) RawMetadata() []RawAttr {
	var attrs []RawAttr
	for _, item := range e.Metadata {
		for _, a := range item.Data {
			attrs = append(attrs, RawAttr{
				Index:        a.Index,
				SerializerID: a.SerializerID,
				Default:      a.Default,
			})
		}
	}
	return attrs
}

// Bit is one named bit of a decomposed bitfield.
type Bit struct {
	Mask int
	Name string
}

// FieldSpec is either a plain named field or a bitfield decomposed into
// named bits. Exactly one of Name and Bits is set.
type FieldSpec struct {
	Name string
	Bits []Bit
}

// IsBitfield reports whether the spec is a decomposed bitfield.
func (s FieldSpec) IsBitfield() bool { return s.Bits != nil }

// Key returns a stable identity for the spec, used to deduplicate holder
// emission across entities that inherit the same field.
func (s FieldSpec) Key() string {
	if !s.IsBitfield() {
		return s.Name
	}
	k := "bits"
	for _, b := range s.Bits {
		k += fmt.Sprintf("[%#x:%s]", b.Mask, b.Name)
	}
	return k
}

// FieldSpecs resolves the entity's own metadata names through the mappings
// and returns them by metadata index. A class block that declares bitfield
// accessors has its first byte-typed slot replaced by the decomposed
// bitfield, matching how the client packs those booleans.
func (e *Entity) FieldSpecs(m *Mappings) map[int]FieldSpec {
	specs := make(map[int]FieldSpec)
	for _, item := range e.Metadata {
		if len(item.Data) == 0 {
			continue
		}
		firstByteIndex := -1
		for _, a := range item.Data {
			name := PrettifyField(m.Field(item.Class, a.Field))
			specs[a.Index] = FieldSpec{Name: name}
			if a.Serializer == "Byte" && firstByteIndex < 0 {
				firstByteIndex = a.Index
			}
		}
		if len(item.Bitfields) == 0 || firstByteIndex < 0 {
			continue
		}
		bits := make([]Bit, 0, len(item.Bitfields))
		for _, bf := range item.Bitfields {
			class := bf.Class
			if class == "" {
				class = item.Class
			}
			name := PrettifyMethod(m.Method(class, bf.Method))
			bits = append(bits, Bit{Mask: bf.Mask, Name: name})
		}
		specs[firstByteIndex] = FieldSpec{Bits: bits}
	}
	return specs
}

// Indices returns the sorted metadata indices of a FieldSpecs result.
func Indices(specs map[int]FieldSpec) []int {
	idx := make([]int, 0, len(specs))
	for i := range specs {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
