package gen

import (
	"fmt"
	"strings"
)

// emitEntity generates everything one entity contributes to the bindings
// file: holder types for the fields it introduces and, when the entity is
// concrete, its marker type, default constructor and query/update binding.
func (g *Generator) emitEntity(id string) error {
	re, err := ResolveInheritance(g.dump, g.maps, id)
	if err != nil {
		return err
	}

	if err := g.emitHolders(re); err != nil {
		return err
	}
	if strings.HasPrefix(id, "~") {
		// Abstract entities only exist to share fields with descendants.
		return nil
	}
	if err := g.emitDefaultConstructor(re); err != nil {
		return err
	}
	return g.emitQueryBinding(re)
}

// emitHolders writes one single-value component type per field the chain
// introduces, one boolean type per bitfield bit. The emitted-symbol set
// keyed on (spec, defining entity) guarantees a holder shared through
// inheritance is only ever written once; imported-once types get none.
func (g *Generator) emitHolders(re *ResolvedEntity) error {
	for _, f := range re.Fields {
		key := f.Spec.Key() + f.Owner
		if g.emitted[key] {
			continue
		}
		g.emitted[key] = true

		if f.Spec.IsBitfield() {
			for _, b := range f.Spec.Bits {
				name := g.renames.Apply(f.Owner, b.Name)
				fmt.Fprintf(&g.buf, "type %s struct{ Value bool }\n\n", toCamel(name))
			}
			continue
		}
		if importedOnce[f.Spec.Name] {
			continue
		}
		t, err := re.TypeAt(f.Index)
		if err != nil {
			return err
		}
		name := g.renames.Apply(f.Owner, f.Spec.Name)
		fmt.Fprintf(&g.buf, "type %s struct{ Value %s }\n\n", toCamel(name), t.GoType)
	}
	return nil
}

// emitDefaultConstructor writes the marker type and the Default method that
// assembles a fresh entity with every inherited and own field initialized
// to its synthesized default.
func (g *Generator) emitDefaultConstructor(re *ResolvedEntity) error {
	marker := markerName(re.ID)
	fmt.Fprintf(&g.buf, "type %s struct{}\n\n", marker)
	fmt.Fprintf(&g.buf, "func (%s) Default(b *ecs.EntityBuilder) ecs.Entity {\n", marker)

	for _, f := range re.Fields {
		raw, ok := re.RawAt(f.Index)
		if !ok {
			return fmt.Errorf("entity %q: no raw metadata for index %d", re.ID, f.Index)
		}
		if f.Spec.IsBitfield() {
			for _, b := range f.Spec.Bits {
				name := g.renames.Apply(f.Owner, b.Name)
				fmt.Fprintf(&g.buf, "\tb.Add(%s{%s})\n", toCamel(name), bitDefault(raw.Default, b.Mask))
			}
			continue
		}
		t, err := ResolveType(raw.SerializerID)
		if err != nil {
			return err
		}
		name := g.renames.Apply(f.Owner, f.Spec.Name)
		lit := synthesizeDefault(t, raw.Default)
		if importedOnce[name] {
			fmt.Fprintf(&g.buf, "\tb.Add(%s)\n", lit)
		} else {
			fmt.Fprintf(&g.buf, "\tb.Add(%s{%s})\n", toCamel(name), lit)
		}
	}

	g.buf.WriteString("\treturn b.Build()\n}\n\n")
	return nil
}

// emitQueryBinding writes the aggregate query struct over every holder the
// entity's chain declares, plus the updateMetadata method that dispatches
// an update batch on metadata index.
func (g *Generator) emitQueryBinding(re *ResolvedEntity) error {
	qn := queryName(re.ID)

	fmt.Fprintf(&g.buf, "type %s struct {\n", qn)
	for _, f := range re.Fields {
		if f.Spec.IsBitfield() {
			for _, b := range f.Spec.Bits {
				name := g.renames.Apply(f.Owner, b.Name)
				fmt.Fprintf(&g.buf, "\t%s *%s\n", toLowerCamel(name), toCamel(name))
			}
			continue
		}
		name := g.renames.Apply(f.Owner, f.Spec.Name)
		if importedOnce[name] {
			t, err := re.TypeAt(f.Index)
			if err != nil {
				return err
			}
			fmt.Fprintf(&g.buf, "\t%s *%s\n", toLowerCamel(name), t.GoType)
		} else {
			fmt.Fprintf(&g.buf, "\t%s *%s\n", toLowerCamel(name), toCamel(name))
		}
	}
	g.buf.WriteString("}\n\n")

	fmt.Fprintf(&g.buf, "func (q *%s) updateMetadata(data EntityMetadataItems) error {\n", qn)
	g.buf.WriteString("\tfor _, d := range data {\n")
	g.buf.WriteString("\t\tswitch d.Index {\n")
	for _, f := range re.Fields {
		fmt.Fprintf(&g.buf, "\t\tcase %d:\n", f.Index)
		if f.Spec.IsBitfield() {
			g.buf.WriteString("\t\t\tbits, err := d.Value.IntoByte()\n")
			g.buf.WriteString("\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			for _, b := range f.Spec.Bits {
				name := g.renames.Apply(f.Owner, b.Name)
				fmt.Fprintf(&g.buf, "\t\t\t*q.%s = %s{bits&%#x != 0}\n",
					toLowerCamel(name), toCamel(name), b.Mask)
			}
			continue
		}
		t, err := re.TypeAt(f.Index)
		if err != nil {
			return err
		}
		name := g.renames.Apply(f.Owner, f.Spec.Name)
		fmt.Fprintf(&g.buf, "\t\t\tv, err := d.Value.%s()\n", t.IntoMethod())
		g.buf.WriteString("\t\t\tif err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		if importedOnce[name] {
			fmt.Fprintf(&g.buf, "\t\t\t*q.%s = v\n", toLowerCamel(name))
		} else {
			fmt.Fprintf(&g.buf, "\t\t\t*q.%s = %s{v}\n", toLowerCamel(name), toCamel(name))
		}
	}
	g.buf.WriteString("\t\t}\n\t}\n\treturn nil\n}\n\n")
	return nil
}
