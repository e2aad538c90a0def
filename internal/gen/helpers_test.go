package gen

import "github.com/minefarer/metagen/internal/schema"

// testEntity builds a single-block entity record in the shape the dump
// loader produces. Field names pass through the empty mappings untouched
// except for prettifying, so readable names can be used directly.
func testEntity(id, parent string, attrs []schema.Attribute, bits []schema.Bitfield) *schema.Entity {
	return &schema.Entity{
		ID: id,
		Metadata: []schema.MetadataItem{{
			Class:     id + ".class",
			Entity:    parent,
			Data:      attrs,
			Bitfields: bits,
		}},
	}
}

func testAttr(index, serializerID int, field string, def any) schema.Attribute {
	return schema.Attribute{
		Index:        index,
		Serializer:   metadataTypes[serializerID].Name,
		SerializerID: serializerID,
		Field:        field,
		Default:      def,
	}
}
