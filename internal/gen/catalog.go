// Package gen is the resolution-and-emission engine: it flattens entity
// inheritance, deduplicates colliding field names, synthesizes default
// values and emits the metadata bindings consumed by the client runtime.
package gen

import (
	"errors"
	"fmt"
)

// ErrUnknownSerializer is returned when the dump references a serializer id
// outside the hand-maintained catalog. The catalog has to be extended before
// anything can be generated for such a type.
var ErrUnknownSerializer = errors.New("unknown serializer")

// SemanticType is one entry of the closed serializer catalog.
type SemanticType struct {
	// Name is the wire-type name; the conversion method on EntityDataValue
	// is derived from it ("Into" + Name).
	Name string
	// GoType is the representation in the generated bindings.
	GoType string
	// Zero is the generic default literal for the representation.
	Zero string
	// Var marks var-int wire encoding.
	Var bool
	// Imported marks a type that is referenced directly instead of getting
	// a generated holder. Exactly one field in the whole schema uses it.
	Imported bool
}

// IntoMethod returns the name of the typed accessor on EntityDataValue.
func (t SemanticType) IntoMethod() string { return "Into" + t.Name }

// metadataTypes is indexed by serializer id. Order matters and mirrors the
// client's serializer registry; do not reorder.
var metadataTypes = []SemanticType{
	{Name: "Byte", GoType: "byte", Zero: "0"},
	{Name: "Int", GoType: "int32", Zero: "0", Var: true},
	{Name: "Long", GoType: "int64", Zero: "0"},
	{Name: "Float", GoType: "float32", Zero: "0"},
	{Name: "String", GoType: "string", Zero: `""`},
	{Name: "Component", GoType: "chat.Component", Zero: "chat.Component{}"},
	{Name: "OptionalComponent", GoType: "core.Option[chat.Component]", Zero: "core.None[chat.Component]()"},
	{Name: "ItemStack", GoType: "core.Slot", Zero: "core.EmptySlot()"},
	{Name: "Boolean", GoType: "bool", Zero: "false"},
	{Name: "Rotations", GoType: "Rotations", Zero: "Rotations{}"},
	{Name: "BlockPos", GoType: "core.BlockPos", Zero: "core.BlockPos{}"},
	{Name: "OptionalBlockPos", GoType: "core.Option[core.BlockPos]", Zero: "core.None[core.BlockPos]()"},
	{Name: "Direction", GoType: "core.Direction", Zero: "core.DirectionDown"},
	{Name: "OptionalUUID", GoType: "core.Option[uuid.UUID]", Zero: "core.None[uuid.UUID]()"},
	{Name: "BlockState", GoType: "block.State", Zero: "block.State(0)"},
	{Name: "CompoundTag", GoType: "nbt.Compound", Zero: "nbt.Compound{}"},
	{Name: "Particle", GoType: "core.Particle", Zero: "core.Particle{}", Imported: true},
	{Name: "VillagerData", GoType: "VillagerData", Zero: "VillagerData{}"},
	{Name: "OptionalUnsignedInt", GoType: "core.Option[uint32]", Zero: "core.None[uint32]()"},
	{Name: "Pose", GoType: "Pose", Zero: "PoseStanding", Imported: true},
	{Name: "CatVariant", GoType: "registry.CatVariant", Zero: "registry.CatVariantTabby"},
	{Name: "FrogVariant", GoType: "registry.FrogVariant", Zero: "registry.FrogVariantTemperate"},
	{Name: "GlobalPos", GoType: "core.GlobalPos", Zero: "core.GlobalPos{}"},
	{Name: "PaintingVariant", GoType: "registry.PaintingVariant", Zero: "registry.PaintingVariantKebab"},
}

// importedOnce lists the field names backed by imported-once types. A holder
// is never generated for these; the external type is used directly.
var importedOnce = map[string]bool{
	"particle": true,
	"pose":     true,
}

// ResolveType maps a serializer id from the dump to its catalog entry.
func ResolveType(serializerID int) (SemanticType, error) {
	if serializerID < 0 || serializerID >= len(metadataTypes) {
		return SemanticType{}, fmt.Errorf("%w: id %d", ErrUnknownSerializer, serializerID)
	}
	return metadataTypes[serializerID], nil
}
