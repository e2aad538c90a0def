package gen

import (
	"fmt"
	"strconv"
)

// emptySentinel is how the dump spells "no value" for optional-shaped
// defaults (optional positions, uuids, slots, block states, tags).
const emptySentinel = "Empty"

// synthesizeDefault turns a raw dump default (or its absence) into the Go
// literal that initializes a holder of the given semantic type. For
// imported-once types the catalog Zero already is the explicit constructed
// default of the external type.
//
// The dump cannot express composite defaults (rotations, villager data and
// the like without a source-provided value); those silently fall back to
// the generic zero value, so entities whose true default is non-trivial are
// approximated. Known accuracy gap against the real client defaults.
func synthesizeDefault(t SemanticType, raw any) string {
	if raw == nil {
		switch t.Name {
		case "CompoundTag":
			return "nbt.Compound{}"
		case "CatVariant":
			return "registry.CatVariantTabby"
		case "PaintingVariant":
			return "registry.PaintingVariantKebab"
		case "FrogVariant":
			return "registry.FrogVariantTemperate"
		case "VillagerData":
			return "VillagerData{Kind: registry.VillagerTypePlains, Profession: registry.VillagerProfessionNone, Level: 0}"
		}
		return t.Zero
	}

	switch t.Name {
	case "Boolean":
		if asBool(raw) {
			return "true"
		}
		return "false"
	case "String":
		return fmt.Sprintf("%q", rawLiteral(raw))
	case "BlockPos":
		return "core.NewBlockPos" + rawLiteral(raw)
	case "OptionalBlockPos":
		if isEmpty(raw) {
			return t.Zero
		}
		return "core.Some(core.NewBlockPos" + rawLiteral(raw) + ")"
	case "OptionalUUID":
		if isEmpty(raw) {
			return t.Zero
		}
		return fmt.Sprintf("core.Some(uuid.MustParse(%q))", rawLiteral(raw))
	case "OptionalUnsignedInt":
		if isEmpty(raw) {
			return t.Zero
		}
		return "core.Some[uint32](" + rawLiteral(raw) + ")"
	case "ItemStack":
		if isEmpty(raw) {
			return "core.EmptySlot()"
		}
		return "core.PresentSlot(" + rawLiteral(raw) + ")"
	case "BlockState":
		if isEmpty(raw) {
			return "block.StateAir"
		}
		return rawLiteral(raw)
	case "OptionalComponent":
		if isEmpty(raw) {
			return t.Zero
		}
		return "core.Some(" + rawLiteral(raw) + ")"
	case "CompoundTag":
		if isEmpty(raw) {
			return "nbt.Compound{}"
		}
		return "nbt.NewCompound(" + rawLiteral(raw) + ")"
	}
	return rawLiteral(raw)
}

// bitDefault extracts one bit's boolean default from a bitfield slot's raw
// byte default.
func bitDefault(raw any, mask int) string {
	if asInt(raw)&mask != 0 {
		return "true"
	}
	return "false"
}

func isEmpty(raw any) bool {
	s, ok := raw.(string)
	return ok && s == emptySentinel
}

// rawLiteral renders a decoded JSON default as source text.
func rawLiteral(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}

func asInt(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
