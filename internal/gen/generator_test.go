package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minefarer/metagen/internal/schema"
)

// The abstract-parent/concrete-child scenario: the parent contributes the
// only field, the child contributes the binding.
func allayDump() *schema.Dump {
	return schema.NewDump(
		testEntity("~abstract_insentient", "",
			[]schema.Attribute{testAttr(0, 8, "DATA_NO_AI", false)}, nil),
		testEntity("allay", "~abstract_insentient", nil, nil),
	)
}

func TestGenerateAllayScenario(t *testing.T) {
	src, err := Generate(allayDump(), schema.NewMappings(), "entity")
	require.NoError(t, err)
	out := string(src)

	// Holder comes from the abstract parent, once.
	assert.Contains(t, out, "type NoAi struct{ Value bool }")
	assert.Equal(t, 1, strings.Count(out, "type NoAi struct"))

	// Only the concrete child gets a marker and bindings.
	assert.Contains(t, out, "type Allay struct{}")
	assert.NotContains(t, out, "type AbstractInsentient struct{}")
	assert.NotContains(t, out, "abstractInsentientQuery")

	// Default constructor covers the inherited field.
	assert.Contains(t, out, "func (Allay) Default(b *ecs.EntityBuilder) ecs.Entity {")
	assert.Contains(t, out, "b.Add(NoAi{false})")
	assert.Contains(t, out, "return b.Build()")

	// The binding addresses index 0 even though the field is inherited.
	assert.Contains(t, out, "type allayQuery struct {")
	assert.Contains(t, out, "noAi *NoAi")
	assert.Contains(t, out, "case 0:")
	assert.Contains(t, out, "d.Value.IntoBoolean()")
	assert.Contains(t, out, "*q.noAi = NoAi{v}")

	// Dispatcher routes through the child's binding and defaults to success.
	assert.Contains(t, out, "func UpdateMetadata(w *ecs.World, e ecs.Entity, data EntityMetadataItems) error {")
	assert.Contains(t, out, "ecs.QueryOne[allayQuery](w, e)")

	// Preamble of the artifact.
	assert.True(t, strings.HasPrefix(out, "// Code generated by metagen. DO NOT EDIT."))
	assert.Contains(t, out, "package entity")
	assert.Contains(t, out, "type WrongTypeError struct {")
}

func TestGenerateIdempotent(t *testing.T) {
	first, err := Generate(allayDump(), schema.NewMappings(), "entity")
	require.NoError(t, err)
	second, err := Generate(allayDump(), schema.NewMappings(), "entity")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateBitfieldDefaults(t *testing.T) {
	d := schema.NewDump(
		testEntity("pig", "",
			[]schema.Attribute{testAttr(0, 0, "DATA_SHARED_FLAGS_ID", 1.0)},
			[]schema.Bitfield{
				{Method: "isOnFire()Z", Mask: 0x01},
				{Method: "isSprinting()Z", Mask: 0x02},
			}),
	)
	src, err := Generate(d, schema.NewMappings(), "entity")
	require.NoError(t, err)
	out := string(src)

	// Each bit gets its own boolean holder and its default comes from
	// testing the raw byte against the bit's mask.
	assert.Contains(t, out, "type OnFire struct{ Value bool }")
	assert.Contains(t, out, "type Sprinting struct{ Value bool }")
	assert.Contains(t, out, "b.Add(OnFire{true})")
	assert.Contains(t, out, "b.Add(Sprinting{false})")

	// Updates re-read every bit from the raw byte independently.
	assert.Contains(t, out, "bits, err := d.Value.IntoByte()")
	assert.Contains(t, out, "*q.onFire = OnFire{bits&0x1 != 0}")
	assert.Contains(t, out, "*q.sprinting = Sprinting{bits&0x2 != 0}")
}

func TestGenerateImportedOnceType(t *testing.T) {
	d := schema.NewDump(
		testEntity("warden", "",
			[]schema.Attribute{testAttr(0, 19, "DATA_POSE", nil)}, nil),
	)
	src, err := Generate(d, schema.NewMappings(), "entity")
	require.NoError(t, err)
	out := string(src)

	// No holder for an imported-once type; the external type is used as is.
	assert.NotContains(t, out, "type Pose struct")
	assert.Contains(t, out, "b.Add(PoseStanding)")
	assert.Contains(t, out, "pose *Pose")
	assert.Contains(t, out, "d.Value.IntoPose()")
	assert.Contains(t, out, "*q.pose = v")
}

func TestGenerateSharedHolderEmittedOnce(t *testing.T) {
	d := schema.NewDump(
		testEntity("~abstract_fish", "",
			[]schema.Attribute{testAttr(0, 8, "FROM_BUCKET", false)}, nil),
		testEntity("cod", "~abstract_fish", nil, nil),
		testEntity("salmon", "~abstract_fish", nil, nil),
	)
	src, err := Generate(d, schema.NewMappings(), "entity")
	require.NoError(t, err)
	out := string(src)

	assert.Equal(t, 1, strings.Count(out, "type FromBucket struct"))
	// Both concrete bindings still address the shared holder.
	assert.Contains(t, out, "type codQuery struct {")
	assert.Contains(t, out, "type salmonQuery struct {")
}

func TestGenerateDispatcherOrder(t *testing.T) {
	d := schema.NewDump(
		testEntity("cat", "", []schema.Attribute{testAttr(0, 8, "PURRING", false)}, nil),
		testEntity("cow", "", []schema.Attribute{testAttr(0, 8, "GRAZING", false)}, nil),
	)
	src, err := Generate(d, schema.NewMappings(), "entity")
	require.NoError(t, err)
	out := string(src)

	catAt := strings.Index(out, "ecs.QueryOne[catQuery]")
	cowAt := strings.Index(out, "ecs.QueryOne[cowQuery]")
	require.GreaterOrEqual(t, catAt, 0)
	require.GreaterOrEqual(t, cowAt, 0)
	// Declaration order decides which binding consumes an ambiguous batch.
	assert.Less(t, catAt, cowAt)

	// No binding matching is success with no effect.
	assert.Contains(t, out, "return nil\n}")
}

func TestGenerateIndexGapFails(t *testing.T) {
	d := schema.NewDump(
		testEntity("zombie", "",
			[]schema.Attribute{testAttr(1, 8, "BABY", false)}, nil),
	)
	_, err := Generate(d, schema.NewMappings(), "entity")
	require.ErrorIs(t, err, ErrIndexGap)
}

func TestGenerateUnknownSerializerFails(t *testing.T) {
	d := schema.NewDump(
		testEntity("zombie", "",
			[]schema.Attribute{{Index: 0, Serializer: "Mystery", SerializerID: 99, Field: "BABY"}}, nil),
	)
	_, err := Generate(d, schema.NewMappings(), "entity")
	require.ErrorIs(t, err, ErrUnknownSerializer)
}
