package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKindVariants(t *testing.T) {
	cases := map[string]string{
		"BusinessActor":         "business-actor",
		"businessActor":         "business-actor",
		"business_actor":        "business-actor",
		"BUSINESS_ACTOR":        "business-actor",
		"business actor":        "business-actor",
		"business-actor":        "business-actor",
		"  business-actor  ":    "business-actor",
		"ApplicationComponent":  "application-component",
		"data_object":           "data-object",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeKind(in), "input %q", in)
	}
}

func TestNormalizeKindIdempotent(t *testing.T) {
	inputs := []string{"BusinessActor", "business_actor", "node", "KindOfJunction"}
	for _, in := range inputs {
		once := NormalizeKind(in)
		twice := NormalizeKind(once)
		assert.Equal(t, once, twice, "NormalizeKind must be idempotent for %q", in)
	}
}

func TestNormalizeKindInjectiveOverValidCodomain(t *testing.T) {
	// Every valid kind, already in canonical form, must map to itself and
	// no two distinct valid kinds may collide.
	seen := make(map[string]string)
	for k := range elementKinds {
		got := NormalizeKind(k)
		require.Equal(t, k, got)
		if other, ok := seen[got]; ok {
			t.Fatalf("collision: %q and %q both normalize to %q", k, other, got)
		}
		seen[got] = k
	}
}

func TestFolderKindForTotalPartition(t *testing.T) {
	assert.Equal(t, FolderStrategy, FolderKindFor(KindCapability))
	assert.Equal(t, FolderBusiness, FolderKindFor(KindBusinessActor))
	assert.Equal(t, FolderBusiness, FolderKindFor(KindContract))
	assert.Equal(t, FolderApplication, FolderKindFor(KindDataObject))
	assert.Equal(t, FolderTechnology, FolderKindFor(KindEquipment))
	assert.Equal(t, FolderMotivation, FolderKindFor(KindGoal))
	assert.Equal(t, FolderImplementationMigration, FolderKindFor(KindGap))
	assert.Equal(t, FolderOther, FolderKindFor(KindJunction))
	assert.Equal(t, FolderRelations, FolderKindFor(RelKindAssignment))
}

func TestIsValidKindHelpers(t *testing.T) {
	assert.True(t, IsValidElementKind(KindBusinessActor))
	assert.False(t, IsValidElementKind("not-a-kind"))
	assert.True(t, IsValidRelationshipKind(RelKindFlow))
	assert.False(t, IsValidRelationshipKind(KindBusinessActor))
}
