package inmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	t.Run("parses a valid hex id", func(t *testing.T) {
		want := primitive.NewObjectID()

		got, err := parseObjectID(want.Hex())

		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		want := primitive.NewObjectID()

		got, err := parseObjectID("  " + want.Hex() + " ")

		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "abc123"},
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzz"},
	}

	for _, tc := range tests {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := parseObjectID(tc.id)
			assert.ErrorIs(t, err, ErrInvalidProductID)
		})
	}
}

func TestPatchDocument(t *testing.T) {
	name := "Casa en la playa"
	price := 125000.0
	category := "venta"

	t.Run("includes only the set fields", func(t *testing.T) {
		doc := patchDocument(ProductPatch{Name: &name, Price: &price})

		assert.Len(t, doc, 2)
		assert.Equal(t, name, doc["name"])
		assert.Equal(t, price, doc["price"])
		assert.NotContains(t, doc, "category")
	})

	t.Run("keeps explicit zero values", func(t *testing.T) {
		zero := 0.0
		doc := patchDocument(ProductPatch{Price: &zero})

		assert.Equal(t, 0.0, doc["price"])
	})

	t.Run("is empty for an empty patch", func(t *testing.T) {
		assert.Empty(t, patchDocument(ProductPatch{}))
	})

	t.Run("full patch carries every field", func(t *testing.T) {
		doc := patchDocument(ProductPatch{Name: &name, Price: &price, Category: &category})
		assert.Len(t, doc, 3)
	})
}

func TestProductPatch_IsZero(t *testing.T) {
	name := "Depto centro"

	assert.True(t, ProductPatch{}.IsZero())
	assert.False(t, ProductPatch{Name: &name}.IsZero())
}
