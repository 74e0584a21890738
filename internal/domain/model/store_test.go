package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_WhatsappDigits(t *testing.T) {
	s := Store{Whatsapp: "+55 (11) 98877-6655"}
	assert.Equal(t, "5511988776655", s.WhatsappDigits())
	assert.True(t, s.HasWhatsapp())

	assert.False(t, Store{}.HasWhatsapp())
	assert.False(t, Store{Whatsapp: "sem numero"}.HasWhatsapp())
}

func TestStorefront_FindProduct(t *testing.T) {
	sf := Storefront{Products: []Product{{ID: "a"}, {ID: "b"}}}

	p, ok := sf.FindProduct("b")
	assert.True(t, ok)
	assert.Equal(t, "b", p.ID)

	_, ok = sf.FindProduct("c")
	assert.False(t, ok)
}

func TestProduct_DefaultVariant(t *testing.T) {
	withSizes := Product{Variants: []Variant{{Size: "P"}, {Size: "M"}}}
	assert.Equal(t, "P", withSizes.DefaultVariant())

	assert.Equal(t, VariantSingle, Product{}.DefaultVariant())
}
