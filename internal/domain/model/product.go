package model

// Variant is one selectable option of a product (e.g. a size).
type Variant struct {
	Size string `json:"tamanho"`
}

// VariantSingle is the label used when a product has no variants.
const VariantSingle = "Único"

// Product is catalog data owned by the storefront backend.
// Price is in centavos.
type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"titulo"`
	Price    int64     `json:"preco_centavos"`
	ImageURL string    `json:"image,omitempty"`
	Variants []Variant `json:"variacoes,omitempty"`
}

// DefaultVariant picks the variant used when the shopper chose none:
// the first listed one, or the single-variant sentinel.
func (p Product) DefaultVariant() string {
	if len(p.Variants) > 0 {
		return p.Variants[0].Size
	}
	return VariantSingle
}
