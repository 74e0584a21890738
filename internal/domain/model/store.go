package model

import "strings"

// Store is the branding snapshot fetched once per storefront lookup.
type Store struct {
	Slug         string `json:"slug"`
	Name         string `json:"nome_loja"`
	PrimaryColor string `json:"cor_primaria,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
	Whatsapp     string `json:"whatsapp,omitempty"`
}

// WhatsappDigits strips everything but digits from the store contact,
// the form wa.me links require.
func (s Store) WhatsappDigits() string {
	var b strings.Builder
	for _, r := range s.Whatsapp {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasWhatsapp reports whether the store has a usable contact number.
func (s Store) HasWhatsapp() bool {
	return s.WhatsappDigits() != ""
}

// Storefront bundles the store branding with its product list.
type Storefront struct {
	Store    Store     `json:"loja"`
	Products []Product `json:"produtos"`
}

// FindProduct looks a product up by id in the fetched catalog.
func (sf Storefront) FindProduct(productID string) (Product, bool) {
	for _, p := range sf.Products {
		if p.ID == productID {
			return p, true
		}
	}
	return Product{}, false
}
