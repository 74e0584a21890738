// Package whatsapp builds wa.me deep links that open a chat with a
// pre-filled message.
package whatsapp

import "net/url"

// DeepLink combines a digits-only phone number with a message text.
// The caller is responsible for stripping formatting from the number
// (model.Store.WhatsappDigits does that for stores).
func DeepLink(digits, text string) string {
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}
