// Package whatsapp builds "click to chat" deep links. It never talks to
// the WhatsApp network and cannot confirm delivery; the link is handed to
// the client, which opens it in the messaging app.
package whatsapp

import (
	"errors"
	"net/url"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const sendEndpoint = "https://api.whatsapp.com/send"

// ErrNotConfigured is returned when no destination number is available,
// e.g. the restaurant's own number was never set in the environment.
var ErrNotConfigured = errors.New("whatsapp number not configured")

// BuildLink percent-encodes phone and message into a deep link understood
// by the WhatsApp app. Pure function, no I/O.
func BuildLink(phone, msg string) (string, error) {
	if phone == "" {
		return "", ErrNotConfigured
	}
	q := url.Values{}
	q.Set("phone", phone)
	q.Set("text", msg)
	return sendEndpoint + "?" + q.Encode(), nil
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders a monetary value the way the storefront shows it,
// e.g. "R$ 1.234,56".
func FormatCurrency(v decimal.Decimal) string {
	f, _ := v.Float64()
	return ptBR.Sprintf("R$ %v", number.Decimal(f, number.Scale(2)))
}
