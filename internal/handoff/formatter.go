// Package handoff renders a cart snapshot into the reservation message sent
// through the shop's messaging channel. Pure formatting, no I/O.
package handoff

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"matita-shop/internal/cart"
)

// Format produces the deterministic reservation message: one line per item
// with product name, chosen variant and unit price, then the subtotal and
// the points the order earns.
func Format(lines []cart.Line, subtotal float64, points int) string {
	var b strings.Builder

	b.WriteString("¡Hola Matita! 👋\n\nQuiero reservar los siguientes tesoros:\n\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("- %s (Color: %s): $%s\n", l.Product.Name, l.Variant, formatAmount(l.Product.Price)))
	}
	b.WriteString(fmt.Sprintf("\n*Total a Pagar: $%s*\n", formatAmount(subtotal)))
	b.WriteString(fmt.Sprintf("Puntos que sumás: +%d pts ✨\n", points))
	b.WriteString("\n¡Espero tu confirmación para el pago! ✨")

	return b.String()
}

// Link builds the messaging deep link with the URL-encoded message appended.
// Opening the channel is not this package's concern.
func Link(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message))
}

// formatAmount renders prices without trailing zeros, the way the shop
// displays them ($1500, $1500.5)
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
