// Package moneda renders amounts as Mexican-peso text for receipts and reports.
package moneda

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatear renders d as es-MX currency with two decimals: 1234.5 → "$1,234.50".
func Formatear(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	entero, fraccion := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		entero, fraccion = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	if neg && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(fraccion)
	return b.String()
}
