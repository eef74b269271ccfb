package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Numero is a form amount as typed by the user: it accepts a JSON number or
// a string and keeps the raw text so the service can report non-numeric
// input together with every other validation error instead of failing binding.
type Numero struct {
	raw string
}

var errNoNumerico = errors.New("valor no numérico")

// NumeroDe builds a Numero from text ("" is absent).
func NumeroDe(s string) Numero { return Numero{raw: strings.TrimSpace(s)} }

func (n *Numero) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		n.raw = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
	default:
		n.raw = string(b)
	}
	return nil
}

func (n Numero) MarshalJSON() ([]byte, error) {
	if n.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// Vacio reports whether no value was given.
func (n Numero) Vacio() bool { return n.raw == "" }

// Decimal parses the value; an absent value is an error too.
func (n Numero) Decimal() (decimal.Decimal, error) {
	if n.raw == "" {
		return decimal.Zero, errNoNumerico
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, errNoNumerico
	}
	return d, nil
}

// DecimalOCero mirrors the form behaviour: blank means zero.
func (n Numero) DecimalOCero() (decimal.Decimal, error) {
	if n.raw == "" {
		return decimal.Zero, nil
	}
	return n.Decimal()
}
