package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Fecha is a local calendar date with no time-of-day or zone.
// It serialises as es-MX short date ("14/10/2026") and also accepts ISO "2026-10-14".
type Fecha struct {
	Year  int
	Month time.Month
	Day   int
}

const (
	layoutFechaMX  = "2/1/2006"
	layoutFechaISO = "2006-01-02"
)

// FechaDe takes the calendar date of t in t's own location.
func FechaDe(t time.Time) Fecha {
	y, m, d := t.Date()
	return Fecha{Year: y, Month: m, Day: d}
}

// ParseFecha accepts d/m/yyyy or yyyy-mm-dd.
func ParseFecha(s string) (Fecha, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{layoutFechaMX, layoutFechaISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return FechaDe(t), nil
		}
	}
	return Fecha{}, fmt.Errorf("fecha inválida %q", s)
}

func (f Fecha) IsZero() bool { return f == Fecha{} }

func (f Fecha) Time(loc *time.Location) time.Time {
	return time.Date(f.Year, f.Month, f.Day, 0, 0, 0, 0, loc)
}

func (f Fecha) String() string {
	return fmt.Sprintf("%d/%d/%d", f.Day, int(f.Month), f.Year)
}

// ISO returns yyyy-mm-dd, used for file names.
func (f Fecha) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", f.Year, int(f.Month), f.Day)
}

var mesesES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Larga renders the long es-MX form: "14 de octubre de 2026".
func (f Fecha) Larga() string {
	if f.Month < time.January || f.Month > time.December {
		return f.String()
	}
	return fmt.Sprintf("%d de %s de %d", f.Day, mesesES[f.Month-1], f.Year)
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(f.String())
}

func (f *Fecha) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*f = Fecha{}
		return nil
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
