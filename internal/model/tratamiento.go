package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SufijoPersonalizado is appended to custom treatment names in the merged catalog view.
const SufijoPersonalizado = " (Personalizado)"

// Tratamiento is a catalog entry.
// Built-in entries have ID == 0 and Custom == false; custom entries get an ID and
// creation timestamp when they are stored.
type Tratamiento struct {
	ID           int64           `json:"id,omitempty"`
	Nombre       string          `json:"nombre"`
	CostoRegular decimal.Decimal `json:"costo_regular"`
	// Promocion is always <= CostoRegular
	Promocion   decimal.Decimal `json:"promocion"`
	Descripcion string          `json:"descripcion"`
	Custom      bool            `json:"custom"`
	Created     *time.Time      `json:"created,omitempty"`
}

func nuevoTratamiento(nombre string, regular, promo int64, descripcion string) Tratamiento {
	return Tratamiento{
		Nombre:       nombre,
		CostoRegular: decimal.NewFromInt(regular),
		Promocion:    decimal.NewFromInt(promo),
		Descripcion:  descripcion,
	}
}

// tratamientosBase is the fixed built-in catalog, in display order.
var tratamientosBase = []Tratamiento{
	nuevoTratamiento("Sculptra 1ra Sesión", 8500, 6500, "Primera sesión de Sculptra para estimulación de colágeno"),
	nuevoTratamiento("Sculptra 2da Sesión", 7500, 5500, "Segunda sesión de Sculptra con descuento"),
	nuevoTratamiento("Botox Full", 6500, 2999, "Aplicación completa de Botox en rostro"),
	nuevoTratamiento("Botox Parcial", 4500, 2200, "Aplicación parcial de Botox en zonas específicas"),
	nuevoTratamiento("Labios", 4000, 2800, "Aumento y definición de labios con ácido hialurónico"),
	nuevoTratamiento("Facial Rejuveness", 3500, 1500, "Tratamiento facial rejuvenecedor completo"),
	nuevoTratamiento("Hilos Tensores", 12000, 8500, "Lifting facial con hilos tensores PDO"),
	nuevoTratamiento("Peeling Químico", 2500, 1800, "Exfoliación química para renovación celular"),
	nuevoTratamiento("Mesoterapia Facial", 3000, 2200, "Hidratación profunda con vitaminas y minerales"),
	nuevoTratamiento("Radiofrecuencia", 2800, 2000, "Tratamiento de radiofrecuencia para firmeza"),
	nuevoTratamiento("Limpieza Facial Profunda", 1800, 1200, "Limpieza facial completa con extracción"),
	nuevoTratamiento("Masaje Relajante", 1500, 1000, "Masaje corporal relajante de 60 minutos"),
}

// TratamientosBase returns a copy of the built-in catalog so callers cannot mutate it.
func TratamientosBase() []Tratamiento {
	out := make([]Tratamiento, len(tratamientosBase))
	copy(out, tratamientosBase)
	return out
}

// ComoPersonalizado returns the catalog view of a stored custom treatment.
func (t Tratamiento) ComoPersonalizado() Tratamiento {
	t.Nombre = t.Nombre + SufijoPersonalizado
	t.Custom = true
	return t
}
