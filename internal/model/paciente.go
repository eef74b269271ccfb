package model

import (
	"github.com/shopspring/decimal"
)

// MetodoPago: "efectivo" | "tarjeta" | "mixto"
type MetodoPago string

const (
	MetodoEfectivo MetodoPago = "efectivo"
	MetodoTarjeta  MetodoPago = "tarjeta"
	MetodoMixto    MetodoPago = "mixto"
)

// MonedaMXN is the only currency the clinic handles.
const MonedaMXN = "MXN"

func (m MetodoPago) Valido() bool {
	switch m {
	case MetodoEfectivo, MetodoTarjeta, MetodoMixto:
		return true
	}
	return false
}

// Etiqueta is the capitalised label used in receipts ("Efectivo").
func (m MetodoPago) Etiqueta() string {
	switch m {
	case MetodoEfectivo:
		return "Efectivo"
	case MetodoTarjeta:
		return "Tarjeta"
	case MetodoMixto:
		return "Mixto"
	}
	return string(m)
}

// Pago describes how a visit was paid.
// Mixto: Detalle[efectivo] + Detalle[tarjeta] == PagoRealizado (±0.01).
// Otherwise Detalle holds a single entry for Metodo equal to PagoRealizado.
type Pago struct {
	Metodo        MetodoPago                     `json:"metodo"`
	PagoRealizado decimal.Decimal                `json:"pago_realizado"`
	Moneda        string                         `json:"moneda"`
	Detalle       map[MetodoPago]decimal.Decimal `json:"detalle"`
}

// Parte returns the breakdown amount for m, zero when absent.
func (p Pago) Parte(m MetodoPago) decimal.Decimal {
	if p.Detalle == nil {
		return decimal.Zero
	}
	return p.Detalle[m]
}

// NuevoPago builds a Pago with a breakdown consistent with its method.
// efectivo/tarjeta are only read for mixed payments.
func NuevoPago(metodo MetodoPago, monto, efectivo, tarjeta decimal.Decimal) Pago {
	p := Pago{Metodo: metodo, PagoRealizado: monto, Moneda: MonedaMXN}
	if metodo == MetodoMixto {
		p.Detalle = map[MetodoPago]decimal.Decimal{
			MetodoEfectivo: efectivo,
			MetodoTarjeta:  tarjeta,
		}
	} else {
		p.Detalle = map[MetodoPago]decimal.Decimal{metodo: monto}
	}
	return p
}

// RegistroPaciente is one patient visit. Records are immutable once stored;
// they are only removed individually or by clearing the whole collection.
type RegistroPaciente struct {
	ID            int64           `json:"id"`
	Fecha         Fecha           `json:"fecha"`
	Sucursal      string          `json:"sucursal"`
	Cliente       string          `json:"cliente"`
	Telefono      string          `json:"telefono"`
	Tratamiento   string          `json:"tratamiento"`
	CostoRegular  decimal.Decimal `json:"costo_regular"`
	Promocion     decimal.Decimal `json:"promocion"`
	Pago          Pago            `json:"pago"`
	Observaciones string          `json:"observaciones"`
}
