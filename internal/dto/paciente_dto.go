package dto

import (
	"renove/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarPacienteRequest mirrors the front-desk form. Efectivo/Tarjeta are
// only read when MetodoPago is "mixto".
type RegistrarPacienteRequest struct {
	Sucursal      string `json:"sucursal"`
	Cliente       string `json:"cliente"`
	Telefono      string `json:"telefono"      validate:"max=30"`
	Tratamiento   string `json:"tratamiento"`
	CostoRegular  Numero `json:"costo_regular"`
	Promocion     Numero `json:"promocion"`
	PagoRealizado Numero `json:"pago_realizado"`
	MetodoPago    string `json:"metodo_pago"`
	Efectivo      Numero `json:"efectivo"`
	Tarjeta       Numero `json:"tarjeta"`
	Observaciones string `json:"observaciones" validate:"max=2000"`
}

// LimpiarRequest clears every visit record; IncluirTratamientos also resets
// the custom treatments.
type LimpiarRequest struct {
	Confirmacion        string `json:"confirmacion"         validate:"required"`
	IncluirTratamientos bool   `json:"incluir_tratamientos"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DesgloseMixto struct {
	Efectivo decimal.Decimal `json:"efectivo"`
	Tarjeta  decimal.Decimal `json:"tarjeta"`
}

// EstadisticasDiarias is derived on every request; it is never stored.
type EstadisticasDiarias struct {
	Fecha            model.Fecha     `json:"fecha"`
	TotalPacientes   int             `json:"total_pacientes"`
	TotalRegular     decimal.Decimal `json:"total_regular"`
	TotalPromociones decimal.Decimal `json:"total_promociones"`
	TotalPagado      decimal.Decimal `json:"total_pagado"`
	TotalEfectivo    decimal.Decimal `json:"total_efectivo"`
	TotalTarjeta     decimal.Decimal `json:"total_tarjeta"`
	TotalMixto       decimal.Decimal `json:"total_mixto"`
	DesgloseMixto    DesgloseMixto   `json:"desglose_mixto"`
}

type PacienteListResponse struct {
	Fecha model.Fecha              `json:"fecha"`
	Data  []model.RegistroPaciente `json:"data"`
	Total int                      `json:"total"`
}
