package dto

import (
	"renove/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTratamientoRequest struct {
	Nombre       string `json:"nombre"`
	CostoRegular Numero `json:"costo_regular"`
	Promocion    Numero `json:"promocion"`
	Descripcion  string `json:"descripcion" validate:"max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TratamientoResponse struct {
	model.Tratamiento
	Descuento string `json:"descuento"`
}

type CotizacionResponse struct {
	CostoRegular decimal.Decimal `json:"costo_regular"`
	Promocion    decimal.Decimal `json:"promocion"`
	PagoSugerido decimal.Decimal `json:"pago_sugerido"`
}

type CatalogoStats struct {
	Total               int             `json:"total"`
	Default             int             `json:"default"`
	Custom              int             `json:"custom"`
	AverageRegularPrice decimal.Decimal `json:"average_regular_price"`
	AveragePromoPrice   decimal.Decimal `json:"average_promo_price"`
}

type CatalogoExport struct {
	Treatments []model.Tratamiento `json:"treatments"`
	ExportDate string              `json:"exportDate"`
	Stats      CatalogoStats       `json:"stats"`
}

// ValidacionResponse is the outcome of a dry-run validation.
type ValidacionResponse struct {
	Valido  bool     `json:"valido"`
	Errores []string `json:"errores"`
}
