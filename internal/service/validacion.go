package service

import (
	"strings"

	"renove/internal/dto"
	"renove/internal/model"

	"github.com/shopspring/decimal"
)

// TratamientoPlaceholder is the selector value shown before the custom
// treatment dialog is completed; it is never a valid treatment.
const TratamientoPlaceholder = "personalizado"

// marcaPrepago in the observations documents a payment above the promo price.
const marcaPrepago = "prepago"

var toleranciaMixto = decimal.New(1, -2) // 0.01

// ValidadorRegistro checks a visit record before it is stored.
type ValidadorRegistro struct {
	// existe, when set, must report whether a treatment name is in the catalog.
	existe func(nombre string) bool
}

func NewValidadorRegistro(existe func(nombre string) bool) *ValidadorRegistro {
	return &ValidadorRegistro{existe: existe}
}

// Validate evaluates every rule and reports all violations.
func (v *ValidadorRegistro) Validate(r model.RegistroPaciente) dto.ValidacionResponse {
	var errs []string

	// 1. Required fields
	if strings.TrimSpace(r.Sucursal) == "" {
		errs = append(errs, "Sucursal es requerida")
	}
	if strings.TrimSpace(r.Cliente) == "" {
		errs = append(errs, "Cliente es requerido")
	}
	if strings.TrimSpace(r.Telefono) == "" {
		errs = append(errs, "Teléfono es requerido")
	}
	tratamiento := strings.TrimSpace(r.Tratamiento)
	switch {
	case tratamiento == "":
		errs = append(errs, "Tratamiento es requerido")
	case tratamiento == TratamientoPlaceholder:
		errs = append(errs, "Debe completar el alta de tratamiento personalizado")
	case v.existe != nil && !v.existe(tratamiento):
		errs = append(errs, "Tratamiento no encontrado en el catálogo")
	}

	// 2. Amounts
	if r.CostoRegular.IsNegative() {
		errs = append(errs, "Costo regular no puede ser negativo")
	}
	if r.Promocion.IsNegative() {
		errs = append(errs, "Promoción no puede ser negativa")
	}
	pagado := r.Pago.PagoRealizado
	if pagado.IsNegative() {
		errs = append(errs, "Pago realizado no puede ser negativo")
	}

	if !r.Pago.Metodo.Valido() {
		errs = append(errs, "Método de pago inválido")
	}

	// 3. Mixed payment parts must add up to the amount paid
	if r.Pago.Metodo == model.MetodoMixto {
		suma := r.Pago.Parte(model.MetodoEfectivo).Add(r.Pago.Parte(model.MetodoTarjeta))
		if suma.Sub(pagado).Abs().GreaterThan(toleranciaMixto) {
			errs = append(errs, "La suma de efectivo y tarjeta debe ser igual al pago realizado")
		}
	}

	// 4. Paying above the promotion requires a documented prepayment.
	// Only applies when both amounts were given (non-zero).
	if r.Promocion.IsPositive() && pagado.IsPositive() && pagado.GreaterThan(r.Promocion) &&
		!strings.Contains(strings.ToLower(r.Observaciones), marcaPrepago) {
		errs = append(errs, "El pago no puede ser mayor a la promoción (documentar prepago en observaciones)")
	}

	return resultado(errs)
}
