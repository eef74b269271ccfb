package service

import (
	"renove/internal/dto"
	"renove/internal/model"

	"github.com/shopspring/decimal"
)

// CalcularEstadisticasDiarias aggregates the records dated hoy. It cannot fail:
// stored amounts were already coerced to zero when unreadable, and records
// with an unknown payment method count towards the totals only.
func CalcularEstadisticasDiarias(registros []model.RegistroPaciente, hoy model.Fecha) dto.EstadisticasDiarias {
	stats := dto.EstadisticasDiarias{
		Fecha:            hoy,
		TotalRegular:     decimal.Zero,
		TotalPromociones: decimal.Zero,
		TotalPagado:      decimal.Zero,
		TotalEfectivo:    decimal.Zero,
		TotalTarjeta:     decimal.Zero,
		TotalMixto:       decimal.Zero,
		DesgloseMixto:    dto.DesgloseMixto{Efectivo: decimal.Zero, Tarjeta: decimal.Zero},
	}

	for _, r := range FiltrarPorFecha(registros, hoy) {
		stats.TotalPacientes++
		stats.TotalRegular = stats.TotalRegular.Add(r.CostoRegular)
		stats.TotalPromociones = stats.TotalPromociones.Add(r.Promocion)

		pagado := r.Pago.PagoRealizado
		stats.TotalPagado = stats.TotalPagado.Add(pagado)

		switch r.Pago.Metodo {
		case model.MetodoEfectivo:
			stats.TotalEfectivo = stats.TotalEfectivo.Add(pagado)
		case model.MetodoTarjeta:
			stats.TotalTarjeta = stats.TotalTarjeta.Add(pagado)
		case model.MetodoMixto:
			stats.TotalMixto = stats.TotalMixto.Add(pagado)
			stats.DesgloseMixto.Efectivo = stats.DesgloseMixto.Efectivo.Add(r.Pago.Parte(model.MetodoEfectivo))
			stats.DesgloseMixto.Tarjeta = stats.DesgloseMixto.Tarjeta.Add(r.Pago.Parte(model.MetodoTarjeta))
		}
	}
	return stats
}

// FiltrarPorFecha keeps insertion order.
func FiltrarPorFecha(registros []model.RegistroPaciente, fecha model.Fecha) []model.RegistroPaciente {
	out := []model.RegistroPaciente{}
	for _, r := range registros {
		if r.Fecha == fecha {
			out = append(out, r)
		}
	}
	return out
}
