package service

import (
	"testing"

	"renove/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularEstadisticasDiarias(t *testing.T) {
	ayer := model.Fecha{Year: 2026, Month: 10, Day: 13}
	registros := []model.RegistroPaciente{
		registro(hoyTest, model.MetodoEfectivo, "1000", "0", "0"),
		registro(hoyTest, model.MetodoTarjeta, "2000", "0", "0"),
		registro(hoyTest, model.MetodoMixto, "1000", "500", "500"),
		registro(ayer, model.MetodoEfectivo, "9999", "0", "0"),
	}

	s := CalcularEstadisticasDiarias(registros, hoyTest)
	assert.Equal(t, hoyTest, s.Fecha)
	assert.Equal(t, 3, s.TotalPacientes)
	assert.Equal(t, "4000", s.TotalPagado.String())
	assert.Equal(t, "1000", s.TotalEfectivo.String())
	assert.Equal(t, "2000", s.TotalTarjeta.String())
	assert.Equal(t, "1000", s.TotalMixto.String())
	assert.Equal(t, "500", s.DesgloseMixto.Efectivo.String())
	assert.Equal(t, "500", s.DesgloseMixto.Tarjeta.String())
	assert.Equal(t, "19500", s.TotalRegular.String())
	assert.Equal(t, "8997", s.TotalPromociones.String())
}

func TestCalcularEstadisticasDiarias_Vacio(t *testing.T) {
	s := CalcularEstadisticasDiarias(nil, hoyTest)
	assert.Zero(t, s.TotalPacientes)
	assert.True(t, s.TotalPagado.IsZero())
	assert.True(t, s.DesgloseMixto.Tarjeta.IsZero())
}

func TestCalcularEstadisticasDiarias_MetodoDesconocido(t *testing.T) {
	r := registro(hoyTest, model.MetodoPago("cheque"), "700", "0", "0")
	s := CalcularEstadisticasDiarias([]model.RegistroPaciente{r}, hoyTest)
	assert.Equal(t, "700", s.TotalPagado.String())
	assert.True(t, s.TotalEfectivo.IsZero())
	assert.True(t, s.TotalTarjeta.IsZero())
	assert.True(t, s.TotalMixto.IsZero())
}

func TestFiltrarPorFecha_KeepsOrder(t *testing.T) {
	a := registro(hoyTest, model.MetodoEfectivo, "1", "0", "0")
	a.ID = 1
	b := registro(model.Fecha{Year: 2025, Month: 10, Day: 14}, model.MetodoEfectivo, "1", "0", "0")
	b.ID = 2
	c := registro(hoyTest, model.MetodoEfectivo, "1", "0", "0")
	c.ID = 3

	out := FiltrarPorFecha([]model.RegistroPaciente{a, b, c}, hoyTest)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}
