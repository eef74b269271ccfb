package repository

import (
	"testing"

	"renove/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePacientes_Lenient(t *testing.T) {
	doc := []byte(`[
		{"id": 1760457600000, "fecha": "14/10/2026", "sucursal": "Polanco", "cliente": "Ana",
		 "telefono": 5512345678, "tratamiento": "Botox Full",
		 "costo_regular": "6500", "promocion": 2999.0,
		 "pago": {"metodo": "MIXTO", "pago_realizado": "2999",
		          "detalle": {"efectivo": "1000", "tarjeta": 1999}},
		 "observaciones": null},
		{"id": 2, "fecha": "2026-10-14", "costo_regular": "mil", "promocion": true,
		 "pago": {"metodo": "efectivo", "pago_realizado": ""}},
		"basura",
		{"id": 3, "fecha": "ayer", "pago": "no es objeto"}
	]`)

	regs := DecodePacientes(doc)
	require.Len(t, regs, 3)

	a := regs[0]
	assert.Equal(t, int64(1760457600000), a.ID)
	assert.Equal(t, model.Fecha{Year: 2026, Month: 10, Day: 14}, a.Fecha)
	assert.Equal(t, "5512345678", a.Telefono)
	assert.Equal(t, "6500", a.CostoRegular.String())
	assert.Equal(t, "2999", a.Promocion.String())
	assert.Equal(t, model.MetodoMixto, a.Pago.Metodo)
	assert.Equal(t, model.MonedaMXN, a.Pago.Moneda)
	assert.Equal(t, "1999", a.Pago.Parte(model.MetodoTarjeta).String())
	assert.Empty(t, a.Observaciones)

	b := regs[1]
	assert.Equal(t, a.Fecha, b.Fecha, "ISO dates are accepted too")
	assert.True(t, b.CostoRegular.IsZero())
	assert.True(t, b.Promocion.IsZero())
	assert.True(t, b.Pago.PagoRealizado.IsZero())

	c := regs[2]
	assert.Equal(t, int64(3), c.ID)
	assert.True(t, c.Fecha.IsZero())
	assert.True(t, c.Pago.PagoRealizado.IsZero())
}

func TestDecodePacientes_NoArray(t *testing.T) {
	assert.Empty(t, DecodePacientes([]byte(`{"patients": []}`)))
	assert.Empty(t, DecodePacientes([]byte(`no json`)))
	assert.Empty(t, DecodePacientes(nil))
}

func TestDecodeTratamientos_AlwaysCustom(t *testing.T) {
	doc := []byte(`[{"id": 10, "nombre": "Enzimas", "costo_regular": 3000, "promocion": "2500",
	                 "descripcion": "x", "custom": false, "created": "2026-10-14T16:00:00.000Z"},
	                {"id": 11, "nombre": "Sin fecha", "created": "hoy"}]`)

	ts := DecodeTratamientos(doc)
	require.Len(t, ts, 2)
	assert.True(t, ts[0].Custom)
	assert.Equal(t, "3000", ts[0].CostoRegular.String())
	require.NotNil(t, ts[0].Created)
	assert.Equal(t, 16, ts[0].Created.Hour())
	assert.Nil(t, ts[1].Created)
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	b, err := EncodePacientes(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))

	b, err = EncodeTratamientos(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestEncodeDecode_PacienteFields(t *testing.T) {
	r := model.RegistroPaciente{
		ID:          42,
		Fecha:       model.Fecha{Year: 2026, Month: 1, Day: 5},
		Sucursal:    "Satélite",
		Cliente:     "Luis",
		Telefono:    "55",
		Tratamiento: "Labios",
		Pago:        model.NuevoPago(model.MetodoTarjeta, decimalFrom(t, "2800"), decimalFrom(t, "0"), decimalFrom(t, "0")),
	}
	b, err := EncodePacientes([]model.RegistroPaciente{r})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"fecha":"5/1/2026"`)
	assert.Contains(t, string(b), `"pago_realizado":"2800"`)

	back := DecodePacientes(b)
	require.Len(t, back, 1)
	assert.Equal(t, r.Fecha, back[0].Fecha)
	assert.Equal(t, "2800", back[0].Pago.Parte(model.MetodoTarjeta).String())
}
