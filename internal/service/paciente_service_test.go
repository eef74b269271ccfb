package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPacienteSvc(store repository.Store, now func() time.Time) PacienteService {
	return NewPacienteService(store, NewCatalogoService(store, now), now)
}

func formulario() dto.RegistrarPacienteRequest {
	return dto.RegistrarPacienteRequest{
		Sucursal:      " Polanco ",
		Cliente:       "Ana López",
		Telefono:      "5512345678",
		Tratamiento:   "Botox Full",
		CostoRegular:  dto.NumeroDe("6500"),
		Promocion:     dto.NumeroDe("2999"),
		PagoRealizado: dto.NumeroDe("2999"),
		MetodoPago:    "efectivo",
	}
}

func TestRegistrar(t *testing.T) {
	clock, now := fixedClock()
	store := newFlakyStore()
	svc := newPacienteSvc(store, now)
	ctx := context.Background()

	r, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)
	assert.Equal(t, clock.UnixMilli(), r.ID)
	assert.Equal(t, "14/10/2026", r.Fecha.String())
	assert.Equal(t, "Polanco", r.Sucursal)
	assert.Equal(t, model.MetodoEfectivo, r.Pago.Metodo)
	assert.Equal(t, model.MonedaMXN, r.Pago.Moneda)
	assert.Equal(t, "2999", r.Pago.Parte(model.MetodoEfectivo).String())

	lista, err := svc.ListarHoy(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, lista.Total)
	assert.Equal(t, r.ID, lista.Data[0].ID)
}

func TestRegistrar_Mixto(t *testing.T) {
	_, now := fixedClock()
	svc := newPacienteSvc(newFlakyStore(), now)

	req := formulario()
	req.MetodoPago = "Mixto"
	req.Efectivo = dto.NumeroDe("1000")
	req.Tarjeta = dto.NumeroDe("1999")
	r, err := svc.Registrar(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.MetodoMixto, r.Pago.Metodo)
	assert.Equal(t, "1999", r.Pago.Parte(model.MetodoTarjeta).String())

	req.Tarjeta = dto.NumeroDe("1900")
	_, err = svc.Registrar(context.Background(), req)
	assert.ErrorContains(t, err, "La suma de efectivo y tarjeta debe ser igual al pago realizado")
}

func TestRegistrar_RechazadoNoSeGuarda(t *testing.T) {
	_, now := fixedClock()
	store := newFlakyStore()
	svc := newPacienteSvc(store, now)

	req := formulario()
	req.Cliente = ""
	req.PagoRealizado = dto.NumeroDe("dos mil")
	_, err := svc.Registrar(context.Background(), req)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Pago realizado debe ser un número válido", "Cliente es requerido"}, verr.Errors)
	assert.Zero(t, store.saves)
}

func TestRegistrar_TratamientoPersonalizado(t *testing.T) {
	_, now := fixedClock()
	store := newFlakyStore()
	catalogo := NewCatalogoService(store, now)
	svc := NewPacienteService(store, catalogo, now)
	ctx := context.Background()

	req := formulario()
	req.Tratamiento = "Enzimas (Personalizado)"
	_, err := svc.Registrar(ctx, req)
	assert.ErrorContains(t, err, "Tratamiento no encontrado en el catálogo")

	_, err = catalogo.AddCustom(ctx, nuevoTratamientoReq("Enzimas", "3000", "2999"))
	require.NoError(t, err)
	_, err = svc.Registrar(ctx, req)
	assert.NoError(t, err)
}

func TestRegistrar_StoreUnavailable(t *testing.T) {
	_, now := fixedClock()
	store := newFlakyStore()
	svc := newPacienteSvc(store, now)
	store.failSave = true

	_, err := svc.Registrar(context.Background(), formulario())
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "guardar paciente", perr.Op)
	assert.ErrorIs(t, err, repository.ErrWriteFailed)
}

func TestListarHoy_ExcluyeAyer(t *testing.T) {
	clock, now := fixedClock()
	svc := newPacienteSvc(newFlakyStore(), now)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)

	*clock = clock.Add(24 * time.Hour)
	lista, err := svc.ListarHoy(ctx)
	require.NoError(t, err)
	assert.Equal(t, "15/10/2026", lista.Fecha.String())
	assert.Zero(t, lista.Total)
	assert.NotNil(t, lista.Data)
}

func TestEstadisticasHoy_DegradaACero(t *testing.T) {
	_, now := fixedClock()
	store := newFlakyStore()
	svc := newPacienteSvc(store, now)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)
	assert.Equal(t, 1, svc.EstadisticasHoy(ctx).TotalPacientes)

	store.failLoad = true
	s := svc.EstadisticasHoy(ctx)
	assert.Zero(t, s.TotalPacientes)
	assert.True(t, s.TotalPagado.IsZero())

	_, err = svc.ListarHoy(ctx)
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestObtenerYEliminar(t *testing.T) {
	clock, now := fixedClock()
	svc := newPacienteSvc(newFlakyStore(), now)
	ctx := context.Background()

	a, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)
	*clock = clock.Add(time.Minute)
	b, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)

	got, err := svc.ObtenerPorID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	require.NoError(t, svc.Eliminar(ctx, a.ID))
	lista, err := svc.ListarHoy(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, lista.Total)
	assert.Equal(t, b.ID, lista.Data[0].ID)

	assert.ErrorIs(t, svc.Eliminar(ctx, a.ID), ErrNotFound)
	_, err = svc.ObtenerPorID(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLimpiarTodo(t *testing.T) {
	_, now := fixedClock()
	store := newFlakyStore()
	catalogo := NewCatalogoService(store, now)
	svc := NewPacienteService(store, catalogo, now)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, formulario())
	require.NoError(t, err)
	_, err = catalogo.AddCustom(ctx, nuevoTratamientoReq("Enzimas", "3000", "2500"))
	require.NoError(t, err)

	err = svc.LimpiarTodo(ctx, dto.LimpiarRequest{Confirmacion: "limpiar todo"})
	assert.ErrorContains(t, err, `"LIMPIAR TODO"`)

	require.NoError(t, svc.LimpiarTodo(ctx, dto.LimpiarRequest{Confirmacion: ConfirmacionLimpiar}))
	lista, err := svc.ListarHoy(ctx)
	require.NoError(t, err)
	assert.Zero(t, lista.Total)
	assert.Len(t, catalogo.ListAll(ctx), 13, "custom treatments survive a plain clear")

	require.NoError(t, svc.LimpiarTodo(ctx, dto.LimpiarRequest{Confirmacion: ConfirmacionLimpiar, IncluirTratamientos: true}))
	assert.Len(t, catalogo.ListAll(ctx), 12)
}
