package service

import (
	"context"
	"fmt"
	"time"

	"renove/internal/model"
	"renove/internal/repository"

	"github.com/shopspring/decimal"
)

// ── Test doubles ──────────────────────────────────────────────────────────────

// flakyStore wraps the in-memory driver and fails on demand.
type flakyStore struct {
	repository.Store
	failLoad bool
	failSave bool
	saves    int
}

func newFlakyStore() *flakyStore { return &flakyStore{Store: repository.NewMemoryStore()} }

func (f *flakyStore) LoadPacientes(ctx context.Context) ([]model.RegistroPaciente, error) {
	if f.failLoad {
		return nil, fmt.Errorf("pacientes: %w", repository.ErrUnavailable)
	}
	return f.Store.LoadPacientes(ctx)
}

func (f *flakyStore) SavePacientes(ctx context.Context, all []model.RegistroPaciente) error {
	if f.failSave {
		return fmt.Errorf("pacientes: %w", repository.ErrWriteFailed)
	}
	f.saves++
	return f.Store.SavePacientes(ctx, all)
}

func (f *flakyStore) LoadTratamientos(ctx context.Context) ([]model.Tratamiento, error) {
	if f.failLoad {
		return nil, fmt.Errorf("tratamientos: %w", repository.ErrUnavailable)
	}
	return f.Store.LoadTratamientos(ctx)
}

func (f *flakyStore) SaveTratamientos(ctx context.Context, all []model.Tratamiento) error {
	if f.failSave {
		return fmt.Errorf("tratamientos: %w", repository.ErrWriteFailed)
	}
	f.saves++
	return f.Store.SaveTratamientos(ctx, all)
}

var _ repository.Store = (*flakyStore)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

var clinicaTZ = time.FixedZone("CST", -6*3600)

// fixedClock returns a settable clock starting at 14/10/2026 10:00 local time.
func fixedClock() (*time.Time, func() time.Time) {
	t := time.Date(2026, time.October, 14, 10, 0, 0, 0, clinicaTZ)
	return &t, func() time.Time { return t }
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func registro(fecha model.Fecha, metodo model.MetodoPago, pagado, efectivo, tarjeta string) model.RegistroPaciente {
	return model.RegistroPaciente{
		Fecha:        fecha,
		Sucursal:     "Polanco",
		Cliente:      "Ana López",
		Telefono:     "5512345678",
		Tratamiento:  "Botox Full",
		CostoRegular: dec("6500"),
		Promocion:    dec("2999"),
		Pago:         model.NuevoPago(metodo, dec(pagado), dec(efectivo), dec(tarjeta)),
	}
}
