package repository

import (
	"context"
	"errors"
	"fmt"

	"renove/internal/infra"
	"renove/internal/model"
)

// GuardedStore puts a circuit breaker in front of a driver and maps driver
// errors onto ErrUnavailable (reads, pings, open breaker) and ErrWriteFailed
// (rejected writes).
type GuardedStore struct {
	inner Store
	cb    *infra.CircuitBreaker
}

func NewGuardedStore(inner Store, cb *infra.CircuitBreaker) *GuardedStore {
	return &GuardedStore{inner: inner, cb: cb}
}

// State reports the breaker state for the health endpoint.
func (g *GuardedStore) State() infra.CBState { return g.cb.State() }

func (g *GuardedStore) LoadPacientes(ctx context.Context) ([]model.RegistroPaciente, error) {
	var out []model.RegistroPaciente
	err := g.cb.Execute(func() error {
		var err error
		out, err = g.inner.LoadPacientes(ctx)
		return err
	})
	if err != nil {
		return nil, readError(err)
	}
	return out, nil
}

func (g *GuardedStore) SavePacientes(ctx context.Context, all []model.RegistroPaciente) error {
	return writeError(g.cb.Execute(func() error { return g.inner.SavePacientes(ctx, all) }))
}

func (g *GuardedStore) LoadTratamientos(ctx context.Context) ([]model.Tratamiento, error) {
	var out []model.Tratamiento
	err := g.cb.Execute(func() error {
		var err error
		out, err = g.inner.LoadTratamientos(ctx)
		return err
	})
	if err != nil {
		return nil, readError(err)
	}
	return out, nil
}

func (g *GuardedStore) SaveTratamientos(ctx context.Context, all []model.Tratamiento) error {
	return writeError(g.cb.Execute(func() error { return g.inner.SaveTratamientos(ctx, all) }))
}

func (g *GuardedStore) Ping(ctx context.Context) error {
	if err := g.cb.Execute(func() error { return g.inner.Ping(ctx) }); err != nil {
		return readError(err)
	}
	return nil
}

func readError(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func writeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, infra.ErrCircuitOpen), errors.Is(err, ErrUnavailable):
		return readError(err)
	case errors.Is(err, ErrWriteFailed):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
}
