package repository

import (
	"context"
	"errors"

	"renove/internal/model"
)

// Collection keys, shared by every driver.
const (
	KeyPacientes    = "renove_patients"
	KeyTratamientos = "renove_treatments"
)

var (
	// ErrUnavailable means the store cannot be reached right now.
	// Readers degrade to defaults; writers surface it to the caller.
	ErrUnavailable = errors.New("almacenamiento no disponible")
	// ErrWriteFailed means the store rejected a write (e.g. quota, constraint).
	ErrWriteFailed = errors.New("no se pudo guardar en el almacenamiento")
)

// Store persists the two top-level collections. Saves replace the whole
// collection; there are no partial updates. Loads return an empty slice and a
// nil error when nothing has been stored yet.
type Store interface {
	LoadPacientes(ctx context.Context) ([]model.RegistroPaciente, error)
	SavePacientes(ctx context.Context, all []model.RegistroPaciente) error
	LoadTratamientos(ctx context.Context) ([]model.Tratamiento, error)
	SaveTratamientos(ctx context.Context, all []model.Tratamiento) error
	Ping(ctx context.Context) error
}

// documentStore is the raw key/value contract the drivers implement.
// found=false means the key has never been written.
type documentStore interface {
	get(ctx context.Context, key string) (data []byte, found bool, err error)
	put(ctx context.Context, key string, data []byte) error
	ping(ctx context.Context) error
}

// codecStore adapts a documentStore to Store using the JSON codec.
type codecStore struct{ docs documentStore }

func (s codecStore) LoadPacientes(ctx context.Context) ([]model.RegistroPaciente, error) {
	data, found, err := s.docs.get(ctx, KeyPacientes)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.RegistroPaciente{}, nil
	}
	return DecodePacientes(data), nil
}

func (s codecStore) SavePacientes(ctx context.Context, all []model.RegistroPaciente) error {
	data, err := EncodePacientes(all)
	if err != nil {
		return err
	}
	return s.docs.put(ctx, KeyPacientes, data)
}

func (s codecStore) LoadTratamientos(ctx context.Context) ([]model.Tratamiento, error) {
	data, found, err := s.docs.get(ctx, KeyTratamientos)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.Tratamiento{}, nil
	}
	return DecodeTratamientos(data), nil
}

func (s codecStore) SaveTratamientos(ctx context.Context, all []model.Tratamiento) error {
	data, err := EncodeTratamientos(all)
	if err != nil {
		return err
	}
	return s.docs.put(ctx, KeyTratamientos, data)
}

func (s codecStore) Ping(ctx context.Context) error { return s.docs.ping(ctx) }
