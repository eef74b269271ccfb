package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/repository"

	"github.com/rs/zerolog/log"
)

// RespaldoService exports and restores the whole data set. Only the custom
// treatments travel in a snapshot; built-ins are part of the code.
type RespaldoService interface {
	Exportar(ctx context.Context) (*dto.Respaldo, error)
	Importar(ctx context.Context, entrada dto.RespaldoEntrada) (*dto.ImportResultado, error)
	NombreArchivo() string
}

type respaldoService struct {
	store repository.Store
	now   func() time.Time
}

func NewRespaldoService(store repository.Store, now func() time.Time) RespaldoService {
	if now == nil {
		now = time.Now
	}
	return &respaldoService{store: store, now: now}
}

// Exportar fails instead of degrading: an empty snapshot of an unavailable
// store would look like a valid backup.
func (s *respaldoService) Exportar(ctx context.Context) (*dto.Respaldo, error) {
	pacientes, err := s.store.LoadPacientes(ctx)
	if err != nil {
		return nil, persistenceError("exportar pacientes", err)
	}
	tratamientos, err := s.store.LoadTratamientos(ctx)
	if err != nil {
		return nil, persistenceError("exportar tratamientos", err)
	}
	if pacientes == nil {
		pacientes = []model.RegistroPaciente{}
	}
	if tratamientos == nil {
		tratamientos = []model.Tratamiento{}
	}
	return &dto.Respaldo{
		Patients:   pacientes,
		Treatments: tratamientos,
		ExportDate: isoTimestamp(s.now()),
		Version:    dto.VersionRespaldo,
	}, nil
}

// NombreArchivo is the suggested download name, e.g. renove_backup_2026-10-14.json.
func (s *respaldoService) NombreArchivo() string {
	return "renove_backup_" + s.now().UTC().Format("2006-01-02") + ".json"
}

// Importar replaces each collection present in the snapshot. Entries go
// through the storage codec, so malformed amounts become zero.
func (s *respaldoService) Importar(ctx context.Context, entrada dto.RespaldoEntrada) (*dto.ImportResultado, error) {
	var errs []string
	if strings.TrimSpace(entrada.Version) == "" {
		errs = append(errs, "El respaldo no indica versión")
	}
	conPacientes := presente(entrada.Patients)
	conTratamientos := presente(entrada.Treatments)
	if !conPacientes && !conTratamientos {
		errs = append(errs, "El respaldo no contiene pacientes ni tratamientos")
	}
	// A present but non-array collection would otherwise decode as empty
	// and wipe the stored one.
	if conPacientes && !esLista(entrada.Patients) {
		errs = append(errs, "patients debe ser una lista")
	}
	if conTratamientos && !esLista(entrada.Treatments) {
		errs = append(errs, "treatments debe ser una lista")
	}
	if err := validationErr(errs); err != nil {
		return nil, err
	}

	res := &dto.ImportResultado{}
	if conPacientes {
		pacientes := repository.DecodePacientes(entrada.Patients)
		if err := s.store.SavePacientes(ctx, pacientes); err != nil {
			return nil, persistenceError("importar pacientes", err)
		}
		n := len(pacientes)
		res.Pacientes = &n
	}
	if conTratamientos {
		tratamientos := repository.DecodeTratamientos(entrada.Treatments)
		if err := s.store.SaveTratamientos(ctx, tratamientos); err != nil {
			return nil, persistenceError("importar tratamientos", err)
		}
		n := len(tratamientos)
		res.Tratamientos = &n
	}

	ev := log.Info().Str("version", entrada.Version).Str("export_date", entrada.ExportDate)
	if res.Pacientes != nil {
		ev = ev.Int("pacientes", *res.Pacientes)
	}
	if res.Tratamientos != nil {
		ev = ev.Int("tratamientos", *res.Tratamientos)
	}
	ev.Msg("respaldo importado")
	return res, nil
}

func presente(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func esLista(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
