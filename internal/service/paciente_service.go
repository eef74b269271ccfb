package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ConfirmacionLimpiar must be typed literally to clear every record.
const ConfirmacionLimpiar = "LIMPIAR TODO"

type PacienteService interface {
	Registrar(ctx context.Context, req dto.RegistrarPacienteRequest) (*model.RegistroPaciente, error)
	ListarHoy(ctx context.Context) (*dto.PacienteListResponse, error)
	ObtenerPorID(ctx context.Context, id int64) (*model.RegistroPaciente, error)
	Eliminar(ctx context.Context, id int64) error
	LimpiarTodo(ctx context.Context, req dto.LimpiarRequest) error
	EstadisticasHoy(ctx context.Context) dto.EstadisticasDiarias
	Hoy() model.Fecha
}

type pacienteService struct {
	store    repository.Store
	catalogo CatalogoService
	now      func() time.Time
}

func NewPacienteService(store repository.Store, catalogo CatalogoService, now func() time.Time) PacienteService {
	if now == nil {
		now = time.Now
	}
	return &pacienteService{store: store, catalogo: catalogo, now: now}
}

// Hoy is the local calendar date according to the service clock.
func (s *pacienteService) Hoy() model.Fecha { return model.FechaDe(s.now()) }

// ── Registrar ─────────────────────────────────────────────────────────────────
// Validate → persist. A record failing any rule is never stored.

func (s *pacienteService) Registrar(ctx context.Context, req dto.RegistrarPacienteRequest) (*model.RegistroPaciente, error) {
	var errs []string
	monto := func(n dto.Numero, campo string) decimal.Decimal {
		d, err := n.DecimalOCero()
		if err != nil {
			errs = append(errs, campo+" debe ser un número válido")
		}
		return d
	}

	metodo := model.MetodoPago(strings.ToLower(strings.TrimSpace(req.MetodoPago)))
	regular := monto(req.CostoRegular, "Costo regular")
	promo := monto(req.Promocion, "Promoción")
	pagado := monto(req.PagoRealizado, "Pago realizado")
	efectivo, tarjeta := decimal.Zero, decimal.Zero
	if metodo == model.MetodoMixto {
		efectivo = monto(req.Efectivo, "Efectivo")
		tarjeta = monto(req.Tarjeta, "Tarjeta")
	}

	registro := model.RegistroPaciente{
		Sucursal:      strings.TrimSpace(req.Sucursal),
		Cliente:       strings.TrimSpace(req.Cliente),
		Telefono:      strings.TrimSpace(req.Telefono),
		Tratamiento:   strings.TrimSpace(req.Tratamiento),
		CostoRegular:  regular,
		Promocion:     promo,
		Pago:          model.NuevoPago(metodo, pagado, efectivo, tarjeta),
		Observaciones: strings.TrimSpace(req.Observaciones),
	}

	validador := NewValidadorRegistro(s.existeTratamiento(ctx))
	if res := validador.Validate(registro); !res.Valido {
		errs = append(errs, res.Errores...)
	}
	if err := validationErr(errs); err != nil {
		return nil, err
	}

	registros, err := s.store.LoadPacientes(ctx)
	if err != nil {
		return nil, persistenceError("cargar pacientes", err)
	}
	var maxID int64
	for _, r := range registros {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	now := s.now()
	registro.ID = nextID(now, maxID)
	registro.Fecha = model.FechaDe(now)

	if err := s.store.SavePacientes(ctx, append(registros, registro)); err != nil {
		return nil, persistenceError("guardar paciente", err)
	}
	log.Info().
		Int64("id", registro.ID).
		Str("sucursal", registro.Sucursal).
		Str("tratamiento", registro.Tratamiento).
		Str("metodo", string(registro.Pago.Metodo)).
		Str("pagado", registro.Pago.PagoRealizado.StringFixed(2)).
		Msg("paciente registrado")
	return &registro, nil
}

func (s *pacienteService) existeTratamiento(ctx context.Context) func(string) bool {
	if s.catalogo == nil {
		return nil
	}
	nombres := make(map[string]bool)
	for _, t := range s.catalogo.ListAll(ctx) {
		nombres[t.Nombre] = true
	}
	return func(nombre string) bool { return nombres[nombre] }
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *pacienteService) ListarHoy(ctx context.Context) (*dto.PacienteListResponse, error) {
	registros, err := s.store.LoadPacientes(ctx)
	if err != nil {
		return nil, persistenceError("cargar pacientes", err)
	}
	hoy := s.Hoy()
	data := FiltrarPorFecha(registros, hoy)
	return &dto.PacienteListResponse{Fecha: hoy, Data: data, Total: len(data)}, nil
}

func (s *pacienteService) ObtenerPorID(ctx context.Context, id int64) (*model.RegistroPaciente, error) {
	registros, err := s.store.LoadPacientes(ctx)
	if err != nil {
		return nil, persistenceError("cargar pacientes", err)
	}
	for _, r := range registros {
		if r.ID == id {
			found := r
			return &found, nil
		}
	}
	return nil, fmt.Errorf("Paciente %w", ErrNotFound)
}

// EstadisticasHoy never fails: an unavailable store reads as an empty day.
func (s *pacienteService) EstadisticasHoy(ctx context.Context) dto.EstadisticasDiarias {
	registros, err := s.store.LoadPacientes(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("estadisticas: almacenamiento no disponible, se muestran en cero")
		registros = nil
	}
	return CalcularEstadisticasDiarias(registros, s.Hoy())
}

// ── Eliminar / LimpiarTodo ────────────────────────────────────────────────────

func (s *pacienteService) Eliminar(ctx context.Context, id int64) error {
	registros, err := s.store.LoadPacientes(ctx)
	if err != nil {
		return persistenceError("cargar pacientes", err)
	}
	restantes := make([]model.RegistroPaciente, 0, len(registros))
	for _, r := range registros {
		if r.ID != id {
			restantes = append(restantes, r)
		}
	}
	if len(restantes) == len(registros) {
		return fmt.Errorf("Paciente %w", ErrNotFound)
	}
	if err := s.store.SavePacientes(ctx, restantes); err != nil {
		return persistenceError("eliminar paciente", err)
	}
	log.Info().Int64("id", id).Msg("paciente eliminado")
	return nil
}

// LimpiarTodo replaces the visit collection with an empty one and, when
// requested, also resets the custom treatments.
func (s *pacienteService) LimpiarTodo(ctx context.Context, req dto.LimpiarRequest) error {
	if req.Confirmacion != ConfirmacionLimpiar {
		return validationErr([]string{fmt.Sprintf("Para confirmar, escriba %q (en mayúsculas)", ConfirmacionLimpiar)})
	}
	if err := s.store.SavePacientes(ctx, []model.RegistroPaciente{}); err != nil {
		return persistenceError("limpiar pacientes", err)
	}
	if req.IncluirTratamientos {
		if err := s.store.SaveTratamientos(ctx, []model.Tratamiento{}); err != nil {
			return persistenceError("limpiar tratamientos", err)
		}
	}
	log.Warn().Bool("tratamientos", req.IncluirTratamientos).Msg("todos los registros fueron eliminados")
	return nil
}
