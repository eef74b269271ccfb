package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"renove/internal/dto"
	"renove/internal/model"
	"renove/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	maxNombreTratamiento   = 100
	descripcionPorDefecto  = "Tratamiento personalizado"
	mensajeNombreDuplicado = "Ya existe un tratamiento con este nombre"
)

type CatalogoService interface {
	ListAll(ctx context.Context) []model.Tratamiento
	FindByName(ctx context.Context, nombre string) (*model.Tratamiento, error)
	PriceQuote(ctx context.Context, nombre string) (*dto.CotizacionResponse, error)
	AddCustom(ctx context.Context, req dto.CrearTratamientoRequest) (*model.Tratamiento, error)
	Validate(req dto.CrearTratamientoRequest) dto.ValidacionResponse
	Search(ctx context.Context, query string) []model.Tratamiento
	Stats(ctx context.Context) dto.CatalogoStats
	ExportCatalog(ctx context.Context) dto.CatalogoExport
}

type catalogoService struct {
	store repository.Store
	now   func() time.Time
}

func NewCatalogoService(store repository.Store, now func() time.Time) CatalogoService {
	if now == nil {
		now = time.Now
	}
	return &catalogoService{store: store, now: now}
}

// ── ListAll ───────────────────────────────────────────────────────────────────
// Built-ins first, then customs in storage order. Never fails: an unavailable
// store yields the built-ins only.

func (s *catalogoService) ListAll(ctx context.Context) []model.Tratamiento {
	all, _ := s.listAll(ctx)
	return all
}

// listAll also returns how many custom entries were merged.
func (s *catalogoService) listAll(ctx context.Context) ([]model.Tratamiento, int) {
	all := model.TratamientosBase()
	custom, err := s.store.LoadTratamientos(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalogo: usando solo tratamientos base")
		return all, 0
	}
	return merge(all, custom), len(custom)
}

func merge(base, custom []model.Tratamiento) []model.Tratamiento {
	out := make([]model.Tratamiento, 0, len(base)+len(custom))
	out = append(out, base...)
	for _, t := range custom {
		out = append(out, t.ComoPersonalizado())
	}
	return out
}

// ── FindByName / PriceQuote ───────────────────────────────────────────────────

func (s *catalogoService) FindByName(ctx context.Context, nombre string) (*model.Tratamiento, error) {
	for _, t := range s.ListAll(ctx) {
		if t.Nombre == nombre {
			found := t
			return &found, nil
		}
	}
	return nil, fmt.Errorf("Tratamiento %w", ErrNotFound)
}

// PriceQuote pre-fills the visit form: the suggested payment is the promo price.
func (s *catalogoService) PriceQuote(ctx context.Context, nombre string) (*dto.CotizacionResponse, error) {
	t, err := s.FindByName(ctx, nombre)
	if err != nil {
		return nil, err
	}
	return &dto.CotizacionResponse{
		CostoRegular: t.CostoRegular,
		Promocion:    t.Promocion,
		PagoSugerido: t.Promocion,
	}, nil
}

// ── AddCustom ─────────────────────────────────────────────────────────────────

func (s *catalogoService) AddCustom(ctx context.Context, req dto.CrearTratamientoRequest) (*model.Tratamiento, error) {
	if res := s.Validate(req); !res.Valido {
		return nil, validationErr(res.Errores)
	}
	nombre := strings.TrimSpace(req.Nombre)
	regular, _ := req.CostoRegular.Decimal()
	promo, _ := req.Promocion.Decimal()

	// The custom collection must be read for real before writing it back,
	// otherwise a degraded (empty) read would wipe it.
	custom, err := s.store.LoadTratamientos(ctx)
	if err != nil {
		return nil, persistenceError("cargar tratamientos", err)
	}
	for _, t := range merge(model.TratamientosBase(), custom) {
		if t.Nombre == nombre || t.Nombre == nombre+model.SufijoPersonalizado {
			return nil, validationErr([]string{mensajeNombreDuplicado})
		}
	}

	descripcion := strings.TrimSpace(req.Descripcion)
	if descripcion == "" {
		descripcion = descripcionPorDefecto
	}
	now := s.now()
	created := now.UTC()
	var maxID int64
	for _, t := range custom {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	nuevo := model.Tratamiento{
		ID:           nextID(now, maxID),
		Nombre:       nombre,
		CostoRegular: regular,
		Promocion:    promo,
		Descripcion:  descripcion,
		Custom:       true,
		Created:      &created,
	}

	updated := append(append(make([]model.Tratamiento, 0, len(custom)+1), custom...), nuevo)
	if err := s.store.SaveTratamientos(ctx, updated); err != nil {
		return nil, persistenceError("guardar tratamiento", err)
	}
	log.Info().Int64("id", nuevo.ID).Str("nombre", nuevo.Nombre).Msg("tratamiento personalizado agregado")
	return &nuevo, nil
}

// ── Validate ──────────────────────────────────────────────────────────────────
// Every rule is evaluated; all violations are returned together.

func (s *catalogoService) Validate(req dto.CrearTratamientoRequest) dto.ValidacionResponse {
	var errs []string
	nombre := strings.TrimSpace(req.Nombre)

	if nombre == "" {
		errs = append(errs, "Nombre del tratamiento es requerido")
	}

	regular, errRegular := req.CostoRegular.Decimal()
	if errRegular != nil {
		errs = append(errs, "Costo regular debe ser un número válido")
	} else if regular.IsNegative() {
		errs = append(errs, "Costo regular no puede ser negativo")
	}

	promo, errPromo := req.Promocion.Decimal()
	if errPromo != nil {
		errs = append(errs, "Promoción debe ser un número válido")
	} else if promo.IsNegative() {
		errs = append(errs, "Promoción no puede ser negativa")
	}

	if errRegular == nil && errPromo == nil && promo.GreaterThan(regular) {
		errs = append(errs, "La promoción no puede ser mayor al costo regular")
	}

	if utf8.RuneCountInString(nombre) > maxNombreTratamiento {
		errs = append(errs, fmt.Sprintf("El nombre del tratamiento no puede exceder %d caracteres", maxNombreTratamiento))
	}
	return resultado(errs)
}

// ── Search / Stats / Export ───────────────────────────────────────────────────

// Search is a case-insensitive substring match on name or description.
func (s *catalogoService) Search(ctx context.Context, query string) []model.Tratamiento {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []model.Tratamiento{}
	for _, t := range s.ListAll(ctx) {
		if strings.Contains(strings.ToLower(t.Nombre), q) || strings.Contains(strings.ToLower(t.Descripcion), q) {
			out = append(out, t)
		}
	}
	return out
}

func (s *catalogoService) Stats(ctx context.Context) dto.CatalogoStats {
	all, custom := s.listAll(ctx)
	return dto.CatalogoStats{
		Total:               len(all),
		Default:             len(all) - custom,
		Custom:              custom,
		AverageRegularPrice: promedio(all, func(t model.Tratamiento) decimal.Decimal { return t.CostoRegular }),
		AveragePromoPrice:   promedio(all, func(t model.Tratamiento) decimal.Decimal { return t.Promocion }),
	}
}

// promedio is the arithmetic mean, zero for an empty list.
func promedio(ts []model.Tratamiento, campo func(model.Tratamiento) decimal.Decimal) decimal.Decimal {
	if len(ts) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, t := range ts {
		total = total.Add(campo(t))
	}
	return total.Div(decimal.NewFromInt(int64(len(ts))))
}

func (s *catalogoService) ExportCatalog(ctx context.Context) dto.CatalogoExport {
	return dto.CatalogoExport{
		Treatments: s.ListAll(ctx),
		ExportDate: isoTimestamp(s.now()),
		Stats:      s.Stats(ctx),
	}
}

// Descuento returns the rounded discount percentage, e.g. "54%".
func Descuento(regular, promo decimal.Decimal) string {
	if !regular.IsPositive() || !promo.IsPositive() {
		return "0%"
	}
	pct := regular.Sub(promo).Div(regular).Mul(decimal.NewFromInt(100)).Round(0)
	return pct.String() + "%"
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// nextID derives an id from the creation time, kept strictly above maxExisting.
func nextID(now time.Time, maxExisting int64) int64 {
	id := now.UnixMilli()
	if id <= maxExisting {
		id = maxExisting + 1
	}
	return id
}

// isoTimestamp matches the JavaScript toISOString form used by older snapshots.
func isoTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
