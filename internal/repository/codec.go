package repository

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"renove/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// The stored documents are JSON arrays written by this service or imported
// from older snapshots. Decoding never fails: malformed numbers become zero,
// non-object elements are skipped, and a document that is not an array reads
// as empty.

// montoFlexible accepts JSON numbers and numeric strings; anything else is zero.
type montoFlexible decimal.Decimal

func (m *montoFlexible) UnmarshalJSON(b []byte) error {
	*m = montoFlexible(leerMonto(b))
	return nil
}

// textoFlexible accepts strings, numbers and booleans.
type textoFlexible string

func (t *textoFlexible) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = textoFlexible(s)
			return nil
		}
		*t = ""
		return nil
	}
	*t = textoFlexible(string(b))
	return nil
}

func leerMonto(b []byte) decimal.Decimal {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return decimal.Zero
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero
		}
		s = strings.TrimSpace(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type pagoAlmacenado struct {
	Metodo        textoFlexible            `json:"metodo"`
	PagoRealizado montoFlexible            `json:"pago_realizado"`
	Moneda        textoFlexible            `json:"moneda"`
	Detalle       map[string]montoFlexible `json:"detalle"`
}

type pacienteAlmacenado struct {
	ID            montoFlexible   `json:"id"`
	Fecha         textoFlexible   `json:"fecha"`
	Sucursal      textoFlexible   `json:"sucursal"`
	Cliente       textoFlexible   `json:"cliente"`
	Telefono      textoFlexible   `json:"telefono"`
	Tratamiento   textoFlexible   `json:"tratamiento"`
	CostoRegular  montoFlexible   `json:"costo_regular"`
	Promocion     montoFlexible   `json:"promocion"`
	Pago          json.RawMessage `json:"pago"`
	Observaciones textoFlexible   `json:"observaciones"`
}

type tratamientoAlmacenado struct {
	ID           montoFlexible `json:"id"`
	Nombre       textoFlexible `json:"nombre"`
	CostoRegular montoFlexible `json:"costo_regular"`
	Promocion    montoFlexible `json:"promocion"`
	Descripcion  textoFlexible `json:"descripcion"`
	Created      textoFlexible `json:"created"`
}

func decodePago(raw json.RawMessage) model.Pago {
	var p pagoAlmacenado
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Warn().Err(err).Msg("codec: pago ilegible, se toma como vacío")
		}
	}
	pago := model.Pago{
		Metodo:        model.MetodoPago(strings.ToLower(strings.TrimSpace(string(p.Metodo)))),
		PagoRealizado: decimal.Decimal(p.PagoRealizado),
		Moneda:        string(p.Moneda),
		Detalle:       make(map[model.MetodoPago]decimal.Decimal, len(p.Detalle)),
	}
	if pago.Moneda == "" {
		pago.Moneda = model.MonedaMXN
	}
	for k, v := range p.Detalle {
		pago.Detalle[model.MetodoPago(strings.ToLower(k))] = decimal.Decimal(v)
	}
	if !pago.Metodo.Valido() {
		log.Warn().Str("metodo", string(pago.Metodo)).Msg("codec: método de pago desconocido")
	}
	return pago
}

// DecodePacientes reads a stored visit-record document.
func DecodePacientes(data []byte) []model.RegistroPaciente {
	elems := decodeArray(data, KeyPacientes)
	out := make([]model.RegistroPaciente, 0, len(elems))
	for i, raw := range elems {
		var a pacienteAlmacenado
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Warn().Err(err).Int("indice", i).Msg("codec: registro de paciente ilegible, se omite")
			continue
		}
		r := model.RegistroPaciente{
			ID:            decimal.Decimal(a.ID).IntPart(),
			Sucursal:      string(a.Sucursal),
			Cliente:       string(a.Cliente),
			Telefono:      string(a.Telefono),
			Tratamiento:   string(a.Tratamiento),
			CostoRegular:  decimal.Decimal(a.CostoRegular),
			Promocion:     decimal.Decimal(a.Promocion),
			Pago:          decodePago(a.Pago),
			Observaciones: string(a.Observaciones),
		}
		if a.Fecha != "" {
			f, err := model.ParseFecha(string(a.Fecha))
			if err != nil {
				log.Warn().Int64("id", r.ID).Str("fecha", string(a.Fecha)).Msg("codec: fecha ilegible")
			}
			r.Fecha = f
		}
		out = append(out, r)
	}
	return out
}

// DecodeTratamientos reads a stored custom-treatment document. Every entry in
// it is custom by definition.
func DecodeTratamientos(data []byte) []model.Tratamiento {
	elems := decodeArray(data, KeyTratamientos)
	out := make([]model.Tratamiento, 0, len(elems))
	for i, raw := range elems {
		var a tratamientoAlmacenado
		if err := json.Unmarshal(raw, &a); err != nil {
			log.Warn().Err(err).Int("indice", i).Msg("codec: tratamiento ilegible, se omite")
			continue
		}
		t := model.Tratamiento{
			ID:           decimal.Decimal(a.ID).IntPart(),
			Nombre:       string(a.Nombre),
			CostoRegular: decimal.Decimal(a.CostoRegular),
			Promocion:    decimal.Decimal(a.Promocion),
			Descripcion:  string(a.Descripcion),
			Custom:       true,
		}
		if a.Created != "" {
			if ts, err := time.Parse(time.RFC3339, string(a.Created)); err == nil {
				t.Created = &ts
			}
		}
		out = append(out, t)
	}
	return out
}

func decodeArray(data []byte, key string) []json.RawMessage {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		log.Error().Err(err).Str("clave", key).Msg("codec: documento ilegible, se lee vacío")
		return nil
	}
	return elems
}

// EncodePacientes writes the stored document; nil encodes as [].
func EncodePacientes(all []model.RegistroPaciente) ([]byte, error) {
	if all == nil {
		all = []model.RegistroPaciente{}
	}
	return json.Marshal(all)
}

func EncodeTratamientos(all []model.Tratamiento) ([]byte, error) {
	if all == nil {
		all = []model.Tratamiento{}
	}
	return json.Marshal(all)
}
