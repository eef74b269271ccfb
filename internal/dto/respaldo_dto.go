package dto

import (
	"encoding/json"

	"renove/internal/model"
)

// VersionRespaldo is written to every snapshot.
const VersionRespaldo = "1.0"

// Respaldo is the full-data snapshot document.
type Respaldo struct {
	Patients   []model.RegistroPaciente `json:"patients"`
	Treatments []model.Tratamiento      `json:"treatments"`
	ExportDate string                   `json:"exportDate"`
	Version    string                   `json:"version"`
}

// RespaldoEntrada is an incoming snapshot. The arrays stay raw so they go
// through the same lenient decoding as stored documents; a missing array
// leaves that collection untouched.
type RespaldoEntrada struct {
	Patients   json.RawMessage `json:"patients"`
	Treatments json.RawMessage `json:"treatments"`
	ExportDate string          `json:"exportDate"`
	Version    string          `json:"version"`
}

// ImportResultado reports how many entries each replaced collection now holds.
// A nil count means that collection was not part of the snapshot.
type ImportResultado struct {
	Pacientes    *int `json:"pacientes"`
	Tratamientos *int `json:"tratamientos"`
}
