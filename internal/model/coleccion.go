package model

import "time"

// Coleccion is one persisted collection document (postgres driver).
// Clave: "renove_patients" | "renove_treatments"
type Coleccion struct {
	Clave     string `gorm:"type:varchar(64);primaryKey"`
	Datos     string `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (Coleccion) TableName() string { return "colecciones" }
