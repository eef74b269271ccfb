package repository

import (
	"context"
	"errors"
	"time"

	"renove/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresDocs keeps each collection as one jsonb row in "colecciones".
type postgresDocs struct{ db *gorm.DB }

func NewPostgresStore(db *gorm.DB) Store {
	return codecStore{docs: &postgresDocs{db: db}}
}

func (r *postgresDocs) get(ctx context.Context, key string) ([]byte, bool, error) {
	var c model.Coleccion
	err := r.db.WithContext(ctx).Where("clave = ?", key).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(c.Datos), true, nil
}

// put upserts on the primary key, replacing the stored document in one statement.
func (r *postgresDocs) put(ctx context.Context, key string, data []byte) error {
	c := model.Coleccion{Clave: key, Datos: string(data), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clave"}},
		DoUpdates: clause.AssignmentColumns([]string{"datos", "updated_at"}),
	}).Create(&c).Error
}

func (r *postgresDocs) ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
