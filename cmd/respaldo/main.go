// cmd/respaldo/main.go: exporta o restaura un respaldo contra el
// almacenamiento configurado (STORAGE_DRIVER, DATABASE_URL, REDIS_URL).
// Uso:
//
//	go run ./cmd/respaldo exportar [archivo.json]
//	go run ./cmd/respaldo importar archivo.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"renove/internal/config"
	"renove/internal/dto"
	"renove/internal/repository"
	"renove/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StorageDriver == config.DriverMemory {
		log.Fatal().Msg("STORAGE_DRIVER=memory no tiene datos persistentes que respaldar")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store not ready")
	}
	defer closeStore()

	loc := cfg.Location()
	svc := service.NewRespaldoService(store, func() time.Time { return time.Now().In(loc) })

	switch os.Args[1] {
	case "exportar":
		archivo := svc.NombreArchivo()
		if len(os.Args) > 2 {
			archivo = os.Args[2]
		}
		if err := exportar(ctx, svc, archivo); err != nil {
			log.Fatal().Err(err).Msg("exportar")
		}
		fmt.Printf("✅ Respaldo escrito en %s\n", archivo)
	case "importar":
		if len(os.Args) < 3 {
			usage()
		}
		res, err := importar(ctx, svc, os.Args[2])
		if err != nil {
			var verr *service.ValidationError
			if errors.As(err, &verr) {
				for _, e := range verr.Errors {
					fmt.Fprintln(os.Stderr, "  -", e)
				}
			}
			log.Fatal().Err(err).Msg("importar")
		}
		fmt.Printf("✅ Respaldo restaurado: %s\n", resumen(res))
	default:
		usage()
	}
}

func exportar(ctx context.Context, svc service.RespaldoService, archivo string) error {
	snap, err := svc.Exportar(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(archivo, data, 0o644)
}

func importar(ctx context.Context, svc service.RespaldoService, archivo string) (*dto.ImportResultado, error) {
	data, err := os.ReadFile(archivo)
	if err != nil {
		return nil, err
	}
	var entrada dto.RespaldoEntrada
	if err := json.Unmarshal(data, &entrada); err != nil {
		return nil, fmt.Errorf("%s no es un respaldo JSON: %w", archivo, err)
	}
	return svc.Importar(ctx, entrada)
}

func resumen(res *dto.ImportResultado) string {
	s := ""
	if res.Pacientes != nil {
		s += fmt.Sprintf("%d pacientes ", *res.Pacientes)
	}
	if res.Tratamientos != nil {
		s += fmt.Sprintf("%d tratamientos", *res.Tratamientos)
	}
	return s
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: respaldo exportar [archivo.json] | respaldo importar archivo.json")
	os.Exit(2)
}
