// seed carga los datos iniciales (usuarios admin/guillem/divain y tres items de ejemplo)
// sin arrancar el servidor.
//
// Uso: go run ./cmd/seed [--reset]
// Sin flags solo carga si items, movimientos y usuarios están vacíos.
// Con --reset borra todo y vuelve a cargar.
package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/store"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	reset := len(os.Args) > 1 && os.Args[1] == "--reset"

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.DB.Driver == config.DriverMemory {
		log.Fatal().Msg("seed no tiene efecto con DB_DRIVER=memory")
	}

	ctx := context.Background()
	clock, err := inventory.NewClock(cfg.Ledger.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del ledger")
	}
	stores, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer stores.Close()

	seeder := inventory.NewSeeder(stores.Tx, clock, cfg.Seed.Password)
	if reset {
		if err := seeder.Reset(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset")
		}
		log.Info().Msg("datos reiniciados")
		return
	}
	status, err := seeder.SeedIfEmpty(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("carga inicial")
	}
	log.Info().Str("status", string(status)).Msg("carga inicial")
}
