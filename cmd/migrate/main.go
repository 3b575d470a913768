package main

import (
	"context"
	"time"

	"github.com/sethmayank01/gew-erp/internal/infrastructure/postgres"
	"github.com/sethmayank01/gew-erp/pkg/config"
	"github.com/sethmayank01/gew-erp/pkg/logger"
)

// Crea (idempotente) las tablas del motor de stock: stock, indent_stock,
// job_indents y stock_movements.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("inicializando esquema")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema listo")
}
