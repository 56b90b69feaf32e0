// Package pg provides helpers for connecting to PostgreSQL with pgx and
// running goose migrations.
//
// The package offers:
//
//   - `Connect` which builds a pgxpool.Pool from Config and retries the
//     initial connection.
//   - `Migrate` which applies the SQL migrations shipped with the module
//     (pkg/billing/migrations by default) using pressly/goose.
//   - `Healthcheck` for liveness / readiness probes.
//   - Error classification helpers (IsNotFoundError, IsDuplicateKeyError,
//     IsForeignKeyViolationError) that understand pgx and PostgreSQL error
//     codes.
//
// Configuration is described by the `Config` struct whose fields can be
// populated from environment variables via github.com/caarlos0/env.
//
// # Usage
//
//	import (
//	    "github.com/onteko/billingkit/pkg/config"
//	    "github.com/onteko/billingkit/pkg/pg"
//	)
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    log.Fatal(err)
//	}
//
// The pool plugs straight into billing.NewPGTransactionStore.
package pg
