// @title         AnimeFinder API
// @version       0.1.0
// @description   Identify anime from scene descriptions, with streaming links, wiki art and recommendations
// @BasePath      /api/v1

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/modkit/repokit"
	"animefinder/internal/platform/config"
	"animefinder/internal/platform/logger"
	phttp "animefinder/internal/platform/net/http"
	"animefinder/internal/platform/store"

	"animefinder/internal/services/api"
	identifyrepo "animefinder/internal/services/api/identify/repo"
)

func main() {
	// a missing .env is fine, the environment wins either way
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	rdsCfg := root.Prefix("SERVICE_REDIS_")     // rdsCfg lives under SERVICE_REDIS_*

	// bring up logging early
	l := logger.Get()

	sc := store.Config{
		AppName: "animefinder",
		PG:      store.PGConfig{Enabled: pgCfg.MayBool("ENABLED", false)},
		CH:      store.CHConfig{Enabled: chCfg.MayBool("ENABLED", false), Role: "api"},
		RDS:     store.RedisConfig{Enabled: rdsCfg.MayBool("ENABLED", false)},
	}
	if sc.PG.Enabled {
		sc.PG.URL = pgCfg.MustString("DBURL")
		sc.PG.MaxConns = int32(pgCfg.MayInt("MAX_CONNS", 4))
		sc.PG.SlowQueryMs = pgCfg.MayInt("SLOW_MS", 500)
		sc.PG.LogSQL = pgCfg.MayBool("LOG_SQL", false)
	}
	if sc.CH.Enabled {
		sc.CH.URL = chCfg.MustString("DBURL")
	}
	if sc.RDS.Enabled {
		sc.RDS.Addr = rdsCfg.MustString("ADDR")
		sc.RDS.Password = rdsCfg.MayString("PASSWORD", "")
		sc.RDS.DB = rdsCfg.MayInt("DB", 0)
		sc.RDS.Prefix = rdsCfg.MayString("PREFIX", "animefinder:")
	}

	// every backend is optional; identification works with none of them
	st, err := store.Open(ctx, sc, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	if apiCfg.MayBool("AUTO_MIGRATE", true) {
		if err := identifyrepo.EnsureSchema(ctx, st.PG, st.CH); err != nil {
			l.Panic().Err(err).Msg("schema setup failed")
		}
	}

	completer := llm.NewClient(llm.ConfigFrom(root))
	if !completer.Configured() {
		l.Warn().Msg("no LLM api key set, identify and recommendations will report the AI service as not configured")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			LLM:            completer,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT or SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
