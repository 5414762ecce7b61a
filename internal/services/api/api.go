// Package api provides the HTTP API for the application
package api

import (
	"time"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/platform/config"
	"animefinder/internal/platform/logger"
	phttp "animefinder/internal/platform/net/http"
	"animefinder/internal/platform/store"

	"animefinder/internal/modkit"
	"animefinder/internal/modkit/httpkit"
	"animefinder/internal/modkit/swaggerkit"

	fandommod "animefinder/internal/services/api/fandom/module"
	historymod "animefinder/internal/services/api/history/module"
	identifymod "animefinder/internal/services/api/identify/module"
	metamod "animefinder/internal/services/api/meta/module"
	recommendmod "animefinder/internal/services/api/recommend/module"
	streamingmod "animefinder/internal/services/api/streaming/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	LLM            llm.Completer
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		PG:    st.PG,
		CH:    st.CH,
		Cache: st.Cache,
		LLM:   opt.LLM,
	}
	deps.Log = *logger.Named("api")
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if deps.LLM == nil {
		deps.LLM = llm.NewClient(llm.Config{})
	}

	mods := []modkit.Module{
		metamod.New(deps),
		identifymod.New(deps),
		streamingmod.New(deps),
		fandommod.New(deps),
		recommendmod.New(deps),
		historymod.New(deps),
	}

	ac := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: ac.MayCSV("CORS_ORIGINS", nil),
		Slow:        time.Duration(ac.MayInt("SLOW_MS", 2000)) * time.Millisecond,
		Timeout:     ac.MayDuration("REQUEST_TIMEOUT", 45*time.Second),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
}
