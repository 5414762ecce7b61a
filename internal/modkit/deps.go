package modkit

import (
	"animefinder/internal/adapters/llm"
	"animefinder/internal/modkit/repokit"
	"animefinder/internal/platform/config"
	"animefinder/internal/platform/logger"
	"animefinder/internal/platform/store"
)

// Deps holds the shared dependencies handed to every module
// PG, CH and Cache are nil when that backend is disabled
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Cache store.Cache
	LLM   llm.Completer
}
