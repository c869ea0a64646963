package handlers

import (
	"kicksranker/internal/config"
	"kicksranker/internal/provider"
	"kicksranker/internal/services"
)

type Deps struct {
	Config            config.Config
	StatusHandler     *StatusHandler
	TrendingHandler   *TrendingHandler
	DiagnosticHandler *DiagnosticHandler
}

func NewDeps(cfg config.Config, p provider.Provider) *Deps {
	trendingSvc := services.NewTrendingService(cfg, p)

	return &Deps{
		Config:            cfg,
		StatusHandler:     &StatusHandler{Cfg: cfg},
		TrendingHandler:   &TrendingHandler{Svc: trendingSvc, Debug: cfg.Debug},
		DiagnosticHandler: &DiagnosticHandler{Svc: trendingSvc},
	}
}
