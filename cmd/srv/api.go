package main

import (
	"net/http"

	"github.com/pokequest-lab/backend/internal/middleware"
	"github.com/pokequest-lab/backend/pkg/prometheus"
	"github.com/pokequest-lab/backend/pkg/router"
	"github.com/pokequest-lab/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	httpSrv := &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Server start in port: %s", cfg.ApiServer.Port)
	if err := httpSrv.ListenAndServe(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.GET(publicRouter, "/getBanner", s.gachaDomain.GetBanner)
	}

	// Authenticated API
	authVerifier := middleware.NewAuthVerifier()
	authRouter := s.router.Branch()
	authRouter.Before(authVerifier.Middleware())
	{
		router.POST(authRouter, "/buyGacha", s.gachaDomain.BuyGacha)
		router.GET(authRouter, "/getPityState", s.gachaDomain.GetPityState)
		router.GET(authRouter, "/getPurchaseHistory", s.gachaDomain.GetPurchaseHistory)

		router.GET(authRouter, "/getBalance", s.walletDomain.GetBalance)
		router.GET(authRouter, "/getLedger", s.walletDomain.GetLedger)
	}
}
