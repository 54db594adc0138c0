package main

import (
	"go.uber.org/zap"

	"github.com/leagermaxl/nutri-smart/config"
	"github.com/leagermaxl/nutri-smart/logger"
	"github.com/leagermaxl/nutri-smart/routes"
)

func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	log := logger.L()

	cfg := config.Load(log)
	db := config.InitDB(cfg, log)

	r := routes.SetupRouter(cfg, db, log)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
