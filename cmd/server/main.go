package main

import (
	"reloadtrigger/internal/client"
	"reloadtrigger/internal/common"
	"reloadtrigger/internal/server/handler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := common.InitConf(""); err != nil {
		panic(err)
	}
	config := common.GetConfig()
	common.InitLog(config.LogPath)
	logger := common.GetLogger()
	defer logger.Sync()

	api, err := client.NewFromConfig(config, logger)
	if err != nil {
		logger.Fatal("create control-plane client failed", zap.Error(err))
	}

	// gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// panel properties are re-read on every paint
	loadConfig := func() (common.Config, error) {
		return common.LoadConfig("")
	}
	handler.NewPanelHandler(api, loadConfig, logger).Register(r)

	logger.Info("task panel listening", zap.String("addr", config.ListenAddr), zap.String("server_url", config.ServerURL))
	if config.CertPath != "" && config.KeyPath != "" {
		err = r.RunTLS(config.ListenAddr, config.CertPath, config.KeyPath)
	} else {
		err = r.Run(config.ListenAddr)
	}
	if err != nil {
		panic(err)
	}
}
