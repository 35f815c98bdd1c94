package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/adminapi"
	"github.com/yallarent/yallarent/internal/app"
	"github.com/yallarent/yallarent/internal/publicapi"
	"github.com/yallarent/yallarent/internal/webserver"
)

var (
	configFile = flag.String("c", "yallarent.yml", "config file path")
	backupNow  = flag.Bool("backup", false, "write a store backup and exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("yallarent", version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *backupNow {
		if err := application.BackupStore(); err != nil {
			zap.L().Fatal("backup failed", zap.Error(err))
		}
		return
	}

	ws := webserver.Init(application)
	publicapi.InitRouter()
	adminapi.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zap.L().Fatal("web server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zap.S().Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ws.Echo().Shutdown(ctx); err != nil {
			zap.L().Error("shutdown error", zap.Error(err))
		}
	}
}
