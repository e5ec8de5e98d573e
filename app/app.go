package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/libman-service/config"
	"github.com/Astemirdum/libman-service/internal/handler"
	"github.com/Astemirdum/libman-service/internal/repository"
	"github.com/Astemirdum/libman-service/internal/server"
	"github.com/Astemirdum/libman-service/internal/service"
	"github.com/Astemirdum/libman-service/pkg/logger"
	"github.com/Astemirdum/libman-service/pkg/mongodb"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "libman")
	db, err := mongodb.NewMongoDB(context.Background(), &cfg.Mongo)
	if err != nil {
		log.Fatal("mongodb init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}
	svc := service.NewService(repo, cfg.JWT, log)

	h := handler.New(svc, svc, svc, cfg.JWT.Secret, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = db.Client().Disconnect(closeCtx); err != nil {
		log.DPanic("mongo disconnect", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
