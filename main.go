package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzaria-api/internal/config"
	"pizzaria-api/internal/db"
	"pizzaria-api/internal/logger"
	"pizzaria-api/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().Msg("Aplicação iniciando")

	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET não definido, usando chave padrão")
	}

	database := db.InitDB(cfg.DBUrl)
	defer database.Close()

	db.RunMigrations(database)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(database, log, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("Servidor rodando na porta %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Erro no servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Sinal de desligamento recebido...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Falha no desligamento gracioso")
	}

	log.Info().Msg("Servidor encerrado")
}
