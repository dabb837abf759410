package main

import (
	"context"
	"database/sql"
	"flag"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/journey-insights-api/internal/config"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func main() {
	adminEmail := flag.String("admin-email", "", "email do administrador criado junto com o schema")
	adminPassword := flag.String("admin-password", "", "senha do administrador")
	adminName := flag.String("admin-name", "Admin", "nome do administrador")
	flag.Parse()

	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := applySchema(ctx, tx); err != nil {
			return err
		}

		if *adminEmail == "" {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		created, err := seedAdmin(ctx, tx, *adminName, strings.ToLower(strings.TrimSpace(*adminEmail)), string(hash), domain.RoleAdmin)
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"email":   *adminEmail,
			"created": created,
		}).Info("Administrador processado")
		return nil
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração falhou, nenhuma alteração aplicada")
	}

	logrus.WithFields(logrus.Fields{
		"statements": len(schema),
		"duration":   time.Since(startTime).String(),
	}).Info("Migração concluída com sucesso")
}
