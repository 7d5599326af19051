package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/aliskhannn/ysquiz/internal/config"
	"github.com/aliskhannn/ysquiz/internal/infra/postgres"
	"github.com/aliskhannn/ysquiz/internal/logger"
	"github.com/aliskhannn/ysquiz/internal/repository"
	"github.com/aliskhannn/ysquiz/internal/service"
	"github.com/aliskhannn/ysquiz/migrations"
)

func main() {
	migrate := pflag.Bool("migrate", false, "create the question bank tables first")
	name := pflag.String("name", "", "store the set under this name (single file only)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: seed [--migrate] [--name NAME] FILE...")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	files := pflag.Args()
	if len(files) == 0 && !*migrate {
		pflag.Usage()
		os.Exit(2)
	}
	if *name != "" && len(files) != 1 {
		log.Fatal("--name needs exactly one file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg := logger.Must(cfg)
	defer func() { _ = lg.Sync() }()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		log.Fatal("DATABASE_URL: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if *migrate {
		scripts, err := migrations.Scripts()
		if err != nil {
			lg.Fatal("failed to read migrations", zap.Error(err))
		}
		for _, script := range scripts {
			if _, err := pool.Exec(ctx, script); err != nil {
				lg.Fatal("failed to apply migration", zap.Error(err))
			}
		}
		lg.Info("schema ready", zap.Int("scripts", len(scripts)))
	}

	importer := service.NewImportService(postgres.NewTransactor(pool, lg))

	for _, path := range files {
		set, err := repository.LoadQuestionSet(path)
		if err != nil {
			lg.Fatal("failed to load question set", zap.String("path", path), zap.Error(err))
		}
		if *name != "" {
			set.Name = *name
		}

		if err := importer.Import(ctx, set); err != nil {
			lg.Fatal("failed to import question set", zap.String("set", set.Name), zap.Error(err))
		}

		lg.Info("question set imported",
			zap.String("set", set.Name),
			zap.Int("questions", len(set.Questions)),
		)
	}
}
