package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/codeforge/internal/cli"
	"github.com/alexanderramin/codeforge/internal/config"
	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/llm"
	"github.com/alexanderramin/codeforge/internal/pipeline"
	"github.com/alexanderramin/codeforge/internal/repository"
	"github.com/alexanderramin/codeforge/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	if err := userRepo.EnsureDefaults(context.Background()); err != nil {
		return fmt.Errorf("seeding default users: %w", err)
	}

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewChatClient(llmCfg, observer)

	orchestrator := pipeline.NewOrchestrator(
		pipeline.NewAnalyzer(client, logger),
		pipeline.NewGenerator(client, cfg.CommentLanguage, logger),
		pipeline.NewValidator(client, logger),
		logger,
	)

	srv := server.New(server.Config{
		Users:      userRepo,
		Sessions:   sessionRepo,
		Projects:   projectRepo,
		UnitOfWork: uow,
		Pipeline:   orchestrator,
		Logger:     logger,
		CookieName: config.SessionCookie,
	})

	app := &cli.App{
		Server:   srv,
		Sessions: sessionRepo,
		Addr:     cfg.ListenAddr,
		Logger:   logger,
	}
	return cli.NewRootCmd(app).Execute()
}
