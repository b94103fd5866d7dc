package main

import (
	"fmt"
	"log/slog"

	"github.com/rpggio/keydeck/internal/config"
	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/seed"
	"github.com/rpggio/keydeck/internal/sqlite"
)

type services struct {
	db       *sqlite.DB
	Boards   *board.Service
	Projects *project.Service
}

func (s *services) Close() error {
	return s.db.Close()
}

func buildServices(cfg config.Config, logger *slog.Logger) (*services, error) {
	seeds, err := seed.Load(cfg.Board.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("loading seed projects: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	projectSvc := project.NewService(sqlite.NewProjectRepository(db), logger)
	boardSvc := board.NewService(sqlite.NewBoardRepository(db), projectSvc, seeds, logger)

	return &services{
		db:       db,
		Boards:   boardSvc,
		Projects: projectSvc,
	}, nil
}
