package app

import (
	"net/http"

	"gorm.io/gorm"
	"ledger-app-go/internal/config"
	"ledger-app-go/internal/db"
	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/internal/domain/reports"
	"ledger-app-go/internal/repository/ledgerdb"
	"ledger-app-go/internal/transport/httpserver"
	"ledger-app-go/internal/transport/httpserver/handler"
	"ledger-app-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	repo := ledgerdb.New(dbConn)
	ledgerSvc := ledger.NewService(repo)
	reportsSvc := reports.NewService(repo)

	handlers := handler.New(ledgerSvc, reportsSvc, cfg.Reports, log)
	router := httpserver.NewRouter(cfg, handlers, ledgerSvc, log)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
