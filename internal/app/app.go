package app

import (
	"net/http"

	"home-rota-go/internal/config"
	"home-rota-go/internal/db"
	homedomain "home-rota-go/internal/domain/home"
	rotationdomain "home-rota-go/internal/domain/rotation"
	userdomain "home-rota-go/internal/domain/user"
	homerepo "home-rota-go/internal/repository/postgres/home"
	rotationrepo "home-rota-go/internal/repository/postgres/rotation"
	userrepo "home-rota-go/internal/repository/postgres/user"
	"home-rota-go/internal/transport/httpserver"
	"home-rota-go/internal/transport/httpserver/handler"
	authmw "home-rota-go/internal/transport/httpserver/middleware"
	"home-rota-go/pkg/logger"

	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	homes := homedomain.NewService(homerepo.NewPostgres(dbConn))
	users := userdomain.NewService(userrepo.NewPostgres(dbConn), homes)
	rotations := rotationdomain.NewService(rotationrepo.NewPostgres(dbConn), users)

	log.Info("app: initializing router")
	handlers := handler.New(users, homes, rotations, log)
	guard := authmw.NewPermissionGuard(users, log)
	router := httpserver.NewRouter(cfg, handlers, guard)

	log.Info("app: initializing http server")
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
