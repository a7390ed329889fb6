package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"resourcehub/config"
	"resourcehub/database"
	"resourcehub/routes"
	"resourcehub/services"
	"resourcehub/storage"
	"resourcehub/utils"
)

func main() {
	app, err := NewApplication()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize application")
	}

	if err := app.Start(); err != nil {
		logrus.WithError(err).Fatal("Failed to start application")
	}
}

// Application wires configuration, database, storage and the HTTP server.
type Application struct {
	config *config.Config
	server *http.Server
	router *gin.Engine
}

func NewApplication() (*Application, error) {
	cfg := config.LoadConfig()
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTRefreshSecret)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		gin.SetMode(gin.DebugMode)
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	router := gin.New()
	router.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	app := &Application{
		config: cfg,
		router: router,
		server: &http.Server{
			Addr:         cfg.GetServerAddress(),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	return app, nil
}

// Start connects the backing services and runs the HTTP server until a
// shutdown signal arrives.
func (app *Application) Start() error {
	logrus.WithFields(logrus.Fields{
		"app":         app.config.AppName,
		"version":     app.config.AppVersion,
		"environment": app.config.Environment,
	}).Info("Starting application")

	if err := database.Connect(app.config.MongoURI, app.config.DBName); err != nil {
		return err
	}

	storageClient, err := storage.NewClient(&app.config.Storage)
	if err != nil {
		return err
	}
	services.Configure(storageClient, app.config.StorageTimeout)

	routes.SetupRoutes(app.router, app.config)

	go func() {
		logrus.WithField("addr", app.server.Addr).Info("Server listening")
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	app.waitForShutdown()
	return nil
}

func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutdown signal received")
	app.shutdown()
}

func (app *Application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("Server forced to shut down")
	}

	if err := database.Disconnect(); err != nil {
		logrus.WithError(err).Warn("Error closing database connection")
	}

	logrus.Info("Server shutdown complete")
}
