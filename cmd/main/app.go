package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"libraryBackend/internal/auth"
	"libraryBackend/internal/book"
	"libraryBackend/internal/config"
	"libraryBackend/internal/handlers"
	"libraryBackend/internal/user"
	"libraryBackend/package/client/database"
	"libraryBackend/package/logger"
	"libraryBackend/package/middleware"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the configuration file")
	adminUsername := flag.String("admin-username", "", "Create an admin user with this username and exit")
	adminPassword := flag.String("admin-password", "", "Password for -admin-username")
	flag.Parse()

	// A .env file is optional; real environments export the variables.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatal("Can not read configuration: " + err.Error())
	}

	log := logger.New(cfg.IsDebug)

	log.Info("Starting database")
	db, err := database.Init(cfg, log)
	if err != nil {
		log.Fatal("Can not connect to database: " + err.Error())
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Error("Can not close database")
		}
	}(db)

	hasher := auth.NewHasher(bcrypt.DefaultCost)

	if *adminUsername != "" {
		createSuperuser(user.NewStorage(db), hasher, *adminUsername, *adminPassword, log)
		return
	}

	tokens, err := auth.NewTokenService(cfg.Auth.SecretKey)
	if err != nil {
		log.Fatal("Can not create token service: " + err.Error())
	}

	router := httprouter.New()

	userHandler := user.NewHandler(user.NewStorage(db), hasher, tokens, cfg.Auth.TokenTTL(), log)
	userHandler.Register(router)

	bookHandler := book.NewHandler(book.NewStorage(db), log)
	bookHandler.Register(router)

	healthHandler := handlers.NewHealthHandler(log)
	healthHandler.Register(router)

	log.Info("Starting app")
	start(middleware.Logging(log, router), cfg, log)
}

// createSuperuser inserts an administrator account directly into storage.
// Used once at deploy time via the -admin-username/-admin-password flags.
func createSuperuser(storage user.Storage, hasher auth.Hasher, username, password string, log *logrus.Logger) {
	if password == "" {
		log.Fatal("-admin-password is required with -admin-username")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatal("Can not hash admin password: " + err.Error())
	}

	created, err := storage.Create(context.Background(), username, hash, true)
	if err != nil {
		log.Fatal("Can not create admin user: " + err.Error())
	}

	log.Info(fmt.Sprintf("Created admin user %s with id %d", created.Username, created.ID))
}

func start(handler http.Handler, cfg *config.Config, log *logrus.Logger) {
	log.Info("Starting router")
	log.Info("Listening TCP")
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port))
	if err != nil {
		log.Fatal("Listener was not created: " + err.Error())
	}
	log.Info("Listening ", fmt.Sprintf("%s:%s", cfg.Listen.BindIp, cfg.Listen.Port))

	server := &http.Server{
		Handler:      handler,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	if err := server.Serve(listener); err != nil {
		log.Fatal("Server stopped: " + err.Error())
	}
}
