// @title BreakFree API
// @description Incident ledger and derived-metrics backend for the habit-breaking app "BreakFree"
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/pressly/goose"

	"github.com/limbo/breakfree/internal/api"
	"github.com/limbo/breakfree/internal/repository"
	"github.com/limbo/breakfree/internal/service"
	"github.com/limbo/breakfree/pkg/blob"
	"github.com/limbo/breakfree/pkg/cleanup"
	"github.com/limbo/breakfree/pkg/config"
	jwtservice "github.com/limbo/breakfree/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func runMigrations(dbCfg repository.DBConfig, dir string) {
	conn, err := sql.Open("postgres", dbCfg.ConnString())
	if err != nil {
		log.Fatal("opening migration connection error: " + err.Error())
	}
	defer conn.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		log.Fatal("setting migration dialect error: " + err.Error())
	}
	if err = goose.Up(conn, dir); err != nil {
		log.Fatal("applying migrations error: " + err.Error())
	}
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	runMigrations(&dbCfg, cfg.GetStringOrDefault("MIGRATIONS_DIR", "./migrations"))

	usersRepo := repository.NewUsersRepo(&dbCfg)
	profilesRepo := repository.NewProfilesRepo(&dbCfg)
	entriesRepo := repository.NewEntriesRepo(&dbCfg)

	source, err := repository.NewPGNotificationSource(context.Background(), &dbCfg)
	if err != nil {
		log.Fatal("opening profile updates listener error: " + err.Error())
	}
	watcher := repository.NewProfileWatcher(profilesRepo, source)
	cleanup.Register(&cleanup.Job{
		Name: "Closing profile watcher",
		F:    watcher.Close,
	})

	var voice service.VoiceUploaderI
	if bucket := cfg.GetString("GCS_BUCKET"); bucket != "" {
		store, err := blob.NewGCSStore(context.Background(), bucket, cfg.GetString("GCS_CREDENTIALS"))
		if err != nil {
			log.Fatal("creating voice note store error: " + err.Error())
		}
		cleanup.Register(&cleanup.Job{
			Name: "Closing voice note store",
			F:    store.Close,
		})
		voice = store
	} else {
		log.Println("GCS_BUCKET is not set, voice note uploads are disabled")
	}

	userService := service.NewUserService(usersRepo, profilesRepo)
	ledgerService := service.NewLedgerService(profilesRepo, entriesRepo, voice)
	serv := api.New(&api.ServicesList{
		UserService:   userService,
		LedgerService: ledgerService,
		JwtService:    jwtservice.New(cfg.GetString("JWT_SECRET")),
		Watcher:       watcher,
	})
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
