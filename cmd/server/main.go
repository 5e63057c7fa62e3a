package main

import (
	"fmt"
	"net/http"

	"vinworld/config"
	"vinworld/db"
	"vinworld/db/mongo"
	"vinworld/db/postgres"
	"vinworld/docket"
	"vinworld/handlers"
	"vinworld/ocr"
	"vinworld/routes"
	"vinworld/session"
	"vinworld/upstream"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	// Ephemeral sessions always live in memory; DB_TYPE selects where
	// remember-me sessions and the remembered username persist.
	ephemeral := session.NewMemoryStore()
	var persistent session.Store

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		persistent = session.NewPostgresStore(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		persistent = session.NewMongoStore(mg.Client)

	case db.Memory:
		// Remember-me survives only as long as the process does.
		persistent = session.NewMemoryStore()

	default:
		panic("DB_TYPE not supported")
	}

	api := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	sessions := session.NewManager(ephemeral, persistent)

	var recognizer ocr.Recognizer
	if cfg.OCRURL != "" {
		recognizer = ocr.NewHTTPRecognizer(cfg.OCRURL, cfg.UpstreamTimeout)
	}

	// Handlers
	forms := docket.NewFormStore()
	authHandler := &handlers.AuthHandler{API: api, Sessions: sessions, Forms: forms}
	docketHandler := &handlers.DocketHandler{API: api, Auth: authHandler}
	draftHandler := &handlers.DraftHandler{
		API:           api,
		Auth:          authHandler,
		Forms:         forms,
		Recognizer:    recognizer,
		Submit:        &docket.Submitter{API: api},
		ArchiveImages: cfg.ArchiveImages,
	}

	routes.SetupRoutes(authHandler, docketHandler, draftHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
