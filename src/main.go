package main

import (
	"context"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"fintrack-server/src/api"
	"fintrack-server/src/config"
	"fintrack-server/src/db"
	sql "fintrack-server/src/db/sql"
)

func main() {
	cfg := config.Load()

	// Amounts serialize as plain JSON numbers, matching the web client.
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("DB migration failed: %v", err)
	}

	db.InitCache()

	store := &sql.Store{Pool: pool}
	router := api.NewRouter(store, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
