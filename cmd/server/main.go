package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/matthewbaird/framegen/internal/server"
	"github.com/matthewbaird/framegen/internal/store"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "file:framegen.db"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	runs := store.NewSQLiteStore(db)
	if err := runs.CreateTable(ctx); err != nil {
		log.Fatalf("creating runs table: %v", err)
	}
	log.Println("database ready")

	port := 8080
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	var idle time.Duration
	if v := os.Getenv("SESSION_IDLE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			idle = d
		}
	}

	if err := server.Run(ctx, server.Config{
		Port:        port,
		Store:       runs,
		SessionIdle: idle,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
