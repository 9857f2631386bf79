package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chat_economy/internal/db"
	"chat_economy/internal/logger"

	"github.com/jackc/pgx/v5"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")

	apply := flag.Bool("apply", false, "apply migrations (default: list only)")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal("read migrations dir", "dir", *dir, "error", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if !*apply {
		for _, name := range files {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			logger.Fatal("read migration", "file", name, "error", err)
		}

		// Each file applies atomically: a failing statement rolls back the
		// whole file, never leaves it half-applied.
		tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			logger.Fatal("begin tx", "file", name, "error", err)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			logger.Fatal("apply migration", "file", name, "error", err)
		}
		if err := tx.Commit(ctx); err != nil {
			logger.Fatal("commit migration", "file", name, "error", err)
		}
		logger.Info("applied migration", "file", name)
	}
}
