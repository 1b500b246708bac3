// Command migrate applies the embedded SQL migrations. Table names carry
// the per-environment prefix, so the embedded files use a {{PREFIX}}
// placeholder rendered before goose sees them.
package main

import (
	"database/sql"
	"embed"
	"flag"
	"io/fs"
	"log"
	"strings"
	"testing/fstest"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"protrack/internal/config"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of migrating up")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rendered, err := renderMigrations(embeddedMigrations, cfg.TablePrefix)
	if err != nil {
		log.Fatalf("Failed to render migrations: %v", err)
	}

	goose.SetBaseFS(rendered)
	goose.SetTableName(cfg.TablePrefix + "goose_db_version")
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	if *down {
		if err := goose.Down(db, "migrations"); err != nil {
			log.Fatalf("Failed to roll back: %v", err)
		}
		log.Printf("Rolled back one migration (prefix %q)", cfg.TablePrefix)
		return
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	log.Printf("Migrations applied (prefix %q)", cfg.TablePrefix)
}

// renderMigrations substitutes the table prefix into every embedded
// migration, returning an in-memory filesystem goose can walk.
func renderMigrations(src fs.FS, prefix string) (fs.FS, error) {
	out := fstest.MapFS{}

	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		out[path] = &fstest.MapFile{
			Data: []byte(strings.ReplaceAll(string(data), "{{PREFIX}}", prefix)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
