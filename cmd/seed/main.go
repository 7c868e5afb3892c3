// Command seed loads a curriculum into the database. Sources are the built-in
// starter curriculum, a YAML file, or an .xlsx spreadsheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yungbote/lingo-backend/internal/curriculum"
	"github.com/yungbote/lingo-backend/internal/data/db"
	"github.com/yungbote/lingo-backend/internal/data/repos"
	"github.com/yungbote/lingo-backend/internal/platform/envutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/platform/shutdown"
)

func main() {
	file := flag.String("file", "", "curriculum .yaml or .xlsx (default: built-in)")
	sheet := flag.String("sheet", curriculum.DefaultSheet, "sheet name for .xlsx input")
	template := flag.String("template", "", "write the built-in curriculum as .xlsx to this path and exit")
	flag.Parse()

	_ = godotenv.Load()
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *template != "" {
		if err := writeTemplate(*template); err != nil {
			log.Fatal("Failed to write template", "error", err)
		}
		log.Info("Template written", "path", *template)
		return
	}

	c, err := load(*file, *sheet)
	if err != nil {
		log.Fatal("Failed to load curriculum", "error", err)
	}

	dbService, err := db.NewService(log, db.Config{
		Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
		PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
		PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
		PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
		PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
		PostgresName:     envutil.String("POSTGRES_NAME", "lingo"),
		PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       envutil.String("SQLITE_PATH", "lingo.db"),
	})
	if err != nil {
		log.Fatal("Failed to connect database", "error", err)
	}
	defer dbService.Close()
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Automigrate failed", "error", err)
	}

	theDB := dbService.DB()
	im := curriculum.NewImporter(theDB, log,
		repos.NewCourseRepo(theDB, log),
		repos.NewUnitRepo(theDB, log),
		repos.NewLessonRepo(theDB, log),
		repos.NewChallengeRepo(theDB, log),
	)

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()
	res, err := im.Import(ctx, c)
	if err != nil {
		log.Fatal("Import failed", "error", err)
	}
	for _, title := range res.Skipped {
		log.Info("Course already present, skipped", "course", title)
	}
}

func load(path, sheet string) (*curriculum.Curriculum, error) {
	if path == "" {
		return curriculum.Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return curriculum.ParseExcel(f, sheet)
	case ".yaml", ".yml":
		return curriculum.ParseYAML(f)
	default:
		return nil, fmt.Errorf("unsupported curriculum file %q", path)
	}
}

func writeTemplate(path string) error {
	c, err := curriculum.Default()
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := curriculum.WriteExcel(out, c); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
