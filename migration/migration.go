package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pokequest-lab/backend/internal/entity"
	"github.com/pokequest-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

//go:embed mysql/*
var mysqlFS embed.FS

var migrators = []struct {
	version string
	f       func(context.Context) error
}{
	{"0000", migrate0000},
	{"0001", migrate0001},
}

// Migrate applies all pending versioned migrators in order. Applied versions
// are tracked in the migrations table.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for _, m := range migrators {
		var record entity.Migration
		err := xcontext.DB(ctx).Take(&record, "version=?", m.version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := m.f(ctx); err != nil {
			return fmt.Errorf("migrator %s: %w", m.version, err)
		}

		err = xcontext.DB(ctx).Create(&entity.Migration{Version: m.version}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// MigrationsTempDir creates a temporary directory, populates it with the
// migration files, and returns the path to that directory.
// This is useful to run database migrations with only the binary without having
// to ship around the migration files separately.
//
// It is the caller's repsonsibility to remove the directory when it is no
// longer needed.
func MigrationsTempDir() (string, error) {
	tmpDir, err := os.MkdirTemp("", "")
	if err != nil {
		return "", err
	}

	mFS, err := fs.Sub(mysqlFS, "mysql")
	if err != nil {
		return "", err
	}

	if err := fs.WalkDir(mFS, ".", func(path string, d fs.DirEntry, _ error) error {
		dst := filepath.Join(tmpDir, path)
		if dst == tmpDir {
			return nil
		}

		if d.IsDir() {
			return nil
		}

		content, err := mysqlFS.ReadFile(filepath.Join("mysql", path))
		if err != nil {
			return err
		}

		return os.WriteFile(dst, content, 0600)
	}); err != nil {
		return "", err
	}

	return tmpDir, nil
}

type dbLogger struct{}

func (l *dbLogger) Printf(format string, v ...interface{}) {
	fmt.Printf(format, v...)
}

func (l *dbLogger) Verbose() bool {
	return true
}

// DoSqlMigration does sql migration in external database using the
// "golang-migrate/migrate" lib.
func DoSqlMigration(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return err
	}

	// Write the migrations to a temporary directory so they don't need to be
	// managed out of band from the binary.
	migrationDir, err := MigrationsTempDir()
	if err != nil {
		return fmt.Errorf("failed to create temporary directory for migrations: %w", err)
	}
	defer os.RemoveAll(migrationDir)

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationDir,
		"mysql",
		driver,
	)
	if err != nil {
		return err
	}

	m.Log = &dbLogger{}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
