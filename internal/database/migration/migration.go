// Package migration creates the schema on first start and keeps the built-in templates
// seeded.
package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cvdoc/internal/templates"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_templates",
		SQL: `CREATE TABLE IF NOT EXISTS templates (
  id          TEXT        PRIMARY KEY,
  name        TEXT        NOT NULL,
  description TEXT        NOT NULL DEFAULT '',
  category    TEXT        NOT NULL DEFAULT '',
  features    JSONB       NOT NULL DEFAULT '[]'::jsonb,
  data        JSONB       NOT NULL,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_cvs",
		SQL: `CREATE TABLE IF NOT EXISTS cvs (
  id          UUID        PRIMARY KEY,
  title       TEXT        NOT NULL,
  template_id TEXT        NOT NULL REFERENCES templates (id),
  content     JSONB       NOT NULL,
  views       INTEGER     NOT NULL DEFAULT 0 CHECK (views >= 0),
  downloads   INTEGER     NOT NULL DEFAULT 0 CHECK (downloads >= 0),
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_cvs_updated_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cvs_updated_at ON cvs (updated_at);`,
	},
	{
		Name: "create_table_exports",
		SQL: `CREATE TABLE IF NOT EXISTS exports (
  id           UUID        PRIMARY KEY,
  cv_id        UUID        NOT NULL REFERENCES cvs (id) ON DELETE CASCADE,
  format       TEXT        NOT NULL CHECK (format IN ('pdf', 'png')),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_exports_cv_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_exports_cv_id ON exports (cv_id);`,
	},
}

const seedTemplate = `
INSERT INTO templates (id, name, description, category, features, data)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  description = EXCLUDED.description,
  category = EXCLUDED.category,
  features = EXCLUDED.features,
  data = EXCLUDED.data`

// loadAssets is swapped in tests.
var loadAssets = templates.LoadAssets

// EnsureMigrated creates the schema when the cvs table is missing, then upserts every
// built-in template so masters track the shipped assets.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("checking schema", "event", "db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.cvs') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("sentinel check failed",
			"event", "db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("schema already exists, skipping migration",
			"event", "db_migration_skip",
			"status", "success",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		log.Info("migrating", "event", "db_migration_start", "status", "in_progress")
		for _, step := range steps {
			stepStart := time.Now()
			if _, err := db.ExecContext(ctx, step.SQL); err != nil {
				log.Error("migration step failed",
					"event", "db_migration_failed",
					"status", "error",
					"migration_step", step.Name,
					"error_message", err.Error(),
					"duration_ms", time.Since(start).Milliseconds(),
					"step_duration_ms", time.Since(stepStart).Milliseconds(),
				)
				return fmt.Errorf("migration step %s failed: %w", step.Name, err)
			}
			log.Info("migration step done",
				"event", "db_migration_step",
				"status", "success",
				"migration_step", step.Name,
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
		}
	}

	n, err := seed(ctx, db)
	if err != nil {
		log.Error("template seed failed",
			"event", "db_seed_failed",
			"status", "error",
			"error_message", err.Error(),
		)
		return err
	}

	log.Info("database ready",
		"event", "db_migration_success",
		"status", "success",
		"templates_seeded", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func seed(ctx context.Context, db *sql.DB) (int, error) {
	assets, err := loadAssets()
	if err != nil {
		return 0, err
	}
	for _, a := range assets {
		// Decode before writing so a broken asset never reaches the table.
		if _, err := a.Template(); err != nil {
			return 0, err
		}
		features, err := marshalFeatures(a.Features)
		if err != nil {
			return 0, err
		}
		if _, err := db.ExecContext(ctx, seedTemplate,
			a.ID, a.Name, a.Description, a.Category, features, []byte(a.TemplateData),
		); err != nil {
			return 0, fmt.Errorf("seed template %s: %w", a.ID, err)
		}
	}
	return len(assets), nil
}

func marshalFeatures(f []string) ([]byte, error) {
	if f == nil {
		f = []string{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode template features: %w", err)
	}
	return b, nil
}
