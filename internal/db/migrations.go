package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'report_status') THEN
			CREATE TYPE report_status AS ENUM ('pending', 'in-progress', 'resolved');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'report_severity') THEN
			CREATE TYPE report_severity AS ENUM ('low', 'moderate', 'critical');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL UNIQUE,
		full_name VARCHAR(255),
		email VARCHAR(255),
		phone VARCHAR(32),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID NOT NULL,
		role VARCHAR(32) NOT NULL,
		PRIMARY KEY (user_id, role)
	);`,
	`CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		complaint_id VARCHAR(32) NOT NULL,
		status report_status NOT NULL DEFAULT 'pending',
		severity report_severity NOT NULL,
		damage_type VARCHAR(64) NOT NULL,
		description TEXT NOT NULL,
		reporter_name VARCHAR(255) NOT NULL,
		reporter_phone VARCHAR(32) NOT NULL,
		reporter_email VARCHAR(255),
		location TEXT NOT NULL,
		landmark TEXT,
		ward VARCHAR(32) NOT NULL,
		gps_lat DOUBLE PRECISION,
		gps_lng DOUBLE PRECISION,
		image_url TEXT,
		before_image_url TEXT,
		after_image_url TEXT,
		assigned_to UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		resolved_at TIMESTAMPTZ
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_reports_complaint_id ON reports (complaint_id);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_status ON reports (status);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_ward ON reports (ward);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_assigned_to ON reports (assigned_to);`,
	`CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);`,
	`CREATE TABLE IF NOT EXISTS complaint_sequences (
		year INT PRIMARY KEY,
		last_value BIGINT NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS report_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		report_id UUID NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
		old_status report_status,
		new_status report_status NOT NULL,
		note TEXT,
		changed_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_report_status_log_report_id ON report_status_log (report_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_reports_updated_at') THEN
			CREATE TRIGGER trg_reports_updated_at
				BEFORE UPDATE ON reports
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
