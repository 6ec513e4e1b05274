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
			CREATE TYPE report_status AS ENUM ('PENDING_APPROVAL', 'APPROVED', 'REJECTED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS estimates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_name VARCHAR(256) NOT NULL,
		client_name VARCHAR(256) NOT NULL DEFAULT '',
		global_markup_pct NUMERIC(8,4),
		pst_rate_pct NUMERIC(8,4),
		gst_rate_pct NUMERIC(8,4),
		profit_rate_pct NUMERIC(8,4),
		section_order JSONB NOT NULL DEFAULT '[]',
		section_names JSONB NOT NULL DEFAULT '{}',
		overrides_blob TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS estimate_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		estimate_id UUID NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		position INTEGER NOT NULL DEFAULT 0,
		section VARCHAR(256) NOT NULL,
		item_type VARCHAR(32) NOT NULL DEFAULT 'material',
		quantity NUMERIC(18,4),
		unit_price NUMERIC(18,4),
		unit VARCHAR(32) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		supplier_name VARCHAR(256),
		labour_journey NUMERIC(18,4),
		labour_men NUMERIC(18,4),
		labour_journey_type VARCHAR(16),
		taxable BOOLEAN,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_estimate_items_estimate_id ON estimate_items (estimate_id);`,
	`CREATE TABLE IF NOT EXISTS site_reports (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		estimate_id UUID NOT NULL REFERENCES estimates(id) ON DELETE CASCADE,
		report_number VARCHAR(64) NOT NULL,
		status report_status NOT NULL DEFAULT 'PENDING_APPROVAL',
		rejection_reason TEXT,
		submitted_by_user_id UUID NOT NULL,
		resolved_by_user_id UUID,
		resolved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_site_reports_number ON site_reports (report_number);`,
	`CREATE INDEX IF NOT EXISTS idx_site_reports_estimate_id ON site_reports (estimate_id);`,
	`CREATE INDEX IF NOT EXISTS idx_site_reports_status ON site_reports (status);`,
	`CREATE TABLE IF NOT EXISTS site_report_items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		report_id UUID NOT NULL REFERENCES site_reports(id) ON DELETE CASCADE,
		section VARCHAR(256) NOT NULL,
		item_type VARCHAR(32) NOT NULL DEFAULT 'material',
		quantity NUMERIC(18,4),
		unit_price NUMERIC(18,4),
		unit VARCHAR(32) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		supplier_name VARCHAR(256),
		labour_journey NUMERIC(18,4),
		labour_men NUMERIC(18,4),
		labour_journey_type VARCHAR(16),
		taxable BOOLEAN
	);`,
	`CREATE INDEX IF NOT EXISTS idx_site_report_items_report_id ON site_report_items (report_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
