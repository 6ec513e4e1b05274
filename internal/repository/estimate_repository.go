package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/model"
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) GetEstimate(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	var row struct {
		ID              uuid.UUID
		ProjectName     string
		ClientName      string
		GlobalMarkupPct *float64
		PSTRatePct      *float64
		GSTRatePct      *float64
		ProfitRatePct   *float64
		SectionOrder    []byte
		SectionNames    []byte
		OverridesBlob   string
		CreatedAt       time.Time
		UpdatedAt       time.Time
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			project_name,
			client_name,
			global_markup_pct,
			pst_rate_pct,
			gst_rate_pct,
			profit_rate_pct,
			section_order,
			section_names,
			COALESCE(overrides_blob, '') AS overrides_blob,
			created_at,
			updated_at
		FROM estimates
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	est := &model.Estimate{
		ID:              row.ID,
		ProjectName:     row.ProjectName,
		ClientName:      row.ClientName,
		GlobalMarkupPct: row.GlobalMarkupPct,
		PSTRatePct:      row.PSTRatePct,
		GSTRatePct:      row.GSTRatePct,
		ProfitRatePct:   row.ProfitRatePct,
		OverridesBlob:   row.OverridesBlob,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	// Display metadata is best effort: a malformed column degrades to
	// empty, it never blocks the summary.
	_ = json.Unmarshal(row.SectionOrder, &est.SectionOrder)
	_ = json.Unmarshal(row.SectionNames, &est.SectionNames)
	return est, nil
}

func (r *EstimateRepository) ListItems(ctx context.Context, estimateID uuid.UUID) ([]model.EstimateItem, error) {
	var items []model.EstimateItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			estimate_id,
			position,
			section,
			item_type,
			COALESCE(quantity, 0) AS quantity,
			COALESCE(unit_price, 0) AS unit_price,
			unit,
			description,
			supplier_name,
			labour_journey,
			labour_men,
			labour_journey_type,
			taxable,
			created_at
		FROM estimate_items
		WHERE estimate_id = ?
		ORDER BY position ASC, created_at ASC
	`, estimateID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
