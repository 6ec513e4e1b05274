package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*model.SiteReport, error) {
	var report model.SiteReport
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			estimate_id,
			report_number,
			status,
			rejection_reason,
			submitted_by_user_id,
			resolved_by_user_id,
			resolved_at,
			created_at
		FROM site_reports
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&report).Error
	if err != nil {
		return nil, err
	}
	if report.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &report, nil
}

func (r *ReportRepository) ListReportItems(ctx context.Context, reportID uuid.UUID) ([]model.SiteReportItem, error) {
	var items []model.SiteReportItem
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			report_id,
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
			taxable
		FROM site_report_items
		WHERE report_id = ?
		ORDER BY id ASC
	`, reportID).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ApproveReport marks the report approved and appends its items to the
// estimate in one transaction, so a summary recompute never observes a
// half-applied change order.
func (r *ReportRepository) ApproveReport(
	ctx context.Context,
	report *model.SiteReport,
	items []model.SiteReportItem,
	resolvedBy uuid.UUID,
	resolvedAt time.Time,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			UPDATE site_reports
			SET status = ?, resolved_by_user_id = ?, resolved_at = ?
			WHERE id = ?
		`, model.ReportStatusApproved, resolvedBy, resolvedAt, report.ID).Error; err != nil {
			return err
		}

		for _, item := range items {
			if err := tx.Exec(`
				INSERT INTO estimate_items (
					estimate_id,
					position,
					section,
					item_type,
					quantity,
					unit_price,
					unit,
					description,
					supplier_name,
					labour_journey,
					labour_men,
					labour_journey_type,
					taxable
				) VALUES (
					?,
					COALESCE((SELECT MAX(position) + 1 FROM estimate_items WHERE estimate_id = ?), 0),
					?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
				)
			`,
				report.EstimateID,
				report.EstimateID,
				item.Section,
				item.ItemType,
				item.Quantity,
				item.UnitPrice,
				item.Unit,
				item.Description,
				item.SupplierName,
				item.LabourJourney,
				item.LabourMen,
				item.LabourJourneyType,
				item.Taxable,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateReportStatus records a rejection (or any other terminal status) on
// the report alone.
func (r *ReportRepository) UpdateReportStatus(
	ctx context.Context,
	reportID uuid.UUID,
	status model.ReportStatus,
	rejectionReason *string,
	resolvedBy *uuid.UUID,
	resolvedAt *time.Time,
) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE site_reports
		SET
			status = ?,
			rejection_reason = ?,
			resolved_by_user_id = ?,
			resolved_at = ?
		WHERE id = ?
	`, status, rejectionReason, resolvedBy, resolvedAt, reportID).Error
}
