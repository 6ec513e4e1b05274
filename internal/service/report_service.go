package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/model"
)

// ReportStore owns the approval workflow's persistence: reading pending site
// reports and applying the approve/reject outcome.
type ReportStore interface {
	GetReport(ctx context.Context, id uuid.UUID) (*model.SiteReport, error)
	ListReportItems(ctx context.Context, reportID uuid.UUID) ([]model.SiteReportItem, error)
	ApproveReport(ctx context.Context, report *model.SiteReport, items []model.SiteReportItem, resolvedBy uuid.UUID, resolvedAt time.Time) error
	UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status model.ReportStatus, rejectionReason *string, resolvedBy *uuid.UUID, resolvedAt *time.Time) error
}

type ReportService struct {
	store ReportStore
	now   func() time.Time
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// Approve appends the report's change-order items to its estimate and marks
// the report approved. The summary engine needs no notification: the next
// recompute reads the enlarged item list.
func (s *ReportService) Approve(ctx context.Context, reportID uuid.UUID, principal model.Principal) (*model.SiteReport, error) {
	report, err := s.pendingReport(ctx, reportID, principal)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListReportItems(ctx, reportID)
	if err != nil {
		return nil, err
	}

	resolvedAt := s.now()
	if err := s.store.ApproveReport(ctx, report, items, principal.UserID, resolvedAt); err != nil {
		return nil, err
	}

	report.Status = model.ReportStatusApproved
	report.ResolvedByUserID = &principal.UserID
	report.ResolvedAt = &resolvedAt
	return report, nil
}

func (s *ReportService) Reject(ctx context.Context, reportID uuid.UUID, reason string, principal model.Principal) (*model.SiteReport, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	report, err := s.pendingReport(ctx, reportID, principal)
	if err != nil {
		return nil, err
	}

	resolvedAt := s.now()
	if err := s.store.UpdateReportStatus(ctx, reportID, model.ReportStatusRejected, &reason, &principal.UserID, &resolvedAt); err != nil {
		return nil, err
	}

	report.Status = model.ReportStatusRejected
	report.RejectionReason = &reason
	report.ResolvedByUserID = &principal.UserID
	report.ResolvedAt = &resolvedAt
	return report, nil
}

func (s *ReportService) pendingReport(ctx context.Context, reportID uuid.UUID, principal model.Principal) (*model.SiteReport, error) {
	if !(principal.IsAdmin() || principal.IsEstimator()) {
		return nil, ErrPermissionDenied
	}
	if reportID == uuid.Nil {
		return nil, fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}

	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if report.Status != model.ReportStatusPendingApproval {
		return nil, ErrReportResolved
	}
	return report, nil
}
