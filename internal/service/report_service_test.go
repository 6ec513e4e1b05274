package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/model"
)

type fakeReportStore struct {
	report        *model.SiteReport
	items         []model.SiteReportItem
	getErr        error
	approvedWith  []model.SiteReportItem
	statusUpdates []model.ReportStatus
}

func (f *fakeReportStore) GetReport(ctx context.Context, id uuid.UUID) (*model.SiteReport, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.report
	return &copied, nil
}

func (f *fakeReportStore) ListReportItems(ctx context.Context, reportID uuid.UUID) ([]model.SiteReportItem, error) {
	return f.items, nil
}

func (f *fakeReportStore) ApproveReport(ctx context.Context, report *model.SiteReport, items []model.SiteReportItem, resolvedBy uuid.UUID, resolvedAt time.Time) error {
	f.approvedWith = items
	f.statusUpdates = append(f.statusUpdates, model.ReportStatusApproved)
	return nil
}

func (f *fakeReportStore) UpdateReportStatus(ctx context.Context, reportID uuid.UUID, status model.ReportStatus, rejectionReason *string, resolvedBy *uuid.UUID, resolvedAt *time.Time) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func pendingReport() *model.SiteReport {
	return &model.SiteReport{
		ID:                uuid.New(),
		EstimateID:        uuid.New(),
		ReportNumber:      "CO-1042",
		Status:            model.ReportStatusPendingApproval,
		SubmittedByUserID: uuid.New(),
	}
}

func adminPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleAdmin}
}

func TestApproveReport(t *testing.T) {
	store := &fakeReportStore{
		report: pendingReport(),
		items: []model.SiteReportItem{{
			ID:        uuid.New(),
			Section:   "Labour",
			ItemType:  model.ItemTypeLabour,
			Quantity:  4,
			UnitPrice: 45,
		}},
	}
	svc := NewReportService(store)

	report, err := svc.Approve(context.Background(), store.report.ID, adminPrincipal())
	require.NoError(t, err)

	assert.Equal(t, model.ReportStatusApproved, report.Status)
	require.NotNil(t, report.ResolvedAt)
	assert.Len(t, store.approvedWith, 1)
}

func TestApproveReportAlreadyResolved(t *testing.T) {
	report := pendingReport()
	report.Status = model.ReportStatusApproved
	store := &fakeReportStore{report: report}
	svc := NewReportService(store)

	_, err := svc.Approve(context.Background(), report.ID, adminPrincipal())
	assert.ErrorIs(t, err, ErrReportResolved)
	assert.Empty(t, store.statusUpdates)
}

func TestApproveReportPermissionDenied(t *testing.T) {
	store := &fakeReportStore{report: pendingReport()}
	svc := NewReportService(store)

	for _, role := range []string{model.RoleForeman, model.RoleWorker} {
		principal := model.Principal{UserID: uuid.New(), Role: role}
		_, err := svc.Approve(context.Background(), store.report.ID, principal)
		assert.ErrorIs(t, err, ErrPermissionDenied, role)
	}
}

func TestApproveReportNotFound(t *testing.T) {
	store := &fakeReportStore{getErr: gorm.ErrRecordNotFound}
	svc := NewReportService(store)

	_, err := svc.Approve(context.Background(), uuid.New(), adminPrincipal())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectReport(t *testing.T) {
	store := &fakeReportStore{report: pendingReport()}
	svc := NewReportService(store)

	report, err := svc.Reject(context.Background(), store.report.ID, "quantities do not match the site log", adminPrincipal())
	require.NoError(t, err)

	assert.Equal(t, model.ReportStatusRejected, report.Status)
	require.NotNil(t, report.RejectionReason)
	assert.Equal(t, []model.ReportStatus{model.ReportStatusRejected}, store.statusUpdates)
}

func TestRejectReportRequiresReason(t *testing.T) {
	store := &fakeReportStore{report: pendingReport()}
	svc := NewReportService(store)

	_, err := svc.Reject(context.Background(), store.report.ID, "   ", adminPrincipal())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
