package model

import (
	"time"

	"github.com/google/uuid"
)

type ReportStatus string

const (
	ReportStatusPendingApproval ReportStatus = "PENDING_APPROVAL"
	ReportStatusApproved        ReportStatus = "APPROVED"
	ReportStatusRejected        ReportStatus = "REJECTED"
)

// SiteReport is a change-order report submitted from the field. Approving it
// appends its items to the estimate; the summary engine just sees the new
// items on the next recompute.
type SiteReport struct {
	ID                uuid.UUID
	EstimateID        uuid.UUID
	ReportNumber      string
	Status            ReportStatus
	RejectionReason   *string
	SubmittedByUserID uuid.UUID
	ResolvedByUserID  *uuid.UUID
	ResolvedAt        *time.Time
	CreatedAt         time.Time
}

// SiteReportItem mirrors the priceable fields of EstimateItem; on approval
// each one becomes a new estimate item.
type SiteReportItem struct {
	ID                uuid.UUID
	ReportID          uuid.UUID
	Section           string
	ItemType          string
	Quantity          float64
	UnitPrice         float64
	Unit              string
	Description       string
	SupplierName      *string
	LabourJourney     *float64
	LabourMen         *float64
	LabourJourneyType *string
	Taxable           *bool
}
