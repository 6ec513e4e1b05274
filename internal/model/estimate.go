package model

import (
	"time"

	"github.com/google/uuid"
)

// Estimate is the aggregate root for a priced job estimate. Rate fields are
// nullable on purpose: a missing rate means 0, never an error.
type Estimate struct {
	ID              uuid.UUID
	ProjectName     string
	ClientName      string
	GlobalMarkupPct *float64
	PSTRatePct      *float64
	GSTRatePct      *float64
	ProfitRatePct   *float64
	// SectionOrder and SectionNames only affect display grouping and labels,
	// never totals.
	SectionOrder []string
	SectionNames map[string]string
	// OverridesBlob carries the per-item override side table as stored:
	// a JSON object with an "item_extras" map keyed by "item_<id>".
	OverridesBlob string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EstimateItem struct {
	ID           uuid.UUID
	EstimateID   uuid.UUID
	Position     int
	Section      string
	ItemType     string // "material", "labour", ...
	Quantity     float64
	UnitPrice    float64
	Unit         string
	Description  string
	SupplierName *string
	// Labour-only fields, meaningful when the item sits in a labour-like
	// section.
	LabourJourney     *float64
	LabourMen         *float64
	LabourJourneyType *string // "contract" or "hourly"
	Taxable           *bool   // nil means taxable
	CreatedAt         time.Time
}

const (
	ItemTypeMaterial = "material"
	ItemTypeLabour   = "labour"

	JourneyTypeContract = "contract"
	JourneyTypeHourly   = "hourly"
)
