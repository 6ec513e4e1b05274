package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/config"
	"github.com/ledgewood/estimates/internal/costing"
	"github.com/ledgewood/estimates/internal/model"
)

// EstimateStore supplies the point-in-time estimate snapshot the engine
// computes from. The service never writes through it.
type EstimateStore interface {
	GetEstimate(ctx context.Context, id uuid.UUID) (*model.Estimate, error)
	ListItems(ctx context.Context, estimateID uuid.UUID) ([]model.EstimateItem, error)
}

type ExcelGenerator interface {
	Generate(doc model.SummaryDocument) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.SummaryDocument) ([]byte, error)
}

type EstimateService struct {
	store           EstimateStore
	excel           ExcelGenerator
	pdf             PDFGenerator
	refreshInterval time.Duration
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func NewEstimateService(store EstimateStore, excel ExcelGenerator, pdf PDFGenerator, cfg *config.Config) *EstimateService {
	return &EstimateService{
		store:           store,
		excel:           excel,
		pdf:             pdf,
		refreshInterval: cfg.Summary.RefreshInterval,
	}
}

// Summary loads the estimate snapshot and runs the cost waterfall. A missing
// estimate or an estimate without items is reported as unavailable; the
// caller must not substitute a zero-valued summary.
func (s *EstimateService) Summary(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (*model.CostSummary, error) {
	est, items, err := s.snapshot(ctx, estimateID, principal)
	if err != nil {
		return nil, err
	}
	summary := costing.Compute(*est, items)
	return &summary, nil
}

// Watch recomputes the summary at the configured refresh interval for as
// long as ctx lives, emitting only when the result changed. The first value
// is computed synchronously so an unavailable estimate fails up front. The
// channel closes when ctx is cancelled.
func (s *EstimateService) Watch(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (<-chan model.CostSummary, error) {
	first, err := s.Summary(ctx, estimateID, principal)
	if err != nil {
		return nil, err
	}

	out := make(chan model.CostSummary)
	go func() {
		defer close(out)

		last := *first
		select {
		case out <- last:
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			// Transient fetch failures and empty snapshots keep the last
			// emitted value; surfacing them is the fetch layer's job.
			est, items, err := s.snapshot(ctx, estimateID, principal)
			if err != nil {
				continue
			}
			summary := costing.Compute(*est, items)
			if summary == last {
				continue
			}
			select {
			case out <- summary:
				last = summary
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *EstimateService) ExportExcel(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (*ExportResult, error) {
	doc, err := s.document(ctx, estimateID, principal)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(doc.Estimate, "xlsx"),
		Content:  content,
	}, nil
}

func (s *EstimateService) ExportPDF(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (*ExportResult, error) {
	doc, err := s.document(ctx, estimateID, principal)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: buildFileName(doc.Estimate, "pdf"),
		Content:  content,
	}, nil
}

func (s *EstimateService) document(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (*model.SummaryDocument, error) {
	est, items, err := s.snapshot(ctx, estimateID, principal)
	if err != nil {
		return nil, err
	}
	doc := costing.Breakdown(*est, items)
	return &doc, nil
}

func (s *EstimateService) snapshot(ctx context.Context, estimateID uuid.UUID, principal model.Principal) (*model.Estimate, []model.EstimateItem, error) {
	if principal.IsWorker() {
		return nil, nil, ErrPermissionDenied
	}
	if estimateID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: estimate id is required", ErrInvalidInput)
	}

	est, err := s.store.GetEstimate(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	items, err := s.store.ListItems(ctx, estimateID)
	if err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, ErrNoItems
	}
	return est, items, nil
}

func buildFileName(est model.Estimate, ext string) string {
	name := sanitizeFileName(est.ProjectName)
	if name == "" {
		name = est.ID.String()
	}
	return fmt.Sprintf("estimate-%s-%s.%s", name, time.Now().Format("20060102"), ext)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
