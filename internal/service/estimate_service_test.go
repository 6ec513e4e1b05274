package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ledgewood/estimates/internal/config"
	"github.com/ledgewood/estimates/internal/model"
)

type fakeEstimateStore struct {
	mu       sync.Mutex
	estimate *model.Estimate
	items    []model.EstimateItem
	getErr   error
	listErr  error
}

func (f *fakeEstimateStore) GetEstimate(ctx context.Context, id uuid.UUID) (*model.Estimate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.estimate
	return &copied, nil
}

func (f *fakeEstimateStore) ListItems(ctx context.Context, estimateID uuid.UUID) ([]model.EstimateItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.EstimateItem(nil), f.items...), nil
}

func (f *fakeEstimateStore) setItems(items []model.EstimateItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

type fakeGenerator struct {
	content []byte
	lastDoc model.SummaryDocument
}

func (f *fakeGenerator) Generate(doc model.SummaryDocument) ([]byte, error) {
	f.lastDoc = doc
	return f.content, nil
}

func floatPtr(v float64) *float64 { return &v }

func testConfig() *config.Config {
	return &config.Config{
		Summary: config.SummaryConfig{RefreshInterval: 5 * time.Millisecond},
	}
}

func testEstimate() *model.Estimate {
	return &model.Estimate{
		ID:              uuid.New(),
		ProjectName:     "Maple Lane Re-roof",
		GlobalMarkupPct: floatPtr(10),
		PSTRatePct:      floatPtr(5),
		ProfitRatePct:   floatPtr(20),
		GSTRatePct:      floatPtr(5),
	}
}

func testItems() []model.EstimateItem {
	return []model.EstimateItem{{
		ID:        uuid.New(),
		Section:   "Roofing Materials",
		ItemType:  model.ItemTypeMaterial,
		Quantity:  10,
		UnitPrice: 5,
	}}
}

func estimatorPrincipal() model.Principal {
	return model.Principal{UserID: uuid.New(), OrgID: uuid.New(), Role: model.RoleEstimator}
}

func TestSummary(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	summary, err := svc.Summary(context.Background(), store.estimate.ID, estimatorPrincipal())
	require.NoError(t, err)
	assert.InDelta(t, 72.765, summary.GrandTotal, 1e-9)
}

func TestSummaryDeniedForWorkers(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	principal := model.Principal{UserID: uuid.New(), Role: model.RoleWorker}
	_, err := svc.Summary(context.Background(), store.estimate.ID, principal)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSummaryEstimateNotFound(t *testing.T) {
	store := &fakeEstimateStore{getErr: gorm.ErrRecordNotFound}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	_, err := svc.Summary(context.Background(), uuid.New(), estimatorPrincipal())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummaryNoItemsIsUnavailable(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	_, err := svc.Summary(context.Background(), store.estimate.ID, estimatorPrincipal())
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestSummaryRequiresID(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	_, err := svc.Summary(context.Background(), uuid.Nil, estimatorPrincipal())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestWatchEmitsInitialAndChangedSummaries(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := svc.Watch(ctx, store.estimate.ID, estimatorPrincipal())
	require.NoError(t, err)

	select {
	case first := <-updates:
		assert.InDelta(t, 72.765, first.GrandTotal, 1e-9)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial summary")
	}

	// Another session appends an approved change-order item; the watcher
	// should pick it up on a later tick.
	items := testItems()
	items = append(items, model.EstimateItem{
		ID:        uuid.New(),
		Section:   "Labour",
		ItemType:  model.ItemTypeMaterial,
		Quantity:  1,
		UnitPrice: 100,
	})
	store.setItems(items)

	select {
	case changed := <-updates:
		assert.Greater(t, changed.GrandTotal, 72.8)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for changed summary")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := svc.Watch(ctx, store.estimate.ID, estimatorPrincipal())
	require.NoError(t, err)

	<-updates
	cancel()

	select {
	case _, open := <-updates:
		assert.False(t, open, "channel should close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchFailsUpFrontWhenUnavailable(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate()}
	svc := NewEstimateService(store, &fakeGenerator{}, &fakeGenerator{}, testConfig())

	_, err := svc.Watch(context.Background(), store.estimate.ID, estimatorPrincipal())
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestExportExcel(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	gen := &fakeGenerator{content: []byte("workbook")}
	svc := NewEstimateService(store, gen, &fakeGenerator{}, testConfig())

	result, err := svc.ExportExcel(context.Background(), store.estimate.ID, estimatorPrincipal())
	require.NoError(t, err)

	assert.Equal(t, []byte("workbook"), result.Content)
	assert.True(t, strings.HasPrefix(result.FileName, "estimate-Maple-Lane-Re-roof-"), result.FileName)
	assert.True(t, strings.HasSuffix(result.FileName, ".xlsx"), result.FileName)
	assert.InDelta(t, 72.765, gen.lastDoc.Summary.GrandTotal, 1e-9)
}

func TestExportPDF(t *testing.T) {
	store := &fakeEstimateStore{estimate: testEstimate(), items: testItems()}
	gen := &fakeGenerator{content: []byte("%PDF")}
	svc := NewEstimateService(store, &fakeGenerator{}, gen, testConfig())

	result, err := svc.ExportPDF(context.Background(), store.estimate.ID, estimatorPrincipal())
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF"), result.Content)
	assert.True(t, strings.HasSuffix(result.FileName, ".pdf"), result.FileName)
}
