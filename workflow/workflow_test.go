package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/errs"
	"github.com/nderose7/shiptrack-app/models"
	"github.com/nderose7/shiptrack-app/workflow"
)

// ---- mock shipment API ----

type mockAPI struct {
	quote      models.ShipmentQuote
	quoteErr   error
	label      models.PurchasedLabel
	labelErr   error
	quoteCalls int
	buyCalls   int
}

func (m *mockAPI) CreateShipment(_ context.Context, _ models.ShipmentRequest) (models.ShipmentQuote, error) {
	m.quoteCalls++
	return m.quote, m.quoteErr
}

func (m *mockAPI) BuyLabel(_ context.Context, _, _ string) (models.PurchasedLabel, error) {
	m.buyCalls++
	return m.label, m.labelErr
}

// ---- helpers ----

func days(d int) *int { return &d }

func testQuote() models.ShipmentQuote {
	return models.ShipmentQuote{
		ShipmentID: "shp_1",
		Rates: []models.RateOption{
			{ID: "rt_1", Carrier: "UPS", Service: "Ground", Rate: "8.98"},
			{ID: "rt_2", Carrier: "USPS", Service: "Priority", Rate: "12.40", DeliveryDays: days(3)},
		},
	}
}

func newWorkflow(api *mockAPI) *workflow.Workflow {
	logger, _ := zap.NewDevelopment()
	return workflow.New(api, logger)
}

func testRequest() models.ShipmentRequest {
	return workflow.BuildShipmentRequest(
		models.Product{Serial: "SN123", Length: 8, Width: 5, Height: 3, Weight: 22},
		models.Address{Name: "Warehouse", City: "SPRING LAKE", State: "MI", Zip: "49456", Country: "US"},
		models.Address{Name: "Jane Doe", City: "New York", State: "NY", Zip: "10001", Country: "US"},
		"",
	)
}

// ---- tests ----

func TestRequestQuote_Success(t *testing.T) {
	api := &mockAPI{quote: testQuote()}
	wf := newWorkflow(api)

	quote, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.Equal(t, workflow.StateQuoteReady, wf.State())

	// Rates exactly as returned, in server order.
	assert.Equal(t, "shp_1", quote.ShipmentID)
	assert.Len(t, quote.Rates, 2)
	assert.Equal(t, models.RateOption{ID: "rt_1", Carrier: "UPS", Service: "Ground", Rate: "8.98"}, quote.Rates[0])
	assert.Equal(t, "rt_2", quote.Rates[1].ID)
}

func TestRequestQuote_Failure(t *testing.T) {
	api := &mockAPI{quoteErr: errs.Network("POST /api/shipments", errors.New("connection refused"))}
	wf := newWorkflow(api)

	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.Error(t, err)
	assert.Equal(t, workflow.StateErrored, wf.State())
	assert.Equal(t, 1, api.quoteCalls) // no automatic retry
	assert.Error(t, wf.Err())
}

func TestRequestQuote_AfterError_StartsOver(t *testing.T) {
	api := &mockAPI{quoteErr: errors.New("boom")}
	wf := newWorkflow(api)

	_, _ = wf.RequestQuote(context.Background(), testRequest())
	assert.Equal(t, workflow.StateErrored, wf.State())

	api.quoteErr = nil
	api.quote = testQuote()
	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.Equal(t, workflow.StateQuoteReady, wf.State())
}

func TestSelectRate_UnknownID(t *testing.T) {
	api := &mockAPI{quote: testQuote()}
	wf := newWorkflow(api)
	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.NoError(t, wf.SelectRate("rt_1"))

	err = wf.SelectRate("rt_unknown")
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))

	// State and previous selection unchanged.
	assert.Equal(t, workflow.StateQuoteReady, wf.State())
	selected, ok := wf.SelectedRate()
	assert.True(t, ok)
	assert.Equal(t, "rt_1", selected.ID)
}

func TestSelectRate_WithoutQuote(t *testing.T) {
	wf := newWorkflow(&mockAPI{})
	err := wf.SelectRate("rt_1")
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	assert.Equal(t, workflow.StateIdle, wf.State())
}

func TestPurchase_NoRateSelected(t *testing.T) {
	api := &mockAPI{quote: testQuote()}
	wf := newWorkflow(api)
	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)

	_, err = wf.Purchase(context.Background())
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	assert.Equal(t, 0, api.buyCalls) // no network call issued
	assert.Equal(t, workflow.StateQuoteReady, wf.State())
}

func TestPurchase_Success(t *testing.T) {
	api := &mockAPI{
		quote: testQuote(),
		label: models.PurchasedLabel{LabelURL: "https://x/y.png"},
	}
	wf := newWorkflow(api)
	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.NoError(t, wf.SelectRate("rt_2"))

	label, err := wf.Purchase(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "https://x/y.png", label.LabelURL)
	assert.Equal(t, workflow.StateLabelReady, wf.State())

	stored, ok := wf.Label()
	assert.True(t, ok)
	assert.Equal(t, label, stored)
}

func TestPurchase_Failure(t *testing.T) {
	api := &mockAPI{
		quote:    testQuote(),
		labelErr: errs.Network("POST buy-label", errors.New("timeout")),
	}
	wf := newWorkflow(api)
	_, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.NoError(t, wf.SelectRate("rt_1"))

	_, err = wf.Purchase(context.Background())
	assert.Error(t, err)
	assert.Equal(t, workflow.StateErrored, wf.State())
	assert.Equal(t, 1, api.buyCalls) // ambiguous failures are never retried
}

func TestPurchase_AfterLabelReady(t *testing.T) {
	api := &mockAPI{quote: testQuote(), label: models.PurchasedLabel{LabelURL: "https://x/y.png"}}
	wf := newWorkflow(api)
	_, _ = wf.RequestQuote(context.Background(), testRequest())
	_ = wf.SelectRate("rt_1")
	_, _ = wf.Purchase(context.Background())
	assert.Equal(t, workflow.StateLabelReady, wf.State())

	_, err := wf.Purchase(context.Background())
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
	assert.Equal(t, 1, api.buyCalls)
}

func TestRequestQuote_SupersedesPrevious(t *testing.T) {
	api := &mockAPI{quote: testQuote()}
	wf := newWorkflow(api)
	_, _ = wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, wf.SelectRate("rt_1"))

	api.quote = models.ShipmentQuote{
		ShipmentID: "shp_2",
		Rates:      []models.RateOption{{ID: "rt_9", Carrier: "UPS", Service: "Ground", Rate: "9.50"}},
	}
	quote, err := wf.RequestQuote(context.Background(), testRequest())
	assert.NoError(t, err)
	assert.Equal(t, "shp_2", quote.ShipmentID)

	// The old selection does not carry over to the new quote.
	_, ok := wf.SelectedRate()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	api := &mockAPI{quoteErr: errors.New("boom")}
	wf := newWorkflow(api)
	_, _ = wf.RequestQuote(context.Background(), testRequest())
	assert.Equal(t, workflow.StateErrored, wf.State())

	assert.NoError(t, wf.Reset())
	assert.Equal(t, workflow.StateIdle, wf.State())
	assert.NoError(t, wf.Err())
}

func TestReset_AfterLabelReady(t *testing.T) {
	api := &mockAPI{quote: testQuote(), label: models.PurchasedLabel{LabelURL: "https://x/y.png"}}
	wf := newWorkflow(api)
	_, _ = wf.RequestQuote(context.Background(), testRequest())
	_ = wf.SelectRate("rt_1")
	_, _ = wf.Purchase(context.Background())

	err := wf.Reset()
	assert.True(t, errs.IsKind(err, errs.KindInvalidState))
}
