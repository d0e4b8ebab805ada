// Package workflow drives a single shipment from quote request to
// purchased label.
package workflow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/nderose7/shiptrack-app/errs"
	"github.com/nderose7/shiptrack-app/models"
)

// State of a shipment workflow instance.
type State string

const (
	StateIdle              State = "idle"
	StateQuoteRequested    State = "quote_requested"
	StateQuoteReady        State = "quote_ready"
	StatePurchaseRequested State = "purchase_requested"
	StateLabelReady        State = "label_ready"
	StateErrored           State = "errored"
)

// ShipmentAPI is what the workflow needs from the backend client.
type ShipmentAPI interface {
	CreateShipment(ctx context.Context, req models.ShipmentRequest) (models.ShipmentQuote, error)
	BuyLabel(ctx context.Context, shipmentID, rateID string) (models.PurchasedLabel, error)
}

// Workflow holds the state of one quote-and-purchase flow. The caller
// contract is at most one outstanding request at a time; the mutex only
// keeps transitions atomic, it does not serialize network calls.
type Workflow struct {
	api    ShipmentAPI
	logger *zap.Logger

	mu             sync.Mutex
	state          State
	quote          *models.ShipmentQuote
	selectedRateID string
	label          *models.PurchasedLabel
	lastErr        error
}

// New creates a Workflow in the idle state.
func New(api ShipmentAPI, logger *zap.Logger) *Workflow {
	return &Workflow{api: api, logger: logger, state: StateIdle}
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Quote returns a copy of the current quote, if one has been fetched.
func (w *Workflow) Quote() (models.ShipmentQuote, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quote == nil {
		return models.ShipmentQuote{}, false
	}
	return *w.quote, true
}

// SelectedRate returns the currently selected rate, if any.
func (w *Workflow) SelectedRate() (models.RateOption, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.quote == nil || w.selectedRateID == "" {
		return models.RateOption{}, false
	}
	return w.quote.RateByID(w.selectedRateID)
}

// Label returns the purchased label, if the workflow has completed.
func (w *Workflow) Label() (models.PurchasedLabel, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.label == nil {
		return models.PurchasedLabel{}, false
	}
	return *w.label, true
}

// Err returns the failure that moved the workflow into the errored state.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Reset returns the workflow to idle. It is rejected while a request is
// in flight and after a label has been purchased.
func (w *Workflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch w.state {
	case StateQuoteRequested, StatePurchaseRequested:
		return errs.InvalidState("cannot reset while a request is in flight")
	case StateLabelReady:
		return errs.InvalidState("cannot reset after a label has been purchased")
	}
	w.state = StateIdle
	w.quote = nil
	w.selectedRateID = ""
	w.label = nil
	w.lastErr = nil
	return nil
}

// RequestQuote submits the shipment request and stores the resulting
// quote. Re-requesting from quote_ready or errored starts over and
// supersedes any previous quote. The rate list is stored exactly as
// returned; the order is the server's ranking.
func (w *Workflow) RequestQuote(ctx context.Context, req models.ShipmentRequest) (models.ShipmentQuote, error) {
	w.mu.Lock()
	switch w.state {
	case StateIdle, StateQuoteReady, StateErrored:
	default:
		w.mu.Unlock()
		return models.ShipmentQuote{}, errs.InvalidState("quote request not permitted in state " + string(w.state))
	}
	w.state = StateQuoteRequested
	w.quote = nil
	w.selectedRateID = ""
	w.lastErr = nil
	w.mu.Unlock()

	quote, err := w.api.CreateShipment(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateErrored
		w.lastErr = err
		w.logger.Error("quote request failed", zap.Error(err))
		return models.ShipmentQuote{}, err
	}

	w.state = StateQuoteReady
	w.quote = &quote
	w.logger.Info("quote ready",
		zap.String("shipment_id", quote.ShipmentID),
		zap.Int("rates", len(quote.Rates)),
	)
	return quote, nil
}

// SelectRate records the chosen rate. Pure selection, no network call.
// An id not present in the current quote is rejected and leaves state
// and selection unchanged.
func (w *Workflow) SelectRate(rateID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateQuoteReady || w.quote == nil {
		return errs.InvalidState("no quote to select a rate from")
	}
	if !w.quote.HasRate(rateID) {
		return errs.InvalidState("rate " + rateID + " is not part of the current quote")
	}
	w.selectedRateID = rateID
	return nil
}

// Purchase buys a label for the selected rate. It requires a prior
// successful quote and a selected rate from that same quote; otherwise
// it fails without issuing a network call. The purchase is not assumed
// idempotent server-side and is never retried.
func (w *Workflow) Purchase(ctx context.Context) (models.PurchasedLabel, error) {
	w.mu.Lock()
	if w.state != StateQuoteReady || w.quote == nil {
		w.mu.Unlock()
		return models.PurchasedLabel{}, errs.InvalidState("purchase requires a fetched quote")
	}
	if w.selectedRateID == "" {
		w.mu.Unlock()
		return models.PurchasedLabel{}, errs.InvalidState("purchase requires a selected rate")
	}
	shipmentID, rateID := w.quote.ShipmentID, w.selectedRateID
	w.state = StatePurchaseRequested
	w.mu.Unlock()

	label, err := w.api.BuyLabel(ctx, shipmentID, rateID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateErrored
		w.lastErr = err
		w.logger.Error("label purchase failed",
			zap.String("shipment_id", shipmentID),
			zap.String("rate_id", rateID),
			zap.Error(err),
		)
		return models.PurchasedLabel{}, err
	}

	w.state = StateLabelReady
	w.label = &label
	w.logger.Info("label purchased",
		zap.String("shipment_id", shipmentID),
		zap.String("rate_id", rateID),
		zap.String("label_url", label.LabelURL),
	)
	return label, nil
}
