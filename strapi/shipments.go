package strapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nderose7/shiptrack-app/errs"
	"github.com/nderose7/shiptrack-app/models"
)

// CreateShipment submits a shipment request and returns the backend's
// quote: a shipment id plus carrier rate offers in server order. The
// list is returned unfiltered and unsorted.
func (c *Client) CreateShipment(ctx context.Context, req models.ShipmentRequest) (models.ShipmentQuote, error) {
	var quote models.ShipmentQuote
	if err := c.doRequest(ctx, http.MethodPost, "/api/shipments", req, &quote, true); err != nil {
		return models.ShipmentQuote{}, err
	}
	if quote.ShipmentID == "" {
		return models.ShipmentQuote{}, errs.Decode("quote response missing shipment id", nil)
	}
	return quote, nil
}

type buyLabelRequest struct {
	RateID string `json:"rateId"`
}

// The label URL arrives nested under postage_label.
type buyLabelResponse struct {
	PostageLabel *struct {
		LabelURL string `json:"label_url"`
	} `json:"postage_label"`
}

// BuyLabel purchases the selected rate for a shipment and returns the
// label artifact. The call has real-world billing consequences and is
// never retried, including on ambiguous failures such as timeouts.
func (c *Client) BuyLabel(ctx context.Context, shipmentID, rateID string) (models.PurchasedLabel, error) {
	path := fmt.Sprintf("/api/shipments/%s/buy-label", shipmentID)

	var resp buyLabelResponse
	if err := c.doRequest(ctx, http.MethodPost, path, buyLabelRequest{RateID: rateID}, &resp, true); err != nil {
		return models.PurchasedLabel{}, err
	}
	if resp.PostageLabel == nil || resp.PostageLabel.LabelURL == "" {
		return models.PurchasedLabel{}, errs.Decode("purchase response missing postage_label.label_url", nil)
	}
	return models.PurchasedLabel{LabelURL: resp.PostageLabel.LabelURL}, nil
}

// FetchLabel downloads the purchased label image. Label URLs may point
// outside the backend, so the request goes to the URL as given, without
// auth headers.
func (c *Client) FetchLabel(ctx context.Context, labelURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, labelURL, nil)
	if err != nil {
		return nil, errs.Network("create label request", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Network("fetch label", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errs.FromStatus(resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Network("read label body", err)
	}
	return data, nil
}
