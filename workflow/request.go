package workflow

import "github.com/nderose7/shiptrack-app/models"

// BuildShipmentRequest maps a product and the two addresses into a
// quote payload. Parcel fields map one-to-one from the product's
// integer dimensions (inches) and weight (ounces), widened to floats;
// no unit conversion is performed. customsID, when non-empty,
// references a customs declaration stored on the backend.
func BuildShipmentRequest(p models.Product, from, to models.Address, customsID string) models.ShipmentRequest {
	req := models.ShipmentRequest{
		ToAddress:   to,
		FromAddress: from,
		Parcel: models.Parcel{
			Length: float64(p.Length),
			Width:  float64(p.Width),
			Height: float64(p.Height),
			Weight: float64(p.Weight),
		},
	}
	if customsID != "" {
		req.CustomsInfo = &models.CustomsInfo{ID: customsID}
	}
	return req
}
