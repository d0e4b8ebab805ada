package models

import "encoding/json"

// Product is a catalog item eligible for shipment. Dimensions are
// stored server-side as integers (inches/ounces).
type Product struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Serial      string `json:"serial"`
	Length      int    `json:"length"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Weight      int    `json:"weight"`
}

// ProductEntry is one row of the catalog response. Strapi v4 wraps the
// fields under "attributes"; older deployments return them flattened
// next to the id. UnmarshalJSON accepts both shapes.
type ProductEntry struct {
	ID int `json:"id"`
	Product
}

func (e *ProductEntry) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		ID         int      `json:"id"`
		Attributes *Product `json:"attributes"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	e.ID = wrapped.ID
	if wrapped.Attributes != nil {
		e.Product = *wrapped.Attributes
		return nil
	}

	var flat Product
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	e.Product = flat
	return nil
}

func (e ProductEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int     `json:"id"`
		Attributes Product `json:"attributes"`
	}{ID: e.ID, Attributes: e.Product})
}
