package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nderose7/shiptrack-app/models"
	"github.com/nderose7/shiptrack-app/workflow"
)

func TestBuildShipmentRequest_ParcelMapsFromProduct(t *testing.T) {
	p := models.Product{
		Name: "Controller", Serial: "SN123",
		Length: 8, Width: 5, Height: 3, Weight: 22,
	}
	from := models.Address{Name: "Warehouse", City: "SPRING LAKE", State: "MI", Zip: "49456", Country: "US"}
	to := models.Address{Name: "Jane Doe", City: "New York", State: "NY", Zip: "10001", Country: "US"}

	req := workflow.BuildShipmentRequest(p, from, to, "")

	assert.Equal(t, models.Parcel{Length: 8, Width: 5, Height: 3, Weight: 22}, req.Parcel)
	assert.Equal(t, from, req.FromAddress)
	assert.Equal(t, to, req.ToAddress)
	assert.Nil(t, req.CustomsInfo)
}

func TestBuildShipmentRequest_CustomsInfo(t *testing.T) {
	req := workflow.BuildShipmentRequest(models.Product{Length: 1, Width: 1, Height: 1, Weight: 1},
		models.Address{}, models.Address{}, "cstinfo_1")
	if assert.NotNil(t, req.CustomsInfo) {
		assert.Equal(t, "cstinfo_1", req.CustomsInfo.ID)
	}
}

func TestResolveSerial_ExactMatch(t *testing.T) {
	entries := []models.ProductEntry{
		{ID: 1, Product: models.Product{Name: "Controller", Serial: "SN123"}},
		{ID: 2, Product: models.Product{Name: "Battery", Serial: "SN456"}},
	}

	found := workflow.ResolveSerial(entries, "SN123")
	if assert.NotNil(t, found) {
		assert.Equal(t, 1, found.ID)
	}
}

func TestResolveSerial_CaseSensitive(t *testing.T) {
	entries := []models.ProductEntry{
		{ID: 1, Product: models.Product{Serial: "SN123"}},
	}
	assert.Nil(t, workflow.ResolveSerial(entries, "sn123"))
}

func TestResolveSerial_NotFound(t *testing.T) {
	assert.Nil(t, workflow.ResolveSerial(nil, "SN999"))
}

// ---- mock catalog ----

type mockCatalog struct {
	entries []models.ProductEntry
	err     error
	calls   int
}

func (m *mockCatalog) FetchProducts(_ context.Context) ([]models.ProductEntry, error) {
	m.calls++
	return m.entries, m.err
}

func TestFindProductBySerial_FetchesFresh(t *testing.T) {
	catalog := &mockCatalog{entries: []models.ProductEntry{
		{ID: 7, Product: models.Product{Serial: "SN123"}},
	}}

	found, err := workflow.FindProductBySerial(context.Background(), catalog, "SN123")
	assert.NoError(t, err)
	if assert.NotNil(t, found) {
		assert.Equal(t, 7, found.ID)
	}
	assert.Equal(t, 1, catalog.calls)

	_, _ = workflow.FindProductBySerial(context.Background(), catalog, "SN123")
	assert.Equal(t, 2, catalog.calls) // no caching between resolutions
}

func TestFindProductBySerial_NotFound(t *testing.T) {
	catalog := &mockCatalog{}
	found, err := workflow.FindProductBySerial(context.Background(), catalog, "SN123")
	assert.NoError(t, err) // "not found" is not an error
	assert.Nil(t, found)
}

func TestFindProductBySerial_FetchError(t *testing.T) {
	catalog := &mockCatalog{err: errors.New("backend down")}
	_, err := workflow.FindProductBySerial(context.Background(), catalog, "SN123")
	assert.Error(t, err)
}
