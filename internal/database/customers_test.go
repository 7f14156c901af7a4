package database

import (
	"context"
	"testing"

	"renvask/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer() *models.Customer {
	return &models.Customer{
		Name:             "Mette Jensen",
		Email:            "mette@example.dk",
		Phone:            "+45 12 34 56 78",
		Street:           "Nørrebrogade 12",
		City:             "København",
		PostalCode:       "2200",
		MarketingConsent: true,
	}
}

func TestCustomerCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := testCustomer()
	require.NoError(t, db.CreateCustomer(ctx, c))
	require.NotZero(t, c.ID)

	got, err := db.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "mette@example.dk", got.Email)

	got.Notes = "Prefers morning visits"
	require.NoError(t, db.UpdateCustomer(ctx, got))

	updated, err := db.GetCustomer(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prefers morning visits", updated.Notes)

	require.NoError(t, db.DeleteCustomer(ctx, c.ID))
	_, err = db.GetCustomer(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCustomer_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateCustomer(context.Background(), &models.Customer{ID: 404, Name: "x", Email: "x@x.dk"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = db.DeleteCustomer(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertCustomerByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := testCustomer()
	require.NoError(t, db.UpsertCustomerByEmail(ctx, c))
	firstID := c.ID
	require.NotZero(t, firstID)

	again := testCustomer()
	again.Phone = "+45 87 65 43 21"
	require.NoError(t, db.UpsertCustomerByEmail(ctx, again))
	assert.Equal(t, firstID, again.ID)

	list, err := db.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "+45 87 65 43 21", list[0].Phone)
}
