package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

const (
	customerUID = "11111111-0000-0000-0000-000000000001"
	customerPID = "22222222-0000-0000-0000-000000000001"
	productID   = "33333333-0000-0000-0000-000000000001"
)

func newFavoriteFixture(t *testing.T) (*FavoriteUseCase, *memCatalog) {
	t.Helper()
	m := newMemCatalog()
	m.users[customerUID] = &entity.User{
		ID: customerUID, Username: "user_ab12cd34", Email: "ana@example.com",
		Role: entity.RoleCustomer, IsActive: true, CustomerProfileID: strPtr(customerPID),
	}
	m.users[managerUID] = &entity.User{ID: managerUID, Username: "ivan", Role: entity.RoleManager, IsActive: true}
	m.customers[customerPID] = &entity.Customer{ID: customerPID, Email: "ana@example.com", FirstName: "Анна", LastName: "Петрова"}
	m.products[productID] = entity.Product{ID: productID, Name: "Sofa", Slug: "sofa", Price: decimal.NewFromInt(100), Available: true}

	uc := NewFavoriteUseCase(memFavorites{m}, memProducts{m}, memCustomers{m: m}, memUsers{m: m}, newMemImages())
	return uc, m
}

func customerActor() *access.Principal {
	return &access.Principal{UserID: customerUID, Role: entity.RoleCustomer}
}

func TestToggle_AgregaYQuita(t *testing.T) {
	uc, m := newFavoriteFixture(t)
	ctx := context.Background()

	out, err := uc.Toggle(ctx, customerActor(), productID)
	require.NoError(t, err)
	assert.Equal(t, FavoriteAdded, out.Status)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, productID, out.ProductID)
	require.Len(t, m.favorites, 1)
	assert.Equal(t, customerPID, m.favorites[0].CustomerID)

	out, err = uc.Toggle(ctx, customerActor(), productID)
	require.NoError(t, err)
	assert.Equal(t, FavoriteRemoved, out.Status)
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, m.favorites)
}

func TestToggle_Errores(t *testing.T) {
	uc, _ := newFavoriteFixture(t)
	ctx := context.Background()

	_, err := uc.Toggle(ctx, customerActor(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Toggle(ctx, customerActor(), "33333333-0000-0000-0000-00000000ffff")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Toggle(ctx, customerActor(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Toggle(ctx, &access.Principal{UserID: managerUID, Role: entity.RoleManager}, productID)
	assert.ErrorIs(t, err, domain.ErrNoCustomerProfile)
}

func TestFavoriteList_YDashboard(t *testing.T) {
	uc, _ := newFavoriteFixture(t)
	ctx := context.Background()
	_, err := uc.Toggle(ctx, customerActor(), productID)
	require.NoError(t, err)

	list, err := uc.List(ctx, customerActor())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "Sofa", list.Products[0].Name)

	ids, err := uc.FavoriteIDs(ctx, customerActor())
	require.NoError(t, err)
	assert.Equal(t, []string{productID}, ids)

	dash, err := uc.Dashboard(ctx, customerActor())
	require.NoError(t, err)
	assert.Equal(t, 1, dash.FavoriteCount)
	require.NotNil(t, dash.Profile)
	assert.Equal(t, "Анна", dash.Profile.FirstName)
	assert.Equal(t, "user_ab12cd34", dash.User.Username)
}

func TestFavoriteIDs_NoClienteDevuelveVacio(t *testing.T) {
	uc, _ := newFavoriteFixture(t)

	ids, err := uc.FavoriteIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = uc.FavoriteIDs(context.Background(), &access.Principal{UserID: managerUID, Role: entity.RoleManager})
	require.NoError(t, err)
	assert.Empty(t, ids)
}
