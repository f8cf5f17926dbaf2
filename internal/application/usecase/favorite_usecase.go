package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// Estados devueltos por Toggle.
const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

// FavoriteUseCase favoritos y panel del cliente.
type FavoriteUseCase struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	users     repository.UserRepository
	images    ports.ImageStorage
	now       func() time.Time
}

// NewFavoriteUseCase construye el caso de uso.
func NewFavoriteUseCase(
	favorites repository.FavoriteRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	images ports.ImageStorage,
) *FavoriteUseCase {
	return &FavoriteUseCase{
		favorites: favorites,
		products:  products,
		customers: customers,
		users:     users,
		images:    images,
		now:       time.Now,
	}
}

// Toggle agrega el producto a favoritos si no estaba; si estaba lo quita.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, actor *access.Principal, productID string) (*dto.ToggleFavoriteResponse, error) {
	if productID == "" {
		return nil, domain.NewValidationError("product_id", "es obligatorio")
	}
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrNotFound
	}
	customerID, err := uc.customerProfileOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	status := FavoriteAdded
	added, err := uc.favorites.Add(ctx, &entity.FavoriteProduct{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ProductID:  productID,
		AddedAt:    uc.now(),
	})
	if err != nil {
		return nil, err
	}
	if !added {
		if _, err := uc.favorites.Remove(ctx, customerID, productID); err != nil {
			return nil, err
		}
		status = FavoriteRemoved
	}

	count, err := uc.favorites.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleFavoriteResponse{Status: status, Count: count, ProductID: productID}, nil
}

// List productos favoritos, el más reciente primero.
func (uc *FavoriteUseCase) List(ctx context.Context, actor *access.Principal) (*dto.FavoriteListResponse, error) {
	customerID, err := uc.customerProfileOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	list, err := uc.favorites.ListProducts(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p, uc.images.URL(p.ImageKey)))
	}
	return &dto.FavoriteListResponse{Products: out, Count: len(out)}, nil
}

// FavoriteIDs ids de productos favoritos del principal; vacío si no es cliente con perfil.
func (uc *FavoriteUseCase) FavoriteIDs(ctx context.Context, actor *access.Principal) ([]string, error) {
	if actor == nil || actor.Role != entity.RoleCustomer {
		return []string{}, nil
	}
	customerID, err := uc.customerProfileOf(ctx, actor)
	if errors.Is(err, domain.ErrNoCustomerProfile) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return uc.favorites.ListProductIDs(ctx, customerID)
}

// Dashboard perfil del cliente y cantidad de favoritos.
func (uc *FavoriteUseCase) Dashboard(ctx context.Context, actor *access.Principal) (*dto.CustomerDashboardResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := &dto.CustomerDashboardResponse{User: *dto.NewUserResponse(user)}
	if !user.HasCustomerProfile() {
		return out, nil
	}
	c, err := uc.customers.GetByID(ctx, *user.CustomerProfileID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		out.Profile = &dto.CustomerProfileResponse{
			ID:         c.ID,
			Email:      c.Email,
			FirstName:  c.FirstName,
			LastName:   c.LastName,
			MiddleName: c.MiddleName,
			Phone:      c.Phone,
			Address:    c.Address,
			IsVerified: c.IsVerified,
			CreatedAt:  c.CreatedAt,
		}
	}
	out.FavoriteCount, err = uc.favorites.CountByCustomer(ctx, *user.CustomerProfileID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *FavoriteUseCase) customerProfileOf(ctx context.Context, actor *access.Principal) (string, error) {
	if actor == nil {
		return "", domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if !user.HasCustomerProfile() {
		return "", domain.ErrNoCustomerProfile
	}
	return *user.CustomerProfileID, nil
}
