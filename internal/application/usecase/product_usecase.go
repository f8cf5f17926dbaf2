package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/validation"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

const (
	maxSlugAttempts = 1000
	maxImageBytes   = 5 << 20
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// CatalogTxRunner ejecuta fn con repos de productos y auditoría atados a una transacción.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(products repository.ProductRepository, logs repository.ActionLogRepository) error) error
}

// ProductUseCase casos de uso del panel del manager sobre productos.
// Cada escritura y su ActionLog se confirman en la misma transacción.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	stores     repository.StoreRepository
	users      repository.UserRepository
	tx         CatalogTxRunner
	images     ports.ImageStorage
	validate   *validation.Validator
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	stores repository.StoreRepository,
	users repository.UserRepository,
	tx CatalogTxRunner,
	images ports.ImageStorage,
	validate *validation.Validator,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		stores:     stores,
		users:      users,
		tx:         tx,
		images:     images,
		validate:   validate,
		now:        time.Now,
	}
}

// Create crea un producto a nombre del perfil de manager del actor y registra CREATE.
func (uc *ProductUseCase) Create(ctx context.Context, actor *access.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	managerID, err := uc.managerProfileOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, in.CategoryID, in.StoreID); err != nil {
		return nil, err
	}

	now := uc.now()
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Available:   available,
		CategoryID:  in.CategoryID,
		StoreID:     in.StoreID,
		CreatedBy:   managerID,
		ExternalURL: in.ExternalURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, logs repository.ActionLogRepository) error {
		dup, err := products.ExistsByNameAndStore(ctx, product.Name, product.StoreID, "")
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrDuplicate
		}
		product.Slug, err = UniqueSlug(ctx, product.Name, func(ctx context.Context, s string) (bool, error) {
			return products.SlugExists(ctx, s, "")
		})
		if err != nil {
			return err
		}
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		return logs.Create(ctx, uc.newLog(actor, entity.ActionCreate, product, nil,
			fmt.Sprintf("Цена: %s", product.Price.StringFixed(2))))
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto; nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	out := dto.NewProductResponse(p, uc.images.URL(p.ImageKey))
	return &out, nil
}

// Update edición parcial; registra EDIT con los campos cambiados. Sin cambios no se escribe nada.
func (uc *ProductUseCase) Update(ctx context.Context, actor *access.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	categoryID, storeID := "", ""
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
	}
	if in.StoreID != nil {
		storeID = *in.StoreID
	}
	if err := uc.checkReferences(ctx, categoryID, storeID); err != nil {
		return nil, err
	}

	err := uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, logs repository.ActionLogRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		changes := ApplyProductChanges(product, in)
		if len(changes) == 0 {
			return nil
		}
		_, nameChanged := changes["name"]
		_, storeChanged := changes["store_id"]
		if nameChanged || storeChanged {
			dup, err := products.ExistsByNameAndStore(ctx, product.Name, product.StoreID, product.ID)
			if err != nil {
				return err
			}
			if dup {
				return domain.ErrDuplicate
			}
		}
		product.UpdatedAt = uc.now()
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		return logs.Create(ctx, uc.newLog(actor, entity.ActionEdit, product, changes, ""))
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra los productos indicados (los favoritos caen por cascada) y registra DELETE por producto.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *access.Principal, in dto.IDsRequest) (int, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, err
	}
	var deleted int
	err := uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, logs repository.ActionLogRepository) error {
		list, err := products.ListByIDs(ctx, in.ProductIDs)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return domain.ErrNotFound
		}
		ids := make([]string, 0, len(list))
		for _, p := range list {
			ids = append(ids, p.ID)
		}
		n, err := products.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, p := range list {
			l := uc.newLog(actor, entity.ActionDelete, p, nil, "ID: "+p.ID)
			l.ProductID = nil // el producto ya no existe
			if err := logs.Create(ctx, l); err != nil {
				return err
			}
		}
		deleted = int(n)
		return nil
	})
	return deleted, err
}

// Deactivate marca como no disponibles los productos indicados y registra DEACTIVATE
// por cada producto que estaba disponible.
func (uc *ProductUseCase) Deactivate(ctx context.Context, actor *access.Principal, in dto.IDsRequest) (int, error) {
	if err := uc.validate.Struct(in); err != nil {
		return 0, err
	}
	var changed int
	err := uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, logs repository.ActionLogRepository) error {
		list, err := products.ListByIDs(ctx, in.ProductIDs)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return domain.ErrNotFound
		}
		var ids []string
		for _, p := range list {
			if p.Available {
				ids = append(ids, p.ID)
			}
		}
		if len(ids) == 0 {
			return nil
		}
		if _, err := products.SetAvailability(ctx, ids, false, uc.now()); err != nil {
			return err
		}
		for _, p := range list {
			if !p.Available {
				continue
			}
			changes := map[string]entity.FieldChange{"available": {Old: "true", New: "false"}}
			if err := logs.Create(ctx, uc.newLog(actor, entity.ActionDeactivate, p, changes, "")); err != nil {
				return err
			}
		}
		changed = len(ids)
		return nil
	})
	return changed, err
}

// SetAvailability cambia la disponibilidad de un producto.
func (uc *ProductUseCase) SetAvailability(ctx context.Context, actor *access.Principal, id string, in dto.AvailabilityRequest) (*dto.ProductResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	return uc.Update(ctx, actor, id, dto.UpdateProductRequest{Available: in.Available})
}

// AttachImage guarda la imagen en el almacenamiento y la enlaza al producto.
func (uc *ProductUseCase) AttachImage(ctx context.Context, actor *access.Principal, id, contentType string, size int64, body io.Reader) (*dto.ProductResponse, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.NewValidationError("image", "formato no soportado (jpeg, png, webp, gif)")
	}
	if size <= 0 || size > maxImageBytes {
		return nil, domain.NewValidationError("image", "la imagen debe pesar como máximo 5 MB")
	}
	current, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	key := filepath.ToSlash(filepath.Join("products", id, uuid.New().String()+ext))
	if err := uc.images.Save(ctx, key, body, size, contentType); err != nil {
		return nil, fmt.Errorf("guardar imagen: %w", err)
	}

	var previous string
	err = uc.tx.RunCatalog(ctx, func(products repository.ProductRepository, logs repository.ActionLogRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		previous = product.ImageKey
		product.ImageKey = key
		product.UpdatedAt = uc.now()
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		changes := map[string]entity.FieldChange{"image": {Old: previous, New: key}}
		return logs.Create(ctx, uc.newLog(actor, entity.ActionEdit, product, changes, ""))
	})
	if err != nil {
		_ = uc.images.Delete(ctx, key)
		return nil, err
	}
	if previous != "" {
		_ = uc.images.Delete(ctx, previous)
	}
	return uc.GetByID(ctx, id)
}

// Dashboard todos los productos: disponibles primero, luego por updated_at (ascendente o "newest").
func (uc *ProductUseCase) Dashboard(ctx context.Context, q dto.ManagerDashboardQuery) (*dto.ManagerDashboardResponse, error) {
	sort := repository.SortAvailableOldest
	sortLabel := "oldest"
	if q.Sort == "newest" {
		sort = repository.SortAvailableNewest
		sortLabel = "newest"
	}
	filter := repository.ProductFilter{Sort: sort}
	if isUUID(q.Store) {
		filter.StoreID = q.Store
	}
	if isUUID(q.Category) {
		filter.CategoryID = q.Category
	}
	list, _, err := uc.products.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	stores, err := uc.stores.List(ctx, repository.StoreFilter{})
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ManagerDashboardResponse{
		Products:   uc.toResponses(list),
		Stores:     dto.NewStoreOptions(stores),
		Categories: dto.NewCategoryList(categories),
		Sort:       sortLabel,
	}, nil
}

// Stats totales de productos para el panel.
func (uc *ProductUseCase) Stats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	st, err := uc.products.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		Total:       st.Total,
		Available:   st.Available,
		Unavailable: st.Unavailable,
		ByCategory:  toNamedCounts(st.ByCategory),
		ByStore:     toNamedCounts(st.ByStore),
	}, nil
}

func (uc *ProductUseCase) toResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p, uc.images.URL(p.ImageKey)))
	}
	return out
}

// managerProfileOf perfil de manager del actor; los productos siempre tienen autor Manager.
func (uc *ProductUseCase) managerProfileOf(ctx context.Context, actor *access.Principal) (string, error) {
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
	if !user.HasManagerProfile() {
		return "", domain.ErrNoManagerProfile
	}
	return *user.ManagerProfileID, nil
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, categoryID, storeID string) error {
	if categoryID != "" {
		c, err := uc.categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewValidationError("category_id", "la categoría no existe")
		}
	}
	if storeID != "" {
		s, err := uc.stores.GetByID(ctx, storeID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewValidationError("store_id", "la sucursal no existe")
		}
	}
	return nil
}

func (uc *ProductUseCase) newLog(actor *access.Principal, action entity.ActionType, p *entity.Product, changes map[string]entity.FieldChange, details string) *entity.ActionLog {
	l := &entity.ActionLog{
		ID:            uuid.New().String(),
		ActionType:    action,
		ProductName:   p.Name,
		ChangedFields: changes,
		Details:       details,
		Timestamp:     uc.now(),
	}
	if actor != nil && actor.UserID != "" {
		userID := actor.UserID
		l.UserID = &userID
	}
	productID := p.ID
	l.ProductID = &productID
	return l
}

// ApplyProductChanges aplica la edición parcial sobre p y devuelve {campo: {old, new}} de lo que cambió.
func ApplyProductChanges(p *entity.Product, in dto.UpdateProductRequest) map[string]entity.FieldChange {
	changes := map[string]entity.FieldChange{}
	setString := func(field string, dst *string, v *string) {
		if v == nil || *v == *dst {
			return
		}
		changes[field] = entity.FieldChange{Old: *dst, New: *v}
		*dst = *v
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		setString("name", &p.Name, &name)
	}
	setString("description", &p.Description, in.Description)
	setString("category_id", &p.CategoryID, in.CategoryID)
	setString("store_id", &p.StoreID, in.StoreID)
	setString("external_url", &p.ExternalURL, in.ExternalURL)
	if in.Price != nil && !in.Price.Equal(p.Price) {
		changes["price"] = entity.FieldChange{Old: p.Price.StringFixed(2), New: in.Price.StringFixed(2)}
		p.Price = *in.Price
	}
	if in.Available != nil && *in.Available != p.Available {
		changes["available"] = entity.FieldChange{Old: strconv.FormatBool(p.Available), New: strconv.FormatBool(*in.Available)}
		p.Available = *in.Available
	}
	return changes
}

// UniqueSlug deriva un slug de name y añade "-N" mientras exists informe colisión.
func UniqueSlug(ctx context.Context, name string, exists func(ctx context.Context, slug string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "product"
	}
	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("slug %q: %w", base, domain.ErrConflict)
}

func isUUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func toNamedCounts(in []repository.NamedCount) []dto.NamedCountDTO {
	out := make([]dto.NamedCountDTO, 0, len(in))
	for _, c := range in {
		out = append(out, dto.NamedCountDTO{Name: c.Name, Count: c.Count})
	}
	return out
}
