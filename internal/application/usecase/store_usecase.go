package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/validation"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// StoreUseCase administración de sucursales y su horario.
type StoreUseCase struct {
	stores   repository.StoreRepository
	validate *validation.Validator
	loc      *time.Location
	now      func() time.Time
}

// NewStoreUseCase construye el caso de uso; loc es la zona horaria de las sucursales.
func NewStoreUseCase(stores repository.StoreRepository, validate *validation.Validator, loc *time.Location) *StoreUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &StoreUseCase{stores: stores, validate: validate, loc: loc, now: time.Now}
}

// Create da de alta una sucursal (activa por defecto) con la semana sin horario cargado.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	s := &entity.Store{
		ID:          uuid.New().String(),
		City:        strings.TrimSpace(in.City),
		Address:     strings.TrimSpace(in.Address),
		Phone:       in.Phone,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if err := uc.stores.Create(ctx, s); err != nil {
		return nil, err
	}
	out := NewStoreResponse(s, now.In(uc.loc))
	return &out, nil
}

// SetHours reemplaza el horario semanal: exactamente 7 entradas, una por día.
// Un día abierto necesita apertura y cierre.
func (uc *StoreUseCase) SetHours(ctx context.Context, storeID string, in dto.SetWorkingHoursRequest) (*dto.StoreResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	seen := [entity.DaysInWeek]bool{}
	hours := make([]entity.WorkingHours, 0, entity.DaysInWeek)
	for _, h := range in.Hours {
		if seen[h.DayOfWeek] {
			return nil, domain.NewValidationError("hours", "cada día de la semana debe aparecer una sola vez")
		}
		seen[h.DayOfWeek] = true
		wh := entity.WorkingHours{StoreID: storeID, DayOfWeek: h.DayOfWeek, IsClosed: h.IsClosed}
		if !h.IsClosed {
			if h.OpeningTime == "" || h.ClosingTime == "" {
				return nil, domain.NewValidationError("hours", "un día abierto necesita hora de apertura y de cierre")
			}
			wh.OpeningTime, wh.ClosingTime = h.OpeningTime, h.ClosingTime
		}
		hours = append(hours, wh)
	}

	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.stores.SetWorkingHours(ctx, storeID, hours); err != nil {
		return nil, err
	}
	store.Hours = hours
	out := NewStoreResponse(store, uc.now().In(uc.loc))
	return &out, nil
}

// List todas las sucursales con horario.
func (uc *StoreUseCase) List(ctx context.Context) ([]dto.StoreResponse, error) {
	list, err := uc.stores.List(ctx, repository.StoreFilter{WithHours: true})
	if err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewStoreResponse(s, now))
	}
	return out, nil
}

// NewStoreResponse mapea la sucursal con su semana formateada y si atiende en now.
// Las coordenadas fuera del rango del mapa se omiten.
func NewStoreResponse(s *entity.Store, now time.Time) dto.StoreResponse {
	out := dto.StoreResponse{
		ID:          s.ID,
		City:        s.City,
		Address:     s.Address,
		Phone:       s.Phone,
		Description: s.Description,
		IsActive:    s.IsActive,
		Schedule:    make([]dto.ScheduleDay, 0, entity.DaysInWeek),
		IsOpenNow:   s.IsOpenAt(now),
	}
	if s.HasValidCoordinates() {
		out.Latitude, out.Longitude = s.Latitude, s.Longitude
	}
	for day := 0; day < entity.DaysInWeek; day++ {
		h, ok := s.HoursFor(day)
		if !ok {
			continue
		}
		out.Schedule = append(out.Schedule, dto.ScheduleDay{
			Day:      entity.DayNames[day],
			Time:     h.Label(),
			IsClosed: h.IsClosed,
		})
	}
	return out
}
