package dto

// CreateStoreRequest alta de sucursal (API de administración).
type CreateStoreRequest struct {
	City        string   `json:"city" validate:"required,max=100"`
	Address     string   `json:"address" validate:"required,max=200,address"`
	Phone       string   `json:"phone" validate:"omitempty,max=20,phone"`
	Description string   `json:"description" validate:"max=2000"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsActive    *bool    `json:"is_active"`
}

// WorkingHoursEntry horario de un día (0 = lunes).
type WorkingHoursEntry struct {
	DayOfWeek   int    `json:"day_of_week" validate:"gte=0,lte=6"`
	OpeningTime string `json:"opening_time" validate:"omitempty,clock"`
	ClosingTime string `json:"closing_time" validate:"omitempty,clock"`
	IsClosed    bool   `json:"is_closed"`
}

// SetWorkingHoursRequest horario completo de la semana.
type SetWorkingHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours" validate:"required,len=7,dive"`
}

// ScheduleDay día del horario ya formateado.
type ScheduleDay struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	IsClosed bool   `json:"is_closed"`
}

// StoreResponse salida de una sucursal.
type StoreResponse struct {
	ID          string        `json:"id"`
	City        string        `json:"city"`
	Address     string        `json:"address"`
	Phone       string        `json:"phone"`
	Description string        `json:"description"`
	Latitude    *float64      `json:"latitude"`
	Longitude   *float64      `json:"longitude"`
	IsActive    bool          `json:"is_active"`
	Schedule    []ScheduleDay `json:"schedule"`
	IsOpenNow   bool          `json:"is_open_now"`
}

// CityBranches sucursales de una ciudad.
type CityBranches struct {
	City        string          `json:"city"`
	BranchCount int             `json:"branch_count"`
	Branches    []StoreResponse `json:"branches"`
}

// BranchesResponse página de contactos.
type BranchesResponse struct {
	Cities         []CityBranches `json:"cities"`
	TotalBranches  int            `json:"total_branches"`
	ActiveBranches int            `json:"active_branches"`
}
