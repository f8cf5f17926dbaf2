package entity

import (
	"fmt"
	"time"
)

// DaysInWeek cantidad de filas WorkingHours por sucursal (0 = lunes ... 6 = domingo).
const DaysInWeek = 7

// DayNames nombres de los días en el orden de DayOfWeek.
var DayNames = [DaysInWeek]string{
	"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье",
}

// ClosedLabel texto del horario para un día sin atención.
const ClosedLabel = "Выходной"

// Store sucursal física.
type Store struct {
	ID          string
	City        string
	Address     string
	Phone       string
	Description string
	Latitude    *float64
	Longitude   *float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Hours []WorkingHours
}

// WorkingHours horario de un día. Horas en formato "HH:MM"; vacías si no están definidas.
type WorkingHours struct {
	StoreID     string
	DayOfWeek   int
	OpeningTime string
	ClosingTime string
	IsClosed    bool
}

// WeekdayIndex convierte time.Weekday (domingo = 0) al índice de la semana que empieza en lunes.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Label texto del horario: "HH:MM - HH:MM" o "Выходной".
func (w WorkingHours) Label() string {
	if w.IsClosed {
		return ClosedLabel
	}
	open, closing := w.OpeningTime, w.ClosingTime
	if open == "" {
		open = "--:--"
	}
	if closing == "" {
		closing = "--:--"
	}
	return open + " - " + closing
}

// HoursFor devuelve el horario del día indicado, si existe.
func (s *Store) HoursFor(day int) (WorkingHours, bool) {
	for _, h := range s.Hours {
		if h.DayOfWeek == day {
			return h, true
		}
	}
	return WorkingHours{}, false
}

// IsOpenAt indica si la sucursal atiende en el instante t (ya convertido a la zona de la sucursal).
// Un cierre anterior a la apertura se interpreta como horario que cruza la medianoche.
func (s *Store) IsOpenAt(t time.Time) bool {
	if !s.IsActive {
		return false
	}
	now := t.Hour()*60 + t.Minute()

	if h, ok := s.HoursFor(WeekdayIndex(t.Weekday())); ok && !h.IsClosed {
		open, err1 := ParseClock(h.OpeningTime)
		closing, err2 := ParseClock(h.ClosingTime)
		if err1 == nil && err2 == nil {
			if open < closing && now >= open && now < closing {
				return true
			}
			if closing <= open && now >= open {
				return true
			}
		}
	}

	// Tramo posterior a la medianoche del día anterior.
	prev := WeekdayIndex(t.Add(-24 * time.Hour).Weekday())
	if h, ok := s.HoursFor(prev); ok && !h.IsClosed {
		open, err1 := ParseClock(h.OpeningTime)
		closing, err2 := ParseClock(h.ClosingTime)
		if err1 == nil && err2 == nil && closing <= open && now < closing {
			return true
		}
	}
	return false
}

// HasValidCoordinates coordenadas presentes y dentro de lat 30..80, lng 40..180.
func (s *Store) HasValidCoordinates() bool {
	if s.Latitude == nil || s.Longitude == nil {
		return false
	}
	lat, lng := *s.Latitude, *s.Longitude
	return lat >= 30 && lat <= 80 && lng >= 40 && lng <= 180
}

// ParseClock convierte "HH:MM" a minutos desde la medianoche.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q: %w", v, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
