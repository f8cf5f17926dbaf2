package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// semana: lunes a viernes 09:00-21:00, sábado 22:00-02:00, domingo cerrado.
func storeWithWeek() *entity.Store {
	s := &entity.Store{ID: "s1", IsActive: true}
	for d := 0; d < 5; d++ {
		s.Hours = append(s.Hours, entity.WorkingHours{DayOfWeek: d, OpeningTime: "09:00", ClosingTime: "21:00"})
	}
	s.Hours = append(s.Hours,
		entity.WorkingHours{DayOfWeek: 5, OpeningTime: "22:00", ClosingTime: "02:00"},
		entity.WorkingHours{DayOfWeek: 6, IsClosed: true},
	)
	return s
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return ts
}

func TestWeekdayIndex_LunesEsCero(t *testing.T) {
	assert.Equal(t, 0, entity.WeekdayIndex(time.Monday))
	assert.Equal(t, 5, entity.WeekdayIndex(time.Saturday))
	assert.Equal(t, 6, entity.WeekdayIndex(time.Sunday))
}

func TestStore_IsOpenAt(t *testing.T) {
	s := storeWithWeek()
	cases := []struct {
		name string
		when string
		want bool
	}{
		{"lunes dentro del horario", "2024-01-15 10:30", true},
		{"lunes en la apertura", "2024-01-15 09:00", true},
		{"lunes en el cierre", "2024-01-15 21:00", false},
		{"lunes antes de abrir", "2024-01-15 08:59", false},
		{"sábado noche", "2024-01-20 23:00", true},
		{"domingo madrugada por horario del sábado", "2024-01-21 01:30", true},
		{"domingo después del tramo nocturno", "2024-01-21 03:00", false},
		{"domingo cerrado", "2024-01-21 12:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.IsOpenAt(at(t, tc.when)))
		})
	}
}

func TestStore_InactivaNuncaAbierta(t *testing.T) {
	s := storeWithWeek()
	s.IsActive = false
	assert.False(t, s.IsOpenAt(at(t, "2024-01-15 10:30")))
}

func TestWorkingHours_Label(t *testing.T) {
	assert.Equal(t, "09:00 - 21:00", entity.WorkingHours{OpeningTime: "09:00", ClosingTime: "21:00"}.Label())
	assert.Equal(t, entity.ClosedLabel, entity.WorkingHours{IsClosed: true}.Label())
	assert.Equal(t, "--:-- - 18:00", entity.WorkingHours{ClosingTime: "18:00"}.Label())
}

func TestStore_HasValidCoordinates(t *testing.T) {
	lat, lng := 55.75, 37.61 // longitud fuera del rango aceptado
	s := &entity.Store{Latitude: &lat, Longitude: &lng}
	assert.False(t, s.HasValidCoordinates())

	lng = 49.10
	assert.True(t, s.HasValidCoordinates())

	s.Longitude = nil
	assert.False(t, s.HasValidCoordinates())
}

func TestUser_SuperuserSiempreAdmin(t *testing.T) {
	u := &entity.User{Role: entity.RoleCustomer, IsSuperuser: true}
	u.EnforceRoleInvariants()
	assert.Equal(t, entity.RoleAdmin, u.Role)

	u = &entity.User{Role: entity.RoleManager}
	u.EnforceRoleInvariants()
	assert.Equal(t, entity.RoleManager, u.Role)
}
