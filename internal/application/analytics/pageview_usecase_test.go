package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

type mockPageViews struct{ mock.Mock }

func (m *mockPageViews) Create(ctx context.Context, pv *entity.PageView) error {
	return m.Called(ctx, pv).Error(0)
}

func TestRecord_GuardaVisita(t *testing.T) {
	repo := &mockPageViews{}
	var saved *entity.PageView
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.PageView")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.PageView) }).
		Return(nil)

	uc := NewPageViewUseCase(repo)
	err := uc.Record(context.Background(), Visit{
		UserID:    "u1",
		Path:      "/products/",
		Referer:   "https://example.com/",
		ClientIP:  "10.0.0.1",
		UserAgent: strings.Repeat("ж", 600),
		Duration:  1500 * time.Millisecond,
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "/products/", saved.URL)
	assert.Equal(t, AnonymousSession, saved.SessionKey)
	require.NotNil(t, saved.UserID)
	assert.Equal(t, "u1", *saved.UserID)
	assert.Equal(t, int64(1500), saved.DurationMs)
	assert.Equal(t, entity.MaxUserAgentLength, utf8.RuneCountInString(saved.UserAgent))
	repo.AssertExpectations(t)
}

func TestRecord_PropagaError(t *testing.T) {
	repo := &mockPageViews{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db caída"))

	err := NewPageViewUseCase(repo).Record(context.Background(), Visit{Path: "/"})
	assert.Error(t, err)
}

func TestShouldTrack(t *testing.T) {
	assert.True(t, ShouldTrack("/"))
	assert.True(t, ShouldTrack("/manager/dashboard/"))
	assert.False(t, ShouldTrack("/static/app.css"))
	assert.False(t, ShouldTrack("/media/products/a.png"))
	assert.False(t, ShouldTrack("/admin/api/users/"))
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "1.2.3.4", ClientIP("1.2.3.4, 10.0.0.1", "127.0.0.1"))
	assert.Equal(t, "127.0.0.1", ClientIP("", "127.0.0.1"))
}
