package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/validation"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción (rollback restaura el estado)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	users     map[string]entity.User
	managers  map[string]entity.Manager
	customers map[string]entity.Customer

	failManagerCreate error
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]entity.User{},
		managers:  map[string]entity.Manager{},
		customers: map[string]entity.Customer{},
	}
}

func (m *memStore) RunIdentity(ctx context.Context, fn func(r Repos) error) error {
	users := cloneMap(m.users)
	managers := cloneMap(m.managers)
	customers := cloneMap(m.customers)
	if err := fn(Repos{Users: memUsers{m}, Managers: memManagers{m}, Customers: memCustomers{m}}); err != nil {
		m.users, m.managers, m.customers = users, managers, customers
		return err
	}
	return nil
}

func cloneMap[T any](in map[string]T) map[string]T {
	out := make(map[string]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) find(match func(entity.User) bool) *entity.User {
	for _, u := range r.s.users {
		if match(u) {
			cp := u
			return &cp
		}
	}
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r memUsers) GetCustomerByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Email, strings.TrimSpace(email)) && u.Role == entity.RoleCustomer }), nil
}

func (r memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.find(func(u entity.User) bool { return u.Email == email }) != nil, nil
}

func (r memUsers) GetByManagerProfile(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ManagerProfileID != nil && *u.ManagerProfileID == id }), nil
}

func (r memUsers) GetByCustomerProfile(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.CustomerProfileID != nil && *u.CustomerProfileID == id }), nil
}

func (r memUsers) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u := r.s.users[id]
	u.LastLogin = &at
	r.s.users[id] = u
	return nil
}

type memManagers struct{ s *memStore }

func (r memManagers) Create(_ context.Context, m *entity.Manager) error {
	if r.s.failManagerCreate != nil {
		return r.s.failManagerCreate
	}
	r.s.managers[m.ID] = *m
	return nil
}

func (r memManagers) Update(_ context.Context, m *entity.Manager) error {
	r.s.managers[m.ID] = *m
	return nil
}

func (r memManagers) GetByID(_ context.Context, id string) (*entity.Manager, error) {
	m, ok := r.s.managers[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

type memCustomers struct{ s *memStore }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) Update(_ context.Context, c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store *memStore) *Service {
	s := NewService(store, validation.New()).WithHashCost(bcrypt.MinCost)
	s.now = func() time.Time { return fixedNow }
	return s
}

func managerRequest() dto.SaveUserRequest {
	return dto.SaveUserRequest{
		Username:  "mgr1",
		Password:  "p@ss1",
		FirstName: "Иван",
		LastName:  "Иванов",
		Role:      "MANAGER",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SaveUser
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveUser_ManagerNuevoCreaPerfil(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.NoError(t, err)
	require.True(t, user.HasManagerProfile(), "debe enlazarse un perfil de manager")

	m := store.managers[*user.ManagerProfileID]
	assert.Equal(t, "Иван", m.FirstName)
	assert.Equal(t, "Иванов", m.LastName)
	assert.Empty(t, m.Phone)
	assert.Empty(t, m.Position)
	assert.True(t, m.IsActive)

	persisted := store.users[user.ID]
	require.NotNil(t, persisted.ManagerProfileID)
	assert.Equal(t, m.ID, *persisted.ManagerProfileID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("p@ss1")))
}

func TestSaveUser_SincronizaNombresEnCadaGuardado(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.NoError(t, err)

	in := managerRequest()
	in.Password = ""
	in.FirstName = "Пётр"
	in.LastName = "Петров"
	_, err = svc.SaveUser(context.Background(), user.ID, in)
	require.NoError(t, err)

	m := store.managers[*user.ManagerProfileID]
	assert.Equal(t, "Пётр", m.FirstName)
	assert.Equal(t, "Петров", m.LastName)
	assert.Len(t, store.managers, 1, "no debe crearse un segundo perfil")
}

func TestSaveUser_GuardarDosVecesEsIdempotente(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.NoError(t, err)

	in := managerRequest()
	in.Password = ""
	_, err = svc.SaveUser(context.Background(), user.ID, in)
	require.NoError(t, err)
	first := store.managers[*user.ManagerProfileID]

	_, err = svc.SaveUser(context.Background(), user.ID, in)
	require.NoError(t, err)
	second := store.managers[*user.ManagerProfileID]

	assert.Equal(t, first, second)
	assert.Len(t, store.managers, 1)
}

func TestSaveUser_PerfilExistenteSeSobrescribe(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	profile := "00000000-0000-0000-0000-0000000000aa"
	store.managers[profile] = entity.Manager{ID: profile, FirstName: "Старое", LastName: "Имя", Phone: "+7 900", Position: "Менеджер"}
	in := managerRequest()
	in.ManagerProfileID = &profile

	user, err := svc.SaveUser(context.Background(), "", in)
	require.NoError(t, err)

	m := store.managers[profile]
	assert.Equal(t, "Иван", m.FirstName)
	assert.Equal(t, "Иванов", m.LastName)
	assert.Equal(t, "+7 900", m.Phone, "los demás campos del perfil se conservan")
	assert.Equal(t, "Менеджер", m.Position)
	assert.Equal(t, profile, *user.ManagerProfileID)
}

func TestSaveUser_SuperuserSiempreAdmin(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	in := managerRequest()
	in.Username = "root"
	in.IsSuperuser = true

	user, err := svc.SaveUser(context.Background(), "", in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.False(t, user.HasManagerProfile(), "un ADMIN no recibe perfil de manager")
	assert.Empty(t, store.managers)
}

func TestSaveUser_PerfilYaVinculado(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	first, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.NoError(t, err)

	in := managerRequest()
	in.Username = "mgr2"
	in.ManagerProfileID = first.ManagerProfileID

	_, err = svc.SaveUser(context.Background(), "", in)
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyLinked)
	assert.Len(t, store.users, 1, "la transacción debe revertirse")
}

func TestSaveUser_FalloEnPerfilRevierteUsuario(t *testing.T) {
	store := newMemStore()
	store.failManagerCreate = errors.New("db caída")
	svc := newTestService(store)

	_, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.Error(t, err)
	assert.Empty(t, store.users, "User y Manager se confirman juntos o no se confirman")
	assert.Empty(t, store.managers)
}

func TestSaveUser_Validaciones(t *testing.T) {
	svc := newTestService(newMemStore())

	in := managerRequest()
	in.FirstName = "Ivan"
	_, err := svc.SaveUser(context.Background(), "", in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "first_name")

	in = managerRequest()
	in.Password = ""
	_, err = svc.SaveUser(context.Background(), "", in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	in = managerRequest()
	in.Role = "OWNER"
	_, err = svc.SaveUser(context.Background(), "", in)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")
}

func TestSaveUser_UsernameDuplicado(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.SaveUser(context.Background(), "", managerRequest())
	require.NoError(t, err)

	_, err = svc.SaveUser(context.Background(), "", managerRequest())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSaveUser_UsuarioInexistente(t *testing.T) {
	svc := newTestService(newMemStore())
	_, err := svc.SaveUser(context.Background(), "no-existe", managerRequest())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func customerSignup() dto.CustomerSignupRequest {
	return dto.CustomerSignupRequest{
		Email:     "C@X.com",
		FirstName: "Анна",
		LastName:  "Смирнова",
		Password1: "секретный-пароль",
		Password2: "секретный-пароль",
	}
}

func TestRegisterCustomer_CreaPerfilYUsuario(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.RegisterCustomer(context.Background(), customerSignup())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Equal(t, "c@x.com", user.Email)
	assert.Regexp(t, regexp.MustCompile(`^user_[0-9a-f]{8}$`), user.Username)
	require.True(t, user.HasCustomerProfile())
	assert.Equal(t, "c@x.com", store.customers[*user.CustomerProfileID].Email)
	assert.Empty(t, store.managers)
}

func TestRegisterCustomer_EmailDuplicado(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.RegisterCustomer(context.Background(), customerSignup())
	require.NoError(t, err)

	_, err = svc.RegisterCustomer(context.Background(), customerSignup())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, store.customers, 1)
}

func TestSaveUser_EmailDeClienteDuplicado(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	first, err := svc.RegisterCustomer(context.Background(), customerSignup())
	require.NoError(t, err)

	_, err = svc.SaveUser(context.Background(), "", dto.SaveUserRequest{
		Username: "dup", Password: "pw", Email: "C@x.com", Role: "CUSTOMER",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, store.users, 1)

	// El mismo cliente puede guardarse de nuevo con su email.
	_, err = svc.SaveUser(context.Background(), first.ID, dto.SaveUserRequest{
		Username: first.Username, Email: "c@x.com", Role: "CUSTOMER", FirstName: "Анна",
	})
	require.NoError(t, err)

	// Un MANAGER con el mismo email no compite por el login de cliente.
	_, err = svc.SaveUser(context.Background(), "", dto.SaveUserRequest{
		Username: "mgr-c", Password: "pw", Email: "c@x.com", Role: "MANAGER",
	})
	require.NoError(t, err)
}

func TestRegisterCustomer_PasswordsDistintas(t *testing.T) {
	svc := newTestService(newMemStore())
	in := customerSignup()
	in.Password2 = "otra-cosa-123"

	_, err := svc.RegisterCustomer(context.Background(), in)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "las contraseñas no coinciden", verr.Fields["password2"])
}

func TestRegisterManager_CreaPerfil(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	user, err := svc.RegisterManager(context.Background(), dto.ManagerSignupRequest{
		Username:  "petrov",
		Email:     "petrov@shop.ru",
		FirstName: "Пётр",
		LastName:  "Петров",
		Password1: "пароль-123456",
		Password2: "пароль-123456",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, user.Role)
	require.True(t, user.HasManagerProfile())
	assert.Equal(t, "Пётр", store.managers[*user.ManagerProfileID].FirstName)
}

func TestRegisterManager_EmailExistente(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	_, err := svc.RegisterCustomer(context.Background(), customerSignup())
	require.NoError(t, err)

	_, err = svc.RegisterManager(context.Background(), dto.ManagerSignupRequest{
		Username:  "petrov",
		Email:     "c@x.com",
		FirstName: "Пётр",
		LastName:  "Петров",
		Password1: "пароль-123456",
		Password2: "пароль-123456",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
