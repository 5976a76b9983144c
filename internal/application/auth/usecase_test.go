package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m4lucen4/alquilandia-dashboard/internal/application/auth"
	"github.com/m4lucen4/alquilandia-dashboard/internal/application/dto"
	"github.com/m4lucen4/alquilandia-dashboard/internal/application/usecase"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
	"github.com/m4lucen4/alquilandia-dashboard/internal/domain/entity"
	pkgjwt "github.com/m4lucen4/alquilandia-dashboard/pkg/jwt"
)

type memUserRepo struct {
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{byID: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

var jwtCfg = auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 5, Issuer: "test"}

func registered(t *testing.T, role string) (*auth.AuthUseCase, *memUserRepo, *dto.UserResponse) {
	t.Helper()
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)
	u, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " Admin@Alquilandia.es ", Password: "secreta", Role: role})
	require.NoError(t, err)
	return uc, repo, u
}

func TestLogin_TokenConRol(t *testing.T) {
	uc, _, u := registered(t, entity.RoleAdmin)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@alquilandia.es", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	userID, role, err := pkgjwt.Parse(jwtCfg.Secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _, _ := registered(t, "")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@alquilandia.es", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@alquilandia.es", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "email desconocido no se distingue de clave incorrecta")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo, u := registered(t, "")
	repo.byID[u.ID].Status = entity.UserStatusInactive

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@alquilandia.es", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name, email, password string
		fields                []string
	}{
		{"válidas", "a@b.es", "123456", nil},
		{"email sin dominio", "a@b", "123456", []string{"email"}},
		{"email con espacio", "a b@c.es", "123456", []string{"email"}},
		{"password corto", "a@b.es", "12345", []string{"password"}},
		{"vacío", "", "", []string{"email", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateCredentials(tt.email, tt.password)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var fe usecase.FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.fields, fe.Fields())
		})
	}
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := registered(t, "")
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "admin@alquilandia.es", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolDesconocido(t *testing.T) {
	uc := auth.NewAuthUseCase(newMemUserRepo(), jwtCfg)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@b.es", Password: "secreta", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMe(t *testing.T) {
	uc, _, u := registered(t, "")
	me, err := uc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@alquilandia.es", me.Email)

	_, err = uc.Me(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
