package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return f.byEmail[email], nil }

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error { f.byEmail[u.Email] = u; return nil }

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (f *fakeUserRepo) Delete(id string) error { return nil }

const testSecret = "secreto-de-pruebas-auth"

func buildAuthUseCase(repo *fakeUserRepo, policy auth.Policy) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "ventas-api-test",
	}, policy)
}

func registro(email, role string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    email,
		Password: "clave-segura-123",
		Name:     "Ana Prueba",
		Role:     role,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_RolPorDefectoEsVendedor(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo(), auth.Policy{})

	out, err := uc.RegisterUser(registro("ana@ventas.test", ""))

	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, out.Role, "sin rol explícito el usuario nace vendedor")
	assert.Equal(t, "active", out.Status)
}

func TestRegisterUser_RolInvalido(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo(), auth.Policy{})

	_, err := uc.RegisterUser(registro("ana@ventas.test", "superuser"))

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs, "un rol desconocido debe reportarse como violación")
	assert.Equal(t, "rol inválido", verrs["role"])
}

func TestRegisterUser_AdminBloqueadoPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})

	_, err := uc.RegisterUser(registro("jefa@ventas.test", entity.RoleAdmin))

	assert.ErrorIs(t, err, domain.ErrForbidden, "el registro público no debe crear admins")
	assert.Empty(t, repo.byEmail, "no debe persistirse nada")
}

func TestRegisterUser_AdminPermitidoPorPolitica(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo(), auth.Policy{AllowAdminRegister: true})

	out, err := uc.RegisterUser(registro("jefa@ventas.test", entity.RoleAdmin))

	require.NoError(t, err, "con la política habilitada el admin sí se registra")
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestRegisterUser_LiderNoRequierePolitica(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo(), auth.Policy{})

	out, err := uc.RegisterUser(registro("lider@ventas.test", entity.RoleLider))

	require.NoError(t, err)
	assert.Equal(t, entity.RoleLider, out.Role)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})
	_, err := uc.RegisterUser(registro("ana@ventas.test", ""))
	require.NoError(t, err)

	_, err = uc.RegisterUser(registro("ana@ventas.test", ""))

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_NoGuardaPasswordEnPlano(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})

	_, err := uc.RegisterUser(registro("ana@ventas.test", ""))

	require.NoError(t, err)
	u := repo.byEmail["ana@ventas.test"]
	require.NotNil(t, u)
	assert.NotEqual(t, "clave-segura-123", u.PasswordHash, "el hash nunca es la clave en plano")
	assert.NotEmpty(t, u.PasswordHash)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})
	_, err := uc.RegisterUser(registro("ana@ventas.test", entity.RoleLider))
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@ventas.test", Password: "clave-segura-123"})

	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err, "el token emitido debe parsear con el mismo secreto")
	assert.Equal(t, out.User.ID, userID, "el token carga el id del usuario")
	assert.Equal(t, entity.RoleLider, role, "el token carga el rol del usuario")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})
	_, err := uc.RegisterUser(registro("ana@ventas.test", ""))
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@ventas.test", Password: "otra-clave"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocido(t *testing.T) {
	uc := buildAuthUseCase(newFakeUserRepo(), auth.Policy{})

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@ventas.test", Password: "clave-segura-123"})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := buildAuthUseCase(repo, auth.Policy{})
	_, err := uc.RegisterUser(registro("ana@ventas.test", ""))
	require.NoError(t, err)
	repo.byEmail["ana@ventas.test"].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@ventas.test", Password: "clave-segura-123"})

	assert.ErrorIs(t, err, domain.ErrForbidden, "un usuario suspendido no inicia sesión")
}
