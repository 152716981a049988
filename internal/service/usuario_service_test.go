package service

import (
	"context"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/config"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
	modulos  map[uuid.UUID]*model.Modulo
	permisos map[uuid.UUID][]uuid.UUID
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{
		usuarios: make(map[uuid.UUID]*model.Usuario),
		modulos:  make(map[uuid.UUID]*model.Modulo),
		permisos: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return &model.Usuario{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return &model.Usuario{}, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, idEmpresa uuid.UUID) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.IDEmpresa == idEmpresa && u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) ListModulos(_ context.Context) ([]model.Modulo, error) {
	var out []model.Modulo
	for _, m := range r.modulos {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubUsuarioRepo) FindModulosByUsuario(_ context.Context, idUsuario uuid.UUID) ([]model.Modulo, error) {
	var out []model.Modulo
	for _, id := range r.permisos[idUsuario] {
		if m, ok := r.modulos[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ReplacePermisos(_ context.Context, idUsuario uuid.UUID, modulos []uuid.UUID) error {
	r.permisos[idUsuario] = append([]uuid.UUID(nil), modulos...)
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-prueba",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *stubUsuarioRepo, username, password string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{
		ID:           uuid.New(),
		IDEmpresa:    uuid.New(),
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          "cajero",
		Activo:       true,
	}
	repo.usuarios[u.ID] = u
	return u
}

func seedModulo(repo *stubUsuarioRepo, nombre string) *model.Modulo {
	m := &model.Modulo{ID: uuid.New(), Nombre: nombre, Ruta: "/" + nombre, Activo: true}
	repo.modulos[m.ID] = m
	return m
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	seedUsuario(t, repo, "cajero1", "clave-segura")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "cajero1", resp.User.Username)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	seedUsuario(t, repo, "cajero1", "clave-segura")

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "otra"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	u := seedUsuario(t, repo, "exempleado", "clave-segura")
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "exempleado", Password: "clave-segura"})
	require.Error(t, err)
	assert.Equal(t, "credenciales invalidas", err.Error())
}

func TestRefresh_TokenValido(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	seedUsuario(t, repo, "cajero1", "clave-segura")

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "clave-segura"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, login.User.ID, renovado.User.ID)
}

func TestRefresh_TokenBasura(t *testing.T) {
	svc := NewUsuarioService(newStubUsuarioRepo(), &stubRegistroRepo{}, testConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestActualizarPermisos_ReemplazoCompleto(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	u := seedUsuario(t, repo, "supervisor1", "clave-segura")
	ventas := seedModulo(repo, "ventas")
	inventario := seedModulo(repo, "inventario")
	caja := seedModulo(repo, "caja")

	// Arranca con ventas+inventario y pasa a solo caja.
	repo.permisos[u.ID] = []uuid.UUID{ventas.ID, inventario.ID}

	actuales, err := svc.ActualizarPermisos(context.Background(), u.ID, []string{caja.ID.String()})
	require.NoError(t, err)
	require.Len(t, actuales, 1)
	assert.Equal(t, "caja", actuales[0].Nombre)

	// The old set must be completely gone, not merged.
	assert.Equal(t, []uuid.UUID{caja.ID}, repo.permisos[u.ID])
}

func TestActualizarPermisos_ConjuntoVacio(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	u := seedUsuario(t, repo, "supervisor1", "clave-segura")
	ventas := seedModulo(repo, "ventas")
	repo.permisos[u.ID] = []uuid.UUID{ventas.ID}

	actuales, err := svc.ActualizarPermisos(context.Background(), u.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, actuales)
	assert.Empty(t, repo.permisos[u.ID])
}

func TestActualizarPermisos_ModuloInvalido(t *testing.T) {
	repo := newStubUsuarioRepo()
	svc := NewUsuarioService(repo, &stubRegistroRepo{}, testConfig())

	u := seedUsuario(t, repo, "supervisor1", "clave-segura")
	ventas := seedModulo(repo, "ventas")
	repo.permisos[u.ID] = []uuid.UUID{ventas.ID}

	_, err := svc.ActualizarPermisos(context.Background(), u.ID, []string{"no-un-uuid"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id de modulo invalido")

	// A rejected request must not touch the current set.
	assert.Equal(t, []uuid.UUID{ventas.ID}, repo.permisos[u.ID])
}

func TestActualizarPermisos_UsuarioInexistente(t *testing.T) {
	svc := NewUsuarioService(newStubUsuarioRepo(), &stubRegistroRepo{}, testConfig())

	_, err := svc.ActualizarPermisos(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, "usuario no encontrado", err.Error())
}

func TestDesactivarUsuario_RegistraAuditoria(t *testing.T) {
	repo := newStubUsuarioRepo()
	registro := &stubRegistroRepo{}
	svc := NewUsuarioService(repo, registro, testConfig())

	u := seedUsuario(t, repo, "cajero2", "clave-segura")
	actor := uuid.New()

	resultado, err := svc.Desactivar(context.Background(), u.ID, &actor)
	require.NoError(t, err)
	assert.True(t, resultado.Exito)
	assert.False(t, repo.usuarios[u.ID].Activo)
	assert.Contains(t, registro.auditorias, "usuarios:desactivar")
}
