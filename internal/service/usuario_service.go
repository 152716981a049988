package service

import (
	"context"
	"errors"
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/config"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UsuarioService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)

	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)
	Restaurar(ctx context.Context, id uuid.UUID) error

	ListarModulos(ctx context.Context) ([]dto.ModuloResponse, error)
	ObtenerPermisos(ctx context.Context, idUsuario uuid.UUID) ([]dto.ModuloResponse, error)
	// ActualizarPermisos replaces the user's module set with exactly the one
	// passed in. The new set is an explicit argument; nothing is read from
	// ambient state. The swap is atomic.
	ActualizarPermisos(ctx context.Context, idUsuario uuid.UUID, modulos []string) ([]dto.ModuloResponse, error)
}

type usuarioService struct {
	repo         repository.UsuarioRepository
	registroRepo repository.RegistroRepository
	cfg          *config.Config
}

func NewUsuarioService(repo repository.UsuarioRepository, registroRepo repository.RegistroRepository, cfg *config.Config) UsuarioService {
	return &usuarioService{repo: repo, registroRepo: registroRepo, cfg: cfg}
}

func mapUsuario(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID.String(),
		IDEmpresa: u.IDEmpresa.String(),
		Username:  u.Username,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Activo:    u.Activo,
	}
}

func mapModulos(modulos []model.Modulo) []dto.ModuloResponse {
	resp := make([]dto.ModuloResponse, len(modulos))
	for i, m := range modulos {
		resp[i] = dto.ModuloResponse{ID: m.ID.String(), Nombre: m.Nombre, Ruta: m.Ruta}
	}
	return resp
}

func (s *usuarioService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil || !user.Activo {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.buildLoginResponse(ctx, user)
}

func (s *usuarioService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.buildLoginResponse(ctx, user)
}

func (s *usuarioService) buildLoginResponse(ctx context.Context, user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	resp := mapUsuario(user)
	if modulos, err := s.repo.FindModulosByUsuario(ctx, user.ID); err == nil {
		resp.Modulos = mapModulos(modulos)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         *resp,
	}, nil
}

func (s *usuarioService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID.String(),
		"id_empresa": user.IDEmpresa.String(),
		"username":   user.Username,
		"rol":        user.Rol,
		"exp":        time.Now().Add(duration).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		IDEmpresa:    idEmpresa,
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return mapUsuario(user), nil
}

func (s *usuarioService) Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.UsuarioResponse, error) {
	users, err := s.repo.List(ctx, idEmpresa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = *mapUsuario(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("usuario no encontrado")
		}
		return nil, err
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return mapUsuario(user), nil
}

func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("usuario no encontrado")
		}
		return dto.ResultadoOperacion{}, err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "usuarios", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("usuario", id.String()).Msg("auditoria de desactivacion fallida")
	}
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Usuario desactivado"}, nil
}

func (s *usuarioService) Restaurar(ctx context.Context, id uuid.UUID) error {
	return s.registroRepo.Restaurar(ctx, "usuarios", id)
}

func (s *usuarioService) ListarModulos(ctx context.Context) ([]dto.ModuloResponse, error) {
	modulos, err := s.repo.ListModulos(ctx)
	if err != nil {
		return nil, err
	}
	return mapModulos(modulos), nil
}

func (s *usuarioService) ObtenerPermisos(ctx context.Context, idUsuario uuid.UUID) ([]dto.ModuloResponse, error) {
	if _, err := s.repo.FindByID(ctx, idUsuario); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("usuario no encontrado")
		}
		return nil, err
	}
	modulos, err := s.repo.FindModulosByUsuario(ctx, idUsuario)
	if err != nil {
		return nil, err
	}
	return mapModulos(modulos), nil
}

func (s *usuarioService) ActualizarPermisos(ctx context.Context, idUsuario uuid.UUID, modulos []string) ([]dto.ModuloResponse, error) {
	if _, err := s.repo.FindByID(ctx, idUsuario); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("usuario no encontrado")
		}
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(modulos))
	for _, m := range modulos {
		id, err := uuid.Parse(m)
		if err != nil {
			return nil, errors.New("id de modulo invalido: " + m)
		}
		ids = append(ids, id)
	}

	if err := s.repo.ReplacePermisos(ctx, idUsuario, ids); err != nil {
		return nil, err
	}
	actuales, err := s.repo.FindModulosByUsuario(ctx, idUsuario)
	if err != nil {
		return nil, err
	}
	return mapModulos(actuales), nil
}
