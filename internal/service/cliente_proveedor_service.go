package service

import (
	"context"
	"errors"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ClienteProveedorService interface {
	Crear(ctx context.Context, req dto.CrearClienteProveedorRequest) (*dto.ClienteProveedorResponse, error)
	// Buscar covers both the plain list (empty buscador) and the search.
	Buscar(ctx context.Context, filter dto.BuscarFilter) ([]dto.ClienteProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteProveedorRequest) (*dto.ClienteProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)
	Restaurar(ctx context.Context, id uuid.UUID) error
}

type clienteProveedorService struct {
	repo         repository.ClienteProveedorRepository
	registroRepo repository.RegistroRepository
	rdb          *redis.Client
}

func NewClienteProveedorService(repo repository.ClienteProveedorRepository, registroRepo repository.RegistroRepository, rdb *redis.Client) ClienteProveedorService {
	return &clienteProveedorService{repo: repo, registroRepo: registroRepo, rdb: rdb}
}

func cacheKeyClientes(idEmpresa string) string { return "clientes_proveedores:" + idEmpresa }

func mapClienteProveedor(cp *model.ClienteProveedor) *dto.ClienteProveedorResponse {
	return &dto.ClienteProveedorResponse{
		ID:              cp.ID.String(),
		IDEmpresa:       cp.IDEmpresa.String(),
		Tipo:            cp.Tipo,
		Nombre:          cp.Nombre,
		TipoDocumento:   cp.TipoDocumento,
		NumeroDocumento: cp.NumeroDocumento,
		Telefono:        cp.Telefono,
		Email:           cp.Email,
		Direccion:       cp.Direccion,
		Activo:          cp.Activo,
	}
}

func (s *clienteProveedorService) Crear(ctx context.Context, req dto.CrearClienteProveedorRequest) (*dto.ClienteProveedorResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	cp := &model.ClienteProveedor{
		IDEmpresa:       idEmpresa,
		Tipo:            req.Tipo,
		Nombre:          req.Nombre,
		TipoDocumento:   req.TipoDocumento,
		NumeroDocumento: req.NumeroDocumento,
		Telefono:        req.Telefono,
		Email:           req.Email,
		Direccion:       req.Direccion,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, cp); err != nil {
		return nil, err
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyClientes(req.IDEmpresa))
	return mapClienteProveedor(cp), nil
}

func (s *clienteProveedorService) Buscar(ctx context.Context, filter dto.BuscarFilter) ([]dto.ClienteProveedorResponse, error) {
	idEmpresa, err := uuid.Parse(filter.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}

	// Only the unfiltered list is cached; filtered searches always hit the DB.
	cacheable := filter.Tipo == "" && filter.Buscador == ""
	if cacheable {
		if cached, ok := cacheGet[[]dto.ClienteProveedorResponse](ctx, s.rdb, cacheKeyClientes(filter.IDEmpresa)); ok {
			return cached, nil
		}
	}

	registros, err := s.repo.Buscar(ctx, idEmpresa, filter.Tipo, filter.Buscador)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteProveedorResponse, 0, len(registros))
	for i := range registros {
		resp = append(resp, *mapClienteProveedor(&registros[i]))
	}
	if cacheable {
		cacheSet(ctx, s.rdb, cacheKeyClientes(filter.IDEmpresa), resp)
	}
	return resp, nil
}

func (s *clienteProveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteProveedorRequest) (*dto.ClienteProveedorResponse, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("registro no encontrado")
		}
		return nil, err
	}
	if req.Nombre != nil {
		cp.Nombre = *req.Nombre
	}
	if req.TipoDocumento != nil {
		cp.TipoDocumento = *req.TipoDocumento
	}
	if req.NumeroDocumento != nil {
		cp.NumeroDocumento = *req.NumeroDocumento
	}
	if req.Telefono != nil {
		cp.Telefono = req.Telefono
	}
	if req.Email != nil {
		cp.Email = req.Email
	}
	if req.Direccion != nil {
		cp.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, cp); err != nil {
		return nil, err
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyClientes(cp.IDEmpresa.String()))
	return mapClienteProveedor(cp), nil
}

func (s *clienteProveedorService) Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	cp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("registro no encontrado")
		}
		return dto.ResultadoOperacion{}, err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "clientes_proveedores", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("registro", id.String()).Msg("auditoria de desactivacion fallida")
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyClientes(cp.IDEmpresa.String()))
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Registro desactivado"}, nil
}

func (s *clienteProveedorService) Restaurar(ctx context.Context, id uuid.UUID) error {
	if err := s.registroRepo.Restaurar(ctx, "clientes_proveedores", id); err != nil {
		return err
	}
	if cp, err := s.repo.FindByID(ctx, id); err == nil {
		cacheInvalidate(ctx, s.rdb, cacheKeyClientes(cp.IDEmpresa.String()))
	}
	return nil
}
