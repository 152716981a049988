package service

import (
	"context"
	"errors"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SucursalService interface {
	Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error)
	Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.SucursalResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error)
	// Desactivar soft-deletes the branch. A branch with active cajas is a
	// business rejection (Exito=false), not an error.
	Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)
	Restaurar(ctx context.Context, id uuid.UUID) error
}

type sucursalService struct {
	repo         repository.SucursalRepository
	cajaRepo     repository.CajaRepository
	registroRepo repository.RegistroRepository
}

func NewSucursalService(repo repository.SucursalRepository, cajaRepo repository.CajaRepository, registroRepo repository.RegistroRepository) SucursalService {
	return &sucursalService{repo: repo, cajaRepo: cajaRepo, registroRepo: registroRepo}
}

func mapSucursal(s *model.Sucursal) *dto.SucursalResponse {
	return &dto.SucursalResponse{
		ID:        s.ID.String(),
		IDEmpresa: s.IDEmpresa.String(),
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Telefono:  s.Telefono,
		Activo:    s.Activo,
	}
}

func (s *sucursalService) Crear(ctx context.Context, req dto.CrearSucursalRequest) (*dto.SucursalResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	suc := &model.Sucursal{
		IDEmpresa: idEmpresa,
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, suc); err != nil {
		return nil, err
	}
	return mapSucursal(suc), nil
}

func (s *sucursalService) Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.SucursalResponse, error) {
	sucursales, err := s.repo.ListByEmpresa(ctx, idEmpresa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SucursalResponse, 0, len(sucursales))
	for i := range sucursales {
		resp = append(resp, *mapSucursal(&sucursales[i]))
	}
	return resp, nil
}

func (s *sucursalService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSucursalRequest) (*dto.SucursalResponse, error) {
	suc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sucursal no encontrada")
		}
		return nil, err
	}
	if req.Nombre != nil {
		suc.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		suc.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		suc.Telefono = req.Telefono
	}
	if err := s.repo.Update(ctx, suc); err != nil {
		return nil, err
	}
	return mapSucursal(suc), nil
}

func (s *sucursalService) Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("sucursal no encontrada")
		}
		return dto.ResultadoOperacion{}, err
	}

	cajas, err := s.cajaRepo.ListBySucursal(ctx, id)
	if err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if len(cajas) > 0 {
		return dto.ResultadoOperacion{
			Exito:   false,
			Mensaje: "La sucursal tiene cajas activas; desactívelas primero",
		}, nil
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	// Attribution is best-effort: a failed audit write never undoes the delete.
	if err := s.registroRepo.RegistrarAuditoria(ctx, "sucursales", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("sucursal", id.String()).Msg("auditoria de desactivacion fallida")
	}
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Sucursal desactivada"}, nil
}

func (s *sucursalService) Restaurar(ctx context.Context, id uuid.UUID) error {
	return s.registroRepo.Restaurar(ctx, "sucursales", id)
}
