package service

import (
	"context"
	"errors"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmpresaService manages company configuration.
type EmpresaService interface {
	Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error)
}

type empresaService struct {
	repo repository.EmpresaRepository
}

func NewEmpresaService(repo repository.EmpresaRepository) EmpresaService {
	return &empresaService{repo: repo}
}

func mapEmpresa(e *model.Empresa) *dto.EmpresaResponse {
	return &dto.EmpresaResponse{
		ID:          e.ID.String(),
		Nombre:      e.Nombre,
		RUC:         e.RUC,
		Direccion:   e.Direccion,
		Telefono:    e.Telefono,
		Moneda:      e.Moneda,
		ImpuestoPct: e.ImpuestoPct,
		Logo:        e.Logo,
		Activo:      e.Activo,
	}
}

func (s *empresaService) Crear(ctx context.Context, req dto.CrearEmpresaRequest) (*dto.EmpresaResponse, error) {
	moneda := req.Moneda
	if moneda == "" {
		moneda = "PEN"
	}
	e := &model.Empresa{
		Nombre:      req.Nombre,
		RUC:         req.RUC,
		Direccion:   req.Direccion,
		Telefono:    req.Telefono,
		Moneda:      moneda,
		ImpuestoPct: req.ImpuestoPct,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpresa(e), nil
}

func (s *empresaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.EmpresaResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("empresa no encontrada")
		}
		return nil, err
	}
	return mapEmpresa(e), nil
}

func (s *empresaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpresaRequest) (*dto.EmpresaResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("empresa no encontrada")
		}
		return nil, err
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		e.Direccion = req.Direccion
	}
	if req.Telefono != nil {
		e.Telefono = req.Telefono
	}
	if req.Moneda != nil {
		e.Moneda = *req.Moneda
	}
	if req.ImpuestoPct != nil {
		e.ImpuestoPct = *req.ImpuestoPct
	}
	if req.Logo != nil {
		e.Logo = req.Logo
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpresa(e), nil
}
