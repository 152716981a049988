package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type MetodoPagoService interface {
	// Crear writes the row first and attaches the icon in a second update.
	// The two phases are NOT atomic: if the second update fails the stored
	// asset stays orphaned until the reconciliation pass reports it.
	Crear(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.MetodoPagoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMetodoPagoRequest) (*dto.MetodoPagoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)
	Restaurar(ctx context.Context, id uuid.UUID) error
}

type metodoPagoService struct {
	repo         repository.MetodoPagoRepository
	registroRepo repository.RegistroRepository
	store        infra.AssetStore
}

func NewMetodoPagoService(repo repository.MetodoPagoRepository, registroRepo repository.RegistroRepository, store infra.AssetStore) MetodoPagoService {
	return &metodoPagoService{repo: repo, registroRepo: registroRepo, store: store}
}

func mapMetodoPago(m *model.MetodoPago) *dto.MetodoPagoResponse {
	return &dto.MetodoPagoResponse{
		ID:        m.ID.String(),
		IDEmpresa: m.IDEmpresa.String(),
		Nombre:    m.Nombre,
		Icono:     m.Icono,
		Activo:    m.Activo,
	}
}

// iconoKey derives the storage key from the entity id so the asset is
// addressable without a DB lookup.
func iconoKey(id uuid.UUID, nombreArchivo string) string {
	ext := filepath.Ext(nombreArchivo)
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("metodo_pago_%s%s", id, ext)
}

func (s *metodoPagoService) Crear(ctx context.Context, req dto.CrearMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	m := &model.MetodoPago{IDEmpresa: idEmpresa, Nombre: req.Nombre, Activo: true}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if len(req.Icono) > 0 {
		if err := s.adjuntarIcono(ctx, m, req.Icono, req.IconoNombre); err != nil {
			// The row already exists; surface the icon failure but keep the
			// record usable without icon.
			log.Error().Err(err).Str("metodo_pago", m.ID.String()).Msg("no se pudo adjuntar el icono")
			return mapMetodoPago(m), nil
		}
	}
	return mapMetodoPago(m), nil
}

// adjuntarIcono runs the upload-then-link sequence. Phase 1 stores the asset;
// phase 2 points the row at its public URL. A phase-2 failure leaves the
// asset orphaned in storage.
func (s *metodoPagoService) adjuntarIcono(ctx context.Context, m *model.MetodoPago, data []byte, nombreArchivo string) error {
	url, err := s.store.Guardar(iconoKey(m.ID, nombreArchivo), data)
	if err != nil {
		return fmt.Errorf("guardar icono: %w", err)
	}
	if err := s.repo.UpdateIcono(ctx, m.ID, url); err != nil {
		return fmt.Errorf("vincular icono: %w", err)
	}
	m.Icono = &url
	return nil
}

func (s *metodoPagoService) Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.MetodoPagoResponse, error) {
	metodos, err := s.repo.ListByEmpresa(ctx, idEmpresa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MetodoPagoResponse, 0, len(metodos))
	for i := range metodos {
		resp = append(resp, *mapMetodoPago(&metodos[i]))
	}
	return resp, nil
}

func (s *metodoPagoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarMetodoPagoRequest) (*dto.MetodoPagoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("método de pago no encontrado")
		}
		return nil, err
	}
	if req.Nombre != nil {
		m.Nombre = *req.Nombre
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	if len(req.Icono) > 0 {
		if err := s.adjuntarIcono(ctx, m, req.Icono, req.IconoNombre); err != nil {
			log.Error().Err(err).Str("metodo_pago", m.ID.String()).Msg("no se pudo adjuntar el icono")
		}
	}
	return mapMetodoPago(m), nil
}

func (s *metodoPagoService) Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("método de pago no encontrado")
		}
		return dto.ResultadoOperacion{}, err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "metodos_pago", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("metodo_pago", id.String()).Msg("auditoria de desactivacion fallida")
	}
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Método de pago desactivado"}, nil
}

func (s *metodoPagoService) Restaurar(ctx context.Context, id uuid.UUID) error {
	return s.registroRepo.Restaurar(ctx, "metodos_pago", id)
}
