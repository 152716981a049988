package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AlertNotifier enqueues asynchronous alert emails. Satisfied by
// worker.Dispatcher; tests plug in stubs.
type AlertNotifier interface {
	EnqueueEmail(ctx context.Context, to, subject, body string) error
}

type CajaService interface {
	Crear(ctx context.Context, req dto.CrearCajaRequest) (*dto.CajaResponse, error)
	Listar(ctx context.Context, idSucursal uuid.UUID) ([]dto.CajaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCajaRequest) (*dto.CajaResponse, error)
	// Desactivar rejects (Exito=false) while the register has an open session.
	Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)
	Restaurar(ctx context.Context, id uuid.UUID) error

	Abrir(ctx context.Context, idUsuario uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	Cerrar(ctx context.Context, idCaja uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error)
}

type cajaService struct {
	repo         repository.CajaRepository
	registroRepo repository.RegistroRepository
	notifier     AlertNotifier
	alertEmail   string
}

func NewCajaService(repo repository.CajaRepository, registroRepo repository.RegistroRepository, notifier AlertNotifier, alertEmail string) CajaService {
	return &cajaService{repo: repo, registroRepo: registroRepo, notifier: notifier, alertEmail: alertEmail}
}

func mapCaja(c *model.Caja) *dto.CajaResponse {
	return &dto.CajaResponse{
		ID:         c.ID.String(),
		IDSucursal: c.IDSucursal.String(),
		Nombre:     c.Nombre,
		Activo:     c.Activo,
	}
}

func mapSesion(s *model.SesionCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		ID:            s.ID.String(),
		IDCaja:        s.IDCaja.String(),
		IDUsuario:     s.IDUsuario.String(),
		MontoApertura: s.MontoApertura,
		MontoCierre:   s.MontoCierre,
		MontoEsperado: s.MontoEsperado,
		Estado:        s.Estado,
	}
	if s.MontoCierre != nil && s.MontoEsperado != nil {
		d := s.MontoCierre.Sub(*s.MontoEsperado)
		resp.Discrepancia = &d
	}
	return resp
}

func (s *cajaService) Crear(ctx context.Context, req dto.CrearCajaRequest) (*dto.CajaResponse, error) {
	idSucursal, err := uuid.Parse(req.IDSucursal)
	if err != nil {
		return nil, errors.New("id_sucursal invalido")
	}
	c := &model.Caja{IDSucursal: idSucursal, Nombre: req.Nombre, Activo: true}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return mapCaja(c), nil
}

func (s *cajaService) Listar(ctx context.Context, idSucursal uuid.UUID) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.ListBySucursal(ctx, idSucursal)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		resp = append(resp, *mapCaja(&cajas[i]))
	}
	return resp, nil
}

func (s *cajaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCajaRequest) (*dto.CajaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("caja no encontrada")
		}
		return nil, err
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCaja(c), nil
}

func (s *cajaService) Desactivar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("caja no encontrada")
		}
		return dto.ResultadoOperacion{}, err
	}

	if sesion, err := s.repo.FindSesionAbierta(ctx, id); err == nil && sesion != nil {
		return dto.ResultadoOperacion{
			Exito:   false,
			Mensaje: "La caja tiene una sesión abierta; ciérrela primero",
		}, nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ResultadoOperacion{}, err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "cajas", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("caja", id.String()).Msg("auditoria de desactivacion fallida")
	}
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Caja desactivada"}, nil
}

func (s *cajaService) Restaurar(ctx context.Context, id uuid.UUID) error {
	return s.registroRepo.Restaurar(ctx, "cajas", id)
}

func (s *cajaService) Abrir(ctx context.Context, idUsuario uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	idCaja, err := uuid.Parse(req.IDCaja)
	if err != nil {
		return nil, errors.New("id_caja invalido")
	}
	caja, err := s.repo.FindByID(ctx, idCaja)
	if err != nil || !caja.Activo {
		return nil, errors.New("caja no encontrada o inactiva")
	}
	if _, err := s.repo.FindSesionAbierta(ctx, idCaja); err == nil {
		return nil, errors.New("la caja ya tiene una sesión abierta")
	}

	sesion := &model.SesionCaja{
		IDCaja:        idCaja,
		IDUsuario:     idUsuario,
		MontoApertura: req.MontoApertura,
		Estado:        "abierta",
		FechaApertura: time.Now(),
	}
	if err := s.repo.CreateSesion(ctx, sesion); err != nil {
		return nil, err
	}
	return mapSesion(sesion), nil
}

func (s *cajaService) Cerrar(ctx context.Context, idCaja uuid.UUID, req dto.CerrarCajaRequest) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbierta(ctx, idCaja)
	if err != nil {
		return nil, errors.New("la caja no tiene una sesión abierta")
	}
	caja, err := s.repo.FindByID(ctx, idCaja)
	if err != nil {
		return nil, err
	}

	ventas, err := s.repo.SumVentasCaja(ctx, idCaja, sesion.FechaApertura)
	if err != nil {
		return nil, err
	}
	esperado := sesion.MontoApertura.Add(ventas)
	ahora := time.Now()

	sesion.MontoCierre = &req.MontoCierre
	sesion.MontoEsperado = &esperado
	sesion.Estado = "cerrada"
	sesion.FechaCierre = &ahora
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	// Discrepancy alert is fire-and-forget: the cierre already happened.
	if diff := req.MontoCierre.Sub(esperado); !diff.IsZero() && s.notifier != nil && s.alertEmail != "" {
		body := fmt.Sprintf(
			"Caja %s cerrada con discrepancia.\nEsperado: %s\nContado: %s\nDiferencia: %s",
			caja.Nombre, esperado.StringFixed(2), req.MontoCierre.StringFixed(2), diff.StringFixed(2),
		)
		if err := s.notifier.EnqueueEmail(ctx, s.alertEmail, "Discrepancia en cierre de caja", body); err != nil {
			log.Warn().Err(err).Str("caja", idCaja.String()).Msg("no se pudo encolar alerta de discrepancia")
		}
	}

	return mapSesion(sesion), nil
}
