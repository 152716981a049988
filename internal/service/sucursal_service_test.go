package service

import (
	"context"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSucursalRepo struct {
	sucursales map[uuid.UUID]*model.Sucursal
}

func newStubSucursalRepo() *stubSucursalRepo {
	return &stubSucursalRepo{sucursales: make(map[uuid.UUID]*model.Sucursal)}
}

func (r *stubSucursalRepo) Create(_ context.Context, s *model.Sucursal) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sucursales[s.ID] = s
	return nil
}

func (r *stubSucursalRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sucursal, error) {
	s, ok := r.sucursales[id]
	if !ok {
		return &model.Sucursal{}, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSucursalRepo) ListByEmpresa(_ context.Context, idEmpresa uuid.UUID) ([]model.Sucursal, error) {
	var out []model.Sucursal
	for _, s := range r.sucursales {
		if s.IDEmpresa == idEmpresa && s.Activo {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSucursalRepo) Update(_ context.Context, s *model.Sucursal) error {
	r.sucursales[s.ID] = s
	return nil
}

func (r *stubSucursalRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.sucursales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Activo = false
	return nil
}

var _ repository.SucursalRepository = (*stubSucursalRepo)(nil)

func seedSucursal(repo *stubSucursalRepo, nombre string) *model.Sucursal {
	s := &model.Sucursal{ID: uuid.New(), IDEmpresa: uuid.New(), Nombre: nombre, Activo: true}
	repo.sucursales[s.ID] = s
	return s
}

func TestDesactivarSucursal_RechazadaConCajasActivas(t *testing.T) {
	repo := newStubSucursalRepo()
	cajas := newStubCajaRepo()
	svc := NewSucursalService(repo, cajas, &stubRegistroRepo{})

	suc := seedSucursal(repo, "Sucursal Centro")
	cajas.cajas[uuid.New()] = &model.Caja{ID: uuid.New(), IDSucursal: suc.ID, Nombre: "Caja 1", Activo: true}

	resultado, err := svc.Desactivar(context.Background(), suc.ID, nil)
	require.NoError(t, err)
	assert.False(t, resultado.Exito)
	assert.Contains(t, resultado.Mensaje, "cajas activas")
	assert.True(t, repo.sucursales[suc.ID].Activo)
}

func TestDesactivarSucursal_CajasInactivasNoBloquean(t *testing.T) {
	repo := newStubSucursalRepo()
	cajas := newStubCajaRepo()
	registro := &stubRegistroRepo{}
	svc := NewSucursalService(repo, cajas, registro)

	suc := seedSucursal(repo, "Sucursal Norte")
	cajas.cajas[uuid.New()] = &model.Caja{ID: uuid.New(), IDSucursal: suc.ID, Nombre: "Caja vieja", Activo: false}

	resultado, err := svc.Desactivar(context.Background(), suc.ID, nil)
	require.NoError(t, err)
	assert.True(t, resultado.Exito)
	assert.False(t, repo.sucursales[suc.ID].Activo)
	assert.Contains(t, registro.auditorias, "sucursales:desactivar")
}

func TestRestaurarSucursal(t *testing.T) {
	repo := newStubSucursalRepo()
	registro := &stubRegistroRepo{}
	svc := NewSucursalService(repo, newStubCajaRepo(), registro)

	suc := seedSucursal(repo, "Sucursal Sur")
	suc.Activo = false

	require.NoError(t, svc.Restaurar(context.Background(), suc.ID))
	assert.Equal(t, []string{"sucursales:" + suc.ID.String()}, registro.restaurados)
}

func TestDesactivarSucursal_Inexistente(t *testing.T) {
	svc := NewSucursalService(newStubSucursalRepo(), newStubCajaRepo(), &stubRegistroRepo{})

	_, err := svc.Desactivar(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, "sucursal no encontrada", err.Error())
}
