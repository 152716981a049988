package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMetodoPagoRepo struct {
	metodos       map[uuid.UUID]*model.MetodoPago
	updateIconErr error
}

func newStubMetodoPagoRepo() *stubMetodoPagoRepo {
	return &stubMetodoPagoRepo{metodos: make(map[uuid.UUID]*model.MetodoPago)}
}

func (r *stubMetodoPagoRepo) Create(_ context.Context, m *model.MetodoPago) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metodos[m.ID] = m
	return nil
}

func (r *stubMetodoPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	m, ok := r.metodos[id]
	if !ok {
		return &model.MetodoPago{}, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMetodoPagoRepo) ListByEmpresa(_ context.Context, idEmpresa uuid.UUID) ([]model.MetodoPago, error) {
	var out []model.MetodoPago
	for _, m := range r.metodos {
		if m.IDEmpresa == idEmpresa && m.Activo {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *stubMetodoPagoRepo) Update(_ context.Context, m *model.MetodoPago) error {
	r.metodos[m.ID] = m
	return nil
}

func (r *stubMetodoPagoRepo) UpdateIcono(_ context.Context, id uuid.UUID, url string) error {
	if r.updateIconErr != nil {
		return r.updateIconErr
	}
	m, ok := r.metodos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Icono = &url
	return nil
}

func (r *stubMetodoPagoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, ok := r.metodos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Activo = false
	return nil
}

func (r *stubMetodoPagoRepo) ListIconos(_ context.Context) ([]string, error) {
	var urls []string
	for _, m := range r.metodos {
		if m.Icono != nil {
			urls = append(urls, *m.Icono)
		}
	}
	return urls, nil
}

var _ repository.MetodoPagoRepository = (*stubMetodoPagoRepo)(nil)

// stubAssetStore keeps assets in memory and records every key written.
type stubAssetStore struct {
	assets     map[string][]byte
	guardarErr error
}

func newStubAssetStore() *stubAssetStore {
	return &stubAssetStore{assets: make(map[string][]byte)}
}

func (s *stubAssetStore) Guardar(key string, data []byte) (string, error) {
	if s.guardarErr != nil {
		return "", s.guardarErr
	}
	s.assets[key] = data
	return "http://localhost/assets/" + key, nil
}

func (s *stubAssetStore) Existe(key string) bool { _, ok := s.assets[key]; return ok }

func (s *stubAssetStore) Eliminar(key string) error {
	delete(s.assets, key)
	return nil
}

func (s *stubAssetStore) Listar() ([]string, error) {
	keys := make([]string, 0, len(s.assets))
	for k := range s.assets {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ infra.AssetStore = (*stubAssetStore)(nil)

func TestCrearMetodoPago_ConIcono(t *testing.T) {
	repo := newStubMetodoPagoRepo()
	store := newStubAssetStore()
	svc := NewMetodoPagoService(repo, &stubRegistroRepo{}, store)

	resp, err := svc.Crear(context.Background(), dto.CrearMetodoPagoRequest{
		IDEmpresa:   uuid.NewString(),
		Nombre:      "Yape",
		Icono:       []byte{0x89, 0x50, 0x4e, 0x47},
		IconoNombre: "yape.png",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Icono)
	assert.Contains(t, *resp.Icono, "metodo_pago_"+resp.ID+".png")
	assert.Len(t, store.assets, 1)
}

func TestCrearMetodoPago_FalloFase2DejaHuerfano(t *testing.T) {
	repo := newStubMetodoPagoRepo()
	repo.updateIconErr = errors.New("update rechazado")
	store := newStubAssetStore()
	svc := NewMetodoPagoService(repo, &stubRegistroRepo{}, store)

	resp, err := svc.Crear(context.Background(), dto.CrearMetodoPagoRequest{
		IDEmpresa:   uuid.NewString(),
		Nombre:      "Plin",
		Icono:       []byte{0x01},
		IconoNombre: "plin.png",
	})
	// The row survives without icon; the stored asset stays orphaned for the
	// reconciliation pass to report.
	require.NoError(t, err)
	assert.Nil(t, resp.Icono)
	assert.Len(t, store.assets, 1)

	id, parseErr := uuid.Parse(resp.ID)
	require.NoError(t, parseErr)
	assert.Nil(t, repo.metodos[id].Icono)
}

func TestCrearMetodoPago_FalloDeAlmacenNoVincula(t *testing.T) {
	repo := newStubMetodoPagoRepo()
	store := newStubAssetStore()
	store.guardarErr = errors.New("disco lleno")
	svc := NewMetodoPagoService(repo, &stubRegistroRepo{}, store)

	resp, err := svc.Crear(context.Background(), dto.CrearMetodoPagoRequest{
		IDEmpresa:   uuid.NewString(),
		Nombre:      "Tarjeta",
		Icono:       []byte{0x01},
		IconoNombre: "tarjeta.svg",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Icono)
	assert.Empty(t, store.assets)
}

func TestActualizarMetodoPago_ReemplazaIcono(t *testing.T) {
	repo := newStubMetodoPagoRepo()
	store := newStubAssetStore()
	svc := NewMetodoPagoService(repo, &stubRegistroRepo{}, store)

	m := &model.MetodoPago{ID: uuid.New(), IDEmpresa: uuid.New(), Nombre: "Efectivo", Activo: true}
	repo.metodos[m.ID] = m

	resp, err := svc.Actualizar(context.Background(), m.ID, dto.ActualizarMetodoPagoRequest{
		Icono:       []byte{0x02},
		IconoNombre: "efectivo.png",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Icono)
	assert.True(t, store.Existe("metodo_pago_"+m.ID.String()+".png"))
}

func TestDesactivarMetodoPago_Restaurar(t *testing.T) {
	repo := newStubMetodoPagoRepo()
	registro := &stubRegistroRepo{}
	svc := NewMetodoPagoService(repo, registro, newStubAssetStore())

	m := &model.MetodoPago{ID: uuid.New(), IDEmpresa: uuid.New(), Nombre: "Transferencia", Activo: true}
	repo.metodos[m.ID] = m

	resultado, err := svc.Desactivar(context.Background(), m.ID, nil)
	require.NoError(t, err)
	assert.True(t, resultado.Exito)
	assert.False(t, repo.metodos[m.ID].Activo)

	require.NoError(t, svc.Restaurar(context.Background(), m.ID))
	assert.Equal(t, []string{"metodos_pago:" + m.ID.String()}, registro.restaurados)
}
