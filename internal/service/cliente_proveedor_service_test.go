package service

import (
	"context"
	"strings"
	"testing"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubClienteProveedorRepo struct {
	registros map[uuid.UUID]*model.ClienteProveedor
}

func newStubClienteProveedorRepo() *stubClienteProveedorRepo {
	return &stubClienteProveedorRepo{registros: make(map[uuid.UUID]*model.ClienteProveedor)}
}

func (r *stubClienteProveedorRepo) Create(_ context.Context, cp *model.ClienteProveedor) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	r.registros[cp.ID] = cp
	return nil
}

func (r *stubClienteProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ClienteProveedor, error) {
	cp, ok := r.registros[id]
	if !ok {
		return &model.ClienteProveedor{}, gorm.ErrRecordNotFound
	}
	return cp, nil
}

func (r *stubClienteProveedorRepo) List(ctx context.Context, idEmpresa uuid.UUID, tipo string) ([]model.ClienteProveedor, error) {
	return r.Buscar(ctx, idEmpresa, tipo, "")
}

func (r *stubClienteProveedorRepo) Buscar(_ context.Context, idEmpresa uuid.UUID, tipo, buscador string) ([]model.ClienteProveedor, error) {
	var out []model.ClienteProveedor
	for _, cp := range r.registros {
		if cp.IDEmpresa != idEmpresa || !cp.Activo {
			continue
		}
		if tipo != "" && cp.Tipo != tipo {
			continue
		}
		if buscador != "" && !strings.Contains(strings.ToLower(cp.Nombre), strings.ToLower(buscador)) {
			continue
		}
		out = append(out, *cp)
	}
	return out, nil
}

func (r *stubClienteProveedorRepo) Update(_ context.Context, cp *model.ClienteProveedor) error {
	r.registros[cp.ID] = cp
	return nil
}

func (r *stubClienteProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	cp, ok := r.registros[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp.Activo = false
	return nil
}

var _ repository.ClienteProveedorRepository = (*stubClienteProveedorRepo)(nil)

func seedClienteProveedor(repo *stubClienteProveedorRepo, idEmpresa uuid.UUID, tipo, nombre string) *model.ClienteProveedor {
	cp := &model.ClienteProveedor{
		ID:        uuid.New(),
		IDEmpresa: idEmpresa,
		Tipo:      tipo,
		Nombre:    nombre,
		Activo:    true,
	}
	repo.registros[cp.ID] = cp
	return cp
}

func nombresDe(resp []dto.ClienteProveedorResponse) []string {
	out := make([]string, len(resp))
	for i, r := range resp {
		out[i] = r.Nombre
	}
	return out
}

func TestBuscar_BuscadorVacioEquivaleALista(t *testing.T) {
	repo := newStubClienteProveedorRepo()
	svc := NewClienteProveedorService(repo, &stubRegistroRepo{}, nil)

	idEmpresa := uuid.New()
	seedClienteProveedor(repo, idEmpresa, "cliente", "Maria Quispe")
	seedClienteProveedor(repo, idEmpresa, "proveedor", "Distribuidora Norte")

	lista, err := svc.Buscar(context.Background(), dto.BuscarFilter{IDEmpresa: idEmpresa.String()})
	require.NoError(t, err)

	busqueda, err := svc.Buscar(context.Background(), dto.BuscarFilter{IDEmpresa: idEmpresa.String(), Buscador: ""})
	require.NoError(t, err)

	assert.ElementsMatch(t, nombresDe(lista), nombresDe(busqueda))
	assert.Len(t, lista, 2)
}

func TestBuscar_FiltraPorTipoYTexto(t *testing.T) {
	repo := newStubClienteProveedorRepo()
	svc := NewClienteProveedorService(repo, &stubRegistroRepo{}, nil)

	idEmpresa := uuid.New()
	seedClienteProveedor(repo, idEmpresa, "cliente", "Maria Quispe")
	seedClienteProveedor(repo, idEmpresa, "cliente", "Mario Torres")
	seedClienteProveedor(repo, idEmpresa, "proveedor", "Maritima SAC")

	resp, err := svc.Buscar(context.Background(), dto.BuscarFilter{
		IDEmpresa: idEmpresa.String(),
		Tipo:      "cliente",
		Buscador:  "mari",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Maria Quispe", "Mario Torres"}, nombresDe(resp))
}

func TestBuscar_NoMezclaEmpresas(t *testing.T) {
	repo := newStubClienteProveedorRepo()
	svc := NewClienteProveedorService(repo, &stubRegistroRepo{}, nil)

	empresaA := uuid.New()
	empresaB := uuid.New()
	seedClienteProveedor(repo, empresaA, "cliente", "Cliente A")
	seedClienteProveedor(repo, empresaB, "cliente", "Cliente B")

	resp, err := svc.Buscar(context.Background(), dto.BuscarFilter{IDEmpresa: empresaA.String()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cliente A"}, nombresDe(resp))
}

func TestActualizarClienteProveedor_ParcialNoTocaOtrosCampos(t *testing.T) {
	repo := newStubClienteProveedorRepo()
	svc := NewClienteProveedorService(repo, &stubRegistroRepo{}, nil)

	idEmpresa := uuid.New()
	cp := seedClienteProveedor(repo, idEmpresa, "cliente", "Maria Quispe")
	cp.TipoDocumento = "dni"
	cp.NumeroDocumento = "45678901"

	telefono := "987654321"
	resp, err := svc.Actualizar(context.Background(), cp.ID, dto.ActualizarClienteProveedorRequest{Telefono: &telefono})
	require.NoError(t, err)
	require.NotNil(t, resp.Telefono)
	assert.Equal(t, "987654321", *resp.Telefono)
	assert.Equal(t, "Maria Quispe", resp.Nombre)
	assert.Equal(t, "45678901", resp.NumeroDocumento)
}

func TestDesactivarYRestaurarClienteProveedor(t *testing.T) {
	repo := newStubClienteProveedorRepo()
	registro := &stubRegistroRepo{}
	svc := NewClienteProveedorService(repo, registro, nil)

	cp := seedClienteProveedor(repo, uuid.New(), "proveedor", "Distribuidora Norte")

	resultado, err := svc.Desactivar(context.Background(), cp.ID, nil)
	require.NoError(t, err)
	assert.True(t, resultado.Exito)
	assert.False(t, repo.registros[cp.ID].Activo)
	assert.Contains(t, registro.auditorias, "clientes_proveedores:desactivar")

	require.NoError(t, svc.Restaurar(context.Background(), cp.ID))
	assert.Equal(t, []string{"clientes_proveedores:" + cp.ID.String()}, registro.restaurados)
}

func TestDesactivarClienteProveedor_Inexistente(t *testing.T) {
	svc := NewClienteProveedorService(newStubClienteProveedorRepo(), &stubRegistroRepo{}, nil)

	_, err := svc.Desactivar(context.Background(), uuid.New(), nil)
	require.Error(t, err)
	assert.Equal(t, "registro no encontrado", err.Error())
}
