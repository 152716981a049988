package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorBarcode(ctx context.Context, idEmpresa uuid.UUID, barcode string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)

	// ValidarEliminar runs the pre-delete check without mutating anything.
	ValidarEliminar(ctx context.Context, id uuid.UUID) (dto.ResultadoValidacion, error)

	// Eliminar is the guarded delete. With forzarDesactivacion it skips the
	// validation entirely and deactivates. Without it, a referenced product
	// comes back as a rejection (Exito=false) carrying the guard's payload;
	// an unreferenced one is deactivated. A DB failure during validation is
	// a returned error, never a silent pass.
	Eliminar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID, forzarDesactivacion bool) (dto.ResultadoEliminacion, error)

	// EliminarFisico removes the row permanently. It deliberately does not
	// run the guard; callers own that decision.
	EliminarFisico(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error)

	Restaurar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo         repository.ProductoRepository
	ventaRepo    repository.VentaRepository
	registroRepo repository.RegistroRepository
	rdb          *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, ventaRepo repository.VentaRepository, registroRepo repository.RegistroRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, ventaRepo: ventaRepo, registroRepo: registroRepo, rdb: rdb}
}

func cacheKeyProductos(idEmpresa string) string { return "productos:" + idEmpresa }

func mapProducto(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID.String(),
		IDEmpresa:    p.IDEmpresa.String(),
		CodigoBarras: p.CodigoBarras,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Categoria:    p.Categoria,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		StockActual:  p.StockActual,
		StockMinimo:  p.StockMinimo,
		UnidadMedida: p.UnidadMedida,
		Activo:       p.Activo,
	}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	p := &model.Producto{
		IDEmpresa:    idEmpresa,
		CodigoBarras: req.CodigoBarras,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Categoria:    req.Categoria,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		StockActual:  req.StockActual,
		StockMinimo:  req.StockMinimo,
		UnidadMedida: req.UnidadMedida,
		Activo:       true,
	}
	if p.UnidadMedida == "" {
		p.UnidadMedida = "unidad"
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyProductos(req.IDEmpresa))
	return mapProducto(p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("producto no encontrado")
		}
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) ObtenerPorBarcode(ctx context.Context, idEmpresa uuid.UUID, barcode string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByBarcode(ctx, idEmpresa, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("producto no encontrado")
		}
		return nil, err
	}
	return mapProducto(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	cacheable := filter.Buscador == "" && filter.Categoria == ""
	if cacheable {
		if cached, ok := cacheGet[[]dto.ProductoResponse](ctx, s.rdb, cacheKeyProductos(filter.IDEmpresa)); ok {
			return cached, nil
		}
	}

	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *mapProducto(&productos[i]))
	}
	if cacheable {
		cacheSet(ctx, s.rdb, cacheKeyProductos(filter.IDEmpresa), resp)
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("producto no encontrado")
		}
		return nil, err
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.PrecioCompra != nil {
		p.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.UnidadMedida != nil {
		p.UnidadMedida = *req.UnidadMedida
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyProductos(p.IDEmpresa.String()))
	return mapProducto(p), nil
}

func (s *productoService) ValidarEliminar(ctx context.Context, id uuid.UUID) (dto.ResultadoValidacion, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoValidacion{}, errors.New("producto no encontrado")
		}
		return dto.ResultadoValidacion{}, err
	}
	count, err := s.ventaRepo.CountItemsByProducto(ctx, id)
	if err != nil {
		return dto.ResultadoValidacion{}, err
	}
	if count > 0 {
		return dto.ResultadoValidacion{
			PuedeEliminar: false,
			Mensaje:       fmt.Sprintf("El producto está referenciado en %d venta(s); no puede eliminarse físicamente", count),
			Referencias:   []dto.ReferenciaBloqueo{{Tabla: "venta_items", Cantidad: count}},
		}, nil
	}
	return dto.ResultadoValidacion{PuedeEliminar: true, Mensaje: "El producto puede eliminarse"}, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID, forzarDesactivacion bool) (dto.ResultadoEliminacion, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoEliminacion{}, errors.New("producto no encontrado")
		}
		return dto.ResultadoEliminacion{}, err
	}

	if !forzarDesactivacion {
		validacion, err := s.ValidarEliminar(ctx, id)
		if err != nil {
			return dto.ResultadoEliminacion{}, err
		}
		if !validacion.PuedeEliminar {
			return dto.ResultadoEliminacion{
				Exito:      false,
				Mensaje:    validacion.Mensaje,
				Validacion: &validacion,
			}, nil
		}
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return dto.ResultadoEliminacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "productos", id, "desactivar", idUsuario); err != nil {
		log.Warn().Err(err).Str("producto", id.String()).Msg("auditoria de desactivacion fallida")
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyProductos(p.IDEmpresa.String()))
	return dto.ResultadoEliminacion{Exito: true, Mensaje: "Producto desactivado", Tipo: "desactivado"}, nil
}

func (s *productoService) EliminarFisico(ctx context.Context, id uuid.UUID, idUsuario *uuid.UUID) (dto.ResultadoOperacion, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultadoOperacion{}, errors.New("producto no encontrado")
		}
		return dto.ResultadoOperacion{}, err
	}
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return dto.ResultadoOperacion{}, err
	}
	if err := s.registroRepo.RegistrarAuditoria(ctx, "productos", id, "eliminar", idUsuario); err != nil {
		log.Warn().Err(err).Str("producto", id.String()).Msg("auditoria de eliminacion fallida")
	}
	cacheInvalidate(ctx, s.rdb, cacheKeyProductos(p.IDEmpresa.String()))
	return dto.ResultadoOperacion{Exito: true, Mensaje: "Producto eliminado permanentemente"}, nil
}

func (s *productoService) Restaurar(ctx context.Context, id uuid.UUID) error {
	if err := s.registroRepo.Restaurar(ctx, "productos", id); err != nil {
		return err
	}
	if p, err := s.repo.FindByID(ctx, id); err == nil {
		cacheInvalidate(ctx, s.rdb, cacheKeyProductos(p.IDEmpresa.String()))
	}
	return nil
}
