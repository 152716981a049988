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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TicketNotifier enqueues the asynchronous ticket PDF job after a sale.
// Satisfied by worker.Dispatcher.
type TicketNotifier interface {
	EnqueueTicket(ctx context.Context, ventaID string) error
}

type VentaService interface {
	Registrar(ctx context.Context, idUsuario uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.VentaResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	empresaRepo  repository.EmpresaRepository
	notifier     TicketNotifier
	rdb          *redis.Client
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	empresaRepo repository.EmpresaRepository,
	notifier TicketNotifier,
	rdb *redis.Client,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		empresaRepo:  empresaRepo,
		notifier:     notifier,
		rdb:          rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func mapVenta(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.VentaItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.VentaItemResponse{
			IDProducto:     item.IDProducto.String(),
			Nombre:         nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return &dto.VentaResponse{
		ID:           v.ID.String(),
		NumeroTicket: v.NumeroTicket,
		Subtotal:     v.Subtotal,
		Impuesto:     v.Impuesto,
		Total:        v.Total,
		Estado:       v.Estado,
		Items:        items,
	}
}

func (s *ventaService) Registrar(ctx context.Context, idUsuario uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	idEmpresa, err := uuid.Parse(req.IDEmpresa)
	if err != nil {
		return nil, errors.New("id_empresa invalido")
	}
	idSucursal, err := uuid.Parse(req.IDSucursal)
	if err != nil {
		return nil, errors.New("id_sucursal invalido")
	}

	empresa, err := s.empresaRepo.FindByID(ctx, idEmpresa)
	if err != nil {
		return nil, errors.New("empresa no encontrada")
	}

	// Pre-flight: resolve products and totals outside the transaction.
	type resolvedItem struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}
	var resolved []resolvedItem
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.IDProducto)
		if err != nil {
			return nil, fmt.Errorf("id_producto invalido: %s", item.IDProducto)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("producto %s no encontrado", item.IDProducto)
		}
		if !p.Activo {
			return nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}
		if p.StockActual < item.Cantidad {
			return nil, fmt.Errorf("stock insuficiente para %s: disponible %d, solicitado %d", p.Nombre, p.StockActual, item.Cantidad)
		}
		lineSubtotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)
		resolved = append(resolved, resolvedItem{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     p.PrecioVenta,
			cantidad:   item.Cantidad,
			subtotal:   lineSubtotal,
		})
	}

	impuesto := subtotal.Mul(empresa.ImpuestoPct).Div(decimal.NewFromInt(100)).Round(2)
	total := subtotal.Add(impuesto)

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumeroTicket(ctx, tx)
		if err != nil {
			return err
		}

		venta = model.Venta{
			IDEmpresa:    idEmpresa,
			IDSucursal:   idSucursal,
			IDUsuario:    idUsuario,
			NumeroTicket: numero,
			Subtotal:     subtotal,
			Impuesto:     impuesto,
			Total:        total,
			Estado:       "completada",
		}
		if req.IDCaja != nil {
			if cajaID, err := uuid.Parse(*req.IDCaja); err == nil {
				venta.IDCaja = &cajaID
			}
		}
		if req.IDClienteProveedor != nil {
			if cid, err := uuid.Parse(*req.IDClienteProveedor); err == nil {
				venta.IDClienteProveedor = &cid
			}
		}
		if req.IDMetodoPago != nil {
			if mid, err := uuid.Parse(*req.IDMetodoPago); err == nil {
				venta.IDMetodoPago = &mid
			}
		}
		for _, r := range resolved {
			venta.Items = append(venta.Items, model.VentaItem{
				IDProducto:     r.productoID,
				Cantidad:       r.cantidad,
				PrecioUnitario: r.precio,
				Subtotal:       r.subtotal,
			})
		}

		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}
		for _, r := range resolved {
			if err := s.productoRepo.UpdateStockTx(tx, r.productoID, -r.cantidad); err != nil {
				return fmt.Errorf("error descontando stock de %s: %w", r.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	cacheInvalidate(ctx, s.rdb, cacheKeyProductos(req.IDEmpresa))

	// Ticket PDF is generated asynchronously, best-effort.
	if s.notifier != nil {
		_ = s.notifier.EnqueueTicket(ctx, venta.ID.String())
	}

	resp := mapVenta(&venta)
	for i, r := range resolved {
		resp.Items[i].Nombre = r.nombre
	}
	return resp, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("venta no encontrada")
		}
		return nil, err
	}
	return mapVenta(v), nil
}

func (s *ventaService) Listar(ctx context.Context, idEmpresa uuid.UUID) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListByEmpresa(ctx, idEmpresa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		resp = append(resp, *mapVenta(&ventas[i]))
	}
	return resp, nil
}
