package worker

// ticket_worker.go
// Processes ticket PDF jobs from QueueTickets: loads the completed sale and
// renders the thermal receipt. Retries with exponential backoff; jobs that
// exhaust their attempts land in the DLQ for manual inspection.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxTicketAttempts = 3

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID string `json:"venta_id"`
}

type TicketWorker struct {
	ventaRepo      repository.VentaRepository
	empresaRepo    repository.EmpresaRepository
	rdb            *redis.Client
	pdfStoragePath string
}

func NewTicketWorker(ventaRepo repository.VentaRepository, empresaRepo repository.EmpresaRepository, rdb *redis.Client, pdfStoragePath string) *TicketWorker {
	return &TicketWorker{
		ventaRepo:      ventaRepo,
		empresaRepo:    empresaRepo,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta_id")
		return
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return
	}

	nombreEmpresa := ""
	if empresa, err := w.empresaRepo.FindByID(ctx, venta.IDEmpresa); err == nil {
		nombreEmpresa = empresa.Nombre
	}

	genErr := withRetry(ctx, maxTicketAttempts, func(attempt int) error {
		path, err := infra.GenerateTicketPDF(venta, nombreEmpresa, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).
				Str("venta_id", payload.VentaID).
				Msg("ticket_worker: PDF attempt failed, retrying")
			return err
		}
		log.Info().Str("pdf", path).Str("venta_id", payload.VentaID).Msg("ticket_worker: PDF generated")
		return nil
	})
	if genErr != nil {
		SendToDLQ(ctx, w.rdb, QueueTickets, "ticket", raw, genErr.Error(), maxTicketAttempts)
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
