package worker

// reconcile_cron.go
// Background goroutine that periodically compares stored icon assets against
// the URLs referenced by payment method rows. The icon upload is two-phase
// and has no rollback, so a failed second phase leaves assets with no row
// pointing at them; this pass finds and reports those orphans.

import (
	"context"
	"path"
	"time"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/repository"

	"github.com/rs/zerolog/log"
)

const reconcileTickInterval = 10 * time.Minute

// ReconcileCronConfig holds the dependencies of the reconciliation pass.
type ReconcileCronConfig struct {
	MetodoPagoRepo repository.MetodoPagoRepository
	Store          infra.AssetStore
}

// StartReconcileCron launches the periodic orphan scan. Orphans are logged,
// never deleted automatically: an operator decides.
func StartReconcileCron(ctx context.Context, cfg ReconcileCronConfig) {
	go func() {
		ticker := time.NewTicker(reconcileTickInterval)
		defer ticker.Stop()

		log.Info().Msg("reconcile_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile_cron: shutting down")
				return
			case <-ticker.C:
				reconcileIconos(ctx, cfg)
			}
		}
	}()
}

func reconcileIconos(ctx context.Context, cfg ReconcileCronConfig) {
	stored, err := cfg.Store.Listar()
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: failed to list stored assets")
		return
	}
	if len(stored) == 0 {
		return
	}

	urls, err := cfg.MetodoPagoRepo.ListIconos(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reconcile_cron: failed to list referenced icons")
		return
	}

	referenced := make(map[string]bool, len(urls))
	for _, u := range urls {
		referenced[path.Base(u)] = true
	}

	orphans := 0
	for _, key := range stored {
		if !referenced[path.Base(key)] {
			orphans++
			log.Warn().Str("asset", key).Msg("reconcile_cron: orphaned asset — no row references it")
		}
	}
	if orphans > 0 {
		log.Info().Int("orphans", orphans).Int("stored", len(stored)).Msg("reconcile_cron: scan complete")
	}
}
