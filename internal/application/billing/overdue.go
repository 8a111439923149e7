package billing

import (
	"context"
	"time"

	"github.com/agropet/agropet-api/internal/domain/repository"
	"github.com/agropet/agropet-api/pkg/logger"
)

// OverdueSweeper barrido periódico de morosidad: tenants ACTIVE cuyo
// vencimiento superó la ventana de gracia pasan a PAST_DUE.
//
// La facturación sigue siendo pull-based (los días restantes se calculan en
// cada lectura); este barrido solo materializa la transición de estado que
// antes quedaba como código muerto.
type OverdueSweeper struct {
	tenantRepo repository.TenantRepository
	graceDays  int
	interval   time.Duration
	log        *logger.Logger
	now        func() time.Time
}

// NewOverdueSweeper construye el barrido. interval <= 0 desactiva Run.
func NewOverdueSweeper(tenantRepo repository.TenantRepository, graceDays int, interval time.Duration, log *logger.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		tenantRepo: tenantRepo,
		graceDays:  graceDays,
		interval:   interval,
		log:        log,
		now:        time.Now,
	}
}

// SweepOnce ejecuta un barrido y devuelve cuántos tenants pasaron a PAST_DUE.
func (s *OverdueSweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.graceDays)
	return s.tenantRepo.MarkPastDue(ctx, cutoff)
}

// Run ejecuta el barrido en bucle hasta que el contexto se cancele.
// Pensado para correr en una goroutine desde main.
func (s *OverdueSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info().Msg("barrido de morosidad desactivado")
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().
		Int("grace_days", s.graceDays).
		Dur("interval", s.interval).
		Msg("barrido de morosidad iniciado")

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("barrido de morosidad detenido")
			return
		case <-ticker.C:
			n, err := s.SweepOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("barrido de morosidad")
				continue
			}
			if n > 0 {
				s.log.Warn().Int64("tenants", n).Msg("tenants marcados PAST_DUE")
			}
		}
	}
}
