package services

import (
	"context"
	"log"
	"time"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/config"
	"boutique-backend/internal/metrics"
	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/timeutil"
)

// SchedulerService runs the periodic housekeeping sweep: flagging
// long-unpaid purchases Overdue and surfacing paid purchases that still
// have not shipped.
type SchedulerService struct {
	Purchases *repositories.PurchaseRepository
	cfg       *config.Config
	stop      chan struct{}
}

func NewSchedulerService(purchases *repositories.PurchaseRepository, cfg *config.Config) *SchedulerService {
	return &SchedulerService{
		Purchases: purchases,
		cfg:       cfg,
		stop:      make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately, then one
// per configured interval until Stop.
func (s *SchedulerService) Start() {
	interval := time.Duration(s.cfg.Scheduler.IntervalHours) * time.Hour
	log.Printf("[Scheduler] Started, sweeping every %s", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.RunSweep(context.Background())
		for {
			select {
			case <-ticker.C:
				s.RunSweep(context.Background())
			case <-s.stop:
				log.Println("[Scheduler] Stopped")
				return
			}
		}
	}()
}

func (s *SchedulerService) Stop() {
	close(s.stop)
}

// RunSweep executes both checks once.
func (s *SchedulerService) RunSweep(ctx context.Context) {
	if n, err := s.MarkOverduePurchases(ctx); err != nil {
		log.Printf("[Scheduler] Overdue check failed: %v", err)
	} else if n > 0 {
		log.Printf("[Scheduler] Marked %d purchase(s) overdue", n)
	}

	if err := s.NotifyPendingDeliveries(ctx); err != nil {
		log.Printf("[Scheduler] Pending-delivery check failed: %v", err)
	}
}

// MarkOverduePurchases flags Pending/Partial purchases older than the
// configured threshold as Overdue.
func (s *SchedulerService) MarkOverduePurchases(ctx context.Context) (int, error) {
	cutoff := timeutil.Now().AddDate(0, 0, -s.cfg.Scheduler.OverdueAfterDays)

	candidates, err := s.Purchases.ListOverdueCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, p := range candidates {
		if err := s.Purchases.UpdatePaymentStatus(ctx, p.SystemID, p.ID, models.PaymentStatusOverdue); err != nil {
			log.Printf("[Scheduler] Could not mark purchase %d overdue: %v", p.ID, err)
			continue
		}
		metrics.PurchasesMarkedOverdue.Inc()
		marked++
	}

	if marked > 0 {
		cache.InvalidatePurchaseCaches(ctx)
	}
	return marked, nil
}

// NotifyPendingDeliveries logs paid purchases that still have not been
// delivered after the configured number of days.
func (s *SchedulerService) NotifyPendingDeliveries(ctx context.Context) error {
	cutoff := timeutil.Now().AddDate(0, 0, -s.cfg.Scheduler.PendingDeliveryDays)

	stale, err := s.Purchases.ListPaidUndelivered(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, p := range stale {
		log.Printf("[Scheduler] Purchase %d (client %d) paid %s ago but not delivered",
			p.ID, p.ClientID, timeutil.Now().Sub(p.PurchaseDate).Round(24*time.Hour))
	}
	return nil
}
