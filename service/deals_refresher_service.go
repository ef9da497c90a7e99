package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DealsRefresherService periodically reloads the deals sheet.
type DealsRefresherService struct {
	dealService *DealService
	logger      *zap.Logger

	stop chan struct{}
	done sync.WaitGroup
	once sync.Once
}

// NewDealsRefresherService constructs a new refresher with dependencies.
func NewDealsRefresherService(dealService *DealService, logger *zap.Logger) *DealsRefresherService {
	return &DealsRefresherService{
		dealService: dealService,
		logger:      logger.Named("DealsRefresherService"),
		stop:        make(chan struct{}),
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (dr *DealsRefresherService) StartPeriodicJob(interval time.Duration) {
	dr.done.Add(1)
	go dr.startPeriodicJob(interval)
}

// Stop ends the background loop and waits for it to exit.
func (dr *DealsRefresherService) Stop() {
	dr.once.Do(func() { close(dr.stop) })
	dr.done.Wait()
}

func (dr *DealsRefresherService) startPeriodicJob(interval time.Duration) {
	defer dr.done.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-dr.stop:
			return
		case <-ticker.C:
			dr.logger.Info("Running periodic deals refresher job")
			if err := dr.RefreshDeals(context.Background()); err != nil {
				dr.logger.Warn("RefreshDeals returned error", zap.Error(err))
			}
		}
	}
}

// RefreshDeals reloads the sheet once.
func (dr *DealsRefresherService) RefreshDeals(ctx context.Context) error {
	return dr.dealService.Reload(ctx)
}
