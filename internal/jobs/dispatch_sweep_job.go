package jobs

import (
	"context"
	"log/slog"

	"parceldelivery/internal/core/application/usecases/commands"
	"parceldelivery/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// autoAssigner matches AutoAssignOrderCommandHandler.Handle. Narrowed for
// tests.
type autoAssigner interface {
	Handle(ctx context.Context, cmd commands.AutoAssignOrderCommand) (bool, error)
}

// DispatchSweepJob periodically retries courier assignment for confirmed
// orders. The primary assignment path is the delayed trigger armed when a
// payment confirms an order; this sweep is the convergence mechanism for
// orders whose trigger was lost (process restart) or declined because no
// courier qualified at the time.
type DispatchSweepJob struct {
	uowFactory commands.OrderUoWFactory
	autoAssign autoAssigner
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchSweepJob creates the sweep over confirmed orders.
func NewDispatchSweepJob(
	uowFactory commands.OrderUoWFactory,
	autoAssign autoAssigner,
	logger *slog.Logger,
) *DispatchSweepJob {
	return &DispatchSweepJob{
		uowFactory: uowFactory,
		autoAssign: autoAssign,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_sweep_job"),
	}
}

// Start schedules the sweep every 30 seconds.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch sweep job stopped")
}

// Sweep runs one pass: every confirmed order gets an assignment attempt.
// Running out of qualified couriers mid-pass is normal; remaining orders
// stay confirmed and the next pass picks them up.
func (j *DispatchSweepJob) Sweep(ctx context.Context) {
	orderIDs, err := j.confirmedOrderIDs(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch sweep failed to load confirmed orders", "error", err)
		return
	}

	for _, orderID := range orderIDs {
		cmd, cmdErr := commands.NewAutoAssignOrderCommand(orderID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep failed to build command",
				"orderId", orderID.String(), "error", cmdErr)
			continue
		}

		assigned, assignErr := j.autoAssign.Handle(ctx, cmd)
		if assignErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch sweep assignment failed",
				"orderId", orderID.String(), "error", assignErr)
			continue
		}
		if !assigned {
			// no courier qualified; stop early, the pool will not refill mid-pass
			return
		}
	}
}

func (j *DispatchSweepJob) confirmedOrderIDs(ctx context.Context) ([]kernel.UUID, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllInConfirmedStatus(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}
