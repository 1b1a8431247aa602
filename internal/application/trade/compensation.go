package trade

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// compensationTimeout bounds the rollback of an aborted transaction. The
// rollback runs on its own deadline: the request context may already be
// cancelled or expired by the time compensation starts.
const compensationTimeout = 30 * time.Second

// undoStep is a recorded inverse of one committed side effect
type undoStep struct {
	label string
	run   func(ctx context.Context) error
}

// compensationLog records the inverse of every side effect committed so far
// during a multi-step transaction. When a later step fails the log is run in
// reverse order, newest first, so dependent effects unwind before the
// effects they depend on.
type compensationLog struct {
	steps  []undoStep
	logger *zap.Logger
}

func newCompensationLog(logger *zap.Logger) *compensationLog {
	return &compensationLog{logger: logger}
}

// record appends the inverse of a side effect that has just been committed
func (c *compensationLog) record(label string, run func(ctx context.Context) error) {
	c.steps = append(c.steps, undoStep{label: label, run: run})
}

// compensate runs the recorded undo steps in reverse order. Each step is
// best effort: a failing undo is logged and the remaining steps still run,
// since skipping them would strand more state than the one that failed.
func (c *compensationLog) compensate(ctx context.Context, cause error) {
	if len(c.steps) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	c.logger.Warn("rolling back partially applied transaction",
		zap.Int("steps", len(c.steps)),
		zap.Error(cause),
	)

	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.run(ctx); err != nil {
			c.logger.Error("compensation step failed, manual reconciliation may be needed",
				zap.String("step", step.label),
				zap.Error(err),
			)
			continue
		}
		c.logger.Info("compensation step applied", zap.String("step", step.label))
	}
}
