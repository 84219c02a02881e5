// Package temporal runs butler orders as Temporal workflows. The workflow ID
// is the order tag, so starting a workflow for a tag replaces the running one.
package temporal

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// OrderWorkflowName is the registered workflow type.
const OrderWorkflowName = "ButlerOrderWorkflow"

// OrderInput drives one OrderWorkflow run.
type OrderInput struct {
	Order models.Order
	// Delay is slept before the order runs.
	Delay time.Duration
	// Every repeats the order by continuing as new; zero runs it once.
	Every time.Duration
}

// Executor runs one order.
type Executor interface {
	Execute(ctx context.Context, order models.Order) error
}

// Activities hosts the order activity.
type Activities struct {
	exec Executor
}

func NewActivities(exec Executor) *Activities {
	return &Activities{exec: exec}
}

// ExecuteOrder runs order against the household's current pantry.
func (a *Activities) ExecuteOrder(ctx context.Context, order models.Order) error {
	return a.exec.Execute(ctx, order)
}

// OrderWorkflow sleeps, runs the order activity, then continues as new for
// the next period when Every is set.
func OrderWorkflow(ctx workflow.Context, in OrderInput) error {
	if in.Delay > 0 {
		if err := workflow.Sleep(ctx, in.Delay); err != nil {
			return err
		}
	}

	actx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2,
			MaximumAttempts:    3,
		},
	})
	var a *Activities
	err := workflow.ExecuteActivity(actx, a.ExecuteOrder, in.Order).Get(actx, nil)
	if err != nil {
		workflow.GetLogger(ctx).Error("butler order activity failed", "tag", in.Order.Tag(), "error", err)
		if in.Every == 0 {
			return err
		}
	}

	if in.Every == 0 {
		return nil
	}
	next := in
	next.Delay = in.Every
	return workflow.NewContinueAsNewError(ctx, OrderWorkflow, next)
}

// Register adds the butler workflow and activities to w.
func Register(w worker.Registry, exec Executor) {
	w.RegisterWorkflowWithOptions(OrderWorkflow, workflow.RegisterOptions{Name: OrderWorkflowName})
	w.RegisterActivity(NewActivities(exec))
}
