package temporal

import (
	"context"
	"errors"
	"fmt"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/pyamsoft/fridge/pkg/logger"
	"github.com/pyamsoft/fridge/services/butler/domain/models"
)

// placedSuffix keeps one-shot orders apart from the periodic workflow of the same tag.
const placedSuffix = "-now"

// Scheduler implements the butler scheduler port on a Temporal cluster.
type Scheduler struct {
	client    client.Client
	namespace string
	taskQueue string
	log       logger.Logger
}

func NewScheduler(c client.Client, namespace, taskQueue string, log logger.Logger) *Scheduler {
	return &Scheduler{client: c, namespace: namespace, taskQueue: taskQueue, log: log}
}

func (s *Scheduler) PlaceOrder(ctx context.Context, order models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return s.start(ctx, order.Tag()+placedSuffix, OrderInput{Order: order})
}

func (s *Scheduler) ScheduleOrder(ctx context.Context, order models.Order, every time.Duration) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return s.start(ctx, order.Tag(), OrderInput{Order: order, Delay: every, Every: every})
}

func (s *Scheduler) start(ctx context.Context, id string, in OrderInput) error {
	run, err := s.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                       id,
		TaskQueue:                s.taskQueue,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_TERMINATE_EXISTING,
	}, OrderWorkflowName, in)
	if err != nil {
		return fmt.Errorf("start butler workflow %s: %w", id, err)
	}
	s.log.InfoContext(ctx, "butler workflow started", "workflow_id", id, "run_id", run.GetRunID())
	return nil
}

// CancelOrder terminates the periodic and one-shot workflows of tag.
func (s *Scheduler) CancelOrder(ctx context.Context, tag string) error {
	for _, id := range []string{tag, tag + placedSuffix} {
		if err := s.terminate(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// CancelAll terminates every running butler workflow in the namespace.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	query := fmt.Sprintf("WorkflowType = '%s' AND ExecutionStatus = 'Running'", OrderWorkflowName)
	var token []byte
	for {
		resp, err := s.client.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     s.namespace,
			Query:         query,
			NextPageToken: token,
		})
		if err != nil {
			return fmt.Errorf("list butler workflows: %w", err)
		}
		for _, exec := range resp.GetExecutions() {
			if err := s.terminate(ctx, exec.GetExecution().GetWorkflowId()); err != nil {
				return err
			}
		}
		token = resp.GetNextPageToken()
		if len(token) == 0 {
			return nil
		}
	}
}

func (s *Scheduler) terminate(ctx context.Context, id string) error {
	err := s.client.TerminateWorkflow(ctx, id, "", "butler order cancelled")
	var notFound *serviceerror.NotFound
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("terminate butler workflow %s: %w", id, err)
	}
	return nil
}
