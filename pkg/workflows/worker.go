package workflows

import (
	"fmt"

	"go.opentelemetry.io/otel"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
)

// NewWorker returns a Temporal worker polling taskQueue with OTel tracing on
// workflows and activities. Register workflows and activities, then call Run.
func (tc *TemporalClient) NewWorker(taskQueue string) (worker.Worker, error) {
	otelInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer("temporal-worker"),
	})
	if err != nil {
		return nil, fmt.Errorf("create temporal worker otel interceptor: %w", err)
	}

	w := worker.New(tc.Client, taskQueue, worker.Options{
		Interceptors: []interceptor.WorkerInterceptor{otelInterceptor},
	})
	tc.log.Info("temporal worker created", "task_queue", taskQueue)
	return w, nil
}
