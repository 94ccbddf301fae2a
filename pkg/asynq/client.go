package asynq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/benedict-erwin/weather-insight/internal/constants"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// ErrNilPayload is returned when Dispatch is called without a payload
var ErrNilPayload = errors.New("payload cannot be nil")

// Client enqueues tasks and inspects queue state
type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	maxRetry  int
}

// NewClient creates a client; maxRetry <= 0 keeps the asynq default
func NewClient(opt asynq.RedisConnOpt, maxRetry int) *Client {
	return &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		maxRetry:  maxRetry,
	}
}

// Dispatch enqueues payload. A duplicate task ID is not an error.
func (c *Client) Dispatch(ctx context.Context, payload *Payload) error {
	if payload == nil {
		return ErrNilPayload
	}

	log := logger.WithScope("asynq.Dispatch")

	data, err := json.Marshal(payload.Data)
	if err != nil {
		log.Error().Err(err).Str("taskType", payload.TaskType).Msg("Failed to marshal task payload")
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	queue := payload.Queue
	if queue == "" {
		queue = constants.QueueDefault
	}
	if !constants.IsValidQueue(queue) {
		return fmt.Errorf("invalid queue %q, valid queues: %v", queue, constants.GetAllQueues())
	}

	opts := []asynq.Option{asynq.Queue(queue)}
	if c.maxRetry > 0 {
		opts = append(opts, asynq.MaxRetry(c.maxRetry))
	}
	if payload.TaskId != "" {
		opts = append(opts, asynq.TaskID(payload.TaskId), asynq.Unique(5*time.Minute))
	}

	info, err := c.client.EnqueueContext(ctx, asynq.NewTask(payload.TaskType, data), opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Warn().
				Str("taskId", payload.TaskId).
				Str("taskType", payload.TaskType).
				Msg("Duplicate task ignored - already in queue")
			return nil
		}

		log.Error().
			Err(err).
			Str("taskId", payload.TaskId).
			Str("taskType", payload.TaskType).
			Msg("Failed to enqueue task")
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().
		Str("taskId", info.ID).
		Str("taskType", payload.TaskType).
		Str("queue", queue).
		Msg("Task enqueued successfully")

	return nil
}

// Ping checks the broker by listing queues
func (c *Client) Ping() error {
	if _, err := c.inspector.Queues(); err != nil {
		return fmt.Errorf("asynq broker unreachable: %w", err)
	}
	return nil
}

// Close closes the client and inspector connections
func (c *Client) Close() error {
	return errors.Join(c.client.Close(), c.inspector.Close())
}

// QueueStats returns the state of every known queue that exists in Redis
func (c *Client) QueueStats() ([]*asynq.QueueInfo, error) {
	stats := make([]*asynq.QueueInfo, 0, len(constants.GetAllQueues()))
	for _, q := range constants.GetAllQueues() {
		info, err := c.inspector.GetQueueInfo(q)
		if err != nil {
			if errors.Is(err, asynq.ErrQueueNotFound) {
				continue
			}
			return nil, fmt.Errorf("queue %s: %w", q, err)
		}
		stats = append(stats, info)
	}
	return stats, nil
}
