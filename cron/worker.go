package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"fitpass/config"
	recordsRepo "fitpass/database/repository/records"
	"fitpass/monitoring"
	"fitpass/upstream"
	"fitpass/utils"
)

const TypeCompleteBooking = "reconcile:completeBooking"

// CompletionPayload identifies a paid booking whose completion call failed.
type CompletionPayload struct {
	BookingID string `json:"bookingId"`
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

// Enqueuer pushes completion retries onto the reconcile queue.
type Enqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReconcileQueueDB,
	}
}

// NewEnqueuer builds the queue producer.
func NewEnqueuer(logger *zap.Logger) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(queueRedisOpt()), logger: logger}
}

// EnqueueCompletion schedules a completion retry. The first attempt waits a
// little so a transient backend blip can clear.
func (e *Enqueuer) EnqueueCompletion(bookingID, orderID, paymentID string) error {
	payload, err := json.Marshal(CompletionPayload{BookingID: bookingID, OrderID: orderID, PaymentID: paymentID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeCompleteBooking, payload)
	_, err = e.client.Enqueue(task,
		asynq.ProcessIn(30*time.Second),
		asynq.MaxRetry(8),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		e.logger.Error("failed to enqueue completion retry",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
	return err
}

// InitReconcileWorker runs the completion-retry worker in the background.
// Retries use the server-to-server completion path keyed by order and payment
// id; a success closes the matching discrepancy records.
func InitReconcileWorker(client *upstream.Client, records recordsRepo.RecordsRepository) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCompleteBooking, handleCompletionTask(client, records, logger))

	go func() {
		logger.Info("reconcile worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reconcile worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reconcile worker gave up starting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(client *upstream.Client, records recordsRepo.RecordsRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid completion payload", zap.Error(err))
			return err
		}

		if _, err := client.CompleteBooking(ctx, "", p.OrderID, p.PaymentID); err != nil {
			if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.StatusCode == 409 {
				// Already completed, typically by the gateway webhook.
				logger.Info("booking already completed",
					zap.String("bookingId", p.BookingID))
			} else {
				logger.Warn("completion retry failed",
					zap.String("bookingId", p.BookingID),
					zap.String("orderId", p.OrderID),
					zap.Error(err))
				monitoring.UpstreamError("completeBooking")
				return err
			}
		}

		if err := records.ResolveDiscrepancy(ctx, p.BookingID); err != nil {
			logger.Warn("failed to resolve discrepancy records",
				zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}

		logger.Info("booking completion reconciled",
			zap.String("bookingId", p.BookingID),
			zap.String("orderId", p.OrderID))
		return nil
	}
}
