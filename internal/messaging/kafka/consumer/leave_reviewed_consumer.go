package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-school/internal/events"
	"go-school/internal/leave"
	"go-school/internal/processing"
	"go-school/internal/shared/apperror"
	"go-school/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ApplicantProcessor settles an applicant's approved applications.
type ApplicantProcessor interface {
	ProcessApplicant(ctx context.Context, applicantID string) (processing.BatchResult, error)
}

// ConsumeLeaveReviewed settles balances as approvals arrive. Messages that
// fail to process stay uncommitted; the poller picks the applications up.
func ConsumeLeaveReviewed(
	ctx context.Context,
	reader MessageReader,
	processor ApplicantProcessor,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_reviewed")
	log.Info("leave reviewed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave reviewed consumer stopped")
				return
			}
			log.Error("fetch leave reviewed message failed", zap.Error(err))
			continue
		}

		var event events.LeaveReviewedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.ApplicantID == "" {
			log.Error("decode leave reviewed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.Decision != leave.StatusApproved {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := ctx
		if rid := requestID(msg, event); rid != "" {
			msgCtx = contextutil.WithRequestID(ctx, rid)
			msgCtx = contextutil.WithLogger(msgCtx, log.With(zap.String("request_id", rid)))
		}

		result, err := processor.ProcessApplicant(msgCtx, event.ApplicantID)
		if err != nil {
			fields := []zap.Field{
				zap.String("leave_id", event.LeaveID),
				zap.String("applicant_id", event.ApplicantID),
				zap.Error(err),
			}
			if errors.Is(err, apperror.ErrTransactionConflict) {
				log.Warn("process applicant conflicted, leaving for poller", fields...)
			} else {
				log.Error("process applicant failed", fields...)
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave reviewed message failed", zap.Error(err))
			continue
		}

		log.Info("leave processed from leave_reviewed event",
			zap.String("leave_id", event.LeaveID),
			zap.String("applicant_id", event.ApplicantID),
			zap.Int("processed", result.Processed()),
		)
	}
}

func requestID(msg kafkago.Message, event events.LeaveReviewedEvent) string {
	for _, h := range msg.Headers {
		if h.Key == "request_id" {
			return string(h.Value)
		}
	}
	return event.RequestID
}
