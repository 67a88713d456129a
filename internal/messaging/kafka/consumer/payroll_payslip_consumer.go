package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-taxdesk/internal/events"
	"go-taxdesk/internal/payroll"
	payrollerrors "go-taxdesk/internal/payroll/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
}

func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService PayslipGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll payslip message failed", zap.Error(err))
			continue
		}

		if err := handlePayslipRequested(ctx, msg.Value, payrollService, log); err != nil {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll payslip message failed", zap.Error(err))
		}
	}
}

// handlePayslipRequested returns an error only when the message should be
// redelivered. Payrolls that were deleted or moved out of an approved state
// are acknowledged and dropped.
func handlePayslipRequested(
	ctx context.Context,
	value []byte,
	payrollService PayslipGenerator,
	log *zap.Logger,
) error {
	var event events.PayrollPayslipRequestedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Error("decode payroll payslip event failed", zap.Error(err))
		return nil
	}

	resp, err := payrollService.GeneratePayslip(ctx, event.CompanyID, event.PayrollID)
	if err != nil {
		if errors.Is(err, payrollerrors.ErrPayrollNotFound) ||
			errors.Is(err, payrollerrors.ErrInvalidPayrollID) ||
			errors.Is(err, payrollerrors.ErrPayslipNotAvailable) {
			log.Warn("payslip request no longer applies, skipping",
				zap.String("request_id", event.RequestID),
				zap.String("payroll_id", event.PayrollID),
				zap.Error(err),
			)
			return nil
		}

		log.Error("generate payslip failed",
			zap.String("request_id", event.RequestID),
			zap.String("payroll_id", event.PayrollID),
			zap.String("company_id", event.CompanyID),
			zap.Error(err),
		)
		return err
	}

	url := ""
	if resp.PayslipURL != nil {
		url = *resp.PayslipURL
	}
	log.Info("payroll payslip generated",
		zap.String("request_id", event.RequestID),
		zap.String("payroll_id", event.PayrollID),
		zap.String("company_id", event.CompanyID),
		zap.String("url", url),
	)
	return nil
}
