package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-taxdesk/internal/employeesalary"
	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const employeeCreatedEventType = "employee_created"

// ConsumeEmployeeLifecycle seeds an empty salary structure for every new
// employee so payroll can be drafted before HR fills in the amounts.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	employeeSalaryService employeesalary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleEmployeeLifecycle(ctx, msg.Value, employeeSalaryService, log); err != nil {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// handleEmployeeLifecycle returns an error only when the message should be
// redelivered.
func handleEmployeeLifecycle(
	ctx context.Context,
	value []byte,
	employeeSalaryService employeesalary.Service,
	log *zap.Logger,
) error {
	var event events.EmployeeCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Error("decode employee_created event failed", zap.Error(err))
		return nil
	}
	if event.EventType != employeeCreatedEventType {
		return nil
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	_, err := employeeSalaryService.Create(ctx, event.CompanyID, employeesalary.CreateEmployeeSalaryRequest{
		EmployeeID:    event.EmployeeID,
		EffectiveDate: occurredAt.Format("2006-01-02"),
	})
	if err != nil {
		if errors.Is(err, employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists) {
			log.Warn("employee salary already exists for event, skipping",
				zap.String("request_id", event.RequestID),
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
			)
			return nil
		}
		if errors.Is(err, employeesalaryerrors.ErrEmployeeNotFound) {
			log.Warn("employee from event no longer exists, skipping",
				zap.String("employee_id", event.EmployeeID),
			)
			return nil
		}

		log.Error("create default employee salary failed",
			zap.String("request_id", event.RequestID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("company_id", event.CompanyID),
			zap.Error(err),
		)
		return err
	}

	log.Info("employee salary created from employee_created event",
		zap.String("request_id", event.RequestID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("company_id", event.CompanyID),
	)
	return nil
}
