package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go-taxdesk/internal/config"
	"go-taxdesk/internal/employeesalary"
	"go-taxdesk/internal/events"
	"go-taxdesk/internal/messaging/kafka"
	"go-taxdesk/internal/messaging/kafka/consumer"
	"go-taxdesk/internal/payroll"
	"go-taxdesk/internal/shared/connection"

	"go.uber.org/zap"
)

const (
	employeeLifecycleGroupID = "taxdesk-employee-salary"
	payslipGroupID           = "taxdesk-payroll-payslip"
)

// RunConsumer runs the employee lifecycle and payslip consumers until
// SIGINT/SIGTERM, then waits for both loops to return.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.DBMaxRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return errMissingKafkaBroker
	}

	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	employeeSalaryService := employeesalary.NewService(sqlDB, employeeSalaryRepo, logger)

	payrollRepo := payroll.NewRepository(gormDB)
	payrollService := payroll.NewService(
		sqlDB,
		payrollRepo,
		kafka.NewOutboxRepository(sqlDB),
		employeeSalaryService,
		payslipStorage(cfg),
		logger,
	)

	lifecycleReader := connection.NewKafkaReader(cfg.KafkaBroker, events.EmployeeCreatedTopic, employeeLifecycleGroupID)
	defer lifecycleReader.Close()
	payslipReader := connection.NewKafkaReader(cfg.KafkaBroker, events.PayrollPayslipRequestedTopic, payslipGroupID)
	defer payslipReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, employeeSalaryService, logger)
	}()
	go func() {
		defer wg.Done()
		consumer.ConsumePayrollPayslipRequested(ctx, payslipReader, payrollService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	wg.Wait()

	return nil
}
