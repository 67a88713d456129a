package app

import (
	"database/sql"

	"go-taxdesk/internal/auth"
	"go-taxdesk/internal/client"
	"go-taxdesk/internal/company"
	"go-taxdesk/internal/config"
	"go-taxdesk/internal/employee"
	"go-taxdesk/internal/employeesalary"
	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/gstfiling"
	"go-taxdesk/internal/invoice"
	"go-taxdesk/internal/messaging/kafka"
	"go-taxdesk/internal/payroll"
	"go-taxdesk/internal/rbac"
	"go-taxdesk/internal/rbac/infra"
	"go-taxdesk/internal/shared/counter"
	"go-taxdesk/internal/taxcompliance"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newEnforcer(modelPath string) (*casbin.Enforcer, error) {
	if modelPath == "" {
		return infra.NewEnforcerFromText()
	}
	e, err := infra.NewEnforcer(modelPath)
	if err != nil {
		zap.L().Warn("rbac model file not usable, using built-in model",
			zap.String("path", modelPath), zap.Error(err))
		return infra.NewEnforcerFromText()
	}
	return e, nil
}

func payslipStorage(cfg config.Config) payroll.PayslipStorage {
	return payroll.PayslipStorage{
		Dir:           cfg.PayslipStorageDir,
		PublicBaseURL: cfg.PayslipPublicBaseURL,
	}
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	gstFilingRepo := gstfiling.NewRepository(gormDB)
	taxComplianceRepo := taxcompliance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := newEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger.Named("rbac.service"))

	// --- Engine ---
	resolver := engine.NewStatusResolver(engine.SystemClock)

	// --- Services ---
	authService := auth.NewService(db, authRepo, companyRepo, rbacService, logger)
	companyService := company.NewService(companyRepo, logger)
	clientService := client.NewService(db, clientRepo, rdb, logger)
	invoiceService := invoice.NewService(db, invoiceRepo, counterRepo, engine.SystemClock, logger)
	gstFilingService := gstfiling.NewService(db, gstFilingRepo, resolver, logger)
	taxComplianceService := taxcompliance.NewService(db, taxComplianceRepo, resolver, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	employeeSalaryService := employeesalary.NewService(db, employeeSalaryRepo, logger)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, employeeSalaryService, payslipStorage(cfg), logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService, logger)
	clientHandler := client.NewHandler(clientService, logger)
	invoiceHandler := invoice.NewHandler(invoiceService, rdb, logger)
	gstFilingHandler := gstfiling.NewHandler(gstFilingService, rdb)
	taxComplianceHandler := taxcompliance.NewHandler(taxComplianceService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		company.RegisterRoutes(api, companyHandler, rbacService)
		client.RegisterRoutes(api, clientHandler, rbacService)
		invoice.RegisterRoutes(api, invoiceHandler, rbacService, rdb)
		gstfiling.RegisterRoutes(api, gstFilingHandler, rbacService, rdb)
		taxcompliance.RegisterRoutes(api, taxComplianceHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
