package app

import (
	"database/sql"

	"github.com/AlfahrezaRico/backend/internal/attendance"
	"github.com/AlfahrezaRico/backend/internal/auth"
	"github.com/AlfahrezaRico/backend/internal/department"
	"github.com/AlfahrezaRico/backend/internal/employee"
	"github.com/AlfahrezaRico/backend/internal/events"
	"github.com/AlfahrezaRico/backend/internal/leave"
	"github.com/AlfahrezaRico/backend/internal/nik"
	"github.com/AlfahrezaRico/backend/internal/payroll"
	"github.com/AlfahrezaRico/backend/internal/rbac"
	"github.com/AlfahrezaRico/backend/internal/rbac/infra"
	"github.com/AlfahrezaRico/backend/internal/salary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules membangun repo -> service -> handler per modul dan
// mendaftarkan route masing-masing di bawah group API.
func registerModules(api *gin.RouterGroup, db *gorm.DB, sqlDB *sql.DB, rdb *redis.Client, logger *zap.Logger) error {
	enforcer, err := infra.NewEnforcer(envOr("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"))
	if err != nil {
		return err
	}

	rbacRepo := rbac.NewRepository(db)
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}
	rbac.RegisterRoutes(api, rbac.NewHandler(rbacRepo, rbacService), rbacService)

	outboxRepo := events.NewOutboxRepository(db)

	nikRepo := nik.NewRepository(db)
	nikService := nik.NewService(sqlDB, nikRepo, logger)
	nik.RegisterRoutes(api, nik.NewHandler(nikService), rbacService)

	departmentRepo := department.NewRepository(db)
	departmentService := department.NewService(sqlDB, departmentRepo, logger)
	department.RegisterRoutes(api, department.NewHandler(departmentService), rbacService)

	employeeRepo := employee.NewRepository(db)
	employeeService := employee.NewService(sqlDB, employeeRepo, nikService, outboxRepo, rdb, logger)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService), rbacService)

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, rbacService, employeeRepo)
	auth.RegisterRoutes(api, auth.NewHandler(authService))

	salaryRepo := salary.NewRepository(db)
	salaryService := salary.NewService(sqlDB, salaryRepo, logger)
	salary.RegisterRoutes(api, salary.NewHandler(salaryService), rbacService)

	payrollRepo := payroll.NewRepository(db)
	payrollService := payroll.NewService(sqlDB, payrollRepo, salaryRepo, outboxRepo, logger)
	payroll.RegisterRoutes(api, payroll.NewHandler(payrollService), rbacService)

	leaveRepo := leave.NewRepository(db)
	leaveService := leave.NewService(sqlDB, leaveRepo, logger)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService), rbacService)

	attendanceRepo := attendance.NewRepository(db)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, logger)
	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService), rbacService)

	return nil
}
