package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/rentroost/rentroost-api/handlers"
	"github.com/rentroost/rentroost-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/refresh", authHandler.Refresh)
	rg.POST("/auth/logout", authHandler.Logout)
}

// SetupAdminRoutes sets up maintenance routes gated by X-Admin-Secret.
func SetupAdminRoutes(rg *gin.RouterGroup, db *sql.DB) {
	adminHandler := &handlers.AdminHandler{DB: db}

	rg.POST("/admin/backfill-buildings", adminHandler.BackfillBuildings)
	rg.POST("/admin/backfill-buildings/:id", adminHandler.BackfillBuilding)
}

// SetupBuildingRoutes sets up protected building, unit, ledger and tenant
// document routes.
func SetupBuildingRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	buildingService := services.NewBuildingService(db)

	buildingHandler := &handlers.BuildingHandler{Buildings: buildingService, WS: ws}
	unitHandler := &handlers.UnitHandler{Buildings: buildingService, WS: ws}
	documentHandler := &handlers.DocumentHandler{Buildings: buildingService}

	// Building CRUD
	rg.GET("/buildings", buildingHandler.GetBuildings)
	rg.POST("/buildings", buildingHandler.CreateBuilding)
	rg.GET("/buildings/:id", buildingHandler.GetBuilding)
	rg.PUT("/buildings/:id", buildingHandler.UpdateBuilding)
	rg.DELETE("/buildings/:id", buildingHandler.DeleteBuilding)

	// Tenant lifecycle
	rg.PUT("/buildings/:id/units/:unit_id/tenant", unitHandler.UpsertTenant)
	rg.POST("/buildings/:id/units/:unit_id/tenant/move-out", unitHandler.MoveTenantToPrevious)

	// Rent ledger
	rg.POST("/buildings/:id/units/:unit_id/rent-payments", unitHandler.AddRentPayment)
	rg.PUT("/buildings/:id/units/:unit_id/rent-payments/:payment_id", unitHandler.EditRentPayment)

	// Electricity ledger
	rg.POST("/buildings/:id/units/:unit_id/electricity-records", unitHandler.AddElectricityRecord)
	rg.PUT("/buildings/:id/units/:unit_id/electricity-records/:record_id", unitHandler.EditElectricityRecord)

	// Tenant documents
	rg.POST("/buildings/:id/units/:unit_id/documents", documentHandler.UploadTenantDocument)
}

// SetupExpenseRoutes sets up protected expense routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	expenseHandler := &handlers.ExpenseHandler{Expenses: services.NewExpenseService(db), WS: ws}

	rg.GET("/expenses", expenseHandler.GetExpenses)
	rg.POST("/expenses", expenseHandler.CreateExpense)
	rg.DELETE("/expenses/:id", expenseHandler.DeleteExpense)
}

// SetupReminderRoutes sets up protected reminder routes.
func SetupReminderRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	reminderHandler := &handlers.ReminderHandler{Reminders: services.NewReminderService(db), WS: ws}

	rg.GET("/reminders", reminderHandler.GetReminders)
	rg.POST("/reminders", reminderHandler.CreateReminder)
	rg.POST("/reminders/:id/complete", reminderHandler.CompleteReminder)
	rg.DELETE("/reminders/:id", reminderHandler.DeleteReminder)
}

// SetupReportRoutes sets up protected reporting routes.
func SetupReportRoutes(rg *gin.RouterGroup, db *sql.DB) {
	reportHandler := &handlers.ReportHandler{
		Buildings: services.NewBuildingService(db),
		Expenses:  services.NewExpenseService(db),
	}

	rg.GET("/reports/totals", reportHandler.GetTotals)
	rg.GET("/reports/buildings", reportHandler.GetBuildingReports)
	rg.GET("/reports/unpaid-units", reportHandler.GetUnpaidUnits)
	rg.GET("/reports/previous-tenants", reportHandler.GetPreviousTenants)
}

// SetupUserRoutes sets up protected user routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)
	rg.DELETE("/user/account", userHandler.DeleteAccount)
}

// SetupPortalRoutes sets up the tenant portal: a public login route and a
// token-protected dashboard group.
func SetupPortalRoutes(public *gin.RouterGroup, protected *gin.RouterGroup, db *sql.DB) {
	portalHandler := &handlers.PortalHandler{Buildings: services.NewBuildingService(db)}

	public.POST("/portal/login", portalHandler.Login)
	protected.GET("/portal/dashboard", portalHandler.Dashboard)
}
