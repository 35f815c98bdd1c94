// Package adminapi implements the back-office HTTP API: operator login,
// CRUD over cars, customers and content blocks, booking review, dashboard
// aggregates, payment reminders, exports and the audit log.
package adminapi

// InitRouter registers every admin route on the web server. Call after
// webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerCarRoutes()
	registerCustomerRoutes()
	registerContentRoutes()
	registerBookingRoutes()
	registerDashboardRoutes()
	registerNotifyRoutes()
	registerExportRoutes()
	registerSystemRoutes()
	registerOprLogRoutes()
}
