package internal

import (
	"net/http"

	"cft/internal/controllers"
	"cft/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/donations", http.HandlerFunc(apiController.CreateDonation))
	routers.Get("/donations", http.HandlerFunc(apiController.ListDonations))
	routers.Put("/donations/{id}", http.HandlerFunc(apiController.UpdateDonation))
	routers.Delete("/donations/{id}", http.HandlerFunc(apiController.DeleteDonation))

	routers.Post("/expenses", http.HandlerFunc(apiController.CreateExpense))
	routers.Get("/expenses", http.HandlerFunc(apiController.ListExpenses))
	routers.Put("/expenses/{id}", http.HandlerFunc(apiController.UpdateExpense))
	routers.Delete("/expenses/{id}", http.HandlerFunc(apiController.DeleteExpense))

	routers.Get("/analytics", http.HandlerFunc(apiController.GetAnalytics))
	routers.Get("/reports", http.HandlerFunc(apiController.GetReport))
	routers.Get("/insights", http.HandlerFunc(apiController.GetInsights))

	routers.Get("/migrations", http.HandlerFunc(apiController.GetMigrations))
	routers.Post("/migrate", http.HandlerFunc(apiController.RunMigration))
	routers.Post("/migrate/rollback", http.HandlerFunc(apiController.RollbackMigration))

	return routers
}
