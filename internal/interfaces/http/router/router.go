package router

import (
	"github.com/gin-gonic/gin"

	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/interfaces/http/handler"
	"github.com/storekit/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers for route registration
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Tax           *handler.TaxHandler
	Customer      *handler.CustomerHandler
	Supplier      *handler.SupplierHandler
	Invoice       *handler.InvoiceHandler
	InvoiceReturn *handler.InvoiceReturnHandler
	Purchase      *handler.PurchaseHandler
	Expense       *handler.ExpenseHandler
	Report        *handler.ReportHandler
}

// Setup registers all API routes on the engine under /api/v1.
// Everything except registration, login and refresh requires a valid
// access token.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	api := engine.Group("/api/v1")

	// Public authentication endpoints
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwtService))

	// Session and profile
	authRoutes := protected.Group("/auth")
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.PUT("/password", h.Auth.ChangePassword)
	authRoutes.GET("/profile", h.Auth.Profile)
	authRoutes.PUT("/profile", h.Auth.UpdateProfile)

	// Catalog domain (products, taxes)
	catalog := protected.Group("/catalog")
	catalog.POST("/products", h.Product.Create)
	catalog.GET("/products", h.Product.List)
	catalog.GET("/products/:id", h.Product.Get)
	catalog.PUT("/products/:id", h.Product.Update)
	catalog.POST("/products/:id/stock", h.Product.AdjustStock)
	catalog.DELETE("/products/:id", h.Product.Delete)

	catalog.POST("/taxes", h.Tax.Create)
	catalog.GET("/taxes", h.Tax.List)
	catalog.PUT("/taxes/:id/active", h.Tax.SetActive)
	catalog.DELETE("/taxes/:id", h.Tax.Delete)

	// Partner domain (customers, suppliers)
	partner := protected.Group("/partner")
	partner.POST("/customers", h.Customer.Create)
	partner.GET("/customers", h.Customer.List)
	partner.GET("/customers/:id", h.Customer.Get)
	partner.PUT("/customers/:id", h.Customer.Update)
	partner.POST("/customers/:id/balance/settle", h.Customer.SettleBalance)
	partner.GET("/customers/:id/invoices", h.Invoice.ListForCustomer)
	partner.DELETE("/customers/:id", h.Customer.Delete)

	partner.POST("/suppliers", h.Supplier.Create)
	partner.GET("/suppliers", h.Supplier.List)
	partner.GET("/suppliers/:id", h.Supplier.Get)
	partner.PUT("/suppliers/:id", h.Supplier.Update)
	partner.POST("/suppliers/:id/balance/settle", h.Supplier.SettleBalance)
	partner.GET("/suppliers/:id/purchases", h.Purchase.ListForSupplier)
	partner.DELETE("/suppliers/:id", h.Supplier.Delete)

	// Trade domain (invoices, returns, purchases)
	trade := protected.Group("/trade")
	trade.POST("/invoices", h.Invoice.Create)
	trade.GET("/invoices", h.Invoice.List)
	trade.GET("/invoices/:id", h.Invoice.Get)
	trade.GET("/invoices/number/:number", h.Invoice.GetByNumber)
	trade.GET("/invoices/:id/returns", h.InvoiceReturn.ListForInvoice)

	trade.POST("/returns", h.InvoiceReturn.Create)
	trade.GET("/returns/:id", h.InvoiceReturn.Get)

	trade.POST("/purchases", h.Purchase.Create)
	trade.POST("/purchases/with-new-products", h.Purchase.CreateWithNewProducts)
	trade.GET("/purchases", h.Purchase.List)
	trade.GET("/purchases/:id", h.Purchase.Get)
	trade.GET("/purchases/number/:number", h.Purchase.GetByNumber)

	// Finance domain (expenses)
	finance := protected.Group("/finance")
	finance.POST("/expenses", h.Expense.Create)
	finance.GET("/expenses", h.Expense.List)
	finance.GET("/expenses/:id", h.Expense.Get)
	finance.PUT("/expenses/:id", h.Expense.Update)
	finance.DELETE("/expenses/:id", h.Expense.Delete)

	// Reporting
	reports := protected.Group("/reports")
	reports.GET("/sales/summary", h.Report.SalesSummary)
	reports.GET("/sales/trend", h.Report.DailySalesTrend)
	reports.GET("/sales/products", h.Report.ProductSalesRanking)
	reports.GET("/sales/customers", h.Report.CustomerSalesRanking)
	reports.GET("/purchases/suppliers", h.Report.SupplierPurchaseRanking)
	reports.GET("/inventory/summary", h.Report.InventorySummary)
	reports.GET("/inventory/low-stock", h.Report.LowStockProducts)
	reports.GET("/finance/profit-loss", h.Report.ProfitLoss)
	reports.GET("/finance/expenses", h.Report.ExpenseBreakdown)
}
