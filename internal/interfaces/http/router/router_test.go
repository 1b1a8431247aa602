package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/storekit/backend/internal/application/catalog"
	financeapp "github.com/storekit/backend/internal/application/finance"
	identityapp "github.com/storekit/backend/internal/application/identity"
	partnerapp "github.com/storekit/backend/internal/application/partner"
	reportapp "github.com/storekit/backend/internal/application/report"
	tradeapp "github.com/storekit/backend/internal/application/trade"
	"github.com/storekit/backend/internal/domain/trade"
	"github.com/storekit/backend/internal/infrastructure/auth"
	"github.com/storekit/backend/internal/infrastructure/config"
	"github.com/storekit/backend/internal/infrastructure/persistence"
	"github.com/storekit/backend/internal/interfaces/http/dto"
	"github.com/storekit/backend/internal/interfaces/http/handler"
)

// newTestServer wires the full API against an in-memory database
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterValidations())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, persistence.AutoMigrate(db))

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storekit-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	taxRepo := persistence.NewGormTaxRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	supplierRepo := persistence.NewGormSupplierRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	returnRepo := persistence.NewGormInvoiceReturnRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	sequenceRepo := persistence.NewGormDocumentSequenceRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)

	numbers := trade.NewNumberGenerator(sequenceRepo)
	timeout := 5 * time.Second

	engine := gin.New()
	Setup(engine, jwtService, Handlers{
		Auth:          handler.NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService, blacklist, log)),
		Product:       handler.NewProductHandler(catalogapp.NewProductService(productRepo, log)),
		Tax:           handler.NewTaxHandler(catalogapp.NewTaxService(taxRepo)),
		Customer:      handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo)),
		Supplier:      handler.NewSupplierHandler(partnerapp.NewSupplierService(supplierRepo)),
		Invoice:       handler.NewInvoiceHandler(tradeapp.NewInvoiceService(invoiceRepo, productRepo, taxRepo, customerRepo, numbers, timeout, log)),
		InvoiceReturn: handler.NewInvoiceReturnHandler(tradeapp.NewInvoiceReturnService(invoiceRepo, returnRepo, productRepo, numbers, timeout, log)),
		Purchase:      handler.NewPurchaseHandler(tradeapp.NewPurchaseService(purchaseRepo, productRepo, taxRepo, supplierRepo, numbers, timeout, log)),
		Expense:       handler.NewExpenseHandler(financeapp.NewExpenseService(expenseRepo, log)),
		Report: handler.NewReportHandler(reportapp.NewReportService(
			persistence.NewGormSalesReportRepository(db),
			persistence.NewGormPurchaseReportRepository(db),
			persistence.NewGormInventoryReportRepository(db),
			persistence.NewGormFinanceReportRepository(db),
			log,
		)),
	})
	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"body: %s", rec.Body.String())
	}
	return rec.Code, env
}

func registerAndLogin(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	status, _ := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cretPass!",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "s3cretPass!",
	})
	require.Equal(t, http.StatusOK, status)

	var login struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Tokens.AccessToken)
	return login.Tokens.AccessToken
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine := newTestServer(t)

	status, env := doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	status, _ = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestInvoiceFlowMovesStock(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "shopkeeper")

	status, env := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", token, gin.H{
		"name":         "Shampoo 400ml",
		"category":     "Hair Care",
		"cost":         "3.20",
		"retail_price": "5.50",
		"stock":        10,
	})
	require.Equal(t, http.StatusCreated, status, "error: %+v", env.Error)

	var product struct {
		ID    string `json:"id"`
		Stock int64  `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))
	require.EqualValues(t, 10, product.Stock)

	status, env = doJSON(t, engine, http.MethodPost, "/api/v1/trade/invoices", token, gin.H{
		"is_quick_sale":  true,
		"payment_method": "cash",
		"amount_paid":    "16.50",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": 3, "price": "5.50"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "error: %+v", env.Error)

	var invoice struct {
		InvoiceNumber string `json:"invoice_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invoice))
	assert.Regexp(t, `^INV-\d{10}$`, invoice.InvoiceNumber)

	status, env = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.EqualValues(t, 7, product.Stock)

	// Selling more than remains must fail and leave stock untouched
	status, env = doJSON(t, engine, http.MethodPost, "/api/v1/trade/invoices", token, gin.H{
		"is_quick_sale":  true,
		"payment_method": "cash",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": 100, "price": "5.50"},
		},
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)

	status, env = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.EqualValues(t, 7, product.Stock)
}

func TestOwnersAreIsolated(t *testing.T) {
	engine := newTestServer(t)
	tokenA := registerAndLogin(t, engine, "owner-a")
	tokenB := registerAndLogin(t, engine, "owner-b")

	status, env := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", tokenA, gin.H{
		"name":         "Soap Bar",
		"retail_price": "1.50",
		"stock":        5,
	})
	require.Equal(t, http.StatusCreated, status)

	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	status, env = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/"+product.ID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestReturnRestoresStock(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "returner")

	status, env := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", token, gin.H{
		"name":         "Conditioner",
		"retail_price": "8.00",
		"stock":        4,
	})
	require.Equal(t, http.StatusCreated, status)
	var product struct {
		ID    string `json:"id"`
		Stock int64  `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	status, env = doJSON(t, engine, http.MethodPost, "/api/v1/trade/invoices", token, gin.H{
		"is_quick_sale":  true,
		"payment_method": "cash",
		"amount_paid":    "16.00",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": 2, "price": "8.00"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "error: %+v", env.Error)
	var invoice struct {
		InvoiceNumber string `json:"invoice_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invoice))

	status, env = doJSON(t, engine, http.MethodPost, "/api/v1/trade/returns", token, gin.H{
		"invoice_number":  invoice.InvoiceNumber,
		"refund_method":   "cash",
		"amount_refunded": "8.00",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": 1, "price": "8.00"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "error: %+v", env.Error)

	status, env = doJSON(t, engine, http.MethodGet, "/api/v1/catalog/products/"+product.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &product))
	// 4 in stock, 2 sold, 1 returned
	assert.EqualValues(t, 3, product.Stock)
}

func TestSupplierPurchaseReport(t *testing.T) {
	engine := newTestServer(t)
	token := registerAndLogin(t, engine, "buyer")

	status, env := doJSON(t, engine, http.MethodPost, "/api/v1/catalog/products", token, gin.H{
		"name":         "Rice Bag",
		"cost":         "30.00",
		"retail_price": "40.00",
		"stock":        0,
	})
	require.Equal(t, http.StatusCreated, status)
	var product struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	status, env = doJSON(t, engine, http.MethodPost, "/api/v1/trade/purchases", token, gin.H{
		"supplier":       gin.H{"name": "Golden Star", "phone_number": "0955"},
		"payment_method": "cash",
		"amount_paid":    "60.00",
		"lines": []gin.H{
			{"product_id": product.ID, "quantity": 2, "unit_price": "30.00"},
		},
	})
	require.Equal(t, http.StatusCreated, status, "error: %+v", env.Error)

	status, env = doJSON(t, engine, http.MethodGet, "/api/v1/reports/purchases/suppliers", token, nil)
	require.Equal(t, http.StatusOK, status, "error: %+v", env.Error)

	var ranking []struct {
		SupplierName  string          `json:"supplier_name"`
		PurchaseCount int64           `json:"purchase_count"`
		TotalSpent    decimal.Decimal `json:"total_spent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ranking))
	require.Len(t, ranking, 1)
	assert.Equal(t, "Golden Star", ranking[0].SupplierName)
	assert.EqualValues(t, 1, ranking[0].PurchaseCount)
	assert.True(t, ranking[0].TotalSpent.Equal(decimal.NewFromInt(60)), ranking[0].TotalSpent.String())
}

func TestHealthAndUnknownRoute(t *testing.T) {
	engine := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
