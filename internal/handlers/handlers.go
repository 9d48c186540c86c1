package handlers

import (
	"os"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/imrishuroy/go-commerce-api/internal/analytics"
	"github.com/imrishuroy/go-commerce-api/internal/auth"
	"github.com/imrishuroy/go-commerce-api/internal/aws"
	"github.com/imrishuroy/go-commerce-api/internal/carts"
	"github.com/imrishuroy/go-commerce-api/internal/categories"
	"github.com/imrishuroy/go-commerce-api/internal/checkout"
	"github.com/imrishuroy/go-commerce-api/internal/config"
	"github.com/imrishuroy/go-commerce-api/internal/orders"
	"github.com/imrishuroy/go-commerce-api/internal/products"
	"github.com/imrishuroy/go-commerce-api/internal/users"
	"github.com/imrishuroy/go-commerce-api/internal/validation"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger()

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI        // optional; no order events when nil
	CloudWatchClient aws.CloudWatchAPI // optional; no metrics when nil
	Config           config.Config
}

// API owns the stores and services behind the HTTP surface.
type API struct {
	cfg      config.Config
	validate *validatorv10.Validate
	tokens   *auth.Tokens

	users      *users.Store
	products   *products.Store
	carts      *carts.Store
	categories *categories.Store
	orders     *orders.Store

	checkout  *checkout.Service
	analytics *analytics.Service
}

// NewAPI wires stores and services from the handler config.
func NewAPI(hc HandlerConfig) *API {
	cfg := hc.Config

	userStore := users.NewStore(hc.DynamoDBClient, cfg.UsersTable)
	productStore := products.NewStore(hc.DynamoDBClient, cfg.ProductsTable)
	cartStore := carts.NewStore(hc.DynamoDBClient, cfg.CartsTable)
	categoryStore := categories.NewStore(hc.DynamoDBClient, cfg.CategoriesTable)
	orderStore := orders.NewStore(hc.DynamoDBClient, cfg.OrdersTable)

	var notifier checkout.Notifier
	if hc.SQSClient != nil && cfg.OrderEventsQueueURL != "" {
		notifier = aws.NewPublisher(hc.SQSClient, cfg.OrderEventsQueueURL)
	}
	var recorder checkout.Recorder
	if hc.CloudWatchClient != nil {
		recorder = aws.NewMetricsRecorder(hc.CloudWatchClient, "CommerceAPI")
	}

	checkoutSvc := checkout.NewService(userStore, productStore, cartStore, orderStore, notifier, recorder, checkout.Charges{
		Delivery:        cfg.DeliveryCharge,
		FreeDeliveryMin: cfg.FreeDeliveryMin,
		Handling:        cfg.HandlingCharge,
	})

	return &API{
		cfg:        cfg,
		validate:   validation.New(),
		tokens:     auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		users:      userStore,
		products:   productStore,
		carts:      cartStore,
		categories: categoryStore,
		orders:     orderStore,
		checkout:   checkoutSvc,
		analytics:  analytics.NewService(orderStore),
	}
}

// Register mounts all routes under /api.
func (a *API) Register(r *gin.Engine) {
	authRoutes := r.Group("/api/auth")
	authRoutes.POST("/signup", a.signup)
	authRoutes.POST("/signin", a.signin)

	api := r.Group("/api")
	api.Use(auth.Middleware(a.tokens, a.users))
	admin := auth.AdminOnly()

	// products
	api.POST("/create-product", admin, a.createProduct)
	api.GET("/products", a.listProducts)
	api.GET("/products/:id", a.getProduct)
	api.PUT("/products/:id", admin, a.updateProduct)
	api.DELETE("/products/:id", admin, a.deleteProduct)
	api.GET("/customer-products", a.listCustomerProducts)
	api.GET("/customer-products/search", a.searchCustomerProducts)

	// categories
	api.POST("/categories", admin, a.createCategory)
	api.GET("/categories", a.listCategories)
	api.PUT("/categories/:id", admin, a.updateCategory)
	api.DELETE("/categories/:id", admin, a.deleteCategory)

	// cart
	api.POST("/cart/add", a.addToCart)
	api.GET("/cart", a.getCart)
	api.PUT("/cart/update", a.updateCart)
	api.DELETE("/cart/:productId", a.removeFromCart)
	api.DELETE("/clear-cart", a.clearCart)

	// orders
	api.POST("/orders", a.placeOrder)
	api.GET("/orders", a.listOwnOrders)
	api.GET("/orders/:id", a.getOwnOrder)
	api.PUT("/orders/:id/status", admin, a.updateOrderStatus)
	api.DELETE("/orders/:id", a.cancelOrder)
	api.GET("/orders/user/:userId", admin, a.listOrdersByUser)
	api.GET("/all-orders", admin, a.listAllOrders)

	// customers
	api.GET("/customers", admin, a.listCustomers)
	api.GET("/get-customer/:id", a.getCustomer)
	api.PUT("/customers/edit/:id", admin, a.editCustomer)
	api.DELETE("/customers/:id", admin, a.deleteCustomer)
	api.POST("/customers/:id/addresses", a.addAddress)
	api.PUT("/customers/:id/addresses/:addressId", a.updateAddress)
	api.DELETE("/customers/:id/addresses/:addressId", a.deleteAddress)

	// analytics
	api.GET("/sales-analytics", admin, a.salesAnalytics)
}
