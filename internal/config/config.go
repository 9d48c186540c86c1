package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all environment-derived settings. It is loaded once in main
// and injected; business code never reads the environment directly.
type Config struct {
	UsersTable      string
	ProductsTable   string
	CartsTable      string
	CategoriesTable string
	OrdersTable     string

	OrderEventsQueueURL string

	JWTSecret string
	TokenTTL  time.Duration

	// Charges applied at checkout. FreeDeliveryMin is the subtotal at which
	// delivery becomes free; below it DeliveryCharge applies.
	DeliveryCharge  float64
	FreeDeliveryMin float64
	HandlingCharge  float64
}

// Load reads configuration from the environment with defaults matching the
// established checkout policy (delivery 20 below 599, handling 0).
func Load() Config {
	return Config{
		UsersTable:      envOr("USERS_TABLE", "users"),
		ProductsTable:   envOr("PRODUCTS_TABLE", "products"),
		CartsTable:      envOr("CARTS_TABLE", "carts"),
		CategoriesTable: envOr("CATEGORIES_TABLE", "categories"),
		OrdersTable:     envOr("ORDERS_TABLE", "orders"),

		OrderEventsQueueURL: os.Getenv("ORDER_EVENTS_QUEUE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  24 * time.Hour,

		DeliveryCharge:  envFloatOr("DELIVERY_CHARGE", 20),
		FreeDeliveryMin: envFloatOr("FREE_DELIVERY_MIN", 599),
		HandlingCharge:  envFloatOr("HANDLING_CHARGE", 0),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
