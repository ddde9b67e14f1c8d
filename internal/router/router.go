package router

import (
	"net/http"
	"strings"

	"shopkart/internal/handler"
	"shopkart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	checkoutHandler *handler.CheckoutHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart routes
	mux.HandleFunc("/api/cart", cartHandler.Get)
	mux.HandleFunc("/api/cart/coupon", cartHandler.ApplyCoupon)
	mux.HandleFunc("/api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("/api/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
		if productID == "" {
			http.Error(w, "product ID is required", http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodPatch:
			cartHandler.UpdateItem(w, r, productID)
		case http.MethodDelete:
			cartHandler.RemoveItem(w, r, productID)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Wishlist routes
	mux.HandleFunc("/api/wishlist", wishlistHandler.Get)
	mux.HandleFunc("/api/wishlist/items", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wishlistHandler.AddEntry(w, r)
	})
	mux.HandleFunc("/api/wishlist/items/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/wishlist/items/")

		if productID, ok := strings.CutSuffix(rest, "/move"); ok {
			if r.Method != http.MethodPost || productID == "" {
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}
			wishlistHandler.MoveToCart(w, r, productID)
			return
		}

		if rest == "" {
			http.Error(w, "product ID is required", http.StatusBadRequest)
			return
		}

		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wishlistHandler.RemoveEntry(w, r, rest)
	})

	// Checkout routes
	mux.HandleFunc("/api/checkout", checkoutHandler.Checkout)
	mux.HandleFunc("/api/invoice", checkoutHandler.LatestInvoice)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
