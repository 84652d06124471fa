package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	Logger           *slog.Logger
	CORSAllowOrigins []string
	RequestTimeout   time.Duration
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(Tracing)
	r.Use(Logging(logger))
	r.Use(Recover(logger))
	r.Use(CORS(opts.CORSAllowOrigins))
	if opts.RequestTimeout > 0 {
		r.Use(Timeout(opts.RequestTimeout))
	}

	r.Get("/health", h.Health)

	r.Route("/carts", func(r chi.Router) {
		r.Post("/", h.AddItemToNewCart)
		r.Get("/{cartId}", h.GetCart)
		r.Put("/{cartId}", h.UpdateItemQuantity)
		r.Delete("/{cartId}/{productId}", h.DeleteItem)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.SearchProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{productId}", h.GetProduct)
	})

	return r
}
