package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/borcelle/checkout-api/api/controllers"
	webhookcontrollers "github.com/borcelle/checkout-api/api/controllers/webhooks"
	"github.com/borcelle/checkout-api/api/middleware"
	"github.com/borcelle/checkout-api/pkg/config"
	"github.com/borcelle/checkout-api/pkg/db"
	"github.com/borcelle/checkout-api/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	checkoutService controllers.CheckoutService,
	webhookService webhookcontrollers.RazorpayWebhookService,
	verifier webhookcontrollers.SignatureVerifier,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Post("/create-order", controllers.CreateOrder(checkoutService, logg))
	r.Post("/webhooks", webhookcontrollers.RazorpayWebhook(webhookService, verifier, logg))

	return r
}
