package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services the router dispatches to.
type Deps struct {
	Service     string
	Version     string
	CORSOrigins []string
	Logger      *slog.Logger

	Park        ParkInfo
	Purchases   TicketPurchaser
	Contact     ContactSubmitter
	Auth        VisitorAuth
	Chat        ChatSessions
	Checkout    CheckoutWizards
	Idempotency IdempotencyStore
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler { return RequestLogger(next, d.Logger) })
	r.Use(func(next http.Handler) http.Handler { return CORS(d.CORSOrigins, next) })

	r.NotFound(NotFoundHandler().ServeHTTP)
	r.MethodNotAllowed(MethodNotAllowedHandler().ServeHTTP)

	r.Get("/health", HandleHealth(d.Service, d.Version))
	r.Handle("/metrics", promhttp.Handler())

	idempotent := func(next http.Handler) http.Handler { return next }
	if d.Idempotency != nil {
		idempotent = Idempotency(d.Idempotency, d.Logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/park/status", HandleParkStatus(d.Park))
		r.Get("/park/zones", HandleZones(d.Park))
		r.Get("/attractions", HandleAttractions(d.Park))
		r.Get("/attractions/featured", HandleFeaturedAttractions(d.Park))

		r.Get("/tickets/types", HandleTicketTypes(d.Park))
		r.With(idempotent).Post("/tickets/purchase", HandlePurchaseTickets(d.Purchases))
		r.Get("/tickets/purchases/{id}", HandleGetPurchase(d.Purchases))

		r.With(idempotent).Post("/contact", HandleContact(d.Contact))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", HandleLogin(d.Auth))
			r.Post("/logout", HandleLogout(d.Auth))
			r.Get("/me", HandleMe(d.Auth))
			r.Get("/demo-accounts", HandleDemoAccounts())
			r.Post("/register/validate", HandleValidateRegistration())
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/quick-actions", HandleChatQuickActions(d.Chat))
			r.Post("/sessions", HandleCreateChatSession(d.Chat))
			r.Get("/sessions/{id}", HandleGetChatSession(d.Chat))
			r.Post("/sessions/{id}/open", HandleOpenChatSession(d.Chat))
			r.Post("/sessions/{id}/close", HandleCloseChatSession(d.Chat))
			r.Post("/sessions/{id}/messages", HandleSendChatMessage(d.Chat))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", HandleCreateCheckout(d.Checkout))
			r.Get("/{id}", HandleGetCheckout(d.Checkout))
			r.Post("/{id}/ticket", HandleCheckoutSelectTicket(d.Checkout))
			r.Post("/{id}/continue", HandleCheckoutContinue(d.Checkout))
			r.Post("/{id}/back", HandleCheckoutBack(d.Checkout))
			r.Patch("/{id}/details", HandleCheckoutDetails(d.Checkout))
			r.Patch("/{id}/payment", HandleCheckoutPayment(d.Checkout))
			r.With(idempotent).Post("/{id}/pay", HandleCheckoutPay(d.Checkout))
			r.Post("/{id}/reset", HandleCheckoutReset(d.Checkout))
		})
	})

	return r
}
