package api

import (
	"github.com/gorilla/mux"

	"github.com/crystal-grimoire/backend/internal/api/recovery"
	"github.com/crystal-grimoire/backend/internal/auth"
	"github.com/crystal-grimoire/backend/internal/catalog"
	"github.com/crystal-grimoire/backend/internal/profile"
	"github.com/crystal-grimoire/backend/internal/services"
	"github.com/crystal-grimoire/backend/internal/support"
)

// Deps carries everything the router needs. Identify and Guide stay nil
// when no AI key is configured; StartUpgrade refuses without Payments.
type Deps struct {
	Auth     auth.Authenticator
	Catalog  *catalog.Catalog
	Profiles *profile.Service
	Support  *support.Service

	Identify  *services.IdentifyService
	Guidance  *services.GuidanceService
	Recommend *services.RecommendService
	Rituals   *services.RitualService
	Plans     *services.PlanService
	Usage     *services.UsageService

	SupportAPIKey string
}

// NewRouter wires every API route.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()

	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler()
	crystalHandler := NewCrystalHandler(d.Catalog, d.Rituals)
	identifyHandler := NewIdentifyHandler(d.Identify, d.Auth)
	guidanceHandler := NewGuidanceHandler(d.Guidance, d.Auth)
	recommendHandler := NewRecommendHandler(d.Recommend, d.Auth)
	ritualHandler := NewRitualHandler(d.Rituals, d.Auth)
	planHandler := NewPlanHandler(d.Plans, d.Auth)
	usageHandler := NewUsageHandler(d.Usage, d.Auth)
	profileHandler := NewProfileHandler(d.Profiles, d.Auth)
	supportHandler := NewSupportHandler(d.Support, d.Auth, d.SupportAPIKey)

	// Health
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Public catalog and sky state
	router.HandleFunc("/api/crystals", crystalHandler.ListCrystals).Methods("GET")
	router.HandleFunc("/api/crystals/daily", crystalHandler.DailyCrystal).Methods("GET")
	router.HandleFunc("/api/crystals/{name}", crystalHandler.GetCrystal).Methods("GET")
	router.HandleFunc("/api/moon", crystalHandler.Moon).Methods("GET")
	router.HandleFunc("/api/rituals/templates", ritualHandler.RitualTemplates).Methods("GET")
	router.HandleFunc("/api/plans", planHandler.Catalog).Methods("GET")

	// Identification
	router.HandleFunc("/api/identify", identifyHandler.Identify).Methods("POST")
	router.HandleFunc("/api/identifications", identifyHandler.History).Methods("GET")

	// Guidance and recommendations
	router.HandleFunc("/api/guidance", guidanceHandler.Guide).Methods("POST")
	router.HandleFunc("/api/recommendations", recommendHandler.Recommend).Methods("POST")

	// Rituals
	router.HandleFunc("/api/rituals/moon", ritualHandler.MoonRitual).Methods("GET")
	router.HandleFunc("/api/rituals/complete", ritualHandler.CompleteRitual).Methods("POST")
	router.HandleFunc("/api/rituals/layout", ritualHandler.HealingLayout).Methods("POST")

	// Plan and entitlements
	router.HandleFunc("/api/plan/status", planHandler.Status).Methods("GET")
	router.HandleFunc("/api/plan/upgrade", planHandler.StartUpgrade).Methods("POST")
	router.HandleFunc("/api/plan/confirm", planHandler.ConfirmUpgrade).Methods("POST")

	// Usage ledger and credit wallet
	router.HandleFunc("/api/usage", usageHandler.GetUsage).Methods("GET")
	router.HandleFunc("/api/usage/track", usageHandler.TrackUsage).Methods("POST")
	router.HandleFunc("/api/wallet", usageHandler.GetWallet).Methods("GET")
	router.HandleFunc("/api/wallet/earn", usageHandler.EarnCredits).Methods("POST")
	router.HandleFunc("/api/wallet/spend", usageHandler.SpendCredits).Methods("POST")

	// Profile
	router.HandleFunc("/api/profile/ensure", profileHandler.EnsureProfile).Methods("POST")
	router.HandleFunc("/api/profile", profileHandler.GetProfile).Methods("GET")
	router.HandleFunc("/api/profile", profileHandler.UpdateProfile).Methods("PATCH")
	router.HandleFunc("/api/account", profileHandler.DeleteAccount).Methods("DELETE")

	// Support tickets
	router.HandleFunc("/api/support/tickets", supportHandler.CreateTicket).Methods("POST")
	router.HandleFunc("/api/support/tickets", supportHandler.ListTickets).Methods("GET")
	router.HandleFunc("/api/support/tickets/{ticketId}", supportHandler.GetTicket).Methods("GET")
	router.HandleFunc("/api/support/tickets/{ticketId}/comments", supportHandler.CommentTicket).Methods("POST")
	router.HandleFunc("/api/support/tickets/{ticketId}/status", supportHandler.CloseTicket).Methods("POST")

	// Support agent endpoints, gated by the admin API key
	router.HandleFunc("/api/admin/support/tickets/{ticketId}", supportHandler.AdminGetTicket).Methods("GET")
	router.HandleFunc("/api/admin/support/tickets/{ticketId}/status", supportHandler.AdminTransition).Methods("POST")
	router.HandleFunc("/api/admin/support/tickets/{ticketId}/comments", supportHandler.AdminComment).Methods("POST")

	return router
}
