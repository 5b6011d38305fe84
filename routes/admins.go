package routes

import (
	"net/http"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/controllers/admins"
	"github.com/robertventures/robert-ventures-investordesk-sub002/middleware"

	"github.com/gorilla/mux"
)

func SetAdminRoutes(api *mux.Router) {
	// Admin login limiter: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	// Public admin routes
	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	// Protected admin routes
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// Investment management
	adminRouter.Handle("/investments", http.HandlerFunc(admins.ListInvestments)).Methods(http.MethodGet)
	adminRouter.Handle("/investments/{id}/confirm", http.HandlerFunc(admins.ConfirmInvestment)).Methods(http.MethodPost)
	adminRouter.Handle("/investments/{id}/reject", http.HandlerFunc(admins.RejectInvestment)).Methods(http.MethodPost)
	adminRouter.Handle("/investments/{id}/terminate", http.HandlerFunc(admins.TerminateInvestment)).Methods(http.MethodPost)

	// Withdrawal management
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.ListWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id}/complete", http.HandlerFunc(admins.CompleteWithdrawal)).Methods(http.MethodPost)
	adminRouter.Handle("/withdrawals/{id}/reject", http.HandlerFunc(admins.RejectWithdrawal)).Methods(http.MethodPost)

	// Distribution payout desk
	adminRouter.Handle("/payouts/pending", http.HandlerFunc(admins.ListPendingPayouts)).Methods(http.MethodGet)
	adminRouter.Handle("/payouts/{id}/complete", http.HandlerFunc(admins.CompletePayout)).Methods(http.MethodPost)
	adminRouter.Handle("/payouts/{id}/retry", http.HandlerFunc(admins.RetryPayout)).Methods(http.MethodPost)
	adminRouter.Handle("/payouts/{id}/fail", http.HandlerFunc(admins.FailPayout)).Methods(http.MethodPost)

	// Time machine
	adminRouter.Handle("/time-machine", http.HandlerFunc(admins.GetTimeOverride)).Methods(http.MethodGet)
	adminRouter.Handle("/time-machine", http.HandlerFunc(admins.SetTimeOverride)).Methods(http.MethodPut)
	adminRouter.Handle("/time-machine", http.HandlerFunc(admins.ClearTimeOverride)).Methods(http.MethodDelete)

	// Settings
	adminRouter.Handle("/settings/auto-approve", http.HandlerFunc(admins.SetAutoApprove)).Methods(http.MethodPut)

	// Ledger resync
	adminRouter.Handle("/resync", http.HandlerFunc(admins.Resync)).Methods(http.MethodPost)
}
