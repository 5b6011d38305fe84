package routes

import (
	"net/http"
	"time"

	"github.com/robertventures/robert-ventures-investordesk-sub002/controllers/auth"
	"github.com/robertventures/robert-ventures-investordesk-sub002/controllers/users"
	"github.com/robertventures/robert-ventures-investordesk-sub002/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the investor-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Login/register limiter: 30 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(30, 5*time.Minute)
	// General API limiter: 300 per IP per minute
	apiLimiter := middleware.NewIPRateLimiter(300, time.Minute)

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)

	// Investments
	api.Handle("/investments", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateInvestment)))).Methods(http.MethodPost)
	api.Handle("/investments", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListInvestments)))).Methods(http.MethodGet)
	api.Handle("/investments/{id}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetInvestment)))).Methods(http.MethodGet)
	api.Handle("/investments/{id}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.UpdateInvestment)))).Methods(http.MethodPatch)
	api.Handle("/investments/{id}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.DeleteInvestment)))).Methods(http.MethodDelete)
	api.Handle("/investments/{id}/submit", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.SubmitInvestment)))).Methods(http.MethodPost)

	// Withdrawals
	api.Handle("/investments/{id}/withdraw", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.RequestWithdrawal)))).Methods(http.MethodPost)
	api.Handle("/withdrawals", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListWithdrawals)))).Methods(http.MethodGet)

	// Ledger and activity feeds
	api.Handle("/transactions", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetTransactionHistory)))).Methods(http.MethodGet)
	api.Handle("/activity", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetActivityFeed)))).Methods(http.MethodGet)

	// Bank accounts
	api.Handle("/bank-accounts", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListBankAccounts)))).Methods(http.MethodGet)
	api.Handle("/bank-accounts", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateBankAccount)))).Methods(http.MethodPost)
}
