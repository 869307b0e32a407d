package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hung20012004/Nhom373DCTT24-sub003/controllers"
	"github.com/hung20012004/Nhom373DCTT24-sub003/controllers/admins"
	"github.com/hung20012004/Nhom373DCTT24-sub003/controllers/auth"
	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/models"
	"github.com/hung20012004/Nhom373DCTT24-sub003/repository"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "storefront-api",
	})
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS: origins from CORS_ALLOWED_ORIGINS (comma-separated) plus local
	// development defaults.
	origins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		for _, p := range strings.Split(originsEnv, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "x-api-key", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/api").Subrouter()
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	// Login/register limiter: 60 per IP per 5 minutes. The chat list gets a
	// loose limiter because the widget polls it.
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	chatLimiter := middleware.NewIPRateLimiter(500, 5*time.Minute)

	// Public storefront endpoints
	api.Handle("/categories", http.HandlerFunc(controllers.CategoryListHandler)).Methods(http.MethodGet)
	api.Handle("/products", http.HandlerFunc(controllers.ProductListHandler)).Methods(http.MethodGet)
	api.Handle("/banners", http.HandlerFunc(controllers.BannerListHandler)).Methods(http.MethodGet)
	api.Handle("/flash", http.HandlerFunc(flashHandler)).Methods(http.MethodGet)

	// Auth
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler))).Methods(http.MethodPost)

	// Chat exchange: any resolved credential (API key or session) may list
	// and post; the widget polls the list after each successful post.
	chatController := controllers.NewChatController(repository.NewChatRepository(database.DB))
	api.Handle("/chat", chatLimiter.Middleware(
		middleware.CredentialMiddleware(
			middleware.Gate(middleware.RequireAny(), middleware.GateAPI)(
				http.HandlerFunc(chatController.ListMessagesHandler))))).Methods(http.MethodGet)
	api.Handle("/chat",
		middleware.CredentialMiddleware(
			middleware.Gate(middleware.RequireAny(), middleware.GateAPI)(
				http.HandlerFunc(chatController.SendMessageHandler)))).Methods(http.MethodPost)

	// Admin panel API: session-only, exact Admin role.
	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.Use(middleware.AuthMiddleware)
	adminAPI.Use(middleware.Gate(middleware.RequireRole(models.RoleAdmin), middleware.GateAPI))

	adminAPI.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)
	adminAPI.Handle("/categories", http.HandlerFunc(admins.ListCategoriesHandler)).Methods(http.MethodGet)
	adminAPI.Handle("/categories", http.HandlerFunc(admins.CreateCategoryHandler)).Methods(http.MethodPost)
	adminAPI.Handle("/categories/{id}", http.HandlerFunc(admins.UpdateCategoryHandler)).Methods(http.MethodPut)
	adminAPI.Handle("/categories/{id}", http.HandlerFunc(admins.DeleteCategoryHandler)).Methods(http.MethodDelete)
	adminAPI.Handle("/banners", http.HandlerFunc(admins.ListBannersHandler)).Methods(http.MethodGet)
	adminAPI.Handle("/banners", http.HandlerFunc(admins.CreateBannerHandler)).Methods(http.MethodPost)
	adminAPI.Handle("/banners/{id}", http.HandlerFunc(admins.DeleteBannerHandler)).Methods(http.MethodDelete)
	adminAPI.Handle("/users", http.HandlerFunc(admins.ListUsersHandler)).Methods(http.MethodGet)
	adminAPI.Handle("/users/{id}/api-key", http.HandlerFunc(admins.IssueAPIKeyHandler)).Methods(http.MethodPost)

	// Web-facing admin entry: denials redirect with a flash message instead
	// of a JSON error. Any staff role passes, customers do not.
	web := r.PathPrefix("/admin").Subrouter()
	web.Use(middleware.WebSessionMiddleware)
	web.Use(middleware.Gate(middleware.RequireNotRole(models.RoleCustomer), middleware.GateWeb))
	web.Handle("/dashboard", http.HandlerFunc(admins.GetDashboardStats)).Methods(http.MethodGet)

	return r
}

// flashHandler drains queued flash messages for the web client to render
// after a gate redirect.
func flashHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Status:  utils.StatusSuccess,
		Message: "Successfully",
		Data:    map[string]interface{}{"messages": utils.PopFlashes(w, r)},
	})
}
