package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ValiCoder/courseboard/internal/api/handler"
	"github.com/ValiCoder/courseboard/internal/api/middleware"
	"github.com/ValiCoder/courseboard/internal/core/ports"
	"github.com/ValiCoder/courseboard/internal/infrastructure/http/handlers"
)

// Deps bundles everything the router needs. Services are constructed in main
// so the cleanup worker can be wired into the user service before routing.
type Deps struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Courses  ports.CourseService
	UserRepo ports.UserRepository
	Sessions ports.SessionStore
	Codec    *middleware.CookieCodec
	Mongo    *mongo.Database
	Redis    *redis.Client
	PagesDir string
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("courseboard"))
	e.Use(middleware.ResolveIdentity(deps.Sessions, deps.UserRepo, deps.Codec, deps.Log))

	guard := middleware.RequireAuth("/api", "/login")

	authHandler := handler.NewAuthHandler(deps.Auth, deps.Codec)
	userHandler := handler.NewUserHandler(deps.Users)
	courseHandler := handler.NewCourseHandler(deps.Courses)
	pageHandler := handler.NewPageHandler(deps.PagesDir)

	// --- Pages ---
	e.Static("/static", deps.PagesDir)
	e.GET("/", pageHandler.Home)
	e.GET("/register", pageHandler.Register)
	e.GET("/login", pageHandler.Login)
	e.GET("/user", pageHandler.User)
	e.GET("/dashboard", pageHandler.Dashboard, guard)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- API (guard-protected) ---
	api := e.Group("/api", guard)
	api.GET("/me", userHandler.Me)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)
	api.POST("/users", userHandler.Create)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.POST("/courses", courseHandler.Create)
	api.PUT("/courses/:id", courseHandler.Update)
	api.DELETE("/courses/:id", courseHandler.Delete)

	// --- Ops endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
