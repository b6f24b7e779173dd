package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"meetconnect/internal/config"
	apperrors "meetconnect/internal/errors"
	"meetconnect/internal/handler"
	appmw "meetconnect/internal/middleware"
	"meetconnect/internal/validation"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Interview *handler.InterviewHandler
	Resource  *handler.ResourceHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.SugaredLogger, authn *appmw.Authenticator, h Handlers) {
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(cfg.IsDevelopment())
	e.Validator = validation.New()

	e.Use(middleware.RequestID())
	e.Use(appmw.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "x-auth-token"},
		AllowCredentials: true,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message":   "API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/api-docs", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	api := e.Group("/api")
	required := authn.Required()

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/google", h.Auth.GoogleLogin)
	authGroup.POST("/forgot-password", h.Auth.ForgotPassword)
	authGroup.POST("/reset-password", h.Auth.ResetPassword)
	authGroup.GET("/me", h.Auth.Me, required)
	authGroup.PUT("/me", h.Auth.UpdateMe, required)
	authGroup.POST("/logout", h.Auth.Logout, required)

	interviews := api.Group("/interviews", required)
	interviews.GET("", h.Interview.ListInterviews)
	interviews.POST("", h.Interview.CreateInterview)
	interviews.GET("/:id", h.Interview.GetInterview)
	interviews.PUT("/:id", h.Interview.UpdateInterview)
	interviews.PATCH("/:id/complete", h.Interview.CompleteInterview)
	interviews.DELETE("/:id", h.Interview.DeleteInterview)

	users := api.Group("/users", required)
	users.GET("/profile", h.User.GetProfile)
	users.PUT("/profile", h.User.UpdateProfile)

	resources := api.Group("/resources")
	resources.GET("", h.Resource.ListResources)
	resources.GET("/:id", h.Resource.GetResource)
	resources.POST("", h.Resource.CreateResource, authn.Optional())
	resources.DELETE("/:id", h.Resource.DeleteResource, required, authn.RequireAdmin())
}
