package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitpass/handlers"
	"fitpass/middleware"
	"fitpass/utils"
)

// RegisterAuthRoutes registers the phone -> otp -> signup flow endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/phone", hb.StartPhoneHandler)
		api.POST("/verify-otp", hb.VerifyOTPHandler)
		api.POST("/change-phone", hb.ChangePhoneHandler)
		api.POST("/signup", hb.CompleteSignupHandler)
		api.POST("/logout", hb.LogoutHandler)

		api.GET("/me", middleware.SessionAuthMiddleware(hb.Sessions), hb.MeHandler)
	}
}

// RegisterCheckoutRoutes registers the booking modal endpoints. Opening and
// browsing a checkout is anonymous; discount application and payment resolve
// the session and reject unauthenticated callers in the service layer.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkouts")
	api.Use(middleware.OptionalSessionMiddleware(hb.Sessions))
	{
		api.POST("", hb.OpenCheckoutHandler)
		api.GET("/:checkoutId", hb.GetCheckoutHandler)
		api.DELETE("/:checkoutId", hb.CloseCheckoutHandler)

		api.PUT("/:checkoutId/contact", hb.SetContactHandler)
		api.PUT("/:checkoutId/client-state", hb.SaveClientStateHandler)

		api.GET("/:checkoutId/coupons", hb.AvailableCouponsHandler)
		api.POST("/:checkoutId/coupon", hb.ApplyCouponHandler)
		api.DELETE("/:checkoutId/coupon", hb.RemoveCouponHandler)
		api.POST("/:checkoutId/promo-code", hb.ApplyPromoCodeHandler)

		api.POST("/:checkoutId/pay", hb.PayHandler)
		api.POST("/:checkoutId/payment/success", hb.PaymentSuccessHandler)
		api.POST("/:checkoutId/payment/dismissed", hb.PaymentDismissedHandler)
		api.POST("/:checkoutId/payment/failed", hb.PaymentFailedHandler)
	}
}

// RegisterCatalogRoutes registers session and event browsing endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/catalog")
	{
		api.GET("/sessions", hb.ListSessionsHandler)
		api.GET("/sessions/:id", hb.GetSessionHandler)
		api.GET("/events", hb.ListEventsHandler)
		api.GET("/events/:id", hb.GetEventHandler)
	}
}

// RegisterLeadRoutes registers the contact and inquiry form endpoints.
func RegisterLeadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/leads")
	{
		api.POST("/contact", hb.ContactLeadHandler)
		api.POST("/inquiry", hb.InquiryHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterMetricsRoute exposes the Prometheus scrape endpoint.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupRouter builds the engine with the shared middleware chain and all
// route groups.
func SetupRouter(hb *handlers.HandlerBundle) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterLeadRoutes(r, hb)
	return r
}
