package routes

import (
	"net/http"
	"time"

	"kerjalink/handlers"
	"kerjalink/middleware"
	"kerjalink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes registers worker and business profile endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	workers := r.Group("/api/workers")
	{
		workers.POST("/register", hb.Profile.CreateWorkerHandler)
		workers.GET("/id/:id", hb.Profile.GetWorkerHandler)
		workers.GET("", hb.Profile.ListWorkersHandler)

		// Updates require a worker token.
		workers.PUT("/update/:id", middleware.JWTAuthMiddleware("worker"), hb.Profile.UpdateWorkerHandler)
	}

	businesses := r.Group("/api/businesses")
	{
		businesses.POST("/register", hb.Profile.CreateBusinessHandler)
		businesses.GET("/id/:id", hb.Profile.GetBusinessHandler)
	}
}

// RegisterJobRoutes registers job posting endpoints.
func RegisterJobRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	jobs := r.Group("/api/jobs")
	{
		jobs.GET("/open", hb.Job.ListOpenHandler)
		jobs.GET("/id/:id", hb.Job.GetHandler)

		protected := jobs.Group("")
		protected.Use(middleware.JWTAuthMiddleware("business"))
		protected.POST("", hb.Job.CreateHandler)
		protected.GET("/business/:businessID", hb.Job.ListBusinessHandler)
		protected.POST("/close/:id", hb.Job.CloseHandler)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware(""))
		bookings.GET("/id/:id", hb.Booking.GetHandler)
		bookings.POST("/cancel/:id", hb.Booking.CancelHandler)

		worker := bookings.Group("")
		worker.Use(middleware.JWTAuthMiddleware("worker"))
		worker.POST("/apply", hb.Booking.ApplyHandler)
		worker.POST("/checkin/:id", hb.Booking.CheckInHandler)
		worker.POST("/checkout/:id", hb.Booking.CheckOutHandler)
		worker.GET("/worker/:workerID", hb.Booking.ListWorkerHandler)

		business := bookings.Group("")
		business.Use(middleware.JWTAuthMiddleware("business"))
		business.POST("/accept/:id", hb.Booking.AcceptHandler)
		business.POST("/reject/:id", hb.Booking.RejectHandler)
		business.GET("/business/:businessID", hb.Booking.ListBusinessHandler)
	}
}

// RegisterComplianceRoutes registers the day-limit tracking endpoints.
func RegisterComplianceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	compliance := r.Group("/api/compliance")
	{
		compliance.Use(middleware.JWTAuthMiddleware(""))
		compliance.GET("/status/:workerID/:businessID", hb.Compliance.GetStatusHandler)
		compliance.GET("/check/:workerID/:businessID", hb.Compliance.CheckAcceptanceHandler)
		compliance.GET("/alternatives/:businessID", middleware.JWTAuthMiddleware("business"), hb.Compliance.AlternativesHandler)
	}
}

// RegisterReliabilityRoutes registers the reliability score endpoints.
func RegisterReliabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reliability := r.Group("/api/reliability")
	{
		reliability.Use(middleware.JWTAuthMiddleware(""))
		reliability.GET("/score/:workerID", hb.Reliability.GetScoreHandler)
		reliability.POST("/recompute/:workerID", hb.Reliability.RecomputeHandler)
		reliability.GET("/history/:workerID", hb.Reliability.HistoryHandler)
	}
}

// RegisterWalletRoutes registers worker wallet endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	wallets := r.Group("/api/wallets")
	{
		wallets.Use(middleware.JWTAuthMiddleware("worker"))
		wallets.GET("/:workerID", hb.Wallet.GetWalletHandler)
		wallets.GET("/:workerID/ledger", hb.Wallet.GetLedgerHandler)
		wallets.POST("/:workerID/withdraw", hb.Wallet.WithdrawHandler)
	}
}

// RegisterReviewRoutes registers review endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/worker/:workerID", hb.Review.ListWorkerHandler)
		reviews.POST("", middleware.JWTAuthMiddleware("business"), hb.Review.SubmitHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProfileRoutes(r, hb)
	RegisterJobRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterComplianceRoutes(r, hb)
	RegisterReliabilityRoutes(r, hb)
	RegisterWalletRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterHealthRoute(r)
}
