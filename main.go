package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rentroost/rentroost-api/config"
	"github.com/rentroost/rentroost-api/handlers"
	"github.com/rentroost/rentroost-api/middleware"
	"github.com/rentroost/rentroost-api/routes"
	"github.com/rentroost/rentroost-api/services"
	"github.com/rentroost/rentroost-api/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	log.Println("✅ Database connected successfully")

	if err := config.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	go scheduleReminderSweep(db)

	wsHandler := handlers.NewWSHandler()

	router := gin.Default()

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	allowedOrigins := []string{frontendURL}
	if extra := os.Getenv("CORS_EXTRA_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins = append(allowedOrigins, origin)
			}
		}
	}

	log.Printf("🌍 CORS: Allowing origins:")
	for _, origin := range allowedOrigins {
		log.Printf("   - %s", origin)
	}

	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(func(c *gin.Context) {
		start := time.Now()
		log.Printf("📨 %s %s from %s", c.Request.Method, c.Request.URL.Path, c.ClientIP())
		c.Next()
		duration := time.Since(start)
		log.Printf("✅ %s %s - %d (%v)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration)
	})

	router.Use(middleware.RateLimiter())

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, db)
		routes.SetupAdminRoutes(v1, db)

		// WebSocket upgrade carries the token as a query parameter.
		v1.GET("/ws", middleware.AuthMiddleware(), wsHandler.HandleWS)

		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.SetupBuildingRoutes(protected, db, wsHandler)
			routes.SetupExpenseRoutes(protected, db, wsHandler)
			routes.SetupReminderRoutes(protected, db, wsHandler)
			routes.SetupReportRoutes(protected, db)
			routes.SetupUserRoutes(protected, db)
		}

		portal := v1.Group("/")
		portal.Use(middleware.PortalAuthMiddleware())
		routes.SetupPortalRoutes(v1, portal, db)
	}

	router.Static("/uploads", handlers.UploadDir())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.LogStartup("RentRoost API", "1.0.0", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// scheduleReminderSweep runs the reminder dispatch once per minute. Reminders
// match on local wall-clock HH:MM, so a sweep skipped under load simply loses
// that minute's window; it never double-sends.
func scheduleReminderSweep(db *sql.DB) {
	sms := services.NewSMSService()
	if !sms.Configured() {
		log.Println("⚠️  Twilio not configured, reminders will complete without SMS")
	}
	dispatcher := services.NewReminderDispatcher(services.NewReminderService(db), sms)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for now := range ticker.C {
		sweepReminders(dispatcher, now)
	}
}

func sweepReminders(dispatcher *services.ReminderDispatcher, now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	processed, err := dispatcher.ProcessDue(ctx, now)
	if err != nil {
		log.Printf("❌ Reminder sweep failed: %v", err)
		return
	}
	if processed > 0 {
		log.Printf("⏰ Processed %d due reminders", processed)
	}
}
