package main

import (
	"fmt"
	"log"
	"os"

	"bookaroo-server/routes"
	"bookaroo-server/services"
	"bookaroo-server/session"
	"bookaroo-server/storage"
	"bookaroo-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	session.InitializeDefault()

	app := iris.New()
	app.Validator = validator.New()

	// CORS: the widget is embedded on arbitrary customer sites, so echo the
	// origin instead of pinning one.
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetUser)
	}

	property := app.Party("/api/property")
	{
		property.Get("/{id}", routes.GetProperty)
		property.Post("/", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.CreateProperty)
		property.Get("/userid/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetPropertiesByUserID)
		property.Patch("/update/{id}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.UpdateProperty)
		property.Delete("/{id}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.DeleteProperty)
		property.Post("/discounts", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.CreateStayDiscount)
		property.Delete("/discounts/{id}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.DeleteStayDiscount)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/property/{propertyID}", routes.GetPropertyAvailability)
		availability.Post("/block", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.BlockPropertyDates)
		availability.Post("/unblock", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.UnblockPropertyDates)
		availability.Post("/prices", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.SetNightlyPrices)
		availability.Post("/calculate-price", routes.CalculateBookingPrice)
	}

	booking := app.Party("/api/booking")
	{
		booking.Post("/", accessTokenVerifierMiddleware, routes.SubmitBooking)
		booking.Patch("/{id}/status", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.UpdateBookingStatus)
		booking.Delete("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelBooking)
		booking.Get("/property/{id}", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.GetBookingsByPropertyID)
		booking.Get("/host", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.GetHostBookings)
		booking.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserBookings)
	}

	dashboard := app.Party("/api/dashboard", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware)
	{
		dashboard.Get("/metrics", routes.HostDashboardMetrics)
		dashboard.Get("/recent", routes.RecentBookings)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Post("/bookings/expire-pending", routes.ExpirePendingBookings)
	}

	widget := app.Party("/api/widget")
	{
		widget.Get("/config/{widgetKey}", routes.GetWidgetConfig)
		widget.Get("/property/{id}/embed", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.GetWidgetEmbed)
		widget.Post("/property/{id}/regenerate-key", accessTokenVerifierMiddleware, utils.HostOnlyMiddleware, routes.RegenerateWidgetKey)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	scheduler := services.StartScheduler()
	defer scheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
