package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/routes"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/storage"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the reservation dashboard
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

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", routes.CreateReservation)
		reservation.Get("/", routes.GetReservations)
		reservation.Get("/{id:uint}", routes.GetReservation)
		reservation.Patch("/{id:uint}/status", routes.UpdateReservationStatus)
		reservation.Post("/{id:uint}/cancel", routes.CancelReservation)
		reservation.Patch("/{id:uint}/dates", routes.RescheduleReservation)
	}

	calendar := app.Party("/api/calendar")
	{
		calendar.Get("/{year:int}/{month:int}", routes.GetMonthOccupancy)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/", routes.CheckAvailability)
	}

	client := app.Party("/api/client")
	{
		client.Get("/", routes.GetClients)
		client.Get("/taxid/{taxID}", routes.GetClientByTaxID)
		client.Get("/{id:uint}/reservations", routes.GetClientReservations)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	app.Listen(":" + port)
}
