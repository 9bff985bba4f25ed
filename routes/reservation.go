package routes

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/booking"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/services"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/storage"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/utils"
)

var bgContext = context.Background()

type CreateReservationInput struct {
	FullName       string   `json:"fullName" validate:"required"`
	TaxID          string   `json:"taxID" validate:"required"`
	NationalID     string   `json:"nationalID"`
	Phone          string   `json:"phone" validate:"required"`
	Email          string   `json:"email" validate:"omitempty,email"`
	AddressZipCode string   `json:"addressZipCode"`
	AddressStreet  string   `json:"addressStreet"`
	CheckIn        string   `json:"checkIn" validate:"required"`
	CheckOut       string   `json:"checkOut" validate:"required"`
	GuestsCount    int      `json:"guestsCount" validate:"required,min=1"`
	TotalAmount    float64  `json:"totalAmount" validate:"min=0"`
	DepositAmount  *float64 `json:"depositAmount"`
	DepositDate    string   `json:"depositDate"`
	PaymentMethod  string   `json:"paymentMethod" validate:"omitempty,oneof=pix credit_card debit_card cash bank_transfer"`
	Notes          string   `json:"notes"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

type RescheduleInput struct {
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

// newManager wires the lifecycle manager over the global DB connection.
func newManager() *booking.Manager {
	store := storage.NewReservationStore(storage.DB)
	engine := booking.NewEngine(store, booking.PolicyFromEnv())
	return booking.NewManager(store, engine, services.NewViaCEP())
}

func CreateReservation(ctx iris.Context) {
	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !utils.ValidateTaxID(input.TaxID) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid CPF")
		return
	}

	if input.AddressZipCode != "" && !utils.ValidateZipCode(input.AddressZipCode) {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid CEP")
		return
	}

	checkIn, err := time.Parse("2006-01-02", input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-in date format")
		return
	}
	checkOut, err := time.Parse("2006-01-02", input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-out date format")
		return
	}

	var depositDate *time.Time
	if input.DepositDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DepositDate)
		if err != nil {
			utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid deposit date format")
			return
		}
		depositDate = &parsed
	}

	reservation, err := newManager().Create(booking.CreateInput{
		Client: booking.ClientInput{
			FullName:       input.FullName,
			TaxID:          utils.NormalizeTaxID(input.TaxID),
			NationalID:     input.NationalID,
			Phone:          utils.FormatPhoneNumber(input.Phone),
			Email:          input.Email,
			AddressZipCode: utils.NormalizeZipCode(input.AddressZipCode),
			AddressStreet:  input.AddressStreet,
		},
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		GuestsCount:   input.GuestsCount,
		TotalAmount:   input.TotalAmount,
		DepositAmount: input.DepositAmount,
		DepositDate:   depositDate,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	storage.CacheInvalidate(bgContext, "calendar:*")

	// Confirmation email must never block or reverse the write.
	go sendConfirmationEmail(reservation)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation created successfully",
		"data":    reservation,
	})
}

// GetReservations lists stays newest first, paginated through the standard
// page envelope.
func GetReservations(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var total int64
	if err := storage.DB.Model(&models.Reservation{}).Count(&total).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "store_error", "Failed to fetch reservations")
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.
		Preload("Client").
		Order("check_in DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reservations).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "store_error", "Failed to fetch reservations")
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

func GetReservation(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid reservation ID")
		return
	}

	store := storage.NewReservationStore(storage.DB)
	reservation, err := store.ReservationByID(id)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    reservation,
	})
}

// UpdateReservationStatus drives the lifecycle transitions: pending ->
// confirmed (with an availability re-check), non-terminal -> cancelled,
// confirmed -> completed.
func UpdateReservationStatus(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid reservation ID")
		return
	}

	var input UpdateStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	manager := newManager()
	var (
		reservation *models.Reservation
		err         error
	)
	switch input.Status {
	case models.StatusConfirmed:
		reservation, err = manager.Confirm(id)
	case models.StatusCancelled:
		reservation, err = manager.Cancel(id)
	case models.StatusCompleted:
		reservation, err = manager.Complete(id)
	}
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	storage.CacheInvalidate(bgContext, "calendar:*")

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation status updated",
		"data":    reservation,
	})
}

func CancelReservation(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid reservation ID")
		return
	}

	reservation, err := newManager().Cancel(id)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	storage.CacheInvalidate(bgContext, "calendar:*")

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation cancelled successfully",
		"data":    reservation,
	})
}

func RescheduleReservation(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid reservation ID")
		return
	}

	var input RescheduleInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := time.Parse("2006-01-02", input.CheckIn)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-in date format")
		return
	}
	checkOut, err := time.Parse("2006-01-02", input.CheckOut)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-out date format")
		return
	}

	reservation, err := newManager().Reschedule(id, checkIn, checkOut)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	storage.CacheInvalidate(bgContext, "calendar:*")

	ctx.JSON(iris.Map{
		"success": true,
		"message": "Reservation rescheduled successfully",
		"data":    reservation,
	})
}

func sendConfirmationEmail(reservation *models.Reservation) {
	mailer := services.NewMailer()
	if err := mailer.SendReservationConfirmation(reservation); err != nil {
		log.Printf("confirmation email for reservation %d failed: %v", reservation.ID, err)
	}
}

// handleBookingError maps the engine taxonomy onto HTTP responses.
// SlotUnavailable is a business outcome (409 with a friendly message), not
// a server fault; StoreUnavailable and unknown errors stay generic.
func handleBookingError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, booking.ErrInvalidInterval),
		errors.Is(err, booking.ErrInvalidGuestCount),
		errors.Is(err, booking.ErrInvalidFinancials):
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(ctx, iris.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(ctx, iris.StatusConflict, "slot_unavailable", "These dates are no longer available")
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Reservation not found")
	default:
		log.Printf("reservation store error: %v", err)
		utils.CreateInternalServerError(ctx)
	}
}
