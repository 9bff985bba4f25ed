package routes

import (
	"errors"
	"log"

	"github.com/kataras/iris/v12"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/booking"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/storage"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/utils"
)

// GetClients lists guests, optionally filtered by a name search, paginated
// through the standard page envelope.
func GetClients(ctx iris.Context) {
	q := ctx.URLParamDefault("q", "")
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Client{})
	if q != "" {
		query = query.Where("lower(full_name) LIKE lower(?)", "%"+q+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "store_error", "Failed to fetch clients")
		return
	}

	var clients []models.Client
	if err := query.
		Order("full_name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&clients).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "store_error", "Failed to fetch clients")
		return
	}

	utils.JSONPage(ctx, clients, page, perPage, total)
}

// GetClientByTaxID resolves a guest by CPF, used by the reservation form to
// prefill known clients. A miss is a normal outcome, not a fault; any other
// store error is.
func GetClientByTaxID(ctx iris.Context) {
	taxID := utils.NormalizeTaxID(ctx.Params().Get("taxID"))
	if taxID == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid CPF")
		return
	}

	store := storage.NewReservationStore(storage.DB)
	client, err := store.ClientByTaxID(taxID)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			utils.CreateNotFound(ctx)
			return
		}
		log.Printf("client lookup failed for tax id %s: %v", taxID, err)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    client,
	})
}

// GetClientReservations lists all stays of one guest, newest first.
func GetClientReservations(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)
	if id == 0 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid client ID")
		return
	}

	var reservations []models.Reservation
	if err := storage.DB.
		Where("client_id = ?", id).
		Order("check_in DESC").
		Find(&reservations).Error; err != nil {
		utils.JSONError(ctx, iris.StatusInternalServerError, "store_error", "Failed to fetch client reservations")
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    reservations,
	})
}
