package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/booking"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/storage"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/utils"
)

// calendarCacheTTL keeps the month view fresh enough; the projection is
// display-only and tolerates transient staleness.
const calendarCacheTTL = 5 * time.Minute

func newEngine() *booking.Engine {
	return booking.NewEngine(storage.NewReservationStore(storage.DB), booking.PolicyFromEnv())
}

// GetMonthOccupancy returns one cell per day of the month plus the leading
// padding of the weekly grid, Redis-cached per month.
func GetMonthOccupancy(ctx iris.Context) {
	year, err := ctx.Params().GetInt("year")
	if err != nil || year < 1 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid year")
		return
	}
	month, err := ctx.Params().GetInt("month")
	if err != nil || month < 1 || month > 12 {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid month")
		return
	}

	cacheKey := fmt.Sprintf("calendar:%04d-%02d", year, month)
	if cached := storage.CacheGet(bgContext, cacheKey); cached != "" {
		var days []booking.CalendarDay
		if err := json.Unmarshal([]byte(cached), &days); err == nil {
			ctx.JSON(iris.Map{"success": true, "data": days, "cached": true})
			return
		}
	}

	days, err := newEngine().ProjectMonth(year, time.Month(month))
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	if encoded, err := json.Marshal(days); err == nil {
		storage.CacheSet(bgContext, cacheKey, string(encoded), calendarCacheTTL)
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data":    days,
	})
}

// CheckAvailability answers whether a candidate interval is bookable.
// Query params: checkIn, checkOut (YYYY-MM-DD), optional exclude
// (reservation id skipped during rescheduling).
func CheckAvailability(ctx iris.Context) {
	checkInStr := ctx.URLParam("checkIn")
	checkOutStr := ctx.URLParam("checkOut")
	if checkInStr == "" || checkOutStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "checkIn and checkOut are required")
		return
	}

	checkIn, err := time.Parse("2006-01-02", checkInStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-in date format")
		return
	}
	checkOut, err := time.Parse("2006-01-02", checkOutStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_input", "Invalid check-out date format")
		return
	}

	interval, err := booking.NewInterval(checkIn, checkOut)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	excludeID := uint(ctx.URLParamIntDefault("exclude", 0))

	available, err := newEngine().IsAvailable(interval, excludeID)
	if err != nil {
		handleBookingError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":   true,
		"available": available,
	})
}
