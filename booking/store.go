package booking

import (
	"time"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

// Store is the narrow read/write contract the engine needs from the
// reservation database. The real implementation lives in the storage
// package; tests use an in-memory fake.
//
// ReservationsOverlapping must return a superset of the reservations whose
// interval overlaps [rangeStart, rangeEnd): the predicate is an OR of the
// two bound comparisons (check_in <= rangeEnd OR check_out >= rangeStart),
// so a long stay spanning the entire range is never dropped. Callers do the
// precise per-reservation overlap filtering in memory.
type Store interface {
	ReservationsOverlapping(rangeStart, rangeEnd time.Time) ([]models.Reservation, error)
	ReservationByID(id uint) (*models.Reservation, error)
	ClientByTaxID(taxID string) (*models.Client, error)
	InsertClient(client *models.Client) error
	UpdateClient(client *models.Client) error
	// InsertReservation must fail with ErrSlotUnavailable when the
	// storage-level overlap constraint rejects the write.
	InsertReservation(reservation *models.Reservation) error
	UpdateReservation(reservation *models.Reservation) error
}

// AddressLookup enriches a client address from a postal code. Best-effort:
// failures must never block a reservation.
type AddressLookup interface {
	StreetForZip(zipCode string) (string, error)
}
