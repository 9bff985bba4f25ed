package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/booking"
	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

// ReservationStore is the GORM-backed implementation of booking.Store.
type ReservationStore struct {
	db *gorm.DB
}

func NewReservationStore(db *gorm.DB) *ReservationStore {
	return &ReservationStore{db: db}
}

// ReservationsOverlapping fetches a superset of the reservations touching
// [rangeStart, rangeEnd). The predicate is deliberately an OR of the two
// bound comparisons so a stay spanning the entire range is never dropped;
// callers do the precise overlap filtering in memory.
func (s *ReservationStore) ReservationsOverlapping(rangeStart, rangeEnd time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	result := s.db.
		Preload("Client").
		Where("check_in <= ? OR check_out >= ?", rangeEnd, rangeStart).
		Order("check_in ASC").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}
	return reservations, nil
}

func (s *ReservationStore) ReservationByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Preload("Client").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", booking.ErrNotFound, id)
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationStore) ClientByTaxID(taxID string) (*models.Client, error) {
	var client models.Client
	if err := s.db.Where("tax_id = ?", taxID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client with tax id %s", booking.ErrNotFound, taxID)
		}
		return nil, err
	}
	return &client, nil
}

func (s *ReservationStore) InsertClient(client *models.Client) error {
	return s.db.Create(client).Error
}

func (s *ReservationStore) UpdateClient(client *models.Client) error {
	return s.db.Save(client).Error
}

// InsertReservation persists a new reservation. When the exclusion
// constraint rejects an overlapping confirmed stay, the loser of the race
// gets booking.ErrSlotUnavailable instead of a raw database error.
func (s *ReservationStore) InsertReservation(reservation *models.Reservation) error {
	if err := s.db.Create(reservation).Error; err != nil {
		if isOverlapViolation(err) {
			return fmt.Errorf("%w: rejected by the storage overlap constraint", booking.ErrSlotUnavailable)
		}
		return err
	}
	return nil
}

func (s *ReservationStore) UpdateReservation(reservation *models.Reservation) error {
	if err := s.db.Save(reservation).Error; err != nil {
		if isOverlapViolation(err) {
			return fmt.Errorf("%w: rejected by the storage overlap constraint", booking.ErrSlotUnavailable)
		}
		return err
	}
	return nil
}

// isOverlapViolation matches the exclusion constraint installed in
// performMigrations (SQLSTATE 23P01).
func isOverlapViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "reservations_no_overlap") || strings.Contains(msg, "23P01")
}
