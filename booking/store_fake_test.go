package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

// fakeStore is an in-memory Store. With enforceOverlap set it behaves like
// the production database with the exclusion constraint installed: a second
// confirmed reservation over taken nights is rejected at write time.
type fakeStore struct {
	clients        []models.Client
	reservations   []models.Reservation
	nextClientID   uint
	nextResID      uint
	enforceOverlap bool
	failReads      bool
	failWrites     bool
}

var errFakeDown = errors.New("fake store is down")

func newFakeStore() *fakeStore {
	return &fakeStore{nextClientID: 1, nextResID: 1}
}

func (f *fakeStore) ReservationsOverlapping(rangeStart, rangeEnd time.Time) ([]models.Reservation, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	var out []models.Reservation
	for _, r := range f.reservations {
		// Superset OR predicate, mirroring the production fetch.
		if !r.CheckIn.After(rangeEnd) || !r.CheckOut.Before(rangeStart) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ReservationByID(id uint) (*models.Reservation, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			r := f.reservations[i]
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%w: reservation %d", ErrNotFound, id)
}

func (f *fakeStore) ClientByTaxID(taxID string) (*models.Client, error) {
	if f.failReads {
		return nil, errFakeDown
	}
	for i := range f.clients {
		if f.clients[i].TaxID == taxID {
			c := f.clients[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: client %s", ErrNotFound, taxID)
}

func (f *fakeStore) InsertClient(client *models.Client) error {
	if f.failWrites {
		return errFakeDown
	}
	client.ID = f.nextClientID
	f.nextClientID++
	f.clients = append(f.clients, *client)
	return nil
}

func (f *fakeStore) UpdateClient(client *models.Client) error {
	if f.failWrites {
		return errFakeDown
	}
	for i := range f.clients {
		if f.clients[i].ID == client.ID {
			f.clients[i] = *client
			return nil
		}
	}
	return fmt.Errorf("%w: client %d", ErrNotFound, client.ID)
}

func (f *fakeStore) InsertReservation(reservation *models.Reservation) error {
	if f.failWrites {
		return errFakeDown
	}
	if f.enforceOverlap && reservation.Status == models.StatusConfirmed {
		candidate := Interval{CheckIn: reservation.CheckIn, CheckOut: reservation.CheckOut}
		for _, r := range f.reservations {
			if r.Status != models.StatusConfirmed {
				continue
			}
			if candidate.Overlaps(Interval{CheckIn: r.CheckIn, CheckOut: r.CheckOut}) {
				return fmt.Errorf("%w: rejected by the storage overlap constraint", ErrSlotUnavailable)
			}
		}
	}
	reservation.ID = f.nextResID
	f.nextResID++
	f.reservations = append(f.reservations, *reservation)
	return nil
}

func (f *fakeStore) UpdateReservation(reservation *models.Reservation) error {
	if f.failWrites {
		return errFakeDown
	}
	for i := range f.reservations {
		if f.reservations[i].ID == reservation.ID {
			f.reservations[i] = *reservation
			return nil
		}
	}
	return fmt.Errorf("%w: reservation %d", ErrNotFound, reservation.ID)
}

// seedReservation inserts directly, bypassing the lifecycle.
func (f *fakeStore) seedReservation(status string, checkIn, checkOut time.Time, client models.Client) models.Reservation {
	r := models.Reservation{
		ClientID: client.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   status,
		Client:   client,
	}
	r.ID = f.nextResID
	f.nextResID++
	f.reservations = append(f.reservations, r)
	return r
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
