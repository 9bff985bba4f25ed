package booking

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"golang.org/x/exp/slices"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

var paymentMethods = []string{
	models.PaymentPix,
	models.PaymentCreditCard,
	models.PaymentDebitCard,
	models.PaymentCash,
	models.PaymentBankTransfer,
}

// ClientInput carries the guest data of a reservation request. TaxID is the
// de-duplication key: a second reservation for a known tax id updates the
// existing client record instead of creating a duplicate.
type ClientInput struct {
	FullName       string
	TaxID          string
	NationalID     string
	Phone          string
	Email          string
	AddressZipCode string
	AddressStreet  string
}

// CreateInput is everything the lifecycle manager needs to commit a stay.
// DepositAmount is a pointer so "not supplied" is distinguishable from an
// explicit zero; when nil it defaults to half of TotalAmount.
type CreateInput struct {
	Client        ClientInput
	CheckIn       time.Time
	CheckOut      time.Time
	GuestsCount   int
	TotalAmount   float64
	DepositAmount *float64
	DepositDate   *time.Time
	PaymentMethod string
	Notes         string
}

// Manager orchestrates reservation creation and status transitions.
type Manager struct {
	store     Store
	engine    *Engine
	addresses AddressLookup // optional
}

func NewManager(store Store, engine *Engine, addresses AddressLookup) *Manager {
	return &Manager{store: store, engine: engine, addresses: addresses}
}

// Create validates, re-checks availability and persists a new confirmed
// reservation. Each step is a precondition for the next; the availability
// re-check is the last step before the write to keep the race window
// minimal. Manual staff entries are trusted and committed directly as
// confirmed; there is no separate hold flow.
//
// If the reservation write fails after the client upsert succeeded, the
// client record stays: clients are allowed to exist without reservations.
func (m *Manager) Create(input CreateInput) (*models.Reservation, error) {
	interval, err := NewInterval(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}

	if input.GuestsCount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGuestCount, input.GuestsCount)
	}

	deposit, err := resolveDeposit(input.TotalAmount, input.DepositAmount)
	if err != nil {
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentPix
	}
	if !slices.Contains(paymentMethods, paymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidFinancials, paymentMethod)
	}

	m.enrichAddress(&input.Client)

	available, err := m.engine.IsAvailable(interval, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: %s to %s", ErrSlotUnavailable,
			interval.CheckIn.Format("2006-01-02"), interval.CheckOut.Format("2006-01-02"))
	}

	client, err := m.upsertClient(input.Client)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		ClientID:      client.ID,
		CheckIn:       interval.CheckIn,
		CheckOut:      interval.CheckOut,
		GuestsCount:   input.GuestsCount,
		TotalAmount:   input.TotalAmount,
		DepositAmount: deposit,
		DepositDate:   input.DepositDate,
		PaymentMethod: paymentMethod,
		Status:        models.StatusConfirmed,
		Notes:         input.Notes,
	}
	if err := m.store.InsertReservation(reservation); err != nil {
		// The storage constraint is the authoritative overlap guard; a
		// concurrent committer loses here even after the pre-check passed.
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	reservation.Client = *client
	return reservation, nil
}

// Confirm transitions a pending reservation to confirmed, re-validating
// availability first since pending holds never blocked other bookings.
func (m *Manager) Confirm(id uint) (*models.Reservation, error) {
	reservation, err := m.fetch(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot confirm a %s reservation", ErrInvalidTransition, reservation.Status)
	}

	interval := Interval{CheckIn: toDay(reservation.CheckIn), CheckOut: toDay(reservation.CheckOut)}
	available, err := m.engine.IsAvailable(interval, reservation.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: the held dates were taken", ErrSlotUnavailable)
	}

	reservation.Status = models.StatusConfirmed
	return m.save(reservation)
}

// Cancel moves any non-terminal reservation to cancelled.
func (m *Manager) Cancel(id uint) (*models.Reservation, error) {
	reservation, err := m.fetch(id)
	if err != nil {
		return nil, err
	}
	if reservation.IsTerminal() {
		return nil, fmt.Errorf("%w: reservation already %s", ErrInvalidTransition, reservation.Status)
	}
	reservation.Status = models.StatusCancelled
	return m.save(reservation)
}

// Complete closes out a confirmed stay after checkout.
func (m *Manager) Complete(id uint) (*models.Reservation, error) {
	reservation, err := m.fetch(id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.StatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed stays can complete, got %s", ErrInvalidTransition, reservation.Status)
	}
	reservation.Status = models.StatusCompleted
	return m.save(reservation)
}

// Reschedule moves a reservation to a new interval. A confirmed interval is
// never mutated without re-validating availability, excluding the
// reservation itself from the check.
func (m *Manager) Reschedule(id uint, checkIn, checkOut time.Time) (*models.Reservation, error) {
	interval, err := NewInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	reservation, err := m.fetch(id)
	if err != nil {
		return nil, err
	}
	if reservation.IsTerminal() {
		return nil, fmt.Errorf("%w: reservation already %s", ErrInvalidTransition, reservation.Status)
	}

	available, err := m.engine.IsAvailable(interval, reservation.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: %s to %s", ErrSlotUnavailable,
			interval.CheckIn.Format("2006-01-02"), interval.CheckOut.Format("2006-01-02"))
	}

	reservation.CheckIn = interval.CheckIn
	reservation.CheckOut = interval.CheckOut
	return m.save(reservation)
}

func (m *Manager) fetch(id uint) (*models.Reservation, error) {
	reservation, err := m.store.ReservationByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return reservation, nil
}

func (m *Manager) save(reservation *models.Reservation) (*models.Reservation, error) {
	if err := m.store.UpdateReservation(reservation); err != nil {
		if errors.Is(err, ErrSlotUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return reservation, nil
}

// resolveDeposit applies the fixed 50% default when no deposit was
// supplied. The default is computed once at creation time, never reactively
// recomputed, and never overwrites an explicit caller value.
func resolveDeposit(total float64, deposit *float64) (float64, error) {
	if total < 0 {
		return 0, fmt.Errorf("%w: total amount %0.2f is negative", ErrInvalidFinancials, total)
	}
	if deposit == nil {
		return math.Round(total*50) / 100, nil
	}
	if *deposit < 0 || *deposit > total {
		return 0, fmt.Errorf("%w: deposit %0.2f against total %0.2f", ErrInvalidFinancials, *deposit, total)
	}
	return *deposit, nil
}

// enrichAddress fills the street from the zip code when the caller left it
// blank. Strictly best-effort: lookup failures are logged and ignored.
func (m *Manager) enrichAddress(client *ClientInput) {
	if m.addresses == nil || client.AddressZipCode == "" || client.AddressStreet != "" {
		return
	}
	street, err := m.addresses.StreetForZip(client.AddressZipCode)
	if err != nil {
		log.Printf("address lookup failed for zip %s: %v", client.AddressZipCode, err)
		return
	}
	client.AddressStreet = street
}

func (m *Manager) upsertClient(input ClientInput) (*models.Client, error) {
	existing, err := m.store.ClientByTaxID(input.TaxID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if existing != nil {
		existing.FullName = input.FullName
		existing.NationalID = input.NationalID
		existing.Phone = input.Phone
		existing.Email = input.Email
		existing.AddressZipCode = input.AddressZipCode
		existing.AddressStreet = input.AddressStreet
		if err := m.store.UpdateClient(existing); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return existing, nil
	}

	client := &models.Client{
		FullName:       input.FullName,
		TaxID:          input.TaxID,
		NationalID:     input.NationalID,
		Phone:          input.Phone,
		Email:          input.Email,
		AddressZipCode: input.AddressZipCode,
		AddressStreet:  input.AddressStreet,
	}
	if err := m.store.InsertClient(client); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return client, nil
}
