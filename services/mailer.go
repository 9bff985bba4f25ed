package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

// Mailer sends reservation confirmation emails through a Resend-compatible
// API. Sending is fire-and-forget from the caller's point of view: a
// failure is logged and reported, never allowed to block or reverse a
// reservation write.
type Mailer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	from     string
}

func NewMailer() *Mailer {
	from := os.Getenv("RESEND_FROM")
	if from == "" {
		from = "Plenitur Flats <onboarding@resend.dev>"
	}
	return &Mailer{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: "https://api.resend.com/emails",
		apiKey:   os.Getenv("RESEND_API_KEY"),
		from:     from,
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendReservationConfirmation emails the guest their stay summary and any
// stored document links. No-op when the guest has no email on file.
func (m *Mailer) SendReservationConfirmation(reservation *models.Reservation) error {
	if reservation.Client.Email == "" {
		return nil
	}
	if m.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY is not configured")
	}

	var documents []string
	if reservation.Documents != nil {
		if err := json.Unmarshal(reservation.Documents, &documents); err != nil {
			log.Printf("could not decode document links for reservation %d: %v", reservation.ID, err)
		}
	}

	links := ""
	for _, doc := range documents {
		links += fmt.Sprintf(`<p><a href="%s">Documento da reserva</a></p>`, doc)
	}

	html := fmt.Sprintf(`
		<h1>Olá, %s!</h1>
		<p>Sua reserva está confirmada.</p>
		<p>Check-in: %s<br />Check-out: %s<br />Hóspedes: %d</p>
		<p>Valor total: R$ %.2f — Sinal: R$ %.2f</p>
		%s
		<p>Atenciosamente,<br />Equipe Plenitur Flats</p>`,
		reservation.Client.FullName,
		reservation.CheckIn.Format("02/01/2006"),
		reservation.CheckOut.Format("02/01/2006"),
		reservation.GuestsCount,
		reservation.TotalAmount,
		reservation.DepositAmount,
		links)

	payload, err := json.Marshal(emailPayload{
		From:    m.from,
		To:      []string{reservation.Client.Email},
		Subject: fmt.Sprintf("Reserva Confirmada - %s", reservation.Client.FullName),
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
