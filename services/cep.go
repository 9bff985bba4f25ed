package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/utils"
)

// ViaCEP resolves Brazilian postal codes to street addresses through the
// public viacep.com.br API. It implements booking.AddressLookup; callers
// treat every failure as non-fatal.
type ViaCEP struct {
	client  *http.Client
	baseURL string
}

func NewViaCEP() *ViaCEP {
	return &ViaCEP{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://viacep.com.br",
	}
}

// NewViaCEPWithBase is used by tests to point at a local server.
func NewViaCEPWithBase(baseURL string) *ViaCEP {
	v := NewViaCEP()
	v.baseURL = baseURL
	return v
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// StreetForZip returns "street, district - city/state" for a CEP, or an
// error when the code is malformed, unknown or the API is unreachable.
func (v *ViaCEP) StreetForZip(zipCode string) (string, error) {
	cep := utils.NormalizeZipCode(zipCode)
	if len(cep) != 8 {
		return "", fmt.Errorf("invalid CEP %q", zipCode)
	}

	resp, err := v.client.Get(fmt.Sprintf("%s/ws/%s/json/", v.baseURL, cep))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("viacep returned status %d", resp.StatusCode)
	}

	var data viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.Erro {
		return "", fmt.Errorf("CEP %s not found", cep)
	}

	return fmt.Sprintf("%s, %s - %s/%s", data.Logradouro, data.Bairro, data.Localidade, data.UF), nil
}
