package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStreetForZip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ws/01310100/json/":
			w.Write([]byte(`{"logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/ws/99999999/json/":
			w.Write([]byte(`{"erro":true}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	lookup := NewViaCEPWithBase(server.URL)

	street, err := lookup.StreetForZip("01310-100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if street != "Avenida Paulista, Bela Vista - São Paulo/SP" {
		t.Fatalf("unexpected address: %q", street)
	}

	if _, err := lookup.StreetForZip("99999-999"); err == nil {
		t.Fatal("expected error for unknown CEP")
	}

	if _, err := lookup.StreetForZip("1234"); err == nil {
		t.Fatal("expected error for malformed CEP")
	}
}

func TestStreetForZipServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := NewViaCEPWithBase(server.URL).StreetForZip("01310-100"); err == nil {
		t.Fatal("expected error when the API is down")
	}
}
