package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const pikachuJSON = `{
	"id": 25,
	"name": "pikachu",
	"height": 4,
	"weight": 60,
	"sprites": {"front_default": "https://sprites.example/25.png"},
	"types": [{"type": {"name": "electric"}}],
	"stats": [
		{"base_stat": 35, "stat": {"name": "hp"}},
		{"base_stat": 55, "stat": {"name": "attack"}}
	]
}`

func TestGetByNameOrID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/pikachu", "/pokemon/25":
			w.Write([]byte(pikachuJSON))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	got, err := client.GetByNameOrID(context.Background(), "Pikachu")
	if err != nil {
		t.Fatalf("GetByNameOrID() error: %v", err)
	}
	if got.ID != 25 || got.Name != "pikachu" {
		t.Errorf("unexpected pokemon: %+v", got)
	}
	if got.Sprite != "https://sprites.example/25.png" {
		t.Errorf("sprite = %q", got.Sprite)
	}
	if len(got.Types) != 1 || got.Types[0] != "electric" {
		t.Errorf("types = %v", got.Types)
	}
	if got.Stats["hp"] != 35 {
		t.Errorf("stats = %v", got.Stats)
	}
}

func TestGetByNameOrIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.GetByNameOrID(context.Background(), "missingno")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByNameOrIDServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.GetByNameOrID(context.Background(), "pikachu")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGetByNameOrIDNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL, time.Second)

	_, err := client.GetByNameOrID(context.Background(), "pikachu")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for connection failure, got %v", err)
	}
}

func TestGetByNameOrIDEmptyTerm(t *testing.T) {
	client := NewClient("http://unused.example", time.Second)

	if _, err := client.GetByNameOrID(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty term, got %v", err)
	}
}

func TestGetRandom(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(pikachuJSON))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	got, err := client.GetRandom(context.Background())
	if err != nil {
		t.Fatalf("GetRandom() error: %v", err)
	}
	if got.Name != "pikachu" {
		t.Errorf("unexpected pokemon: %+v", got)
	}
	if requested == "/pokemon/" || requested == "" {
		t.Errorf("expected a concrete id to be requested, got %q", requested)
	}
}
