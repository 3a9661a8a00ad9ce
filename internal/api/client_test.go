package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/customers/abc" {
			t.Errorf("path = %s, want /api/customers/abc", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok-123")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"guid":"abc","state":"created"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	client.SetToken("tok-123")

	var got struct {
		GUID  string `json:"guid"`
		State string `json:"state"`
	}
	if err := client.Get(context.Background(), "/api/customers/abc", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.GUID != "abc" || got.State != "created" {
		t.Errorf("decoded = %+v, want guid=abc state=created", got)
	}
}

func TestClient_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		var body struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Type != "individual" {
			t.Errorf("type = %q, want individual", body.Type)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"guid":"new-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	var got struct {
		GUID string `json:"guid"`
	}
	err := client.Post(context.Background(), "/api/customers", map[string]string{"type": "individual"}, &got)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if got.GUID != "new-1" {
		t.Errorf("guid = %q, want new-1", got.GUID)
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error_message":"invalid asset"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	err := client.Get(context.Background(), "/api/accounts/bad", nil)
	if err == nil {
		t.Fatal("Get() expected error, got nil")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *Error", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", apiErr.Status)
	}
	if apiErr.Method != http.MethodGet || apiErr.Path != "/api/accounts/bad" {
		t.Errorf("Method/Path = %s %s, want GET /api/accounts/bad", apiErr.Method, apiErr.Path)
	}
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want empty", got)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	if err := client.Get(context.Background(), "/api/banks", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}
