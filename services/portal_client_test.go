package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

const portalResultPage = `<!DOCTYPE html>
<html><body><table>
<tr><td>Suchergebnis</td></tr>
<tr><td>Aktenzeichen</td><td>K 0011/2025</td></tr>
<tr><td>Termin</td><td>Montag, 07. August 2025, 10:00 Uhr</td></tr>
<tr><td>Art der Versteigerung</td><td>Versteigerung im Wege der Zwangsvollstreckung</td></tr>
<tr><td>Objekt/Lage</td><td>Musterstraße 12, 28195 Bremen</td></tr>
<tr><td>Beschreibung</td><td>Reihenhaus mit Garten</td></tr>
<tr><td>Aktenzeichen</td><td>K 0022/2025</td></tr>
<tr><td>Termin</td><td>Dienstag, 09. September 2025, 09:30 Uhr</td></tr>
</table></body></html>`

func newPortalTestClient(baseURL string) *PortalClient {
	return NewPortalClient(&PortalClientConfiguration{
		BaseURL:            baseURL,
		UserAgent:          "portal-test-agent",
		HTTPRequestTimeout: 5 * time.Second,
		RequestRateLimit:   time.Millisecond,
	})
}

func TestListSendsBrowserHeadersAndParsesRows(t *testing.T) {
	var gotAccept, gotAcceptLanguage, gotUserAgent, gotLand string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAcceptLanguage = r.Header.Get("Accept-Language")
		gotUserAgent = r.Header.Get("User-Agent")
		if err := r.ParseForm(); err == nil {
			gotLand = r.PostFormValue("land_abk")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(portalResultPage))
	}))
	defer server.Close()

	client := newPortalTestClient(server.URL)
	entries, err := client.List(context.Background(), models.Land{Name: "Bremen", Short: "hb"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if gotAccept != "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8" {
		t.Errorf("Accept header = %q, want the browser-like value", gotAccept)
	}
	if gotAcceptLanguage != "de-DE,de;q=0.9,en;q=0.5" {
		t.Errorf("Accept-Language header = %q, want the browser-like value", gotAcceptLanguage)
	}
	if gotUserAgent != "portal-test-agent" {
		t.Errorf("User-Agent header = %q, want the configured agent", gotUserAgent)
	}
	if gotLand != "hb" {
		t.Errorf("land_abk form field = %q, want hb", gotLand)
	}

	if len(entries) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.ID != "K 0011/2025" {
		t.Errorf("first entry ID = %q", first.ID)
	}
	if first.AuctionDateText == nil || *first.AuctionDateText != "Montag, 07. August 2025, 10:00 Uhr" {
		t.Errorf("first entry date text = %v", first.AuctionDateText)
	}
	if first.AuctionType == nil || *first.AuctionType != "Versteigerung im Wege der Zwangsvollstreckung" {
		t.Errorf("first entry auction type = %v", first.AuctionType)
	}
	if first.Location == nil || *first.Location != "Musterstraße 12, 28195 Bremen" {
		t.Errorf("first entry location = %v", first.Location)
	}
	if first.Address == nil {
		t.Fatal("first entry has no structured address")
	}
	if first.Address.Street != "Musterstraße 12" || first.Address.Zip != "28195" || first.Address.City != "Bremen" {
		t.Errorf("first entry address = %+v", *first.Address)
	}
	if first.Description == nil || *first.Description != "Reihenhaus mit Garten" {
		t.Errorf("first entry description = %v", first.Description)
	}

	if entries[1].ID != "K 0022/2025" {
		t.Errorf("second entry ID = %q", entries[1].ID)
	}
	if entries[1].Address != nil {
		t.Errorf("second entry address = %+v, want none", *entries[1].Address)
	}
}

func TestListWrapsFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "portal down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newPortalTestClient(server.URL)
	_, err := client.List(context.Background(), models.Land{Name: "Bremen", Short: "hb"})
	if err == nil {
		t.Fatal("List() = nil error, want a fetch failure")
	}

	var serviceErr *shared.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("List() error = %T, want *shared.ServiceError", err)
	}
	if serviceErr.Category != shared.ErrorCategoryNetwork {
		t.Errorf("error category = %q, want network", serviceErr.Category)
	}
	if serviceErr.Code != "PORTAL_FETCH_FAILED" {
		t.Errorf("error code = %q", serviceErr.Code)
	}
}

func TestListHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newPortalTestClient("http://127.0.0.1:0")
	if _, err := client.List(ctx, models.Land{Name: "Bremen", Short: "hb"}); err == nil {
		t.Fatal("List() = nil error with cancelled context")
	}
}
