package publicapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/app"
	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

func newTestServer(t *testing.T) (*webserver.WebServer, *app.Application) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{
		System: config.SysConfig{Appid: "test", Location: "UTC", Workdir: dir},
		Web:    config.WebConfig{Host: "127.0.0.1", Port: 0, Secret: "test-secret", JwtExpireHours: 1},
		Store:  config.StoreConfig{Path: "test.db", BackupKeep: 2},
		Smtp:   config.SmtpConfig{Enabled: false},
		Logger: config.LogConfig{Mode: "development", FileEnable: false},
	}

	a := app.NewApplication(cfg)
	if err := a.Init(cfg); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Release)

	ws := webserver.Init(a)
	InitRouter()
	return ws, a
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, ws *webserver.WebServer, method, path, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ws.Echo().ServeHTTP(rec, req)

	var env apiEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestListCarsAndCategoryFilter(t *testing.T) {
	ws, a := newTestServer(t)

	rec, env := doJSON(t, ws, http.MethodGet, "/api/cars", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list cars: %d %s", rec.Code, rec.Body.String())
	}
	var cars []domain.Car
	if err := json.Unmarshal(env.Data, &cars); err != nil {
		t.Fatal(err)
	}
	if len(cars) != len(a.Store().Cars()) {
		t.Errorf("expected %d cars, got %d", len(a.Store().Cars()), len(cars))
	}

	rec, env = doJSON(t, ws, http.MethodGet, "/api/cars?category=suv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("filtered list: %d", rec.Code)
	}
	if err := json.Unmarshal(env.Data, &cars); err != nil {
		t.Fatal(err)
	}
	for _, car := range cars {
		if car.Category != domain.CategorySuv {
			t.Errorf("filter leaked category %q", car.Category)
		}
	}

	rec, _ = doJSON(t, ws, http.MethodGet, "/api/cars?category=submarine", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", rec.Code)
	}
}

func TestGetCarAndSiteConfig(t *testing.T) {
	ws, _ := newTestServer(t)

	rec, env := doJSON(t, ws, http.MethodGet, "/api/cars/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get car: %d", rec.Code)
	}
	var car domain.Car
	if err := json.Unmarshal(env.Data, &car); err != nil {
		t.Fatal(err)
	}
	if car.ID != 1 {
		t.Errorf("got car %d, want 1", car.ID)
	}

	rec, _ = doJSON(t, ws, http.MethodGet, "/api/cars/999999", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing car, got %d", rec.Code)
	}

	rec, env = doJSON(t, ws, http.MethodGet, "/api/site", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("site config: %d", rec.Code)
	}
	var site domain.SiteConfig
	if err := json.Unmarshal(env.Data, &site); err != nil {
		t.Fatal(err)
	}
	if site.Contact.Phone == "" {
		t.Error("seeded site config has no contact phone")
	}
}

func TestCreateBookingSnapshotsCarName(t *testing.T) {
	ws, a := newTestServer(t)

	body := `{
		"carId": 1,
		"fullName": "  Ahmed Al Mansoori ",
		"phoneNumber": "+971501234567",
		"email": "ahmed@example.com",
		"pickupLocation": "Dubai Airport T3",
		"pickupTime": "2026-09-01T10:00",
		"dropoffLocation": "Al Barsha",
		"dropoffTime": "2026-09-05T10:00",
		"currentLocation": "Dubai"
	}`
	rec, env := doJSON(t, ws, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create booking: %d %s", rec.Code, rec.Body.String())
	}
	var booking domain.Booking
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(booking.ID, "booking-") {
		t.Errorf("booking id = %q", booking.ID)
	}
	if booking.Status != domain.BookingStatusNew {
		t.Errorf("status = %q, want %q", booking.Status, domain.BookingStatusNew)
	}
	if booking.FullName != "Ahmed Al Mansoori" {
		t.Errorf("full name not trimmed: %q", booking.FullName)
	}
	seeded, _ := a.Store().GetCar(1)
	if booking.CarName != seeded.Name {
		t.Errorf("car name not snapshotted: %+v", booking.CarName)
	}
	if len(a.Store().Bookings()) != 1 {
		t.Error("booking not persisted")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	ws, a := newTestServer(t)

	// phone missing
	body := `{
		"carId": 1,
		"fullName": "Ahmed",
		"pickupLocation": "Dubai Airport T3",
		"pickupTime": "2026-09-01T10:00",
		"dropoffLocation": "Al Barsha",
		"dropoffTime": "2026-09-05T10:00",
		"currentLocation": "Dubai"
	}`
	rec, _ := doJSON(t, ws, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing phone, got %d", rec.Code)
	}
	if len(a.Store().Bookings()) != 0 {
		t.Error("invalid booking was persisted")
	}
}

func TestBookingForDeletedCarUsesFallbackName(t *testing.T) {
	ws, a := newTestServer(t)
	if err := a.Store().DeleteCar(1); err != nil {
		t.Fatal(err)
	}

	body := `{
		"carId": 1,
		"fullName": "Ahmed",
		"phoneNumber": "+971501234567",
		"pickupLocation": "Dubai Airport T3",
		"pickupTime": "2026-09-01T10:00",
		"dropoffLocation": "Al Barsha",
		"dropoffTime": "2026-09-05T10:00",
		"currentLocation": "Dubai"
	}`
	rec, env := doJSON(t, ws, http.MethodPost, "/api/bookings", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create booking: %d %s", rec.Code, rec.Body.String())
	}
	var booking domain.Booking
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatal(err)
	}
	if booking.CarName != domain.UnknownCarName {
		t.Errorf("expected fallback name, got %+v", booking.CarName)
	}
}

func TestLanguagePreference(t *testing.T) {
	ws, a := newTestServer(t)

	rec, env := doJSON(t, ws, http.MethodGet, "/api/language", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get language: %d", rec.Code)
	}
	var data struct {
		Language string `json:"language"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Language != domain.LangAr {
		t.Errorf("default language = %q, want %q", data.Language, domain.LangAr)
	}

	rec, _ = doJSON(t, ws, http.MethodPut, "/api/language", `{"language":"en"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set language: %d %s", rec.Code, rec.Body.String())
	}
	if a.Store().Language() != domain.LangEn {
		t.Errorf("language not persisted: %q", a.Store().Language())
	}

	rec, _ = doJSON(t, ws, http.MethodPut, "/api/language", `{"language":"fr"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported language, got %d", rec.Code)
	}
	if a.Store().Language() != domain.LangEn {
		t.Error("rejected tag overwrote stored language")
	}
}
