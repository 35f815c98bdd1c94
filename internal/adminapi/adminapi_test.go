package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/app"
	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

const testAdminPassword = "test-admin-pass"

func newTestServer(t *testing.T) (*webserver.WebServer, *app.Application) {
	t.Helper()
	t.Setenv("YALLARENT_ADMIN_PASSWORD", testAdminPassword)

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

func doJSON(t *testing.T, ws *webserver.WebServer, method, path, token, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ws.Echo().ServeHTTP(rec, req)

	var env apiEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func loginAdmin(t *testing.T, ws *webserver.WebServer) string {
	t.Helper()
	rec, env := doJSON(t, ws, http.MethodPost, "/api/admin/login", "",
		`{"username":"admin","password":"`+testAdminPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("no token in login response: %s", rec.Body.String())
	}
	return data.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ws, _ := newTestServer(t)

	rec, _ := doJSON(t, ws, http.MethodPost, "/api/admin/login", "",
		`{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", rec.Code)
	}

	rec, _ = doJSON(t, ws, http.MethodPost, "/api/admin/login", "",
		`{"username":"ghost","password":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", rec.Code)
	}
}

func TestAdminGateRequiresToken(t *testing.T) {
	ws, _ := newTestServer(t)

	rec, _ := doJSON(t, ws, http.MethodGet, "/api/admin/cars", "", "")
	if rec.Code != http.StatusUnauthorized && rec.Code != http.StatusBadRequest {
		t.Errorf("expected auth failure without token, got %d", rec.Code)
	}

	token := loginAdmin(t, ws)
	rec, env := doJSON(t, ws, http.MethodGet, "/api/admin/cars", token, "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("expected 200 with token, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestCarCRUDOverHTTP(t *testing.T) {
	ws, a := newTestServer(t)
	token := loginAdmin(t, ws)
	baseline := len(a.Store().Cars())

	carBody := `{
		"name": {"en": "Hyundai Accent", "ar": "هيونداي أكسنت"},
		"category": "economy",
		"images": ["/img/accent.jpg"],
		"specs": {
			"fuel": {"en": "Petrol", "ar": "بنزين"},
			"capacity": {"en": "5 Seats", "ar": "5 مقاعد"},
			"transmission": {"en": "Automatic", "ar": "أوتوماتيك"}
		},
		"price": {"daily": 80, "weekly": 480}
	}`

	rec, env := doJSON(t, ws, http.MethodPost, "/api/admin/cars", token, carBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("create car failed: %d %s", rec.Code, rec.Body.String())
	}
	var created domain.Car
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 {
		t.Fatal("created car has no id")
	}
	if len(a.Store().Cars()) != baseline+1 {
		t.Fatal("car not appended to store")
	}

	// invalid category rejected
	rec, _ = doJSON(t, ws, http.MethodPost, "/api/admin/cars", token,
		strings.Replace(carBody, `"economy"`, `"spaceship"`, 1))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid category, got %d", rec.Code)
	}

	// whole-record replace
	edited := strings.Replace(carBody, "Hyundai Accent", "Hyundai Accent 2026", 1)
	rec, _ = doJSON(t, ws, http.MethodPut, "/api/admin/cars/"+itoa(created.ID), token, edited)
	if rec.Code != http.StatusOK {
		t.Fatalf("update car failed: %d %s", rec.Code, rec.Body.String())
	}
	got, found := a.Store().GetCar(created.ID)
	if !found || got.Name.En != "Hyundai Accent 2026" {
		t.Errorf("car not replaced: %+v", got)
	}

	rec, _ = doJSON(t, ws, http.MethodDelete, "/api/admin/cars/"+itoa(created.ID), token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete car failed: %d", rec.Code)
	}
	if _, found := a.Store().GetCar(created.ID); found {
		t.Error("car still present after delete")
	}
}

func TestDashboardAggregates(t *testing.T) {
	ws, a := newTestServer(t)
	token := loginAdmin(t, ws)

	_, _ = a.Store().CreateCustomer(domain.Customer{
		Name: "Late", Phone: "1", CarID: 1,
		RentalDate: "2020-01-01", ReturnDate: "2020-01-10",
		TotalAmount: 1000, PaidAmount: 300,
	})
	_, _ = a.Store().CreateCustomer(domain.Customer{
		Name: "Paid", Phone: "2", CarID: 1,
		RentalDate: "2020-01-01", ReturnDate: "2099-01-10",
		TotalAmount: 500, PaidAmount: 500,
	})

	rec, env := doJSON(t, ws, http.MethodGet, "/api/admin/dashboard", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d", rec.Code)
	}
	var d struct {
		TotalCustomers int     `json:"total_customers"`
		LateCustomers  int     `json:"late_customers"`
		TotalEarnings  float64 `json:"total_earnings"`
	}
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatal(err)
	}
	if d.TotalCustomers != 2 || d.LateCustomers != 1 || d.TotalEarnings != 800 {
		t.Errorf("unexpected dashboard: %+v", d)
	}
}

func TestNotificationsThreshold(t *testing.T) {
	ws, a := newTestServer(t)
	token := loginAdmin(t, ws)

	_, _ = a.Store().CreateCustomer(domain.Customer{
		Name: "Eligible", Phone: "1", CarID: 1, ReturnDate: "2020-01-01",
		TotalAmount: 1200, PaidAmount: 100,
	})
	_, _ = a.Store().CreateCustomer(domain.Customer{
		Name: "Boundary", Phone: "2", CarID: 1, ReturnDate: "2020-01-01",
		TotalAmount: 1000, PaidAmount: 500,
	})

	rec, env := doJSON(t, ws, http.MethodGet, "/api/admin/notifications", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("notifications failed: %d", rec.Code)
	}
	var data struct {
		Threshold float64 `json:"threshold"`
		Customers []struct {
			Remaining float64 `json:"remaining"`
		} `json:"customers"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Threshold != 500 {
		t.Errorf("threshold = %v, want 500", data.Threshold)
	}
	// balance of exactly 500 is excluded
	if len(data.Customers) != 1 || data.Customers[0].Remaining != 1100 {
		t.Errorf("unexpected reminder list: %+v", data.Customers)
	}

	// SMTP disabled, so send reports sent=false but still lists entries
	rec, env = doJSON(t, ws, http.MethodPost, "/api/admin/notifications/send", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("send failed: %d %s", rec.Code, rec.Body.String())
	}
	var sendResult struct {
		Sent  bool `json:"sent"`
		Count int  `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &sendResult); err != nil {
		t.Fatal(err)
	}
	if sendResult.Sent || sendResult.Count != 1 {
		t.Errorf("unexpected send result: %+v", sendResult)
	}
}

func TestExportCustomersCSV(t *testing.T) {
	ws, a := newTestServer(t)
	token := loginAdmin(t, ws)

	_, _ = a.Store().CreateCustomer(domain.Customer{Name: "A", Phone: "1", CarID: 1, ReturnDate: "2026-01-01"})
	_, _ = a.Store().CreateCustomer(domain.Customer{Name: "B", Phone: "2", CarID: 1, ReturnDate: "2026-01-01"})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/export/customers", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	ws.Echo().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("export failed: %d", rec.Code)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// header + 2 rows
	if len(lines) != 3 {
		t.Errorf("expected 3 CSV lines, got %d: %q", len(lines), rec.Body.String())
	}
}

func TestMutationsAreAudited(t *testing.T) {
	ws, a := newTestServer(t)
	token := loginAdmin(t, ws)

	_, _ = doJSON(t, ws, http.MethodDelete, "/api/admin/cars/1", token, "")

	found := false
	for _, entry := range a.Store().OprLogs() {
		if entry.OptAction == "delete_car" {
			found = true
			break
		}
	}
	if !found {
		t.Error("delete_car not recorded in operator log")
	}

	rec, _ := doJSON(t, ws, http.MethodGet, "/api/admin/oprlog?page=1&page_size=10", token, "")
	if rec.Code != http.StatusOK {
		t.Errorf("oprlog listing failed: %d", rec.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
