package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/config"
	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testCSV = "EMP No,Name,Designation,Year,Month,Basic,DA,HRA,IR,SFN,SPAY-TYPIST,P,IT,PT,GSLIC,LIC,FBF\n" +
	"1001,Jane Roe,Clerk,2024,January,10000,2000,1000,0,0,0,0,500,200,0,0,0\n" +
	"1001,Jane Roe,Clerk,2024,February,10000,2000,1000,0,0,0,0,500,200,0,0,0\n" +
	"1002,Ravi,Typist,2024,January,8000,0,0,0,0,0,0,0,100,0,0,0\n"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 10 * time.Second},
		Upload: config.UploadConfig{
			MaxFileSize: 1 << 20,
			MaxWaitTime: time.Second,
			Timeout:     10 * time.Second,
		},
		Session: config.SessionConfig{
			Secret:    "test-secret-0123456789",
			TTL:       time.Hour,
			ClockSkew: 30 * time.Second,
		},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

// newTestServer builds a server for cfg. The service keeps the default size
// limit so the preload always fits; cfg.Upload.MaxFileSize applies to HTTP
// uploads.
func newTestServer(t *testing.T, cfg *config.Config, load bool) (*Server, *core.Service) {
	t.Helper()
	svc := core.NewService(core.Options{
		MaxFileSize: testConfig().Upload.MaxFileSize,
		MaxWait:     cfg.Upload.MaxWaitTime,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if load {
		_, err := svc.Ingest(context.Background(), "Salary.csv", strings.NewReader(testCSV))
		require.NoError(t, err)
	}
	return NewServer(svc, core.NewMemoryPreferences(), cfg), svc
}

func serve(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	return serve(srv, httptest.NewRequest(http.MethodGet, path, nil))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, rec.Code, rec.Body.String())
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, code, resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "value"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("User-Agent", "upload-test")
	return req
}

func loginRequestJSON(empNo string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"empNo":"`+empNo+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func login(t *testing.T, srv *Server, empNo string) string {
	t.Helper()
	rec := serve(srv, loginRequestJSON(empNo))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[LoginResponse](t, rec).Token
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	rec := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestQueries_NoDataset(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	for _, path := range []string{"/api/dataset", "/api/filters", "/api/dashboard", "/api/export.xlsx"} {
		t.Run(path, func(t *testing.T) {
			assertErrorCode(t, get(srv, path), http.StatusConflict, "UPL006")
		})
	}

	rec := get(srv, "/api/history")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[HistoryResponse](t, rec).Entries)
}

func TestUpload(t *testing.T) {
	srv, svc := newTestServer(t, testConfig(), false)

	rec := serve(srv, uploadRequest(t, "/api/upload", "march.csv", testCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[DatasetResponse](t, rec)
	assert.Equal(t, "march.csv", resp.Source)
	assert.Equal(t, 2, resp.Employees)
	assert.Equal(t, 3, resp.Records)
	assert.Equal(t, []string{"January", "February"}, resp.Months)
	assert.Equal(t, 3, resp.Stats.Processed)

	ds, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, resp.ID, ds.ID)

	hist := svc.History()
	require.Len(t, hist, 1)
	assert.Equal(t, "upload-test", hist[0].UserAgent)
	assert.Equal(t, "192.0.2.1", hist[0].IPAddress)
}

func TestUpload_Errors(t *testing.T) {
	small := testConfig()
	small.Upload.MaxFileSize = 10

	tests := []struct {
		name     string
		cfg      *config.Config
		filename string
		content  string
		status   int
		code     string
	}{
		{name: "no file part", cfg: testConfig(), status: http.StatusBadRequest, code: "FILE004"},
		{name: "empty file", cfg: testConfig(), filename: "empty.csv", status: http.StatusBadRequest, code: "FILE005"},
		{name: "blank file", cfg: testConfig(), filename: "blank.csv", content: "\n \r\n", status: http.StatusBadRequest, code: "FILE005"},
		{name: "too large", cfg: small, filename: "big.csv", content: testCSV, status: http.StatusRequestEntityTooLarge, code: "FILE001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, svc := newTestServer(t, tt.cfg, true)
			before, err := svc.Current()
			require.NoError(t, err)

			rec := serve(srv, uploadRequest(t, "/api/upload", tt.filename, tt.content))
			assertErrorCode(t, rec, tt.status, tt.code)

			after, err := svc.Current()
			require.NoError(t, err)
			assert.Same(t, before, after, "failed upload replaced the dataset")

			rec = serve(srv, uploadRequest(t, "/api/upload/preview", tt.filename, tt.content))
			assertErrorCode(t, rec, tt.status, tt.code)
		})
	}
}

func TestUpload_NotMultipart(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(testCSV))
	req.Header.Set("Content-Type", "text/csv")
	assertErrorCode(t, serve(srv, req), http.StatusBadRequest, "FILE004")
}

func TestPreview_DoesNotPublish(t *testing.T) {
	srv, svc := newTestServer(t, testConfig(), false)

	rec := serve(srv, uploadRequest(t, "/api/upload/preview", "preview.csv", testCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	preview := decode[core.PreviewResponse](t, rec)
	assert.Equal(t, 2, preview.Employees)
	assert.Len(t, preview.Samples, 3)
	assert.Empty(t, preview.MissingColumns)

	_, err := svc.Current()
	assert.ErrorIs(t, err, core.ErrNoDataset)
	assert.Empty(t, svc.History())
}

func TestDownloadTemplate(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	rec := get(srv, "/api/template.csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-template.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "EMP No,Name,Designation,Year,Month"))
}

func TestFiltersAndDashboard(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	filters := decode[core.Filters](t, get(srv, "/api/filters"))
	assert.Equal(t, []string{"2024"}, filters.Years)
	assert.Equal(t, []string{"January", "February"}, filters.Months)

	rec := get(srv, "/api/dashboard?year=2024&month=January")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dash := decode[DashboardResponse](t, rec)
	assert.Equal(t, "January 2024", dash.PeriodText)
	assert.Equal(t, 2, dash.Metrics.Employees)
	assert.Equal(t, 20200.0, dash.Metrics.Net.Value)
	assert.Equal(t, "₹20,200", dash.Metrics.Net.Display)
	require.Len(t, dash.Cards, 1)
	assert.Equal(t, "January 2024", dash.Cards[0].Label)

	all := decode[DashboardResponse](t, get(srv, "/api/dashboard"))
	assert.Equal(t, "From January 2024 To February 2024", all.PeriodText)
	require.Len(t, all.Cards, 2)
	assert.Equal(t, "February", all.Cards[0].Month)

	none := decode[DashboardResponse](t, get(srv, "/api/dashboard?year=1999"))
	assert.Equal(t, "No Data Available", none.PeriodText)
	assert.Empty(t, none.Cards)
}

func TestPeriodAndYear(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := get(srv, "/api/periods/2024/January")
	require.Equal(t, http.StatusOK, rec.Code)
	period := decode[PeriodResponse](t, rec)
	assert.Equal(t, 2, period.Employees)
	assert.Equal(t, 21000.0, period.Gross.Value)
	assert.Equal(t, 18000.0, period.Breakdown.Allowances[0].Amount.Value) // Basic
	assert.Equal(t, 800.0, period.Breakdown.TotalDeductions.Value)
	assert.Empty(t, period.Breakdown.Allowances[1].Percent)

	year := decode[PeriodResponse](t, get(srv, "/api/years/2024"))
	assert.Equal(t, "Year 2024", year.Label)
	assert.Equal(t, 3, year.Records)

	assertErrorCode(t, get(srv, "/api/periods/2024/March"), http.StatusNotFound, "EMP003")
	assertErrorCode(t, get(srv, "/api/years/2023"), http.StatusNotFound, "EMP003")
}

func TestExport(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := get(srv, "/api/export.xlsx?year=2024&month=January")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "salary-2024-January.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Records")
}

func TestExport_QuotedFilename(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := get(srv, `/api/export.xlsx?month=Jan%22uary%3B+x`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "attachment", disposition)
	assert.Equal(t, `salary-Jan"uary; x.xlsx`, params["filename"])
}

func TestRecords(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := get(srv, "/api/records?year=2024&month=January")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[RecordsResponse](t, rec)
	assert.Equal(t, "EMP No", resp.Header[0])
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "1001", resp.Records[0]["EMP No"])
	assert.Equal(t, "8000", resp.Records[1]["Basic"])

	all := decode[RecordsResponse](t, get(srv, "/api/records"))
	assert.Equal(t, 3, all.Count)

	empty, _ := newTestServer(t, testConfig(), false)
	assertErrorCode(t, get(empty, "/api/records"), http.StatusConflict, "UPL006")
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := serve(srv, loginRequestJSON(" 1001 "))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Jane Roe", resp.Employee.Name)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLogin_Form(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("empNo=1002"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ravi", decode[LoginResponse](t, rec).Employee.Name)
}

func TestLogin_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		load   bool
		empNo  string
		status int
		code   string
	}{
		{name: "unknown employee", load: true, empNo: "9999", status: http.StatusNotFound, code: "EMP001"},
		{name: "not digits", load: true, empNo: "12a", status: http.StatusBadRequest, code: "EMP004"},
		{name: "blank", load: true, empNo: "  ", status: http.StatusBadRequest, code: "EMP004"},
		{name: "no dataset", load: false, empNo: "1001", status: http.StatusConflict, code: "UPL006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, testConfig(), tt.load)
			rec := serve(srv, loginRequestJSON(tt.empNo))
			assertErrorCode(t, rec, tt.status, tt.code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestMe(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)
	token := login(t, srv, "1001")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	me := decode[EmployeeResponse](t, rec)
	assert.Equal(t, "1001", me.EmpNo)
	assert.Equal(t, 2, me.Months)
	assert.Equal(t, "January 2024 - February 2024", me.PeriodRange)
	assert.Equal(t, 24600.0, me.TotalNet.Value)
	assert.Equal(t, 12300.0, me.AvgNet.Value)
	require.Len(t, me.Records, 2)
	assert.Equal(t, "February", me.Records[0].Month)
	require.NotNil(t, me.Latest)
	assert.Equal(t, "February", me.Latest.Month)

	da, hra := me.Breakdown.Allowances[1], me.Breakdown.Allowances[2]
	assert.Equal(t, "DA", da.Name)
	assert.Equal(t, "20.00", da.Percent)
	assert.Equal(t, "HRA", hra.Name)
	assert.Equal(t, "10.00", hra.Percent)
	assert.Equal(t, "20.00", me.Latest.Breakdown.Allowances[1].Percent)
	assert.Empty(t, me.Breakdown.Allowances[0].Percent)
}

func TestBreakdown_CSVTotals(t *testing.T) {
	const csvTotals = "EMP No,Name,Designation,Year,Month,Basic,DA,HRA,Gross Salary,IT,Total Deductions,Net Salary\n" +
		"1001,Jane Roe,Clerk,2024,January,10000,2000,1000,13500,500,600,12900\n"

	srv, _ := newTestServer(t, testConfig(), false)
	rec := serve(srv, uploadRequest(t, "/api/upload", "totals.csv", csvTotals))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "csv", string(decode[DatasetResponse](t, rec).Mode))

	period := decode[PeriodResponse](t, get(srv, "/api/periods/2024/January"))
	assert.Equal(t, 13500.0, period.Gross.Value)
	assert.Equal(t, 13500.0, period.Breakdown.TotalAllowances.Value)
	assert.Equal(t, 600.0, period.Breakdown.TotalDeductions.Value)

	var components float64
	for _, item := range period.Breakdown.Allowances {
		components += item.Amount.Value
	}
	assert.Equal(t, 13000.0, components)

	req := httptest.NewRequest(http.MethodGet, "/api/me/records/2024/January", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, srv, "1001"))
	rec = serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	record := decode[EmployeeRecordResponse](t, rec).Record
	assert.Equal(t, 13500.0, record.Breakdown.TotalAllowances.Value)
	assert.Equal(t, 12900.0, record.Net.Value)
	assert.Equal(t, "10.00", record.Breakdown.Allowances[2].Percent)
}

func TestMe_Cookie(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)
	token := login(t, srv, "1002")

	req := httptest.NewRequest(http.MethodGet, "/api/me/records/2024/January", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	rec := serve(srv, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[EmployeeRecordResponse](t, rec)
	assert.Equal(t, "Ravi", resp.Employee.Name)
	assert.Equal(t, 7900.0, resp.Record.Net.Value)
	assert.Equal(t, "₹7,900", resp.Record.Net.Display)
}

func TestMyRecord_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)
	token := login(t, srv, "1002")

	req := httptest.NewRequest(http.MethodGet, "/api/me/records/2024/February", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assertErrorCode(t, serve(srv, req), http.StatusNotFound, "EMP002")
}

func TestMe_Unauthorized(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	assertErrorCode(t, get(srv, "/api/me"), http.StatusUnauthorized, "AUTH001")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	assertErrorCode(t, serve(srv, req), http.StatusUnauthorized, "AUTH001")
}

func TestMe_Expired(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	claims := map[string]any{"emp_no": "1001"}
	jwtauth.SetExpiry(claims, time.Now().Add(-time.Hour))
	_, token, err := srv.auth.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assertErrorCode(t, serve(srv, req), http.StatusUnauthorized, "AUTH002")
}

func TestLogout(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), true)

	rec := serve(srv, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestThemePreference(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	rec := get(srv, "/api/preferences/theme")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "light", decode[ThemeResponse](t, rec).Theme)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	client := cookies[0]
	assert.Equal(t, clientCookie, client.Name)

	put := httptest.NewRequest(http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"theme":"Dark"}`))
	put.Header.Set("Content-Type", "application/json")
	put.AddCookie(client)
	rec = serve(srv, put)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "dark", decode[ThemeResponse](t, rec).Theme)

	req := httptest.NewRequest(http.MethodGet, "/api/preferences/theme", nil)
	req.AddCookie(client)
	assert.Equal(t, "dark", decode[ThemeResponse](t, serve(srv, req)).Theme)

	// Another browser is unaffected.
	assert.Equal(t, "light", decode[ThemeResponse](t, get(srv, "/api/preferences/theme")).Theme)

	bad := httptest.NewRequest(http.MethodPut, "/api/preferences/theme", strings.NewReader(`{"theme":"purple"}`))
	bad.Header.Set("Content-Type", "application/json")
	bad.AddCookie(client)
	assertErrorCode(t, serve(srv, bad), http.StatusBadRequest, "PREF001")
}

func TestHTMXErrorFragment(t *testing.T) {
	srv, _ := newTestServer(t, testConfig(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(srv, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Code: UPL006")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2, UploadLimit: 1, LoginLimit: 1}
	srv, _ := newTestServer(t, cfg, false)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, get(srv, "/api/history").Code)
	}
	rec := get(srv, "/api/history")
	assertErrorCode(t, rec, http.StatusTooManyRequests, "RATE001")
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestShutdown_StopsRateLimiters(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 10, UploadLimit: 1, LoginLimit: 1}
	srv, _ := newTestServer(t, cfg, false)
	require.Len(t, srv.limiters, 3)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))

	for _, rl := range srv.limiters {
		select {
		case <-rl.stop:
		default:
			t.Error("rate limiter still running after Shutdown")
		}
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := newRateLimiter(5, time.Minute)
	defer rl.Stop()

	rl.allow("192.0.2.1")
	rl.allow("192.0.2.2")
	rl.visitors["192.0.2.1"].lastReset = time.Now().Add(-3 * time.Minute)

	rl.sweep()
	assert.NotContains(t, rl.visitors, "192.0.2.1")
	assert.Contains(t, rl.visitors, "192.0.2.2")
}

func TestCORS(t *testing.T) {
	cfg := testConfig()
	cfg.Security.AllowedOrigins = []string{"https://dash.example.com"}
	srv, _ := newTestServer(t, cfg, false)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set("Origin", "https://dash.example.com")
	rec := serve(srv, req)
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(srv, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrEmployeeNotFound, http.StatusNotFound},
		{core.ErrNoDataset, http.StatusConflict},
		{core.ErrIngestBusy, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{jwtauth.ErrExpired, http.StatusUnauthorized},
		{errRateLimited, http.StatusTooManyRequests},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
