package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/middleware"
	"github.com/yaseenferoz/virl-backend/internal/repository"
	"github.com/yaseenferoz/virl-backend/internal/service"
	"github.com/yaseenferoz/virl-backend/internal/testutil"
)

func setupReportTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, nil, testConfig(), zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()

	vendor := testutil.AuthGroup(router, "/api/vendor")
	vendor.Use(middleware.RequireRole(entity.RoleVendor))
	vendor.POST("/upload-report/:sampleRequestId", handlers.Vendor.UploadReport)
	vendor.GET("/delivered-samples-history/export", handlers.Vendor.ExportDeliveredHistory)

	customer := testutil.AuthGroup(router, "/api/customer")
	customer.Use(middleware.RequireRole(entity.RoleCustomer))
	customer.GET("/report/:sampleRequestId", handlers.Customer.DownloadReport)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedRequest(t *testing.T, env *testutil.TestEnv, id, status string) {
	t.Helper()
	req := &entity.SampleRequest{
		ID:          id,
		SampleID:    "sample-001",
		TestTypeID:  "tt-001",
		CustomerID:  "cust-001",
		Status:      status,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.DB.Create(req).Error; err != nil {
		t.Fatalf("Failed to seed sample request: %v", err)
	}
}

func uploadReportRequest(t *testing.T, env *testutil.TestEnv, requestID string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("report", "report.pdf")
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	part.Write([]byte("%PDF-1.4 test"))
	mw.Close()

	req, _ := http.NewRequest("POST", "/api/vendor/upload-report/"+requestID, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testutil.VendorToken("vend-001"))

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func TestUploadReportRequiresTestedStatus(t *testing.T) {
	env := setupReportTest(t)
	testutil.SeedUser(t, env.DB, "cust-001", "Alice", entity.RoleCustomer, true)
	seedRequest(t, env, "req-early", entity.StatusInTest)

	w := uploadReportRequest(t, env, "req-early")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("upload before Sample Tested status = %d, want 400", w.Code)
	}
}

func TestDownloadReportWithoutUpload(t *testing.T) {
	env := setupReportTest(t)
	testutil.SeedUser(t, env.DB, "cust-001", "Alice", entity.RoleCustomer, true)
	seedRequest(t, env, "req-noreport", entity.StatusDelivered)

	w := testutil.DoRequest(env.Router, "GET", "/api/customer/report/req-noreport", nil, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("download without report status = %d, want 404", w.Code)
	}
}

func TestDownloadReportOwnershipEnforced(t *testing.T) {
	env := setupReportTest(t)
	testutil.SeedUser(t, env.DB, "cust-001", "Alice", entity.RoleCustomer, true)
	testutil.SeedUser(t, env.DB, "cust-002", "Mallory", entity.RoleCustomer, true)
	seedRequest(t, env, "req-owned", entity.StatusDelivered)

	// another customer cannot fetch the report by id
	w := testutil.DoRequest(env.Router, "GET", "/api/customer/report/req-owned", nil, testutil.CustomerToken("cust-002"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign report download status = %d, want 403", w.Code)
	}

	// the owner still reaches the report lookup
	w = testutil.DoRequest(env.Router, "GET", "/api/customer/report/req-owned", nil, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("owner download without report status = %d, want 404", w.Code)
	}
}

func TestExportDeliveredHistory(t *testing.T) {
	env := setupReportTest(t)
	testutil.SeedUser(t, env.DB, "cust-001", "Alice", entity.RoleCustomer, true)
	testutil.SeedSample(t, env.DB, "sample-001", "Water")
	testutil.SeedTestType(t, env.DB, "tt-001", "Chemical Analysis")
	seedRequest(t, env, "req-done", entity.StatusDelivered)

	w := testutil.DoRequest(env.Router, "GET", "/api/vendor/delivered-samples-history/export", nil, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", w.Code, w.Body.String())
	}

	ct := w.Header().Get("Content-Type")
	if !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("export content type = %q, want xlsx", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "delivered_samples_") || !strings.Contains(cd, ".xlsx") {
		t.Errorf("export content disposition = %q, want delivered_samples_<timestamp>.xlsx", cd)
	}
	if w.Body.Len() == 0 {
		t.Error("export body is empty")
	}
}
