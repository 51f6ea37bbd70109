package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/config"
	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/middleware"
	"github.com/yaseenferoz/virl-backend/internal/repository"
	"github.com/yaseenferoz/virl-backend/internal/service"
	"github.com/yaseenferoz/virl-backend/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			Issuer:             "virl-backend",
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
		},
	}
}

func setupLifecycleTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, nil, testConfig(), zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()

	customer := testutil.AuthGroup(router, "/api/customer")
	customer.Use(middleware.RequireRole(entity.RoleCustomer))
	customer.POST("/submit-sample", handlers.Customer.SubmitSample)
	customer.GET("/submitted-tests", handlers.Customer.SubmittedTests)
	customer.GET("/dashboard", handlers.Customer.Dashboard)

	collector := testutil.AuthGroup(router, "/api/collector")
	collector.Use(middleware.RequireRole(entity.RoleCollector))
	collector.PUT("/collect-sample", handlers.Collector.CollectSample)
	collector.PUT("/deliver-sample", handlers.Collector.DeliverSample)
	collector.GET("/samples-to-collect", handlers.Collector.SamplesToCollect)
	collector.GET("/samples-delivered", handlers.Collector.SamplesDelivered)

	vendor := testutil.AuthGroup(router, "/api/vendor")
	vendor.Use(middleware.RequireRole(entity.RoleVendor))
	vendor.PUT("/update-sample-status", handlers.Vendor.UpdateSampleStatus)
	vendor.GET("/submitted-samples", handlers.Vendor.SubmittedSamples)
	vendor.GET("/delivered-samples-history", handlers.Vendor.DeliveredSamplesHistory)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedLifecycleUsers(t *testing.T, env *testutil.TestEnv) {
	t.Helper()
	testutil.SeedUser(t, env.DB, "cust-001", "Alice Customer", entity.RoleCustomer, true)
	testutil.SeedUser(t, env.DB, "coll-001", "Bob Collector", entity.RoleCollector, true)
	testutil.SeedUser(t, env.DB, "vend-001", "Carol Vendor", entity.RoleVendor, true)
	testutil.SeedSample(t, env.DB, "sample-001", "Water")
	testutil.SeedTestType(t, env.DB, "tt-001", "Chemical Analysis")
}

func submitSample(t *testing.T, env *testutil.TestEnv) string {
	t.Helper()
	w := testutil.DoRequest(env.Router, "POST", "/api/customer/submit-sample", map[string]string{
		"sampleId":   "sample-001",
		"testTypeId": "tt-001",
	}, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit-sample status = %d, body = %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	return data["sampleRequestId"].(string)
}

func TestSampleLifecycle(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	requestID := submitSample(t, env)

	// submitted request shows up on the collector's pickup list
	w := testutil.DoRequest(env.Router, "GET", "/api/collector/samples-to-collect", nil, testutil.CollectorToken("coll-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("samples-to-collect status = %d", w.Code)
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("samples-to-collect returned %d items, want 1", len(items))
	}

	// collect
	w = testutil.DoRequest(env.Router, "PUT", "/api/collector/collect-sample", map[string]string{
		"sampleRequestId": requestID,
	}, testutil.CollectorToken("coll-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("collect-sample status = %d, body = %s", w.Code, w.Body.String())
	}

	// collecting twice is rejected
	w = testutil.DoRequest(env.Router, "PUT", "/api/collector/collect-sample", map[string]string{
		"sampleRequestId": requestID,
	}, testutil.CollectorToken("coll-001"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("repeat collect status = %d, want 400", w.Code)
	}

	// deliver to the vendor
	w = testutil.DoRequest(env.Router, "PUT", "/api/collector/deliver-sample", map[string]string{
		"sampleRequestId": requestID,
	}, testutil.CollectorToken("coll-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("deliver-sample status = %d, body = %s", w.Code, w.Body.String())
	}

	// delivery notifies the customer and the collector
	var customerNotes, collectorNotes int64
	env.DB.Model(&entity.Notification{}).Where("user_id = ?", "cust-001").Count(&customerNotes)
	env.DB.Model(&entity.Notification{}).Where("user_id = ?", "coll-001").Count(&collectorNotes)
	if customerNotes != 1 || collectorNotes != 1 {
		t.Errorf("notifications after delivery: customer=%d collector=%d, want 1 and 1", customerNotes, collectorNotes)
	}

	// vendor moves the sample into testing
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-status", map[string]string{
		"sampleRequestId": requestID,
		"status":          entity.StatusInTest,
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("update-sample-status status = %d, body = %s", w.Code, w.Body.String())
	}

	// same status again is not a forward move
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-status", map[string]string{
		"sampleRequestId": requestID,
		"status":          entity.StatusInTest,
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("repeat update status = %d, want 400", w.Code)
	}

	// collector-owned statuses cannot be set by the vendor
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-status", map[string]string{
		"sampleRequestId": requestID,
		"status":          entity.StatusCollected,
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("collector status via vendor = %d, want 400", w.Code)
	}

	// skip forward to delivered
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-status", map[string]string{
		"sampleRequestId": requestID,
		"status":          entity.StatusDelivered,
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("final update status = %d, body = %s", w.Code, w.Body.String())
	}

	// customer sees the finished request
	w = testutil.DoRequest(env.Router, "GET", "/api/customer/submitted-tests", nil, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("submitted-tests status = %d", w.Code)
	}
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("submitted-tests returned %d items, want 1", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["status"] != entity.StatusDelivered {
		t.Errorf("final status = %v, want %s", item["status"], entity.StatusDelivered)
	}
	if item["collectorName"] != "Bob Collector" {
		t.Errorf("collectorName = %v, want Bob Collector", item["collectorName"])
	}

	// delivered history includes it
	w = testutil.DoRequest(env.Router, "GET", "/api/vendor/delivered-samples-history", nil, testutil.VendorToken("vend-001"))
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("delivered history returned %d items, want 1", len(items))
	}
}

func TestDeliverNotifiesAssignedVendor(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	collectorID := "coll-001"
	vendorID := "vend-001"
	request := &entity.SampleRequest{
		ID:          "req-vendor-001",
		SampleID:    "sample-001",
		TestTypeID:  "tt-001",
		CustomerID:  "cust-001",
		CollectorID: &collectorID,
		VendorID:    &vendorID,
		Status:      entity.StatusCollected,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := env.DB.Create(request).Error; err != nil {
		t.Fatalf("Failed to seed sample request: %v", err)
	}

	w := testutil.DoRequest(env.Router, "PUT", "/api/collector/deliver-sample", map[string]string{
		"sampleRequestId": request.ID,
	}, testutil.CollectorToken(collectorID))
	if w.Code != http.StatusOK {
		t.Fatalf("deliver-sample status = %d, body = %s", w.Code, w.Body.String())
	}

	// customer, collector and the assigned vendor each get one record
	var total, vendorNotes int64
	env.DB.Model(&entity.Notification{}).Where("sample_request_id = ?", request.ID).Count(&total)
	env.DB.Model(&entity.Notification{}).Where("sample_request_id = ? AND user_id = ?", request.ID, vendorID).Count(&vendorNotes)
	if total != 3 {
		t.Errorf("notifications after delivery = %d, want 3", total)
	}
	if vendorNotes != 1 {
		t.Errorf("vendor notifications = %d, want 1", vendorNotes)
	}
}

func TestDeliverRequiresCollected(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	requestID := submitSample(t, env)

	// deliver straight from Submitted is rejected
	w := testutil.DoRequest(env.Router, "PUT", "/api/collector/deliver-sample", map[string]string{
		"sampleRequestId": requestID,
	}, testutil.CollectorToken("coll-001"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("deliver from Submitted status = %d, want 400", w.Code)
	}
}

func TestSubmitUnknownSample(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	w := testutil.DoRequest(env.Router, "POST", "/api/customer/submit-sample", map[string]string{
		"sampleId":   "no-such-sample",
		"testTypeId": "tt-001",
	}, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("submit unknown sample status = %d, want 404", w.Code)
	}
}

func TestDashboardCountsEveryStatus(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	submitSample(t, env)

	w := testutil.DoRequest(env.Router, "GET", "/api/customer/dashboard", nil, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	for _, status := range []string{
		entity.StatusSubmitted, entity.StatusCollected, entity.StatusReceived,
		entity.StatusInTest, entity.StatusTested, entity.StatusDelivered,
	} {
		if _, ok := data[status]; !ok {
			t.Errorf("dashboard missing status %q", status)
		}
	}
	if data[entity.StatusSubmitted].(float64) != 1 {
		t.Errorf("Submitted count = %v, want 1", data[entity.StatusSubmitted])
	}
}

func TestRoleGates(t *testing.T) {
	env := setupLifecycleTest(t)
	seedLifecycleUsers(t, env)

	// a customer cannot collect
	w := testutil.DoRequest(env.Router, "PUT", "/api/collector/collect-sample", map[string]string{
		"sampleRequestId": "whatever",
	}, testutil.CustomerToken("cust-001"))
	if w.Code != http.StatusForbidden {
		t.Errorf("customer on collector route status = %d, want 403", w.Code)
	}

	// no token at all
	w = testutil.DoRequest(env.Router, "GET", "/api/customer/dashboard", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}

	// superAdmin passes role gates
	w = testutil.DoRequest(env.Router, "GET", "/api/vendor/submitted-samples", nil, testutil.SuperAdminToken("admin-001"))
	if w.Code != http.StatusOK {
		t.Errorf("superAdmin on vendor route status = %d, want 200", w.Code)
	}
}
