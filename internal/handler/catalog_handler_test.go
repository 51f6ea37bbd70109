package handler

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/middleware"
	"github.com/yaseenferoz/virl-backend/internal/repository"
	"github.com/yaseenferoz/virl-backend/internal/service"
	"github.com/yaseenferoz/virl-backend/internal/testutil"
)

func setupCatalogTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, nil, nil, testConfig(), zap.NewNop())
	handlers := NewHandlers(services)

	router := testutil.SetupRouter()

	vendor := testutil.AuthGroup(router, "/api/vendor")
	vendor.Use(middleware.RequireRole(entity.RoleVendor))
	vendor.POST("/create-sample", handlers.Vendor.CreateSample)
	vendor.PUT("/update-sample-availability", handlers.Vendor.UpdateSampleAvailability)
	vendor.DELETE("/delete-sample/:sampleId", handlers.Vendor.DeleteSample)
	vendor.POST("/add-test-type", handlers.Vendor.AddTestType)
	vendor.DELETE("/delete-test-type/:testTypeId", handlers.Vendor.DeleteTestType)

	shared := testutil.AuthGroup(router, "/api/shared")
	shared.GET("/samples", handlers.Shared.Samples)
	shared.GET("/test-types", handlers.Shared.TestTypes)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestSampleCatalog(t *testing.T) {
	env := setupCatalogTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/vendor/create-sample", map[string]string{
		"type":        "Soil",
		"description": "Soil contamination sample",
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create-sample status = %d, body = %s", w.Code, w.Body.String())
	}
	sampleID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// new samples are visible to customers
	w = testutil.DoRequest(env.Router, "GET", "/api/shared/samples", nil, testutil.CustomerToken("cust-001"))
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("shared samples = %d, want 1", len(items))
	}

	// unavailable samples disappear from the shared list
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-availability", map[string]string{
		"sampleId": sampleID,
		"status":   entity.SampleUnavailable,
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("update availability status = %d, body = %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/shared/samples", nil, testutil.CustomerToken("cust-001"))
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("shared samples after hiding = %d, want 0", len(items))
	}

	// only the two known availability values are accepted
	w = testutil.DoRequest(env.Router, "PUT", "/api/vendor/update-sample-availability", map[string]string{
		"sampleId": sampleID,
		"status":   "Broken",
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bogus availability status = %d, want 400", w.Code)
	}

	// delete
	w = testutil.DoRequest(env.Router, "DELETE", "/api/vendor/delete-sample/"+sampleID, nil, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("delete-sample status = %d", w.Code)
	}
	w = testutil.DoRequest(env.Router, "DELETE", "/api/vendor/delete-sample/"+sampleID, nil, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d, want 404", w.Code)
	}
}

func TestTestTypeCatalog(t *testing.T) {
	env := setupCatalogTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/vendor/add-test-type", map[string]string{
		"name":        "Microbial Analysis",
		"description": "Bacterial count",
	}, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusCreated {
		t.Fatalf("add-test-type status = %d, body = %s", w.Code, w.Body.String())
	}
	ttID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(env.Router, "GET", "/api/shared/test-types", nil, testutil.CustomerToken("cust-001"))
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("test types = %d, want 1", len(items))
	}

	w = testutil.DoRequest(env.Router, "DELETE", "/api/vendor/delete-test-type/"+ttID, nil, testutil.VendorToken("vend-001"))
	if w.Code != http.StatusOK {
		t.Fatalf("delete-test-type status = %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/shared/test-types", nil, testutil.CustomerToken("cust-001"))
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("test types after delete = %d, want 0", len(items))
	}
}
