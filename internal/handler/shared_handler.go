package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// SharedHandler catalog endpoints available to every authenticated role
type SharedHandler struct {
	catalogSvc *service.CatalogService
}

func NewSharedHandler(catalogSvc *service.CatalogService) *SharedHandler {
	return &SharedHandler{catalogSvc: catalogSvc}
}

// Samples lists available samples
// GET /api/shared/samples
func (h *SharedHandler) Samples(c *gin.Context) {
	samples, err := h.catalogSvc.ListAvailableSamples(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": samples})
}

// TestTypes lists the test type catalog
// GET /api/shared/test-types
func (h *SharedHandler) TestTypes(c *gin.Context) {
	testTypes, err := h.catalogSvc.ListTestTypes(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": testTypes})
}
