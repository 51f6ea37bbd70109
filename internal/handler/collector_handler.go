package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// CollectorHandler collector-facing endpoints
type CollectorHandler struct {
	lifecycleSvc *service.LifecycleService
	accountSvc   *service.AccountService
}

func NewCollectorHandler(lifecycleSvc *service.LifecycleService, accountSvc *service.AccountService) *CollectorHandler {
	return &CollectorHandler{lifecycleSvc: lifecycleSvc, accountSvc: accountSvc}
}

type sampleRequestIDReq struct {
	SampleRequestID string `json:"sampleRequestId" binding:"required"`
}

// CollectSample marks a submitted request as collected
// PUT /api/collector/collect-sample
func (h *CollectorHandler) CollectSample(c *gin.Context) {
	var req sampleRequestIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.lifecycleSvc.Collect(c.Request.Context(), GetUserID(c), req.SampleRequestID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"sampleRequestId": request.ID,
		"status":          request.Status,
		"message":         "Sample collected successfully",
	})
}

// DeliverSample marks a collected request as received by the vendor
// PUT /api/collector/deliver-sample
func (h *CollectorHandler) DeliverSample(c *gin.Context) {
	var req sampleRequestIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.lifecycleSvc.Deliver(c.Request.Context(), GetUserID(c), req.SampleRequestID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"sampleRequestId": request.ID,
		"status":          request.Status,
		"message":         "Sample delivered successfully",
	})
}

// SamplesToCollect lists submitted requests awaiting collection
// GET /api/collector/samples-to-collect
func (h *CollectorHandler) SamplesToCollect(c *gin.Context) {
	items, err := h.lifecycleSvc.ListToCollect(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

// SamplesDelivered lists the collector's handled requests
// GET /api/collector/samples-delivered
func (h *CollectorHandler) SamplesDelivered(c *gin.Context) {
	items, err := h.lifecycleSvc.ListDeliveredByCollector(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

// Profile returns the collector's profile
// GET /api/collector/profile
func (h *CollectorHandler) Profile(c *gin.Context) {
	profile, err := h.accountSvc.GetProfile(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, profile)
}

// UpdateProfile updates the collector's profile
// PUT /api/collector/profile
func (h *CollectorHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	profile, err := h.accountSvc.UpdateProfile(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, profile)
}
