package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// CustomerHandler customer-facing endpoints
type CustomerHandler struct {
	lifecycleSvc *service.LifecycleService
	accountSvc   *service.AccountService
	reportSvc    *service.ReportService
}

func NewCustomerHandler(lifecycleSvc *service.LifecycleService, accountSvc *service.AccountService, reportSvc *service.ReportService) *CustomerHandler {
	return &CustomerHandler{lifecycleSvc: lifecycleSvc, accountSvc: accountSvc, reportSvc: reportSvc}
}

// SubmitSample submits a sample for testing
// POST /api/customer/submit-sample
func (h *CustomerHandler) SubmitSample(c *gin.Context) {
	var req service.SubmitSampleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.lifecycleSvc.Submit(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, gin.H{
		"sampleRequestId": request.ID,
		"status":          request.Status,
		"message":         "Sample submitted successfully",
	})
}

// SubmittedTests lists the customer's sample requests
// GET /api/customer/submitted-tests
func (h *CustomerHandler) SubmittedTests(c *gin.Context) {
	items, err := h.lifecycleSvc.ListByCustomer(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

// Dashboard returns the customer's per-status request counts
// GET /api/customer/dashboard
func (h *CustomerHandler) Dashboard(c *gin.Context) {
	summary, err := h.lifecycleSvc.DashboardSummary(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, summary)
}

// Profile returns the customer's profile
// GET /api/customer/profile
func (h *CustomerHandler) Profile(c *gin.Context) {
	profile, err := h.accountSvc.GetProfile(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, profile)
}

// UpdateProfile updates the customer's profile
// PUT /api/customer/profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
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

// DownloadReport streams the test report for one of the customer's requests
// GET /api/customer/report/:sampleRequestId
func (h *CustomerHandler) DownloadReport(c *gin.Context) {
	requestID := c.Param("sampleRequestId")
	if requestID == "" {
		BadRequest(c, "missing sample request id")
		return
	}

	reader, filename, err := h.reportSvc.DownloadReport(c.Request.Context(), requestID, GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Abort()
	}
}
