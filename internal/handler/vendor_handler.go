package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// VendorHandler vendor-facing endpoints
type VendorHandler struct {
	lifecycleSvc *service.LifecycleService
	accountSvc   *service.AccountService
	catalogSvc   *service.CatalogService
	reportSvc    *service.ReportService
}

func NewVendorHandler(
	lifecycleSvc *service.LifecycleService,
	accountSvc *service.AccountService,
	catalogSvc *service.CatalogService,
	reportSvc *service.ReportService,
) *VendorHandler {
	return &VendorHandler{
		lifecycleSvc: lifecycleSvc,
		accountSvc:   accountSvc,
		catalogSvc:   catalogSvc,
		reportSvc:    reportSvc,
	}
}

type vendorApproveReq struct {
	UserID string `json:"userId" binding:"required"`
}

// ApproveUser activates a pending customer or collector account
// POST /api/vendor/approve-user
func (h *VendorHandler) ApproveUser(c *gin.Context) {
	var req vendorApproveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.accountSvc.Approve(c.Request.Context(), req.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"userId":   user.ID,
		"isActive": user.IsActive,
		"message":  "User approved successfully",
	})
}

// DeclineUser removes a pending account
// POST /api/vendor/decline-user
func (h *VendorHandler) DeclineUser(c *gin.Context) {
	var req vendorApproveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.accountSvc.Decline(c.Request.Context(), req.UserID); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"message": "User declined and removed"})
}

// UsersAwaitingApproval lists pending customer and collector accounts
// GET /api/vendor/users-awaiting-approval
func (h *VendorHandler) UsersAwaitingApproval(c *gin.Context) {
	users, err := h.accountSvc.ListAwaitingApproval(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, gin.H{
			"userId": u.ID,
			"name":   u.Name,
			"email":  u.Email,
			"phone":  u.Phone,
			"role":   u.Role,
		})
	}

	Success(c, gin.H{"items": items})
}

// CreateSample adds a sample to the catalog
// POST /api/vendor/create-sample
func (h *VendorHandler) CreateSample(c *gin.Context) {
	var req service.CreateSampleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.catalogSvc.CreateSample(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, sample)
}

type updateAvailabilityReq struct {
	SampleID string `json:"sampleId" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// UpdateSampleAvailability flips a sample's availability
// PUT /api/vendor/update-sample-availability
func (h *VendorHandler) UpdateSampleAvailability(c *gin.Context) {
	var req updateAvailabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	sample, err := h.catalogSvc.UpdateSampleAvailability(c.Request.Context(), req.SampleID, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, sample)
}

// DeleteSample removes a sample from the catalog
// DELETE /api/vendor/delete-sample/:sampleId
func (h *VendorHandler) DeleteSample(c *gin.Context) {
	sampleID := c.Param("sampleId")
	if sampleID == "" {
		BadRequest(c, "missing sample id")
		return
	}

	if err := h.catalogSvc.DeleteSample(c.Request.Context(), sampleID); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"message": "Sample deleted"})
}

// AddTestType adds a test type to the catalog
// POST /api/vendor/add-test-type
func (h *VendorHandler) AddTestType(c *gin.Context) {
	var req service.CreateTestTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tt, err := h.catalogSvc.CreateTestType(c.Request.Context(), req)
	if err != nil {
		RespondError(c, err)
		return
	}

	Created(c, tt)
}

// DeleteTestType removes a test type from the catalog
// DELETE /api/vendor/delete-test-type/:testTypeId
func (h *VendorHandler) DeleteTestType(c *gin.Context) {
	testTypeID := c.Param("testTypeId")
	if testTypeID == "" {
		BadRequest(c, "missing test type id")
		return
	}

	if err := h.catalogSvc.DeleteTestType(c.Request.Context(), testTypeID); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"message": "Test type deleted"})
}

// SubmittedSamples lists every sample request
// GET /api/vendor/submitted-samples
func (h *VendorHandler) SubmittedSamples(c *gin.Context) {
	items, err := h.lifecycleSvc.ListAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

type updateStatusReq struct {
	SampleRequestID string `json:"sampleRequestId" binding:"required"`
	Status          string `json:"status" binding:"required"`
}

// UpdateSampleStatus applies a vendor-owned status to a request
// PUT /api/vendor/update-sample-status
func (h *VendorHandler) UpdateSampleStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	request, err := h.lifecycleSvc.UpdateStatus(c.Request.Context(), GetUserID(c), req.SampleRequestID, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"sampleRequestId": request.ID,
		"status":          request.Status,
		"message":         "Sample status updated successfully",
	})
}

// DeliveredSamplesHistory lists requests that completed the lifecycle
// GET /api/vendor/delivered-samples-history
func (h *VendorHandler) DeliveredSamplesHistory(c *gin.Context) {
	items, err := h.lifecycleSvc.ListDeliveredHistory(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

// ExportDeliveredHistory downloads the delivered history as a spreadsheet
// GET /api/vendor/delivered-samples-history/export
func (h *VendorHandler) ExportDeliveredHistory(c *gin.Context) {
	f, filename, err := h.lifecycleSvc.ExportDeliveredHistory(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.Abort()
	}
}

// UploadReport attaches a report file to a tested request
// POST /api/vendor/upload-report/:sampleRequestId
func (h *VendorHandler) UploadReport(c *gin.Context) {
	requestID := c.Param("sampleRequestId")
	if requestID == "" {
		BadRequest(c, "missing sample request id")
		return
	}

	fileHeader, err := c.FormFile("report")
	if err != nil {
		BadRequest(c, "missing report file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "failed to read report file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	request, err := h.reportSvc.UploadReport(c.Request.Context(), requestID, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"sampleRequestId": request.ID,
		"reportPath":      request.ReportPath,
		"message":         "Report uploaded successfully",
	})
}

// DownloadReport streams a stored report
// GET /api/vendor/report/:sampleRequestId
func (h *VendorHandler) DownloadReport(c *gin.Context) {
	requestID := c.Param("sampleRequestId")
	if requestID == "" {
		BadRequest(c, "missing sample request id")
		return
	}

	reader, filename, err := h.reportSvc.DownloadReport(c.Request.Context(), requestID, "")
	if err != nil {
		RespondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		c.Abort()
	}
}

// Profile returns the vendor's profile
// GET /api/vendor/profile
func (h *VendorHandler) Profile(c *gin.Context) {
	profile, err := h.accountSvc.GetProfile(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, profile)
}

// UpdateProfile updates the vendor's profile
// PUT /api/vendor/profile
func (h *VendorHandler) UpdateProfile(c *gin.Context) {
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
