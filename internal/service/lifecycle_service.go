package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yaseenferoz/virl-backend/internal/entity"
	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// TransitionEvent describes one committed lifecycle transition. The fan-out
// consumer turns it into notification records for the interested parties.
type TransitionEvent struct {
	Request *entity.SampleRequest
	From    string
	To      string
	ActorID string
}

// Notifier consumes committed transitions. Fan-out runs after the primary
// state write; a failure here never rolls the transition back.
type Notifier interface {
	NotifyTransition(ctx context.Context, ev TransitionEvent) error
}

// LifecycleService validates and applies sample request state transitions and
// emits transition events for notification fan-out.
type LifecycleService struct {
	requestRepo  *repository.SampleRequestRepository
	sampleRepo   *repository.SampleRepository
	testTypeRepo *repository.TestTypeRepository
	userRepo     *repository.UserRepository
	notifier     Notifier
	logger       *zap.Logger
}

func NewLifecycleService(
	requestRepo *repository.SampleRequestRepository,
	sampleRepo *repository.SampleRepository,
	testTypeRepo *repository.TestTypeRepository,
	userRepo *repository.UserRepository,
	notifier Notifier,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		requestRepo:  requestRepo,
		sampleRepo:   sampleRepo,
		testTypeRepo: testTypeRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// SubmitSampleReq customer submission payload
type SubmitSampleReq struct {
	SampleID   string `json:"sampleId" binding:"required"`
	TestTypeID string `json:"testTypeId" binding:"required"`
}

// Submit creates a new sample request in Submitted status. No notification is
// emitted: no third party is interested yet.
func (s *LifecycleService) Submit(ctx context.Context, customerID string, req SubmitSampleReq) (*entity.SampleRequest, error) {
	if _, err := s.sampleRepo.FindByID(ctx, req.SampleID); err != nil {
		return nil, fmt.Errorf("sample %s: %w", req.SampleID, err)
	}
	if _, err := s.testTypeRepo.FindByID(ctx, req.TestTypeID); err != nil {
		return nil, fmt.Errorf("test type %s: %w", req.TestTypeID, err)
	}

	request := &entity.SampleRequest{
		ID:         generateID(),
		SampleID:   req.SampleID,
		TestTypeID: req.TestTypeID,
		CustomerID: customerID,
		Status:     entity.StatusSubmitted,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create sample request: %w", err)
	}

	return request, nil
}

// Collect marks a submitted request as collected and records the collector.
// The request must be in Submitted status; collectorId is set exactly once.
func (s *LifecycleService) Collect(ctx context.Context, collectorID, requestID string) (*entity.SampleRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sample request %s: %w", requestID, err)
	}

	if request.Status != entity.StatusSubmitted {
		return nil, fmt.Errorf("%w: cannot collect from %s", ErrInvalidTransition, request.Status)
	}

	request.Status = entity.StatusCollected
	request.CollectorID = &collectorID

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update sample request: %w", err)
	}

	return request, nil
}

// Deliver marks a collected request as received by the vendor and fans out
// notifications to the customer, the collector, and the vendor when assigned.
func (s *LifecycleService) Deliver(ctx context.Context, collectorID, requestID string) (*entity.SampleRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sample request %s: %w", requestID, err)
	}

	if request.Status != entity.StatusCollected {
		return nil, fmt.Errorf("%w: cannot deliver from %s", ErrInvalidTransition, request.Status)
	}

	from := request.Status
	request.Status = entity.StatusReceived
	request.CollectorID = &collectorID

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update sample request: %w", err)
	}

	s.fanOut(ctx, TransitionEvent{Request: request, From: from, To: request.Status, ActorID: collectorID})

	return request, nil
}

// UpdateStatus applies one of the vendor-owned statuses. The target must be a
// vendor status and strictly forward of the current one; the customer and the
// collector (when set) are notified.
func (s *LifecycleService) UpdateStatus(ctx context.Context, vendorID, requestID, status string) (*entity.SampleRequest, error) {
	if !entity.VendorStatuses[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sample request %s: %w", requestID, err)
	}

	if !entity.CanAdvance(request.Status, status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, request.Status, status)
	}

	from := request.Status
	request.Status = status

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("update sample request: %w", err)
	}

	s.fanOut(ctx, TransitionEvent{Request: request, From: from, To: status, ActorID: vendorID})

	return request, nil
}

// fanOut hands a committed transition to the notifier. Best-effort: the state
// change is already persisted, so failures are logged and not surfaced.
func (s *LifecycleService) fanOut(ctx context.Context, ev TransitionEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyTransition(ctx, ev); err != nil {
		s.logger.Error("notification fan-out failed",
			zap.String("sample_request_id", ev.Request.ID),
			zap.String("from", ev.From),
			zap.String("to", ev.To),
			zap.Error(err),
		)
	}
}

// RequestSummary display projection joining sample and user details
type RequestSummary struct {
	SampleRequestID string `json:"sampleRequestId"`
	SampleType      string `json:"sampleType"`
	Description     string `json:"description"`
	TestType        string `json:"testType,omitempty"`
	CustomerName    string `json:"customerName,omitempty"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CollectorName   string `json:"collectorName,omitempty"`
	SubmissionDate  string `json:"submissionDate"`
	DeliveryDate    string `json:"deliveryDate,omitempty"`
	Status          string `json:"status"`
}

// ListToCollect returns submitted requests awaiting collection.
func (s *LifecycleService) ListToCollect(ctx context.Context) ([]RequestSummary, error) {
	reqs, err := s.requestRepo.ListByStatus(ctx, entity.StatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("list submitted requests: %w", err)
	}
	return s.summarize(ctx, reqs, false)
}

// ListDeliveredByCollector returns every request the collector has handled
// past submission.
func (s *LifecycleService) ListDeliveredByCollector(ctx context.Context, collectorID string) ([]RequestSummary, error) {
	reqs, err := s.requestRepo.ListByCollector(ctx, collectorID, entity.StatusSubmitted)
	if err != nil {
		return nil, fmt.Errorf("list collector requests: %w", err)
	}
	return s.summarize(ctx, reqs, false)
}

// ListByCustomer returns a customer's submitted tests.
func (s *LifecycleService) ListByCustomer(ctx context.Context, customerID string) ([]RequestSummary, error) {
	reqs, err := s.requestRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer requests: %w", err)
	}
	return s.summarize(ctx, reqs, false)
}

// ListAll returns every sample request for the vendor overview.
func (s *LifecycleService) ListAll(ctx context.Context) ([]RequestSummary, error) {
	reqs, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return s.summarize(ctx, reqs, false)
}

// ListDeliveredHistory returns requests that completed the lifecycle, with the
// last update timestamp standing in as the delivery date.
func (s *LifecycleService) ListDeliveredHistory(ctx context.Context) ([]RequestSummary, error) {
	reqs, err := s.requestRepo.ListByStatus(ctx, entity.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("list delivered requests: %w", err)
	}
	return s.summarize(ctx, reqs, true)
}

// DashboardSummary returns status → count for the customer, with every
// lifecycle status present.
func (s *LifecycleService) DashboardSummary(ctx context.Context, customerID string) (map[string]int64, error) {
	counts, err := s.requestRepo.CountByStatusForCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	summary := map[string]int64{
		entity.StatusSubmitted: 0,
		entity.StatusCollected: 0,
		entity.StatusReceived:  0,
		entity.StatusInTest:    0,
		entity.StatusTested:    0,
		entity.StatusDelivered: 0,
	}
	for status, n := range counts {
		summary[status] = n
	}
	return summary, nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// summarize fills sample and user display fields for a request list.
func (s *LifecycleService) summarize(ctx context.Context, reqs []entity.SampleRequest, withDelivery bool) ([]RequestSummary, error) {
	sampleIDs := make([]string, 0, len(reqs))
	testTypeIDs := make([]string, 0, len(reqs))
	userIDs := make([]string, 0, len(reqs)*2)
	for _, r := range reqs {
		sampleIDs = append(sampleIDs, r.SampleID)
		testTypeIDs = append(testTypeIDs, r.TestTypeID)
		userIDs = append(userIDs, r.CustomerID)
		if r.CollectorID != nil {
			userIDs = append(userIDs, *r.CollectorID)
		}
	}

	samples, err := s.sampleRepo.FindByIDs(ctx, sampleIDs)
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	testTypes, err := s.testTypeRepo.FindByIDs(ctx, testTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("load test types: %w", err)
	}
	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	summaries := make([]RequestSummary, 0, len(reqs))
	for _, r := range reqs {
		sum := RequestSummary{
			SampleRequestID: r.ID,
			SubmissionDate:  r.SubmittedAt.Format(timeLayout),
			Status:          r.Status,
			CustomerName:    users[r.CustomerID].Name,
		}
		if sample, ok := samples[r.SampleID]; ok {
			sum.SampleType = sample.Type
			sum.Description = sample.Description
		}
		if tt, ok := testTypes[r.TestTypeID]; ok {
			sum.TestType = tt.Name
		}
		if r.CollectorID != nil {
			sum.CollectorName = users[*r.CollectorID].Name
		} else {
			sum.CollectorName = "Waiting for Collector"
		}
		if withDelivery {
			sum.CustomerEmail = users[r.CustomerID].Email
			sum.DeliveryDate = r.UpdatedAt.Format(timeLayout)
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

var historyExportHeaders = []string{
	"Request ID", "Sample Type", "Description", "Customer", "Collector",
	"Submitted", "Delivered", "Status",
}

// ExportDeliveredHistory builds the delivered-sample history as a spreadsheet.
func (s *LifecycleService) ExportDeliveredHistory(ctx context.Context) (*excelize.File, string, error) {
	history, err := s.ListDeliveredHistory(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Delivered Samples"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range historyExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range history {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.SampleRequestID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.SampleType)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.CustomerName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.CollectorName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.SubmissionDate)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.DeliveryDate)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.Status)
	}

	colWidths := []float64{34, 16, 28, 18, 18, 22, 22, 16}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("delivered_samples_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}

func generateID() string {
	return uuid.New().String()[:32]
}
