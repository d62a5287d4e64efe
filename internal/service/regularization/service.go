package regularization

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/regularization"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// TxRunner matches database.DB.WithinTx; tests substitute a pass-through.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type RegularizationServiceImpl struct {
	tx    TxRunner
	clock *clock.Clock
	regularization.RegularizationRepository
	attendanceRepo attendance.AttendanceRepository
}

// CreateRequest implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) CreateRequest(ctx context.Context, req regularization.CreateRequestRequest) (regularization.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	pending, err := s.RegularizationRepository.HasPendingForDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return regularization.RequestResponse{}, regularization.ErrPendingRequestExists
	}

	var created regularization.Request
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		rec, err := s.attendanceRepo.GetByEmployeeAndDate(txCtx, req.EmployeeID, req.Date)
		if err != nil {
			return fmt.Errorf("failed to get attendance record: %w", err)
		}
		if rec == nil {
			// Placeholder the request can be approved against later.
			placeholder, err := s.attendanceRepo.Create(txCtx, attendance.AttendanceRecord{
				EmployeeID: req.EmployeeID,
				Date:       req.Date,
				Status:     attendance.StatusAbsent,
			})
			if err != nil {
				return fmt.Errorf("failed to create placeholder attendance record: %w", err)
			}
			rec = &placeholder
		}

		created, err = s.RegularizationRepository.Create(txCtx, regularization.Request{
			EmployeeID:        req.EmployeeID,
			AttendanceID:      rec.ID,
			Date:              req.Date,
			RequestType:       req.RequestType,
			RequestedCheckIn:  req.RequestedCheckIn,
			RequestedCheckOut: req.RequestedCheckOut,
			Reason:            req.Reason,
			Status:            regularization.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create regularization request: %w", err)
		}
		return nil
	})
	if err != nil {
		return regularization.RequestResponse{}, err
	}

	return mapRequestToResponse(created), nil
}

// ApproveRequest implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) ApproveRequest(ctx context.Context, req regularization.ApproveRequestRequest) (regularization.RequestResponse, error) {
	request, err := s.RegularizationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if request.Status != regularization.StatusPending {
		return regularization.RequestResponse{}, regularization.ErrRequestAlreadyProcessed
	}

	rec, err := s.attendanceRepo.GetByID(ctx, request.AttendanceID)
	if err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if request.RequestedCheckIn != nil {
		rec.CheckIn = request.RequestedCheckIn
	}
	if request.RequestedCheckOut != nil {
		rec.CheckOut = request.RequestedCheckOut
	}

	// Hours are recomputable only once both ends of the day exist; the
	// accumulated break total stays authoritative.
	if rec.CheckIn != nil && rec.CheckOut != nil {
		total, working, err := attendance.DeriveHours(*rec.CheckIn, *rec.CheckOut, rec.BreakTotalMinutes)
		if err != nil {
			return regularization.RequestResponse{}, err
		}
		rec.TotalHours = &total
		rec.WorkingHours = &working
	}

	if rec.Status == attendance.StatusAbsent && (rec.CheckIn != nil || rec.CheckOut != nil) {
		rec.Status = attendance.StatusPresent
	}

	reviewedAt := s.clock.Now()
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.Update(txCtx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		if err := s.RegularizationRepository.UpdateReview(txCtx, request.ID, regularization.StatusApproved, req.ReviewerID, reviewedAt, req.ReviewNotes); err != nil {
			return fmt.Errorf("failed to record review: %w", err)
		}
		return nil
	})
	if err != nil {
		return regularization.RequestResponse{}, err
	}

	return s.GetByID(ctx, request.ID)
}

// RejectRequest implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) RejectRequest(ctx context.Context, req regularization.RejectRequestRequest) (regularization.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	request, err := s.RegularizationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	if request.Status != regularization.StatusPending {
		return regularization.RequestResponse{}, regularization.ErrRequestAlreadyProcessed
	}

	notes := req.ReviewNotes
	if err := s.RegularizationRepository.UpdateReview(ctx, request.ID, regularization.StatusRejected, req.ReviewerID, s.clock.Now(), &notes); err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to record review: %w", err)
	}

	return s.GetByID(ctx, request.ID)
}

// ListPending implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) ListPending(ctx context.Context) ([]regularization.RequestResponse, error) {
	requests, err := s.RegularizationRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return mapRequestsToResponses(requests), nil
}

// List implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) List(ctx context.Context, filter regularization.ListFilter) ([]regularization.RequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.RegularizationRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return mapRequestsToResponses(requests), nil
}

// ListByEmployee implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]regularization.RequestResponse, error) {
	if limit <= 0 {
		limit = 50
	}

	requests, err := s.RegularizationRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return mapRequestsToResponses(requests), nil
}

// GetByID implements regularization.RegularizationService.
func (s *RegularizationServiceImpl) GetByID(ctx context.Context, id string) (regularization.RequestResponse, error) {
	request, err := s.RegularizationRepository.GetByID(ctx, id)
	if err != nil {
		return regularization.RequestResponse{}, err
	}
	return mapRequestToResponse(request), nil
}

// mapRequestToResponse converts a Request entity to RequestResponse
func mapRequestToResponse(r regularization.Request) regularization.RequestResponse {
	resp := regularization.RequestResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		AttendanceID:      r.AttendanceID,
		Date:              r.Date,
		RequestType:       r.RequestType,
		RequestedCheckIn:  r.RequestedCheckIn,
		RequestedCheckOut: r.RequestedCheckOut,
		Reason:            r.Reason,
		Status:            r.Status,
		ReviewedBy:        r.ReviewedBy,
		ReviewerName:      r.ReviewerName,
		ReviewNotes:       r.ReviewNotes,
		CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.ReviewedAt != nil {
		reviewedAt := r.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &reviewedAt
	}
	return resp
}

func mapRequestsToResponses(requests []regularization.Request) []regularization.RequestResponse {
	responses := make([]regularization.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}
	return responses
}

func NewRegularizationService(
	tx TxRunner,
	clk *clock.Clock,
	regularizationRepo regularization.RegularizationRepository,
	attendanceRepo attendance.AttendanceRepository,
) regularization.RegularizationService {
	return &RegularizationServiceImpl{
		tx:                       tx,
		clock:                    clk,
		RegularizationRepository: regularizationRepo,
		attendanceRepo:           attendanceRepo,
	}
}
