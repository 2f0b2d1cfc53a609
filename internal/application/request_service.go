package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/leave-portal/internal/persistence"
)

// RequestRepository captures the persistence operations needed by the
// lifecycle engine.
type RequestRepository interface {
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	AddRequest(ctx context.Context, request Request) error
	UpdateRequest(ctx context.Context, requestID string, patch RequestPatch) (Request, error)
}

// RequestPatch is a shallow field patch for a stored request. Nil fields are
// left untouched by the repository.
type RequestPatch struct {
	Status            *RequestStatus
	TeacherRemark     *string
	TeacherActionDate *string
	HODRemark         *string
	HODActionDate     *string
}

// RequestService owns the request lifecycle state machine: creation,
// validation, and the role-gated transitions.
type RequestService struct {
	requests    RequestRepository
	idGenerator func() string
	now         func() time.Time
	stats       *StatsCache
	logger      *slog.Logger
}

// NewRequestService constructs a request service with the provided dependencies.
func NewRequestService(requests RequestRepository, idGenerator func() string, now func() time.Time) *RequestService {
	return NewRequestServiceWithLogger(requests, idGenerator, now, nil, nil)
}

// NewRequestServiceWithLogger constructs a request service with a stats cache
// to invalidate on successful transitions and a specified logger.
func NewRequestServiceWithLogger(requests RequestRepository, idGenerator func() string, now func() time.Time, stats *StatsCache, logger *slog.Logger) *RequestService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		requests:    requests,
		idGenerator: idGenerator,
		now:         now,
		stats:       stats,
		logger:      defaultLogger(logger),
	}
}

func (s *RequestService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RequestService", operation, attrs...)
}

// Submit validates and persists a new leave/OD request for a student.
func (s *RequestService) Submit(ctx context.Context, params SubmitRequestParams) (request Request, err error) {
	if s == nil {
		err = fmt.Errorf("RequestService is nil")
		return
	}
	if s.requests == nil {
		err = fmt.Errorf("request repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "Submit",
		"student_reg_no", params.Principal.RegNo,
		"request_type", params.Input.RequestType,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit request", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("request_id", request.RequestID).InfoContext(ctx, "request submitted")
	}()

	if params.Principal.Role != RoleStudent {
		err = ErrUnauthorized
		return
	}

	input := RequestInput{
		RequestType: strings.TrimSpace(params.Input.RequestType),
		FromDate:    strings.TrimSpace(params.Input.FromDate),
		ToDate:      strings.TrimSpace(params.Input.ToDate),
		Reason:      strings.TrimSpace(params.Input.Reason),
	}

	noOfDays, vErr := validateRequestInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var existing []Request
	existing, err = s.requests.ListRequests(ctx)
	if err != nil {
		err = mapRequestRepoError(err)
		return
	}
	for _, other := range existing {
		if other.StudentRegNo == params.Principal.RegNo &&
			other.RequestType == input.RequestType &&
			other.FromDate == input.FromDate &&
			other.ToDate == input.ToDate &&
			!other.Status.IsRejected() {
			err = ErrDuplicateRequest
			return
		}
	}

	request = Request{
		RequestID:    s.idGenerator(),
		StudentRegNo: params.Principal.RegNo,
		StudentName:  params.Principal.Name,
		StudentEmail: params.Principal.Email,
		Dept:         params.Principal.Dept,
		RequestType:  input.RequestType,
		FromDate:     input.FromDate,
		ToDate:       input.ToDate,
		NoOfDays:     noOfDays,
		Reason:       input.Reason,
		AppliedDate:  FormatDate(s.now()),
		Status:       StatusPendingTeacher,
	}

	if err = s.requests.AddRequest(ctx, request); err != nil {
		err = mapRequestRepoError(err)
		request = Request{}
		return
	}

	s.stats.Invalidate()
	return
}

// TeacherDecide applies a teacher's approve, reject, or forward decision to a
// request that is pending teacher approval.
func (s *RequestService) TeacherDecide(ctx context.Context, params TeacherDecisionParams) (request Request, err error) {
	if s == nil {
		err = fmt.Errorf("RequestService is nil")
		return
	}
	if s.requests == nil {
		err = fmt.Errorf("request repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "TeacherDecide",
		"request_id", params.RequestID,
		"action", string(params.Action),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to apply teacher decision", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(request.Status)).InfoContext(ctx, "teacher decision applied")
	}()

	if params.Principal.Role != RoleTeacher {
		err = ErrUnauthorized
		return
	}

	remark := strings.TrimSpace(params.Remark)

	vErr := &ValidationError{}
	switch params.Action {
	case ActionApprove, ActionReject, ActionForward:
	default:
		vErr.add("action", "action must be approve, reject, or forward")
	}
	if params.Action != ActionApprove && remark == "" {
		vErr.add("remark", "remark is required for reject and forward actions")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var current Request
	current, err = s.requests.GetRequest(ctx, params.RequestID)
	if err != nil {
		err = mapRequestRepoError(err)
		return
	}
	if current.Status != StatusPendingTeacher {
		err = ErrNotPending
		return
	}

	var next RequestStatus
	switch params.Action {
	case ActionApprove:
		if current.NoOfDays > ShortRequestDays {
			vErr.add("noOfDays", fmt.Sprintf("requests longer than %d days must be forwarded to the HOD", ShortRequestDays))
			err = vErr
			return
		}
		next = StatusApprovedByTeacher
	case ActionReject:
		next = StatusRejectedByTeacher
	case ActionForward:
		if current.NoOfDays <= ShortRequestDays {
			vErr.add("noOfDays", fmt.Sprintf("requests of %d days or fewer are approved or rejected directly, not forwarded", ShortRequestDays))
			err = vErr
			return
		}
		next = StatusForwardedToHOD
	}

	actionDate := FormatDate(s.now())
	request, err = s.requests.UpdateRequest(ctx, params.RequestID, RequestPatch{
		Status:            &next,
		TeacherRemark:     &remark,
		TeacherActionDate: &actionDate,
	})
	if err != nil {
		err = mapRequestRepoError(err)
		return
	}

	s.stats.Invalidate()
	return
}

// HODDecide applies a HOD's approve or reject decision to a request that was
// forwarded by a teacher.
func (s *RequestService) HODDecide(ctx context.Context, params HODDecisionParams) (request Request, err error) {
	if s == nil {
		err = fmt.Errorf("RequestService is nil")
		return
	}
	if s.requests == nil {
		err = fmt.Errorf("request repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "HODDecide",
		"request_id", params.RequestID,
		"action", string(params.Action),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to apply HOD decision", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", string(request.Status)).InfoContext(ctx, "HOD decision applied")
	}()

	if params.Principal.Role != RoleHOD {
		err = ErrUnauthorized
		return
	}

	remark := strings.TrimSpace(params.Remark)

	vErr := &ValidationError{}
	switch params.Action {
	case ActionApprove, ActionReject:
	default:
		vErr.add("action", "action must be approve or reject")
	}
	if params.Action == ActionReject && remark == "" {
		vErr.add("remark", "remark is required for reject action")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var current Request
	current, err = s.requests.GetRequest(ctx, params.RequestID)
	if err != nil {
		err = mapRequestRepoError(err)
		return
	}
	if current.Status != StatusForwardedToHOD {
		err = ErrNotPending
		return
	}

	next := StatusApprovedByHOD
	if params.Action == ActionReject {
		next = StatusRejectedByHOD
	}

	actionDate := FormatDate(s.now())
	request, err = s.requests.UpdateRequest(ctx, params.RequestID, RequestPatch{
		Status:        &next,
		HODRemark:     &remark,
		HODActionDate: &actionDate,
	})
	if err != nil {
		err = mapRequestRepoError(err)
		return
	}

	s.stats.Invalidate()
	return
}

// validateRequestInput checks the student-supplied fields and returns the
// inclusive day count when the range parses.
func validateRequestInput(input RequestInput) (int, *ValidationError) {
	vErr := &ValidationError{}

	if input.RequestType == "" {
		vErr.add("requestType", "request type is required")
	}
	if input.Reason == "" {
		vErr.add("reason", "reason is required")
	}
	if input.FromDate == "" {
		vErr.add("fromDate", "from date is required")
	}
	if input.ToDate == "" {
		vErr.add("toDate", "to date is required")
	}
	if vErr.HasErrors() {
		return 0, vErr
	}

	from, err := ParseDate(input.FromDate)
	if err != nil {
		vErr.add("fromDate", "from date must use the YYYY-MM-DD format")
	}
	to, err := ParseDate(input.ToDate)
	if err != nil {
		vErr.add("toDate", "to date must use the YYYY-MM-DD format")
	}
	if vErr.HasErrors() {
		return 0, vErr
	}

	if from.After(to) {
		vErr.add("fromDate", "from date cannot be after to date")
		return 0, vErr
	}

	noOfDays := InclusiveDays(from, to)
	if noOfDays <= 0 {
		vErr.add("toDate", "date range must cover at least one day")
		return 0, vErr
	}

	return noOfDays, vErr
}

// mapRequestRepoError converts repository sentinels into application errors.
func mapRequestRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
