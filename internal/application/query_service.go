package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// RequestSource exposes the read side of the request collection needed by
// the projection queries.
type RequestSource interface {
	ListRequests(ctx context.Context) ([]Request, error)
}

// StatsScopeKind selects how dashboard statistics are scoped.
type StatsScopeKind string

const (
	// StatsScopeStudent counts the requests of a single student.
	StatsScopeStudent StatsScopeKind = "student"
	// StatsScopeDepartment counts the requests of a whole department.
	StatsScopeDepartment StatsScopeKind = "department"
)

// StatsScope identifies whose requests a dashboard summary covers.
type StatsScope struct {
	Kind  StatsScopeKind
	RegNo string
	Dept  string
}

// QueryService derives dashboard statistics, action queues, and filtered
// histories from the request collection. All methods are pure reads.
type QueryService struct {
	requests RequestSource
	stats    *StatsCache
	logger   *slog.Logger
}

// NewQueryService constructs a query service with the provided dependencies.
func NewQueryService(requests RequestSource) *QueryService {
	return NewQueryServiceWithLogger(requests, nil, nil)
}

// NewQueryServiceWithLogger constructs a query service with a stats cache and
// a specified logger.
func NewQueryServiceWithLogger(requests RequestSource, stats *StatsCache, logger *slog.Logger) *QueryService {
	return &QueryService{requests: requests, stats: stats, logger: defaultLogger(logger)}
}

func (s *QueryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "QueryService", operation, attrs...)
}

// PendingForTeacher lists the requests awaiting the teacher's decision in the
// teacher's department, oldest first so the queue is worked in submission
// order.
func (s *QueryService) PendingForTeacher(ctx context.Context, principal Principal) (requests []Request, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.requests == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "PendingForTeacher", "dept", principal.Dept)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list pending requests", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(requests)).InfoContext(ctx, "pending requests listed")
	}()

	if principal.Role != RoleTeacher {
		err = ErrUnauthorized
		return
	}

	var all []Request
	all, err = s.requests.ListRequests(ctx)
	if err != nil {
		return
	}

	for _, request := range all {
		if request.Dept == principal.Dept && request.Status == StatusPendingTeacher {
			requests = append(requests, request)
		}
	}
	sortOldestFirst(requests)
	return
}

// ForwardedForHOD lists the requests forwarded to the HOD's department,
// oldest first.
func (s *QueryService) ForwardedForHOD(ctx context.Context, principal Principal) (requests []Request, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.requests == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "ForwardedForHOD", "dept", principal.Dept)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list forwarded requests", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(requests)).InfoContext(ctx, "forwarded requests listed")
	}()

	if principal.Role != RoleHOD {
		err = ErrUnauthorized
		return
	}

	var all []Request
	all, err = s.requests.ListRequests(ctx)
	if err != nil {
		return
	}

	for _, request := range all {
		if request.Dept == principal.Dept && request.Status == StatusForwardedToHOD {
			requests = append(requests, request)
		}
	}
	sortOldestFirst(requests)
	return
}

// HistoryForStudent lists the student's own requests, newest first, narrowed
// by the optional filter.
func (s *QueryService) HistoryForStudent(ctx context.Context, principal Principal, filter HistoryFilter) (requests []Request, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.requests == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "HistoryForStudent", "student_reg_no", principal.RegNo)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list request history", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(requests)).InfoContext(ctx, "request history listed")
	}()

	if principal.Role != RoleStudent {
		err = ErrUnauthorized
		return
	}

	var all []Request
	all, err = s.requests.ListRequests(ctx)
	if err != nil {
		return
	}

	for _, request := range all {
		if request.StudentRegNo == principal.RegNo && matchesHistoryFilter(request, filter) {
			requests = append(requests, request)
		}
	}
	sortNewestFirst(requests)
	return
}

// DepartmentHistory lists every request of the viewer's department, newest
// first, narrowed by the optional filter. Available to teachers and HODs.
func (s *QueryService) DepartmentHistory(ctx context.Context, principal Principal, filter HistoryFilter) (requests []Request, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.requests == nil {
		return nil, nil
	}

	logger := s.loggerWith(ctx, "DepartmentHistory", "dept", principal.Dept)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list department history", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(requests)).InfoContext(ctx, "department history listed")
	}()

	if principal.Role != RoleTeacher && principal.Role != RoleHOD {
		err = ErrUnauthorized
		return
	}

	var all []Request
	all, err = s.requests.ListRequests(ctx)
	if err != nil {
		return
	}

	for _, request := range all {
		if request.Dept == principal.Dept && matchesHistoryFilter(request, filter) {
			requests = append(requests, request)
		}
	}
	sortNewestFirst(requests)
	return
}

// DashboardStats summarizes the viewer's requests by status family. Students
// see their own requests; teachers and HODs see their department's.
func (s *QueryService) DashboardStats(ctx context.Context, principal Principal) (stats DashboardStats, err error) {
	if s == nil {
		err = fmt.Errorf("QueryService is nil")
		return
	}
	if s.requests == nil {
		return DashboardStats{}, nil
	}

	logger := s.loggerWith(ctx, "DashboardStats", "role", string(principal.Role))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute dashboard stats", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("total", stats.Total).InfoContext(ctx, "dashboard stats computed")
	}()

	var scope StatsScope
	switch principal.Role {
	case RoleStudent:
		scope = StatsScope{Kind: StatsScopeStudent, RegNo: principal.RegNo}
	case RoleTeacher, RoleHOD:
		scope = StatsScope{Kind: StatsScopeDepartment, Dept: principal.Dept}
	default:
		err = ErrUnauthorized
		return
	}

	key := buildStatsCacheKey(scope)
	if cached, ok := s.stats.Get(key); ok {
		stats = cached
		return
	}

	var all []Request
	all, err = s.requests.ListRequests(ctx)
	if err != nil {
		return
	}

	for _, request := range all {
		switch scope.Kind {
		case StatsScopeStudent:
			if request.StudentRegNo != scope.RegNo {
				continue
			}
		case StatsScopeDepartment:
			if request.Dept != scope.Dept {
				continue
			}
		}
		stats.Total++
		switch {
		case request.Status.IsApproved():
			stats.Approved++
		case request.Status.IsRejected():
			stats.Rejected++
		case request.Status.IsPending():
			stats.Pending++
		}
	}

	s.stats.Store(key, stats)
	return
}

// matchesHistoryFilter applies the combinable status and search predicates.
func matchesHistoryFilter(request Request, filter HistoryFilter) bool {
	if !filter.Status.Matches(request.Status) {
		return false
	}
	search := strings.TrimSpace(filter.Search)
	if search == "" {
		return true
	}
	lowered := strings.ToLower(search)
	return strings.Contains(strings.ToLower(request.RequestID), lowered) ||
		strings.Contains(strings.ToLower(request.RequestType), lowered)
}

// sortNewestFirst orders requests by applied date descending. Applied dates
// use the YYYY-MM-DD layout, so lexicographic comparison is chronological;
// ties break on request ID for determinism.
func sortNewestFirst(requests []Request) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].AppliedDate == requests[j].AppliedDate {
			return requests[i].RequestID > requests[j].RequestID
		}
		return requests[i].AppliedDate > requests[j].AppliedDate
	})
}

// sortOldestFirst orders requests by applied date ascending for FIFO action
// queues.
func sortOldestFirst(requests []Request) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].AppliedDate == requests[j].AppliedDate {
			return requests[i].RequestID < requests[j].RequestID
		}
		return requests[i].AppliedDate < requests[j].AppliedDate
	})
}
