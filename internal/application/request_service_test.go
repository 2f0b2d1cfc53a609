package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubRequestRepo struct {
	requests []Request
	addErr   error
	listErr  error
}

func (s *stubRequestRepo) ListRequests(ctx context.Context) ([]Request, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]Request(nil), s.requests...), nil
}

func (s *stubRequestRepo) GetRequest(ctx context.Context, requestID string) (Request, error) {
	for _, request := range s.requests {
		if request.RequestID == requestID {
			return request, nil
		}
	}
	return Request{}, ErrNotFound
}

func (s *stubRequestRepo) AddRequest(ctx context.Context, request Request) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.requests = append(s.requests, request)
	return nil
}

func (s *stubRequestRepo) UpdateRequest(ctx context.Context, requestID string, patch RequestPatch) (Request, error) {
	for i := range s.requests {
		if s.requests[i].RequestID == requestID {
			if patch.Status != nil {
				s.requests[i].Status = *patch.Status
			}
			if patch.TeacherRemark != nil {
				s.requests[i].TeacherRemark = *patch.TeacherRemark
			}
			if patch.TeacherActionDate != nil {
				s.requests[i].TeacherActionDate = *patch.TeacherActionDate
			}
			if patch.HODRemark != nil {
				s.requests[i].HODRemark = *patch.HODRemark
			}
			if patch.HODActionDate != nil {
				s.requests[i].HODActionDate = *patch.HODActionDate
			}
			return s.requests[i], nil
		}
	}
	return Request{}, ErrNotFound
}

var testNow = time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func studentPrincipal() Principal {
	return Principal{
		Role:  RoleStudent,
		Name:  "Asha Verma",
		Email: "asha@example.edu",
		RegNo: "REG001",
		Dept:  "CSE",
	}
}

func teacherPrincipal() Principal {
	return Principal{Role: RoleTeacher, Name: "Prof. Anand", Email: "anand@example.edu", Dept: "CSE"}
}

func hodPrincipal() Principal {
	return Principal{Role: RoleHOD, Name: "Dr. Rao", Email: "rao@example.edu", Dept: "CSE"}
}

func pendingRequest(id string, days int) Request {
	return Request{
		RequestID:    id,
		StudentRegNo: "REG001",
		StudentName:  "Asha Verma",
		Dept:         "CSE",
		RequestType:  "Leave",
		FromDate:     "2024-03-05",
		ToDate:       FormatDate(testNow.AddDate(0, 0, days)),
		NoOfDays:     days,
		Reason:       "Family function",
		AppliedDate:  "2024-03-04",
		Status:       StatusPendingTeacher,
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	repo := &stubRequestRepo{}
	svc := NewRequestService(repo, func() string { return "req-1" }, fixedNow)

	request, err := svc.Submit(context.Background(), SubmitRequestParams{
		Principal: studentPrincipal(),
		Input: RequestInput{
			RequestType: "  Leave  ",
			FromDate:    "2024-03-05",
			ToDate:      "2024-03-07",
			Reason:      "Family function",
		},
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if request.RequestID != "req-1" {
		t.Errorf("unexpected request ID %q", request.RequestID)
	}
	if request.Status != StatusPendingTeacher {
		t.Errorf("expected pending status, got %q", request.Status)
	}
	if request.NoOfDays != 3 {
		t.Errorf("expected 3 days, got %d", request.NoOfDays)
	}
	if request.AppliedDate != "2024-03-04" {
		t.Errorf("unexpected applied date %q", request.AppliedDate)
	}
	if request.RequestType != "Leave" {
		t.Errorf("input was not trimmed: %q", request.RequestType)
	}
	if request.StudentRegNo != "REG001" || request.Dept != "CSE" {
		t.Errorf("student identity not copied from principal: %+v", request)
	}
	if len(repo.requests) != 1 {
		t.Fatalf("expected one stored request, got %d", len(repo.requests))
	}
}

func TestSubmitRejectsNonStudents(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, func() string { return "req-1" }, fixedNow)

	for _, principal := range []Principal{teacherPrincipal(), hodPrincipal(), {}} {
		_, err := svc.Submit(context.Background(), SubmitRequestParams{
			Principal: principal,
			Input:     RequestInput{RequestType: "Leave", FromDate: "2024-03-05", ToDate: "2024-03-05", Reason: "x"},
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("role %q: expected ErrUnauthorized, got %v", principal.Role, err)
		}
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, func() string { return "req-1" }, fixedNow)

	cases := []struct {
		name  string
		input RequestInput
		field string
	}{
		{
			name:  "missing type",
			input: RequestInput{FromDate: "2024-03-05", ToDate: "2024-03-05", Reason: "x"},
			field: "requestType",
		},
		{
			name:  "missing reason",
			input: RequestInput{RequestType: "Leave", FromDate: "2024-03-05", ToDate: "2024-03-05"},
			field: "reason",
		},
		{
			name:  "bad from date",
			input: RequestInput{RequestType: "Leave", FromDate: "05-03-2024", ToDate: "2024-03-05", Reason: "x"},
			field: "fromDate",
		},
		{
			name:  "reversed range",
			input: RequestInput{RequestType: "Leave", FromDate: "2024-03-07", ToDate: "2024-03-05", Reason: "x"},
			field: "fromDate",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), SubmitRequestParams{Principal: studentPrincipal(), Input: tc.input})
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Errorf("expected field %q in %v", tc.field, vErr.FieldErrors)
			}
		})
	}
}

func TestSubmitRejectsDuplicateDateRange(t *testing.T) {
	existing := pendingRequest("req-1", 1)
	existing.FromDate = "2024-03-05"
	existing.ToDate = "2024-03-07"
	repo := &stubRequestRepo{requests: []Request{existing}}
	svc := NewRequestService(repo, func() string { return "req-2" }, fixedNow)

	input := RequestInput{RequestType: "Leave", FromDate: "2024-03-05", ToDate: "2024-03-07", Reason: "Again"}

	_, err := svc.Submit(context.Background(), SubmitRequestParams{Principal: studentPrincipal(), Input: input})
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}

	// A rejected request frees the slot for resubmission.
	repo.requests[0].Status = StatusRejectedByTeacher
	if _, err := svc.Submit(context.Background(), SubmitRequestParams{Principal: studentPrincipal(), Input: input}); err != nil {
		t.Fatalf("resubmission after rejection failed: %v", err)
	}
}

func TestTeacherDecideApprovesShortRequest(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 2)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	request, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
		Remark:    "ok",
	})
	if err != nil {
		t.Fatalf("TeacherDecide returned error: %v", err)
	}
	if request.Status != StatusApprovedByTeacher {
		t.Errorf("expected approved status, got %q", request.Status)
	}
	if request.TeacherActionDate != "2024-03-04" {
		t.Errorf("unexpected action date %q", request.TeacherActionDate)
	}
	if request.TeacherRemark != "ok" {
		t.Errorf("unexpected remark %q", request.TeacherRemark)
	}
}

func TestTeacherDecideRefusesApprovingLongRequest(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 3)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.requests[0].Status != StatusPendingTeacher {
		t.Errorf("request was mutated: %q", repo.requests[0].Status)
	}
}

func TestTeacherDecideForwardsLongRequest(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 3)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	request, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionForward,
		Remark:    "needs HOD sign off",
	})
	if err != nil {
		t.Fatalf("TeacherDecide returned error: %v", err)
	}
	if request.Status != StatusForwardedToHOD {
		t.Errorf("expected forwarded status, got %q", request.Status)
	}
}

func TestTeacherDecideRefusesForwardingShortRequest(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 2)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionForward,
		Remark:    "escalating anyway",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTeacherDecideRequiresRemarkExceptApprove(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 3)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	for _, action := range []ReviewAction{ActionReject, ActionForward} {
		_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
			Principal: teacherPrincipal(),
			RequestID: "req-1",
			Action:    action,
			Remark:    "   ",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("action %q: expected validation error, got %v", action, err)
			continue
		}
		if _, ok := vErr.FieldErrors["remark"]; !ok {
			t.Errorf("action %q: expected remark field error, got %v", action, vErr.FieldErrors)
		}
	}
}

func TestTeacherDecideRejectsInvalidAction(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ReviewAction("escalate"),
		Remark:    "x",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTeacherDecideWrongState(t *testing.T) {
	decided := pendingRequest("req-1", 2)
	decided.Status = StatusApprovedByTeacher
	repo := &stubRequestRepo{requests: []Request{decided}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestTeacherDecideUnknownRequest(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "missing",
		Action:    ActionApprove,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeacherDecideRejectsNonTeachers(t *testing.T) {
	svc := NewRequestService(&stubRequestRepo{}, func() string { return "" }, fixedNow)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: hodPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHODDecideApprovesForwardedRequest(t *testing.T) {
	forwarded := pendingRequest("req-1", 4)
	forwarded.Status = StatusForwardedToHOD
	repo := &stubRequestRepo{requests: []Request{forwarded}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	request, err := svc.HODDecide(context.Background(), HODDecisionParams{
		Principal: hodPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	if err != nil {
		t.Fatalf("HODDecide returned error: %v", err)
	}
	if request.Status != StatusApprovedByHOD {
		t.Errorf("expected approved status, got %q", request.Status)
	}
	if request.HODActionDate != "2024-03-04" {
		t.Errorf("unexpected action date %q", request.HODActionDate)
	}
}

func TestHODDecideRejectRequiresRemark(t *testing.T) {
	forwarded := pendingRequest("req-1", 4)
	forwarded.Status = StatusForwardedToHOD
	svc := NewRequestService(&stubRequestRepo{requests: []Request{forwarded}}, func() string { return "" }, fixedNow)

	_, err := svc.HODDecide(context.Background(), HODDecisionParams{
		Principal: hodPrincipal(),
		RequestID: "req-1",
		Action:    ActionReject,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["remark"]; !ok {
		t.Errorf("expected remark field error, got %v", vErr.FieldErrors)
	}
}

func TestHODDecideRejectsForwardAction(t *testing.T) {
	forwarded := pendingRequest("req-1", 4)
	forwarded.Status = StatusForwardedToHOD
	svc := NewRequestService(&stubRequestRepo{requests: []Request{forwarded}}, func() string { return "" }, fixedNow)

	_, err := svc.HODDecide(context.Background(), HODDecisionParams{
		Principal: hodPrincipal(),
		RequestID: "req-1",
		Action:    ActionForward,
		Remark:    "x",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHODDecideWrongState(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 4)}}
	svc := NewRequestService(repo, func() string { return "" }, fixedNow)

	_, err := svc.HODDecide(context.Background(), HODDecisionParams{
		Principal: hodPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestSuccessfulTransitionsInvalidateStatsCache(t *testing.T) {
	repo := &stubRequestRepo{requests: []Request{pendingRequest("req-1", 2)}}
	cache := NewStatsCache(time.Minute, 8, fixedNow)
	cache.Store("scope", DashboardStats{Total: 9})
	svc := NewRequestServiceWithLogger(repo, func() string { return "req-2" }, fixedNow, cache, nil)

	_, err := svc.TeacherDecide(context.Background(), TeacherDecisionParams{
		Principal: teacherPrincipal(),
		RequestID: "req-1",
		Action:    ActionApprove,
	})
	if err != nil {
		t.Fatalf("TeacherDecide returned error: %v", err)
	}
	if _, ok := cache.Get("scope"); ok {
		t.Error("cache entry survived a successful transition")
	}
}
