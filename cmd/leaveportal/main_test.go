package main

import (
	"context"
	"strings"
	"testing"

	"github.com/example/leave-portal/internal/application"
	"github.com/example/leave-portal/internal/persistence"
)

func TestParseStatusFilter(t *testing.T) {
	cases := []struct {
		value string
		want  application.StatusFilter
	}{
		{"", application.StatusFilter{}},
		{"  ", application.StatusFilter{}},
		{"Pending", application.StatusFilter{Family: application.FamilyPending}},
		{"Approved", application.StatusFilter{Family: application.FamilyApproved}},
		{"Rejected", application.StatusFilter{Family: application.FamilyRejected}},
		{"Forwarded", application.StatusFilter{Family: application.FamilyForwarded}},
		{"Approved by HOD", application.StatusFilter{Exact: application.StatusApprovedByHOD}},
		{"Forwarded to HOD", application.StatusFilter{Exact: application.StatusForwardedToHOD}},
	}

	for _, tc := range cases {
		if got := parseStatusFilter(tc.value); got != tc.want {
			t.Errorf("parseStatusFilter(%q) = %+v, want %+v", tc.value, got, tc.want)
		}
	}
}

func TestRenderErrorListsFieldsInOrder(t *testing.T) {
	vErr := &application.ValidationError{FieldErrors: map[string]string{
		"toDate":   "to date is required",
		"fromDate": "from date is required",
		"reason":   "reason is required",
	}}

	got := renderError(vErr)
	want := "validation failed: fromDate: from date is required; reason: reason is required; toDate: to date is required"
	if got != want {
		t.Errorf("renderError = %q, want %q", got, want)
	}
}

func TestRenderErrorPassesThroughPlainErrors(t *testing.T) {
	if got := renderError(application.ErrUnauthorized); !strings.Contains(got, "unauthorized") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestRequestConvertersRoundTrip(t *testing.T) {
	request := application.Request{
		RequestID:         "req-1",
		StudentRegNo:      "REG001",
		StudentName:       "Asha Verma",
		StudentEmail:      "asha@example.edu",
		Dept:              "CSE",
		RequestType:       "Leave",
		FromDate:          "2024-03-04",
		ToDate:            "2024-03-06",
		NoOfDays:          3,
		Reason:            "Family function",
		AppliedDate:       "2024-03-01",
		Status:            application.StatusForwardedToHOD,
		TeacherRemark:     "needs HOD sign off",
		TeacherActionDate: "2024-03-02",
	}

	if got := toApplicationRequest(toPersistenceRequest(request)); got != request {
		t.Errorf("round trip mismatch: %+v != %+v", got, request)
	}
}

func TestStudentConvertersRoundTrip(t *testing.T) {
	student := application.StudentAccount{
		RegNo:        "REG001",
		Name:         "Asha Verma",
		Email:        "asha@example.edu",
		Dept:         "CSE",
		Year:         "3",
		Semester:     "6",
		Mobile:       "9876543210",
		Tutor:        "Prof. Rao",
		PasswordHash: "$argon2id$...",
	}

	if got := toApplicationStudent(toPersistenceStudent(student)); got != student {
		t.Errorf("round trip mismatch: %+v != %+v", got, student)
	}
}

func TestSessionConvertersRoundTrip(t *testing.T) {
	session := application.Session{
		Account: application.Account{
			Role:     application.RoleStudent,
			Name:     "Asha Verma",
			Email:    "asha@example.edu",
			RegNo:    "REG001",
			Dept:     "CSE",
			Year:     "3",
			Semester: "6",
		},
		Token:      "tok-1",
		LoggedInAt: "2024-03-04T10:30:00Z",
	}

	stored := toPersistenceSession(session)
	if stored.Role != "student" || stored.RegNo != "REG001" || stored.Token != "tok-1" {
		t.Fatalf("unexpected stored session: %+v", stored)
	}
	if got := toApplicationSession(stored); got != session {
		t.Errorf("round trip mismatch: %+v != %+v", got, session)
	}

	// Staff sessions carry no reg no or year fields.
	stored = toPersistenceSession(application.Session{
		Account: application.Account{Role: application.RoleHOD, Name: "Dr. Iyer", Email: "hod@example.edu", Dept: "CSE"},
		Token:   "tok-2",
	})
	if stored.RegNo != "" || stored.Year != "" || stored.Semester != "" {
		t.Errorf("staff session carries student fields: %+v", stored)
	}
}

type capturingRequestRepo struct {
	persistence.RequestRepository
	lastID     string
	lastUpdate persistence.RequestUpdate
}

func (r *capturingRequestRepo) UpdateRequest(_ context.Context, requestID string, update persistence.RequestUpdate) (persistence.Request, error) {
	r.lastID = requestID
	r.lastUpdate = update
	return persistence.Request{RequestID: requestID, Status: valueOr(update.Status)}, nil
}

func valueOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TestRequestRepositoryAdapterMapsPatch(t *testing.T) {
	repo := &capturingRequestRepo{}
	adapter := newRequestRepositoryAdapter(repo)

	status := application.StatusApprovedByTeacher
	remark := "ok"
	updated, err := adapter.UpdateRequest(context.Background(), "req-1", application.RequestPatch{
		Status:        &status,
		TeacherRemark: &remark,
	})
	if err != nil {
		t.Fatalf("UpdateRequest returned error: %v", err)
	}

	if repo.lastID != "req-1" {
		t.Errorf("wrong request ID: %q", repo.lastID)
	}
	if repo.lastUpdate.Status == nil || *repo.lastUpdate.Status != "Approved by Teacher" {
		t.Errorf("status not mapped: %+v", repo.lastUpdate)
	}
	if repo.lastUpdate.TeacherRemark == nil || *repo.lastUpdate.TeacherRemark != "ok" {
		t.Errorf("remark not carried: %+v", repo.lastUpdate)
	}
	if repo.lastUpdate.HODRemark != nil || repo.lastUpdate.TeacherActionDate != nil {
		t.Errorf("unset fields populated: %+v", repo.lastUpdate)
	}
	if updated.Status != application.StatusApprovedByTeacher {
		t.Errorf("result not converted back: %+v", updated)
	}
}
