package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/leave-portal/internal/persistence"
	"github.com/example/leave-portal/internal/testfixtures"
)

func TestRequestRepositoryContract(t *testing.T) {
	harness := testfixtures.NewLocalStoreHarness(t)
	ctx := context.Background()

	first := testfixtures.NewRequestFixture().Persistence()
	second := testfixtures.NewRequestFixture().Persistence()

	if err := harness.Requests.AddRequest(ctx, first); err != nil {
		t.Fatalf("AddRequest returned error: %v", err)
	}
	if err := harness.Requests.AddRequest(ctx, second); err != nil {
		t.Fatalf("AddRequest returned error: %v", err)
	}

	t.Run("rejects duplicate request IDs", func(t *testing.T) {
		if err := harness.Requests.AddRequest(ctx, first); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("lists in insertion order", func(t *testing.T) {
		requests, err := harness.Requests.ListRequests(ctx)
		if err != nil {
			t.Fatalf("ListRequests returned error: %v", err)
		}
		if len(requests) != 2 || requests[0].RequestID != first.RequestID || requests[1].RequestID != second.RequestID {
			t.Fatalf("unexpected listing: %+v", requests)
		}
	})

	t.Run("gets by ID", func(t *testing.T) {
		stored, err := harness.Requests.GetRequest(ctx, first.RequestID)
		if err != nil {
			t.Fatalf("GetRequest returned error: %v", err)
		}
		if stored != first {
			t.Errorf("round trip mismatch: %+v != %+v", stored, first)
		}

		if _, err := harness.Requests.GetRequest(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("applies partial updates", func(t *testing.T) {
		status := "Approved by Teacher"
		remark := "ok"
		actionDate := "2024-03-04"

		patched, err := harness.Requests.UpdateRequest(ctx, first.RequestID, persistence.RequestUpdate{
			Status:            &status,
			TeacherRemark:     &remark,
			TeacherActionDate: &actionDate,
		})
		if err != nil {
			t.Fatalf("UpdateRequest returned error: %v", err)
		}
		if patched.Status != status || patched.TeacherRemark != remark || patched.TeacherActionDate != actionDate {
			t.Errorf("patch not applied: %+v", patched)
		}
		if patched.Reason != first.Reason || patched.HODRemark != "" {
			t.Errorf("untouched fields changed: %+v", patched)
		}

		if _, err := harness.Requests.UpdateRequest(ctx, "missing", persistence.RequestUpdate{Status: &status}); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("replaces the whole collection", func(t *testing.T) {
		if err := harness.Requests.SaveRequests(ctx, nil); err != nil {
			t.Fatalf("SaveRequests returned error: %v", err)
		}
		requests, err := harness.Requests.ListRequests(ctx)
		if err != nil {
			t.Fatalf("ListRequests returned error: %v", err)
		}
		if len(requests) != 0 {
			t.Errorf("expected empty collection, got %+v", requests)
		}
	})
}

func TestStudentRepositoryContract(t *testing.T) {
	harness := testfixtures.NewLocalStoreHarness(t)
	ctx := context.Background()

	student := testfixtures.NewStudentFixture().Persistence()
	if err := harness.Students.AddStudent(ctx, student); err != nil {
		t.Fatalf("AddStudent returned error: %v", err)
	}

	if err := harness.Students.AddStudent(ctx, student); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for repeated reg no, got %v", err)
	}

	stored, err := harness.Students.GetStudentByRegNo(ctx, student.RegNo)
	if err != nil {
		t.Fatalf("GetStudentByRegNo returned error: %v", err)
	}
	if stored != student {
		t.Errorf("round trip mismatch: %+v != %+v", stored, student)
	}

	stored.Name = "Renamed"
	if err := harness.Students.UpdateStudent(ctx, student.RegNo, stored); err != nil {
		t.Fatalf("UpdateStudent returned error: %v", err)
	}
	updated, err := harness.Students.GetStudentByRegNo(ctx, student.RegNo)
	if err != nil {
		t.Fatalf("GetStudentByRegNo returned error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("update not persisted: %+v", updated)
	}

	if err := harness.Students.DeleteStudent(ctx, student.RegNo); err != nil {
		t.Fatalf("DeleteStudent returned error: %v", err)
	}
	if _, err := harness.Students.GetStudentByRegNo(ctx, student.RegNo); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := harness.Students.DeleteStudent(ctx, student.RegNo); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestStaffRepositoriesMatchEmailCaseInsensitively(t *testing.T) {
	harness := testfixtures.NewLocalStoreHarness(t)
	ctx := context.Background()

	staff := testfixtures.NewStaffFixture(testfixtures.WithStaffEmail("prof@example.edu"))

	if err := harness.Teachers.AddTeacher(ctx, staff.Teacher()); err != nil {
		t.Fatalf("AddTeacher returned error: %v", err)
	}
	if _, err := harness.Teachers.GetTeacherByEmail(ctx, "PROF@Example.EDU"); err != nil {
		t.Errorf("case insensitive teacher lookup failed: %v", err)
	}

	duplicate := staff.Teacher()
	duplicate.Email = "Prof@Example.edu"
	if err := harness.Teachers.AddTeacher(ctx, duplicate); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for same email spelled differently, got %v", err)
	}

	// The HOD collection is an independent namespace.
	if err := harness.HODs.AddHOD(ctx, staff.HOD()); err != nil {
		t.Fatalf("AddHOD returned error: %v", err)
	}
	stored, err := harness.HODs.GetHODByEmail(ctx, "prof@example.edu")
	if err != nil {
		t.Fatalf("GetHODByEmail returned error: %v", err)
	}

	stored.Dept = "ECE"
	if err := harness.HODs.UpdateHOD(ctx, stored.Email, stored); err != nil {
		t.Fatalf("UpdateHOD returned error: %v", err)
	}
	updated, err := harness.HODs.GetHODByEmail(ctx, stored.Email)
	if err != nil {
		t.Fatalf("GetHODByEmail returned error: %v", err)
	}
	if updated.Dept != "ECE" {
		t.Errorf("update not persisted: %+v", updated)
	}
}

func TestSessionStoreContract(t *testing.T) {
	harness := testfixtures.NewLocalStoreHarness(t)
	ctx := context.Background()

	if _, err := harness.Sessions.GetSession(ctx); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound with no session, got %v", err)
	}

	session := persistence.Session{
		Role:       "student",
		Name:       "Asha Verma",
		Email:      "asha@example.edu",
		RegNo:      "REG001",
		Dept:       "CSE",
		Token:      "tok-1",
		LoggedInAt: "2024-03-04T10:30:00Z",
	}
	if err := harness.Sessions.SetSession(ctx, session); err != nil {
		t.Fatalf("SetSession returned error: %v", err)
	}

	stored, err := harness.Sessions.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if stored != session {
		t.Errorf("round trip mismatch: %+v != %+v", stored, session)
	}

	// A later login replaces the single session record.
	session.Role = "teacher"
	session.RegNo = ""
	session.Token = "tok-2"
	if err := harness.Sessions.SetSession(ctx, session); err != nil {
		t.Fatalf("SetSession returned error: %v", err)
	}
	stored, err = harness.Sessions.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if stored.Token != "tok-2" || stored.Role != "teacher" {
		t.Errorf("session was not replaced: %+v", stored)
	}

	if err := harness.Sessions.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession returned error: %v", err)
	}
	if _, err := harness.Sessions.GetSession(ctx); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}
