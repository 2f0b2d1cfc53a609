package persistence

import "context"

// RequestRepository stores leave/OD requests as an ordered collection.
type RequestRepository interface {
	ListRequests(ctx context.Context) ([]Request, error)
	GetRequest(ctx context.Context, requestID string) (Request, error)
	AddRequest(ctx context.Context, request Request) error
	UpdateRequest(ctx context.Context, requestID string, update RequestUpdate) (Request, error)
	SaveRequests(ctx context.Context, requests []Request) error
}

// StudentRepository exposes CRUD operations for student accounts keyed by
// registration number.
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]Student, error)
	GetStudentByRegNo(ctx context.Context, regNo string) (Student, error)
	AddStudent(ctx context.Context, student Student) error
	UpdateStudent(ctx context.Context, regNo string, student Student) error
	DeleteStudent(ctx context.Context, regNo string) error
}

// TeacherRepository exposes CRUD operations for teacher accounts keyed by
// email address.
type TeacherRepository interface {
	ListTeachers(ctx context.Context) ([]Teacher, error)
	GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
	AddTeacher(ctx context.Context, teacher Teacher) error
	UpdateTeacher(ctx context.Context, email string, teacher Teacher) error
}

// HODRepository exposes CRUD operations for HOD accounts keyed by email
// address.
type HODRepository interface {
	ListHODs(ctx context.Context) ([]HOD, error)
	GetHODByEmail(ctx context.Context, email string) (HOD, error)
	AddHOD(ctx context.Context, hod HOD) error
	UpdateHOD(ctx context.Context, email string, hod HOD) error
}

// SessionStore holds the single currentUser record. GetSession returns
// ErrNotFound when no user is logged in.
type SessionStore interface {
	GetSession(ctx context.Context) (Session, error)
	SetSession(ctx context.Context, session Session) error
	ClearSession(ctx context.Context) error
}
