package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/leave-portal/internal/application"
	"github.com/example/leave-portal/internal/persistence"
)

var (
	studentCounter uint64
	staffCounter   uint64
	requestCounter uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Student fixtures ----------------------------

// StudentFixture represents a deterministic student account that can be
// materialised for application or persistence tests.
type StudentFixture struct {
	RegNo        string
	Name         string
	Email        string
	Dept         string
	Year         string
	Semester     string
	Mobile       string
	Tutor        string
	PasswordHash string
}

// StudentOption configures the generated student fixture.
type StudentOption func(*StudentFixture)

// NewStudentFixture returns a deterministic student fixture with optional overrides.
func NewStudentFixture(opts ...StudentOption) StudentFixture {
	idx := atomic.AddUint64(&studentCounter, 1)
	regNo := fmt.Sprintf("REG%03d", idx)
	fixture := StudentFixture{
		RegNo:        regNo,
		Name:         fmt.Sprintf("Student %03d", idx),
		Email:        fmt.Sprintf("student%03d@example.edu", idx),
		Dept:         "CSE",
		Year:         "III",
		Semester:     "5",
		Mobile:       fmt.Sprintf("90000000%02d", idx%100),
		Tutor:        "Prof. Anand",
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithStudentRegNo overrides the generated registration number.
func WithStudentRegNo(regNo string) StudentOption {
	return func(f *StudentFixture) {
		f.RegNo = regNo
	}
}

// WithStudentName overrides the generated name.
func WithStudentName(name string) StudentOption {
	return func(f *StudentFixture) {
		f.Name = name
	}
}

// WithStudentEmail overrides the generated email address.
func WithStudentEmail(email string) StudentOption {
	return func(f *StudentFixture) {
		f.Email = email
	}
}

// WithStudentDept overrides the generated department.
func WithStudentDept(dept string) StudentOption {
	return func(f *StudentFixture) {
		f.Dept = dept
	}
}

// WithStudentPasswordHash overrides the generated password hash.
func WithStudentPasswordHash(hash string) StudentOption {
	return func(f *StudentFixture) {
		f.PasswordHash = hash
	}
}

// Application returns the fixture as an application.StudentAccount value.
func (f StudentFixture) Application() application.StudentAccount {
	return application.StudentAccount{
		RegNo:        f.RegNo,
		Name:         f.Name,
		Email:        f.Email,
		Dept:         f.Dept,
		Year:         f.Year,
		Semester:     f.Semester,
		Mobile:       f.Mobile,
		Tutor:        f.Tutor,
		PasswordHash: f.PasswordHash,
	}
}

// Persistence returns the fixture as a persistence.Student value.
func (f StudentFixture) Persistence() persistence.Student {
	return persistence.Student{
		RegNo:        f.RegNo,
		Name:         f.Name,
		Email:        f.Email,
		Dept:         f.Dept,
		Year:         f.Year,
		Semester:     f.Semester,
		Mobile:       f.Mobile,
		Tutor:        f.Tutor,
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns the acting principal derived from the fixture.
func (f StudentFixture) Principal() application.Principal {
	return application.Principal{
		Role:     application.RoleStudent,
		Name:     f.Name,
		Email:    f.Email,
		RegNo:    f.RegNo,
		Dept:     f.Dept,
		Year:     f.Year,
		Semester: f.Semester,
	}
}

// Input returns the fixture as an application.StudentInput with the given
// plaintext password.
func (f StudentFixture) Input(password string) application.StudentInput {
	return application.StudentInput{
		RegNo:    f.RegNo,
		Name:     f.Name,
		Email:    f.Email,
		Dept:     f.Dept,
		Year:     f.Year,
		Semester: f.Semester,
		Mobile:   f.Mobile,
		Tutor:    f.Tutor,
		Password: password,
	}
}

// ----------------------------- Staff fixtures -----------------------------

// StaffFixture represents a deterministic teacher or HOD account.
type StaffFixture struct {
	Name         string
	Email        string
	Dept         string
	PasswordHash string
}

// StaffOption configures the generated staff fixture.
type StaffOption func(*StaffFixture)

// NewStaffFixture returns a deterministic staff fixture with optional overrides.
func NewStaffFixture(opts ...StaffOption) StaffFixture {
	idx := atomic.AddUint64(&staffCounter, 1)
	fixture := StaffFixture{
		Name:         fmt.Sprintf("Staff %03d", idx),
		Email:        fmt.Sprintf("staff%03d@example.edu", idx),
		Dept:         "CSE",
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithStaffName overrides the generated name.
func WithStaffName(name string) StaffOption {
	return func(f *StaffFixture) {
		f.Name = name
	}
}

// WithStaffEmail overrides the generated email address.
func WithStaffEmail(email string) StaffOption {
	return func(f *StaffFixture) {
		f.Email = email
	}
}

// WithStaffDept overrides the generated department.
func WithStaffDept(dept string) StaffOption {
	return func(f *StaffFixture) {
		f.Dept = dept
	}
}

// WithStaffPasswordHash overrides the generated password hash.
func WithStaffPasswordHash(hash string) StaffOption {
	return func(f *StaffFixture) {
		f.PasswordHash = hash
	}
}

// Application returns the fixture as an application.StaffAccount value.
func (f StaffFixture) Application() application.StaffAccount {
	return application.StaffAccount{
		Name:         f.Name,
		Email:        f.Email,
		Dept:         f.Dept,
		PasswordHash: f.PasswordHash,
	}
}

// Teacher returns the fixture as a persistence.Teacher value.
func (f StaffFixture) Teacher() persistence.Teacher {
	return persistence.Teacher{
		Email:        f.Email,
		Name:         f.Name,
		Dept:         f.Dept,
		PasswordHash: f.PasswordHash,
	}
}

// HOD returns the fixture as a persistence.HOD value.
func (f StaffFixture) HOD() persistence.HOD {
	return persistence.HOD{
		Email:        f.Email,
		Name:         f.Name,
		Dept:         f.Dept,
		PasswordHash: f.PasswordHash,
	}
}

// TeacherPrincipal returns a teacher principal derived from the fixture.
func (f StaffFixture) TeacherPrincipal() application.Principal {
	return application.Principal{
		Role:  application.RoleTeacher,
		Name:  f.Name,
		Email: f.Email,
		Dept:  f.Dept,
	}
}

// HODPrincipal returns a HOD principal derived from the fixture.
func (f StaffFixture) HODPrincipal() application.Principal {
	return application.Principal{
		Role:  application.RoleHOD,
		Name:  f.Name,
		Email: f.Email,
		Dept:  f.Dept,
	}
}

// Input returns the fixture as an application.StaffInput with the given
// plaintext password.
func (f StaffFixture) Input(password string) application.StaffInput {
	return application.StaffInput{
		Name:     f.Name,
		Email:    f.Email,
		Dept:     f.Dept,
		Password: password,
	}
}

// ---------------------------- Request fixtures ----------------------------

// RequestFixture represents a deterministic leave/OD request.
type RequestFixture struct {
	RequestID         string
	StudentRegNo      string
	StudentName       string
	StudentEmail      string
	Dept              string
	RequestType       string
	FromDate          string
	ToDate            string
	NoOfDays          int
	Reason            string
	AppliedDate       string
	Status            application.RequestStatus
	TeacherRemark     string
	HODRemark         string
	TeacherActionDate string
	HODActionDate     string
}

// RequestOption configures the generated request fixture.
type RequestOption func(*RequestFixture)

// NewRequestFixture returns a deterministic request fixture with optional
// overrides. The default is a one day leave request pending teacher approval.
func NewRequestFixture(opts ...RequestOption) RequestFixture {
	idx := atomic.AddUint64(&requestCounter, 1)
	day := referenceTime.AddDate(0, 0, int(idx))
	fixture := RequestFixture{
		RequestID:    fmt.Sprintf("request-%03d", idx),
		StudentRegNo: fmt.Sprintf("REG%03d", idx),
		StudentName:  fmt.Sprintf("Student %03d", idx),
		StudentEmail: fmt.Sprintf("student%03d@example.edu", idx),
		Dept:         "CSE",
		RequestType:  "Leave",
		FromDate:     application.FormatDate(day),
		ToDate:       application.FormatDate(day),
		NoOfDays:     1,
		Reason:       "Family function",
		AppliedDate:  application.FormatDate(referenceTime),
		Status:       application.StatusPendingTeacher,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRequestID overrides the generated request ID.
func WithRequestID(id string) RequestOption {
	return func(f *RequestFixture) {
		f.RequestID = id
	}
}

// WithRequestStudent binds the request to the given student fixture.
func WithRequestStudent(student StudentFixture) RequestOption {
	return func(f *RequestFixture) {
		f.StudentRegNo = student.RegNo
		f.StudentName = student.Name
		f.StudentEmail = student.Email
		f.Dept = student.Dept
	}
}

// WithRequestDept overrides the department.
func WithRequestDept(dept string) RequestOption {
	return func(f *RequestFixture) {
		f.Dept = dept
	}
}

// WithRequestType overrides the request type.
func WithRequestType(requestType string) RequestOption {
	return func(f *RequestFixture) {
		f.RequestType = requestType
	}
}

// WithRequestDates sets the date range and recomputes the day count.
func WithRequestDates(from, to string) RequestOption {
	return func(f *RequestFixture) {
		f.FromDate = from
		f.ToDate = to
		fromDay, errFrom := application.ParseDate(from)
		toDay, errTo := application.ParseDate(to)
		if errFrom == nil && errTo == nil {
			f.NoOfDays = application.InclusiveDays(fromDay, toDay)
		}
	}
}

// WithRequestAppliedDate overrides the applied date.
func WithRequestAppliedDate(date string) RequestOption {
	return func(f *RequestFixture) {
		f.AppliedDate = date
	}
}

// WithRequestStatus overrides the lifecycle status.
func WithRequestStatus(status application.RequestStatus) RequestOption {
	return func(f *RequestFixture) {
		f.Status = status
	}
}

// Application returns the fixture as an application.Request value.
func (f RequestFixture) Application() application.Request {
	return application.Request{
		RequestID:         f.RequestID,
		StudentRegNo:      f.StudentRegNo,
		StudentName:       f.StudentName,
		StudentEmail:      f.StudentEmail,
		Dept:              f.Dept,
		RequestType:       f.RequestType,
		FromDate:          f.FromDate,
		ToDate:            f.ToDate,
		NoOfDays:          f.NoOfDays,
		Reason:            f.Reason,
		AppliedDate:       f.AppliedDate,
		Status:            f.Status,
		TeacherRemark:     f.TeacherRemark,
		HODRemark:         f.HODRemark,
		TeacherActionDate: f.TeacherActionDate,
		HODActionDate:     f.HODActionDate,
	}
}

// Persistence returns the fixture as a persistence.Request value.
func (f RequestFixture) Persistence() persistence.Request {
	return persistence.Request{
		RequestID:         f.RequestID,
		StudentRegNo:      f.StudentRegNo,
		StudentName:       f.StudentName,
		StudentEmail:      f.StudentEmail,
		Dept:              f.Dept,
		RequestType:       f.RequestType,
		FromDate:          f.FromDate,
		ToDate:            f.ToDate,
		NoOfDays:          f.NoOfDays,
		Reason:            f.Reason,
		AppliedDate:       f.AppliedDate,
		Status:            string(f.Status),
		TeacherRemark:     f.TeacherRemark,
		HODRemark:         f.HODRemark,
		TeacherActionDate: f.TeacherActionDate,
		HODActionDate:     f.HODActionDate,
	}
}

// Input returns the student-supplied fields as an application.RequestInput.
func (f RequestFixture) Input() application.RequestInput {
	return application.RequestInput{
		RequestType: f.RequestType,
		FromDate:    f.FromDate,
		ToDate:      f.ToDate,
		Reason:      f.Reason,
	}
}
