package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/leave-portal/internal/persistence"
)

// StudentAccount is a stored student account including the password hash.
type StudentAccount struct {
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

// Account tags the record with the student role for session use.
func (a StudentAccount) Account() Account {
	return Account{
		Role:     RoleStudent,
		Name:     a.Name,
		Email:    a.Email,
		RegNo:    a.RegNo,
		Dept:     a.Dept,
		Year:     a.Year,
		Semester: a.Semester,
		Mobile:   a.Mobile,
		Tutor:    a.Tutor,
	}
}

// StaffAccount is a stored teacher or HOD account including the password
// hash. The same shape serves both staff collections; the role comes from the
// collection the record was resolved from.
type StaffAccount struct {
	Name         string
	Email        string
	Dept         string
	PasswordHash string
}

// Account tags the record with the given staff role for session use.
func (a StaffAccount) Account(role Role) Account {
	return Account{
		Role:  role,
		Name:  a.Name,
		Email: a.Email,
		Dept:  a.Dept,
	}
}

// StudentRepository captures the persistence operations needed for student
// account management. Students are keyed by registration number.
type StudentRepository interface {
	ListStudents(ctx context.Context) ([]StudentAccount, error)
	GetStudent(ctx context.Context, regNo string) (StudentAccount, error)
	AddStudent(ctx context.Context, student StudentAccount) error
	UpdateStudent(ctx context.Context, student StudentAccount) error
	DeleteStudent(ctx context.Context, regNo string) error
}

// TeacherRepository captures the persistence operations needed for teacher
// account management. Teachers are keyed by email address.
type TeacherRepository interface {
	GetTeacher(ctx context.Context, email string) (StaffAccount, error)
	AddTeacher(ctx context.Context, teacher StaffAccount) error
	UpdateTeacher(ctx context.Context, teacher StaffAccount) error
}

// HODRepository captures the persistence operations needed for HOD account
// management. HODs are keyed by email address.
type HODRepository interface {
	GetHOD(ctx context.Context, email string) (StaffAccount, error)
	AddHOD(ctx context.Context, hod StaffAccount) error
	UpdateHOD(ctx context.Context, hod StaffAccount) error
}

// AccountService manages the three account collections: registration,
// profile updates, and removal. Profile updates to the logged-in account
// re-sync the stored session so the principal never goes stale.
type AccountService struct {
	students   StudentRepository
	teachers   TeacherRepository
	hods       HODRepository
	sessions   SessionStore
	hashParams Argon2idParams
	logger     *slog.Logger
}

// NewAccountService constructs an account service with the provided dependencies.
func NewAccountService(students StudentRepository, teachers TeacherRepository, hods HODRepository, sessions SessionStore) *AccountService {
	return NewAccountServiceWithLogger(students, teachers, hods, sessions, nil)
}

// NewAccountServiceWithLogger constructs an account service with a specified logger.
func NewAccountServiceWithLogger(students StudentRepository, teachers TeacherRepository, hods HODRepository, sessions SessionStore, logger *slog.Logger) *AccountService {
	return &AccountService{
		students:   students,
		teachers:   teachers,
		hods:       hods,
		sessions:   sessions,
		hashParams: DefaultArgon2idParams,
		logger:     defaultLogger(logger),
	}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// RegisterStudent creates a student account. Registration is open; the new
// account cannot shadow an existing registration number.
func (s *AccountService) RegisterStudent(ctx context.Context, input StudentInput) (student StudentAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.students == nil {
		err = fmt.Errorf("student repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "RegisterStudent", "student_reg_no", input.RegNo)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register student", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "student registered")
	}()

	input = normalizeStudentInput(input)
	vErr := validateStudentInput(input, true)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	if _, getErr := s.students.GetStudent(ctx, input.RegNo); getErr == nil {
		err = ErrAlreadyExists
		return
	} else if !isNotFound(getErr) {
		err = getErr
		return
	}

	var hash string
	hash, err = HashPassword(input.Password, s.hashParams)
	if err != nil {
		return
	}

	student = StudentAccount{
		RegNo:        input.RegNo,
		Name:         input.Name,
		Email:        input.Email,
		Dept:         input.Dept,
		Year:         input.Year,
		Semester:     input.Semester,
		Mobile:       input.Mobile,
		Tutor:        input.Tutor,
		PasswordHash: hash,
	}
	if err = s.students.AddStudent(ctx, student); err != nil {
		err = mapAccountRepoError(err)
		student = StudentAccount{}
		return
	}
	return
}

// RegisterTeacher creates a teacher account keyed by email.
func (s *AccountService) RegisterTeacher(ctx context.Context, input StaffInput) (teacher StaffAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.teachers == nil {
		err = fmt.Errorf("teacher repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "RegisterTeacher", "email", input.Email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register teacher", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "teacher registered")
	}()

	teacher, err = s.registerStaff(ctx, input, staffRepoFuncs{
		get: s.teachers.GetTeacher,
		add: s.teachers.AddTeacher,
	})
	return
}

// RegisterHOD creates a HOD account keyed by email.
func (s *AccountService) RegisterHOD(ctx context.Context, input StaffInput) (hod StaffAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.hods == nil {
		err = fmt.Errorf("HOD repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "RegisterHOD", "email", input.Email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register HOD", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "HOD registered")
	}()

	hod, err = s.registerStaff(ctx, input, staffRepoFuncs{
		get: s.hods.GetHOD,
		add: s.hods.AddHOD,
	})
	return
}

// staffRepoFuncs lets the staff registration path work against either staff
// collection.
type staffRepoFuncs struct {
	get func(ctx context.Context, email string) (StaffAccount, error)
	add func(ctx context.Context, staff StaffAccount) error
}

func (s *AccountService) registerStaff(ctx context.Context, input StaffInput, repo staffRepoFuncs) (StaffAccount, error) {
	input = normalizeStaffInput(input)
	vErr := validateStaffInput(input, true)
	if vErr.HasErrors() {
		return StaffAccount{}, vErr
	}

	if _, getErr := repo.get(ctx, input.Email); getErr == nil {
		return StaffAccount{}, ErrAlreadyExists
	} else if !isNotFound(getErr) {
		return StaffAccount{}, getErr
	}

	hash, err := HashPassword(input.Password, s.hashParams)
	if err != nil {
		return StaffAccount{}, err
	}

	staff := StaffAccount{
		Name:         input.Name,
		Email:        input.Email,
		Dept:         input.Dept,
		PasswordHash: hash,
	}
	if err := repo.add(ctx, staff); err != nil {
		return StaffAccount{}, mapAccountRepoError(err)
	}
	return staff, nil
}

// UpdateStudent edits a student profile. Students may edit their own profile;
// teachers may edit any student in their department. An empty password keeps
// the stored hash. Department changes do not touch already filed requests.
func (s *AccountService) UpdateStudent(ctx context.Context, principal Principal, input StudentInput) (student StudentAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.students == nil {
		err = fmt.Errorf("student repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateStudent", "student_reg_no", input.RegNo)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update student", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "student updated")
	}()

	input = normalizeStudentInput(input)
	vErr := validateStudentInput(input, false)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var current StudentAccount
	current, err = s.students.GetStudent(ctx, input.RegNo)
	if err != nil {
		err = mapAccountRepoError(err)
		return
	}

	switch principal.Role {
	case RoleStudent:
		if principal.RegNo != current.RegNo {
			err = ErrUnauthorized
			return
		}
	case RoleTeacher:
		if principal.Dept != current.Dept {
			err = ErrUnauthorized
			return
		}
	default:
		err = ErrUnauthorized
		return
	}

	hash := current.PasswordHash
	if input.Password != "" {
		hash, err = HashPassword(input.Password, s.hashParams)
		if err != nil {
			return
		}
	}

	student = StudentAccount{
		RegNo:        input.RegNo,
		Name:         input.Name,
		Email:        input.Email,
		Dept:         input.Dept,
		Year:         input.Year,
		Semester:     input.Semester,
		Mobile:       input.Mobile,
		Tutor:        input.Tutor,
		PasswordHash: hash,
	}
	if err = s.students.UpdateStudent(ctx, student); err != nil {
		err = mapAccountRepoError(err)
		student = StudentAccount{}
		return
	}

	s.resyncSession(ctx, logger, student.Account())
	return
}

// DeleteStudent removes a student account. Only teachers of the student's
// department may delete. Filed requests are retained for the record.
func (s *AccountService) DeleteStudent(ctx context.Context, principal Principal, regNo string) (err error) {
	if s == nil {
		return fmt.Errorf("AccountService is nil")
	}
	if s.students == nil {
		return fmt.Errorf("student repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteStudent", "student_reg_no", regNo)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete student", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "student deleted")
	}()

	if principal.Role != RoleTeacher {
		return ErrUnauthorized
	}

	var current StudentAccount
	current, err = s.students.GetStudent(ctx, regNo)
	if err != nil {
		return mapAccountRepoError(err)
	}
	if current.Dept != principal.Dept {
		return ErrUnauthorized
	}

	if err = s.students.DeleteStudent(ctx, regNo); err != nil {
		return mapAccountRepoError(err)
	}
	return nil
}

// UpdateTeacher edits a teacher's own profile. An empty password keeps the
// stored hash.
func (s *AccountService) UpdateTeacher(ctx context.Context, principal Principal, input StaffInput) (teacher StaffAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.teachers == nil {
		err = fmt.Errorf("teacher repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateTeacher", "email", input.Email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update teacher", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "teacher updated")
	}()

	teacher, err = s.updateStaff(ctx, logger, principal, RoleTeacher, input, staffUpdateFuncs{
		get:    s.teachers.GetTeacher,
		update: s.teachers.UpdateTeacher,
	})
	return
}

// UpdateHOD edits a HOD's own profile. An empty password keeps the stored hash.
func (s *AccountService) UpdateHOD(ctx context.Context, principal Principal, input StaffInput) (hod StaffAccount, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.hods == nil {
		err = fmt.Errorf("HOD repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateHOD", "email", input.Email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update HOD", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "HOD updated")
	}()

	hod, err = s.updateStaff(ctx, logger, principal, RoleHOD, input, staffUpdateFuncs{
		get:    s.hods.GetHOD,
		update: s.hods.UpdateHOD,
	})
	return
}

type staffUpdateFuncs struct {
	get    func(ctx context.Context, email string) (StaffAccount, error)
	update func(ctx context.Context, staff StaffAccount) error
}

func (s *AccountService) updateStaff(ctx context.Context, logger *slog.Logger, principal Principal, role Role, input StaffInput, repo staffUpdateFuncs) (StaffAccount, error) {
	input = normalizeStaffInput(input)
	vErr := validateStaffInput(input, false)
	if vErr.HasErrors() {
		return StaffAccount{}, vErr
	}

	if principal.Role != role || !strings.EqualFold(principal.Email, input.Email) {
		return StaffAccount{}, ErrUnauthorized
	}

	current, err := repo.get(ctx, input.Email)
	if err != nil {
		return StaffAccount{}, mapAccountRepoError(err)
	}

	hash := current.PasswordHash
	if input.Password != "" {
		hash, err = HashPassword(input.Password, s.hashParams)
		if err != nil {
			return StaffAccount{}, err
		}
	}

	staff := StaffAccount{
		Name:         input.Name,
		Email:        input.Email,
		Dept:         input.Dept,
		PasswordHash: hash,
	}
	if err := repo.update(ctx, staff); err != nil {
		return StaffAccount{}, mapAccountRepoError(err)
	}

	s.resyncSession(ctx, logger, staff.Account(role))
	return staff, nil
}

// resyncSession rewrites the stored session when the edited account is the
// one currently logged in. Failures are logged, not surfaced; the profile
// update itself already succeeded.
func (s *AccountService) resyncSession(ctx context.Context, logger *slog.Logger, account Account) {
	if s.sessions == nil {
		return
	}

	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if !isNotFound(err) {
			logger.WarnContext(ctx, "failed to read session for re-sync", "error", err)
		}
		return
	}
	if session.Account.Role != account.Role {
		return
	}
	switch account.Role {
	case RoleStudent:
		if session.Account.RegNo != account.RegNo {
			return
		}
	default:
		if !strings.EqualFold(session.Account.Email, account.Email) {
			return
		}
	}

	session.Account = account
	if err := s.sessions.SetSession(ctx, session); err != nil {
		logger.WarnContext(ctx, "failed to re-sync session", "error", err)
	}
}

func normalizeStudentInput(input StudentInput) StudentInput {
	input.RegNo = strings.TrimSpace(input.RegNo)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Dept = strings.TrimSpace(input.Dept)
	input.Year = strings.TrimSpace(input.Year)
	input.Semester = strings.TrimSpace(input.Semester)
	input.Mobile = strings.TrimSpace(input.Mobile)
	input.Tutor = strings.TrimSpace(input.Tutor)
	return input
}

func normalizeStaffInput(input StaffInput) StaffInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Dept = strings.TrimSpace(input.Dept)
	return input
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateStudentInput(input StudentInput, requirePassword bool) *ValidationError {
	vErr := &ValidationError{}
	if input.RegNo == "" {
		vErr.add("regNo", "registration number is required")
	}
	if input.Name == "" {
		vErr.add("name", "name is required")
	}
	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if !strings.Contains(input.Email, "@") {
		vErr.add("email", "email must contain @")
	}
	if input.Dept == "" {
		vErr.add("dept", "department is required")
	}
	if requirePassword && input.Password == "" {
		vErr.add("password", "password is required")
	}
	return vErr
}

func validateStaffInput(input StaffInput, requirePassword bool) *ValidationError {
	vErr := &ValidationError{}
	if input.Name == "" {
		vErr.add("name", "name is required")
	}
	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if !strings.Contains(input.Email, "@") {
		vErr.add("email", "email must contain @")
	}
	if input.Dept == "" {
		vErr.add("dept", "department is required")
	}
	if requirePassword && input.Password == "" {
		vErr.add("password", "password is required")
	}
	return vErr
}

// isNotFound reports whether the error is either not-found sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound)
}

// mapAccountRepoError converts repository sentinels into application errors.
func mapAccountRepoError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
