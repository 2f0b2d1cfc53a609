package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SessionStore holds the single local session record.
type SessionStore interface {
	GetSession(ctx context.Context) (Session, error)
	SetSession(ctx context.Context, session Session) error
	ClearSession(ctx context.Context) error
}

// AuthService resolves credentials against the three account collections and
// maintains the local session. Logging in overwrites any prior session.
type AuthService struct {
	students       StudentRepository
	teachers       TeacherRepository
	hods           HODRepository
	sessions       SessionStore
	tokenGenerator func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an auth service with the provided dependencies.
func NewAuthService(students StudentRepository, teachers TeacherRepository, hods HODRepository, sessions SessionStore, tokenGenerator func() string, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(students, teachers, hods, sessions, tokenGenerator, now, nil)
}

// NewAuthServiceWithLogger constructs an auth service with a specified logger.
func NewAuthServiceWithLogger(students StudentRepository, teachers TeacherRepository, hods HODRepository, sessions SessionStore, tokenGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		students:       students,
		teachers:       teachers,
		hods:           hods,
		sessions:       sessions,
		tokenGenerator: tokenGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Login authenticates an identifier and password against the account
// collections in a fixed order: student by registration number, student by
// email, teacher by email, HOD by email. The first match decides the role.
// Unknown identifiers and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (session Session, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session store not configured")
		return
	}

	logger := s.loggerWith(ctx, "Login")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to log in", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("role", string(session.Account.Role)).InfoContext(ctx, "logged in")
	}()

	identifier := strings.TrimSpace(params.Identifier)
	vErr := &ValidationError{}
	if identifier == "" {
		vErr.add("identifier", "identifier is required")
	}
	if params.Password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var account Account
	var hash string
	account, hash, err = s.resolveAccount(ctx, identifier)
	if err != nil {
		return
	}

	if err = VerifyPassword(hash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	session = Session{
		Account:    account,
		Token:      s.tokenGenerator(),
		LoggedInAt: s.now().UTC().Format(time.RFC3339),
	}
	if err = s.sessions.SetSession(ctx, session); err != nil {
		session = Session{}
		return
	}
	return
}

// resolveAccount finds the account matching the identifier and returns it
// with its stored password hash.
func (s *AuthService) resolveAccount(ctx context.Context, identifier string) (Account, string, error) {
	if s.students != nil {
		student, err := s.students.GetStudent(ctx, identifier)
		if err == nil {
			return student.Account(), student.PasswordHash, nil
		}
		if !isNotFound(err) {
			return Account{}, "", err
		}

		// Students may also log in with their email address.
		email := normalizeEmail(identifier)
		students, err := s.students.ListStudents(ctx)
		if err != nil {
			return Account{}, "", err
		}
		for _, candidate := range students {
			if normalizeEmail(candidate.Email) == email {
				return candidate.Account(), candidate.PasswordHash, nil
			}
		}
	}

	email := normalizeEmail(identifier)
	if s.teachers != nil {
		teacher, err := s.teachers.GetTeacher(ctx, email)
		if err == nil {
			return teacher.Account(RoleTeacher), teacher.PasswordHash, nil
		}
		if !isNotFound(err) {
			return Account{}, "", err
		}
	}
	if s.hods != nil {
		hod, err := s.hods.GetHOD(ctx, email)
		if err == nil {
			return hod.Account(RoleHOD), hod.PasswordHash, nil
		}
		if !isNotFound(err) {
			return Account{}, "", err
		}
	}

	return Account{}, "", ErrInvalidCredentials
}

// Logout clears the stored session. Logging out with no session is a no-op.
func (s *AuthService) Logout(ctx context.Context) (err error) {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session store not configured")
	}

	logger := s.loggerWith(ctx, "Logout")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to log out", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "logged out")
	}()

	if err = s.sessions.ClearSession(ctx); err != nil {
		if isNotFound(err) {
			err = nil
			return
		}
		return
	}
	return
}

// CurrentSession returns the stored session. ErrNotFound means nobody is
// logged in.
func (s *AuthService) CurrentSession(ctx context.Context) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return Session{}, fmt.Errorf("session store not configured")
	}

	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		return Session{}, mapAccountRepoError(err)
	}
	return session, nil
}

// CurrentPrincipal returns the acting principal derived from the stored
// session.
func (s *AuthService) CurrentPrincipal(ctx context.Context) (Principal, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return Principal{}, err
	}
	return session.Account.Principal(), nil
}
