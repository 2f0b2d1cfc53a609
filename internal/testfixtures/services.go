package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/leave-portal/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// RequestServiceDeps captures dependencies for constructing a request service.
type RequestServiceDeps struct {
	Requests    application.RequestRepository
	Stats       *application.StatsCache
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewRequestService builds a request service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewRequestService(deps RequestServiceDeps) *application.RequestService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewRequestServiceWithLogger(
		deps.Requests,
		idGen,
		now,
		deps.Stats,
		deps.Logger,
	)
}

// QueryServiceDeps captures dependencies for constructing a query service.
type QueryServiceDeps struct {
	Requests application.RequestSource
	Stats    *application.StatsCache
	Logger   *slog.Logger
}

// NewQueryService builds a query service using the supplied dependencies.
func (f *ServiceFactory) NewQueryService(deps QueryServiceDeps) *application.QueryService {
	return application.NewQueryServiceWithLogger(
		deps.Requests,
		deps.Stats,
		deps.Logger,
	)
}

// AccountServiceDeps captures dependencies for constructing an account service.
type AccountServiceDeps struct {
	Students application.StudentRepository
	Teachers application.TeacherRepository
	HODs     application.HODRepository
	Sessions application.SessionStore
	Logger   *slog.Logger
}

// NewAccountService builds an account service using the supplied dependencies.
func (f *ServiceFactory) NewAccountService(deps AccountServiceDeps) *application.AccountService {
	return application.NewAccountServiceWithLogger(
		deps.Students,
		deps.Teachers,
		deps.HODs,
		deps.Sessions,
		deps.Logger,
	)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Students       application.StudentRepository
	Teachers       application.TeacherRepository
	HODs           application.HODRepository
	Sessions       application.SessionStore
	TokenGenerator func() string
	Now            func() time.Time
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	token := deps.TokenGenerator
	if token == nil {
		token = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAuthServiceWithLogger(
		deps.Students,
		deps.Teachers,
		deps.HODs,
		deps.Sessions,
		token,
		now,
		deps.Logger,
	)
}
