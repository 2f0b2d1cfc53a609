package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/leave-portal/internal/application"
	"github.com/example/leave-portal/internal/config"
	"github.com/example/leave-portal/internal/logging"
	"github.com/example/leave-portal/internal/persistence"
	"github.com/example/leave-portal/internal/persistence/localstore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger := logging.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	store, err := localstore.Open(cfg.StoreDSN, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		return 1
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		logger.Error("failed to apply schema", "error", err)
		return 1
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	requestRepo := newRequestRepositoryAdapter(localstore.NewRequestRepository(store))
	studentRepo := newStudentRepositoryAdapter(localstore.NewStudentRepository(store))
	teacherRepo := newTeacherRepositoryAdapter(localstore.NewTeacherRepository(store))
	hodRepo := newHODRepositoryAdapter(localstore.NewHODRepository(store))
	sessionStore := newSessionStoreAdapter(localstore.NewSessionStore(store))

	stats := application.NewStatsCache(cfg.StatsCacheTTL, cfg.StatsCacheMaxEntries, now)

	app := &app{
		requests: application.NewRequestServiceWithLogger(requestRepo, idGenerator, now, stats, logger),
		queries:  application.NewQueryServiceWithLogger(requestRepo, stats, logger),
		accounts: application.NewAccountServiceWithLogger(studentRepo, teacherRepo, hodRepo, sessionStore, logger),
		auth:     application.NewAuthServiceWithLogger(studentRepo, teacherRepo, hodRepo, sessionStore, tokenGenerator, now, logger),
		stdout:   stdout,
	}

	if err := app.dispatch(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", renderError(err))
		return 1
	}
	return 0
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

type app struct {
	requests *application.RequestService
	queries  *application.QueryService
	accounts *application.AccountService
	auth     *application.AuthService
	stdout   io.Writer
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register-student":
		return a.registerStudent(ctx, args)
	case "register-teacher":
		return a.registerStaff(ctx, args, application.RoleTeacher)
	case "register-hod":
		return a.registerStaff(ctx, args, application.RoleHOD)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.auth.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "submit":
		return a.submit(ctx, args)
	case "queue":
		return a.queue(ctx)
	case "decide":
		return a.decide(ctx, args)
	case "history":
		return a.history(ctx, args)
	case "stats":
		return a.stats(ctx)
	case "update-student":
		return a.updateStudent(ctx, args)
	case "delete-student":
		return a.deleteStudent(ctx, args)
	case "update-profile":
		return a.updateProfile(ctx, args)
	case "help":
		printUsage(a.stdout)
		return nil
	}
	return fmt.Errorf("unknown command %q, run 'leaveportal help'", command)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `usage: leaveportal <command> [flags]

commands:
  register-student  create a student account
  register-teacher  create a teacher account
  register-hod      create a HOD account
  login             authenticate and store the local session
  logout            clear the local session
  whoami            show the logged-in account
  submit            file a leave/OD request (student)
  queue             list requests awaiting your decision (teacher/HOD)
  decide            approve, reject, or forward a request (teacher/HOD)
  history           list requests, newest first
  stats             show dashboard counters
  update-student    edit a student profile
  delete-student    remove a student account (teacher)
  update-profile    edit your own staff profile (teacher/HOD)`)
}

func (a *app) principal(ctx context.Context) (application.Principal, error) {
	principal, err := a.auth.CurrentPrincipal(ctx)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Principal{}, errors.New("not logged in")
		}
		return application.Principal{}, err
	}
	return principal, nil
}

func (a *app) registerStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register-student", flag.ContinueOnError)
	input := application.StudentInput{}
	fs.StringVar(&input.RegNo, "reg", "", "registration number")
	fs.StringVar(&input.Name, "name", "", "full name")
	fs.StringVar(&input.Email, "email", "", "email address")
	fs.StringVar(&input.Dept, "dept", "", "department")
	fs.StringVar(&input.Year, "year", "", "year of study")
	fs.StringVar(&input.Semester, "semester", "", "current semester")
	fs.StringVar(&input.Mobile, "mobile", "", "mobile number")
	fs.StringVar(&input.Tutor, "tutor", "", "assigned tutor")
	fs.StringVar(&input.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	student, err := a.accounts.RegisterStudent(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "registered student %s (%s)\n", student.RegNo, student.Name)
	return nil
}

func (a *app) registerStaff(ctx context.Context, args []string, role application.Role) error {
	fs := flag.NewFlagSet("register-"+string(role), flag.ContinueOnError)
	input := application.StaffInput{}
	fs.StringVar(&input.Name, "name", "", "full name")
	fs.StringVar(&input.Email, "email", "", "email address")
	fs.StringVar(&input.Dept, "dept", "", "department")
	fs.StringVar(&input.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var staff application.StaffAccount
	var err error
	if role == application.RoleTeacher {
		staff, err = a.accounts.RegisterTeacher(ctx, input)
	} else {
		staff, err = a.accounts.RegisterHOD(ctx, input)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "registered %s %s (%s)\n", role, staff.Email, staff.Name)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	params := application.LoginParams{}
	fs.StringVar(&params.Identifier, "id", "", "registration number or email")
	fs.StringVar(&params.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.auth.Login(ctx, params)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "logged in as %s (%s)\n", session.Account.Name, session.Account.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	session, err := a.auth.CurrentSession(ctx)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			fmt.Fprintln(a.stdout, "not logged in")
			return nil
		}
		return err
	}
	account := session.Account
	fmt.Fprintf(a.stdout, "%s (%s), dept %s", account.Name, account.Role, account.Dept)
	if account.RegNo != "" {
		fmt.Fprintf(a.stdout, ", reg no %s", account.RegNo)
	}
	fmt.Fprintln(a.stdout)
	return nil
}

func (a *app) submit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	input := application.RequestInput{}
	fs.StringVar(&input.RequestType, "type", "", "request type, e.g. Leave or OD")
	fs.StringVar(&input.FromDate, "from", "", "first day (YYYY-MM-DD)")
	fs.StringVar(&input.ToDate, "to", "", "last day (YYYY-MM-DD)")
	fs.StringVar(&input.Reason, "reason", "", "reason for the request")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	request, err := a.requests.Submit(ctx, application.SubmitRequestParams{Principal: principal, Input: input})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "submitted request %s (%d day(s), %s)\n", request.RequestID, request.NoOfDays, request.Status)
	return nil
}

func (a *app) queue(ctx context.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	var requests []application.Request
	switch principal.Role {
	case application.RoleTeacher:
		requests, err = a.queries.PendingForTeacher(ctx, principal)
	case application.RoleHOD:
		requests, err = a.queries.ForwardedForHOD(ctx, principal)
	default:
		return application.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	a.printRequests(requests)
	return nil
}

func (a *app) decide(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("decide", flag.ContinueOnError)
	var requestID, action, remark string
	fs.StringVar(&requestID, "request", "", "request ID")
	fs.StringVar(&action, "action", "", "approve, reject, or forward")
	fs.StringVar(&remark, "remark", "", "decision remark")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	var request application.Request
	switch principal.Role {
	case application.RoleTeacher:
		request, err = a.requests.TeacherDecide(ctx, application.TeacherDecisionParams{
			Principal: principal,
			RequestID: requestID,
			Action:    application.ReviewAction(action),
			Remark:    remark,
		})
	case application.RoleHOD:
		request, err = a.requests.HODDecide(ctx, application.HODDecisionParams{
			Principal: principal,
			RequestID: requestID,
			Action:    application.ReviewAction(action),
			Remark:    remark,
		})
	default:
		return application.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "request %s is now %q\n", request.RequestID, request.Status)
	return nil
}

func (a *app) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	var status, search string
	fs.StringVar(&status, "status", "", "status family (Pending, Approved, Rejected, Forwarded) or exact status")
	fs.StringVar(&search, "search", "", "substring match on request ID or type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	filter := application.HistoryFilter{Status: parseStatusFilter(status), Search: search}

	var requests []application.Request
	if principal.Role == application.RoleStudent {
		requests, err = a.queries.HistoryForStudent(ctx, principal, filter)
	} else {
		requests, err = a.queries.DepartmentHistory(ctx, principal, filter)
	}
	if err != nil {
		return err
	}
	a.printRequests(requests)
	return nil
}

func (a *app) stats(ctx context.Context) error {
	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	stats, err := a.queries.DashboardStats(ctx, principal)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "total %d, pending %d, approved %d, rejected %d\n",
		stats.Total, stats.Pending, stats.Approved, stats.Rejected)
	return nil
}

func (a *app) updateStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-student", flag.ContinueOnError)
	input := application.StudentInput{}
	fs.StringVar(&input.RegNo, "reg", "", "registration number")
	fs.StringVar(&input.Name, "name", "", "full name")
	fs.StringVar(&input.Email, "email", "", "email address")
	fs.StringVar(&input.Dept, "dept", "", "department")
	fs.StringVar(&input.Year, "year", "", "year of study")
	fs.StringVar(&input.Semester, "semester", "", "current semester")
	fs.StringVar(&input.Mobile, "mobile", "", "mobile number")
	fs.StringVar(&input.Tutor, "tutor", "", "assigned tutor")
	fs.StringVar(&input.Password, "password", "", "new password (empty keeps current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	student, err := a.accounts.UpdateStudent(ctx, principal, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "updated student %s\n", student.RegNo)
	return nil
}

func (a *app) deleteStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-student", flag.ContinueOnError)
	var regNo string
	fs.StringVar(&regNo, "reg", "", "registration number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}

	if err := a.accounts.DeleteStudent(ctx, principal, regNo); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "deleted student %s\n", regNo)
	return nil
}

func (a *app) updateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ContinueOnError)
	input := application.StaffInput{}
	fs.StringVar(&input.Name, "name", "", "full name")
	fs.StringVar(&input.Dept, "dept", "", "department")
	fs.StringVar(&input.Password, "password", "", "new password (empty keeps current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	principal, err := a.principal(ctx)
	if err != nil {
		return err
	}
	input.Email = principal.Email

	var staff application.StaffAccount
	switch principal.Role {
	case application.RoleTeacher:
		staff, err = a.accounts.UpdateTeacher(ctx, principal, input)
	case application.RoleHOD:
		staff, err = a.accounts.UpdateHOD(ctx, principal, input)
	default:
		return application.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "updated profile for %s\n", staff.Email)
	return nil
}

func (a *app) printRequests(requests []application.Request) {
	if len(requests) == 0 {
		fmt.Fprintln(a.stdout, "no requests")
		return
	}
	for _, request := range requests {
		fmt.Fprintf(a.stdout, "%s  %s  %s  %s..%s (%dd)  %s  %s\n",
			request.RequestID, request.AppliedDate, request.RequestType,
			request.FromDate, request.ToDate, request.NoOfDays,
			request.StudentRegNo, request.Status)
	}
}

// parseStatusFilter accepts a family name or an exact lifecycle status.
func parseStatusFilter(value string) application.StatusFilter {
	value = strings.TrimSpace(value)
	if value == "" {
		return application.StatusFilter{}
	}
	switch application.StatusFamily(value) {
	case application.FamilyPending, application.FamilyApproved,
		application.FamilyRejected, application.FamilyForwarded:
		return application.StatusFilter{Family: application.StatusFamily(value)}
	}
	return application.StatusFilter{Exact: application.RequestStatus(value)}
}

// renderError turns service errors into user-facing CLI messages.
func renderError(err error) string {
	var vErr *application.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]string, 0, len(vErr.FieldErrors))
		for field, message := range vErr.FieldErrors {
			fields = append(fields, fmt.Sprintf("%s: %s", field, message))
		}
		sort.Strings(fields)
		return "validation failed: " + strings.Join(fields, "; ")
	}
	return err.Error()
}

type requestRepositoryAdapter struct {
	repo persistence.RequestRepository
}

func newRequestRepositoryAdapter(repo persistence.RequestRepository) *requestRepositoryAdapter {
	return &requestRepositoryAdapter{repo: repo}
}

func (a *requestRepositoryAdapter) ListRequests(ctx context.Context) ([]application.Request, error) {
	models, err := a.repo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	requests := make([]application.Request, 0, len(models))
	for _, model := range models {
		requests = append(requests, toApplicationRequest(model))
	}
	return requests, nil
}

func (a *requestRepositoryAdapter) GetRequest(ctx context.Context, requestID string) (application.Request, error) {
	stored, err := a.repo.GetRequest(ctx, requestID)
	if err != nil {
		return application.Request{}, err
	}
	return toApplicationRequest(stored), nil
}

func (a *requestRepositoryAdapter) AddRequest(ctx context.Context, request application.Request) error {
	return a.repo.AddRequest(ctx, toPersistenceRequest(request))
}

func (a *requestRepositoryAdapter) UpdateRequest(ctx context.Context, requestID string, patch application.RequestPatch) (application.Request, error) {
	update := persistence.RequestUpdate{
		TeacherRemark:     patch.TeacherRemark,
		TeacherActionDate: patch.TeacherActionDate,
		HODRemark:         patch.HODRemark,
		HODActionDate:     patch.HODActionDate,
	}
	if patch.Status != nil {
		status := string(*patch.Status)
		update.Status = &status
	}
	stored, err := a.repo.UpdateRequest(ctx, requestID, update)
	if err != nil {
		return application.Request{}, err
	}
	return toApplicationRequest(stored), nil
}

type studentRepositoryAdapter struct {
	repo persistence.StudentRepository
}

func newStudentRepositoryAdapter(repo persistence.StudentRepository) *studentRepositoryAdapter {
	return &studentRepositoryAdapter{repo: repo}
}

func (a *studentRepositoryAdapter) ListStudents(ctx context.Context) ([]application.StudentAccount, error) {
	models, err := a.repo.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	students := make([]application.StudentAccount, 0, len(models))
	for _, model := range models {
		students = append(students, toApplicationStudent(model))
	}
	return students, nil
}

func (a *studentRepositoryAdapter) GetStudent(ctx context.Context, regNo string) (application.StudentAccount, error) {
	stored, err := a.repo.GetStudentByRegNo(ctx, regNo)
	if err != nil {
		return application.StudentAccount{}, err
	}
	return toApplicationStudent(stored), nil
}

func (a *studentRepositoryAdapter) AddStudent(ctx context.Context, student application.StudentAccount) error {
	return a.repo.AddStudent(ctx, toPersistenceStudent(student))
}

func (a *studentRepositoryAdapter) UpdateStudent(ctx context.Context, student application.StudentAccount) error {
	return a.repo.UpdateStudent(ctx, student.RegNo, toPersistenceStudent(student))
}

func (a *studentRepositoryAdapter) DeleteStudent(ctx context.Context, regNo string) error {
	return a.repo.DeleteStudent(ctx, regNo)
}

type teacherRepositoryAdapter struct {
	repo persistence.TeacherRepository
}

func newTeacherRepositoryAdapter(repo persistence.TeacherRepository) *teacherRepositoryAdapter {
	return &teacherRepositoryAdapter{repo: repo}
}

func (a *teacherRepositoryAdapter) GetTeacher(ctx context.Context, email string) (application.StaffAccount, error) {
	stored, err := a.repo.GetTeacherByEmail(ctx, email)
	if err != nil {
		return application.StaffAccount{}, err
	}
	return application.StaffAccount{
		Name:         stored.Name,
		Email:        stored.Email,
		Dept:         stored.Dept,
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *teacherRepositoryAdapter) AddTeacher(ctx context.Context, teacher application.StaffAccount) error {
	return a.repo.AddTeacher(ctx, persistence.Teacher{
		Email:        teacher.Email,
		Name:         teacher.Name,
		Dept:         teacher.Dept,
		PasswordHash: teacher.PasswordHash,
	})
}

func (a *teacherRepositoryAdapter) UpdateTeacher(ctx context.Context, teacher application.StaffAccount) error {
	return a.repo.UpdateTeacher(ctx, teacher.Email, persistence.Teacher{
		Email:        teacher.Email,
		Name:         teacher.Name,
		Dept:         teacher.Dept,
		PasswordHash: teacher.PasswordHash,
	})
}

type hodRepositoryAdapter struct {
	repo persistence.HODRepository
}

func newHODRepositoryAdapter(repo persistence.HODRepository) *hodRepositoryAdapter {
	return &hodRepositoryAdapter{repo: repo}
}

func (a *hodRepositoryAdapter) GetHOD(ctx context.Context, email string) (application.StaffAccount, error) {
	stored, err := a.repo.GetHODByEmail(ctx, email)
	if err != nil {
		return application.StaffAccount{}, err
	}
	return application.StaffAccount{
		Name:         stored.Name,
		Email:        stored.Email,
		Dept:         stored.Dept,
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *hodRepositoryAdapter) AddHOD(ctx context.Context, hod application.StaffAccount) error {
	return a.repo.AddHOD(ctx, persistence.HOD{
		Email:        hod.Email,
		Name:         hod.Name,
		Dept:         hod.Dept,
		PasswordHash: hod.PasswordHash,
	})
}

func (a *hodRepositoryAdapter) UpdateHOD(ctx context.Context, hod application.StaffAccount) error {
	return a.repo.UpdateHOD(ctx, hod.Email, persistence.HOD{
		Email:        hod.Email,
		Name:         hod.Name,
		Dept:         hod.Dept,
		PasswordHash: hod.PasswordHash,
	})
}

type sessionStoreAdapter struct {
	store persistence.SessionStore
}

func newSessionStoreAdapter(store persistence.SessionStore) *sessionStoreAdapter {
	return &sessionStoreAdapter{store: store}
}

func (a *sessionStoreAdapter) GetSession(ctx context.Context) (application.Session, error) {
	stored, err := a.store.GetSession(ctx)
	if err != nil {
		return application.Session{}, err
	}
	return toApplicationSession(stored), nil
}

func (a *sessionStoreAdapter) SetSession(ctx context.Context, session application.Session) error {
	return a.store.SetSession(ctx, toPersistenceSession(session))
}

func (a *sessionStoreAdapter) ClearSession(ctx context.Context) error {
	return a.store.ClearSession(ctx)
}

func toApplicationRequest(model persistence.Request) application.Request {
	return application.Request{
		RequestID:         model.RequestID,
		StudentRegNo:      model.StudentRegNo,
		StudentName:       model.StudentName,
		StudentEmail:      model.StudentEmail,
		Dept:              model.Dept,
		RequestType:       model.RequestType,
		FromDate:          model.FromDate,
		ToDate:            model.ToDate,
		NoOfDays:          model.NoOfDays,
		Reason:            model.Reason,
		AppliedDate:       model.AppliedDate,
		Status:            application.RequestStatus(model.Status),
		TeacherRemark:     model.TeacherRemark,
		HODRemark:         model.HODRemark,
		TeacherActionDate: model.TeacherActionDate,
		HODActionDate:     model.HODActionDate,
	}
}

func toPersistenceRequest(request application.Request) persistence.Request {
	return persistence.Request{
		RequestID:         request.RequestID,
		StudentRegNo:      request.StudentRegNo,
		StudentName:       request.StudentName,
		StudentEmail:      request.StudentEmail,
		Dept:              request.Dept,
		RequestType:       request.RequestType,
		FromDate:          request.FromDate,
		ToDate:            request.ToDate,
		NoOfDays:          request.NoOfDays,
		Reason:            request.Reason,
		AppliedDate:       request.AppliedDate,
		Status:            string(request.Status),
		TeacherRemark:     request.TeacherRemark,
		HODRemark:         request.HODRemark,
		TeacherActionDate: request.TeacherActionDate,
		HODActionDate:     request.HODActionDate,
	}
}

func toApplicationStudent(model persistence.Student) application.StudentAccount {
	return application.StudentAccount{
		RegNo:        model.RegNo,
		Name:         model.Name,
		Email:        model.Email,
		Dept:         model.Dept,
		Year:         model.Year,
		Semester:     model.Semester,
		Mobile:       model.Mobile,
		Tutor:        model.Tutor,
		PasswordHash: model.PasswordHash,
	}
}

func toPersistenceStudent(student application.StudentAccount) persistence.Student {
	return persistence.Student{
		RegNo:        student.RegNo,
		Name:         student.Name,
		Email:        student.Email,
		Dept:         student.Dept,
		Year:         student.Year,
		Semester:     student.Semester,
		Mobile:       student.Mobile,
		Tutor:        student.Tutor,
		PasswordHash: student.PasswordHash,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		Account: application.Account{
			Role:     application.Role(model.Role),
			Name:     model.Name,
			Email:    model.Email,
			RegNo:    model.RegNo,
			Dept:     model.Dept,
			Year:     model.Year,
			Semester: model.Semester,
		},
		Token:      model.Token,
		LoggedInAt: model.LoggedInAt,
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		Role:       string(session.Account.Role),
		Name:       session.Account.Name,
		Email:      session.Account.Email,
		RegNo:      session.Account.RegNo,
		Dept:       session.Account.Dept,
		Year:       session.Account.Year,
		Semester:   session.Account.Semester,
		Token:      session.Token,
		LoggedInAt: session.LoggedInAt,
	}
}
