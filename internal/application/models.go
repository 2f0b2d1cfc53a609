package application

// Role identifies which account collection a principal was resolved from.
// The role is decided once at login and carried explicitly from then on.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleHOD     Role = "hod"
)

// RequestStatus enumerates the lifecycle states of a request.
type RequestStatus string

const (
	// StatusPendingTeacher is the initial state of every submitted request.
	StatusPendingTeacher RequestStatus = "Pending Teacher Approval"
	// StatusApprovedByTeacher is terminal; only short requests reach it.
	StatusApprovedByTeacher RequestStatus = "Approved by Teacher"
	// StatusRejectedByTeacher is terminal.
	StatusRejectedByTeacher RequestStatus = "Rejected by Teacher"
	// StatusForwardedToHOD awaits the HOD's decision.
	StatusForwardedToHOD RequestStatus = "Forwarded to HOD"
	// StatusApprovedByHOD is terminal.
	StatusApprovedByHOD RequestStatus = "Approved by HOD"
	// StatusRejectedByHOD is terminal.
	StatusRejectedByHOD RequestStatus = "Rejected by HOD"
)

// IsValid reports whether the status is one of the defined lifecycle states.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPendingTeacher, StatusApprovedByTeacher, StatusRejectedByTeacher,
		StatusForwardedToHOD, StatusApprovedByHOD, StatusRejectedByHOD:
		return true
	}
	return false
}

// IsPending reports whether the request still awaits a decision. Forwarded
// requests count as pending from the student's point of view.
func (s RequestStatus) IsPending() bool {
	return s == StatusPendingTeacher || s == StatusForwardedToHOD
}

// IsApproved reports whether either role approved the request.
func (s RequestStatus) IsApproved() bool {
	return s == StatusApprovedByTeacher || s == StatusApprovedByHOD
}

// IsRejected reports whether either role rejected the request.
func (s RequestStatus) IsRejected() bool {
	return s == StatusRejectedByTeacher || s == StatusRejectedByHOD
}

// IsTerminal reports whether no further transition can apply.
func (s RequestStatus) IsTerminal() bool {
	return s.IsApproved() || s.IsRejected()
}

// ReviewAction is a decision taken on a pending request.
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
	ActionForward ReviewAction = "forward"
)

// ShortRequestDays is the global day-count threshold separating requests a
// teacher may approve directly from those that must be forwarded to the HOD.
// It is a single policy constant, not per-department configuration.
const ShortRequestDays = 2

// Principal is the session context object identifying the acting user. It is
// passed explicitly to every operation that needs the actor's identity.
type Principal struct {
	Role     Role
	Name     string
	Email    string
	RegNo    string
	Dept     string
	Year     string
	Semester string
}

// Request is a leave or on-duty application tracked through the lifecycle
// engine. Dates use the YYYY-MM-DD layout.
type Request struct {
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
	Status            RequestStatus
	TeacherRemark     string
	TeacherActionDate string
	HODRemark         string
	HODActionDate     string
}

// RequestInput captures the student-supplied fields of a new request.
type RequestInput struct {
	RequestType string
	FromDate    string
	ToDate      string
	Reason      string
}

// SubmitRequestParams wraps the data required to submit a request.
type SubmitRequestParams struct {
	Principal Principal
	Input     RequestInput
}

// TeacherDecisionParams wraps a teacher's decision on a pending request.
type TeacherDecisionParams struct {
	Principal Principal
	RequestID string
	Action    ReviewAction
	Remark    string
}

// HODDecisionParams wraps a HOD's decision on a forwarded request.
type HODDecisionParams struct {
	Principal Principal
	RequestID string
	Action    ReviewAction
	Remark    string
}

// StatusFilter narrows a history listing by lifecycle state. Family matches
// an explicit state family (Pending, Approved, Rejected, Forwarded); Exact
// matches a single status. Zero value matches everything.
type StatusFilter struct {
	Family StatusFamily
	Exact  RequestStatus
}

// StatusFamily names a group of related lifecycle states.
type StatusFamily string

const (
	FamilyPending   StatusFamily = "Pending"
	FamilyApproved  StatusFamily = "Approved"
	FamilyRejected  StatusFamily = "Rejected"
	FamilyForwarded StatusFamily = "Forwarded"
)

// Matches reports whether the given status satisfies the filter.
func (f StatusFilter) Matches(status RequestStatus) bool {
	if f.Exact != "" {
		return status == f.Exact
	}
	switch f.Family {
	case FamilyPending:
		return status.IsPending()
	case FamilyApproved:
		return status.IsApproved()
	case FamilyRejected:
		return status.IsRejected()
	case FamilyForwarded:
		return status == StatusForwardedToHOD
	case "":
		return true
	}
	return false
}

// HistoryFilter combines a status filter with a case-insensitive substring
// search over request ID and request type.
type HistoryFilter struct {
	Status StatusFilter
	Search string
}

// DashboardStats summarizes a request collection for a dashboard view.
type DashboardStats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}

// Account is the role-tagged union of the three account variants, resolved
// once at login.
type Account struct {
	Role     Role
	Name     string
	Email    string
	RegNo    string
	Dept     string
	Year     string
	Semester string
	Mobile   string
	Tutor    string
}

// Principal derives the session context object for the account.
func (a Account) Principal() Principal {
	return Principal{
		Role:     a.Role,
		Name:     a.Name,
		Email:    a.Email,
		RegNo:    a.RegNo,
		Dept:     a.Dept,
		Year:     a.Year,
		Semester: a.Semester,
	}
}

// Session is the locally stored record identifying the authenticated account.
type Session struct {
	Account    Account
	Token      string
	LoggedInAt string
}

// StudentInput captures caller supplied student account fields.
type StudentInput struct {
	RegNo    string
	Name     string
	Email    string
	Dept     string
	Year     string
	Semester string
	Mobile   string
	Tutor    string
	Password string
}

// StaffInput captures caller supplied teacher or HOD account fields.
type StaffInput struct {
	Name     string
	Email    string
	Dept     string
	Password string
}

// LoginParams wraps the data required to authenticate.
type LoginParams struct {
	// Identifier is a student registration number or a staff email address.
	Identifier string
	Password   string
}
