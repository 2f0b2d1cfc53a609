package persistence

import "encoding/json"

// Request is the stored representation of a leave/OD request. The JSON field
// names are the storage contract and must survive a save/load round trip
// unchanged.
type Request struct {
	RequestID         string `json:"requestId"`
	StudentRegNo      string `json:"studentRegNo"`
	StudentName       string `json:"studentName"`
	StudentEmail      string `json:"studentEmail"`
	Dept              string `json:"dept"`
	RequestType       string `json:"requestType"`
	FromDate          string `json:"fromDate"`
	ToDate            string `json:"toDate"`
	NoOfDays          int    `json:"noOfDays"`
	Reason            string `json:"reason"`
	AppliedDate       string `json:"appliedDate"`
	Status            string `json:"status"`
	TeacherRemark     string `json:"teacherRemark"`
	HODRemark         string `json:"hodRemark"`
	TeacherActionDate string `json:"teacherActionDate"`
	HODActionDate     string `json:"hodActionDate"`
}

// UnmarshalJSON accepts records written before studentRegNo became the
// canonical key. Older writers stored the registration number under "regNo";
// loads honour either spelling, writes always emit "studentRegNo".
func (r *Request) UnmarshalJSON(data []byte) error {
	type requestAlias Request
	aux := struct {
		*requestAlias
		LegacyRegNo string `json:"regNo"`
	}{requestAlias: (*requestAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.StudentRegNo == "" && aux.LegacyRegNo != "" {
		r.StudentRegNo = aux.LegacyRegNo
	}
	return nil
}

// RequestUpdate is a shallow patch applied to a stored request. Nil fields
// are left untouched.
type RequestUpdate struct {
	Status            *string
	TeacherRemark     *string
	TeacherActionDate *string
	HODRemark         *string
	HODActionDate     *string
}

// Apply merges the patch into the record, overwriting only the set fields.
func (u RequestUpdate) Apply(r *Request) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.TeacherRemark != nil {
		r.TeacherRemark = *u.TeacherRemark
	}
	if u.TeacherActionDate != nil {
		r.TeacherActionDate = *u.TeacherActionDate
	}
	if u.HODRemark != nil {
		r.HODRemark = *u.HODRemark
	}
	if u.HODActionDate != nil {
		r.HODActionDate = *u.HODActionDate
	}
}

// Student is a stored student account.
type Student struct {
	RegNo        string `json:"regNo"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Dept         string `json:"dept"`
	Year         string `json:"year"`
	Semester     string `json:"semester"`
	Mobile       string `json:"mobile"`
	Tutor        string `json:"tutor"`
	PasswordHash string `json:"passwordHash"`
}

// Teacher is a stored teacher account.
type Teacher struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Dept         string `json:"dept"`
	PasswordHash string `json:"passwordHash"`
}

// HOD is a stored head-of-department account.
type HOD struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Dept         string `json:"dept"`
	PasswordHash string `json:"passwordHash"`
}

// Session is the single currentUser record identifying the authenticated
// account. It carries a denormalized copy of the account fields so dashboards
// can render without a second lookup.
type Session struct {
	Role       string `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RegNo      string `json:"regNo,omitempty"`
	Dept       string `json:"dept"`
	Year       string `json:"year,omitempty"`
	Semester   string `json:"semester,omitempty"`
	Token      string `json:"token"`
	LoggedInAt string `json:"loggedInAt"`
}
