package localstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/example/leave-portal/internal/persistence"
)

// StudentRepository implements persistence.StudentRepository over the
// students collection.
type StudentRepository struct {
	store *Store
}

// NewStudentRepository constructs a student repository bound to the store.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

func (r *StudentRepository) decode(ctx context.Context, body []byte) []persistence.Student {
	if len(body) == 0 {
		return nil
	}
	var students []persistence.Student
	if err := json.Unmarshal(body, &students); err != nil {
		r.store.logger.WarnContext(ctx, "collection body unparseable, reading as empty",
			"collection", collectionStudents, "error", err)
		return nil
	}
	return students
}

// ListStudents returns every stored student in insertion order.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]persistence.Student, error) {
	var students []persistence.Student
	if err := r.store.load(ctx, collectionStudents, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudentByRegNo returns the student with the given registration number.
func (r *StudentRepository) GetStudentByRegNo(ctx context.Context, regNo string) (persistence.Student, error) {
	students, err := r.ListStudents(ctx)
	if err != nil {
		return persistence.Student{}, err
	}
	for _, student := range students {
		if student.RegNo == regNo {
			return student, nil
		}
	}
	return persistence.Student{}, persistence.ErrNotFound
}

// AddStudent appends a student, rejecting duplicate registration numbers.
func (r *StudentRepository) AddStudent(ctx context.Context, student persistence.Student) error {
	return r.store.update(ctx, collectionStudents, func(body []byte) (any, error) {
		students := r.decode(ctx, body)
		for _, existing := range students {
			if existing.RegNo == student.RegNo {
				return nil, persistence.ErrDuplicate
			}
		}
		return append(students, student), nil
	})
}

// UpdateStudent replaces the record with the given registration number.
func (r *StudentRepository) UpdateStudent(ctx context.Context, regNo string, student persistence.Student) error {
	return r.store.update(ctx, collectionStudents, func(body []byte) (any, error) {
		students := r.decode(ctx, body)
		for i := range students {
			if students[i].RegNo == regNo {
				students[i] = student
				return students, nil
			}
		}
		return nil, persistence.ErrNotFound
	})
}

// DeleteStudent removes the record with the given registration number.
func (r *StudentRepository) DeleteStudent(ctx context.Context, regNo string) error {
	return r.store.update(ctx, collectionStudents, func(body []byte) (any, error) {
		students := r.decode(ctx, body)
		for i := range students {
			if students[i].RegNo == regNo {
				return append(students[:i], students[i+1:]...), nil
			}
		}
		return nil, persistence.ErrNotFound
	})
}

// TeacherRepository implements persistence.TeacherRepository over the
// teachers_accounts collection.
type TeacherRepository struct {
	store *Store
}

// NewTeacherRepository constructs a teacher repository bound to the store.
func NewTeacherRepository(store *Store) *TeacherRepository {
	return &TeacherRepository{store: store}
}

func (r *TeacherRepository) decode(ctx context.Context, body []byte) []persistence.Teacher {
	if len(body) == 0 {
		return nil
	}
	var teachers []persistence.Teacher
	if err := json.Unmarshal(body, &teachers); err != nil {
		r.store.logger.WarnContext(ctx, "collection body unparseable, reading as empty",
			"collection", collectionTeachers, "error", err)
		return nil
	}
	return teachers
}

// ListTeachers returns every stored teacher in insertion order.
func (r *TeacherRepository) ListTeachers(ctx context.Context) ([]persistence.Teacher, error) {
	var teachers []persistence.Teacher
	if err := r.store.load(ctx, collectionTeachers, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// GetTeacherByEmail returns the teacher with the given email address.
func (r *TeacherRepository) GetTeacherByEmail(ctx context.Context, email string) (persistence.Teacher, error) {
	teachers, err := r.ListTeachers(ctx)
	if err != nil {
		return persistence.Teacher{}, err
	}
	normalized := normalizeEmail(email)
	for _, teacher := range teachers {
		if normalizeEmail(teacher.Email) == normalized {
			return teacher, nil
		}
	}
	return persistence.Teacher{}, persistence.ErrNotFound
}

// AddTeacher appends a teacher, rejecting duplicate email addresses.
func (r *TeacherRepository) AddTeacher(ctx context.Context, teacher persistence.Teacher) error {
	return r.store.update(ctx, collectionTeachers, func(body []byte) (any, error) {
		teachers := r.decode(ctx, body)
		normalized := normalizeEmail(teacher.Email)
		for _, existing := range teachers {
			if normalizeEmail(existing.Email) == normalized {
				return nil, persistence.ErrDuplicate
			}
		}
		return append(teachers, teacher), nil
	})
}

// UpdateTeacher replaces the record with the given email address.
func (r *TeacherRepository) UpdateTeacher(ctx context.Context, email string, teacher persistence.Teacher) error {
	return r.store.update(ctx, collectionTeachers, func(body []byte) (any, error) {
		teachers := r.decode(ctx, body)
		normalized := normalizeEmail(email)
		for i := range teachers {
			if normalizeEmail(teachers[i].Email) == normalized {
				teachers[i] = teacher
				return teachers, nil
			}
		}
		return nil, persistence.ErrNotFound
	})
}

// HODRepository implements persistence.HODRepository over the hods_accounts
// collection.
type HODRepository struct {
	store *Store
}

// NewHODRepository constructs a HOD repository bound to the store.
func NewHODRepository(store *Store) *HODRepository {
	return &HODRepository{store: store}
}

func (r *HODRepository) decode(ctx context.Context, body []byte) []persistence.HOD {
	if len(body) == 0 {
		return nil
	}
	var hods []persistence.HOD
	if err := json.Unmarshal(body, &hods); err != nil {
		r.store.logger.WarnContext(ctx, "collection body unparseable, reading as empty",
			"collection", collectionHODs, "error", err)
		return nil
	}
	return hods
}

// ListHODs returns every stored HOD in insertion order.
func (r *HODRepository) ListHODs(ctx context.Context) ([]persistence.HOD, error) {
	var hods []persistence.HOD
	if err := r.store.load(ctx, collectionHODs, &hods); err != nil {
		return nil, err
	}
	return hods, nil
}

// GetHODByEmail returns the HOD with the given email address.
func (r *HODRepository) GetHODByEmail(ctx context.Context, email string) (persistence.HOD, error) {
	hods, err := r.ListHODs(ctx)
	if err != nil {
		return persistence.HOD{}, err
	}
	normalized := normalizeEmail(email)
	for _, hod := range hods {
		if normalizeEmail(hod.Email) == normalized {
			return hod, nil
		}
	}
	return persistence.HOD{}, persistence.ErrNotFound
}

// AddHOD appends a HOD, rejecting duplicate email addresses.
func (r *HODRepository) AddHOD(ctx context.Context, hod persistence.HOD) error {
	return r.store.update(ctx, collectionHODs, func(body []byte) (any, error) {
		hods := r.decode(ctx, body)
		normalized := normalizeEmail(hod.Email)
		for _, existing := range hods {
			if normalizeEmail(existing.Email) == normalized {
				return nil, persistence.ErrDuplicate
			}
		}
		return append(hods, hod), nil
	})
}

// UpdateHOD replaces the record with the given email address.
func (r *HODRepository) UpdateHOD(ctx context.Context, email string, hod persistence.HOD) error {
	return r.store.update(ctx, collectionHODs, func(body []byte) (any, error) {
		hods := r.decode(ctx, body)
		normalized := normalizeEmail(email)
		for i := range hods {
			if normalizeEmail(hods[i].Email) == normalized {
				hods[i] = hod
				return hods, nil
			}
		}
		return nil, persistence.ErrNotFound
	})
}

// normalizeEmail normalizes email addresses for consistent lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
