package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/constants"
	"kampusku_backend/internals/features/attendance/records/model"
)

// Sentinel errors: controller yang memetakan ke HTTP status.
var (
	ErrInvalidStatus   = errors.New("status absensi tidak dikenal")
	ErrStudentNotFound = errors.New("student tidak ditemukan")
	ErrCourseNotFound  = errors.New("course tidak ditemukan")
	ErrRecordNotFound  = errors.New("record absensi tidak ditemukan")
)

/* =========================================================
 * DEPENDENCIES (repo eksplisit, tanpa lazy loading ORM)
 * ========================================================= */

type RecordRepository interface {
	Upsert(ctx context.Context, m *model.AttendanceRecordModel) (*model.AttendanceRecordModel, error)
	ListByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) ([]model.AttendanceRecordModel, error)
	StatusCounts(ctx context.Context, studentID, courseID uuid.UUID) (map[model.AttendanceStatus]int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AttendanceRecordModel, error)
}

type StudentDirectory interface {
	ExistsWithRole(ctx context.Context, id uuid.UUID, role string) (bool, error)
}

type CourseDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

/* =========================================================
 * SERVICE (facade absensi)
 * ========================================================= */

type AttendanceService struct {
	Records    RecordRepository
	Users      StudentDirectory
	Courses    CourseDirectory
	MinPercent float64
}

func NewAttendanceService(records RecordRepository, users StudentDirectory, courses CourseDirectory, minPercent float64) *AttendanceService {
	return &AttendanceService{
		Records:    records,
		Users:      users,
		Courses:    courses,
		MinPercent: minPercent,
	}
}

// MarkOne: upsert satu mark (student, course, date). Mark kedua untuk tuple
// sama meng-overwrite status sebelumnya.
func (s *AttendanceService) MarkOne(ctx context.Context, courseID, studentID uuid.UUID, date time.Time, status model.AttendanceStatus, markedBy uuid.UUID) (*model.AttendanceRecordModel, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	m := &model.AttendanceRecordModel{
		AttendanceRecordStudentId: studentID,
		AttendanceRecordCourseId:  courseID,
		AttendanceRecordDate:      truncateToDate(date),
		AttendanceRecordStatus:    status,
		AttendanceRecordMarkedBy:  markedBy,
		AttendanceRecordMarkedAt:  time.Now(),
	}
	return s.Records.Upsert(ctx, m)
}

/* ===================== BULK ===================== */

type BulkMarkEntry struct {
	StudentID uuid.UUID
	Status    model.AttendanceStatus
}

type BulkMarkSkip struct {
	StudentID uuid.UUID `json:"student_id"`
	Reason    string    `json:"reason"`
}

type BulkMarkResult struct {
	Saved   []model.AttendanceRecordModel
	Skipped []BulkMarkSkip
}

// MarkBulk: satu course + tanggal, banyak student. Tiap entry independen —
// student tidak dikenal / status invalid di-skip (dicatat alasannya), batch
// jalan terus. Course yang tidak ada menggagalkan seluruh batch.
func (s *AttendanceService) MarkBulk(ctx context.Context, courseID uuid.UUID, date time.Time, markedBy uuid.UUID, entries []BulkMarkEntry) (BulkMarkResult, error) {
	var res BulkMarkResult
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return res, err
	}

	day := truncateToDate(date)
	for _, e := range entries {
		if !e.Status.Valid() {
			res.Skipped = append(res.Skipped, BulkMarkSkip{StudentID: e.StudentID, Reason: fmt.Sprintf("status %q tidak dikenal", string(e.Status))})
			continue
		}
		ok, err := s.Users.ExistsWithRole(ctx, e.StudentID, constants.RoleStudent)
		if err != nil {
			res.Skipped = append(res.Skipped, BulkMarkSkip{StudentID: e.StudentID, Reason: err.Error()})
			continue
		}
		if !ok {
			res.Skipped = append(res.Skipped, BulkMarkSkip{StudentID: e.StudentID, Reason: "student tidak ditemukan"})
			continue
		}

		m := &model.AttendanceRecordModel{
			AttendanceRecordStudentId: e.StudentID,
			AttendanceRecordCourseId:  courseID,
			AttendanceRecordDate:      day,
			AttendanceRecordStatus:    e.Status,
			AttendanceRecordMarkedBy:  markedBy,
			AttendanceRecordMarkedAt:  time.Now(),
		}
		saved, err := s.Records.Upsert(ctx, m)
		if err != nil {
			res.Skipped = append(res.Skipped, BulkMarkSkip{StudentID: e.StudentID, Reason: err.Error()})
			continue
		}
		res.Saved = append(res.Saved, *saved)
	}
	return res, nil
}

/* ===================== SUMMARY ===================== */

type StudentCourseAttendance struct {
	Records []model.AttendanceRecordModel
	Summary AttendanceSummary
}

// StudentCourseSummary: record kronologis + agregat persentase + flag low.
func (s *AttendanceService) StudentCourseSummary(ctx context.Context, studentID, courseID uuid.UUID) (*StudentCourseAttendance, error) {
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.ensureStudent(ctx, studentID); err != nil {
		return nil, err
	}

	records, err := s.Records.ListByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	counts, err := s.Records.StatusCounts(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	return &StudentCourseAttendance{
		Records: records,
		Summary: BuildAttendanceSummary(counts, s.MinPercent),
	}, nil
}

/* ===================== internals ===================== */

func (s *AttendanceService) ensureCourse(ctx context.Context, courseID uuid.UUID) error {
	ok, err := s.Courses.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCourseNotFound, courseID)
	}
	return nil
}

func (s *AttendanceService) ensureStudent(ctx context.Context, studentID uuid.UUID) error {
	ok, err := s.Users.ExistsWithRole(ctx, studentID, constants.RoleStudent)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
