package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	recmodel "kampusku_backend/internals/features/attendance/records/model"
	recrepo "kampusku_backend/internals/features/attendance/records/repository"
	recservice "kampusku_backend/internals/features/attendance/records/service"
	"kampusku_backend/internals/features/attendance/reports/model"
)

var ErrInvalidPeriod = errors.New("periode laporan tidak valid")

/* =========================================================
 * DEPENDENCIES
 * ========================================================= */

type RecordSource interface {
	DistinctPairsInMonth(ctx context.Context, month, year int, courseID *uuid.UUID) ([]recrepo.StudentCoursePair, error)
	StatusCountsInMonth(ctx context.Context, studentID, courseID uuid.UUID, month, year int) (map[recmodel.AttendanceStatus]int64, error)
}

type ReportRepository interface {
	Upsert(ctx context.Context, m *model.AttendanceReportModel) error
}

/* =========================================================
 * GENERATOR (batch rekap bulanan)
 * ========================================================= */

type ReportGenerator struct {
	Records    RecordSource
	Reports    ReportRepository
	MinPercent float64
	Log        *logrus.Logger
}

func NewReportGenerator(records RecordSource, reports ReportRepository, minPercent float64, log *logrus.Logger) *ReportGenerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ReportGenerator{
		Records:    records,
		Reports:    reports,
		MinPercent: minPercent,
		Log:        log,
	}
}

type GenerateResult struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

// Generate: rekap semua (student, course) yang punya record di bulan tsb;
// courseID != nil → dibatasi satu course. Idempotent (upsert, replace).
//
// Per pasangan independen: satu pasangan gagal → log + lanjut, tanpa
// transaksi panjang lintas pasangan.
func (g *ReportGenerator) Generate(ctx context.Context, month, year int, courseID *uuid.UUID) (GenerateResult, error) {
	res := GenerateResult{Month: month, Year: year}
	if month < 1 || month > 12 || year < 2000 {
		return res, fmt.Errorf("%w: %02d/%d", ErrInvalidPeriod, month, year)
	}

	pairs, err := g.Records.DistinctPairsInMonth(ctx, month, year, courseID)
	if err != nil {
		return res, err
	}

	g.Log.WithFields(logrus.Fields{
		"month": month,
		"year":  year,
		"pairs": len(pairs),
	}).Info("mulai generate laporan absensi bulanan")

	for _, p := range pairs {
		if err := g.generatePair(ctx, p, month, year); err != nil {
			g.Log.WithFields(logrus.Fields{
				"student_id": p.StudentId,
				"course_id":  p.CourseId,
				"month":      month,
				"year":       year,
			}).WithError(err).Warn("gagal generate laporan untuk pasangan, lanjut")
			res.Failed++
			continue
		}
		res.Generated++
	}

	g.Log.WithFields(logrus.Fields{
		"month":     month,
		"year":      year,
		"generated": res.Generated,
		"failed":    res.Failed,
	}).Info("generate laporan absensi selesai")
	return res, nil
}

func (g *ReportGenerator) generatePair(ctx context.Context, p recrepo.StudentCoursePair, month, year int) error {
	counts, err := g.Records.StatusCountsInMonth(ctx, p.StudentId, p.CourseId, month, year)
	if err != nil {
		return err
	}
	sum := recservice.BuildAttendanceSummary(counts, g.MinPercent)

	m := &model.AttendanceReportModel{
		AttendanceReportStudentId:    p.StudentId,
		AttendanceReportCourseId:     p.CourseId,
		AttendanceReportMonth:        month,
		AttendanceReportYear:         year,
		AttendanceReportPercentage:   sum.Percentage,
		AttendanceReportPresentCount: sum.PresentCount,
		AttendanceReportAbsentCount:  sum.AbsentCount,
		AttendanceReportTotalCount:   sum.TotalCount,
		AttendanceReportStatusBreakdown: datatypes.JSONMap{
			"present": sum.PresentCount,
			"late":    sum.LateCount,
			"absent":  sum.AbsentCount,
			"excused": sum.ExcusedCount,
		},
		AttendanceReportGeneratedAt: time.Now(),
	}
	return g.Reports.Upsert(ctx, m)
}
