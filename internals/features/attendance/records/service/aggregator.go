package service

import (
	"math"

	"kampusku_backend/internals/features/attendance/records/model"
)

/* =========================================================
 * AGGREGATOR (pure, tanpa side effect)
 * ========================================================= */

// AttendanceSummary: agregat kehadiran satu (student, course).
type AttendanceSummary struct {
	PresentCount int64 `json:"present_count"`
	LateCount    int64 `json:"late_count"`
	AbsentCount  int64 `json:"absent_count"`
	ExcusedCount int64 `json:"excused_count"`
	TotalCount   int64 `json:"total_count"`

	// Persentase 0–100, dua desimal.
	Percentage float64 `json:"percentage"`

	LowAttendance bool    `json:"low_attendance"`
	MinPercent    float64 `json:"min_percent"`
}

// BuildAttendanceSummary menghitung persentase kehadiran.
//
// Kebijakan (didokumentasikan, diuji eksplisit):
//   - pembilang  = present + late (terlambat tetap dihitung hadir)
//   - penyebut   = semua record kecuali excused (izin tidak memberatkan student)
//   - penyebut 0 → 0.00, bukan NaN
//   - low_attendance = percentage < minPercent (tepat di ambang TIDAK low)
func BuildAttendanceSummary(counts map[model.AttendanceStatus]int64, minPercent float64) AttendanceSummary {
	s := AttendanceSummary{
		PresentCount: counts[model.AttendanceStatusPresent],
		LateCount:    counts[model.AttendanceStatusLate],
		AbsentCount:  counts[model.AttendanceStatusAbsent],
		ExcusedCount: counts[model.AttendanceStatusExcused],
		MinPercent:   minPercent,
	}
	s.TotalCount = s.PresentCount + s.LateCount + s.AbsentCount + s.ExcusedCount

	attended := s.PresentCount + s.LateCount
	denominator := s.TotalCount - s.ExcusedCount
	if denominator > 0 {
		s.Percentage = round2(float64(attended) / float64(denominator) * 100)
	}
	s.LowAttendance = s.Percentage < minPercent
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
