package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"kampusku_backend/internals/configs"
	recrepo "kampusku_backend/internals/features/attendance/records/repository"
	"kampusku_backend/internals/features/attendance/reports/repository"
	"kampusku_backend/internals/features/attendance/reports/service"
)

// StartMonthlyReportScheduler menjadwalkan rekap bulan sebelumnya
// (default tiap tanggal 1 jam 03:00, override via REPORT_CRON_SPEC).
func StartMonthlyReportScheduler(db *gorm.DB) *cron.Cron {
	log := logrus.StandardLogger()

	gen := service.NewReportGenerator(
		recrepo.NewAttendanceRecordRepository(db),
		repository.NewAttendanceReportRepository(db),
		configs.AttendanceMinPercent,
		log,
	)

	c := cron.New()
	spec := configs.ReportCronSpec
	if _, err := c.AddFunc(spec, func() {
		// bulan sebelumnya relatif terhadap waktu jalan
		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		prev := firstOfMonth.AddDate(0, 0, -1)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		res, err := gen.Generate(ctx, int(prev.Month()), prev.Year(), nil)
		if err != nil {
			log.WithError(err).Error("[REPORT] rekap bulanan gagal")
			return
		}
		log.WithFields(logrus.Fields{
			"month":     res.Month,
			"year":      res.Year,
			"generated": res.Generated,
			"failed":    res.Failed,
		}).Info("[REPORT] rekap bulanan selesai")
	}); err != nil {
		log.WithError(err).Fatalf("[REPORT] cron spec tidak valid: %q", spec)
	}

	c.Start()
	log.Infof("[REPORT] scheduler rekap bulanan aktif (spec=%q)", spec)
	return c
}
