package entity

import (
	"math"
	"time"
)

const (
	// DailyProviderLimit is the daily email send quota.
	DailyProviderLimit = 300
	// DBCapacityGB is the provisioned database size.
	DBCapacityGB = 5
)

const (
	ProviderStatusOK       = "ok"
	ProviderStatusDegraded = "degraded"
)

// ProviderDaily is the email provider usage of one day.
type ProviderDaily struct {
	Date        string
	Sent        int64
	Failed      int64
	Limit       int64
	UsagePct    int64
	SuccessRate float64
}

// NewProviderDaily derives usage and success rates from raw counters.
func NewProviderDaily(day time.Time, sent, failed int64) ProviderDaily {
	d := ProviderDaily{
		Date:        day.UTC().Format(time.DateOnly),
		Sent:        sent,
		Failed:      failed,
		Limit:       DailyProviderLimit,
		SuccessRate: 100,
	}
	d.UsagePct = min(100, int64(math.Round(float64(sent)/DailyProviderLimit*100)))
	if sent > 0 {
		d.SuccessRate = Round(float64(sent-failed)/float64(sent)*100, 1)
	}
	return d
}

type ProviderHealth struct {
	Status         string
	SendRatePerDay int64
	SentToday      int64
	FailedToday    int64
	UsagePct       int64
	SuccessRate    float64
}

func NewProviderHealth(today ProviderDaily) ProviderHealth {
	status := ProviderStatusOK
	if today.Failed > 0 {
		status = ProviderStatusDegraded
	}
	return ProviderHealth{
		Status:         status,
		SendRatePerDay: today.Limit,
		SentToday:      today.Sent,
		FailedToday:    today.Failed,
		UsagePct:       today.UsagePct,
		SuccessRate:    today.SuccessRate,
	}
}

// DatabaseStats are raw size figures read from the database.
type DatabaseStats struct {
	Connected  bool
	TotalBytes int64
	IndexBytes int64
}

type DBHealth struct {
	Connected   bool
	TotalSizeGB float64
	DataSizeMB  float64
	IndexSizeMB float64
	CapacityGB  int64
	UsedPct     int64
	RemainingGB float64
}

func NewDBHealth(s DatabaseStats) DBHealth {
	const mb, gb = 1 << 20, 1 << 30

	total := float64(s.TotalBytes) / gb
	return DBHealth{
		Connected:   s.Connected,
		TotalSizeGB: Round(total, 2),
		DataSizeMB:  Round(float64(max(0, s.TotalBytes-s.IndexBytes))/mb, 1),
		IndexSizeMB: Round(float64(s.IndexBytes)/mb, 1),
		CapacityGB:  DBCapacityGB,
		UsedPct:     min(100, int64(math.Round(total/DBCapacityGB*100))),
		RemainingGB: Round(DBCapacityGB-total, 2),
	}
}

type BackupSummary struct {
	LastBackupAt     *time.Time
	LastBackupStatus string
	Target           string
	RunningJob       *BackupJob
	LastJobID        *int64
}

// NewBackupSummary describes the most recent job and the running one, either may be nil.
func NewBackupSummary(last, running *BackupJob) BackupSummary {
	s := BackupSummary{LastBackupStatus: "never", Target: DefaultBackupTarget, RunningJob: running}
	if last != nil {
		s.LastBackupAt = last.CompletedAt
		s.LastBackupStatus = last.Status.String()
	}

	ref := running
	if ref == nil {
		ref = last
	}
	if ref != nil {
		s.Target = ref.Target
		id := ref.ID
		s.LastJobID = &id
	}
	return s
}

type SystemSnapshot struct {
	ProviderHealth ProviderHealth
	DBHealth       DBHealth
	Backup         BackupSummary
	DeleteRequests DeleteRequestSummary
}

type HourCount struct {
	Hour  int
	Count int64
}

type ProviderUsage struct {
	SelectedDate string
	Summary      ProviderDaily
	History      []ProviderDaily
	Hourly       []HourCount
}

// Round rounds v to digits decimals, half away from zero.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
