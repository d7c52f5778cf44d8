package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/adminsystem/entity"
	"github.com/shandysiswandi/blipzo-admin/internal/pkg/goerror"
)

func (s *Usecase) Snapshot(ctx context.Context) (*entity.SystemSnapshot, error) {
	ctx, span := s.startSpan(ctx, "Snapshot")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermSystem, ActRead); err != nil {
		return nil, err
	}

	running, err := s.refreshRunningBackups(ctx)
	if err != nil {
		return nil, err
	}

	last, err := s.repoDB.GetLatestBackupJob(ctx)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get latest backup job", "error", err)
		return nil, goerror.NewServer(err)
	}
	if last != nil && running != nil && last.ID == running.ID {
		last = running
	}

	today, err := s.usage.Day(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to read provider usage", "error", err)
		return nil, goerror.NewServer(err)
	}

	// a failing database is reported as disconnected, not as a failed snapshot
	stats, err := s.repoDB.DatabaseStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read database stats", "error", err)
		stats = entity.DatabaseStats{}
	}

	summary, err := s.repoDB.SummarizeDeleteRequests(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo summarize delete requests", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.SystemSnapshot{
		ProviderHealth: entity.NewProviderHealth(entity.NewProviderDaily(today.Date, today.Sent, today.Failed)),
		DBHealth:       entity.NewDBHealth(stats),
		Backup:         entity.NewBackupSummary(last, running),
		DeleteRequests: summary,
	}, nil
}

type ProviderUsageInput struct {
	// Date is the selected day; zero means today.
	Date time.Time
}

func (s *Usecase) ProviderUsage(ctx context.Context, in ProviderUsageInput) (*entity.ProviderUsage, error) {
	ctx, span := s.startSpan(ctx, "ProviderUsage")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, PermProviderUsage, ActRead); err != nil {
		return nil, err
	}

	day := in.Date
	if day.IsZero() {
		day = s.clock.Now()
	}
	day = day.UTC()

	days, err := s.usage.Days(ctx, day, 7)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read provider usage history", "error", err)
		return nil, goerror.NewServer(err)
	}

	hourly, err := s.usage.Hourly(ctx, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read provider hourly usage", "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &entity.ProviderUsage{
		SelectedDate: day.Format(time.DateOnly),
		History:      make([]entity.ProviderDaily, 0, len(days)),
		Hourly:       make([]entity.HourCount, 0, len(hourly)),
	}
	for _, d := range days {
		out.History = append(out.History, entity.NewProviderDaily(d.Date, d.Sent, d.Failed))
	}
	if n := len(out.History); n > 0 {
		out.Summary = out.History[n-1]
	} else {
		out.Summary = entity.NewProviderDaily(day, 0, 0)
	}
	for h, c := range hourly {
		out.Hourly = append(out.Hourly, entity.HourCount{Hour: h, Count: c})
	}

	return out, nil
}
