// Package usage counts notification provider sends per day and hour in redis.
//
// Keys are bucketed by UTC date: usage:<provider>:<yyyy-mm-dd>:{sent,failed}
// and usage:<provider>:<yyyy-mm-dd>:h:<hh>. Counters expire after Retention.
package usage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Retention keeps one week of history plus a day of slack.
const Retention = 8 * 24 * time.Hour

const dateLayout = "2006-01-02"

// Outcome is the result of one provider send.
type Outcome string

const (
	Sent   Outcome = "sent"
	Failed Outcome = "failed"
)

// Daily holds the counters of one day.
type Daily struct {
	Date   time.Time
	Sent   int64
	Failed int64
}

// Counter records and reads provider usage.
type Counter struct {
	rdb      redis.UniversalClient
	provider string
}

// NewCounter returns a Counter for provider (e.g. "email").
func NewCounter(rdb redis.UniversalClient, provider string) *Counter {
	return &Counter{rdb: rdb, provider: provider}
}

func (c *Counter) dayKey(day time.Time) string {
	return fmt.Sprintf("usage:%s:%s", c.provider, day.UTC().Format(dateLayout))
}

// Record increments the outcome counter of at's day and, for sends, its hour bucket.
func (c *Counter) Record(ctx context.Context, at time.Time, outcome Outcome) error {
	base := c.dayKey(at)
	outKey := base + ":" + string(outcome)

	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, outKey)
		p.Expire(ctx, outKey, Retention)
		if outcome == Sent {
			hourKey := fmt.Sprintf("%s:h:%02d", base, at.UTC().Hour())
			p.Incr(ctx, hourKey)
			p.Expire(ctx, hourKey, Retention)
		}
		return nil
	})
	return err
}

// Day reads the counters of day.
func (c *Counter) Day(ctx context.Context, day time.Time) (Daily, error) {
	base := c.dayKey(day)
	vals, err := c.rdb.MGet(ctx, base+":"+string(Sent), base+":"+string(Failed)).Result()
	if err != nil {
		return Daily{}, err
	}

	return Daily{
		Date:   truncateDay(day),
		Sent:   toInt64(vals[0]),
		Failed: toInt64(vals[1]),
	}, nil
}

// Days reads n consecutive days ending at last (inclusive), oldest first.
func (c *Counter) Days(ctx context.Context, last time.Time, n int) ([]Daily, error) {
	if n <= 0 {
		return nil, errors.New("usage: n must be positive")
	}

	out := make([]Daily, 0, n)
	for i := n - 1; i >= 0; i-- {
		d, err := c.Day(ctx, last.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Hourly reads the 24 sent buckets of day.
func (c *Counter) Hourly(ctx context.Context, day time.Time) ([24]int64, error) {
	base := c.dayKey(day)
	keys := make([]string, 24)
	for h := range keys {
		keys[h] = fmt.Sprintf("%s:h:%02d", base, h)
	}

	var out [24]int64
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return out, err
	}
	for h, v := range vals {
		out[h] = toInt64(v)
	}
	return out, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toInt64(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
