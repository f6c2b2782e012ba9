package counter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ManuelReschke/AboCheckout/app/models"
)

const outcomesKey = "checkout:counters:outcomes"

// Counter accumulates checkout outcomes in a Redis hash and periodically
// flushes them into the outcome_stats table.
type Counter struct {
	client *redis.Client
	db     *gorm.DB
	now    func() time.Time
}

func New(client *redis.Client, db *gorm.DB) *Counter {
	return &Counter{client: client, db: db, now: time.Now}
}

// Outcome is one pending increment
type Outcome struct {
	Day    string
	Branch string
	Status string
	Inc    int64
}

func field(day, branch, status string) string {
	return day + "|" + branch + "|" + status
}

func parseField(f string) (day, branch, status string, ok bool) {
	parts := strings.SplitN(f, "|", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// RecordOutcome increments the pending counter for branch/status today
func (c *Counter) RecordOutcome(ctx context.Context, branch, status string) error {
	day := c.now().UTC().Format("2006-01-02")
	return c.client.HIncrBy(ctx, outcomesKey, field(day, branch, status), 1).Err()
}

// Pending returns the increments not yet flushed
func (c *Counter) Pending(ctx context.Context) ([]Outcome, error) {
	data, err := c.client.HGetAll(ctx, outcomesKey).Result()
	if err != nil {
		return nil, err
	}
	return decode(data), nil
}

func decode(data map[string]string) []Outcome {
	out := make([]Outcome, 0, len(data))
	for k, v := range data {
		day, branch, status, ok := parseField(k)
		if !ok {
			continue
		}
		inc, err := strconv.ParseInt(v, 10, 64)
		if err != nil || inc == 0 {
			continue
		}
		out = append(out, Outcome{Day: day, Branch: branch, Status: status, Inc: inc})
	}
	sort.Slice(out, func(i, j int) bool {
		return field(out[i].Day, out[i].Branch, out[i].Status) < field(out[j].Day, out[j].Branch, out[j].Status)
	})
	return out
}

// Flush drains the Redis hash atomically and adds the increments to the
// database. RENAME to a temporary key keeps in-flight increments.
func (c *Counter) Flush(ctx context.Context) error {
	tmpKey := fmt.Sprintf("%s:tmp:%d", outcomesKey, c.now().UnixNano())
	if err := c.client.Rename(ctx, outcomesKey, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to flush
		if err == redis.Nil || strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		return err
	}
	defer c.client.Del(ctx, tmpKey)

	data, err := c.client.HGetAll(ctx, tmpKey).Result()
	if err != nil {
		return err
	}

	outcomes := decode(data)
	if err := Apply(c.db, outcomes); err != nil {
		return err
	}
	if len(outcomes) > 0 {
		log.Debugf("[Counter] Flushed %d outcome counters", len(outcomes))
	}
	return nil
}

// Apply upserts outcome increments into outcome_stats
func Apply(db *gorm.DB, outcomes []Outcome) error {
	for _, o := range outcomes {
		stat := &models.OutcomeStat{Day: o.Day, Branch: o.Branch, Status: o.Status, Total: o.Inc}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "day"},
				{Name: "branch"},
				{Name: "status"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total":      gorm.Expr("total + ?", o.Inc),
				"updated_at": time.Now(),
			}),
		}).Create(stat).Error
		if err != nil {
			return fmt.Errorf("failed to apply outcome %s/%s/%s: %w", o.Day, o.Branch, o.Status, err)
		}
	}
	return nil
}
