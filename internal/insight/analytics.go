package insight

import (
	"math"
	"time"

	"github.com/rcliao/pulse/internal/domain"
)

const (
	trendDays = 7
	dayFormat = "2006-01-02"
)

type TrendPoint struct {
	Day            string `json:"day"`
	CompletedCount int    `json:"completedCount"`
	AddedCount     int    `json:"addedCount"`
}

type PriorityCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Analytics struct {
	CompletionTrend []TrendPoint    `json:"completionTrend"`
	ByPriority      []PriorityCount `json:"byPriority"`
	Total           int             `json:"total"`
	Completed       int             `json:"completed"`
	Rate            int             `json:"rate"`
}

// Aggregate derives the 7-day completion trend (oldest day first), the
// three-bucket priority histogram, and completion totals. Trend buckets
// are calendar days in now's location. Tasks with an unrecognized
// priority count toward the totals but land in none of the three
// histogram buckets.
func Aggregate(tasks []*domain.Task, now time.Time) Analytics {
	trend := make([]TrendPoint, trendDays)
	dayIndex := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := now.AddDate(0, 0, i-(trendDays-1)).Format(dayFormat)
		trend[i] = TrendPoint{Day: day}
		dayIndex[day] = i
	}

	var completed int
	counts := make(map[domain.Priority]int, 3)
	for _, t := range tasks {
		created := t.CreatedAt.In(now.Location()).Format(dayFormat)
		if i, ok := dayIndex[created]; ok {
			trend[i].AddedCount++
		}
		if t.Completed {
			completed++
			if t.CompletedAt != nil {
				done := t.CompletedAt.In(now.Location()).Format(dayFormat)
				if i, ok := dayIndex[done]; ok {
					trend[i].CompletedCount++
				}
			}
		}
		counts[t.Priority]++
	}

	byPriority := []PriorityCount{
		{Name: string(domain.PriorityHigh), Value: counts[domain.PriorityHigh]},
		{Name: string(domain.PriorityMedium), Value: counts[domain.PriorityMedium]},
		{Name: string(domain.PriorityLow), Value: counts[domain.PriorityLow]},
	}

	total := len(tasks)
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return Analytics{
		CompletionTrend: trend,
		ByPriority:      byPriority,
		Total:           total,
		Completed:       completed,
		Rate:            rate,
	}
}
