// Package analytics derives event dashboards from raw rating rows. Every
// function here is a pure transform over data already fetched by the
// store; nothing in this package performs I/O.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

const topDescriptorLimit = 10

// RatingRow is one rating joined with its wine, descriptors and owner.
// Rows form a multiset: the same (guest, wine) pair may appear more than
// once and every row counts.
type RatingRow struct {
	RatingID    uuid.UUID `json:"ratingId"`
	WineID      uuid.UUID `json:"wineId"`
	WineName    string    `json:"wineName"`
	Producer    string    `json:"producer"`
	ProfileID   uuid.UUID `json:"profileId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Stars       int       `json:"stars"`
	Note        string    `json:"note"`
	Descriptors []string  `json:"descriptors"`
	// CreatedAt drives hour-of-day bucketing in whatever zone the stored
	// timestamps carry.
	CreatedAt time.Time `json:"createdAt"`
}

type Bucket struct {
	Stars      int     `json:"stars"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type WineStat struct {
	WineID        uuid.UUID `json:"wineId"`
	Name          string    `json:"name"`
	Producer      string    `json:"producer"`
	RatingCount   int       `json:"ratingCount"`
	AverageRating float64   `json:"averageRating"`
	NoteCount     int       `json:"noteCount"`
	SampleNote    string    `json:"sampleNote"`
}

type DescriptorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AttendeeStat struct {
	ProfileID     uuid.UUID `json:"profileId"`
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email"`
	RatingCount   int       `json:"ratingCount"`
	AverageRating float64   `json:"averageRating"`
	WouldBuyCount int       `json:"wouldBuyCount"`
}

// Summary is the full analytics shape. All rollups are computed from the
// same input list, so totals stay mutually consistent: the distribution
// buckets, the hourly buckets and the per-wine counts all sum to
// TotalRatings when every row belongs to a wine in the set.
type Summary struct {
	TotalRatings   int               `json:"totalRatings"`
	AverageRating  float64           `json:"averageRating"`
	Distribution   [5]Bucket         `json:"distribution"`
	HourlyActivity [24]int           `json:"hourlyActivity"`
	Wines          []WineStat        `json:"wines"`
	TopDescriptors []DescriptorCount `json:"topDescriptors"`
	Attendees      []AttendeeStat    `json:"attendees"`
}

// WouldBuy derives the recommendation flag from a star value.
func WouldBuy(stars int) bool {
	return stars >= 4
}

// Aggregate computes the summary for one event. wines fixes the per-wine
// roster and its order, so wines without ratings still appear with zeroed
// stats. An empty rating list yields a zeroed summary, never an error.
func Aggregate(rows []RatingRow, wines []models.Wine) Summary {
	summary := Summary{
		Wines:          make([]WineStat, 0, len(wines)),
		TopDescriptors: []DescriptorCount{},
		Attendees:      []AttendeeStat{},
	}
	for i := range summary.Distribution {
		summary.Distribution[i].Stars = i + 1
	}

	summary.TotalRatings = len(rows)
	starTotal := 0
	for _, row := range rows {
		starTotal += row.Stars
		if row.Stars >= 1 && row.Stars <= 5 {
			summary.Distribution[row.Stars-1].Count++
		}
		summary.HourlyActivity[row.CreatedAt.Hour()]++
	}
	if summary.TotalRatings > 0 {
		summary.AverageRating = round1(float64(starTotal) / float64(summary.TotalRatings))
		for i := range summary.Distribution {
			pct := float64(summary.Distribution[i].Count) / float64(summary.TotalRatings) * 100
			summary.Distribution[i].Percentage = round1(pct)
		}
	}

	summary.Wines = wineStats(rows, wines)
	summary.TopDescriptors = topDescriptors(rows)
	summary.Attendees = attendeeStats(rows)
	return summary
}

func wineStats(rows []RatingRow, wines []models.Wine) []WineStat {
	byWine := make(map[uuid.UUID]*WineStat, len(wines))
	starTotals := make(map[uuid.UUID]int, len(wines))

	stats := make([]WineStat, 0, len(wines))
	for _, wine := range wines {
		stats = append(stats, WineStat{WineID: wine.ID, Name: wine.Name, Producer: wine.Producer})
	}
	for i := range stats {
		byWine[stats[i].WineID] = &stats[i]
	}

	for _, row := range rows {
		stat, ok := byWine[row.WineID]
		if !ok {
			continue
		}
		stat.RatingCount++
		starTotals[row.WineID] += row.Stars
		if row.Note != "" {
			stat.NoteCount++
			// First non-empty note in input order; keeps sampling
			// deterministic.
			if stat.SampleNote == "" {
				stat.SampleNote = row.Note
			}
		}
	}
	for i := range stats {
		if stats[i].RatingCount > 0 {
			stats[i].AverageRating = round1(float64(starTotals[stats[i].WineID]) / float64(stats[i].RatingCount))
		}
	}
	return stats
}

func topDescriptors(rows []RatingRow) []DescriptorCount {
	counts := map[string]int{}
	for _, row := range rows {
		for _, name := range row.Descriptors {
			if name != "" {
				counts[name]++
			}
		}
	}
	ranked := make([]DescriptorCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, DescriptorCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topDescriptorLimit {
		ranked = ranked[:topDescriptorLimit]
	}
	return ranked
}

func attendeeStats(rows []RatingRow) []AttendeeStat {
	byProfile := map[uuid.UUID]*AttendeeStat{}
	starTotals := map[uuid.UUID]int{}
	order := []uuid.UUID{}

	for _, row := range rows {
		stat, ok := byProfile[row.ProfileID]
		if !ok {
			stat = &AttendeeStat{
				ProfileID:   row.ProfileID,
				DisplayName: row.DisplayName,
				Email:       row.Email,
			}
			if stat.Email == "" {
				stat.Email = placeholderEmail(row.ProfileID)
			}
			byProfile[row.ProfileID] = stat
			order = append(order, row.ProfileID)
		}
		stat.RatingCount++
		starTotals[row.ProfileID] += row.Stars
		if WouldBuy(row.Stars) {
			stat.WouldBuyCount++
		}
	}

	stats := make([]AttendeeStat, 0, len(order))
	for _, id := range order {
		stat := byProfile[id]
		stat.AverageRating = round1(float64(starTotals[id]) / float64(stat.RatingCount))
		stats = append(stats, *stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].RatingCount > stats[j].RatingCount
	})
	return stats
}

// placeholderEmail fabricates an email-shaped string when the real address
// was not joined into the row set. Downstream CSV export expects every
// attendee row to carry an email.
func placeholderEmail(id uuid.UUID) string {
	short := id.String()
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("user-%s@example.com", short)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
