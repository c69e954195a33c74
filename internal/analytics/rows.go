package analytics

import (
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

// RowsFromRatings flattens stored ratings (with their preloaded wine,
// profile and descriptor associations) into the aggregator's input shape.
// A missing profile join leaves Email empty; the attendee rollup fills in
// its placeholder there.
func RowsFromRatings(ratings []models.Rating) []RatingRow {
	rows := make([]RatingRow, 0, len(ratings))
	for _, rating := range ratings {
		row := RatingRow{
			RatingID:    rating.ID,
			WineID:      rating.WineID,
			WineName:    rating.Wine.Name,
			Producer:    rating.Wine.Producer,
			ProfileID:   rating.ProfileID,
			DisplayName: rating.Profile.DisplayName,
			Email:       rating.Profile.Email,
			Stars:       rating.Stars,
			Note:        rating.Note,
			CreatedAt:   rating.CreatedAt,
		}
		for _, descriptor := range rating.Descriptors {
			row.Descriptors = append(row.Descriptors, descriptor.Name)
		}
		rows = append(rows, row)
	}
	return rows
}
