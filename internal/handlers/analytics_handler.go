package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/analytics"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/helpers"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/middleware"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/store"
)

// GetEventAnalytics recomputes the full analytics summary from raw rating
// rows on every call. There is no cached or incrementally-maintained
// state; the dashboard is pull-to-refresh by design.
func GetEventAnalytics(c *gin.Context) {
	eventID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND profile_id = ?", eventID, userID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to view its analytics.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	var wines []models.Wine
	if err := gormDB.Where("event_id = ?", event.ID).Order("tasting_order ASC").Find(&wines).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving wines.")
		return
	}

	wineIDs := make([]uuid.UUID, 0, len(wines))
	for _, wine := range wines {
		wineIDs = append(wineIDs, wine.ID)
	}

	ratings, err := store.New(gormDB).ListRatingsForWines(c.Request.Context(), wineIDs)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving ratings.")
		return
	}

	summary := analytics.Aggregate(analytics.RowsFromRatings(ratings), wines)

	c.JSON(http.StatusOK, gin.H{
		"event_id": event.ID,
		"summary":  summary,
	})
}
