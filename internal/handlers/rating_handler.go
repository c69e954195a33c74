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
)

type DescriptorInput struct {
	Name      string `json:"name" binding:"required"`
	Intensity int    `json:"intensity" binding:"omitempty,min=1,max=5"`
}

type RatingRequest struct {
	UserID      uuid.UUID         `json:"user_id" binding:"required"`
	WineID      uuid.UUID         `json:"wine_id" binding:"required"`
	Stars       int               `json:"stars" binding:"required,min=1,max=5"`
	Note        string            `json:"note"`
	Descriptors []DescriptorInput `json:"descriptors"`
}

// SubmitRating records one tasting rating. The guest identity comes from
// the client-held session blob; re-rating the same wine appends a new row
// rather than updating in place.
func SubmitRating(c *gin.Context) {
	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var wine models.Wine
	if err := gormDB.Where("id = ?", req.WineID).First(&wine).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Wine not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving wine.")
		return
	}

	var profile models.Profile
	if err := gormDB.Where("id = ?", req.UserID).First(&profile).Error; err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Guest profile not found. Rejoin the event and try again.")
		return
	}

	rating := models.Rating{
		ID:        uuid.New(),
		Stars:     req.Stars,
		Note:      req.Note,
		WineID:    req.WineID,
		ProfileID: req.UserID,
	}
	for _, d := range req.Descriptors {
		intensity := d.Intensity
		if intensity == 0 {
			intensity = 3
		}
		rating.Descriptors = append(rating.Descriptors, models.Descriptor{
			Name:      d.Name,
			Intensity: intensity,
		})
	}

	if err := gormDB.Create(&rating).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save rating.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Rating saved successfully.",
		"rating_id": rating.ID,
		"would_buy": analytics.WouldBuy(rating.Stars),
	})
}
