package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/helpers"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/middleware"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

type WineRequest struct {
	Name         string     `json:"name" binding:"required"`
	Producer     string     `json:"producer"`
	Vintage      string     `json:"vintage"`
	Region       string     `json:"region"`
	Varietal     string     `json:"varietal"`
	TastingNotes string     `json:"tasting_notes"`
	ImageURL     string     `json:"image_url"`
	TastingOrder int        `json:"tasting_order"`
	EventID      uuid.UUID  `json:"event_id" binding:"required"`
	LocationID   *uuid.UUID `json:"location_id"`
}

func CreateWine(c *gin.Context) {
	var req WineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

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
	if err := gormDB.Where("id = ? AND profile_id = ?", req.EventID, userID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to modify it.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error verifying event ownership.")
		return
	}

	if req.LocationID != nil {
		var location models.Location
		if err := gormDB.Where("id = ? AND event_id = ?", req.LocationID, req.EventID).First(&location).Error; err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Location does not belong to this event.")
			return
		}
	}

	wine := models.Wine{
		ID:           uuid.New(),
		Name:         req.Name,
		Producer:     req.Producer,
		Vintage:      req.Vintage,
		Region:       req.Region,
		Varietal:     req.Varietal,
		TastingNotes: req.TastingNotes,
		ImageURL:     req.ImageURL,
		TastingOrder: req.TastingOrder,
		EventID:      req.EventID,
		LocationID:   req.LocationID,
	}

	if err := gormDB.Create(&wine).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create wine.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Wine created successfully.",
		"wine_id": wine.ID,
	})
}

// ListEventWines is the participant-facing tasting list: wines grouped by
// location order first (wine-crawl events), then by tasting order.
func ListEventWines(c *gin.Context) {
	eventID := c.Param("id")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND is_active = ?", eventID, true).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	var wines []models.Wine
	err := gormDB.Preload("Location").
		Joins("LEFT JOIN locations ON locations.id = wines.location_id").
		Where("wines.event_id = ?", eventID).
		Order("COALESCE(locations.display_order, 0) ASC, wines.tasting_order ASC").
		Find(&wines).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving wines.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id": event.ID,
		"wines":    wines,
	})
}

func UpdateWine(c *gin.Context) {
	wineID := c.Param("id")
	var req WineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

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

	var wine models.Wine
	if err := gormDB.Where("id = ?", wineID).First(&wine).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Wine not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND profile_id = ?", wine.EventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to modify this wine.")
		return
	}

	wine.Name = req.Name
	wine.Producer = req.Producer
	wine.Vintage = req.Vintage
	wine.Region = req.Region
	wine.Varietal = req.Varietal
	wine.TastingNotes = req.TastingNotes
	wine.ImageURL = req.ImageURL
	wine.TastingOrder = req.TastingOrder
	wine.LocationID = req.LocationID

	if err := gormDB.Save(&wine).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update wine.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wine updated successfully.",
		"wine":    wine,
	})
}

func DeleteWine(c *gin.Context) {
	wineID := c.Param("id")

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

	var wine models.Wine
	if err := gormDB.Where("id = ?", wineID).First(&wine).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Wine not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND profile_id = ?", wine.EventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this wine.")
		return
	}

	if err := gormDB.Delete(&wine).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete wine.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wine deleted successfully.",
	})
}
