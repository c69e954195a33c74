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

type LocationRequest struct {
	Name         string    `json:"name" binding:"required"`
	Address      string    `json:"address"`
	DisplayOrder int       `json:"display_order"`
	EventID      uuid.UUID `json:"event_id" binding:"required"`
}

func CreateLocation(c *gin.Context) {
	var req LocationRequest
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

	location := models.Location{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		DisplayOrder: req.DisplayOrder,
		EventID:      req.EventID,
	}

	if err := gormDB.Create(&location).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create location.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Location created successfully.",
		"location_id": location.ID,
	})
}

func UpdateLocation(c *gin.Context) {
	locationID := c.Param("id")
	var req LocationRequest
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

	var location models.Location
	if err := gormDB.Where("id = ?", locationID).First(&location).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Location not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND profile_id = ?", location.EventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to modify this location.")
		return
	}

	location.Name = req.Name
	location.Address = req.Address
	location.DisplayOrder = req.DisplayOrder

	if err := gormDB.Save(&location).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update location.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Location updated successfully.",
		"location": location,
	})
}

func DeleteLocation(c *gin.Context) {
	locationID := c.Param("id")

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

	var location models.Location
	if err := gormDB.Where("id = ?", locationID).First(&location).Error; err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Location not found.")
		return
	}

	var event models.Event
	if err := gormDB.Where("id = ? AND profile_id = ?", location.EventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to delete this location.")
		return
	}

	// Wines at this stop fall back to the flat booth listing.
	if err := gormDB.Model(&models.Wine{}).Where("location_id = ?", location.ID).Update("location_id", nil).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to detach wines from location.")
		return
	}

	if err := gormDB.Delete(&location).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete location.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Location deleted successfully.",
	})
}
