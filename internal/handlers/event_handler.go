package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/helpers"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/middleware"
	"github.com/brian-hlbdg/wine-tasting-app-sub000/internal/models"
)

type EventRequest struct {
	Name                string `json:"name" binding:"required"`
	Date                string `json:"date" binding:"required"`
	Location            string `json:"location"`
	Description         string `json:"description"`
	AccessMode          string `json:"access_mode"`
	BoothIcon           string `json:"booth_icon"`
	BoothTitle          string `json:"booth_title"`
	BoothPrimaryColor   string `json:"booth_primary_color"`
	BoothSecondaryColor string `json:"booth_secondary_color"`
}

func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.")
		return
	}

	mode := models.AccessMode(req.AccessMode)
	if req.AccessMode == "" {
		mode = models.AccessModeStandard
	}
	if !mode.Valid() {
		helpers.RespondWithError(c, http.StatusBadRequest, "Unknown access mode.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	organizerID, err := uuid.Parse(userID.(string))
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	accessCode, err := uniqueAccessCode(gormDB)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate an access code.")
		return
	}

	event := models.Event{
		ID:                  uuid.New(),
		Name:                req.Name,
		Date:                date,
		Location:            req.Location,
		Description:         req.Description,
		AccessCode:          accessCode,
		AccessMode:          mode,
		IsActive:            true,
		BoothIcon:           req.BoothIcon,
		BoothTitle:          req.BoothTitle,
		BoothPrimaryColor:   req.BoothPrimaryColor,
		BoothSecondaryColor: req.BoothSecondaryColor,
		ProfileID:           organizerID,
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Event created successfully.",
		"event_id":    event.ID,
		"access_code": event.AccessCode,
	})
}

// uniqueAccessCode retries on the off chance a generated code collides
// with an existing event's.
func uniqueAccessCode(gormDB *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := helpers.GenerateAccessCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := gormDB.Model(&models.Event{}).Where("access_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", gorm.ErrDuplicatedKey
}

func GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var event models.Event
	if err := gormDB.Preload("Locations").Preload("Wines").Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func ListEvents(c *gin.Context) {
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

	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "10")

	pageNum, err := helpers.StringToInt(page)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(limit)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{}).Where("profile_id = ?", userID)
	if c.Query("include_deleted") == "true" {
		query = query.Unscoped().Where("profile_id = ?", userID)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("date DESC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func UpdateEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date format.")
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
			helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to update.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error finding event.")
		return
	}

	event.Name = req.Name
	event.Date = date
	event.Location = req.Location
	event.Description = req.Description
	event.BoothIcon = req.BoothIcon
	event.BoothTitle = req.BoothTitle
	event.BoothPrimaryColor = req.BoothPrimaryColor
	event.BoothSecondaryColor = req.BoothSecondaryColor

	if err := gormDB.Save(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

// DeleteEvent soft-deletes: the row keeps a deletion timestamp and actor
// for the 30-day recovery window; permanent removal is an external
// cleanup job's concern.
func DeleteEvent(c *gin.Context) {
	eventID := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	actorID, err := uuid.Parse(userID.(string))
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Model(&models.Event{}).
		Where("id = ? AND profile_id = ?", eventID, userID).
		Update("deleted_by", actorID)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to delete.")
		return
	}

	if err := gormDB.Where("id = ?", eventID).Delete(&models.Event{}).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted. It can be restored within 30 days.",
	})
}

// RestoreEvent clears the soft-delete fields within the recovery window.
func RestoreEvent(c *gin.Context) {
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

	result := gormDB.Unscoped().Model(&models.Event{}).
		Where("id = ? AND profile_id = ? AND deleted_at IS NOT NULL", eventID, userID).
		Updates(map[string]interface{}{"deleted_at": nil, "deleted_by": nil})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to restore event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "No deleted event to restore.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event restored successfully.",
	})
}
