package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"infobus/internal/config"
	"infobus/internal/models"
	"infobus/internal/store"
)

// Rider favourites: a thin list of route IDs hanging off the user
// account. No route business logic lives here.

// ListSavedRoutes returns the rider's bookmarked route IDs.
func ListSavedRoutes(c *gin.Context) {
	accountID := c.MustGet("account_id").(uint)

	var user models.User
	if err := config.DB.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_routes": user.SavedRoutes})
}

// SaveRoute bookmarks a route for the rider. Saving twice is a no-op.
func SaveRoute(c *gin.Context) {
	accountID := c.MustGet("account_id").(uint)

	routeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}
	// Only real routes can be bookmarked
	if _, err := routeService.Get(uint(routeID)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var user models.User
	if err := config.DB.First(&user, accountID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	idStr := c.Param("id")
	for _, saved := range user.SavedRoutes {
		if saved == idStr {
			c.JSON(http.StatusOK, gin.H{"saved_routes": user.SavedRoutes})
			return
		}
	}

	user.SavedRoutes = append(user.SavedRoutes, idStr)
	if err := config.DB.Model(&user).Update("saved_routes", user.SavedRoutes).Error; err != nil {
		logrus.WithError(err).Error("SaveRoute: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_routes": user.SavedRoutes})
}

// UnsaveRoute drops a route from the rider's bookmarks.
func UnsaveRoute(c *gin.Context) {
	accountID := c.MustGet("account_id").(uint)

	var user models.User
	if err := config.DB.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	idStr := c.Param("id")
	kept := make(pq.StringArray, 0, len(user.SavedRoutes))
	for _, saved := range user.SavedRoutes {
		if saved != idStr {
			kept = append(kept, saved)
		}
	}

	user.SavedRoutes = kept
	if err := config.DB.Model(&user).Update("saved_routes", user.SavedRoutes).Error; err != nil {
		logrus.WithError(err).Error("UnsaveRoute: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_routes": user.SavedRoutes})
}
