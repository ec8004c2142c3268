package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"infobus/internal/config"
	"infobus/internal/models"
)

// GetOperatorProfile returns the authenticated operator's account.
func GetOperatorProfile(c *gin.Context) {
	accountID := c.MustGet("account_id").(uint)

	var operator models.Operator
	if err := config.DB.First(&operator, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Operator not found"})
		} else {
			logrus.WithError(err).Error("GetOperatorProfile: lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"operator": operator})
}

// ListOperatorRoutes returns the routes owned by the authenticated
// operator.
func ListOperatorRoutes(c *gin.Context) {
	accountID := c.MustGet("account_id").(uint)

	routes, err := routeService.ByOwner(accountID)
	if err != nil {
		logrus.WithError(err).Error("ListOperatorRoutes: listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": toRouteResponses(routes)})
}
