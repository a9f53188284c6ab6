package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DanillS/doors-web/internal/domain"
	catalogsvc "github.com/DanillS/doors-web/internal/service/catalog"
)

// listDoorsHandler serves the catalog, newest first. The admin query
// flag includes inactive rows. A failed read degrades to an empty list
// so the storefront keeps rendering.
func listDoorsHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin := c.Query("admin") == "true"
		doors, err := svc.List(c.Request.Context(), isAdmin)
		if err != nil {
			logger.Printf("list doors: %v", err)
			c.JSON(http.StatusOK, []domain.Door{})
			return
		}
		if doors == nil {
			doors = []domain.Door{}
		}
		c.JSON(http.StatusOK, doors)
	}
}

func getDoorHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := doorID(c)
		if !ok {
			return
		}
		door, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Door not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, door)
	}
}

func createDoorHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.DoorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		door, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			logger.Printf("create door: %v", err)
			status, msg := mapCatalogErr(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, door)
	}
}

func updateDoorHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := doorID(c)
		if !ok {
			return
		}
		var in catalogsvc.DoorInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		door, err := svc.Update(c.Request.Context(), id, in)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Door not found"})
				return
			}
			logger.Printf("update door id=%d: %v", id, err)
			status, msg := mapCatalogErr(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, door)
	}
}

func deleteDoorHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := doorID(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Door not found"})
				return
			}
			logger.Printf("delete door id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func doorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// mapCatalogErr distinguishes input validation from storage failure.
func mapCatalogErr(err error) (int, string) {
	if errors.Is(err, catalogsvc.ErrNameRequired) || errors.Is(err, catalogsvc.ErrNegativePrice) {
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}
