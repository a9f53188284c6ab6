package httpserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	pricingsvc "github.com/DanillS/doors-web/internal/service/pricing"
)

const (
	sessionName    = "door-admin"
	sessionAuthKey = "authenticated"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginHandler(svc adminService, store sessions.Store, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
			return
		}

		logger.Printf("admin login attempt username=%q", req.Username)
		if err := svc.Login(req.Username, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Неверные логин или пароль"})
			return
		}

		session, _ := store.Get(c.Request, sessionName)
		session.Values[sessionAuthKey] = true
		if err := session.Save(c.Request, c.Writer); err != nil {
			logger.Printf("admin login: save session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка сервера"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Успешный вход"})
	}
}

func logoutHandler(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := store.Get(c.Request, sessionName)
		session.Options.MaxAge = -1
		delete(session.Values, sessionAuthKey)
		_ = session.Save(c.Request, c.Writer)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func sessionHandler(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": isAuthenticated(store, c)})
	}
}

// requireAdmin guards admin-only routes behind a valid session cookie.
func requireAdmin(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(store, c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func isAuthenticated(store sessions.Store, c *gin.Context) bool {
	session, err := store.Get(c.Request, sessionName)
	if err != nil {
		return false
	}
	auth, ok := session.Values[sessionAuthKey].(bool)
	return ok && auth
}

func bulkPriceUpdateHandler(svc pricingService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in pricingsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payload"})
			return
		}

		result, err := svc.Apply(c.Request.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, pricingsvc.ErrNoDoors):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Не найдено товаров для обновления"})
			case errors.Is(err, pricingsvc.ErrInvalidOperation), errors.Is(err, pricingsvc.ErrInvalidPercentage):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			default:
				logger.Printf("bulk price update: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Внутренняя ошибка сервера"})
			}
			return
		}

		if result.FailedCount > 0 {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success":      false,
				"error":        fmt.Sprintf("Не удалось обновить %d товаров", result.FailedCount),
				"updatedCount": result.UpdatedCount,
				"outcomes":     result.Outcomes,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      fmt.Sprintf("Цены успешно обновлены для %d товаров", result.UpdatedCount),
			"updatedCount": result.UpdatedCount,
			"operation":    result.Operation,
			"percentage":   result.Percentage,
		})
	}
}
