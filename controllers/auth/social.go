package authControllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmart-dev/kmart-api/models"
	"gorm.io/gorm"
)

type SocialLoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Provider  string `json:"provider" binding:"required"`
}

// POST /api/auth/social-login
// Syncs a provider profile by email: creates the user on first login,
// refreshes the name on subsequent ones, then issues our own tokens.
func SocialLogin(db *gorm.DB, jwtSecret, refreshSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SocialLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and provider are required"})
			return
		}

		var user models.User
		err := db.Where("email = ?", req.Email).First(&user).Error

		switch {
		case err == gorm.ErrRecordNotFound:
			user = models.User{
				ID:         uuid.NewString(),
				Email:      req.Email,
				FirstName:  req.FirstName,
				LastName:   req.LastName,
				Role:       "user",
				Provider:   req.Provider,
				IsVerified: true, // the provider already verified the address
				CreatedAt:  time.Now(),
			}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("❌ Social login create error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			db.Model(&user).Updates(models.User{
				FirstName: req.FirstName,
				LastName:  req.LastName,
				Provider:  req.Provider,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		token, _ := GenerateToken(user, jwtSecret)
		refresh, _ := GenerateRefreshToken(user, refreshSecret)

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"user":         userResponse(user),
			"token":        token,
			"refreshToken": refresh,
		})
	}
}
