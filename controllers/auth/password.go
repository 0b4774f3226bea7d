package authControllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmart-dev/kmart-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// POST /api/auth/forgot-password
// Responds identically whether or not the email exists.
func ForgotPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err == nil {
			expires := time.Now().Add(resetTokenTTL)
			if err := db.Model(&user).Updates(map[string]interface{}{
				"reset_token":         randomToken(),
				"reset_token_expires": expires,
			}).Error; err != nil {
				log.Printf("❌ Failed to store reset token: %v", err)
			}
			// TODO: send the reset email once an email provider is wired up.
		}

		c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a reset link has been sent"})
	}
}

// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token       string `json:"token" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token and a new password of at least 8 characters are required"})
			return
		}

		var user models.User
		if err := db.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		if user.ResetTokenExpires == nil || user.ResetTokenExpires.Before(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token has expired"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if err := db.Model(&user).Updates(map[string]interface{}{
			"password_hash":       string(hash),
			"reset_token":         "",
			"reset_token_expires": nil,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
	}
}

// POST /api/auth/verify-email
func VerifyEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Verification token is required"})
			return
		}

		var user models.User
		if err := db.Where("verification_token = ?", req.Token).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification token"})
			return
		}

		if err := db.Model(&user).Updates(map[string]interface{}{
			"is_verified":        true,
			"verification_token": "",
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
	}
}
