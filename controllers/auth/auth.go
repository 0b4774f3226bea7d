package authControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kmart-dev/kmart-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userResponse(u models.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"role":       u.Role,
		"isVerified": u.IsVerified,
	}
}

// POST /api/auth/register
func Register(db *gorm.DB, jwtSecret, refreshSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and a password of at least 8 characters are required"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists with this email"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		user := models.User{
			ID:                uuid.NewString(),
			Email:             req.Email,
			PasswordHash:      string(hash),
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			Role:              "user",
			VerificationToken: randomToken(),
			CreatedAt:         time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Registration error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		token, _ := GenerateToken(user, jwtSecret)
		refresh, _ := GenerateRefreshToken(user, refreshSecret)

		// TODO: send the verification email once an email provider is wired up.

		c.JSON(http.StatusCreated, gin.H{
			"message":      "User registered successfully",
			"user":         userResponse(user),
			"token":        token,
			"refreshToken": refresh,
		})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, jwtSecret, refreshSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
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

// GET /api/auth/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		resp := userResponse(user)
		resp["phone"] = user.Phone
		resp["createdAt"] = user.CreatedAt
		c.JSON(http.StatusOK, gin.H{"user": resp})
	}
}
