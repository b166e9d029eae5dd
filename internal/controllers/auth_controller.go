package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mediahaus/taskhaus/internal/logger"
	"github.com/mediahaus/taskhaus/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8"`
	TeamID   *uint  `json:"team_id"`
}

type AuthResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Token     string      `json:"token"`
	APIKey    string      `json:"api_key"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	// Issue an API key on login when the user does not have one yet.
	if user.APIKey == nil {
		key := newAPIKey()
		user.APIKey = &key
		if err := ac.db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue API key"})
			return
		}
	}

	token, expiresAt, err := ac.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		APIKey:    *user.APIKey,
		User:      user,
		ExpiresAt: expiresAt,
	})
}

// Register creates the user, resolves or creates their team and attaches the
// membership inside a single transaction. Any failure rolls everything back.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	var existing models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	var user models.User

	err = ac.db.Transaction(func(tx *gorm.DB) error {
		key := newAPIKey()
		user = models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hashedPassword),
			APIKey:   &key,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		var team models.Team
		if req.TeamID != nil {
			if err := tx.First(&team, *req.TeamID).Error; err != nil {
				return fmt.Errorf("find team: %w", err)
			}
		} else {
			teamName := user.Name + "'s Team"
			team = models.Team{
				Name:    teamName,
				Slug:    fmt.Sprintf("%s-%d-%s", slugify(teamName), user.ID, newSlugSuffix()),
				OwnerID: &user.ID,
			}
			if err := tx.Create(&team).Error; err != nil {
				return fmt.Errorf("create team: %w", err)
			}
		}

		user.TeamID = &team.ID
		user.CurrentTeamID = &team.ID
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("attach team: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.WithError(err, "auth_controller").Error("Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		return
	}

	token, expiresAt, err := ac.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Success:   true,
		Message:   "Registration successful",
		Token:     token,
		APIKey:    *user.APIKey,
		User:      user,
		ExpiresAt: expiresAt,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// ApiToken returns the caller's API key, creating one if missing, and stamps
// its last-used time.
func (ac *AuthController) ApiToken(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   "Not authenticated.",
		})
		return
	}

	if user.APIKey == nil {
		key := newAPIKey()
		user.APIKey = &key
	}

	now := time.Now()
	user.APIKeyLastUsedAt = &now
	if err := ac.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"api_key": *user.APIKey,
	})
}

func (ac *AuthController) generateToken(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	return tokenString, expiresAt, err
}

func newAPIKey() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func newSlugSuffix() string {
	return strings.Split(uuid.NewString(), "-")[0][:6]
}

// slugify lowercases and collapses non-alphanumeric runs into single dashes.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
