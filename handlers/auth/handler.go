package auth

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"
	mailsmodels "github.com/RinKhimera/onlyscam-sub000/utils/mails-models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// @Summary Register a new user
// @Description Create a new account and send a confirmation email
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.UserLogin true "Email and password"
// @Success 201 {object} map[string]interface{} "message: User created successfully, email"
// @Failure 400 {object} map[string]interface{} "error: Invalid input"
// @Failure 409 {object} map[string]interface{} "error: Email already exists"
// @Router /register [post]
func Register(c *gin.Context) {
	var input models.UserLogin

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !utils.ValidateEmail(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	if !utils.ValidatePassword(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The password must contain at least 6 characters, one lowercase, one uppercase and one digit"})
		return
	}

	var existingUser models.User
	if err := db.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already used"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error when checking the email existence"})
		return
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error hashing the password"})
		return
	}

	user := models.User{
		Email:              input.Email,
		Password:           passwordHash,
		Role:               models.UserRole,
		Enable:             true,
		SubscriptionEnable: true,
		CommentsEnable:     true,
		MessageEnable:      true,
		EmailVerifiedAt:    sql.NullTime{Valid: false},
	}

	if err := db.DB.Create(&user).Error; err != nil {
		utils.LogError(err, "Erreur lors de la création de l'utilisateur dans Register")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the user"})
		return
	}

	// Le token de confirmation est un JWT court, renvoyé par email
	token, err := utils.GenerateJWT(user, 24)
	if err == nil {
		go mailsmodels.ConfirmEmail(user.Email, token)
	}

	utils.LogSuccessWithUser(user.ID, "Utilisateur créé avec succès dans Register")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"email":   user.Email,
	})
}

// @Summary Log in
// @Description Authenticate a user and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLogin true "Email and password"
// @Success 200 {object} map[string]string "token"
// @Failure 401 {object} map[string]string "error: Invalid credentials"
// @Router /login [post]
func Login(c *gin.Context) {
	var credentials models.UserLogin

	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", credentials.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.Enable {
		c.JSON(http.StatusForbidden, gin.H{"error": "This account is disabled"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credentials.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(user, 72)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Erreur lors de la génération du JWT dans Login")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating the token"})
		return
	}

	utils.LogSuccessWithUser(user.ID, "Connexion réussie dans Login")
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary Confirm an email address
// @Description Validate the confirmation token sent by email
// @Tags auth
// @Produce json
// @Param token query string true "Confirmation token"
// @Success 200 {object} map[string]string "message: Email confirmed"
// @Failure 401 {object} map[string]string "error: Invalid or expired token"
// @Router /confirm-email [get]
func ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	claims, err := utils.DecodeJWT(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	result := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("email_verified_at", sql.NullTime{Time: time.Now(), Valid: true})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error confirming the email"})
		return
	}

	utils.LogSuccessWithUser(userID, "Email confirmé dans ConfirmEmail")
	c.JSON(http.StatusOK, gin.H{"message": "Email confirmed successfully"})
}
