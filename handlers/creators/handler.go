package creators

import (
	"errors"
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"
	mailsmodels "github.com/RinKhimera/onlyscam-sub000/utils/mails-models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Apply to become a content creator
// @Description Submit a creator application with an identity document. One pending application per user.
// @Tags creators
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param country formData string true "Country"
// @Param city formData string true "City"
// @Param phoneNumber formData string true "Phone number"
// @Param socialLink formData string false "Social media link"
// @Param document formData file true "Identity document"
// @Security BearerAuth
// @Success 201 {object} models.CreatorApplication
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 409 {object} map[string]string "error: Application already pending"
// @Router /creators/apply [post]
func Apply(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.CreatorApplicationCreate
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role == models.CreatorRole {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already a content creator"})
		return
	}

	var pending models.CreatorApplication
	if err := db.DB.Where("user_id = ? AND status = ?", userID, models.CreatorApplicationPending).
		First(&pending).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a pending application"})
		return
	}

	application := models.CreatorApplication{
		UserID:      userID.(string),
		FullName:    input.FullName,
		Country:     input.Country,
		City:        input.City,
		PhoneNumber: input.PhoneNumber,
		SocialLink:  input.SocialLink,
		Status:      models.CreatorApplicationPending,
	}

	file, err := c.FormFile("document")
	if err != nil || file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identity document is required"})
		return
	}
	documentURL, err := utils.UploadMedia(file, "creator_documents", "document")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading document: " + err.Error()})
		return
	}
	application.DocumentProofUrl = documentURL

	if err := db.DB.Create(&application).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de la demande dans Apply")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating application"})
		return
	}

	utils.LogSuccessWithUser(userID, "Demande créateur soumise dans Apply")
	c.JSON(http.StatusCreated, application)
}

// @Summary Get the user's creator application
// @Tags creators
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CreatorApplication
// @Failure 404 {object} map[string]string "error: No application found"
// @Router /creators/application [get]
func GetOwnApplication(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var application models.CreatorApplication
	if err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").
		First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No application found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching application"})
		}
		return
	}

	c.JSON(http.StatusOK, application)
}

// @Summary List creator applications
// @Description Admin listing of applications, optionally filtered by status
// @Tags creators
// @Produce json
// @Param status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Security BearerAuth
// @Success 200 {array} models.CreatorApplication
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /creators/applications [get]
func ListApplications(c *gin.Context) {
	query := db.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.CreatorApplication
	if err := query.Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching applications"})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// @Summary Review a creator application
// @Description Admin approves or rejects an application. Approval promotes the user to the creator role.
// @Tags creators
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param status body models.CreatorApplicationStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.CreatorApplication
// @Failure 400 {object} map[string]string "error: Invalid status"
// @Failure 404 {object} map[string]string "error: Application not found"
// @Router /creators/applications/{id} [patch]
func ReviewApplication(c *gin.Context) {
	adminID, _ := c.Get("user_id")

	var application models.CreatorApplication
	if err := db.DB.First(&application, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	var input models.CreatorApplicationStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.Status != models.CreatorApplicationApproved && input.Status != models.CreatorApplicationRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be APPROVED or REJECTED"})
		return
	}

	// La promotion du rôle et la revue partent dans la même transaction
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status":      input.Status,
			"reviewed_by": adminID,
		}).Error; err != nil {
			return err
		}
		if input.Status == models.CreatorApplicationApproved {
			return tx.Model(&models.User{}).Where("id = ?", application.UserID).
				Update("role", models.CreatorRole).Error
		}
		return nil
	})
	if err != nil {
		utils.LogErrorWithUser(adminID, err, "Erreur lors de la revue de la demande dans ReviewApplication")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reviewing application"})
		return
	}

	var applicant models.User
	if err := db.DB.First(&applicant, "id = ?", application.UserID).Error; err == nil {
		go mailsmodels.CreatorStatusUpdate(applicant.Email, input.Status == models.CreatorApplicationApproved)
	}

	utils.LogSuccessWithUser(adminID, "Demande créateur revue dans ReviewApplication")
	c.JSON(http.StatusOK, application)
}
