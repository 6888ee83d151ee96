package report

import (
	"net/http"

	"github.com/RinKhimera/onlyscam-sub000/db"
	"github.com/RinKhimera/onlyscam-sub000/models"
	"github.com/RinKhimera/onlyscam-sub000/utils"

	"github.com/gin-gonic/gin"
)

// @Summary Report a post
// @Description Flag a post for moderation with a reason
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param report body models.ReportCreate true "Report reason"
// @Security BearerAuth
// @Success 201 {object} models.Report
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Failure 409 {object} map[string]string "error: Already reported"
// @Router /posts/{id}/report [post]
func ReportPost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input models.ReportCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var existing models.Report
	if err := db.DB.Where("post_id = ? AND reported_by = ?", postID, userID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already reported this post"})
		return
	}

	report := models.Report{
		PostID:     postID,
		ReportedBy: userID.(string),
		Reason:     input.Reason,
		Status:     models.ReportPending,
	}

	if err := db.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating report"})
		return
	}

	utils.LogSuccessWithUser(userID, "Post signalé dans ReportPost")
	c.JSON(http.StatusCreated, report)
}

// @Summary List reports
// @Description Admin listing of all reports, pending first
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Report
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Router /reports [get]
func GetReports(c *gin.Context) {
	var reports []models.Report
	if err := db.DB.Order("status ASC, created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// @Summary Review a report
// @Description Admin updates a report's status after review
// @Tags moderation
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param status body models.ReportStatusUpdate true "New status"
// @Security BearerAuth
// @Success 200 {object} models.Report
// @Failure 404 {object} map[string]string "error: Report not found"
// @Router /reports/{id} [patch]
func UpdateReportStatus(c *gin.Context) {
	var report models.Report
	if err := db.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var input models.ReportStatusUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if err := db.DB.Model(&report).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
