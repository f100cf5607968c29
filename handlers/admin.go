package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"quotecompare/services/admin"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	AdminService admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(as admin.AdminService) *AdminHandler {
	return &AdminHandler{AdminService: as}
}

// GetAllUsersHandler returns every user with a derived status.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.AdminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

type userStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (ah *AdminHandler) UpdateUserStatusHandler(c *gin.Context) {
	var req userStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badInput(c, err)
		return
	}
	if err := ah.AdminService.SetUserStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err, "Failed to update user status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %s successfully.", req.Status)})
}

func (ah *AdminHandler) GetStatsHandler(c *gin.Context) {
	stats, err := ah.AdminService.PlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (ah *AdminHandler) GetUserStatsHandler(c *gin.Context) {
	stats, err := ah.AdminService.UserStats(c.Request.Context(), c.Param("id"), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err, "Failed to fetch user stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ExportUsersHandler streams the users workbook as an attachment.
func (ah *AdminHandler) ExportUsersHandler(c *gin.Context) {
	var buf bytes.Buffer
	if err := ah.AdminService.ExportUsers(c.Request.Context(), &buf); err != nil {
		respondError(c, err, "Failed to export users")
		return
	}
	filename := fmt.Sprintf("users-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
