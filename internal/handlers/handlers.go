package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"referral-api/internal/ledger"
	"referral-api/internal/logs"
	"referral-api/internal/models"
	"referral-api/internal/referral"
	"referral-api/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var baseURL = "https://example.com"

func RegisterRoutes(r *gin.Engine, referralBaseURL string) {
	if referralBaseURL != "" {
		baseURL = referralBaseURL
	}

	r.GET("/health", health)

	r.GET("/api/users/:id/points", getUserPoints)
	r.POST("/api/users/:id/add-points", addUserPoints)

	r.POST("/api/referrals/create", createReferral)
	r.GET("/api/referrals/:code/stats", getReferralStats)

	r.POST("/api/webhook-test", webhookTest)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Referral API is running"})
}

func getUserPoints(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	points, err := ledger.EnsureUser(store.GetDB(), userID)
	if err != nil {
		logs.Log.WithError(err).Error("get user points")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "points": points})
}

type addPointsReq struct {
	Points int `json:"points"`
}

func addUserPoints(c *gin.Context) {
	userID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	var req addPointsReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid positive points value is required"})
		return
	}
	total, err := ledger.AddPoints(store.GetDB(), userID, req.Points)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid positive points value is required"})
			return
		}
		logs.Log.WithError(err).Error("add points")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Points added", "totalPoints": total})
}

type referralCreateReq struct {
	MemberID  string `json:"memberId" binding:"required"`
	ProjectID string `json:"projectId" binding:"required"`
}

func createReferral(c *gin.Context) {
	var req referralCreateReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "memberId and projectId are required"})
		return
	}
	db := store.GetDB()
	if _, err := ledger.EnsureUser(db, req.MemberID); err != nil {
		logs.Log.WithError(err).Error("ensure referral owner")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	code, err := referral.GenerateCode(req.MemberID)
	if err != nil {
		logs.Log.WithError(err).Error("generate referral code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	rec := models.Referral{
		ReferralCode: code,
		MemberID:     req.MemberID,
		ProjectID:    req.ProjectID,
		ClickCount:   0,
		Conversions:  0,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&rec).Error; err != nil {
		logs.Log.WithError(err).Error("store referral")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"referralLink": referral.BuildLink(baseURL, code),
		"referralCode": code,
		"memberId":     req.MemberID,
		"projectId":    req.ProjectID,
	})
}

func getReferralStats(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Referral code is required"})
		return
	}
	var rec models.Referral
	if err := store.GetDB().First(&rec, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Referral code not found"})
			return
		}
		logs.Log.WithError(err).Error("get referral stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"referralCode": rec.ReferralCode,
		"memberId":     rec.MemberID,
		"projectId":    rec.ProjectID,
		"clickCount":   rec.ClickCount,
		"conversions":  rec.Conversions,
		"isActive":     rec.IsActive,
		"createdAt":    rec.CreatedAt,
	})
}

func webhookTest(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logs.Log.WithError(err).Error("read webhook body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	headers, err := json.Marshal(c.Request.Header)
	if err != nil {
		logs.Log.WithError(err).Error("encode webhook headers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	now := time.Now().UTC()
	logs.Log.WithFields(logrus.Fields{
		"timestamp": now.Format(time.RFC3339),
		"headers":   string(headers),
		"payload":   string(body),
	}).Info("webhook test received")

	// Stored for later analysis; the response does not wait on it.
	entry := models.WebhookLog{
		ID:        uuid.New().String(),
		Headers:   string(headers),
		Payload:   string(body),
		Source:    "webhook-test",
		CreatedAt: now,
	}
	db := store.GetDB()
	go func() {
		if err := db.Create(&entry).Error; err != nil {
			logs.Log.WithError(err).Error("save webhook log")
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"message":         "Webhook received and logged successfully",
		"timestamp":       now.Format(time.RFC3339),
		"payloadReceived": true,
	})
}
