package handler

import (
	"net/http"

	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PayoutHandler struct {
	payoutLogic *logic.PayoutLogic
}

func NewPayoutHandler(db *gorm.DB, processor payment.Processor) *PayoutHandler {
	return &PayoutHandler{
		payoutLogic: logic.NewPayoutLogic(db, processor),
	}
}

// ProvisionPayoutAccount 开通收款账户
func (h *PayoutHandler) ProvisionPayoutAccount(c *gin.Context) {
	var req struct {
		FoundationID uint   `json:"foundation_id" binding:"required"`
		Email        string `json:"email" binding:"required"`
		Country      string `json:"country" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.payoutLogic.Provision(c.Request.Context(), req.FoundationID, req.Email, req.Country)
	if err != nil {
		switch err {
		case logic.ErrFoundationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case logic.ErrPayoutAccountExists:
			DeniedResponse(c, err.Error(), "当前账户已可正常收款，无需重复开通")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "收款账户创建成功，请完成onboarding",
		"account": result,
	})
}
