package handler

import (
	"net/http"

	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/payment"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	checkoutLogic *logic.CheckoutLogic
}

func NewCheckoutHandler(db *gorm.DB, processor payment.Processor) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutLogic: logic.NewCheckoutLogic(db, processor),
	}
}

// Checkout 发起购买
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req struct {
		CreationID uint   `json:"creation_id" binding:"required"`
		BuyerID    string `json:"buyer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.checkoutLogic.Checkout(c.Request.Context(), req.CreationID, req.BuyerID)
	if err != nil {
		switch err {
		case logic.ErrCreationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case logic.ErrCreationNotSellable:
			DeniedResponse(c, err.Error(), "作品需处于published状态才能售卖")
		case logic.ErrNoActivePayoutAccount:
			DeniedResponse(c, err.Error(), "请先完成收款账户开通和审核")
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect_url": result.RedirectURL,
		"breakdown": gin.H{
			"gross_amount":      result.GrossAmount,
			"builder_amount":    result.BuilderAmount,
			"network_amount":    result.NetworkAmount,
			"builder_share_pct": result.BuilderSharePct,
		},
		"payment_id": result.PaymentID,
	})
}
