package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FoundationHandler struct {
	foundationLogic *logic.FoundationLogic
}

func NewFoundationHandler(db *gorm.DB) *FoundationHandler {
	return &FoundationHandler{
		foundationLogic: logic.NewFoundationLogic(db),
	}
}

// CreateFoundation 注册建造者账户
func (h *FoundationHandler) CreateFoundation(c *gin.Context) {
	var foundation model.Foundation
	if err := c.ShouldBindJSON(&foundation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.foundationLogic.Create(&foundation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "账户创建成功",
		"foundation": foundation,
	})
}

// GetFoundation 获取建造者账户
func (h *FoundationHandler) GetFoundation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的账户ID"})
		return
	}

	foundation, err := h.foundationLogic.GetFoundation(uint(id))
	if err != nil {
		if err == logic.ErrFoundationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"foundation": foundation})
}
