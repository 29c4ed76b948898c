package controllers

import (
	"net/http"

	"github.com/Manakin-Wraith/Cheap-Cheap/services"
	"github.com/gin-gonic/gin"
)

// PromotionController handles HTTP requests for the promotions dataset.
type PromotionController struct {
	promotionService services.PromotionService
}

// NewPromotionController creates a new PromotionController.
func NewPromotionController(promotionService services.PromotionService) *PromotionController {
	return &PromotionController{promotionService: promotionService}
}

// GetPromotions handles GET /api/promotions.
func (pc *PromotionController) GetPromotions(ctx *gin.Context) {
	data, svcErr := pc.promotionService.GetPromotions(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message, "kind": svcErr.Kind.String()})
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
