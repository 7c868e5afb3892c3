package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lingo-backend/internal/http/response"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/services"
)

type ShopHandler struct {
	log  *logger.Logger
	shop services.ShopService
}

func NewShopHandler(log *logger.Logger, shop services.ShopService) *ShopHandler {
	return &ShopHandler{log: log.With("handler", "ShopHandler"), shop: shop}
}

// POST /api/shop/refill
func (h *ShopHandler) RefillHearts(c *gin.Context) {
	res, err := h.shop.RefillHearts(c.Request.Context(), ctxutil.UserID(c.Request.Context()))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"hearts": res.Hearts, "points": res.Points})
}
