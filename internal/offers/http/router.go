package http

import "github.com/gin-gonic/gin"

// Register attaches offer routes under a /projects group. sendLimit guards
// the email endpoint; pass nil to leave it unthrottled.
func (h *Handler) Register(rg *gin.RouterGroup, sendLimit gin.HandlerFunc) {
	rg.GET("/:public_id/costs", h.costs)
	rg.GET("/:public_id/report", h.report)
	rg.GET("/:public_id/offers", h.history)

	send := []gin.HandlerFunc{h.sendEmail}
	if sendLimit != nil {
		send = append([]gin.HandlerFunc{sendLimit}, send...)
	}
	rg.POST("/:public_id/send-email", send...)
}
