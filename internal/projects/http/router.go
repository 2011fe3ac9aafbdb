package http

import "github.com/gin-gonic/gin"

// Register attaches project, time entry, material and worker type routes
// to the versioned API group.
func (h *Handler) Register(api *gin.RouterGroup) {
	p := api.Group("/projects")
	p.POST("", h.create)
	p.GET("", h.list)
	p.GET("/:public_id", h.get)
	p.PATCH("/:public_id", h.update)
	p.PUT("/:public_id", h.update)
	p.DELETE("/:public_id", h.delete)

	p.GET("/:public_id/time-entries", h.listTimeEntries)
	p.POST("/:public_id/time-entries", h.addTimeEntry)
	p.GET("/:public_id/materials", h.listMaterials)
	p.POST("/:public_id/materials", h.addMaterial)

	te := api.Group("/time-entries")
	te.PATCH("/:id", h.updateTimeEntry)
	te.DELETE("/:id", h.deleteTimeEntry)

	m := api.Group("/materials")
	m.PATCH("/:id", h.updateMaterial)
	m.DELETE("/:id", h.deleteMaterial)

	wt := api.Group("/worker-types")
	wt.POST("", h.createWorkerType)
	wt.GET("", h.listWorkerTypes)
	wt.GET("/:id", h.getWorkerType)
	wt.PATCH("/:id", h.updateWorkerType)
	wt.DELETE("/:id", h.deleteWorkerType)
}
