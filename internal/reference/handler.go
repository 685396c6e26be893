package reference

import (
	"github.com/gin-gonic/gin"

	"pixweight-backend/internal/shared/server/respond"
)

// Handler exposes the reference tables read-only.
type Handler struct {
	Store Store
}

// NewHandler constructs a Handler.
func NewHandler(store Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches reference routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ref := rg.Group("/reference")
	ref.GET("/foods", h.foods)
	ref.GET("/carriers", h.carriers)
	ref.GET("/breeds", h.breeds)
	ref.GET("/bmi-categories", h.bmiCategories)
}

func (h *Handler) foods(c *gin.Context) {
	rows, err := h.Store.Foods(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to load foods")
		return
	}
	respond.OK(c, gin.H{"foods": nonNil(rows)})
}

func (h *Handler) carriers(c *gin.Context) {
	rows, err := h.Store.Carriers(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to load carriers")
		return
	}
	respond.OK(c, gin.H{"carriers": nonNil(rows)})
}

func (h *Handler) breeds(c *gin.Context) {
	rows, err := h.Store.Breeds(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to load breeds")
		return
	}
	if species := c.Query("species"); species != "" {
		rows = BreedsForSpecies(rows, species)
	}
	respond.OK(c, gin.H{"breeds": nonNil(rows)})
}

func (h *Handler) bmiCategories(c *gin.Context) {
	rows, err := h.Store.BMICategories(c.Request.Context())
	if err != nil {
		respond.Internal(c, "failed to load bmi categories")
		return
	}
	respond.OK(c, gin.H{"bmi_categories": nonNil(rows)})
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
