package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cardoza1991/Room-Reservation-App/internal/command"
	"github.com/cardoza1991/Room-Reservation-App/internal/model"
)

// BuildingResponse represents the API response for a single building.
type BuildingResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MaxFloor   int    `json:"maxFloor"`
	TotalRooms int64  `json:"totalRooms"`
}

// GetBuildings handles the GET /api/buildings request.
func GetBuildings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var buildings []model.Building
		if err := db.Find(&buildings).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve buildings"})
			return
		}

		// One aggregate pass over rooms instead of a query per building.
		type aggRow struct {
			BuildingID int64
			TotalRooms int64
			MaxFloor   int
		}
		var aggs []aggRow
		if err := db.
			Model(&model.Room{}).
			Select("building_id as building_id, COUNT(*) as total_rooms, COALESCE(MAX(floor), 0) as max_floor").
			Group("building_id").
			Scan(&aggs).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate rooms"})
			return
		}

		aggMap := make(map[int64]aggRow, len(aggs))
		for _, a := range aggs {
			aggMap[a.BuildingID] = a
		}

		responses := make([]BuildingResponse, 0, len(buildings))
		for _, b := range buildings {
			a := aggMap[b.ID]
			responses = append(responses, BuildingResponse{
				ID: b.ID, Name: b.Name,
				MaxFloor: a.MaxFloor, TotalRooms: a.TotalRooms,
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}

type postBuildingRequest struct {
	Name string `json:"name"`
}

// PostBuilding handles the POST /api/buildings request.
func (h *Handler) PostBuilding(c *gin.Context) {
	var req postBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cmd := &command.CreateBuilding{Name: req.Name}
	if err := cmd.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := cmd.Apply(c.Request.Context(), h.store); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.flushResponseCache()
	c.JSON(http.StatusCreated, cmd.Created)
}
