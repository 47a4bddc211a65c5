package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gigbud/internal/cache"
	"gigbud/internal/models"
	"gigbud/internal/repository"
	"gigbud/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	searchResultLimit = 10
	searchCacheTTL    = 5 * time.Minute
)

type LocationController struct {
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	taskService  *services.TaskService
	queryCache   *cache.QueryCache
}

func NewLocationController(
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
	taskService *services.TaskService,
	queryCache *cache.QueryCache,
) *LocationController {
	return &LocationController{
		locationRepo: locationRepo,
		userRepo:     userRepo,
		taskService:  taskService,
		queryCache:   queryCache,
	}
}

// NearbyTasks godoc
// @Summary Find tasks near a point
// @Tags locations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number true "Radius in kilometers"
// @Success 200 {object} map[string]interface{} "Nearby tasks"
// @Router /api/locations/tasks/nearby [get]
func (lc *LocationController) NearbyTasks(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	radius, radiusErr := strconv.ParseFloat(c.Query("radius"), 64)
	if latErr != nil || lngErr != nil || radiusErr != nil {
		respondError(c, services.NewValidationError([]string{"lat, lng and radius must be valid numbers"}))
		return
	}

	tasks, err := lc.taskService.NearbyTasks(c.Request.Context(), lat, lng, radius)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Nearby tasks retrieved successfully", tasks)
}

// UpdateLocation sets the caller's coordinates.
func (lc *LocationController) UpdateLocation(c *gin.Context) {
	var req struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := lc.userRepo.UpdateLocation(callerID(c), *req.Latitude, *req.Longitude); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Location updated successfully", nil)
}

// Search does a case-insensitive prefix match over the reference table,
// capped at ten results, with a cache in front.
func (lc *LocationController) Search(c *gin.Context) {
	prefix := strings.TrimSpace(c.Query("q"))
	if prefix == "" {
		respondOK(c, http.StatusOK, "Locations retrieved successfully", []models.Location{})
		return
	}

	key := cache.SearchKey(strings.ToLower(prefix))
	if lc.queryCache != nil {
		var cached []models.Location
		if hit, err := lc.queryCache.Get(c.Request.Context(), key, &cached); err == nil && hit {
			respondOK(c, http.StatusOK, "Locations retrieved successfully", cached)
			return
		}
	}

	locations, err := lc.locationRepo.SearchByPrefix(prefix, searchResultLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	if lc.queryCache != nil {
		if err := lc.queryCache.Set(c.Request.Context(), key, locations, searchCacheTTL); err != nil {
			log.Printf("Failed to cache location search: %v", err)
		}
	}
	respondOK(c, http.StatusOK, "Locations retrieved successfully", locations)
}
