package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WheelShare-Rentals/service-rental/internal/application"
	"github.com/WheelShare-Rentals/service-rental/pkg/auth"
	"github.com/WheelShare-Rentals/service-rental/pkg/middleware"
	"github.com/WheelShare-Rentals/service-rental/pkg/response"
)

// CarHandler handles HTTP requests for car listing operations.
type CarHandler struct {
	service *application.CarService
}

// NewCarHandler creates a CarHandler.
func NewCarHandler(service *application.CarService) *CarHandler {
	return &CarHandler{service: service}
}

// RegisterRoutes registers all car routes on the given router group.
func (h *CarHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	cars := r.Group("/api/v1/cars")
	cars.Use(authMW)
	{
		cars.POST("", h.CreateCar)
		cars.GET("", h.ListMyCars)
		cars.GET("/:id", h.GetCar)
		cars.PUT("/:id", h.UpdateCar)
		cars.DELETE("/:id", h.DelistCar)
	}
}

// CreateCar handles POST /api/v1/cars.
func (h *CarHandler) CreateCar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateCar(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMyCars handles GET /api/v1/cars. Returns the caller's own listings.
func (h *CarHandler) ListMyCars(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetMyCars(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetCar handles GET /api/v1/cars/:id.
func (h *CarHandler) GetCar(c *gin.Context) {
	carID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid car ID")
		return
	}

	result, err := h.service.GetCar(c.Request.Context(), carID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateCar handles PUT /api/v1/cars/:id.
func (h *CarHandler) UpdateCar(c *gin.Context) {
	carID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid car ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateCar(c.Request.Context(), userID, carID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DelistCar handles DELETE /api/v1/cars/:id. The listing is delisted,
// not removed; pending bookings get canceled asynchronously.
func (h *CarHandler) DelistCar(c *gin.Context) {
	carID, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "invalid car ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.DelistCar(c.Request.Context(), userID, carID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
