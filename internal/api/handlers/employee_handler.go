package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"themepark/internal/services"
)

type EmployeeHandler struct {
	rideService *services.RideService
}

func NewEmployeeHandler(rideService *services.RideService) *EmployeeHandler {
	return &EmployeeHandler{rideService: rideService}
}

type RegisterEmployeeRequest struct {
	Name       string `json:"name" binding:"required"`
	Age        *int   `json:"age" binding:"required"`
	Position   string `json:"position"`
	EmployeeID string `json:"employee_id"`
}

// Register handles POST /employees
func (h *EmployeeHandler) Register(c *gin.Context) {
	var req RegisterEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	employee, err := h.rideService.RegisterEmployee(c.Request.Context(), services.RegisterEmployeeRequest{
		Name:       req.Name,
		Age:        *req.Age,
		Position:   req.Position,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// GetEmployee handles GET /employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employee, err := h.rideService.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// ListEmployees handles GET /employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.rideService.ListEmployees(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees, "count": len(employees)})
}
