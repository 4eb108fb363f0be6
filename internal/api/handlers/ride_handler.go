package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"themepark/internal/domain/entities"
	"themepark/internal/services"
)

type RideHandler struct {
	rideService *services.RideService
}

func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

type CreateRideRequest struct {
	Name       string `json:"name"`
	MaxRider   int    `json:"max_rider"`
	OperatorID string `json:"operator_id"`
}

type UpdateRideRequest struct {
	Name     *string `json:"name"`
	MaxRider *int    `json:"max_rider"`
}

type AssignOperatorRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// VisitorRequest is the body of every endpoint that takes a visitor. Tickets
// and membership level are optional and take the visitor defaults.
type VisitorRequest struct {
	Name            string `json:"name" binding:"required"`
	Age             *int   `json:"age" binding:"required"`
	ID              string `json:"id" binding:"required"`
	MembershipLevel string `json:"membership_level"`
	Tickets         *int   `json:"tickets"`
}

func (r VisitorRequest) toVisitor() (*entities.Visitor, error) {
	tickets := entities.DefaultTickets
	if r.Tickets != nil {
		tickets = *r.Tickets
	}
	return entities.NewVisitor(r.Name, *r.Age, r.ID, r.MembershipLevel, tickets)
}

type FileRequest struct {
	Path string `json:"path" binding:"required"`
}

// QueueEntry is one visitor in a listing, numbered from 1.
type QueueEntry struct {
	Position int               `json:"position"`
	Visitor  *entities.Visitor `json:"visitor"`
}

func numbered(visitors []*entities.Visitor) []QueueEntry {
	entries := make([]QueueEntry, len(visitors))
	for i, v := range visitors {
		entries[i] = QueueEntry{Position: i + 1, Visitor: v}
	}
	return entries
}

// bindVisitor decodes a VisitorRequest and builds the visitor, writing a 400
// and returning false on failure.
func bindVisitor(c *gin.Context) (*entities.Visitor, bool) {
	var req VisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, false
	}
	v, err := req.toVisitor()
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return v, true
}

// CreateRide handles POST /rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), services.CreateRideRequest{
		Name:       req.Name,
		MaxRider:   req.MaxRider,
		OperatorID: req.OperatorID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ride)
}

// ListRides handles GET /rides
func (h *RideHandler) ListRides(c *gin.Context) {
	rides, err := h.rideService.ListRides(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rides": rides, "count": len(rides)})
}

// GetRide handles GET /rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}

// UpdateRide handles PATCH /rides/:id
func (h *RideHandler) UpdateRide(c *gin.Context) {
	var req UpdateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ride, err := h.rideService.UpdateRide(c.Request.Context(), c.Param("id"), services.UpdateRideRequest{
		Name:     req.Name,
		MaxRider: req.MaxRider,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}

// AssignOperator handles PUT /rides/:id/operator
func (h *RideHandler) AssignOperator(c *gin.Context) {
	var req AssignOperatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ride, err := h.rideService.AssignOperator(c.Request.Context(), c.Param("id"), req.EmployeeID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}

// UnassignOperator handles DELETE /rides/:id/operator
func (h *RideHandler) UnassignOperator(c *gin.Context) {
	ride, err := h.rideService.UnassignOperator(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ride)
}

// Enqueue handles POST /rides/:id/queue
func (h *RideHandler) Enqueue(c *gin.Context) {
	v, ok := bindVisitor(c)
	if !ok {
		return
	}

	size, err := h.rideService.Enqueue(c.Request.Context(), c.Param("id"), v)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ride_id":    c.Param("id"),
		"visitor":    v,
		"queue_size": size,
	})
}

// Dequeue handles DELETE /rides/:id/queue/head
func (h *RideHandler) Dequeue(c *gin.Context) {
	v, err := h.rideService.Dequeue(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ride_id": c.Param("id"), "removed": v})
}

// GetQueue handles GET /rides/:id/queue
func (h *RideHandler) GetQueue(c *gin.Context) {
	queue, err := h.rideService.Queue(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ride_id": c.Param("id"),
		"queue":   numbered(queue),
		"size":    len(queue),
	})
}

// ClearQueue handles DELETE /rides/:id/queue
func (h *RideHandler) ClearQueue(c *gin.Context) {
	removed, err := h.rideService.ClearQueue(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ride_id": c.Param("id"), "removed": removed})
}

// AddToHistory handles POST /rides/:id/history
func (h *RideHandler) AddToHistory(c *gin.Context) {
	v, ok := bindVisitor(c)
	if !ok {
		return
	}

	size, err := h.rideService.AddToHistory(c.Request.Context(), c.Param("id"), v)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ride_id":      c.Param("id"),
		"visitor":      v,
		"history_size": size,
	})
}

// GetHistory handles GET /rides/:id/history
func (h *RideHandler) GetHistory(c *gin.Context) {
	visitors, err := h.rideService.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ride_id": c.Param("id"),
		"history": numbered(visitors),
		"size":    len(visitors),
	})
}

// HistoryContains handles POST /rides/:id/history/contains
func (h *RideHandler) HistoryContains(c *gin.Context) {
	v, ok := bindVisitor(c)
	if !ok {
		return
	}

	found, err := h.rideService.HistoryContains(c.Request.Context(), c.Param("id"), v)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ride_id": c.Param("id"), "visitor_id": v.ID(), "found": found})
}

// SortHistory handles POST /rides/:id/history/sort
func (h *RideHandler) SortHistory(c *gin.Context) {
	visitors, err := h.rideService.SortHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ride_id": c.Param("id"),
		"history": numbered(visitors),
		"size":    len(visitors),
	})
}

// ClearHistory handles DELETE /rides/:id/history
func (h *RideHandler) ClearHistory(c *gin.Context) {
	if err := h.rideService.ClearHistory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RunCycle handles POST /rides/:id/cycle
func (h *RideHandler) RunCycle(c *gin.Context) {
	result, err := h.rideService.RunCycle(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportHistory handles POST /rides/:id/history/export
func (h *RideHandler) ExportHistory(c *gin.Context) {
	var req FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.rideService.ExportHistory(c.Request.Context(), c.Param("id"), req.Path)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportHistory handles POST /rides/:id/history/import
func (h *RideHandler) ImportHistory(c *gin.Context) {
	var req FileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	report, err := h.rideService.ImportHistory(c.Request.Context(), c.Param("id"), req.Path)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
