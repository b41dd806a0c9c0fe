package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"chatroom-registry/internal/middleware"
	"chatroom-registry/internal/service"
)

// RoomHandler serves the room list page, creation, deletion and the
// per-room view. Every route here sits behind the auth gate.
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// List renders the rooms page scoped to the current user: owned rooms
// only, never the whole registry.
func (h *RoomHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	logCtx := logrus.WithField("user_id", user.ID)

	rooms, err := h.roomService.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Handler.ListRooms: failed to list rooms")
		HandleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "rooms.html", gin.H{
		"status":     true,
		"user_email": user.Email,
		"rooms":      rooms,
	})
}

// CreateRoomRequest carries the room name, accepted as a form post or JSON.
type CreateRoomRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

// Create persists a new room owned by the current user.
func (h *RoomHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	logCtx := logrus.WithField("user_id", user.ID)

	var req CreateRoomRequest
	if err := c.ShouldBind(&req); err != nil {
		logCtx.WithError(err).Warn("Handler.CreateRoom: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: name is required")
		return
	}
	logCtx = logCtx.WithField("room_name", req.Name)

	room, err := h.roomService.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.CreateRoom: failed to create room")
		HandleServiceError(c, err)
		return
	}

	logCtx.WithField("room_id", room.ID).Info("Handler.CreateRoom: room created successfully")
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Chat room '%s' created successfully", room.Name),
		"room_id": room.ID,
	})
}

// Delete removes a room. Only the owner may delete; whether a non-owner
// sees 404 or 403 depends on the configured delete error mode.
func (h *RoomHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}
	logCtx := logrus.WithField("user_id", user.ID)

	roomID, ok := roomIDParam(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}
	logCtx = logCtx.WithField("room_id", roomID)

	room, err := h.roomService.Delete(c.Request.Context(), user.ID, roomID)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.DeleteRoom: deletion refused")
		if errors.Is(err, service.ErrRoomNotFound) {
			ErrorResponse(c, http.StatusNotFound,
				"This room is not found or you don't have privileges to delete it")
			return
		}
		HandleServiceError(c, err)
		return
	}

	logCtx.Info("Handler.DeleteRoom: room deleted successfully")
	SuccessResponse(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Chat room '%s' deleted successfully", room.Name),
	})
}

// View renders a single room page. Any authenticated user may view any
// room by id; there is no ownership check on reads.
func (h *RoomHandler) View(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	roomID, ok := roomIDParam(c)
	if !ok {
		ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}

	room, err := h.roomService.Get(c.Request.Context(), roomID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Warn("Handler.ViewRoom: room lookup failed")
		HandleServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "room.html", gin.H{"room_name": room.Name})
}

// roomIDParam parses the :id path parameter. A non-numeric id is treated
// as a room that does not exist.
func roomIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
