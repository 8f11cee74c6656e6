package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
)

type BookingHandler struct {
	svc     *service.BookingSvc
	catalog *service.CatalogSvc
}

func NewBookingHandler(svc *service.BookingSvc, catalog *service.CatalogSvc) *BookingHandler {
	return &BookingHandler{svc: svc, catalog: catalog}
}

// POST /v1/bookings
func (h *BookingHandler) Reserve(c *gin.Context) {
	var in struct {
		HotelID  uint   `json:"hotel_id" binding:"required"`
		RoomID   uint   `json:"room_id" binding:"required"`
		CheckIn  string `json:"check_in" binding:"required"`
		CheckOut string `json:"check_out" binding:"required"`
		Guests   int    `json:"guests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	checkIn, err := parseStayTime(in.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseStayTime(in.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	actorID, _ := actor(c)
	b, err := h.svc.Reserve(c.Request.Context(), service.ReserveInput{
		HotelID:  in.HotelID,
		RoomID:   in.RoomID,
		UserID:   actorID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   in.Guests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings: the caller's own bookings, swept first.
func (h *BookingHandler) ListMine(c *gin.Context) {
	actorID, _ := actor(c)
	out, err := h.svc.ListByUser(c.Request.Context(), actorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/hotels/:id/bookings: owner of the hotel only.
func (h *BookingHandler) ListByHotel(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.catalog.Hotel(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, err)
		return
	}
	actorID, _ := actor(c)
	if hotel.OwnerID != actorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the hotel owner"})
		return
	}
	out, err := h.svc.ListByHotel(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /v1/bookings/:id/status
func (h *BookingHandler) Transition(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	target, err := domain.ParseBookingStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	actorID, actorRole := actor(c)
	b, err := h.svc.Transition(c.Request.Context(), bookingID, target, actorID, actorRole)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /v1/rooms/:id/availability?check_in=...&check_out=...
func (h *BookingHandler) Availability(c *gin.Context) {
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	checkIn, err := parseStayTime(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseStayTime(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	available, err := h.svc.IsAvailable(c.Request.Context(), roomID, checkIn, checkOut)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "available": available})
}

// parseStayTime accepts RFC3339 timestamps or plain dates.
func parseStayTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
