package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
)

type CatalogHandler struct {
	svc *service.CatalogSvc
}

func NewCatalogHandler(svc *service.CatalogSvc) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// POST /v1/hotels (OWNER)
func (h *CatalogHandler) CreateHotel(c *gin.Context) {
	var in struct {
		Name        string `json:"name" binding:"required"`
		Location    string `json:"location"`
		Description string `json:"description"`
		Amenities   string `json:"amenities"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	actorID, _ := actor(c)
	hotel, err := h.svc.CreateHotel(c.Request.Context(), &domain.Hotel{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Amenities:   in.Amenities,
	}, actorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

// GET /v1/hotels
func (h *CatalogHandler) ListHotels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	out, err := h.svc.ListHotels(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/hotels/:id
func (h *CatalogHandler) GetHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.svc.Hotel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

// POST /v1/hotels/:id/rooms (OWNER of the hotel)
func (h *CatalogHandler) CreateRoom(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in struct {
		RoomType    string `json:"room_type" binding:"required"`
		Description string `json:"description"`
		PriceCents  int64  `json:"price_cents" binding:"required"`
		MaxGuests   int    `json:"max_guests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	actorID, _ := actor(c)
	room, err := h.svc.CreateRoom(c.Request.Context(), &domain.Room{
		HotelID:     hotelID,
		RoomType:    in.RoomType,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		MaxGuests:   in.MaxGuests,
	}, actorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GET /v1/hotels/:id/rooms
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.RoomsByHotel(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
