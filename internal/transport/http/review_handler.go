package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewSvc
}

func NewReviewHandler(svc *service.ReviewSvc) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// POST /v1/hotels/:id/reviews: completed guests only.
func (h *ReviewHandler) Create(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	actorID, _ := actor(c)
	rv, err := h.svc.Create(c.Request.Context(), hotelID, actorID, in.Rating, in.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// GET /v1/hotels/:id/reviews
func (h *ReviewHandler) ListByHotel(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.ListByHotel(c.Request.Context(), hotelID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
