package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
)

type PaymentHandler struct {
	svc     *service.PaymentSvc
	catalog *service.CatalogSvc
}

func NewPaymentHandler(svc *service.PaymentSvc, catalog *service.CatalogSvc) *PaymentHandler {
	return &PaymentHandler{svc: svc, catalog: catalog}
}

// POST /v1/bookings/:id/payments: guest registers a payment for their own
// booking; the amount is computed server-side.
func (h *PaymentHandler) Register(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	actorID, _ := actor(c)
	p, err := h.svc.Register(c.Request.Context(), bookingID, actorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /v1/payments/:id/status?status=COMPLETED|FAILED, hotel owner only.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	paymentID, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := domain.ParsePaymentStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	actorID, actorRole := actor(c)
	p, err := h.svc.UpdateStatus(c.Request.Context(), paymentID, status, actorID, actorRole)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /v1/payments: the caller's payments.
func (h *PaymentHandler) ListMine(c *gin.Context) {
	actorID, _ := actor(c)
	out, err := h.svc.ListByUser(c.Request.Context(), actorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /v1/hotels/:id/payments: owner view.
func (h *PaymentHandler) ListByHotel(c *gin.Context) {
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
