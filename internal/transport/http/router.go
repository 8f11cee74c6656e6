package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/internal/service"
)

type Services struct {
	Auth     *service.AuthSvc
	Catalog  *service.CatalogSvc
	Bookings *service.BookingSvc
	Payments *service.PaymentSvc
	Reviews  *service.ReviewSvc
}

func NewRouter(svcs Services, corsOrigin string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	ah := NewAuthHandler(svcs.Auth)
	ch := NewCatalogHandler(svcs.Catalog)
	bh := NewBookingHandler(svcs.Bookings, svcs.Catalog)
	ph := NewPaymentHandler(svcs.Payments, svcs.Catalog)
	rh := NewReviewHandler(svcs.Reviews)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		v1.GET("/hotels", ch.ListHotels)
		v1.GET("/hotels/:id", ch.GetHotel)
		v1.GET("/hotels/:id/rooms", ch.ListRooms)
		v1.GET("/hotels/:id/reviews", rh.ListByHotel)
		v1.GET("/rooms/:id/availability", bh.Availability)

		secured := v1.Group("")
		secured.Use(JWTAuth())
		{
			secured.POST("/bookings", bh.Reserve)
			secured.GET("/bookings", bh.ListMine)
			secured.PUT("/bookings/:id/status", bh.Transition)

			secured.POST("/bookings/:id/payments", ph.Register)
			secured.GET("/payments", ph.ListMine)

			secured.POST("/hotels/:id/reviews", rh.Create)

			owner := secured.Group("")
			owner.Use(RequireRole(string(domain.RoleOwner)))
			{
				owner.POST("/hotels", ch.CreateHotel)
				owner.POST("/hotels/:id/rooms", ch.CreateRoom)
				owner.GET("/hotels/:id/bookings", bh.ListByHotel)
				owner.GET("/hotels/:id/payments", ph.ListByHotel)
				owner.PUT("/payments/:id/status", ph.UpdateStatus)
			}
		}
	}
	return r
}
