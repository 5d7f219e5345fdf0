package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shareit-go/item-sharing-backend/internal/booking"
	bookingHttp "github.com/shareit-go/item-sharing-backend/internal/booking/http"
	"github.com/shareit-go/item-sharing-backend/internal/identity"
	"github.com/shareit-go/item-sharing-backend/internal/item"
	itemHttp "github.com/shareit-go/item-sharing-backend/internal/item/http"
	"github.com/shareit-go/item-sharing-backend/internal/itemrequest"
	requestHttp "github.com/shareit-go/item-sharing-backend/internal/itemrequest/http"
	"github.com/shareit-go/item-sharing-backend/internal/user"
	userHttp "github.com/shareit-go/item-sharing-backend/internal/user/http"
)

// Config holds the services and settings the router wires together.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	RequestService itemrequest.Service
	ItemService    item.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine: middleware assembly
// (logger, recovery, request id, CORS) and route registration for every
// module. Routes live at the root; the gateway owns the public prefix.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8080"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", identity.Header}
	r.Use(cors.New(corsConfig))

	sharerMiddleware := identity.Required()

	userHandler := userHttp.NewHandler(cfg.UserService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		requestHttp.RegisterRoutes(root, requestHandler, sharerMiddleware)
		itemHttp.RegisterRoutes(root, itemHandler, sharerMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, sharerMiddleware)
	}

	return r
}
