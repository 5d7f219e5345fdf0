package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-go/item-sharing-backend/internal/api"
	"github.com/shareit-go/item-sharing-backend/internal/booking"
	"github.com/shareit-go/item-sharing-backend/internal/item"
	"github.com/shareit-go/item-sharing-backend/internal/itemrequest"
	"github.com/shareit-go/item-sharing-backend/internal/pkg/clock"
	"github.com/shareit-go/item-sharing-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Clock        clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking repository first: the item module consumes it through the
	// lookup port.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	commentRepo := item.NewPgxCommentRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, commentRepo, userService, booking.NewItemLookup(bookingRepo), clk)

	// Item request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, itemRepo, clk)

	// Booking module
	bookingService := booking.NewService(bookingRepo, userService, itemService, clk)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		RequestService: requestService,
		ItemService:    itemService,
		BookingService: bookingService,
	})

	return &Container{Router: router}
}
