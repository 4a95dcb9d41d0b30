package api

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/yizeng/gab/gin/gorm/raffle/docs"
	v1 "github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/middleware"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/config"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/repository/dao"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/service"
)

const basePath = "/api"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

type handlers struct {
	auth   *v1.AuthHandler
	gift   *v1.GiftHandler
	cart   *v1.CartHandler
	report *v1.ReportHandler
	live   *v1.LiveHandler
}

// NewServer wires the handlers. The live feed hub runs until ctx is done.
func NewServer(ctx context.Context, conf *config.AppConfig, db *gorm.DB, notifier service.Notifier) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	h := s.initHandlers(db, notifier)
	go h.live.Run(ctx)
	s.MountHandlers(h)

	return s
}

func (s *Server) initHandlers(db *gorm.DB, notifier service.Notifier) handlers {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	cartRepo := repository.NewCartRepository(dao.NewCartDAO(db))
	reportRepo := repository.NewReportRepository(dao.NewReportDAO(db))

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo, s.Config.API.ManagerEmails)
	catalogSvc := service.NewCatalogService(catalogRepo, cartRepo)
	cartSvc := service.NewCartService(cartRepo, catalogRepo, s.Config.Raffle.MaxLineQuantity)
	reportSvc := service.NewReportService(reportRepo, cartRepo, catalogRepo)

	live := v1.NewLiveHandler(userSvc, s.Config.API.AllowedCORSDomains)
	drawSvc := service.NewDrawService(catalogRepo, cartRepo, notifier, live)

	return handlers{
		auth:   v1.NewAuthHandler(s.Config.API, authSvc),
		gift:   v1.NewGiftHandler(catalogSvc, drawSvc),
		cart:   v1.NewCartHandler(cartSvc, userSvc),
		report: v1.NewReportHandler(reportSvc),
		live:   live,
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/Auth/register", h.auth.HandleRegister)
		public.POST("/Auth/login", h.auth.HandleLogin)
		public.GET("/Auth/check-email", h.auth.HandleCheckEmail)
		public.GET("/Auth/check-name", h.auth.HandleCheckName)

		public.GET("/Gift", h.gift.HandleListGifts)
		public.GET("/Gift/search", h.gift.HandleSearchGifts)
		public.GET("/Gift/:id", h.gift.HandleGetGift)
		public.GET("/Category", h.gift.HandleListCategories)
	}

	users := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleUser, domain.RoleManager))
	{
		users.GET("/Cart", h.cart.HandleGetCart)
		users.POST("/Cart", h.cart.HandleAddToCart)
		users.PUT("/Cart/:id", h.cart.HandleUpdateQuantity)
		users.DELETE("/Cart/:id", h.cart.HandleRemoveFromCart)
		users.POST("/Cart/purchase", h.cart.HandlePurchase)
		users.DELETE("/Cart/clear", h.cart.HandleClearCart)
	}

	managers := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireRole(domain.RoleManager))
	{
		managers.GET("/Gift/manager/search", h.gift.HandleManagerSearchGifts)
		managers.POST("/Gift", h.gift.HandleCreateGift)
		managers.POST("/Gift/:id/draw", h.gift.HandleDrawWinner)
		managers.POST("/Donor", h.gift.HandleCreateDonor)
		managers.GET("/Donor", h.gift.HandleListDonors)
		managers.GET("/Donor/search", h.gift.HandleSearchDonors)
		managers.GET("/Donor/:id", h.gift.HandleGetDonor)
		managers.POST("/Category", h.gift.HandleCreateCategory)

		managers.GET("/Cart/admin/purchasers", h.report.HandleListPurchasers)
		managers.GET("/Cart/admin/purchaser/:userId", h.report.HandleGetPurchaser)
		managers.GET("/Cart/admin/top-gift", h.report.HandleTopGift)
		managers.GET("/Cart/purchases/:giftId", h.cart.HandleGetPurchasesByGift)

		managers.GET("/Reports/winners", h.report.HandleWinners)
		managers.GET("/Reports/revenue-summary", h.report.HandleRevenueSummary)
		managers.GET("/Reports/live", h.live.HandleWebSocket)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Raffle API"
	docs.SwaggerInfo.Description = "Gifts, ticket carts, winner draws and reports."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
