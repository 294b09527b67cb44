package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/boxbox-club/boxbox-api/docs"
	v1 "github.com/boxbox-club/boxbox-api/internal/api/handler/v1"
	"github.com/boxbox-club/boxbox-api/internal/api/middleware"
	"github.com/boxbox-club/boxbox-api/internal/config"
	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/repository"
	"github.com/boxbox-club/boxbox-api/internal/repository/dao"
	"github.com/boxbox-club/boxbox-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := s.initUserService(db)
	authHandler := s.initAuthHandler(db)
	userHandler := v1.NewUserHandler(userSvc)
	raceHandler := s.initRaceHandler(db)
	predictionHandler := s.initPredictionHandler(db)
	leaderboardHandler := s.initLeaderboardHandler(db)
	driverHandler := s.initDriverHandler(db)
	s.MountHandlers(userSvc, authHandler, userHandler, raceHandler, predictionHandler, leaderboardHandler, driverHandler)

	return s
}

func (s *Server) pointsTable() domain.PointsTable {
	if s.Config.Game == nil {
		return domain.DefaultPointsTable()
	}

	p := s.Config.Game.Points

	return domain.PointsTable{
		First:          p.First,
		Second:         p.Second,
		Third:          p.Third,
		FastestLap:     p.FastestLap,
		DriverOfTheDay: p.DriverOfTheDay,
	}
}

func (s *Server) initUserService(db *gorm.DB) *service.UserService {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))

	return service.NewUserService(repo)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewAuthService(repo)

	return v1.NewAuthHandler(s.Config.API, svc)
}

func (s *Server) initRaceHandler(db *gorm.DB) *v1.RaceHandler {
	raceRepo := repository.NewRaceRepository(dao.NewRaceDAO(db))
	predictionRepo := repository.NewPredictionRepository(dao.NewPredictionDAO(db))
	driverRepo := repository.NewDriverRepository(dao.NewDriverDAO(db))
	svc := service.NewRaceService(raceRepo, predictionRepo, driverRepo, s.pointsTable())

	return v1.NewRaceHandler(svc)
}

func (s *Server) initPredictionHandler(db *gorm.DB) *v1.PredictionHandler {
	predictionRepo := repository.NewPredictionRepository(dao.NewPredictionDAO(db))
	raceRepo := repository.NewRaceRepository(dao.NewRaceDAO(db))
	driverRepo := repository.NewDriverRepository(dao.NewDriverDAO(db))

	lockBefore := service.DefaultLockBefore
	if s.Config.Game != nil && s.Config.Game.LockBeforeMinutes > 0 {
		lockBefore = time.Duration(s.Config.Game.LockBeforeMinutes) * time.Minute
	}
	svc := service.NewPredictionService(predictionRepo, raceRepo, driverRepo, lockBefore)

	return v1.NewPredictionHandler(svc)
}

func (s *Server) initLeaderboardHandler(db *gorm.DB) *v1.LeaderboardHandler {
	predictionRepo := repository.NewPredictionRepository(dao.NewPredictionDAO(db))
	raceRepo := repository.NewRaceRepository(dao.NewRaceDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	cacheRepo := repository.NewCacheRepository(dao.NewApiCacheDAO(db))

	cacheTTL := 0
	if s.Config.Game != nil {
		cacheTTL = s.Config.Game.LeaderboardCacheSeconds
	}
	svc := service.NewLeaderboardService(predictionRepo, raceRepo, userRepo, cacheRepo, cacheTTL)

	return v1.NewLeaderboardHandler(svc)
}

func (s *Server) initDriverHandler(db *gorm.DB) *v1.DriverHandler {
	repo := repository.NewDriverRepository(dao.NewDriverDAO(db))
	svc := service.NewDriverService(repo)

	return v1.NewDriverHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	raceHandler *v1.RaceHandler,
	predictionHandler *v1.PredictionHandler,
	leaderboardHandler *v1.LeaderboardHandler,
	driverHandler *v1.DriverHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/me", userHandler.HandleGetCurrentUser)
		authenticated.DELETE("/users/me", userHandler.HandleDeleteCurrentUser)
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.GET("/drivers", driverHandler.HandleListDrivers)
		authenticated.GET("/drivers/:code", driverHandler.HandleGetDriver)

		authenticated.GET("/seasons/:season/races", raceHandler.HandleListRaces)
		authenticated.GET("/seasons/:season/sprints", raceHandler.HandleListSprints)
		authenticated.GET("/seasons/:season/leaderboard", leaderboardHandler.HandleGetLeaderboard)
		authenticated.GET("/races/:raceID", raceHandler.HandleGetRace)

		authenticated.POST("/races/:raceID/prediction", predictionHandler.HandleSubmitPrediction)
		authenticated.PUT("/races/:raceID/prediction", predictionHandler.HandleRevisePrediction)
		authenticated.GET("/races/:raceID/prediction", predictionHandler.HandleGetPrediction)
		authenticated.POST("/sprints/:raceID/prediction", predictionHandler.HandleSubmitSprintPrediction)
		authenticated.PUT("/sprints/:raceID/prediction", predictionHandler.HandleReviseSprintPrediction)
		authenticated.GET("/sprints/:raceID/prediction", predictionHandler.HandleGetSprintPrediction)
	}

	admin := s.Router.Group(basePath,
		middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT(),
		middleware.RequireAdmin(userSvc),
	)
	{
		admin.POST("/races", raceHandler.HandleCreateRace)
		admin.DELETE("/races/:raceID", raceHandler.HandleDeleteRace)
		admin.PUT("/races/:raceID/results", raceHandler.HandleSubmitResults)
		admin.POST("/sprints", raceHandler.HandleCreateSprint)
		admin.PUT("/sprints/:raceID/results", raceHandler.HandleSubmitSprintResults)
		admin.POST("/drivers", driverHandler.HandleCreateDriver)
		admin.POST("/constructors", driverHandler.HandleCreateConstructor)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "boxbox API"
	docs.SwaggerInfo.Description = "REST API for the boxbox F1 race-prediction game."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
