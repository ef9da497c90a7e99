package di

import (
	"context"
	"fmt"

	"hh-server/api"
	"hh-server/api/geocoding"
	"hh-server/api/sheets"
	"hh-server/config"
	"hh-server/dao/redis"
	"hh-server/db"
	"hh-server/filter"
	"hh-server/server"
	"hh-server/server/handlers"
	services "hh-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	Config                config.Config
	RedisClient           db.RedisClient
	RedisPinDao           *redis.RedisPinDAO
	RecordSource          sheets.RecordSource
	Geocoder              geocoding.Geocoder
	DealService           *services.DealService
	MapService            *services.MapService
	DealHandler           *handlers.DealHandler
	MuxRouter             *mux.Router
	Router                *server.Router
	HappyHourHttpServer   *server.HappyHourHttpServer
	DealsRefresherService *services.DealsRefresherService
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// redis client and the geocoder are in-memory mocks.
func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("Initializing container", zap.String("env", cfg.Env))
	ctx := context.Background()

	var redisClient db.RedisClient
	if cfg.IsProd() {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		geoRedisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		redisClient = geoRedisClient
	} else {
		logger.Info("Using mock redis client")
		redisClient = db.NewMockRedisClient(ctx)
	}
	redisPinDao := redis.NewRedisPinDAO(redisClient)

	recordSource := NewRecordSource(cfg, logger)

	var geocoder geocoding.Geocoder
	if cfg.IsProd() && cfg.GoogleMapsAPIKey != "" {
		logger.Info("Using google geocoding api")
		geocoder = geocoding.NewGoogleGeocodingClient(api.NewHTTPClient(cfg.GeocodingEndpoint), cfg.GoogleMapsAPIKey)
	} else {
		logger.Info("Using mock geocoder")
		geocoder = geocoding.NewGeocoderMock()
	}

	dealService := services.NewDealService(
		recordSource,
		cfg.SheetCSVURL,
		filter.NewState(cfg.AutoHappeningNow),
		cfg.Location(),
		nil,
		logger,
	)
	mapService := services.NewMapService(redisPinDao, geocoder, dealService, cfg.GeocodeConcurrency, logger)
	dealService.AttachMapSink(mapService)

	dealHandler := handlers.NewDealHandler(dealService, mapService, logger)
	muxRouter := mux.NewRouter()
	router := server.NewRouter(dealHandler, muxRouter)
	httpServer := server.NewHappyHourHttpServer(router, muxRouter, cfg.Addr, logger)

	dealsRefresherService := services.NewDealsRefresherService(dealService, logger)

	return &Container{
		Config:                cfg,
		RedisClient:           redisClient,
		RedisPinDao:           redisPinDao,
		RecordSource:          recordSource,
		Geocoder:              geocoder,
		DealService:           dealService,
		MapService:            mapService,
		DealHandler:           dealHandler,
		MuxRouter:             muxRouter,
		Router:                router,
		HappyHourHttpServer:   httpServer,
		DealsRefresherService: dealsRefresherService,
	}, nil
}

// NewRecordSource picks the sheet source: the published CSV when a url is
// configured, the bundled fixture otherwise.
func NewRecordSource(cfg config.Config, logger *zap.Logger) sheets.RecordSource {
	if cfg.SheetCSVURL == "" {
		path := config.GetResourcePath(config.DEALS_CSV_RESOURCE)
		logger.Info("No sheet url configured, using bundled deals", zap.String("path", path))
		return sheets.NewCSVRecordSourceMock(path)
	}
	return sheets.NewCSVRecordSource(api.NewHTTPClient(""))
}
