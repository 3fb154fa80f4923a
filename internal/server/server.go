package server

import (
	"log"

	"github.com/sevora/ramble/internal/account"
	"github.com/sevora/ramble/internal/auth"
	"github.com/sevora/ramble/internal/config"
	"github.com/sevora/ramble/internal/follower"
	"github.com/sevora/ramble/internal/post"
	"github.com/sevora/ramble/internal/search"
	"github.com/sevora/ramble/internal/storage"
	"github.com/sevora/ramble/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Storage *storage.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowMethods:     "GET,POST",
		AllowCredentials: true,
	}))

	s3Client, err := storage.New(cfg)
	if err != nil {
		log.Printf("object storage unavailable: %v", err)
	}

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Storage: s3Client,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authMiddleware := auth.CookieAuth(s.Cfg.JWTSecret)
	cookies := auth.CookieSettings{Secure: s.Cfg.CookieSecure}
	accounts := account.NewService(s.DB)

	accountGroup := s.App.Group("/account")
	auth.RegisterRoutes(accountGroup, auth.NewService(s.Cfg.JWTSecret, s.DB), cookies, authMiddleware)
	account.RegisterRoutes(accountGroup, accounts, authMiddleware)

	post.RegisterRoutes(s.App.Group("/post"), post.NewService(s.DB, s.Stream), authMiddleware)
	follower.RegisterRoutes(s.App.Group("/follower"), follower.NewService(s.DB), authMiddleware)
	search.RegisterRoutes(s.App.Group("/search"), search.NewService(s.DB), authMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"), s.Storage, accounts, authMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
