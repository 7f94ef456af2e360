package config

import (
	http "github.com/ferdian3456/clubconnect/internal/delivery/http"
	"github.com/ferdian3456/clubconnect/internal/delivery/http/middleware"
	"github.com/ferdian3456/clubconnect/internal/delivery/http/route"
	"github.com/ferdian3456/clubconnect/internal/repository"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/minio/minio-go/v7"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	MinIO   *minio.Client
}

// Server wires repositories, usecases and controllers and registers the
// routes. It returns the user usecase so the caller can bootstrap the admin.
func Server(config *ServerConfig) *usecase.UserUsecase {
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	clubRepository := repository.NewClubRepository(config.Log, config.DB, config.DBCache)
	membershipRepository := repository.NewMembershipRepository(config.Log, config.DB)
	eventRepository := repository.NewEventRepository(config.Log, config.DB)
	announcementRepository := repository.NewAnnouncementRepository(config.Log, config.DB)
	messageRepository := repository.NewMessageRepository(config.Log, config.DB)
	postRepository := repository.NewPostRepository(config.Log, config.DB)
	mediaRepository := repository.NewMediaRepository(config.Log, config.MinIO, config.Config.String("MINIO_BUCKET_NAME"))

	accessUsecase := usecase.NewAccessUsecase(userRepository, clubRepository, membershipRepository, config.Log)
	userUsecase := usecase.NewUserUsecase(userRepository, config.Log, config.Config)
	membershipUsecase := usecase.NewMembershipUsecase(accessUsecase, userRepository, clubRepository, membershipRepository, config.Log)
	clubUsecase := usecase.NewClubUsecase(accessUsecase, userRepository, clubRepository, membershipRepository, eventRepository, announcementRepository, mediaRepository, config.Log, config.Config)
	eventUsecase := usecase.NewEventUsecase(accessUsecase, clubRepository, eventRepository, mediaRepository, config.Log, config.Config)
	announcementUsecase := usecase.NewAnnouncementUsecase(accessUsecase, clubRepository, announcementRepository, config.Log)
	messageUsecase := usecase.NewMessageUsecase(accessUsecase, userRepository, clubRepository, membershipRepository, messageRepository, config.Log)
	postUsecase := usecase.NewPostUsecase(accessUsecase, clubRepository, postRepository, config.Log)

	authMiddleware := middleware.NewAuthMiddleware(config.Router, config.Log, config.Config, userUsecase)

	routeConfig := route.RouteConfig{
		App:                    config.Router,
		AuthMiddleware:         authMiddleware,
		AuthRateLimiter:        middleware.SetupAuthRateLimiter(config.Log),
		UserController:         http.NewUserController(userUsecase, membershipUsecase, messageUsecase, config.Log, config.Config),
		ClubController:         http.NewClubController(clubUsecase, config.Log, config.Config),
		MembershipController:   http.NewMembershipController(membershipUsecase, config.Log, config.Config),
		EventController:        http.NewEventController(eventUsecase, config.Log, config.Config),
		AnnouncementController: http.NewAnnouncementController(announcementUsecase, config.Log, config.Config),
		MessageController:      http.NewMessageController(messageUsecase, config.Log, config.Config),
		PostController:         http.NewPostController(postUsecase, config.Log, config.Config),
	}

	routeConfig.SetupRoute()

	return userUsecase
}
