package testinfra

import (
	"testing"

	"github.com/ferdian3456/clubconnect/internal/config"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	JWTSecret  = "test-secret-key-for-jwt-token-generation"
	BucketName = "clubconnect-test"
)

type App struct {
	Fiber       *fiber.App
	DB          *pgxpool.Pool
	Redis       *redis.Client
	MinIO       *minio.Client
	Config      *koanf.Koanf
	UserUsecase *usecase.UserUsecase
}

// NewConfig returns the configuration the services read, pointed at infra.
func NewConfig(infra *Infra) *koanf.Koanf {
	testConfig := koanf.New(".")
	_ = testConfig.Set("POSTGRES_URL", infra.PgURL)
	_ = testConfig.Set("REDIS_URL", infra.RedisURL)
	_ = testConfig.Set("MINIO_URL", infra.MinioURL)
	_ = testConfig.Set("MINIO_HTTP", "http://")
	_ = testConfig.Set("MINIO_USER", minioUser)
	_ = testConfig.Set("MINIO_PASSWORD", minioPassword)
	_ = testConfig.Set("MINIO_BUCKET_NAME", BucketName)
	_ = testConfig.Set("JWT_SECRET_KEY", JWTSecret)
	return testConfig
}

// SetupTestApp wires the full application against infra the same way
// cmd/main.go does, without the listener.
func SetupTestApp(t *testing.T, infra *Infra) *App {
	t.Helper()

	log := zap.NewExample()
	testConfig := NewConfig(infra)

	db := config.NewPostgresqlPool(testConfig, log)
	rds := config.NewRedisClient(testConfig, log)
	minioClient := config.NewMinIO(testConfig, log)

	t.Cleanup(func() {
		_ = rds.Close()
		db.Close()
	})

	app := config.NewFiber(log)
	userUsecase := config.Server(&config.ServerConfig{
		Router:  app,
		DB:      db,
		DBCache: rds,
		Log:     log,
		Config:  testConfig,
		MinIO:   minioClient,
	})

	return &App{
		Fiber:       app,
		DB:          db,
		Redis:       rds,
		MinIO:       minioClient,
		Config:      testConfig,
		UserUsecase: userUsecase,
	}
}
