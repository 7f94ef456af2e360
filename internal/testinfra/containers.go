// Package testinfra starts the containers and the wired application used by
// the integration tests. Every test that uses it skips under -short.
package testinfra

import (
	"context"
	"fmt"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

type Infra struct {
	Postgres *postgres.PostgresContainer
	Redis    *redis.RedisContainer
	MinIO    testcontainers.Container

	PgURL    string
	RedisURL string
	MinioURL string
}

func StartInfra(ctx context.Context, t *testing.T) (*Infra, error) {
	t.Log("Starting PostgreSQL container...")
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("clubconnect_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres: %w", err)
	}

	infra := &Infra{Postgres: pgContainer}

	infra.PgURL, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return infra, fmt.Errorf("failed to get postgres connection string: %w", err)
	}

	t.Log("Starting Redis container...")
	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections"),
		),
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start redis: %w", err)
	}
	infra.Redis = redisContainer

	infra.RedisURL, err = mappedAddress(ctx, redisContainer, "6379")
	if err != nil {
		return infra, fmt.Errorf("failed to get redis address: %w", err)
	}

	t.Log("Starting MinIO container...")
	minioContainer, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image: "minio/minio:latest",
				Cmd:   []string{"server", "/data"},
				Env: map[string]string{
					"MINIO_ROOT_USER":     minioUser,
					"MINIO_ROOT_PASSWORD": minioPassword,
				},
				ExposedPorts: []string{"9000/tcp"},
				WaitingFor:   wait.ForListeningPort("9000/tcp"),
			},
			Started: true,
		},
	)
	if err != nil {
		return infra, fmt.Errorf("failed to start minio: %w", err)
	}
	infra.MinIO = minioContainer

	infra.MinioURL, err = mappedAddress(ctx, minioContainer, "9000")
	if err != nil {
		return infra, fmt.Errorf("failed to get minio address: %w", err)
	}

	t.Logf("Infrastructure ready: postgres=%s redis=%s minio=%s", infra.PgURL, infra.RedisURL, infra.MinioURL)
	return infra, nil
}

func mappedAddress(ctx context.Context, container testcontainers.Container, port string) (string, error) {
	host, err := container.Host(ctx)
	if err != nil {
		return "", err
	}

	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%s", host, mapped.Port()), nil
}

func (infra *Infra) Terminate(ctx context.Context, t *testing.T) {
	containers := []testcontainers.Container{infra.MinIO}
	if infra.Redis != nil {
		containers = append(containers, infra.Redis)
	}
	if infra.Postgres != nil {
		containers = append(containers, infra.Postgres)
	}

	for _, container := range containers {
		if container == nil {
			continue
		}
		err := container.Terminate(ctx)
		if err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// Start brings up the containers, runs the migrations and registers cleanup.
// It skips the test under -short.
func Start(t *testing.T) *Infra {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	infra, err := StartInfra(ctx, t)
	if infra != nil {
		t.Cleanup(func() { infra.Terminate(ctx, t) })
	}
	if err != nil {
		t.Fatalf("failed to start test infrastructure: %v", err)
	}

	err = RunMigration(infra.PgURL, t)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return infra
}
