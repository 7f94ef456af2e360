package middleware

import (
	"errors"

	tracelog "github.com/ferdian3456/clubconnect/internal/middleware"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/usecase"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const userIdLocalKey = "userId"

type AuthMiddleware struct {
	App         *fiber.App
	Log         *zap.Logger
	Config      *koanf.Koanf
	UserUsecase *usecase.UserUsecase
}

func NewAuthMiddleware(app *fiber.App, zap *zap.Logger, koanf *koanf.Koanf, userUsecase *usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		App:         app,
		Log:         zap,
		Config:      koanf,
		UserUsecase: userUsecase,
	}
}

// authenticate resolves the caller from the Authorization header and the
// token hash cached at login.
func (middleware *AuthMiddleware) authenticate(ctx *fiber.Ctx) (uuid.UUID, error) {
	tokenString, userId, err := util.ValidateAccessToken(ctx.Get("Authorization"), middleware.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return uuid.Nil, err
	}

	err = middleware.UserUsecase.GetAccessToken(ctx.UserContext(), userId, tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	return userId, nil
}

func (middleware *AuthMiddleware) touchLastSeen(ctx *fiber.Ctx, userId uuid.UUID) {
	err := middleware.UserUsecase.UpdateLastSeen(ctx.UserContext(), userId)
	if err != nil {
		tracelog.GetLoggerFromContext(ctx, middleware.Log).Warn("failed to update last seen",
			zap.String("user_id", userId.String()),
			zap.Error(err),
		)
	}
}

func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := middleware.authenticate(ctx)
		if err != nil {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				return util.SendValidationErrorResponse(ctx, validationErr)
			}

			return util.SendErrorResponseInternalServer(ctx, tracelog.GetLoggerFromContext(ctx, middleware.Log), err)
		}

		ctx.Locals(userIdLocalKey, userId)
		middleware.touchLastSeen(ctx, userId)

		return ctx.Next()
	}
}

// OptionalRoute identifies the caller when a valid token is sent and lets
// anonymous requests through otherwise.
func (middleware *AuthMiddleware) OptionalRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Get("Authorization") == "" {
			return ctx.Next()
		}

		userId, err := middleware.authenticate(ctx)
		if err != nil {
			tracelog.GetLoggerFromContext(ctx, middleware.Log).Debug("ignoring invalid optional token", zap.Error(err))
			return ctx.Next()
		}

		ctx.Locals(userIdLocalKey, userId)
		middleware.touchLastSeen(ctx, userId)

		return ctx.Next()
	}
}
