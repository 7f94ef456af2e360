package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	UserRepository UserRepository
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewUserUsecase(userRepository UserRepository, zap *zap.Logger, koanf *koanf.Koanf) *UserUsecase {
	return &UserUsecase{
		UserRepository: userRepository,
		Log:            zap,
		Config:         koanf,
	}
}

func validateUsername(username string) error {
	if username == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username is required to not be empty",
			Param:   "username",
		}
	} else if len(username) < 4 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be at least 4 characters",
			Param:   "username",
		}
	} else if len(username) > 22 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Username must be at most 22 characters",
			Param:   "username",
		}
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is required to not be empty",
			Param:   "password",
		}
	} else if len(password) < 5 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at least 5 characters",
			Param:   "password",
		}
	} else if len(password) > 20 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password must be at most 20 characters",
			Param:   "password",
		}
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is required to not be empty",
			Param:   "email",
		}
	} else if len(email) > 80 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email must be at most 80 characters",
			Param:   "email",
		}
	} else if at := strings.Index(email, "@"); at <= 0 || at == len(email)-1 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Email is invalid",
			Param:   "email",
		}
	}

	return nil
}

// Register creates a student account and signs it in.
func (usecase *UserUsecase) Register(ctx context.Context, payload model.UserRegisterRequest) (model.AuthResponse, error) {
	response := model.AuthResponse{}

	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	err := validateUsername(payload.Username)
	if err != nil {
		return response, err
	}

	err = validateEmail(payload.Email)
	if err != nil {
		return response, err
	}

	err = validatePassword(payload.Password)
	if err != nil {
		return response, err
	}

	fullname, err := validateOptionalText(&payload.Fullname, "fullname", "Fullname", 100)
	if err != nil {
		return response, err
	}

	existUsername, existEmail, err := usecase.UserRepository.CheckUsernameOrEmailUnique(ctx, payload.Username, payload.Email)
	if err != nil {
		return response, err
	}

	if existUsername == payload.Username {
		return response, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Username is already taken",
			Param:   "username",
		}
	} else if existEmail == payload.Email {
		return response, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Email is already registered",
			Param:   "email",
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return response, err
	}

	userId := uuid.New()
	now := time.Now().UTC()
	user := model.User{
		Id:             userId,
		Username:       payload.Username,
		Fullname:       payload.Username,
		Email:          payload.Email,
		Password:       string(hashedPassword),
		Role:           model.RoleStudent,
		IsStaff:        false,
		CreateDatetime: now,
		UpdateDatetime: now,
		CreateUserId:   userId,
		UpdateUserId:   userId,
	}
	if fullname != nil {
		user.Fullname = *fullname
	}

	err = usecase.UserRepository.Register(ctx, user)
	if errors.Is(err, model.ErrDuplicate) {
		return response, &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "Username or email is already registered",
			Param:   "username",
		}
	} else if err != nil {
		return response, err
	}

	token, err := usecase.issueToken(ctx, user.Id, user.Username)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("user registered", zap.String("user_id", user.Id.String()))

	response.User = user.ToResponse()
	response.Token = token

	return response, nil
}

func (usecase *UserUsecase) Login(ctx context.Context, payload model.UserLoginRequest) (model.TokenResponse, error) {
	token := model.TokenResponse{}

	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))

	err := validateUsername(payload.Username)
	if err != nil {
		return token, err
	}

	err = validatePassword(payload.Password)
	if err != nil {
		return token, err
	}

	userId, password, err := usecase.UserRepository.GetUserAuth(ctx, payload.Username)
	if err != nil {
		return token, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(password), []byte(payload.Password))
	if err != nil {
		return token, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Password is incorrect",
			Param:   "password",
		}
	}

	return usecase.issueToken(ctx, userId, payload.Username)
}

func (usecase *UserUsecase) issueToken(ctx context.Context, userId uuid.UUID, username string) (model.TokenResponse, error) {
	token, err := util.GenerateTokenPair(userId, username, usecase.Config.String("JWT_SECRET_KEY"))
	if err != nil {
		return token, err
	}

	err = usecase.UserRepository.SetAuthTokenInCache(ctx, token.AccessToken, token.RefreshToken, userId)
	if err != nil {
		return token, err
	}

	return token, nil
}

func (usecase *UserUsecase) GetMe(ctx context.Context, userId uuid.UUID) (model.UserResponse, error) {
	user, err := usecase.UserRepository.FindUserById(ctx, userId)
	if err != nil {
		return model.UserResponse{}, err
	}

	if user.Id == uuid.Nil {
		return model.UserResponse{}, notFound("User is not found", "userId", "")
	}

	return user.ToResponse(), nil
}

// GetAccessToken checks accessToken against the hash cached at login. A
// token that was logged out or replaced by a newer login is rejected.
func (usecase *UserUsecase) GetAccessToken(ctx context.Context, userId uuid.UUID, accessToken string) error {
	hashedTokenFromCache, err := usecase.UserRepository.GetAccessTokenInCache(ctx, userId)
	if err != nil {
		return err
	}

	if util.HashToken(accessToken) != hashedTokenFromCache {
		return &model.ValidationError{
			Code:    constant.ERR_UNATHORIZED_ERROR,
			Message: "Authorization token is expired",
			Param:   "accessToken",
		}
	}

	return nil
}

func (usecase *UserUsecase) UpdateLastSeen(ctx context.Context, userId uuid.UUID) error {
	return usecase.UserRepository.UpdateLastSeen(ctx, userId, time.Now().UTC())
}

func (usecase *UserUsecase) Logout(ctx context.Context, userId uuid.UUID) error {
	return usecase.UserRepository.RemoveAuthToken(ctx, userId)
}

// EnsureAdmin creates or upgrades the platform admin named by ADMIN_USERNAME.
// It does nothing when the key is not set.
func (usecase *UserUsecase) EnsureAdmin(ctx context.Context) error {
	username := strings.ToLower(strings.TrimSpace(usecase.Config.String("ADMIN_USERNAME")))
	if username == "" {
		return nil
	}

	now := time.Now().UTC()

	user, err := usecase.UserRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if user.Id != uuid.Nil {
		if user.Role == model.RoleAdmin && user.IsStaff {
			return nil
		}

		usecase.Log.Info("promoting configured admin", zap.String("username", username))
		return usecase.UserRepository.UpdateUserRole(ctx, user.Id, model.RoleAdmin, true, user.Id, now)
	}

	password := usecase.Config.String("ADMIN_PASSWORD")
	if password == "" {
		return errors.New("ADMIN_PASSWORD is required when ADMIN_USERNAME is set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userId := uuid.New()
	user = model.User{
		Id:             userId,
		Username:       username,
		Fullname:       username,
		Email:          strings.ToLower(usecase.Config.String("ADMIN_EMAIL")),
		Password:       string(hashedPassword),
		Role:           model.RoleAdmin,
		IsStaff:        true,
		CreateDatetime: now,
		UpdateDatetime: now,
		CreateUserId:   userId,
		UpdateUserId:   userId,
	}

	err = usecase.UserRepository.Register(ctx, user)
	if err != nil {
		return err
	}

	usecase.Log.Info("configured admin created", zap.String("username", username))

	return nil
}
