package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
	"github.com/ferdian3456/clubconnect/internal/observability"
	"github.com/ferdian3456/clubconnect/internal/util"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PostUsecase struct {
	AccessUsecase  *AccessUsecase
	ClubRepository ClubRepository
	PostRepository PostRepository
	Log            *zap.Logger
}

func NewPostUsecase(accessUsecase *AccessUsecase, clubRepository ClubRepository, postRepository PostRepository, zap *zap.Logger) *PostUsecase {
	return &PostUsecase{
		AccessUsecase:  accessUsecase,
		ClubRepository: clubRepository,
		PostRepository: postRepository,
		Log:            zap,
	}
}

func (usecase *PostUsecase) CreatePost(ctx context.Context, userId uuid.UUID, clubIdParam string, payload model.ClubPostCreateRequest) (model.ClubPostResponse, error) {
	response := model.ClubPostResponse{}

	clubId, actor, err := usecase.authorizeClub(ctx, userId, clubIdParam, OperationCreatePost)
	if err != nil {
		return response, err
	}

	content, err := validateText(payload.Content, "content", "Content", 2200)
	if err != nil {
		return response, err
	}

	now := time.Now().UTC()
	post := model.ClubPost{
		Id:             uuid.New(),
		ClubId:         clubId,
		AuthorId:       userId,
		Content:        content,
		LikeCount:      0,
		CreateDatetime: now,
		UpdateDatetime: now,
		CreateUserId:   userId,
		UpdateUserId:   userId,
	}

	err = usecase.PostRepository.CreatePost(ctx, post)
	if err != nil {
		return response, err
	}

	observability.WithContext(ctx, usecase.Log).Info("club post created",
		zap.String("post_id", post.Id.String()),
		zap.String("club_id", clubId.String()),
	)

	response = model.ClubPostResponse{
		Id:             post.Id,
		ClubId:         post.ClubId,
		AuthorId:       post.AuthorId,
		AuthorUsername: actor.Username,
		Content:        post.Content,
		LikeCount:      post.LikeCount,
		CreateDatetime: post.CreateDatetime,
		UpdateDatetime: post.UpdateDatetime,
	}

	return response, nil
}

func (usecase *PostUsecase) ListPosts(ctx context.Context, userId uuid.UUID, clubIdParam string, limit int, cursor string) (model.ClubPostListResponse, error) {
	response := model.ClubPostListResponse{}

	err := util.ValidateLimit(limit)
	if err != nil {
		return response, err
	}

	postCursor := model.ClubPostCursor{}
	err = util.DecodeCursor(cursor, &postCursor)
	if err != nil {
		return response, err
	}

	clubId, _, err := usecase.authorizeClub(ctx, userId, clubIdParam, OperationListPosts)
	if err != nil {
		return response, err
	}

	posts, err := usecase.PostRepository.ListClubPosts(ctx, clubId, limit+1, &postCursor)
	if err != nil {
		return response, err
	}

	hasMore := len(posts) > limit
	if hasMore {
		posts = posts[:limit]
	}

	response.Data = posts

	if hasMore {
		last := posts[len(posts)-1]
		response.Page.NextCursor, err = util.EncodeCursor(model.ClubPostCursor{
			Id:             last.Id.String(),
			CreateDatetime: last.CreateDatetime,
		})
		if err != nil {
			return response, err
		}
	}

	return response, nil
}

func (usecase *PostUsecase) LikePost(ctx context.Context, userId uuid.UUID, postIdParam string) error {
	post, err := usecase.authorizePost(ctx, userId, postIdParam)
	if err != nil {
		return err
	}

	err = usecase.PostRepository.CreatePostLike(ctx, model.ClubPostLike{
		PostId:         post.Id,
		UserId:         userId,
		CreateDatetime: time.Now().UTC(),
	})
	if errors.Is(err, model.ErrDuplicate) {
		return &model.ValidationError{
			Code:    constant.ERR_CONFLICT_ERROR,
			Message: "You already liked this post",
			Param:   "postId",
		}
	}

	return err
}

func (usecase *PostUsecase) UnlikePost(ctx context.Context, userId uuid.UUID, postIdParam string) error {
	post, err := usecase.authorizePost(ctx, userId, postIdParam)
	if err != nil {
		return err
	}

	deleted, err := usecase.PostRepository.DeletePostLike(ctx, post.Id, userId)
	if err != nil {
		return err
	}

	if !deleted {
		return notFound("You have not liked this post", "postId", "")
	}

	return nil
}

func (usecase *PostUsecase) authorizeClub(ctx context.Context, userId uuid.UUID, clubIdParam string, operation Operation) (uuid.UUID, model.User, error) {
	clubId, err := parseId(clubIdParam, "clubId", "club")
	if err != nil {
		return clubId, model.User{}, err
	}

	_, err = findClub(ctx, usecase.ClubRepository, usecase.Log, clubId)
	if err != nil {
		return clubId, model.User{}, err
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return clubId, actor, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, clubId, operation)
	if err != nil {
		return clubId, actor, err
	}

	return clubId, actor, nil
}

func (usecase *PostUsecase) authorizePost(ctx context.Context, userId uuid.UUID, postIdParam string) (model.ClubPost, error) {
	postId, err := parseId(postIdParam, "postId", "post")
	if err != nil {
		return model.ClubPost{}, err
	}

	post, err := usecase.PostRepository.FindPostById(ctx, postId)
	if err != nil {
		return post, err
	}

	if post.Id == uuid.Nil {
		return post, notFound("Post is not found", "postId", "")
	}

	actor, err := usecase.AccessUsecase.GetActor(ctx, userId)
	if err != nil {
		return post, err
	}

	err = usecase.AccessUsecase.Authorize(ctx, actor, post.ClubId, OperationLikePost)
	if err != nil {
		return post, err
	}

	return post, nil
}
