package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmark/pinpoint/internal/domain/entity"
	"github.com/mapmark/pinpoint/internal/handler/http/dto"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type PostHandler struct {
	postUsecase usecasecontract.IPostUseCase
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postUsecase usecasecontract.IPostUseCase) *PostHandler {
	return &PostHandler{postUsecase: postUsecase}
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreatePostRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	post, err := h.postUsecase.CreatePost(c.Request.Context(), userID, req.Content, req.Images, req.WallOwnerID)
	if err != nil {
		HandleError(c, err, "Failed to create post")
		return
	}
	SuccessHandler(c, http.StatusCreated, post)
}

// GetPost handles GET /posts/:id.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUsecase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err, "Failed to fetch post")
		return
	}
	SuccessHandler(c, http.StatusOK, post)
}

// ListPosts handles GET /posts?authorId=&wallOwnerId=&page=&limit=.
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	filter := entity.PostFilter{
		AuthorID:    c.Query("authorId"),
		WallOwnerID: c.Query("wallOwnerId"),
		Page:        page,
		Limit:       limit,
	}

	posts, meta, err := h.postUsecase.ListPosts(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err, "Failed to list posts")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.PageResponse{Items: posts, Pagination: meta})
}

// ToggleReaction sets the caller's reaction, or removes it when the same
// type is sent again. An empty type means like.
func (h *PostHandler) ToggleReaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.ReactionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	reaction, _ := entity.ParseReactionType(req.Type)

	post, err := h.postUsecase.ToggleReaction(c.Request.Context(), c.Param("id"), userID, reaction)
	if err != nil {
		HandleError(c, err, "Failed to react to post")
		return
	}
	SuccessHandler(c, http.StatusOK, post)
}

// AddComment handles POST /posts/:id/comments.
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, err := h.postUsecase.AddComment(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		HandleError(c, err, "Failed to add comment")
		return
	}
	SuccessHandler(c, http.StatusCreated, comment)
}

// AddReply handles POST /posts/:id/comments/:commentId/replies.
func (h *PostHandler) AddReply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	reply, err := h.postUsecase.AddReply(c.Request.Context(), c.Param("id"), c.Param("commentId"), userID, req.Content)
	if err != nil {
		HandleError(c, err, "Failed to add reply")
		return
	}
	SuccessHandler(c, http.StatusCreated, reply)
}

// DeletePost handles DELETE /posts/:id.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.postUsecase.DeletePost(c.Request.Context(), c.Param("id"), userID); err != nil {
		HandleError(c, err, "Failed to delete post")
		return
	}
	MessageHandler(c, http.StatusOK, "Post deleted")
}
