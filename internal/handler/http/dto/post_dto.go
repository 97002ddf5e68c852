package dto

type CreatePostRequest struct {
	Content     string   `json:"content" binding:"max=5000"`
	Images      []string `json:"images" binding:"omitempty,max=10,dive,url"`
	WallOwnerID *string  `json:"wallOwnerId"`
}

type ReactionRequest struct {
	Type string `json:"type" binding:"omitempty,reaction"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}
