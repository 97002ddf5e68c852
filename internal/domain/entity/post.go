package entity

import "time"

type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ParseReactionType maps free text onto a known reaction.
func ParseReactionType(s string) (ReactionType, bool) {
	switch ReactionType(s) {
	case "":
		return ReactionLike, true
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return ReactionType(s), true
	}
	return "", false
}

type Reaction struct {
	UserID    string       `bson:"user_id" json:"user_id"`
	Type      ReactionType `bson:"type" json:"type"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
}

type Reply struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	Replies   []Reply   `bson:"replies" json:"replies"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Post is a social post. Posts written on another user's wall carry
// WallOwnerID and are removed outright; plain posts are soft-deleted.
type Post struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	AuthorID    string     `bson:"author_id" json:"author_id"`
	WallOwnerID *string    `bson:"wall_owner_id,omitempty" json:"wall_owner_id,omitempty"`
	Content     string     `bson:"content" json:"content"`
	Images      []string   `bson:"images" json:"images"`
	Reactions   []Reaction `bson:"reactions" json:"reactions"`
	Comments    []Comment  `bson:"comments" json:"comments"`
	IsDeleted   bool       `bson:"is_deleted" json:"-"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

func (p *Post) IsWallPost() bool {
	return p.WallOwnerID != nil && *p.WallOwnerID != ""
}

// ReactionOf returns the reaction userID left on the post, if any.
func (p *Post) ReactionOf(userID string) (ReactionType, bool) {
	for _, r := range p.Reactions {
		if r.UserID == userID {
			return r.Type, true
		}
	}
	return "", false
}

type PostFilter struct {
	AuthorID    string
	WallOwnerID string
	Page        int
	Limit       int
}
