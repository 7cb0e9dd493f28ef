package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tutorial types.
const (
	TutorialBreathings = "breathings"
	TutorialSongs      = "songs"
)

// Comment is embedded in the tutorial document. Comments are appended or
// removed by their author, never edited.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// TutorialItem is one media entry (theme song or guided breathing clip).
type TutorialItem struct {
	Title        string `bson:"title" json:"title"`
	ThumbnailImg string `bson:"thumbnailImg,omitempty" json:"thumbnailImg"`
	Duration     int    `bson:"duration,omitempty" json:"duration"`
	Data         string `bson:"data,omitempty" json:"data"`
	IsAudio      bool   `bson:"isAudio" json:"isAudio"`
}

type Tutorial struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	ThumbnailImg string             `bson:"thumbnailImg,omitempty" json:"thumbnailImg"`
	MainImg      string             `bson:"mainImg,omitempty" json:"mainImg"`
	BackImg      string             `bson:"backImg,omitempty" json:"backImg"`
	Tags         []string           `bson:"tags" json:"tags"`
	Explanation  string             `bson:"explanation,omitempty" json:"explanation"`
	TutorialType string             `bson:"tutorialType" json:"tutorialType"`
	Items        []TutorialItem     `bson:"items" json:"items"`
	Comments     []Comment          `bson:"comments" json:"comments,omitempty"`

	// Kept in sync with len(Comments) on every append/remove.
	CommentCount int `bson:"commentCount" json:"commentCount"`
}

// TutorialPreview is the list-view projection.
type TutorialPreview struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	ThumbnailImg string             `bson:"thumbnailImg,omitempty" json:"thumbnailImg"`
	Title        string             `bson:"title" json:"title"`
}

// AuthorInfo is the public slice of a comment author's profile joined into
// the comment page. Zero-valued when the author record is gone.
type AuthorInfo struct {
	NickName      string `bson:"nickName" json:"nickName"`
	ProfileImgURL string `bson:"profileImgUrl" json:"profileImgUrl"`
}

// CommentView is one row of the paginated comment listing.
type CommentView struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Author     primitive.ObjectID `bson:"author" json:"author"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	AuthorInfo AuthorInfo         `bson:"authorInfo" json:"authorInfo"`
}
