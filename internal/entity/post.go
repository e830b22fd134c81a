// internal/entity/post.go

package entity

import "time"

// MediaType represents the kind of media attached to posts, messages and
// stories.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media is a single media item (image or video) by URL.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

// Visibility controls who can see a post.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFriends Visibility = "friends"
	VisibilityPrivate Visibility = "private"
)

// Post is a feed content record. The embedded User is a denormalized
// snapshot of the author, not the authoritative copy.
type Post struct {
	ID            string     `json:"_id"`
	User          User       `json:"user"`
	Content       string     `json:"content"`
	Media         []Media    `json:"media,omitempty"`
	Visibility    Visibility `json:"visibility"`
	Feeling       string     `json:"feeling,omitempty"`
	Location      string     `json:"location,omitempty"`
	TaggedUsers   []string   `json:"taggedUsers,omitempty"`
	Likes         []string   `json:"likes"`
	LikesCount    int        `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	ShareCount    int        `json:"shareCount"`
	ViewCount     int        `json:"viewCount"`
	IsPinned      bool       `json:"isPinned,omitempty"`
	IsArchived    bool       `json:"isArchived,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// LikedBy reports whether userID is in the post's like set.
func (p Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a reply attached to a post.
type Comment struct {
	ID            string    `json:"_id"`
	User          User      `json:"user"`
	Content       string    `json:"content"`
	ReplyCount    int       `json:"replyCount"`
	ReactionCount int       `json:"reactionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Story is an ephemeral media post that expires server-side.
type Story struct {
	ID            string    `json:"_id"`
	User          User      `json:"user"`
	Media         Media     `json:"media"`
	Caption       string    `json:"caption,omitempty"`
	ViewerCount   int       `json:"viewerCount"`
	ReactionCount int       `json:"reactionCount"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GroupPrivacy controls group discoverability.
type GroupPrivacy string

const (
	GroupPublic  GroupPrivacy = "public"
	GroupPrivate GroupPrivacy = "private"
	GroupSecret  GroupPrivacy = "secret"
)

// Group is a community of users around a shared feed.
type Group struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Avatar      string       `json:"avatar,omitempty"`
	Creator     User         `json:"creator"`
	Admins      []string     `json:"admins"`
	Members     []string     `json:"members"`
	MemberCount int          `json:"memberCount"`
	Privacy     GroupPrivacy `json:"privacy"`
	CreatedAt   time.Time    `json:"createdAt"`
}
