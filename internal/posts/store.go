// internal/posts/store.go
// Post store: feed pagination and per-post mutation.

package posts

import (
	"context"
	"log/slog"

	"github.com/imadgeboyega/kiekky-client/internal/api"
	"github.com/imadgeboyega/kiekky-client/internal/common/utils"
	"github.com/imadgeboyega/kiekky-client/internal/entity"
	"github.com/imadgeboyega/kiekky-client/internal/store"
)

// Fallback error messages when the server response carries none.
const (
	errFetchFeed      = "Failed to fetch feed"
	errFetchUserPosts = "Failed to fetch posts"
	errCreatePost     = "Failed to create post"
	errLikePost       = "Failed to like post"
	errDeletePost     = "Failed to delete post"
)

// API is the slice of the REST client the post store depends on.
type API interface {
	GetFeed(ctx context.Context, page int) ([]entity.Post, error)
	GetUserPosts(ctx context.Context, username string) ([]entity.Post, error)
	CreatePost(ctx context.Context, input api.CreatePostInput) (*entity.Post, error)
	LikePost(ctx context.Context, postID string) (*api.LikeResult, error)
	DeletePost(ctx context.Context, postID string) error
}

// State is the post store snapshot. The feed keeps insertion order as
// produced by the paginated fetch sequence; it is never resorted client
// side.
type State struct {
	Posts     []entity.Post `json:"posts"`
	IsLoading bool          `json:"isLoading"`
	Error     string        `json:"error,omitempty"`
	HasMore   bool          `json:"hasMore"`
	Page      int           `json:"page"`
}

// Store owns the post state.
type Store struct {
	*store.Container[State]

	api    API
	logger *slog.Logger
}

// NewStore creates a post store backed by the given API client.
func NewStore(apiClient API, logger *slog.Logger) *Store {
	return &Store{
		Container: store.New(State{HasMore: true, Page: 1}),
		api:       apiClient,
		logger:    logger.With("store", "posts"),
	}
}

// AddPost prepends a post to the feed.
func (s *Store) AddPost(post entity.Post) {
	s.Update(func(state State) State {
		state.Posts = append([]entity.Post{post}, state.Posts...)
		return state
	})
}

// UpdatePost replaces a post by id. No-op when the id is absent.
func (s *Store) UpdatePost(post entity.Post) {
	s.Update(func(state State) State {
		i := indexOf(state.Posts, post.ID)
		if i == -1 {
			return state
		}
		posts := clone(state.Posts)
		posts[i] = post
		state.Posts = posts
		return state
	})
}

// RemovePost filters a post out of the feed by id.
func (s *Store) RemovePost(postID string) {
	s.Update(func(state State) State {
		posts := make([]entity.Post, 0, len(state.Posts))
		for _, p := range state.Posts {
			if p.ID != postID {
				posts = append(posts, p)
			}
		}
		state.Posts = posts
		return state
	})
}

// ToggleLike applies the local optimistic like toggle for userID. Toggling
// twice restores the original like set and count. The prediction is not
// rolled back on a failed confirm; the authoritative LikePost response
// overwrites both fields and reconciles any divergence.
func (s *Store) ToggleLike(postID, userID string) {
	s.Update(func(state State) State {
		i := indexOf(state.Posts, postID)
		if i == -1 {
			return state
		}
		posts := clone(state.Posts)
		post := posts[i]

		likes := make([]string, 0, len(post.Likes)+1)
		removed := false
		for _, id := range post.Likes {
			if id == userID {
				removed = true
				continue
			}
			likes = append(likes, id)
		}
		if removed {
			post.LikesCount--
		} else {
			likes = append(likes, userID)
			post.LikesCount++
		}
		post.Likes = likes

		posts[i] = post
		state.Posts = posts
		return state
	})
}

// IncrementCommentCount bumps a post's comment counter by one.
func (s *Store) IncrementCommentCount(postID string) {
	s.Update(func(state State) State {
		i := indexOf(state.Posts, postID)
		if i == -1 {
			return state
		}
		posts := clone(state.Posts)
		posts[i].CommentsCount++
		state.Posts = posts
		return state
	})
}

// ClearPosts resets the feed to its initial paging state.
func (s *Store) ClearPosts() {
	s.Update(func(state State) State {
		state.Posts = nil
		state.Page = 1
		state.HasMore = true
		return state
	})
}

// FetchFeed loads one feed page. Page 1 replaces the list (fresh load or
// pull-to-refresh); later pages append (infinite scroll). HasMore derives
// from "the page just fetched was non-empty", so the final page is only
// detected one request late.
func (s *Store) FetchFeed(ctx context.Context, page int) error {
	s.setLoading()

	posts, err := s.api.GetFeed(ctx, page)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchFeed))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		if page == 1 {
			state.Posts = posts
		} else {
			state.Posts = append(clone(state.Posts), posts...)
		}
		state.Page = page
		state.HasMore = len(posts) > 0
		return state
	})
	return nil
}

// FetchUserPosts loads one user's posts, replacing the list.
func (s *Store) FetchUserPosts(ctx context.Context, username string) error {
	s.setLoading()

	posts, err := s.api.GetUserPosts(ctx, username)
	if err != nil {
		s.setError(api.ErrorMessage(err, errFetchUserPosts))
		return err
	}

	s.Update(func(state State) State {
		state.IsLoading = false
		state.Posts = posts
		return state
	})
	return nil
}

// CreatePost publishes a post and prepends the stored record on success.
func (s *Store) CreatePost(ctx context.Context, input api.CreatePostInput) (*entity.Post, error) {
	if err := utils.ValidateStruct(input); err != nil {
		s.setError(err.Error())
		return nil, err
	}

	post, err := s.api.CreatePost(ctx, input)
	if err != nil {
		s.setError(api.ErrorMessage(err, errCreatePost))
		return nil, err
	}

	s.AddPost(*post)
	return post, nil
}

// LikePost confirms a like toggle with the server and overwrites the like
// set and count with the authoritative response.
func (s *Store) LikePost(ctx context.Context, postID string) error {
	result, err := s.api.LikePost(ctx, postID)
	if err != nil {
		s.setError(api.ErrorMessage(err, errLikePost))
		return err
	}

	s.Update(func(state State) State {
		i := indexOf(state.Posts, postID)
		if i == -1 {
			return state
		}
		posts := clone(state.Posts)
		posts[i].Likes = result.Likes
		posts[i].LikesCount = result.LikesCount
		state.Posts = posts
		return state
	})
	return nil
}

// DeletePost removes a post server-side, then filters it out locally.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	if err := s.api.DeletePost(ctx, postID); err != nil {
		s.setError(api.ErrorMessage(err, errDeletePost))
		return err
	}

	s.RemovePost(postID)
	return nil
}

func (s *Store) setLoading() {
	s.Update(func(state State) State {
		state.IsLoading = true
		state.Error = ""
		return state
	})
}

func (s *Store) setError(message string) {
	s.logger.Warn("request failed", "error", message)
	s.Update(func(state State) State {
		state.IsLoading = false
		state.Error = message
		return state
	})
}

func indexOf(posts []entity.Post, id string) int {
	for i := range posts {
		if posts[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(posts []entity.Post) []entity.Post {
	out := make([]entity.Post, len(posts))
	copy(out, posts)
	return out
}
