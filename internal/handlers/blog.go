package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"blogapp/internal/auth"
	"blogapp/internal/cache"
	dom "blogapp/internal/domain"
	"blogapp/internal/dto"
	"blogapp/internal/service"

	"github.com/gin-gonic/gin"
)

const feedContentType = "application/json; charset=UTF-8"

// BlogHandler serves the post pages and the JSON feed.
type BlogHandler struct {
	posts     *service.PostService
	freshness cache.Freshness
}

// NewBlogHandler returns a new BlogHandler.
func NewBlogHandler(posts *service.PostService, freshness cache.Freshness) *BlogHandler {
	return &BlogHandler{posts: posts, freshness: freshness}
}

// Front renders the listing page with the 10 newest posts and the
// global freshness age.
func (h *BlogHandler) Front(c *gin.Context) {
	list, err := h.posts.List(c.Request.Context(), service.FrontPageLimit)
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	username, loggedIn := currentUsername(c)
	c.HTML(http.StatusOK, "front.html", gin.H{
		"Title":    "Blog",
		"LoggedIn": loggedIn,
		"Username": username,
		"Posts":    list,
		"Age":      h.freshness.Age(c.Request.Context(), cache.FrontScope),
	})
}

// PostPage serves /blog/:id. A trailing ".json" on the id switches to
// the feed representation, mirroring the old regex routes.
func (h *BlogHandler) PostPage(c *gin.Context) {
	raw := c.Param("id")
	if rest, ok := strings.CutSuffix(raw, ".json"); ok {
		h.feedOne(c, rest)
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	p, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	username, loggedIn := currentUsername(c)
	c.HTML(http.StatusOK, "permalink.html", gin.H{
		"Title":    p.Subject,
		"LoggedIn": loggedIn,
		"Username": username,
		"Post":     p,
		"Age":      h.freshness.Age(c.Request.Context(), cache.PostScope(id)),
	})
}

// NewPostForm renders the post form. Anonymous viewers are sent to
// login first.
func (h *BlogHandler) NewPostForm(c *gin.Context) {
	if _, ok := auth.UserFromContext(c); !ok {
		c.Redirect(http.StatusFound, "/blog/login")
		return
	}
	username, loggedIn := currentUsername(c)
	c.HTML(http.StatusOK, "newpost.html", gin.H{
		"Title":    "New post",
		"LoggedIn": loggedIn,
		"Username": username,
		"Subject":  "",
		"Content":  "",
	})
}

// CreatePost stores a post and redirects to its permalink. Both fields
// are required; a miss re-renders the form with the values echoed.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	subject := c.PostForm("subject")
	content := c.PostForm("content")

	if subject == "" || content == "" {
		username, loggedIn := currentUsername(c)
		c.HTML(http.StatusOK, "newpost.html", gin.H{
			"Title":    "New post",
			"LoggedIn": loggedIn,
			"Username": username,
			"Subject":  subject,
			"Content":  content,
			"Error":    "subject and content, please!",
		})
		return
	}

	p, err := h.posts.Create(c.Request.Context(), subject, content)
	if err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.Redirect(http.StatusFound, "/blog/"+strconv.FormatInt(p.ID, 10))
}

// Feed serves /blog.json: every post, newest first, no bound.
func (h *BlogHandler) Feed(c *gin.Context) {
	list, err := h.posts.List(c.Request.Context(), 0)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	writeFeed(c, dto.PostsToFeed(list))
}

// Flush clears the freshness counters and the post list cache and
// bounces back to the listing.
func (h *BlogHandler) Flush(c *gin.Context) {
	if err := h.freshness.Flush(c.Request.Context()); err != nil {
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	h.posts.InvalidateCache(c.Request.Context())
	c.Redirect(http.StatusFound, "/blog")
}

func (h *BlogHandler) feedOne(c *gin.Context, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	p, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	writeFeed(c, dto.PostsToFeed([]dom.Post{p}))
}

func writeFeed(c *gin.Context, feed []dto.PostFeedItem) {
	b, err := json.Marshal(feed)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, feedContentType, b)
}

func currentUsername(c *gin.Context) (string, bool) {
	u, ok := auth.UserFromContext(c)
	if !ok {
		return "", false
	}
	return u.Username, true
}
