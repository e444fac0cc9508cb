package handlers

import (
	"errors"
	"net/http"

	"blogapp/internal/auth"
	"blogapp/internal/service"
	"blogapp/internal/validate"

	"github.com/gin-gonic/gin"
)

// sessionMaxAge matches the session TTL in the store.
const sessionMaxAge = 24 * 60 * 60

// AuthHandler handles signup, login, logout and the welcome page.
type AuthHandler struct {
	sessions auth.Sessions
	users    *service.UserService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions auth.Sessions, users *service.UserService) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users}
}

// SignupForm renders the empty signup form.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"Title":        "Sign up",
		"FormUsername": "",
		"FormEmail":    "",
	})
}

// Signup validates the form, creates the user and logs them in. On any
// failure the form is re-rendered with per-field messages; username and
// email are echoed back, the password never is.
func (h *AuthHandler) Signup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	verify := c.PostForm("verify")
	email := c.PostForm("email")

	params := gin.H{
		"Title":        "Sign up",
		"FormUsername": username,
		"FormEmail":    email,
	}

	haveError := false
	if !validate.Username(username) {
		params["ErrorUsername"] = "That's not a valid username."
		haveError = true
	}
	if !validate.Password(password) {
		params["ErrorPassword"] = "That wasn't a valid password."
		haveError = true
	} else if password != verify {
		params["ErrorVerify"] = "Your passwords didn't match."
		haveError = true
	}
	if !validate.Email(email) {
		params["ErrorEmail"] = "That's not a valid email."
		haveError = true
	}
	if haveError {
		c.HTML(http.StatusOK, "signup.html", params)
		return
	}

	user, err := h.users.SignUp(c.Request.Context(), username, password, email)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			params["ErrorUsername"] = "That user already exists."
			c.HTML(http.StatusOK, "signup.html", params)
			return
		}
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	h.startSession(c, user.ID)
}

// LoginForm renders the empty login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":        "Log in",
		"FormUsername": "",
	})
}

// Login checks the credentials. An unknown user and a wrong password
// get the same generic message.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Title":        "Log in",
				"FormUsername": username,
				"Error":        "Invalid login",
			})
			return
		}
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	h.startSession(c, user.ID)
}

// Logout drops the session and clears the cookie unconditionally.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil && token != "" {
		_ = h.sessions.Delete(c.Request.Context(), token)
	}
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/blog/signup")
}

// Welcome greets a logged-in user whose username still validates;
// anyone else is sent to signup.
func (h *AuthHandler) Welcome(c *gin.Context) {
	u, ok := auth.UserFromContext(c)
	if !ok || !validate.Username(u.Username) {
		c.Redirect(http.StatusFound, "/blog/signup")
		return
	}
	c.HTML(http.StatusOK, "welcome.html", gin.H{
		"Title":    "Welcome",
		"LoggedIn": true,
		"Username": u.Username,
	})
}

func (h *AuthHandler) startSession(c *gin.Context, userID int64) {
	token, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create session")
		return
	}
	c.SetCookie(auth.CookieName, token, sessionMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, "/blog/welcome")
}
