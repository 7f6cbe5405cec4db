package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/services"
	"github.com/taskmanager-pro/utils"
)

// cookieMaxAge matches the token lifetime (1 hour)
const cookieMaxAge = 3600

// Register handles user registration
func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	user, err := services.Register(req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Respond(c, http.StatusCreated, "User registered successfully", user)
}

// Login handles user authentication by username or email
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, utils.BindingError(err))
		return
	}

	authResponse, err := services.Login(req)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	// Set token as HttpOnly cookie for browser clients; the body carries it
	// too for Bearer-auth clients
	c.SetCookie("access_token", authResponse.Token, cookieMaxAge, "/", "", true, true)

	utils.Respond(c, http.StatusOK, "Login successful", authResponse)
}

// Logout handles user logout. Tokens are stateless, so this just clears the
// cookie; clients discard the bearer token.
func Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", true, true)
	utils.Respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Refresh exchanges a valid token for a fresh one
func Refresh(c *gin.Context) {
	value, exists := c.Get("claims")
	if !exists {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}
	claims, ok := value.(*dto.TokenClaims)
	if !ok {
		utils.Fail(c, utils.Unauthorized("Authentication required"))
		return
	}

	authResponse, err := services.RefreshToken(claims)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.SetCookie("access_token", authResponse.Token, cookieMaxAge, "/", "", true, true)
	utils.Respond(c, http.StatusOK, "Token refreshed", authResponse)
}
