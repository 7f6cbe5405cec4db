package services

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskmanager-pro/dto"
	"github.com/taskmanager-pro/models"
	"github.com/taskmanager-pro/repositories"
	"github.com/taskmanager-pro/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Tokens are short-lived; clients refresh through /auth/refresh
const tokenLifetime = time.Hour

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var authUserRepo = repositories.NewUserRepository()

// LooksLikeEmail decides whether a login string is an email address or a
// username
func LooksLikeEmail(login string) bool {
	return emailPattern.MatchString(login)
}

// BaseUsername derives a username candidate from an email's local part,
// keeping only lowercase alphanumerics, dots, dashes and underscores.
func BaseUsername(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = strings.ToLower(local)
	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// usernameMaxLen mirrors the username column size
const usernameMaxLen = 50

// deriveUsername finds a free username starting from the email local part,
// appending a numeric suffix on collision. The base is truncated so the
// suffixed candidate still fits the column.
func deriveUsername(email string) (string, error) {
	base := BaseUsername(email)
	if len(base) > usernameMaxLen-10 {
		base = base[:usernameMaxLen-10]
	}
	candidate := base
	for i := 1; ; i++ {
		taken, err := authUserRepo.ExistsByUsername(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

// Register creates a new user account
func Register(req dto.RegisterRequest) (*models.User, error) {
	// Check if email already exists
	taken, err := authUserRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.Conflict("Email already registered")
	}

	// Resolve a username: caller-supplied or derived from the email
	var username string
	if req.Username != nil && *req.Username != "" {
		taken, err := authUserRepo.ExistsByUsername(*req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, utils.Conflict("Username already taken")
		}
		username = *req.Username
	} else {
		username, err = deriveUsername(req.Email)
		if err != nil {
			return nil, err
		}
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:    req.Email,
		Username: username,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Status:   models.UserActive,
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Language != nil {
		user.Language = *req.Language
	}
	if req.Timezone != nil {
		user.Timezone = *req.Timezone
	}

	created, err := authUserRepo.Create(user)
	if err != nil {
		return nil, err
	}
	created.Password = ""
	return &created, nil
}

// Login authenticates by username or email and returns a token. Lookup
// misses, bad passwords and inactive accounts all map to the same error so
// callers cannot probe which accounts exist.
func Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	var err error
	if LooksLikeEmail(req.Login) {
		user, err = authUserRepo.FindByEmail(req.Login)
	} else {
		user, err = authUserRepo.FindByUsername(req.Login)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, utils.Unauthorized("Invalid credentials")
	}
	if user.Status != models.UserActive {
		return nil, utils.Unauthorized("Invalid credentials")
	}

	now := time.Now()
	if err := authUserRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, expiresAt, err := GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &dto.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
	}, nil
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(userID uint, role string) (string, time.Time, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	expiresAt := time.Now().Add(tokenLifetime)
	claims := dto.TokenClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, utils.Unauthorized("Invalid or expired token")
	}
	if !token.Valid {
		return nil, utils.Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, utils.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

// RefreshToken exchanges a still-valid token's claims for a fresh token. The
// role is re-read from the user row so role changes take effect on refresh.
func RefreshToken(claims *dto.TokenClaims) (*dto.AuthResponse, error) {
	user, err := authUserRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("Invalid or expired token")
		}
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, utils.Unauthorized("Invalid or expired token")
	}

	token, expiresAt, err := GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &dto.AuthResponse{
		User:      user,
		Token:     token,
		ExpiresIn: int64(time.Until(expiresAt).Seconds()),
	}, nil
}
