package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskmanager-pro/dto"
)

func TestLooksLikeEmail(t *testing.T) {
	assert.True(t, LooksLikeEmail("alice@example.com"))
	assert.True(t, LooksLikeEmail("a.b-c+tag@sub.example.io"))
	assert.False(t, LooksLikeEmail("alice"))
	assert.False(t, LooksLikeEmail("alice@localhost"))
	assert.False(t, LooksLikeEmail("@example.com"))
	assert.False(t, LooksLikeEmail("alice @example.com"))
}

func TestBaseUsername(t *testing.T) {
	assert.Equal(t, "alice", BaseUsername("alice@example.com"))
	assert.Equal(t, "john.doe", BaseUsername("John.Doe@example.com"))
	assert.Equal(t, "a-b_c", BaseUsername("a-b_c@example.com"))
	// disallowed runes are dropped, not replaced
	assert.Equal(t, "alicetag", BaseUsername("alice+tag@example.com"))
	// nothing usable left falls back to a fixed stem
	assert.Equal(t, "user", BaseUsername("+++@example.com"))
	// no @ means the whole string is the local part
	assert.Equal(t, "bob", BaseUsername("Bob"))
}

func TestDeriveUsernameTruncatesLongLocalPart(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	username, err := deriveUsername(strings.Repeat("a", 80) + "@example.com")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", usernameMaxLen-10), username)
	assert.LessOrEqual(t, len(username), usernameMaxLen)
}

func TestDeriveUsernameSuffixFitsColumn(t *testing.T) {
	mock := newMockDB(t)

	// first candidate taken, second free
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	username, err := deriveUsername(strings.Repeat("b", 80) + "@example.com")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("b", usernameMaxLen-10)+"1", username)
	assert.LessOrEqual(t, len(username), usernameMaxLen)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, expiresAt, err := GenerateToken(42, "manager")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), expiresAt, 5*time.Second)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateToken(1, "user")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, _, err := GenerateToken(7, "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := dto.TokenClaims{
		UserID: 7,
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}
