package utils

import (
	"context"
	"crypto/rand"
	"strconv"

	"bookaroo-server/models"
	"bookaroo-server/session"
	"bookaroo-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// AccessToken aliases the session claims so route middleware and the JWT
// verifier share one type.
type AccessToken = session.AccessClaims

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CreateTokenPair loads the user's role and issues a pair through the
// session manager.
func CreateTokenPair(id uint) (*jwt.TokenPair, error) {
	role := "user"
	var u models.User
	if err := storage.DB.Select("id, role").First(&u, id).Error; err == nil && u.Role != "" {
		role = u.Role
	}
	return session.Default.IssuePair(bgContext, id, role)
}

// RefreshToken rotates a verified refresh token for a new pair.
func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)

	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	role := "user"
	var u models.User
	if err := storage.DB.Select("id, role").First(&u, uint(userID)).Error; err == nil && u.Role != "" {
		role = u.Role
	}

	tokenPair, err := session.Default.Rotate(bgContext, tokenStr, uint(userID), role)
	if err != nil {
		if err == session.ErrUnknownRefreshToken {
			CreateNotFound(ctx)
			return
		}
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// GenerateShortToken returns a URL-safe random string of the given length
// (bytes*2 hex). Used for widget keys.
func GenerateShortToken(n int) string {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n*2)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0x0f]
	}
	return string(out)
}
