package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dairy-erp/internal/shared/apperror"
	"dairy-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID          = "user_id"
	ContextUserIDValidated = "user_id_validated"
	ContextRole            = "role"
)

var (
	errTokenMissing = apperror.New(apperror.CodeUnauthorized, "token not found", http.StatusUnauthorized)
	errTokenInvalid = apperror.New(apperror.CodeUnauthorized, "invalid token", http.StatusUnauthorized)
	errTokenExpired = apperror.New(apperror.CodeUnauthorized, "token expired", http.StatusUnauthorized)
)

// AuthMiddleware validates an HS256 bearer token (or the access_token
// cookie) and exposes its user_id and role claims on the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, errTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, errTokenExpired)
				return
			}
			abortWith(c, errTokenInvalid)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, errTokenInvalid)
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			abortWith(c, apperror.New(apperror.CodeUnauthorized, "user id not found in token", http.StatusUnauthorized))
			return
		}
		role, _ := claims["role"].(string)
		if role == "" {
			abortWith(c, apperror.New(apperror.CodeUnauthorized, "role not found in token", http.StatusUnauthorized))
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserIDValidated, userID)
		c.Set(ContextRole, role)

		c.Next()
	}
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}
