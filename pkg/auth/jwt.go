package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

const issuer = "taskhive"

// Claims carries the (subject, email) pair every verification strategy must
// produce. Third-party identity tokens put the subject in user_id, locally
// issued tokens fill both.
type Claims struct {
	UserID int    `json:"user_id,omitempty"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// TokenVerifier turns a bearer credential into claims. The lifecycle core is
// indifferent to which strategy produced them.
type TokenVerifier interface {
	Verify(tokenString string) (*Claims, error)
}

type JWTServiceInterface interface {
	GenerateJWT(userID int, email string, expirationTime time.Time) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// JWTService signs and validates tokens with a shared secret.
type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

func (s *JWTService) GenerateJWT(userID int, email string, expirationTime time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Email == "" || claims.Issuer != issuer {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// InsecureDecoder extracts claims without checking the signature. It exists
// for deployments where tokens are minted by an external identity provider
// whose keys are not configured; selecting it is an explicit, logged
// degradation.
type InsecureDecoder struct{}

func (d *InsecureDecoder) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.New("invalid token")
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	zap.L().Warn("token accepted without signature verification", zap.String("email", claims.Email))
	return claims, nil
}
