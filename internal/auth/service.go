package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

// Service authenticates the on-device UI. The app has no password
// accounts; a client proves it belongs to this device by presenting the
// configured pairing code, and gets a bearer token for the local API.
type Service struct {
	secret      []byte
	pairingHash []byte
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

func NewService(secret, pairingCode string) *Service {
	hash, err := bcrypt.GenerateFromPassword([]byte(pairingCode), bcrypt.DefaultCost)
	if err != nil {
		hash = nil
	}
	return &Service{
		secret:      []byte(secret),
		pairingHash: hash,
	}
}

func (s *Service) Pair(req PairRequest) (TokenResponse, error) {
	if req.Code == "" {
		return TokenResponse{}, errors.New("pairing code required")
	}
	if s.pairingHash == nil {
		return TokenResponse{}, errors.New("pairing unavailable")
	}
	if err := bcrypt.CompareHashAndPassword(s.pairingHash, []byte(req.Code)); err != nil {
		return TokenResponse{}, errors.New("invalid pairing code")
	}

	token, err := s.signToken("local-ui")
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.DeviceID, nil
}

func (s *Service) signToken(deviceID string) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
