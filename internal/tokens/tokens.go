package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenTTL       = 30 * 24 * time.Hour
	RegistrationTokenTTL = 15 * time.Minute
)

// AccessClaims is the bearer token presented on every authenticated request.
type AccessClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// RegistrationClaims carries a pending registration through the email
// verification round-trip. The password is already hashed when signed.
type RegistrationClaims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	PhoneNumber  string `json:"phone_number"`
	jwt.RegisteredClaims
}

func SignAccessToken(userID uint, isAdmin bool, secret []byte, now time.Time) (string, error) {
	claims := AccessClaims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func SignRegistrationToken(name, email, passwordHash, phone string, secret []byte, now time.Time) (string, error) {
	claims := RegistrationClaims{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RegistrationTokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return &claims, nil
}

func RegistrationClaimsFromToken(tokenStr string, secret []byte) (*RegistrationClaims, error) {
	var claims RegistrationClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return &claims, nil
}

// SubjectID parses the numeric user id out of the token subject.
func (c *AccessClaims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid token subject")
	}
	return uint(id), nil
}
