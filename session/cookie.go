package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultCookieName = "company"
	issuer            = "interior-consult"
)

type companyClaims struct {
	CompanyID uint   `json:"company_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// CookieCodec stores the identity in an HS256-signed cookie.
type CookieCodec struct {
	Name   string
	Secret []byte
	MaxAge time.Duration
	Secure bool

	now func() time.Time
}

func NewCookieCodec(name string, secret []byte, maxAge time.Duration, secure bool) *CookieCodec {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieCodec{Name: name, Secret: secret, MaxAge: maxAge, Secure: secure, now: time.Now}
}

func (cc *CookieCodec) Encode(id Identity) (string, error) {
	if !id.Valid() {
		return "", ErrNoIdentity
	}
	now := cc.now()
	claims := companyClaims{
		CompanyID: id.CompanyID,
		Code:      id.Code,
		Name:      id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cc.MaxAge)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.Secret)
}

func (cc *CookieCodec) Decode(value string) (Identity, error) {
	claims := &companyClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (interface{}, error) {
		return cc.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(cc.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrNoIdentity
	}
	id := Identity{CompanyID: claims.CompanyID, Code: claims.Code, Name: claims.Name}
	if !id.Valid() {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// Resolve reads the cookie. A missing or malformed cookie yields ErrNoIdentity.
func (cc *CookieCodec) Resolve(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(cc.Name)
	if err != nil || cookie.Value == "" {
		return Identity{}, ErrNoIdentity
	}
	return cc.Decode(cookie.Value)
}

// Cookie builds the Set-Cookie value for id.
func (cc *CookieCodec) Cookie(id Identity) (*http.Cookie, error) {
	value, err := cc.Encode(id)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     cc.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cc.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ExpiredCookie clears the session cookie.
func (cc *CookieCodec) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

var errEmptySecret = errors.New("session secret must not be empty")

// Validate reports configuration problems that would make every cookie forgeable.
func (cc *CookieCodec) Validate() error {
	if len(cc.Secret) == 0 {
		return errEmptySecret
	}
	return nil
}
