// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/backoffice/pkg/id"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "backoffice"

var (
	ErrTokenExpired = jwt.ErrTokenExpired
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the member id for every class. Username and role are
// only set on access tokens.
type Claims struct {
	ID       uint   `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Secrets struct {
	AccessSecret  string
	AccessExpire  time.Duration
	RefreshSecret string
	RefreshExpire time.Duration
	EmailSecret   string
	EmailExpire   time.Duration
}

type class struct {
	secret []byte
	expire time.Duration
}

// Issuer signs and verifies the access, refresh and email-validation
// token classes, each with its own secret and lifetime.
type Issuer struct {
	access  class
	refresh class
	email   class
	now     func() time.Time
}

func NewIssuer(s Secrets) *Issuer {
	return &Issuer{
		access:  class{secret: []byte(s.AccessSecret), expire: s.AccessExpire},
		refresh: class{secret: []byte(s.RefreshSecret), expire: s.RefreshExpire},
		email:   class{secret: []byte(s.EmailSecret), expire: s.EmailExpire},
		now:     time.Now,
	}
}

func (i *Issuer) SignAccess(memberID uint, username, role string) (string, error) {
	return i.sign(i.access, Claims{ID: memberID, Username: username, Role: role})
}

func (i *Issuer) SignRefresh(memberID uint) (string, error) {
	return i.sign(i.refresh, Claims{ID: memberID})
}

func (i *Issuer) SignEmail(memberID uint) (string, error) {
	return i.sign(i.email, Claims{ID: memberID})
}

func (i *Issuer) ParseAccess(token string) (*Claims, error) {
	return i.parse(i.access, token)
}

func (i *Issuer) ParseRefresh(token string) (*Claims, error) {
	return i.parse(i.refresh, token)
}

func (i *Issuer) ParseEmail(token string) (*Claims, error) {
	return i.parse(i.email, token)
}

func (i *Issuer) sign(c class, claims Claims) (string, error) {
	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        id.GetUlid(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.expire)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (i *Issuer) parse(c class, raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(i.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
