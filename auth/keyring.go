// Package auth persists the service session in the system keyring.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.Kinoteka + "-cli"
	user    = "session"
)

// Cookie names issued by the service.
const (
	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
)

// ErrNoSession is returned when nobody has logged in yet.
var ErrNoSession = errors.New("not logged in")

// Session holds the cookies that authenticate API requests.
type Session struct {
	ID   string `json:"sessionid"`
	CSRF string `json:"csrftoken"`
}

// Valid reports whether the session carries an id.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.ID) != ""
}

// Cookies returns the session as cookies ready for a jar.
func (s Session) Cookies() []*http.Cookie {
	var cookies []*http.Cookie
	if s.ID != "" {
		cookies = append(cookies, &http.Cookie{Name: SessionCookie, Value: s.ID, Path: "/"})
	}
	if s.CSRF != "" {
		cookies = append(cookies, &http.Cookie{Name: CSRFCookie, Value: s.CSRF, Path: "/"})
	}
	return cookies
}

// SetSession persists the session to the system keyring.
func SetSession(s Session) error {
	if !s.Valid() {
		return errors.New("session id is empty")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return keyring.Set(service, user, string(data))
}

// GetSession retrieves the stored session.
func GetSession() (Session, error) {
	var s Session

	data, err := keyring.Get(service, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return s, ErrNoSession
		}
		return s, err
	}

	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return s, fmt.Errorf("stored session is corrupted: %w", err)
	}

	return s, nil
}

// DeleteSession removes the stored session. Removing a missing session is not an error.
func DeleteSession() error {
	err := keyring.Delete(service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
