package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidUsername = errors.New("username must be 3-150 characters: letters, digits and @/./+/-/_ only")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters long")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrProfileField    = errors.New("profile field exceeds maximum length")
	ErrInvalidPhone    = errors.New("invalid phone number")
)

const (
	MinPasswordLength       = 8
	MaxNameLength           = 150
	MaxPhoneLength          = 15
	MaxDrivingLicenseLength = 50
	MaxIDProofLength        = 50
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+\-]{3,150}$`)
	phoneRegex      = regexp.MustCompile(`^\+?[0-9\- ]{6,15}$`)
)

// matched trims s and checks it against pattern.
func matched(pattern *regexp.Regexp, s string, fail error) (string, error) {
	s = strings.TrimSpace(s)
	if !pattern.MatchString(s) {
		return "", fail
	}
	return s, nil
}

type Email struct{ value string }

func NewEmail(s string) (Email, error) {
	v, err := matched(emailPattern, s, ErrInvalidEmail)
	return Email{value: v}, err
}

func (e Email) Value() string { return e.value }

// Username is matched case-insensitively at login; the stored form keeps
// the casing the user registered with.
type Username struct{ value string }

func NewUsername(s string) (Username, error) {
	v, err := matched(usernamePattern, s, ErrInvalidUsername)
	return Username{value: v}, err
}

func (u Username) Value() string { return u.value }

// Password is the plain text secret; it only lives until it is hashed.
type Password struct{ value string }

func NewPassword(s string) (Password, error) {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return Password{}, ErrPasswordTooWeak
	}
	return Password{value: s}, nil
}

func (p Password) Value() string { return p.value }

type FullName struct {
	first string
	last  string
}

func NewFullName(first, last string) (FullName, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if utf8.RuneCountInString(first) > MaxNameLength || utf8.RuneCountInString(last) > MaxNameLength {
		return FullName{}, ErrNameTooLong
	}
	return FullName{first: first, last: last}, nil
}

func (n FullName) First() string { return n.first }
func (n FullName) Last() string  { return n.last }
