package locker

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Codec turns a password into its stored form and checks candidates.
type Codec interface {
	Encode(password string) (string, error)
	Match(stored, candidate string) bool
}

// PlainCodec stores the password itself and compares by equality.
type PlainCodec struct{}

func (PlainCodec) Encode(password string) (string, error) {
	return password, nil
}

func (PlainCodec) Match(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptCodec stores a bcrypt hash. Secrets written by PlainCodec before the
// switch still match by equality until the next change.
type BcryptCodec struct {
	Cost int
}

func (c BcryptCodec) Encode(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (c BcryptCodec) Match(stored, candidate string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return PlainCodec{}.Match(stored, candidate)
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// CodecFor maps a config name to a Codec. Unknown names get PlainCodec.
func CodecFor(name string) Codec {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bcrypt":
		return BcryptCodec{}
	default:
		return PlainCodec{}
	}
}
