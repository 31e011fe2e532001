package service

import (
	"math/rand"
	"strings"
)

var (
	firstNames = []string{"Alexander", "Benjamin", "Christopher", "Daniel", "Edward"}
	lastNames  = []string{"Anderson", "Baker", "Carter", "Davis", "Evans"}
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	digits    = "0123456789"
)

// Credentials is a freshly generated account registration template
type Credentials struct {
	FirstName string
	LastName  string
	Address   string
	Password  string
}

// GenerateCredentials produces a random registration template: a name
// pair, a 12-letter address local part and a 10-character password
func GenerateCredentials() Credentials {
	return Credentials{
		FirstName: firstNames[rand.Intn(len(firstNames))],
		LastName:  lastNames[rand.Intn(len(lastNames))],
		Address:   randomString(lowercase, 12) + "@gmail.com",
		Password:  randomString(lowercase+digits, 10),
	}
}

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}
