package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCredentials(t *testing.T) {
	for i := 0; i < 20; i++ {
		creds := GenerateCredentials()

		assert.Contains(t, firstNames, creds.FirstName)
		assert.Contains(t, lastNames, creds.LastName)

		assert.True(t, strings.HasSuffix(creds.Address, "@gmail.com"))
		local := strings.TrimSuffix(creds.Address, "@gmail.com")
		assert.Len(t, local, 12)
		for _, r := range local {
			assert.True(t, r >= 'a' && r <= 'z', "address local part must be lowercase letters")
		}

		assert.Len(t, creds.Password, 10)
	}
}

func TestGenerateCredentials_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		seen[GenerateCredentials().Address] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
