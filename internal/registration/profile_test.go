package registration

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGenerateUsername(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "last six digits", at: time.UnixMilli(1718000123456), want: "test123456"},
		{name: "leading zeros kept", at: time.UnixMilli(1718000000042), want: "test000042"},
		{name: "short timestamp padded", at: time.UnixMilli(7), want: "test000007"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateUsername(tt.at)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, UsernameLength)
		})
	}
}

func TestGenerateUsername_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ms := rapid.Int64Range(100_000, 1<<50).Draw(rt, "ms")
		got := GenerateUsername(time.UnixMilli(ms))

		if len(got) != 10 {
			rt.Fatalf("username %q has %d characters, want 10", got, len(got))
		}
		if !strings.HasPrefix(got, "test") {
			rt.Fatalf("username %q does not start with test", got)
		}
		digits := strconv.FormatInt(ms, 10)
		if suffix := digits[len(digits)-6:]; got[4:] != suffix {
			rt.Fatalf("username %q suffix != last six digits of %s", got, digits)
		}
	})
}

func TestNewProfile(t *testing.T) {
	p := NewProfile("test654321")

	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
	assert.Equal(t, "New York", p.City)
	assert.Equal(t, "NY", p.State)
	assert.Equal(t, "10001", p.ZipCode)
	assert.Equal(t, "test654321", p.Username)
	assert.Equal(t, DefaultPassword, p.Password)
	assert.Equal(t, "John Doe", p.FullName())
	assert.Equal(t, "Welcome John Doe", p.Greeting())
}

func TestProfileFormFields(t *testing.T) {
	p := NewProfile(GenerateUsername(time.Now()))
	fields := p.formFields()
	require.Len(t, fields, 11)

	byID := make(map[string]string, len(fields))
	for _, f := range fields {
		_, dup := byID[f.ID]
		require.False(t, dup, "duplicate field %s", f.ID)
		byID[f.ID] = f.Value
	}

	assert.Equal(t, byID["customer.password"], byID["repeatedPassword"])
	assert.Equal(t, p.Username, byID["customer.username"])
	assert.Len(t, byID["customer.username"], UsernameLength)
	assert.Equal(t, "123 Main St", byID["customer.address.street"])
	assert.Equal(t, "555-123-4567", byID["customer.phoneNumber"])
	assert.Equal(t, "123-45-6789", byID["customer.ssn"])
}
