// Package registration drives the ParaBank self-registration workflow and
// verifies that the created customer is greeted correctly.
package registration

import (
	"fmt"
	"time"
)

// UsernamePrefix starts every generated username.
const UsernamePrefix = "test"

// UsernameLength is the length of every generated username.
const UsernameLength = len(UsernamePrefix) + 6

// DefaultPassword is used for both password inputs of the form.
const DefaultPassword = "SecurePass123!"

// Profile is the customer record entered into the registration form.
type Profile struct {
	FirstName   string
	LastName    string
	Street      string
	City        string
	State       string
	ZipCode     string
	PhoneNumber string
	SSN         string
	Username    string
	Password    string
}

// NewProfile returns the fixed John Doe profile with the given username.
func NewProfile(username string) Profile {
	return Profile{
		FirstName:   "John",
		LastName:    "Doe",
		Street:      "123 Main St",
		City:        "New York",
		State:       "NY",
		ZipCode:     "10001",
		PhoneNumber: "555-123-4567",
		SSN:         "123-45-6789",
		Username:    username,
		Password:    DefaultPassword,
	}
}

// FullName is the name ParaBank greets the customer with.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Greeting is the left panel text expected after registration.
func (p Profile) Greeting() string {
	return "Welcome " + p.FullName()
}

// GenerateUsername derives a username from the last six decimal digits of
// the millisecond timestamp of now. Runs starting in the same millisecond
// modulo 10^6 collide.
func GenerateUsername(now time.Time) string {
	ms := now.UnixMilli() % 1_000_000
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%s%06d", UsernamePrefix, ms)
}

// formField pairs an input id with the profile value it receives.
type formField struct {
	ID    string
	Value string
}

// formFields lists the registration inputs in page order. The password is
// entered twice.
func (p Profile) formFields() []formField {
	return []formField{
		{"customer.firstName", p.FirstName},
		{"customer.lastName", p.LastName},
		{"customer.address.street", p.Street},
		{"customer.address.city", p.City},
		{"customer.address.state", p.State},
		{"customer.address.zipCode", p.ZipCode},
		{"customer.phoneNumber", p.PhoneNumber},
		{"customer.ssn", p.SSN},
		{"customer.username", p.Username},
		{"customer.password", p.Password},
		{"repeatedPassword", p.Password},
	}
}
