package parabanktest

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm(username string) url.Values {
	return url.Values{
		"customer.firstName":       {"John"},
		"customer.lastName":        {"Doe"},
		"customer.address.street":  {"123 Main St"},
		"customer.address.city":    {"New York"},
		"customer.address.state":   {"NY"},
		"customer.address.zipCode": {"10001"},
		"customer.phoneNumber":     {"555-123-4567"},
		"customer.ssn":             {"123-45-6789"},
		"customer.username":        {username},
		"customer.password":        {"SecurePass123!"},
		"repeatedPassword":         {"SecurePass123!"},
	}
}

func get(t *testing.T, target string) string {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func post(t *testing.T, target string, form url.Values) string {
	t.Helper()
	resp, err := http.PostForm(target, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestIndexPage(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		srv, _, base := NewServer(Options{})
		defer srv.Close()

		body := get(t, base+"/index.htm")
		assert.Contains(t, body, "<title>ParaBank | Welcome | Online Banking</title>")
		assert.Contains(t, body, `<a href="register.htm">Register</a>`)
	})

	t.Run("without register link", func(t *testing.T) {
		srv, _, base := NewServer(Options{OmitRegisterLink: true})
		defer srv.Close()

		body := get(t, base+"/index.htm")
		assert.NotContains(t, body, "register.htm")
	})

	t.Run("root redirects to index", func(t *testing.T) {
		srv, _, base := NewServer(Options{})
		defer srv.Close()

		body := get(t, base+"/")
		assert.Contains(t, body, "Welcome | Online Banking")
	})
}

func TestRegisterForm(t *testing.T) {
	srv, _, base := NewServer(Options{})
	defer srv.Close()

	body := get(t, base+"/register.htm")
	assert.Contains(t, body, "<title>ParaBank | Register for Free Online Account Access</title>")
	for _, f := range formFields {
		assert.Contains(t, body, `id="`+f.ID+`"`)
	}
	assert.Contains(t, body, `<input type="submit" class="button" value="Register">`)
}

func TestRegisterSubmit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, site, base := NewServer(Options{})
		defer srv.Close()

		body := post(t, base+"/register.htm", validForm("test123456"))
		assert.Contains(t, body, "<title>ParaBank | Customer Created</title>")
		assert.Contains(t, body, `<h1 class="title">Welcome test123456</h1>`)
		assert.Contains(t, body, "Your account was created successfully")
		assert.Contains(t, body, "Welcome John Doe")

		subs := site.Submissions()
		require.Len(t, subs, 1)
		assert.Equal(t, "test123456", subs[0].Username)
		assert.Equal(t, subs[0].Password, subs[0].RepeatedPassword)
	})

	t.Run("duplicate username", func(t *testing.T) {
		srv, site, base := NewServer(Options{})
		defer srv.Close()

		post(t, base+"/register.htm", validForm("test000001"))
		body := post(t, base+"/register.htm", validForm("test000001"))
		assert.Contains(t, body, "Register for Free Online Account Access")
		assert.Contains(t, body, "This username already exists.")
		assert.Len(t, site.Submissions(), 1)
	})

	t.Run("password mismatch", func(t *testing.T) {
		srv, site, base := NewServer(Options{})
		defer srv.Close()

		form := validForm("test000002")
		form.Set("repeatedPassword", "different")
		body := post(t, base+"/register.htm", form)
		assert.Contains(t, body, "Passwords did not match.")
		assert.Empty(t, site.Submissions())
	})

	t.Run("missing required field", func(t *testing.T) {
		srv, site, base := NewServer(Options{})
		defer srv.Close()

		form := validForm("test000003")
		form.Del("customer.ssn")
		body := post(t, base+"/register.htm", form)
		assert.Contains(t, body, "Social Security Number is required.")
		assert.Empty(t, site.Submissions())
	})

	t.Run("custom greeting", func(t *testing.T) {
		srv, _, base := NewServer(Options{Greeting: "Hello stranger"})
		defer srv.Close()

		body := post(t, base+"/register.htm", validForm("test000004"))
		assert.Contains(t, body, "Hello stranger")
		assert.NotContains(t, body, "Welcome John Doe")
	})
}
