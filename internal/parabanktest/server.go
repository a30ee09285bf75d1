// Package parabanktest serves a small in-process imitation of the ParaBank
// registration pages so scenario code can be exercised without the public
// demo site.
package parabanktest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
)

// BasePath is where the fake application is mounted, mirroring the real
// deployment's context path.
const BasePath = "/parabank"

// Options change the served markup to simulate a broken deployment.
type Options struct {
	// OmitRegisterLink drops the Register link from the home page.
	OmitRegisterLink bool
	// Greeting replaces the left panel welcome on the Customer Created page.
	// Empty means "Welcome <first> <last>".
	Greeting string
}

// Submission is one accepted registration form.
type Submission struct {
	FirstName        string
	LastName         string
	Street           string
	City             string
	State            string
	ZipCode          string
	PhoneNumber      string
	SSN              string
	Username         string
	Password         string
	RepeatedPassword string
}

type field struct {
	ID    string
	Label string
	Type  string
	Value string
	Error string
	// Required holds the message shown when the field is left blank.
	Required string
}

var formFields = []field{
	{ID: "customer.firstName", Label: "First Name", Type: "text", Required: "First name is required."},
	{ID: "customer.lastName", Label: "Last Name", Type: "text", Required: "Last name is required."},
	{ID: "customer.address.street", Label: "Address", Type: "text", Required: "Address is required."},
	{ID: "customer.address.city", Label: "City", Type: "text", Required: "City is required."},
	{ID: "customer.address.state", Label: "State", Type: "text", Required: "State is required."},
	{ID: "customer.address.zipCode", Label: "Zip Code", Type: "text", Required: "Zip Code is required."},
	{ID: "customer.phoneNumber", Label: "Phone #", Type: "text"},
	{ID: "customer.ssn", Label: "SSN", Type: "text", Required: "Social Security Number is required."},
	{ID: "customer.username", Label: "Username", Type: "text", Required: "Username is required."},
	{ID: "customer.password", Label: "Password", Type: "password", Required: "Password is required."},
	{ID: "repeatedPassword", Label: "Confirm", Type: "password", Required: "Password confirmation is required."},
}

// Site is the fake application state.
type Site struct {
	opts Options

	mu          sync.Mutex
	usernames   map[string]struct{}
	submissions []Submission
}

// NewSite creates an empty fake application.
func NewSite(opts Options) *Site {
	return &Site{opts: opts, usernames: make(map[string]struct{})}
}

// NewServer starts an httptest server for a new Site. The returned URL is the
// application base (server URL + BasePath).
func NewServer(opts Options) (*httptest.Server, *Site, string) {
	site := NewSite(opts)
	srv := httptest.NewServer(site.Router())
	return srv, site, srv.URL + BasePath
}

// Router returns the gin engine serving the fake pages.
func (s *Site) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	g := r.Group(BasePath)
	g.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, BasePath+"/index.htm") })
	g.GET("/index.htm", s.handleIndex)
	g.GET("/register.htm", s.handleRegisterForm)
	g.POST("/register.htm", s.handleRegister)
	return r
}

// Submissions returns the accepted registrations in order.
func (s *Site) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

func (s *Site) handleIndex(c *gin.Context) {
	render(c, http.StatusOK, indexTpl, pongo2.Context{
		"title":            "Welcome | Online Banking",
		"showRegisterLink": !s.opts.OmitRegisterLink,
	})
}

func (s *Site) handleRegisterForm(c *gin.Context) {
	fields := make([]field, len(formFields))
	copy(fields, formFields)
	renderRegister(c, http.StatusOK, fields)
}

func (s *Site) handleRegister(c *gin.Context) {
	fields := make([]field, len(formFields))
	copy(fields, formFields)

	values := make(map[string]string, len(fields))
	valid := true
	for i := range fields {
		f := &fields[i]
		f.Value = strings.TrimSpace(c.PostForm(f.ID))
		values[f.ID] = f.Value
		if f.Value == "" && f.Required != "" {
			f.Error = f.Required
			valid = false
		}
	}

	sub := Submission{
		FirstName:        values["customer.firstName"],
		LastName:         values["customer.lastName"],
		Street:           values["customer.address.street"],
		City:             values["customer.address.city"],
		State:            values["customer.address.state"],
		ZipCode:          values["customer.address.zipCode"],
		PhoneNumber:      values["customer.phoneNumber"],
		SSN:              values["customer.ssn"],
		Username:         values["customer.username"],
		Password:         values["customer.password"],
		RepeatedPassword: values["repeatedPassword"],
	}

	if sub.Password != "" && sub.RepeatedPassword != "" && sub.Password != sub.RepeatedPassword {
		setError(fields, "repeatedPassword", "Passwords did not match.")
		valid = false
	}

	s.mu.Lock()
	if _, taken := s.usernames[sub.Username]; taken && sub.Username != "" {
		setError(fields, "customer.username", "This username already exists.")
		valid = false
	}
	if valid {
		s.usernames[sub.Username] = struct{}{}
		s.submissions = append(s.submissions, sub)
	}
	s.mu.Unlock()

	if !valid {
		for i := range fields {
			if fields[i].Type == "password" {
				fields[i].Value = ""
			}
		}
		renderRegister(c, http.StatusOK, fields)
		return
	}

	greeting := s.opts.Greeting
	if greeting == "" {
		greeting = "Welcome " + sub.FirstName + " " + sub.LastName
	}
	render(c, http.StatusOK, createdTpl, pongo2.Context{
		"title":    "Customer Created",
		"greeting": greeting,
		"username": sub.Username,
	})
}

func setError(fields []field, id, msg string) {
	for i := range fields {
		if fields[i].ID == id {
			fields[i].Error = msg
			return
		}
	}
}

func renderRegister(c *gin.Context, status int, fields []field) {
	render(c, status, registerTpl, pongo2.Context{
		"title":  "Register for Free Online Account Access",
		"fields": fields,
	})
}

func render(c *gin.Context, status int, tpl *pongo2.Template, data pongo2.Context) {
	out, err := tpl.Execute(data)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(out))
}
