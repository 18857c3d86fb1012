package routes

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/log"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "login.basic_auth")
			return
		}

		body := url.Values{
			"grant_type": {"password"},
			"username":   {user},
			"password":   {pass},
		}
		r.Body = io.NopCloser(strings.NewReader(body.Encode()))
		r.Header.Set("content-type", "application/x-www-form-urlencoded")
		r.Header.Set("content-length", strconv.Itoa(len(body.Encode())))
		app.UserCredentials(w, r)
	}
}

func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("authorization")
		match := regexp.MustCompile(`(?i)^refresh\s+(.*)`).FindStringSubmatch(auth)
		if len(match) == 0 {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "refresh.token")
			return
		}
		token := match[1]

		body := url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {token},
		}

		req, err := http.NewRequest("POST", "/", strings.NewReader(body.Encode()))
		if err != nil {
			httpx.LogStatus(w, http.StatusInternalServerError, log.DebugLevel, "refresh.new_request")
			return
		}
		req.Header.Set("content-type", "application/x-www-form-urlencoded")
		req.Header.Set("content-length", strconv.Itoa(len(body.Encode())))

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		resp.Flush(w)
	}
}

type registration struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verifyPassword"`
	AcceptTerms    bool   `json:"acceptTerms"`
	NotARobot      bool   `json:"notARobot"`
}

var reRegistrationEmail = regexp.MustCompile(`^\S+@\S+\.\S+$`)

func (reg registration) validate() map[string]string {
	errs := map[string]string{}
	if reg.FirstName == "" {
		errs["firstName"] = "First name is required"
	}
	if reg.LastName == "" {
		errs["lastName"] = "Last name is required"
	}
	if reg.Username == "" {
		errs["username"] = "Username is required"
	}
	if reg.Email == "" {
		errs["email"] = "Email is required"
	} else if !reRegistrationEmail.MatchString(reg.Email) {
		errs["email"] = "Email is invalid"
	}
	if reg.Password == "" {
		errs["password"] = "Password is required"
	} else if len(reg.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	if reg.VerifyPassword != reg.Password {
		errs["verifyPassword"] = "Passwords do not match"
	}
	if !reg.AcceptTerms {
		errs["acceptTerms"] = "You must accept the terms and conditions"
	}
	if !reg.NotARobot {
		errs["notARobot"] = "Please confirm you are not a robot"
	}
	return errs
}

func Register(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reg registration
		err := render.DecodeJSON(r.Body, &reg)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if errs := reg.validate(); len(errs) > 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.LogInternalError(w, "register.hash_password", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO user (username, password_hash, first_name, last_name, email, role)
			VALUES (?, ?, ?, ?, ?, 'user')`,
			reg.Username,
			string(hash),
			reg.FirstName,
			reg.LastName,
			reg.Email,
		)
		if isUniqueViolation(err) {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "register.duplicate",
				"username is already taken")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.register", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"username": reg.Username,
		})
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
