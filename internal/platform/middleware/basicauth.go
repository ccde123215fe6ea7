package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// BasicAuth guards a route with a single static account. An empty user
// rejects every request. Failures answer 401 with a WWW-Authenticate
// challenge for realm.
func BasicAuth(user, pass, realm string) echo.MiddlewareFunc {
	return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
		Realm: realm,
		Validator: func(u, p string, c echo.Context) (bool, error) {
			if user == "" {
				return false, nil
			}
			userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(p), []byte(pass)) == 1
			if userOK && passOK {
				c.Set("auth_user", u)
				return true, nil
			}
			return false, nil
		},
	})
}
