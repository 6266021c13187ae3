package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func run(t *testing.T, key []byte, header string) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var user string
	err := JWT(key)(func(c echo.Context) error {
		user, _ = c.Get("username").(string)
		return nil
	})(c)
	return user, err
}

func status(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}

func TestJWT(t *testing.T) {
	key := []byte("k1")
	valid, err := Sign(key, "coach", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expired, err := Sign(key, "coach", time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	otherKey, err := Sign([]byte("k2"), "coach", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "coach"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"raw token", valid, 0},
		{"bearer token", "Bearer " + valid, 0},
		{"missing", "", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong key", otherKey, http.StatusUnauthorized},
		{"alg none", none, http.StatusUnauthorized},
		{"garbage", "abc.def", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := run(t, key, tt.header)
			if got := status(err); got != tt.code {
				t.Fatalf("status = %d, want %d (err %v)", got, tt.code, err)
			}
			if tt.code == 0 && user != "coach" {
				t.Fatalf("username = %q", user)
			}
		})
	}
}
