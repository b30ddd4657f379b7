package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/EAGLE605/SignX-sub007/internal/repo"
)

// fakeUsers covers the two user methods; the embedded interface panics if a
// handler under test reaches anything else.
type fakeUsers struct {
	repo.Repository
	users  map[string]fakeUser
	nextID int
}

type fakeUser struct {
	id   int
	hash string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]fakeUser{}, nextID: 1}
}

func (f *fakeUsers) CreateUser(_ context.Context, login, email, password string) (int, error) {
	if _, exists := f.users[login]; exists {
		return 0, fmt.Errorf("login %q taken", login)
	}
	id := f.nextID
	f.nextID++
	f.users[login] = fakeUser{id: id, hash: password}
	return id, nil
}

func (f *fakeUsers) GetByLogin(_ context.Context, login string) (int, string, error) {
	u, ok := f.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.hash, nil
}

func testEnv() *Authenv {
	return &Authenv{JWTkey: []byte("unit-test-key"), Repo: newFakeUsers()}
}

func register(t *testing.T, env *Authenv, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rr := httptest.NewRecorder()
	env.RegisterHandler(rr, req)
	return rr
}

func sessionFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", sessionCookie)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env := testEnv()

	rr := register(t, env, `{"login": "ava", "email": "ava@example.com", "password": "hunter22"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201; body: %s", rr.Code, rr.Body.String())
	}
	cookie := sessionFrom(t, rr)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	t.Run("duplicate login", func(t *testing.T) {
		rr := register(t, env, `{"login": "ava", "email": "other@example.com", "password": "hunter22"}`)
		if rr.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rr.Code)
		}
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		env.LoginHandler(rr, req)
		return rr
	}

	t.Run("correct credentials", func(t *testing.T) {
		rr := login(`{"login": "ava", "password": "hunter22"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
		}
		sessionFrom(t, rr)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := login(`{"login": "ava", "password": "wrong"}`)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := login(`{"login": "nobody", "password": "hunter22"}`)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401; unknown users must look like bad passwords", rr.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := login(`{"login": "", "password": ""}`)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rr.Code)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed JSON", "{", http.StatusBadRequest},
		{"missing email", `{"login": "ava", "password": "hunter22"}`, http.StatusBadRequest},
		{"missing login", `{"email": "ava@example.com", "password": "hunter22"}`, http.StatusBadRequest},
		{"short password", `{"login": "ava", "email": "ava@example.com", "password": "12345"}`, http.StatusBadRequest},
		{"whitespace login", `{"login": "   ", "email": "ava@example.com", "password": "hunter22"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := register(t, testEnv(), tc.body)
			if rr.Code != tc.want {
				t.Errorf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	env := testEnv()
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserID(r.Context())
		login, _ := UserLogin(r.Context())
		fmt.Fprintf(w, "%d:%s", id, login)
	}))

	mint := func(t *testing.T, key []byte, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return s
	}
	future := time.Now().Add(time.Hour).Unix()

	call := func(cookieValue string, withCookie bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/signage/wind/pressure", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookieValue})
		}
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		return rr
	}

	t.Run("valid session", func(t *testing.T) {
		token := mint(t, env.JWTkey, jwt.MapClaims{"user_id": 7, "login": "ava", "exp": future})
		rr := call(token, true)
		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
		}
		if rr.Body.String() != "7:ava" {
			t.Errorf("context identity = %q, want 7:ava", rr.Body.String())
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		rr := call("", false)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want JSON error body", ct)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if rr := call("not-a-jwt", true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		token := mint(t, []byte("some-other-key"), jwt.MapClaims{"user_id": 7, "login": "ava", "exp": future})
		if rr := call(token, true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := mint(t, env.JWTkey, jwt.MapClaims{
			"user_id": 7, "login": "ava", "exp": time.Now().Add(-time.Hour).Unix(),
		})
		if rr := call(token, true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("unsigned token", func(t *testing.T) {
		s, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"user_id": 7, "login": "ava", "exp": future,
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		if rr := call(s, true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("missing login claim", func(t *testing.T) {
		token := mint(t, env.JWTkey, jwt.MapClaims{"user_id": 7, "exp": future})
		if rr := call(token, true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})

	t.Run("non-numeric user id", func(t *testing.T) {
		token := mint(t, env.JWTkey, jwt.MapClaims{"user_id": "7", "login": "ava", "exp": future})
		if rr := call(token, true); rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 3)
	wrapped := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		wrapped.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 3; i++ {
		if code := call("198.51.100.7:4000"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200 within burst", i+1, code)
		}
	}
	if code := call("198.51.100.7:4000"); code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 after the burst", code)
	}
	// Buckets are per remote address.
	if code := call("203.0.113.9:4000"); code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a different address", code)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")); err != nil {
		t.Errorf("round-trip compare failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter23")); err == nil {
		t.Error("wrong password accepted")
	}
}
