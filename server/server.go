// ==============================================================================================
// FILE: server/server.go
// ==============================================================================================
// PACKAGE: server
// PURPOSE: An HTTP collaborator around the engine: POST /api/reduce takes a
//          query term as JSON and returns its normal form, guarded by a
//          bearer JWT. This is purely additive (SPEC_FULL.md §D) — the
//          engine and REPL have no dependency on it.
// ==============================================================================================

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"coral/repl"
	"coral/rule"
)

// Server holds the rule set every request reduces queries against, plus the
// shared secret bearer tokens are signed/verified with.
type Server struct {
	Rules     *rule.Set
	JWTSecret []byte
}

// New builds a Server around an already-loaded rule set.
func New(set *rule.Set, secret []byte) *Server {
	return &Server{Rules: set, JWTSecret: secret}
}

// Router assembles the chi mux: request logging, panic recovery, then the
// JWT-guarded API surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequest)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/reduce", s.handleReduce)
	})

	return r
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		logrus.WithFields(logrus.Fields{
			"method":      req.Method,
			"path":        req.URL.Path,
			"request_id":  middleware.GetReqID(req.Context()),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("handled request")
	})
}

// ----------------------------------------------------------------------------
// AUTH
// ----------------------------------------------------------------------------

type contextKey int

const claimsKey contextKey = iota

// requireBearer mirrors the teacher pack's bearer-token middleware shape
// (extract "Authorization: Bearer <token>", validate, attach claims to the
// request context) without the user-database lookup Coral has no use for:
// the token's signature against the shared secret is the whole of identity
// here.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims := jwt.MapClaims{}
		parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
			return s.JWTSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !parsed.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(req.Context(), claimsKey, claims)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func bearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("no authorization header present")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// IssueToken mints a bearer token for out-of-band distribution (the cmd
// "serve" subcommand prints one at startup rather than running a login
// flow, since Coral has no notion of a user).
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// ----------------------------------------------------------------------------
// HANDLERS
// ----------------------------------------------------------------------------

type reduceRequest struct {
	Query string `json:"query"`
}

type reduceResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleReduce(w http.ResponseWriter, req *http.Request) {
	var body reduceRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	result, err := repl.Eval(body.Query, s.Rules, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reduceResponse{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
