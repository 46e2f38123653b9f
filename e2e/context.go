package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Settings read from the environment. The signing key, issuer and audience
// must match the server under test.
type Settings struct {
	BaseURL    string
	SigningKey string
	Issuer     string
	Audience   string
	AdminToken string
}

func SettingsFromEnv() Settings {
	return Settings{
		BaseURL:    strings.TrimRight(os.Getenv("PROOFPACK_E2E_URL"), "/"),
		SigningKey: envOr("PROOFPACK_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Issuer:     envOr("PROOFPACK_JWT_ISSUER", "marketplace-identity"),
		Audience:   envOr("PROOFPACK_JWT_AUDIENCE", "proofpack"),
		AdminToken: os.Getenv("PROOFPACK_ADMIN_TOKEN"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// TestContext carries one scenario's actors, saved values and last response.
type TestContext struct {
	settings Settings
	client   *http.Client

	actors  map[string]actor
	current string
	vars    map[string]string

	status int
	body   []byte
}

type actor struct {
	userID string
	token  string
}

func NewTestContext(settings Settings) *TestContext {
	return &TestContext{
		settings: settings,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.actors = make(map[string]actor)
	tc.current = ""
	tc.vars = make(map[string]string)
	tc.status = 0
	tc.body = nil
}

// Actor mints a bearer token for name on first use and makes name current.
// Roles only apply to the first call for a name.
func (tc *TestContext) Actor(name string, roles ...string) error {
	if _, ok := tc.actors[name]; ok {
		tc.current = name
		return nil
	}
	userID := uuid.NewString()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"roles":   roles,
		"sub":     userID,
		"iss":     tc.settings.Issuer,
		"aud":     []string{tc.settings.Audience},
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
		"jti":     uuid.NewString(),
	})
	signed, err := token.SignedString([]byte(tc.settings.SigningKey))
	if err != nil {
		return fmt.Errorf("sign token for %s: %w", name, err)
	}
	tc.actors[name] = actor{userID: userID, token: signed}
	tc.current = name
	return nil
}

func (tc *TestContext) Set(key, value string) { tc.vars[key] = value }

func (tc *TestContext) Get(key string) string { return tc.vars[key] }

// Expand replaces {{name}} placeholders with saved values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.vars {
		s = strings.ReplaceAll(s, "{{"+k+"}}", v)
	}
	return s
}

// Do sends a request as the current actor. Anonymous requests pass asActor false.
func (tc *TestContext) Do(ctx context.Context, method, path string, body any, asActor bool, headers map[string]string) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(tc.Expand(b))
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				return err
			}
			reader = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.settings.BaseURL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asActor && tc.current != "" {
		req.Header.Set("Authorization", "Bearer "+tc.actors[tc.current].token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Token": tc.settings.AdminToken}
}

func (tc *TestContext) Status() int { return tc.status }

func (tc *TestContext) Body() []byte { return tc.body }

// Field walks a dotted path through the last JSON response. Numeric segments
// index arrays.
func (tc *TestContext) Field(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.body, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	cur := doc
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q missing in %s", part, tc.body)
			}
			cur = v
		case []any:
			var idx int
			if _, err := fmt.Sscanf(part, "%d", &idx); err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("index %q out of range", part)
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %q", part)
		}
	}
	return cur, nil
}

// FieldString renders a response field as text. Whole numbers drop the
// decimal point.
func (tc *TestContext) FieldString(path string) (string, error) {
	v, err := tc.Field(path)
	if err != nil {
		return "", err
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t)), nil
		}
		return fmt.Sprintf("%g", t), nil
	case nil:
		return "", nil
	default:
		return fmt.Sprint(t), nil
	}
}
