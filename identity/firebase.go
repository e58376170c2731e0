package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// adminClient is the part of the Firebase admin auth client the gateway uses.
type adminClient interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseGateway verifies tokens and manages accounts with the admin SDK, and
// signs users in with email and password over the Identity Toolkit REST API.
type FirebaseGateway struct {
	admin     adminClient
	projectID string
	apiKey    string
	baseURL   string
	http      *http.Client
}

var _ Gateway = (*FirebaseGateway)(nil)

// NewFirebaseGateway initialises the Firebase app from a service-account JSON
// blob, or from application default credentials when the blob is empty.
func NewFirebaseGateway(ctx context.Context, credentialsJSON, projectID, webAPIKey string) (*FirebaseGateway, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialise firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return newFirebaseGateway(client, projectID, webAPIKey, identityToolkitURL), nil
}

func newFirebaseGateway(admin adminClient, projectID, apiKey, baseURL string) *FirebaseGateway {
	return &FirebaseGateway{
		admin:     admin,
		projectID: projectID,
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *FirebaseGateway) VerifyIDToken(ctx context.Context, idToken string) (*Session, error) {
	token, err := g.admin.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if g.projectID != "" && token.Audience != g.projectID {
		return nil, fmt.Errorf("%w: audience %q", ErrInvalidToken, token.Audience)
	}
	s, err := g.lookup(ctx, token.UID)
	if err != nil {
		return nil, err
	}
	s.IDToken = idToken
	return s, nil
}

func (g *FirebaseGateway) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var resp struct {
		LocalID string `json:"localId"`
		IDToken string `json:"idToken"`
	}
	body := map[string]interface{}{"email": email, "password": password, "returnSecureToken": true}
	if err := g.post(ctx, "accounts:signInWithPassword", body, &resp); err != nil {
		return nil, err
	}
	s, err := g.lookup(ctx, resp.LocalID)
	if err != nil {
		return nil, err
	}
	s.IDToken = resp.IDToken
	return s, nil
}

func (g *FirebaseGateway) SignUp(ctx context.Context, email, password, displayName string) (*Session, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	record, err := g.admin.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return sessionFromRecord(record), nil
}

func (g *FirebaseGateway) SignOut(ctx context.Context, uid string) error {
	if err := g.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

func (g *FirebaseGateway) UpdateDisplayName(ctx context.Context, uid, name string) error {
	if _, err := g.admin.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).DisplayName(name)); err != nil {
		return fmt.Errorf("update display name: %w", err)
	}
	return nil
}

func (g *FirebaseGateway) lookup(ctx context.Context, uid string) (*Session, error) {
	record, err := g.admin.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}
	return sessionFromRecord(record), nil
}

func sessionFromRecord(r *auth.UserRecord) *Session {
	s := &Session{}
	if r.UserInfo != nil {
		s.UID = r.UID
		s.Email = r.Email
		s.DisplayName = r.DisplayName
	}
	if role, ok := r.CustomClaims["role"].(string); ok {
		s.Role = role
	}
	if r.UserMetadata != nil && r.UserMetadata.CreationTimestamp > 0 {
		s.CreatedAt = time.UnixMilli(r.UserMetadata.CreationTimestamp)
	}
	return s
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// post calls an Identity Toolkit REST method.
func (g *FirebaseGateway) post(ctx context.Context, method string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s?key=%s", g.baseURL, method, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var te toolkitError
		_ = json.NewDecoder(resp.Body).Decode(&te)
		return toolkitErr(te.Error.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func toolkitErr(msg string) error {
	switch {
	case strings.HasPrefix(msg, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(msg, "INVALID_PASSWORD"),
		strings.HasPrefix(msg, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	case strings.HasPrefix(msg, "EMAIL_EXISTS"):
		return ErrEmailTaken
	case msg == "":
		return fmt.Errorf("identity provider request failed")
	}
	return fmt.Errorf("identity provider: %s", msg)
}
