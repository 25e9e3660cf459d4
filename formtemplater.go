// Package formtemplater authorizes a google account for the form templater
// with the oauth2 authorization code flow and fetches protected resources
// with the resulting access token.
//
// The redirect is not captured by a local listener. The user opens the
// authorization URL, grants access and pastes the URL the provider
// redirected to back into the console.
package formtemplater

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	fterrors "github.com/go-sharp/formtemplater/errors"
	"github.com/go-sharp/formtemplater/providers"
)

// SessionOption sets options for the Session.
type SessionOption func(*Session)

// WithEndpoint overrides the google endpoint, mostly useful for tests.
func WithEndpoint(ep oauth2.Endpoint) SessionOption {
	return func(s *Session) {
		s.cfg.Endpoint = ep
	}
}

// WithHTTPClient sets the http client used for the token exchange and
// for authenticated requests.
func WithHTTPClient(c *http.Client) SessionOption {
	return func(s *Session) {
		s.httpClient = c
	}
}

// WithPrompter sets how the redirect URL is obtained from the user.
func WithPrompter(p Prompter) SessionOption {
	return func(s *Session) {
		s.prompter = p
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		s.log = log
	}
}

// Session is a single oauth2 authorization of one CLI invocation. The
// token is held in memory only.
type Session struct {
	cfg        oauth2.Config
	httpClient *http.Client
	rest       *resty.Client
	prompter   Prompter
	log        *zap.SugaredLogger

	stage       Stage
	failedStage Stage
	state       string
	token       *oauth2.Token
}

// NewSession returns a new Session for the given client registration.
func NewSession(clientID, clientSecret, redirectURI string, opts ...SessionOption) *Session {
	s := &Session{
		cfg:   providers.NewGoogleProvider(clientID, clientSecret, redirectURI),
		stage: StageStart,
	}

	for _, fn := range opts {
		fn(s)
	}

	if s.log == nil {
		s.log = zap.NewNop().Sugar()
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if s.prompter == nil {
		s.prompter = NewConsolePrompter(false, s.log)
	}
	s.rest = resty.NewWithClient(s.httpClient).SetLogger(s.log)

	return s
}

// Stage returns the current stage of the authorization flow.
func (s *Session) Stage() Stage {
	return s.stage
}

// FailedStage returns the stage a failed session failed in.
func (s *Session) FailedStage() Stage {
	return s.failedStage
}

// Token returns the fetched token or nil.
func (s *Session) Token() *oauth2.Token {
	return s.token
}

// Authorize runs the whole authorization flow: build the authorization URL,
// prompt the user for the redirect URL and exchange the code for a token.
func (s *Session) Authorize(ctx context.Context) error {
	authURL, _, err := s.AuthorizationURL()
	if err != nil {
		return err
	}

	redirect, err := s.PromptForRedirect(ctx, authURL)
	if err != nil {
		return err
	}

	_, err = s.FetchToken(ctx, redirect)
	return err
}

// AuthorizationURL returns the provider authorization URL and the freshly
// generated state embedded in it. Offline access and the consent screen are
// always requested so the provider hands out a refresh token.
func (s *Session) AuthorizationURL() (string, string, error) {
	if err := s.usable(); err != nil {
		return "", "", err
	}

	state, err := newState()
	if err != nil {
		return "", "", s.fail(fterrors.ErrGeneric.WithMessageAndError("failed to create state parameter", err))
	}

	s.state = state
	authURL := s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	s.stage = StageAuthURLBuilt
	s.log.Debugw("Built authorization URL", "endpoint", s.cfg.Endpoint.AuthURL, "scopes", s.cfg.Scopes)

	return authURL, state, nil
}

// PromptForRedirect asks the user to authorize at authURL and returns the
// pasted redirect URL.
func (s *Session) PromptForRedirect(ctx context.Context, authURL string) (string, error) {
	if err := s.usable(); err != nil {
		return "", err
	}

	s.stage = StageAwaitingUserPaste
	redirect, err := s.prompter.PromptForRedirect(ctx, authURL)
	if err != nil {
		return "", s.fail(err)
	}
	return redirect, nil
}

// FetchToken extracts the authorization code from the pasted redirect URL,
// checks its state and exchanges the code at the token endpoint.
func (s *Session) FetchToken(ctx context.Context, redirectResponse string) (*oauth2.Token, error) {
	if err := s.usable(); err != nil {
		return nil, err
	}
	if s.state == "" {
		return nil, s.fail(fterrors.ErrGeneric.WithMessage("no authorization URL was built"))
	}

	code, err := s.parseRedirect(redirectResponse)
	if err != nil {
		return nil, s.fail(err)
	}
	s.stage = StageCodeReceived

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, s.fail(fterrors.ErrTokenExchange.WithWrappedError(err))
	}

	s.token = token
	s.stage = StageTokenFetched
	s.log.Debugw("Fetched token", "type", token.Type(), "expiry", token.Expiry, "refreshToken", token.RefreshToken != "")

	return token, nil
}

// Get fetches resource with the access token attached as bearer credential
// and returns the response body unmodified.
func (s *Session) Get(ctx context.Context, resource string) ([]byte, error) {
	if s.token == nil {
		return nil, fterrors.ErrGeneric.WithMessage("no access token, authorize first")
	}

	res, err := s.rest.R().
		SetContext(ctx).
		SetAuthScheme(s.token.Type()).
		SetAuthToken(s.token.AccessToken).
		Get(resource)
	if err != nil {
		return nil, fterrors.ErrRequest.WithMessageAndError("GET "+resource, err)
	}
	if !res.IsSuccess() {
		return nil, fterrors.ErrRequest.WithMessage(fmt.Sprintf("GET %v: status %v: %s", resource, res.Status(), res.Body()))
	}

	s.log.Debugw("Fetched resource", "url", resource, "status", res.StatusCode(), "bytes", len(res.Body()))
	return res.Body(), nil
}

// Close releases the idle connections of the underlying http client.
func (s *Session) Close() {
	s.httpClient.CloseIdleConnections()
}

func (s *Session) parseRedirect(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fterrors.ErrBadRedirect.WithWrappedError(err)
	}
	q, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", fterrors.ErrBadRedirect.WithWrappedError(err)
	}

	if e := q.Get("error"); e != "" {
		if d := q.Get("error_description"); d != "" {
			e += ": " + d
		}
		return "", fterrors.ErrAccessDenied.WithMessage(e)
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" && state == "" {
		return "", fterrors.ErrBadRedirect.WithMessage("redirect URL carries neither code nor state")
	}
	if subtle.ConstantTimeCompare([]byte(s.state), []byte(state)) == 0 {
		return "", fterrors.ErrStateMismatch
	}
	if code == "" {
		return "", fterrors.ErrBadRedirect.WithMessage("redirect URL carries no authorization code")
	}

	return code, nil
}

func (s *Session) usable() error {
	if s.stage == StageFailed {
		return &StageError{Stage: s.failedStage, Err: fterrors.ErrGeneric.WithMessage("session already failed")}
	}
	return nil
}

func (s *Session) fail(err error) error {
	s.failedStage = s.stage
	s.stage = StageFailed
	s.log.Debugw("Authorization failed", "stage", s.failedStage, "error", err)
	return &StageError{Stage: s.failedStage, Err: err}
}

func newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
