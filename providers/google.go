// Package providers holds the fixed oauth2 provider definitions used by the form templater.
package providers

import "golang.org/x/oauth2"

const (
	// GoogleAuthURL is the google authorization endpoint.
	GoogleAuthURL = "https://accounts.google.com/o/oauth2/auth"
	// GoogleTokenURL is the google token endpoint.
	GoogleTokenURL = "https://accounts.google.com/o/oauth2/token"
	// GoogleUserInfoURL is the protected profile resource fetched after authorization.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo"
)

// Scopes returns the scopes requested from google.
func Scopes() []string {
	return []string{"profile", "email"}
}

// GoogleEndpoint returns the google oauth2 endpoint.
func GoogleEndpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   GoogleAuthURL,
		TokenURL:  GoogleTokenURL,
		AuthStyle: oauth2.AuthStyleAutoDetect,
	}
}

// NewGoogleProvider creates a new oauth2.Config for the google oauth endpoint.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) oauth2.Config {
	return oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes(),
		Endpoint:     GoogleEndpoint(),
	}
}
