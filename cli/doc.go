// Package cli implements the cobra root command of google-form-templater. It
// loads the INI configuration, runs the oauth2 authorization with the user in
// the loop and prints the raw body of the google user profile.
package cli
