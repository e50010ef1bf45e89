// Package config loads and validates the macrolog configuration.
//
// Configuration is a single config.yaml inside a configuration directory,
// ~/.config/macrolog by default, overridable with the --config-path flag.
// The file is optional: every setting has a built-in default, and a
// partial file only overrides the keys it names.
//
//	server:
//	  host: localhost
//	  port: 8737
//	  transport: streamable-http
//	garmin:
//	  domain: garmin.com
//	  tokenFile: /home/me/.garth/oauth2_token.json
//
// The token file is the OAuth2 token written by a garth-compatible login
// flow; macrolog only ever reads it. DefaultTokenFile honors GARTH_HOME
// the way the login tooling does.
//
// Validate reports every problem in one pass so a bad config surfaces as
// a single actionable error at startup.
package config
