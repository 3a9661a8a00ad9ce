// Package auth handles authentication against the platform: OAuth2
// client-credentials token acquisition and RS512 attestation JWT signing.
package auth
