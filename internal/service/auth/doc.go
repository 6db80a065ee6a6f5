// Package auth provides password hashing and signed access tokens.
//
// Tokens are HS256 JWTs whose subject is the normalized email of the user
// they were issued to. There are no refresh tokens; clients sign in again
// once a token expires.
package auth
