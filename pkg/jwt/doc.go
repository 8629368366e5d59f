// Package jwt provides the token-signing primitive for the Grimoire API.
//
// Session tokens are RS256-signed JWTs carrying the user's id, username,
// and email. The package handles signing, validation, and key management.
//
// # Signing
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "grimoire",
//	    ExpirationMins: 120,
//	})
//	token, err := service.Sign(jwt.Claims{
//	    UserID:   user.ID,
//	    Username: user.Username,
//	    Email:    user.Email,
//	})
//
// # Validation
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // jwt.ErrTokenExpired, jwt.ErrInvalidSignature, or jwt.ErrInvalidToken
//	}
//
// Validation failures are deliberately coarse: callers such as the auth
// middleware only need a valid/invalid signal plus the expired case for a
// friendlier error message.
package jwt
