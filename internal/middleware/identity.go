package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID pulls the identity injected by JWTAuth out of the Echo
// context for use in rate-limit keys; unauthenticated requests are keyed
// as "anon".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a stable string form of the authenticated user's
// ID, or "anon" when the request carries no valid claim.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        // JWT numeric claims decode as float64
        return fmt.Sprintf("%.0f", t)
    case uint64:
        return fmt.Sprintf("%d", t)
    }
    return "anon"
}
