package output

import (
	"time"

	"github.com/bankportal/payment-portal/internal/core"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *core.User) (token string, expiresAt time.Time, err error)
}
