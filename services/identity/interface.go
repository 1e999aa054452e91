package identity

import (
	userRepo "homehelper/database/repository/user"

	"github.com/go-redis/redis/v8"
)

// DefaultIdentityService is the production identity backend. It satisfies the
// session store's IdentityGateway: credentials in, token plus identity out.
// Roles come from stored user records only.
type DefaultIdentityService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}
