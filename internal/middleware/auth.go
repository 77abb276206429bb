package middleware

import (
	"context"
	"net/http"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/config"
	"boutique-backend/internal/repositories"
	"boutique-backend/internal/timeutil"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const SystemIDKey contextKey = "system_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	cfg        *config.Config
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(cfg *config.Config, jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		cfg:        cfg,
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// Authenticate validates the session cookie and loads the user into the
// request context. Sessions past the halfway point of their lifetime
// get a fresh cookie, so the session only dies after real inactivity.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cfg.JWT.CookieName)
		if err != nil || cookie.Value == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(cookie.Value)
		if err != nil {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		// Check database for current user status (role changes and
		// removals take effect on the next request, not at next login)
		user, err := m.userRepo.Get(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		if user.IsTempPassword && user.TempPasswordExpiry != nil && timeutil.Now().After(*user.TempPasswordExpiry) {
			http.Error(w, "Temporary password expired. Ask an admin for a new one.", http.StatusUnauthorized)
			return
		}

		if m.jwtManager.ShouldRenew(claims) {
			if token, err := m.jwtManager.GenerateToken(user); err == nil {
				auth.SetSessionCookie(w, m.cfg, token)
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, SystemIDKey, user.SystemID)
		ctx = context.WithValue(ctx, EmailKey, user.Email)
		ctx = context.WithValue(ctx, RoleKey, user.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCapability gates a subtree on one capability. Runs after
// Authenticate, so the role is already in the context.
func (m *AuthMiddleware) RequireCapability(capability string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if !auth.Can(role, capability) {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetSystemIDFromContext extracts the tenant system ID from request context
func GetSystemIDFromContext(ctx context.Context) (int, bool) {
	systemID, ok := ctx.Value(SystemIDKey).(int)
	return systemID, ok
}

// GetEmailFromContext extracts email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
