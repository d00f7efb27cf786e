package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/service"
)

// BanMiddleware blocks every authenticated request from a banned user.
// It runs after authentication; anonymous requests pass through.
type BanMiddleware struct {
	moderation *service.ModerationService
}

// NewBanMiddleware creates a new BanMiddleware.
func NewBanMiddleware(moderation *service.ModerationService) *BanMiddleware {
	return &BanMiddleware{moderation: moderation}
}

// CheckBan rejects requests from banned users with 403.
func (m *BanMiddleware) CheckBan(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActorFromContext(r.Context())
		if actor.IsAnonymous() {
			next.ServeHTTP(w, r)
			return
		}

		ban, err := m.moderation.ActiveBan(r.Context(), actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrBanNotFound) {
				next.ServeHTTP(w, r)
				return
			}
			slog.Error("ban check failed", "user_id", actor.ID, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)

		body := map[string]interface{}{
			"error":  "account is banned",
			"code":   "ACCOUNT_BANNED",
			"reason": ban.Reason,
		}
		if !ban.IsPermanent && ban.BannedUntil != nil {
			body["banned_until"] = ban.BannedUntil
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("failed to encode ban response", "error", err)
		}
	})
}
