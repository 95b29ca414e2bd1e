package api

import (
	"net/http"

	"github.com/nexotime/nexotime/internal/api/shared"
	"github.com/nexotime/nexotime/internal/platform/redis"
	"github.com/nexotime/nexotime/internal/service/telegramlink"
)

// TelegramHandler handles Telegram account linking HTTP requests.
type TelegramHandler struct {
	linkService *telegramlink.Service
}

// NewTelegramHandler creates a new TelegramHandler.
func NewTelegramHandler(linkService *telegramlink.Service) *TelegramHandler {
	return &TelegramHandler{
		linkService: linkService,
	}
}

// CreateLinkCode handles POST /api/telegram/link-code requests. The
// returned code is pasted into the bot's /link command before it expires.
func (h *TelegramHandler) CreateLinkCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	code, err := h.linkService.GenerateCode(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate link code")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, LinkCodeResponse{
		Code:      code,
		ExpiresIn: int(redis.LinkCodeTTL.Seconds()),
	})
}
