package adaptor

import (
	"encoding/json"
	"net/http"

	"watch-store/internal/dto/request"
	"watch-store/internal/usecase"
	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

type OTPHandler struct {
	service usecase.OTPService
	log     *zap.Logger
}

func NewOTPHandler(service usecase.OTPService, log *zap.Logger) *OTPHandler {
	return &OTPHandler{
		service: service,
		log:     log,
	}
}

// Send handles POST /api/otp/send
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Issue(r.Context(), &req); err != nil {
		respondServiceError(w, h.log, err, "send code")
		return
	}

	utils.ResponseSuccess(w, "Verification code sent", nil)
}

// Verify handles POST /api/otp/verify
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Verify(r.Context(), &req); err != nil {
		respondServiceError(w, h.log, err, "verify code")
		return
	}

	utils.ResponseSuccess(w, "Code verified", nil)
}

// Cancel handles POST /api/otp/cancel
func (h *OTPHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req request.CancelOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.Cancel(r.Context(), &req); err != nil {
		respondServiceError(w, h.log, err, "cancel code")
		return
	}

	utils.ResponseSuccess(w, "Code cancelled", nil)
}
