package overtime

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appdto "dutywire/internal/application/overtime/dto"
	"dutywire/internal/application/overtime/usecases"
	"dutywire/internal/shared/authorization"
	"dutywire/internal/shared/constants"
	"dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
	"dutywire/internal/shared/utils"
)

type SignupHandler struct {
	claimSlotUC    *usecases.ClaimSlotUseCase
	withdrawSlotUC *usecases.WithdrawSlotUseCase
	forceAssignUC  *usecases.ForceAssignUseCase
	logger         logger.Interface
}

func NewSignupHandler(
	claimSlotUC *usecases.ClaimSlotUseCase,
	withdrawSlotUC *usecases.WithdrawSlotUseCase,
	forceAssignUC *usecases.ForceAssignUseCase,
) *SignupHandler {
	return &SignupHandler{
		claimSlotUC:    claimSlotUC,
		withdrawSlotUC: withdrawSlotUC,
		forceAssignUC:  forceAssignUC,
		logger:         logger.NewLogger(),
	}
}

// ClaimSlot handles POST /overtime/postings/:id/signups. The claiming
// officer's rank and badge come from the verified token, not the payload.
func (h *SignupHandler) ClaimSlot(c *gin.Context) {
	cmd := usecases.ClaimSlotCommand{
		PostingSID:  c.Param("id"),
		OrgID:       c.GetString(constants.ContextKeyOrgID),
		OfficerID:   c.GetString(constants.ContextKeyOfficerID),
		Rank:        contextStringPtr(c, constants.ContextKeyRank),
		BadgeNumber: contextStringPtr(c, constants.ContextKeyBadgeNumber),
	}

	result, err := h.claimSlotUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"signup":     appdto.ToSignupDTO(result.Signup, cmd.PostingSID),
		"open_slots": result.OpenSlots,
	}, "Slot claimed successfully")
}

// WithdrawSignup handles DELETE /overtime/signups/:id
func (h *SignupHandler) WithdrawSignup(c *gin.Context) {
	cmd := usecases.WithdrawSlotCommand{
		SignupSID: c.Param("id"),
		CallerID:  c.GetString(constants.ContextKeyOfficerID),
		Role:      authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole)),
	}

	result, err := h.withdrawSlotUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Signup withdrawn successfully"
	if !result.Released {
		message = "Signup already withdrawn"
	}
	utils.SuccessResponse(c, http.StatusOK, message, gin.H{
		"released":   result.Released,
		"open_slots": result.OpenSlots,
	})
}

// ForceAssign handles POST /overtime/postings/:id/force-assign
func (h *SignupHandler) ForceAssign(c *gin.Context) {
	var req ForceAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for force assign", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	orgID := c.GetString(constants.ContextKeyOrgID)
	supervisorID := c.GetString(constants.ContextKeyOfficerID)

	result, err := h.forceAssignUC.Execute(c.Request.Context(), req.ToCommand(c.Param("id"), orgID, supervisorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"signup":     appdto.ToSignupDTO(result.Signup, c.Param("id")),
		"open_slots": result.OpenSlots,
	}, "Officer assigned successfully")
}

func contextStringPtr(c *gin.Context, key string) *string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
