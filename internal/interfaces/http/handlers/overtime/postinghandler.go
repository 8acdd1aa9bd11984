// Package overtime exposes the posting and signup HTTP API.
package overtime

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appdto "dutywire/internal/application/overtime/dto"
	"dutywire/internal/application/overtime/usecases"
	"dutywire/internal/shared/constants"
	"dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
	"dutywire/internal/shared/utils"
)

type PostingHandler struct {
	createPostingUC *usecases.CreatePostingUseCase
	updatePostingUC *usecases.UpdatePostingUseCase
	closePostingUC  *usecases.ClosePostingUseCase
	deletePostingUC *usecases.DeletePostingUseCase
	getPostingUC    *usecases.GetPostingUseCase
	listPostingsUC  *usecases.ListPostingsUseCase
	getAuditTrailUC *usecases.GetAuditTrailUseCase
	logger          logger.Interface
}

func NewPostingHandler(
	createPostingUC *usecases.CreatePostingUseCase,
	updatePostingUC *usecases.UpdatePostingUseCase,
	closePostingUC *usecases.ClosePostingUseCase,
	deletePostingUC *usecases.DeletePostingUseCase,
	getPostingUC *usecases.GetPostingUseCase,
	listPostingsUC *usecases.ListPostingsUseCase,
	getAuditTrailUC *usecases.GetAuditTrailUseCase,
) *PostingHandler {
	return &PostingHandler{
		createPostingUC: createPostingUC,
		updatePostingUC: updatePostingUC,
		closePostingUC:  closePostingUC,
		deletePostingUC: deletePostingUC,
		getPostingUC:    getPostingUC,
		listPostingsUC:  listPostingsUC,
		getAuditTrailUC: getAuditTrailUC,
		logger:          logger.NewLogger(),
	}
}

// CreatePosting handles POST /overtime/postings
func (h *PostingHandler) CreatePosting(c *gin.Context) {
	var req CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create posting", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	orgID := c.GetString(constants.ContextKeyOrgID)
	actorID := c.GetString(constants.ContextKeyOfficerID)

	result, err := h.createPostingUC.Execute(c.Request.Context(), req.ToCommand(orgID, actorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, appdto.ToPostingDTO(result.Posting, nil, result.OpenSlots), "Posting created successfully")
}

// ListPostings handles GET /overtime/postings
func (h *PostingHandler) ListPostings(c *gin.Context) {
	cmd := usecases.ListPostingsCommand{
		OrgID:  c.GetString(constants.ContextKeyOrgID),
		Filter: c.Query("state"),
	}

	result, err := h.listPostingsUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]appdto.PostingListItemDTO, 0, len(result.Postings))
	for _, p := range result.Postings {
		items = append(items, appdto.ToPostingListItemDTO(p.Posting, p.OpenSlots))
	}

	utils.ListSuccessResponse(c, items, result.Total)
}

// GetPosting handles GET /overtime/postings/:id
func (h *PostingHandler) GetPosting(c *gin.Context) {
	cmd := usecases.GetPostingCommand{
		PostingSID: c.Param("id"),
		OrgID:      c.GetString(constants.ContextKeyOrgID),
	}

	result, err := h.getPostingUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", appdto.ToPostingDTO(result.Posting, result.Signups, result.OpenSlots))
}

// UpdatePosting handles PATCH /overtime/postings/:id
func (h *PostingHandler) UpdatePosting(c *gin.Context) {
	var req UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update posting", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	orgID := c.GetString(constants.ContextKeyOrgID)
	actorID := c.GetString(constants.ContextKeyOfficerID)

	result, err := h.updatePostingUC.Execute(c.Request.Context(), req.ToCommand(c.Param("id"), orgID, actorID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Posting updated successfully", appdto.ToPostingDTO(result.Posting, nil, result.OpenSlots))
}

// ClosePosting handles POST /overtime/postings/:id/close
func (h *PostingHandler) ClosePosting(c *gin.Context) {
	cmd := usecases.ClosePostingCommand{
		PostingSID: c.Param("id"),
		OrgID:      c.GetString(constants.ContextKeyOrgID),
		ClosedBy:   c.GetString(constants.ContextKeyOfficerID),
	}

	result, err := h.closePostingUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Posting closed successfully"
	if !result.Closed {
		message = "Posting already closed"
	}
	utils.SuccessResponse(c, http.StatusOK, message, appdto.ToPostingDTO(result.Posting, nil, 0))
}

// DeletePosting handles DELETE /overtime/postings/:id
func (h *PostingHandler) DeletePosting(c *gin.Context) {
	cmd := usecases.DeletePostingCommand{
		PostingSID: c.Param("id"),
		OrgID:      c.GetString(constants.ContextKeyOrgID),
		ActorID:    c.GetString(constants.ContextKeyOfficerID),
	}

	if err := h.deletePostingUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GetAuditTrail handles GET /overtime/postings/:id/audit
func (h *PostingHandler) GetAuditTrail(c *gin.Context) {
	cmd := usecases.GetAuditTrailCommand{
		PostingSID: c.Param("id"),
		OrgID:      c.GetString(constants.ContextKeyOrgID),
	}

	result, err := h.getAuditTrailUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	events := make([]appdto.AuditEventDTO, 0, len(result.Events))
	for _, e := range result.Events {
		events = append(events, appdto.ToAuditEventDTO(e))
	}

	utils.ListSuccessResponse(c, events, int64(len(events)))
}
