package v1

import (
	"net/http"

	"portfolio-contact-api/internal/delivery/http/middleware"
	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// maxContactBody caps the request body; a contact message is a few KB at most.
const maxContactBody = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	if limit == nil {
		limit = middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(0))
	}
	public.POST("/contact", limit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate a contact message and relay it to the site owner. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBody)

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	result, err := h.contactUC.Submit(c.Request.Context(), &req)
	if err != nil {
		c.Error(toAppError(err, result))
		return
	}

	response.Success(c, http.StatusOK, domain.MsgSent, result)
}

// toAppError maps a failed submission onto an HTTP status. The message is always
// the result's user-facing reason.
func toAppError(err error, result domain.SubmissionResult) *apperror.AppError {
	reason := result.Reason
	if reason == "" {
		reason = domain.MessageFor(domain.KindOf(err))
	}

	switch domain.KindOf(err) {
	case domain.KindMissingField, domain.KindInvalidEmail:
		return apperror.New(http.StatusBadRequest, reason, nil)
	case domain.KindConfiguration:
		return apperror.Unavailable(reason, err)
	case domain.KindTransportFailure:
		return apperror.BadGateway(reason, err)
	default:
		return apperror.Internal(err)
	}
}
