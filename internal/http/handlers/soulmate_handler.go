// Soulmate HTTP handlers.
//
//   - POST   /soulmate    (generate; Idempotency-Key aware)
//   - GET    /soulmate    (latest, data:null when none)
//   - POST   /soulmates   (store a client-assembled soulmate)
//   - GET    /soulmates   (history, newest first)
//   - DELETE /soulmates   (delete the latest, used before regenerating)
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/services"
)

// StringList accepts either a JSON string or an array of strings. It stays
// nil for null and blank strings and is non-nil for an array, even an
// empty one, so callers can tell a missing preference from "no preference".
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	list := []string{}
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// GenerateSoulmateRequest is the payload for POST /soulmate.
type GenerateSoulmateRequest struct {
	UserSign         string     `json:"userSign" example:"Leo"`
	GenderPreference string     `json:"genderPreference" example:"female"`
	RacePreference   StringList `json:"racePreference" swaggertype:"array,string" example:"Asian,Latina"`
}

// SaveSoulmateRequest is the payload for POST /soulmates.
type SaveSoulmateRequest struct {
	PersonalInfo      domain.SoulmatePersonalInfo `json:"personalInfo"`
	AstrologicalInfo  domain.SoulmateAstroInfo    `json:"astrologicalInfo"`
	CompatibilityInfo domain.CompatibilityInfo    `json:"compatibilityInfo"`
	ImageURL          string                      `json:"imageUrl" example:"https://cdn.example.com/soulmates/soulmate-1.png"`
}

// SoulmateResponse wraps a generation result.
type SoulmateResponse struct {
	Success bool                     `json:"success" example:"true"`
	Data    *services.SoulmateResult `json:"data"`
}

// SoulmateRecordResponse wraps a stored soulmate; Data is null when none.
type SoulmateRecordResponse struct {
	Success bool             `json:"success" example:"true"`
	Data    *domain.Soulmate `json:"data"`
}

// SoulmateListResponse wraps the soulmate history.
type SoulmateListResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    []domain.Soulmate `json:"data"`
}

// MessageResponse is a success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Soulmate deleted successfully"`
}

// GenerateSoulmate godoc
// @ID          generateSoulmate
// @Summary     Generate a soulmate
// @Description Draws three signs, renders and re-hosts a portrait, scores the match and writes an analysis. Nothing is stored unless every step succeeds. A repeated Idempotency-Key replays the stored soulmate.
// @Tags        Soulmates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.GenerateSoulmateRequest  true  "Generation preferences"
//
// @Success     200  {object}  handlers.SoulmateResponse
// @Header      200  {string}  Idempotency-Replayed  "true when served from a stored result"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     429  {object}  handlers.ErrorResponse  "Cooldown"
// @Failure     502  {object}  handlers.ErrorResponse  "Generator failed"
// @Failure     503  {object}  handlers.ErrorResponse  "Misconfigured"
// @Router      /soulmate [post]
func (h *Handlers) GenerateSoulmate(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	key, hasKey := middleware.GetIdempotencyKey(c)
	scope := middleware.GetIdempotencyScope(c)

	if hasKey && middleware.IsReplay(c) && h.idem != nil {
		if id, found := h.idem.Resource(ctx, uid, scope, key); found {
			if sm, err := h.soulmates.Get(ctx, uid, id); err == nil {
				c.Header(HeaderIdempotencyReplayed, "true")
				ok(c, http.StatusOK, SoulmateResponse{Success: true, Data: services.ResultFromRecord(sm)})
				return
			}
		}
	}

	var req GenerateSoulmateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	res, err := h.soulmates.Generate(ctx, uid, services.GenerateInput{
		UserSign:    req.UserSign,
		Gender:      req.GenderPreference,
		Ethnicities: req.RacePreference,
	})
	if err != nil {
		failFor(c, err)
		return
	}

	if hasKey && h.idem != nil {
		h.idem.Remember(ctx, uid, scope, key, res.ID, http.StatusOK)
	}
	ok(c, http.StatusOK, SoulmateResponse{Success: true, Data: res})
}

// LatestSoulmate godoc
// @ID          latestSoulmate
// @Summary     Latest soulmate
// @Description Returns the user's most recent soulmate, or data:null when there is none.
// @Tags        Soulmates
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SoulmateRecordResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /soulmate [get]
func (h *Handlers) LatestSoulmate(c *gin.Context) {
	sm, err := h.soulmates.Latest(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, SoulmateRecordResponse{Success: true, Data: sm})
}

// SaveSoulmate godoc
// @ID          saveSoulmate
// @Summary     Store a soulmate
// @Description Stores a soulmate assembled by the client, e.g. when regenerating.
// @Tags        Soulmates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.SaveSoulmateRequest  true  "Soulmate record"
// @Success     201  {object}  handlers.SoulmateRecordResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /soulmates [post]
func (h *Handlers) SaveSoulmate(c *gin.Context) {
	var req SaveSoulmateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	sm, err := h.soulmates.Save(c.Request.Context(), middleware.UserID(c), services.SaveInput{
		Gender:             req.PersonalInfo.Gender,
		Ethnicities:        req.PersonalInfo.Ethnicity,
		SunSign:            req.AstrologicalInfo.SunSign,
		MoonSign:           req.AstrologicalInfo.MoonSign,
		RisingSign:         req.AstrologicalInfo.RisingSign,
		CompatibilityScore: req.CompatibilityInfo.CompatibilityScore,
		Analysis:           req.CompatibilityInfo.Analysis,
		ShortDescription:   req.CompatibilityInfo.ShortDescription,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, SoulmateRecordResponse{Success: true, Data: sm})
}

// ListSoulmates godoc
// @ID          listSoulmates
// @Summary     Soulmate history
// @Tags        Soulmates
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.SoulmateListResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /soulmates [get]
func (h *Handlers) ListSoulmates(c *gin.Context) {
	list, err := h.soulmates.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFor(c, err)
		return
	}
	if list == nil {
		list = []domain.Soulmate{}
	}
	ok(c, http.StatusOK, SoulmateListResponse{Success: true, Data: list})
}

// DeleteLatestSoulmate godoc
// @ID          deleteLatestSoulmate
// @Summary     Delete the latest soulmate
// @Tags        Soulmates
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.MessageResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "No soulmate"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /soulmates [delete]
func (h *Handlers) DeleteLatestSoulmate(c *gin.Context) {
	if _, err := h.soulmates.DeleteLatest(c.Request.Context(), middleware.UserID(c)); err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Success: true, Message: "Soulmate deleted successfully"})
}
