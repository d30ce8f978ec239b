package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/domain"
	"github.com/tbourn/sidus-backend/internal/http/middleware"
	"github.com/tbourn/sidus-backend/internal/services"
)

// AddPersonRequest is the payload for POST /people.
type AddPersonRequest struct {
	PersonalInfo domain.PersonInfo `json:"personal_info"`
}

// PersonResponse wraps a saved contact.
type PersonResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    *domain.Person `json:"data"`
}

// PeopleResponse wraps the merged people list.
type PeopleResponse struct {
	Success bool                   `json:"success" example:"true"`
	Data    []services.PersonEntry `json:"data"`
}

// AddPerson godoc
// @ID          addPerson
// @Summary     Save a person
// @Description Stores a friend, partner or relative. The Big Three is computed when a birth date is given.
// @Tags        People
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body  handlers.AddPersonRequest  true  "Person"
// @Success     201  {object}  handlers.PersonResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /people [post]
func (h *Handlers) AddPerson(c *gin.Context) {
	var req AddPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	pi := req.PersonalInfo
	p, err := h.people.Add(c.Request.Context(), middleware.UserID(c), services.PersonInput{
		Name:             pi.Name,
		BirthDate:        pi.BirthDate,
		BirthTime:        pi.BirthTime,
		BirthLocation:    pi.BirthLocation,
		RelationshipType: pi.RelationshipType,
	})
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusCreated, PersonResponse{Success: true, Data: p})
}

// ListPeople godoc
// @ID          listPeople
// @Summary     List people and soulmates
// @Description Saved people merged with generated soulmates, newest first. Supports a weak ETag via If-None-Match and may return 304.
// @Tags        People
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/"people-1-1-0-0")
// @Success     200  {object}  handlers.PeopleResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /people [get]
func (h *Handlers) ListPeople(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	// ETag pre-check (best effort).
	if etag, err := h.people.ETag(ctx, uid); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	list, err := h.people.List(ctx, uid)
	if err != nil {
		failFor(c, err)
		return
	}
	if list == nil {
		list = []services.PersonEntry{}
	}
	ok(c, http.StatusOK, PeopleResponse{Success: true, Data: list})
}
