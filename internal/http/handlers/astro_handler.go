package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/sidus-backend/internal/astro"
	"github.com/tbourn/sidus-backend/internal/services"
)

// CompatibilityResponse is the lookup-table score of two signs.
type CompatibilityResponse struct {
	Sign1 string `json:"sign1" example:"Aries"`
	Sign2 string `json:"sign2" example:"Sagittarius"`
	Score int    `json:"score" example:"95"`
}

// BigThreeRequest is the payload for POST /astro/big-three.
type BigThreeRequest struct {
	BirthDate     string `json:"birthDate" example:"1990-07-15"`
	BirthTime     string `json:"birthTime" example:"6:30 PM"`
	BirthLocation string `json:"birthLocation" example:"Lisbon, Portugal"`
}

// BigThreeResponse is a computed chart.
type BigThreeResponse struct {
	SunSign    astro.Sign `json:"sunSign" example:"Cancer"`
	MoonSign   astro.Sign `json:"moonSign" example:"Libra"`
	RisingSign astro.Sign `json:"risingSign" example:"Cancer"`
}

// Compatibility godoc
// @ID          signCompatibility
// @Summary     Score two signs
// @Description Symmetric lookup-table score in [0,100]. Unknown signs score 50.
// @Tags        Astro
// @Produce     json
// @Param       sign1  query  string  true  "First sign"   example(Aries)
// @Param       sign2  query  string  true  "Second sign"  example(Leo)
// @Success     200  {object}  handlers.CompatibilityResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /astro/compatibility [get]
func (h *Handlers) Compatibility(c *gin.Context) {
	raw1, raw2 := strings.TrimSpace(c.Query("sign1")), strings.TrimSpace(c.Query("sign2"))
	if raw1 == "" || raw2 == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "sign1 and sign2 are required")
		return
	}
	a, b := canonicalSign(raw1), canonicalSign(raw2)
	ok(c, http.StatusOK, CompatibilityResponse{
		Sign1: a.String(),
		Sign2: b.String(),
		Score: astro.Compatibility(a, b),
	})
}

// BigThree godoc
// @ID          bigThree
// @Summary     Compute a Big Three
// @Description Sun, moon and rising signs from a birth date with optional time and place.
// @Tags        Astro
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.BigThreeRequest  true  "Birth data"
// @Success     200  {object}  handlers.BigThreeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /astro/big-three [post]
func (h *Handlers) BigThree(c *gin.Context) {
	var req BigThreeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	chart, err := services.ChartFor(req.BirthDate, req.BirthTime, req.BirthLocation, h.now())
	if err != nil {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, BigThreeResponse{SunSign: chart.Sun, MoonSign: chart.Moon, RisingSign: chart.Rising})
}

// canonicalSign fixes the case of known signs and passes others through.
func canonicalSign(raw string) astro.Sign {
	if s, ok := astro.ParseSign(raw); ok {
		return s
	}
	return astro.Sign(raw)
}
