package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchCities godoc
// @ID          searchCities
// @Summary     Autocomplete a city
// @Description Up to 10 "City, Country" suggestions. Queries shorter than two characters return an empty list.
// @Tags        Cities
// @Produce     json
// @Param       q  query  string  false  "Prefix or substring"  example(lis)
// @Success     200  {array}  string
// @Router      /cities [get]
func (h *Handlers) SearchCities(c *gin.Context) {
	out := h.cities.Search(c.Request.Context(), c.Query("q"))
	if out == nil {
		out = []string{}
	}
	ok(c, http.StatusOK, out)
}
