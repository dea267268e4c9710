package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/search"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

const missingQueryMessage = "Query parameter is missing"

type SearchHandler struct {
	searchService *app.SearchService
}

func NewSearchHandler(searchService *app.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) Yahoo(c *gin.Context) {
	h.search(c, search.Yahoo, "Failed to perform Yahoo search")
}

func (h *SearchHandler) Bing(c *gin.Context) {
	h.search(c, search.Bing, "Failed to perform Bing search")
}

func (h *SearchHandler) search(c *gin.Context, engine, failMessage string) {
	ctx := withAction(c, "Search")
	body, err := h.searchService.Search(ctx, engine, c.Query("query"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingQuery):
			response.Error(c, http.StatusBadRequest, missingQueryMessage)
		default:
			response.Error(c, http.StatusInternalServerError, failMessage)
		}
		return
	}
	response.RawJSON(c, body)
}

func (h *SearchHandler) LatestAIFeatures(c *gin.Context) {
	ctx := withAction(c, "LatestAIFeatures")
	result, err := h.searchService.LatestAIFeatures(ctx, c.Query("query"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingQuery):
			response.Error(c, http.StatusBadRequest, missingQueryMessage)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to search latest AI features")
		}
		return
	}
	response.OK(c, result)
}
