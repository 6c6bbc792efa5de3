package controller

import (
	"net/http"
	"testing"

	"talk-to-legends-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegendRequestFlow(t *testing.T) {
	a := newTestApp(t)
	_, author := a.user(t, "FREE")
	_, voter := a.user(t, "FREE")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/legend-requests", token: author, body: map[string]string{
		"legendName": " Ada Lovelace ", "whyImportant": "First programmer", "profession": "  ",
	}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateLegendRequestResponse](t, resp)
	assert.Equal(t, "Legend request submitted successfully", created.Message)
	assert.Equal(t, "Ada Lovelace", created.Request.LegendName)
	assert.Equal(t, "PENDING", created.Request.Status)

	resp = a.do(t, call{method: http.MethodPost, path: "/api/legend-requests", token: author, body: map[string]string{
		"legendName": "ada lovelace", "whyImportant": "Again",
	}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You have already requested this legend", decode[errorBody](t, resp).Error)

	votePath := "/api/legend-requests/" + created.Request.Id.String() + "/vote"
	resp = a.do(t, call{method: http.MethodPost, path: votePath, token: voter})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Vote recorded successfully", decode[dto.MessageOnlyResponse](t, resp).Message)

	resp = a.do(t, call{method: http.MethodPost, path: votePath, token: voter})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "You have already voted for this legend", decode[errorBody](t, resp).Error)

	resp = a.do(t, call{method: http.MethodPost, path: "/api/legend-requests/not-a-uuid/vote", token: voter})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, call{method: http.MethodGet, path: "/api/legend-requests", token: author})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.LegendRequestsResponse](t, resp)
	require.Len(t, list.UserRequests, 1)
	require.Len(t, list.PopularRequests, 1)
	assert.Equal(t, 1, list.PopularRequests[0].Votes)
	assert.Nil(t, list.PopularRequests[0].Profession)
}

func TestLegendRequestValidation(t *testing.T) {
	a := newTestApp(t)
	_, token := a.user(t, "FREE")

	resp := a.do(t, call{method: http.MethodPost, path: "/api/legend-requests", token: token, body: map[string]string{"legendName": "Hypatia"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
