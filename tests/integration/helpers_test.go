//go:build integration

package integration

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vindheg/dth-render/internal/testutil"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// signupAccount registers a fresh account and returns its id and name.
func signupAccount(t *testing.T, client *testutil.Client) (int64, string) {
	t.Helper()

	name := testutil.RandomName("user")
	resp, err := client.POST("/api/v1/auth/signup", map[string]string{
		"name":     name,
		"password": "password123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotZero(t, result.Data.ID)

	return result.Data.ID, name
}

// createChannel adds a channel through the admin API and returns its id.
func createChannel(t *testing.T, name string, price int64) int64 {
	t.Helper()

	admin := testutil.NewClientWithValidator(testServer.URL, testValidator)
	admin.SetT(t)
	admin.LoginAsAdmin(t)

	resp, err := admin.POST("/api/v1/channels", map[string]interface{}{
		"name":  name,
		"price": price,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		Data struct {
			ChannelID int64 `json:"channel_id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotZero(t, result.Data.ChannelID)

	return result.Data.ChannelID
}
