//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vindheg/dth-render/internal/testutil"
)

func TestAuth_Signup_Login_Flow(t *testing.T) {
	client := newTestClient(t)
	name := testutil.RandomName("user")

	resp, err := client.POST("/api/v1/auth/signup", map[string]string{
		"name":     name,
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupResult struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &signupResult)
	assert.NotZero(t, signupResult.Data.ID)

	resp, err = client.POST("/api/v1/auth/login", map[string]string{
		"name":     name,
		"password": "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResult struct {
		Data struct {
			Role    string `json:"role"`
			Token   string `json:"token"`
			Account struct {
				ID          int64  `json:"id"`
				Name        string `json:"name"`
				Balance     int64  `json:"balance"`
				RechargeDue string `json:"recharge_due"`
			} `json:"account"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &loginResult)
	assert.Equal(t, "user", loginResult.Data.Role)
	assert.NotEmpty(t, loginResult.Data.Token)
	assert.Equal(t, name, loginResult.Data.Account.Name)
	assert.Equal(t, int64(500), loginResult.Data.Account.Balance, "new accounts start with the default balance")
	assert.NotEmpty(t, loginResult.Data.Account.RechargeDue)
}

func TestAuth_Signup_Duplicate(t *testing.T) {
	client := newTestClient(t)
	name := testutil.RandomName("user")

	resp, err := client.POST("/api/v1/auth/signup", map[string]string{
		"name":     name,
		"password": "password1",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.POST("/api/v1/auth/signup", map[string]string{
		"name":     name,
		"password": "password2",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuth_Signup_MissingFields(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/signup", map[string]string{
		"name": testutil.RandomName("user"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	client := newTestClient(t)
	name := testutil.RandomName("user")

	resp, err := client.POST("/api/v1/auth/signup", map[string]string{
		"name":     name,
		"password": "password123",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.POST("/api/v1/auth/login", map[string]string{
		"name":     name,
		"password": "wrong-password",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuth_Login_Admin(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"name":     "admin",
		"password": "admin123",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Role  string `json:"role"`
			Token string `json:"token"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "admin", result.Data.Role)
	assert.NotEmpty(t, result.Data.Token)
}

func TestAuth_Me(t *testing.T) {
	client := newTestClient(t)
	id, name := signupAccount(t, client)

	client.LoginAs(t, name, "password123")

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, id, result.Data.ID)
	assert.Equal(t, name, result.Data.Name)
}

func TestAuth_Me_Unauthenticated(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAccounts_Get(t *testing.T) {
	client := newTestClient(t)
	id, name := signupAccount(t, client)

	resp, err := client.GET("/api/v1/accounts/" + itoa(id))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			ID      int64  `json:"id"`
			Name    string `json:"name"`
			Balance int64  `json:"balance"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, id, result.Data.ID)
	assert.Equal(t, name, result.Data.Name)
	assert.Equal(t, int64(500), result.Data.Balance)
}

func TestAccounts_Get_NotFound(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/accounts/999999999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}
