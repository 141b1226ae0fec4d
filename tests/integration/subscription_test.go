//go:build integration

package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vindheg/dth-render/internal/testutil"
)

type subscribeResult struct {
	Data struct {
		NewBalance int64 `json:"new_balance"`
	} `json:"data"`
}

type balanceResult struct {
	Data struct {
		Balance     int64  `json:"balance"`
		RechargeDue string `json:"recharge_due"`
	} `json:"data"`
}

func subscribe(t *testing.T, client *testutil.Client, userID, channelID, price int64) *http.Response {
	t.Helper()
	resp, err := client.POST("/api/v1/accounts/"+itoa(userID)+"/subscriptions", map[string]interface{}{
		"channel_id": channelID,
		"price":      price,
	})
	require.NoError(t, err)
	return resp
}

func getBalance(t *testing.T, client *testutil.Client, userID int64) balanceResult {
	t.Helper()
	resp, err := client.GET("/api/v1/accounts/" + itoa(userID) + "/balance")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result balanceResult
	testutil.DecodeJSON(t, resp, &result)
	return result
}

// Covers the core scenario: balance 500, a 300 channel subscribed
// leaves 200, and a 250 channel is then rejected for insufficient
// funds without touching the balance.
func TestSubscription_Flow(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	sports := createChannel(t, testutil.RandomName("sports"), 300)
	movies := createChannel(t, testutil.RandomName("movies"), 250)

	resp := subscribe(t, client, userID, sports, 300)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result subscribeResult
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, int64(200), result.Data.NewBalance)

	resp = subscribe(t, client, userID, movies, 250)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	balance := getBalance(t, client, userID)
	assert.Equal(t, int64(200), balance.Data.Balance)
	assert.NotEmpty(t, balance.Data.RechargeDue)
}

func TestSubscription_Duplicate_Rejected(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	channelID := createChannel(t, testutil.RandomName("channel"), 100)

	resp := subscribe(t, client, userID, channelID, 100)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = subscribe(t, client, userID, channelID, 100)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	// The failed duplicate must not debit anything.
	balance := getBalance(t, client, userID)
	assert.Equal(t, int64(400), balance.Data.Balance)

	resp, err := client.GET("/api/v1/accounts/" + itoa(userID) + "/subscriptions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &list)
	assert.Len(t, list.Data, 1)
}

func TestSubscription_PriceMismatch_Rejected(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	channelID := createChannel(t, testutil.RandomName("channel"), 300)

	resp := subscribe(t, client, userID, channelID, 1)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	balance := getBalance(t, client, userID)
	assert.Equal(t, int64(500), balance.Data.Balance)
}

func TestSubscription_AccountNotFound(t *testing.T) {
	client := newTestClient(t)
	channelID := createChannel(t, testutil.RandomName("channel"), 100)

	resp := subscribe(t, client, 999999999, channelID, 100)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSubscription_Unsubscribe_NoRefund(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	channelID := createChannel(t, testutil.RandomName("channel"), 300)

	resp := subscribe(t, client, userID, channelID, 300)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err := client.DELETE("/api/v1/accounts/" + itoa(userID) + "/subscriptions/" + itoa(channelID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Unsubscribing is non-refundable.
	balance := getBalance(t, client, userID)
	assert.Equal(t, int64(200), balance.Data.Balance)

	// Resubscribing pays again: 200 < 300 means insufficient funds.
	resp = subscribe(t, client, userID, channelID, 300)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSubscription_Unsubscribe_NeverSubscribed(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	channelID := createChannel(t, testutil.RandomName("channel"), 100)

	resp, err := client.DELETE("/api/v1/accounts/" + itoa(userID) + "/subscriptions/" + itoa(channelID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSubscription_List(t *testing.T) {
	client := newTestClient(t)
	userID, _ := signupAccount(t, client)
	first := createChannel(t, testutil.RandomName("first"), 100)
	second := createChannel(t, testutil.RandomName("second"), 100)

	resp := subscribe(t, client, userID, first, 100)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = subscribe(t, client, userID, second, 100)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err := client.GET("/api/v1/accounts/" + itoa(userID) + "/subscriptions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Data []struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &list)
	require.Len(t, list.Data, 2)
	assert.Equal(t, first, list.Data[0].ID, "subscriptions are listed in insertion order")
	assert.Equal(t, second, list.Data[1].ID)
}

func TestSubscription_GetBalance_NotFound(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/accounts/999999999/balance")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

// TestSubscription_Concurrent asserts the balance invariant end to end:
// many parallel subscribes against one account may each see enough
// balance, but the conditional debit allows only as many as the funds
// cover, and the balance never goes negative.
func TestSubscription_Concurrent(t *testing.T) {
	const (
		price    = 200
		attempts = 5
	)

	client := newTestClient(t)
	userID, _ := signupAccount(t, client) // balance 500

	channels := make([]int64, attempts)
	for i := range channels {
		channels[i] = createChannel(t, testutil.RandomName("concurrent"), price)
	}

	var wg sync.WaitGroup
	statuses := make(chan int, attempts)

	for _, channelID := range channels {
		wg.Add(1)
		go func(channelID int64) {
			defer wg.Done()
			c := newTestClient(t)
			resp := subscribe(t, c, userID, channelID, price)
			statuses <- resp.StatusCode
			_ = resp.Body.Close()
		}(channelID)
	}

	wg.Wait()
	close(statuses)

	var successes int
	for status := range statuses {
		if status == http.StatusOK {
			successes++
		} else {
			assert.Equal(t, http.StatusBadRequest, status)
		}
	}

	assert.Equal(t, 2, successes, "500 of balance covers exactly two 200 channels")

	balance := getBalance(t, client, userID)
	assert.GreaterOrEqual(t, balance.Data.Balance, int64(0))
	assert.Equal(t, int64(500-price*successes), balance.Data.Balance)
}
