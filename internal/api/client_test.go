package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"_id":"u1","username":"ali"}`)
	}))
	defer srv.Close()

	user, err := New(srv.URL).Profile(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, "ali", user.Username)
}

func TestClientOmitsAuthHeaderWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"token":"t","user":{"_id":"u1"}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
}

func TestClientIdempotencyKeyOnMutations(t *testing.T) {
	var getKey, postKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getKey = r.Header.Get("Idempotency-Key")
			fmt.Fprint(w, `{"tasks":[]}`)
		case http.MethodPost:
			postKey = r.Header.Get("Idempotency-Key")
			fmt.Fprint(w, `{"userTask":{"_id":"ut1"}}`)
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.AvailableTasks(context.Background(), "tok")
	require.NoError(t, err)
	_, err = client.StartTask(context.Background(), "tok", "t1")
	require.NoError(t, err)

	assert.Empty(t, getKey, "GET must not carry an idempotency key")
	require.NotEmpty(t, postKey)
	_, err = uuid.Parse(postKey)
	assert.NoError(t, err, "idempotency key must be a UUID")
}

func TestClientSurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"You have completed all tasks for today"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).StartTask(context.Background(), "tok", "t1")
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "You have completed all tasks for today", apiErr.Message)
	assert.Equal(t, "You have completed all tasks for today", domain.ErrorMessage(err, "fallback"))
}

func TestClientErrorWithoutMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `upstream exploded`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Profile(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, "fallback", domain.ErrorMessage(err, "fallback"))
}

func TestWithdrawalRequestPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/withdrawals/request", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "500", fmt.Sprint(body["amount"]))
		assert.Equal(t, "nayapay", body["method"])
		details := body["accountDetails"].(map[string]any)
		assert.Equal(t, "Ali Khan", details["accountName"])
		assert.Equal(t, "03001234567", details["phoneNumber"])
		_, hasAccountNumber := details["accountNumber"]
		assert.False(t, hasAccountNumber, "empty optional fields must be omitted")

		fmt.Fprint(w, `{"_id":"w1","amount":"500","taxAmount":"40","netAmount":"460","status":"pending"}`)
	}))
	defer srv.Close()

	wd, err := New(srv.URL).RequestWithdrawal(context.Background(), "tok", WithdrawalRequest{
		Amount: decimal.NewFromInt(500),
		Method: "nayapay",
		AccountDetails: domain.AccountDetails{
			AccountName: "Ali Khan",
			PhoneNumber: "03001234567",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "460", wd.NetAmount.String())
	assert.Equal(t, domain.WithdrawalPending, wd.Status)
}

func TestAdminWithdrawalsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"withdrawals":[{"_id":"w1","amount":"300","status":"pending","method":"jazzcash"}]}`)
	}))
	defer srv.Close()

	wds, err := New(srv.URL).AdminWithdrawals(context.Background(), "tok", domain.WithdrawalPending)
	require.NoError(t, err)
	require.Len(t, wds, 1)
	assert.Equal(t, domain.MethodJazzCash, wds[0].Method)
}

func TestValidImportFilename(t *testing.T) {
	assert.True(t, ValidImportFilename("tasks.xlsx"))
	assert.True(t, ValidImportFilename("TASKS.XLS"))
	assert.True(t, ValidImportFilename("batch.2024.xlsx"))
	assert.False(t, ValidImportFilename("tasks.csv"))
	assert.False(t, ValidImportFilename("tasks.xlsx.pdf"))
	assert.False(t, ValidImportFilename("tasks"))
}

func TestImportTasksRejectsBadExtensionLocally(t *testing.T) {
	client := New("http://unused.invalid")
	_, err := client.ImportTasks(context.Background(), "tok", "tasks.pdf", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidImportFile)
}

func TestImportTasksMultipartUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/tasks/import", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "tasks.xlsx", header.Filename)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		fmt.Fprint(w, `{"imported":12,"failed":2,"errors":["row 3: missing title","row 9: bad duration"]}`)
	}))
	defer srv.Close()

	result, err := New(srv.URL).ImportTasks(context.Background(), "tok", "tasks.xlsx", []byte("spreadsheet-bytes"))
	require.NoError(t, err)
	assert.Equal(t, 12, result.Imported)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Errors, 2)
}
