package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mn-works/earnbot/internal/config"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
)

// AdminDashboard is the admin overview aggregate.
type AdminDashboard struct {
	TotalUsers         int             `json:"totalUsers"`
	ActiveUsers        int             `json:"activeUsers"`
	PendingWithdrawals int             `json:"pendingWithdrawals"`
	PendingPackages    int             `json:"pendingPackages"`
	TotalPayout        decimal.Decimal `json:"totalPayout"`
}

// UserPage is one page of the server-side searched user listing.
type UserPage struct {
	Users      []domain.User `json:"users"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	TotalUsers int           `json:"totalUsers"`
}

type TaskInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        domain.TaskType `json:"type"`
	URL         string          `json:"url,omitempty"`
	Duration    int             `json:"duration"`
	IsActive    bool            `json:"isActive"`
}

// ImportResult is the per-row outcome of a bulk task import, rendered
// verbatim on the admin screen.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

func (c *Client) AdminDashboard(ctx context.Context, token string) (*AdminDashboard, error) {
	var d AdminDashboard
	if err := c.get(ctx, token, "/admin/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string, page int, search string) (*UserPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(config.UsersPerPage))
	if search != "" {
		query.Set("search", search)
	}
	var up UserPage
	if err := c.get(ctx, token, "/admin/users", query, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (c *Client) ToggleUserStatus(ctx context.Context, token, userID string) error {
	return c.put(ctx, token, "/admin/users/toggle-status", map[string]string{"userId": userID}, nil)
}

func (c *Client) AdminWithdrawals(ctx context.Context, token string, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	var resp struct {
		Withdrawals []domain.Withdrawal `json:"withdrawals"`
	}
	if err := c.get(ctx, token, "/admin/withdrawals", query, &resp); err != nil {
		return nil, err
	}
	return resp.Withdrawals, nil
}

func (c *Client) UpdateWithdrawal(ctx context.Context, token, withdrawalID string, status domain.WithdrawalStatus, remarks string) error {
	payload := map[string]string{
		"withdrawalId": withdrawalID,
		"status":       string(status),
		"remarks":      remarks,
	}
	return c.put(ctx, token, "/admin/withdrawals/update", payload, nil)
}

// PendingPackages lists purchase transactions awaiting approval, with the
// submitted proof populated for review.
func (c *Client) PendingPackages(ctx context.Context, token string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := c.get(ctx, token, "/admin/packages/pending", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) ApprovePackage(ctx context.Context, token, userID, packageID string) error {
	payload := map[string]string{"userId": userID, "packageId": packageID}
	return c.put(ctx, token, "/admin/packages/approve", payload, nil)
}

func (c *Client) AdminTransactions(ctx context.Context, token string, txType domain.TxType) ([]domain.Transaction, error) {
	query := url.Values{}
	if txType != "" {
		query.Set("type", string(txType))
	}
	var txs []domain.Transaction
	if err := c.get(ctx, token, "/admin/transactions", query, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) AdminTasks(ctx context.Context, token string) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.get(ctx, token, "/admin/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, input TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.post(ctx, token, "/admin/tasks", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, taskID string, input TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.put(ctx, token, "/admin/tasks/"+taskID, input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, taskID string) error {
	return c.delete(ctx, token, "/admin/tasks/"+taskID)
}

func (c *Client) ToggleTask(ctx context.Context, token, taskID string) error {
	return c.put(ctx, token, "/admin/tasks/"+taskID+"/toggle", nil, nil)
}

// ValidImportFilename gates bulk imports on the spreadsheet extensions the
// backend accepts. Checked before any bytes are uploaded.
func ValidImportFilename(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls")
}

// ImportTasks uploads a spreadsheet of tasks and returns the backend's
// per-row import outcome.
func (c *Client) ImportTasks(ctx context.Context, token, filename string, file []byte) (*ImportResult, error) {
	if !ValidImportFilename(filename) {
		return nil, domain.ErrInvalidImportFile
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/tasks/import", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("import tasks: %w", err)
	}
	defer resp.Body.Close()

	var result ImportResult
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
