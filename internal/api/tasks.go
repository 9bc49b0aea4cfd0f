package api

import (
	"context"

	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
)

// AvailableTasks is the tasks screen payload: the task list plus today's
// quota standing and the flat per-task reward.
type AvailableTasks struct {
	Tasks               []domain.Task   `json:"tasks"`
	TasksCompletedToday int             `json:"tasksCompletedToday"`
	TasksAllowed        int             `json:"tasksAllowed"`
	TasksRemaining      int             `json:"tasksRemaining"`
	RewardPerTask       decimal.Decimal `json:"rewardPerTask"`
}

type startTaskRequest struct {
	TaskID string `json:"taskId"`
}

type StartTaskResponse struct {
	UserTask domain.UserTask `json:"userTask"`
}

type completeTaskRequest struct {
	UserTaskID string `json:"userTaskId"`
}

// CompleteTaskResponse carries the authoritative wallet balance after the
// reward is credited. The client never recomputes it locally.
type CompleteTaskResponse struct {
	Reward     decimal.Decimal `json:"reward"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

func (c *Client) AvailableTasks(ctx context.Context, token string) (*AvailableTasks, error) {
	var resp AvailableTasks
	if err := c.get(ctx, token, "/tasks/available", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StartTask(ctx context.Context, token, taskID string) (*StartTaskResponse, error) {
	var resp StartTaskResponse
	if err := c.post(ctx, token, "/tasks/start", startTaskRequest{TaskID: taskID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CompleteTask(ctx context.Context, token, userTaskID string) (*CompleteTaskResponse, error) {
	var resp CompleteTaskResponse
	if err := c.post(ctx, token, "/tasks/complete", completeTaskRequest{UserTaskID: userTaskID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) TaskHistory(ctx context.Context, token string) ([]domain.UserTask, error) {
	var history []domain.UserTask
	if err := c.get(ctx, token, "/tasks/history", nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}
