package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// 看板列，按显示顺序 / kanban columns in display order
const (
	TaskToDo       = "To Do"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
)

// TaskColumns 看板列顺序 / TaskColumns is the kanban column order
var TaskColumns = []string{TaskToDo, TaskInProgress, TaskCompleted}

// 任务优先级 / task priorities
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Project struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

type Task struct {
	ID        string `json:"_id,omitempty"`
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
}

// NewTask 新任务的默认值：Medium / To Do
// NewTask returns a task with the default Medium priority and To Do status
func NewTask(projectID, title string) Task {
	return Task{ProjectID: projectID, Title: title, Priority: PriorityMedium, Status: TaskToDo}
}

// TaskFilter GET /tasks 的查询条件
// TaskFilter holds the GET /tasks query
type TaskFilter struct {
	ProjectID string
	Status    string
}

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.Do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Project{}
	}
	return out, nil
}

func (c *Client) CreateProject(ctx context.Context, name string) (Project, error) {
	var out Project
	err := c.Do(ctx, http.MethodPost, "/projects", Project{Name: name}, &out)
	return out, err
}

func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	values := url.Values{}
	if p := strings.TrimSpace(filter.ProjectID); p != "" {
		values.Set("project_id", p)
	}
	if s := strings.TrimSpace(filter.Status); s != "" {
		values.Set("status", s)
	}
	var out []Task
	if err := c.Do(ctx, http.MethodGet, withQuery("/tasks", values), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Task{}
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, task Task) (Task, error) {
	task.ID = ""
	var out Task
	err := c.Do(ctx, http.MethodPost, "/tasks", task, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, task Task) (Task, error) {
	task.ID = ""
	var out Task
	err := c.Do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), task, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// GroupTasks 按看板列分组；未知状态的任务不出现在任何列中
// GroupTasks buckets tasks by kanban column; tasks with unknown statuses are left out
func GroupTasks(tasks []Task) map[string][]Task {
	out := make(map[string][]Task, len(TaskColumns))
	for _, col := range TaskColumns {
		out[col] = nil
	}
	for _, t := range tasks {
		if _, ok := out[t.Status]; ok {
			out[t.Status] = append(out[t.Status], t)
		}
	}
	return out
}
