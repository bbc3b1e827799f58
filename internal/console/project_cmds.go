package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"smbsuite/internal/api"
)

func (c *Console) cmdProjects(ctx context.Context, args []string) error {
	list, err := c.backend.ListProjects(ctx)
	if err != nil {
		return err
	}
	c.projects = list
	if len(list) == 0 {
		c.println(c.msg.T("projects.empty"))
		return nil
	}
	for i, p := range list {
		c.printf("%d. %s\n", i+1, p.Name)
	}
	return nil
}

func (c *Console) cmdAddProject(ctx context.Context, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return usage("add-project")
	}
	if _, err := c.backend.CreateProject(ctx, name); err != nil {
		return err
	}
	c.println(c.msg.T("projects.added", name))
	return nil
}

// cmdTasks 按看板列输出任务 / cmdTasks prints tasks grouped by kanban column
func (c *Console) cmdTasks(ctx context.Context, args []string) error {
	list, err := c.backend.ListTasks(ctx, api.TaskFilter{})
	if err != nil {
		return err
	}
	c.tasks = list
	groups := api.GroupTasks(list)
	for _, col := range api.TaskColumns {
		c.printf("%s (%d)\n", col, len(groups[col]))
		if len(groups[col]) == 0 {
			c.println(c.msg.T("tasks.empty_column"))
			continue
		}
		// 序号沿用列表位置，供 /move-task 使用
		for i, t := range list {
			if t.Status == col {
				c.printf("  %d. %s · %s\n", i+1, t.Title, c.msg.T("tasks.priority", t.Priority))
			}
		}
	}
	return nil
}

func (c *Console) cmdAddTask(ctx context.Context, args []string) error {
	fields, rest := parseFields(args)
	title := strings.TrimSpace(fields["title"])
	if title == "" && len(rest) > 0 {
		title = strings.Join(rest, " ")
	}
	if title == "" {
		return fmt.Errorf("%s", c.msg.T("tasks.title_required"))
	}
	projectID, err := c.resolveProject(fields["project"])
	if err != nil {
		return err
	}
	task := api.NewTask(projectID, title)
	if p := strings.TrimSpace(fields["priority"]); p != "" {
		task.Priority = p
	}
	if s := strings.TrimSpace(fields["status"]); s != "" {
		task.Status = s
	}
	if _, err := c.backend.CreateTask(ctx, task); err != nil {
		return err
	}
	c.println(c.msg.T("tasks.added", title))
	return nil
}

// resolveProject 接受 /projects 中的序号或项目 id；为空表示不关联项目
// resolveProject accepts a /projects position or a project id; empty means no project
func (c *Console) resolveProject(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if idx, ok := parseIndex(raw, len(c.projects)); ok {
		return c.projects[idx].ID, nil
	}
	if _, err := strconv.Atoi(raw); err == nil {
		return "", fmt.Errorf("%s", c.msg.T("projects.not_found", raw))
	}
	return raw, nil
}

func (c *Console) cmdMoveTask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("move-task")
	}
	idx, ok := parseIndex(args[0], len(c.tasks))
	if !ok {
		return fmt.Errorf("%s", c.msg.T("tasks.not_found", args[0]))
	}
	status := strings.Join(args[1:], " ")
	valid := false
	for _, col := range api.TaskColumns {
		if strings.EqualFold(col, status) {
			status, valid = col, true
		}
	}
	if !valid {
		return usage("move-task")
	}
	task := c.tasks[idx]
	task.Status = status
	if _, err := c.backend.UpdateTask(ctx, task.ID, task); err != nil {
		return err
	}
	c.tasks[idx] = task
	c.println(c.msg.T("tasks.moved", task.Title, status))
	return nil
}
