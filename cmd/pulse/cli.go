package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rcliao/pulse/internal/domain"
	"github.com/rcliao/pulse/internal/insight"
	"github.com/rcliao/pulse/internal/service"
)

// cliUserID is the single local user the interactive mode works as.
const cliUserID = "local"

var (
	overdueColor = color.New(color.FgRed, color.Bold)
	urgentColor  = color.New(color.FgYellow)
	soonColor    = color.New(color.FgCyan)
	doneColor    = color.New(color.FgGreen)
	tipColor     = color.New(color.FgMagenta)
)

func runCLI(tasks *service.TaskService, insights *service.InsightService) {
	fmt.Println("Pulse CLI started")
	fmt.Println("Type 'help' for available commands or 'quit' to exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("pulse> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			fmt.Println("Goodbye!")
			break
		}
		if input == "help" {
			printHelp()
			continue
		}

		if err := handleCommand(tasks, insights, input); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  help                         - Show this help")
	fmt.Println("  quit/exit                    - Exit")
	fmt.Println()
	fmt.Println("  add <title>                  - Add a task (medium priority)")
	fmt.Println("  list                         - Ranked pending tasks, then completed ones")
	fmt.Println("  done <id>                    - Mark a task completed")
	fmt.Println("  reopen <id>                  - Reopen a completed task")
	fmt.Println("  rm <id>                      - Delete a task")
	fmt.Println("  priority <id> <high|medium|low>")
	fmt.Println("  due <id> <2006-01-02T15:04>  - Set a deadline (local time)")
	fmt.Println("  due <id> none                - Clear the deadline")
	fmt.Println("  estimate <id> <hours>        - Set the effort estimate")
	fmt.Println()
	fmt.Println("  alerts                       - Deadline alerts")
	fmt.Println("  tip                          - Today's coaching tip")
	fmt.Println("  stats                        - Trend, histogram, and completion rate")
	fmt.Println()
	fmt.Println("IDs may be abbreviated to any unique prefix.")
}

func handleCommand(tasks *service.TaskService, insights *service.InsightService, input string) error {
	parts := strings.SplitN(input, " ", 2)
	command := parts[0]
	rest := ""
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}

	switch command {
	case "add":
		return cmdAdd(tasks, rest)
	case "list":
		return cmdList(tasks, insights)
	case "done":
		return cmdSetCompleted(tasks, rest, true)
	case "reopen":
		return cmdSetCompleted(tasks, rest, false)
	case "rm":
		return cmdDelete(tasks, rest)
	case "priority":
		return cmdPriority(tasks, rest)
	case "due":
		return cmdDue(tasks, rest)
	case "estimate":
		return cmdEstimate(tasks, rest)
	case "alerts":
		return cmdAlerts(insights)
	case "tip":
		return cmdTip(insights)
	case "stats":
		return cmdStats(insights)
	default:
		return fmt.Errorf("unknown command %q, try 'help'", command)
	}
}

func cmdAdd(tasks *service.TaskService, title string) error {
	task, err := tasks.Create(cliUserID, service.CreateTaskInput{Title: title})
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", task.Title, shortID(task.ID))
	return nil
}

func cmdList(tasks *service.TaskService, insights *service.InsightService) error {
	ranked, err := insights.Ranked(cliUserID)
	if err != nil {
		return err
	}

	// Completed tasks go after the ranked ones, unranked.
	user := cliUserID
	completed := true
	done, err := tasks.List(domain.TaskFilter{UserID: &user, Completed: &completed})
	if err != nil {
		return err
	}

	if len(ranked) == 0 && len(done) == 0 {
		fmt.Println("No tasks yet. Try 'add <title>'.")
		return nil
	}

	for i, task := range ranked {
		fmt.Printf("%2d. [%s] %s %s%s\n", i+1, shortID(task.ID), task.Title, priorityTag(task.Priority), deadlineTag(task.Deadline))
	}
	for _, task := range done {
		doneColor.Printf("  ✓ [%s] %s\n", shortID(task.ID), task.Title)
	}
	return nil
}

func cmdSetCompleted(tasks *service.TaskService, idPrefix string, completed bool) error {
	id, err := resolveID(tasks, idPrefix)
	if err != nil {
		return err
	}

	var task *domain.Task
	if completed {
		task, err = tasks.Complete(id)
	} else {
		task, err = tasks.Reopen(id)
	}
	if err != nil {
		return err
	}

	if completed {
		doneColor.Printf("Completed %q\n", task.Title)
	} else {
		fmt.Printf("Reopened %q\n", task.Title)
	}
	return nil
}

func cmdDelete(tasks *service.TaskService, idPrefix string) error {
	id, err := resolveID(tasks, idPrefix)
	if err != nil {
		return err
	}
	if err := tasks.Delete(id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func cmdPriority(tasks *service.TaskService, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return fmt.Errorf("usage: priority <id> <high|medium|low>")
	}
	priority := domain.Priority(fields[1])
	if !priority.Known() {
		return fmt.Errorf("unknown priority %q", fields[1])
	}

	id, err := resolveID(tasks, fields[0])
	if err != nil {
		return err
	}
	task, err := tasks.Update(id, domain.TaskUpdate{Priority: &priority})
	if err != nil {
		return err
	}
	fmt.Printf("%q is now %s priority\n", task.Title, task.Priority)
	return nil
}

func cmdDue(tasks *service.TaskService, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return fmt.Errorf("usage: due <id> <2006-01-02T15:04|none>")
	}

	id, err := resolveID(tasks, fields[0])
	if err != nil {
		return err
	}

	upd := domain.TaskUpdate{}
	if fields[1] == "none" {
		upd.ClearDeadline = true
	} else {
		deadline, err := time.ParseInLocation("2006-01-02T15:04", fields[1], time.Local)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: %w", fields[1], err)
		}
		upd.Deadline = &deadline
	}

	task, err := tasks.Update(id, upd)
	if err != nil {
		return err
	}
	if task.Deadline == nil {
		fmt.Printf("%q has no deadline\n", task.Title)
	} else {
		fmt.Printf("%q due %s\n", task.Title, task.Deadline.Format("Mon Jan 2 15:04"))
	}
	return nil
}

func cmdEstimate(tasks *service.TaskService, rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return fmt.Errorf("usage: estimate <id> <hours>")
	}
	hours, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", fields[1], err)
	}

	id, err := resolveID(tasks, fields[0])
	if err != nil {
		return err
	}
	task, err := tasks.Update(id, domain.TaskUpdate{EstimatedHours: &hours})
	if err != nil {
		return err
	}
	fmt.Printf("%q estimated at %.1fh\n", task.Title, task.EstimatedHours)
	return nil
}

func cmdAlerts(insights *service.InsightService) error {
	alerts, err := insights.Alerts(cliUserID)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Println("No deadline alerts.")
		return nil
	}
	for _, alert := range alerts {
		switch alert.Kind {
		case insight.AlertOverdue:
			overdueColor.Println(alert.Message)
		case insight.AlertUrgent:
			urgentColor.Println(alert.Message)
		default:
			soonColor.Println(alert.Message)
		}
	}
	return nil
}

func cmdTip(insights *service.InsightService) error {
	tip, err := insights.Tip(cliUserID)
	if err != nil {
		return err
	}
	tipColor.Println(tip)
	return nil
}

func cmdStats(insights *service.InsightService) error {
	stats, err := insights.Analytics(cliUserID)
	if err != nil {
		return err
	}

	fmt.Printf("Tasks: %d total, %d completed (%d%%)\n", stats.Total, stats.Completed, stats.Rate)
	fmt.Println("By priority:")
	for _, bucket := range stats.ByPriority {
		fmt.Printf("  %-6s %d\n", bucket.Name, bucket.Value)
	}
	fmt.Println("Last 7 days (added/completed):")
	for _, point := range stats.CompletionTrend {
		fmt.Printf("  %s  +%d  ✓%d\n", point.Day, point.AddedCount, point.CompletedCount)
	}
	return nil
}

// resolveID expands a unique ID prefix to the full task ID.
func resolveID(tasks *service.TaskService, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("missing task ID")
	}

	user := cliUserID
	all, err := tasks.List(domain.TaskFilter{UserID: &user})
	if err != nil {
		return "", err
	}

	var match string
	for _, task := range all {
		if strings.HasPrefix(task.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ID prefix %q is ambiguous", prefix)
			}
			match = task.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no task matches ID %q", prefix)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func priorityTag(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return overdueColor.Sprint("(high)")
	case domain.PriorityMedium:
		return "(medium)"
	default:
		return "(" + string(p) + ")"
	}
}

func deadlineTag(deadline *time.Time) string {
	if deadline == nil {
		return ""
	}
	return " due " + deadline.Format("Jan 2 15:04")
}
