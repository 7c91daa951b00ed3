package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"taskdeck/internal/client"
	"taskdeck/internal/form"
	"taskdeck/internal/models"
)

func main() {
	cmd := flag.String("cmd", "list", "Command: register|login|logout|tags|list|create|update|delete")
	username := flag.String("user", "", "Username (for register/login)")
	email := flag.String("email", "", "Email (for register)")
	password := flag.String("pass", "", "Password (for register/login)")
	title := flag.String("title", "", "Task title (for create/update)")
	content := flag.String("content", "", "Task content (for create/update)")
	tag := flag.String("tag", "", "Tag id (for create)")
	status := flag.String("status", "", "Task status: PENDING|IN_PROGRESS|COMPLETED")
	id := flag.Int("id", 0, "Task id (for update/delete)")
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	flag.Parse()

	cfg := client.LoadConfig()
	if *serverFlag != "" {
		cfg.Server = *serverFlag
	}
	c := client.New(cfg.Server)
	c.SetToken(client.LoadToken())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch *cmd {
	case "register":
		err = doRegister(ctx, c, *username, *email, *password)
	case "login":
		err = doLogin(ctx, c, *username, *password)
	case "logout":
		err = client.ClearToken()
	case "tags":
		err = doTags(ctx, c)
	case "list":
		err = doList(ctx, c)
	case "create":
		err = doCreate(ctx, c, *title, *content, *tag, *status)
	case "update":
		err = doUpdate(ctx, c, *id, *title, *content, *status)
	case "delete":
		err = c.DeleteTask(ctx, *id)
	default:
		err = fmt.Errorf("unknown command %q", *cmd)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func doRegister(ctx context.Context, c *client.Client, username, email, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("--user and --pass required")
	}
	if err := c.Register(ctx, username, email, password); err != nil {
		return err
	}
	fmt.Println("Account created:", username)
	return nil
}

func doLogin(ctx context.Context, c *client.Client, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("--user and --pass required")
	}
	token, err := c.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := client.SaveToken(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	fmt.Println("Logged in as", username)
	return nil
}

func doTags(ctx context.Context, c *client.Client) error {
	tags, err := c.ListTags(ctx)
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Printf("%d\t%s\n", t.ID, t.Name)
	}
	return nil
}

func doList(ctx context.Context, c *client.Client) error {
	rows, err := c.ListTasks(ctx)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Printf("%d\t[%s]\t%s\t(%s)\n", r.ID, r.Status, r.Title, r.TagName)
	}
	return nil
}

// doCreate runs the create through the same form controller the TUI uses, so
// the CLI gets identical validation and notifications.
func doCreate(ctx context.Context, c *client.Client, title, content, tag, status string) error {
	ctrl := form.NewController(c, c, c, consoleNotifier{})
	if err := ctrl.LoadTags(ctx); err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	ctrl.SetTitle(title)
	ctrl.SetContent(content)
	ctrl.SetTag(tag)
	ctrl.SetStatus(models.TaskStatus(status))

	switch ctrl.Submit(ctx) {
	case form.OutcomeInvalid:
		for field, msg := range ctrl.FieldErrors() {
			fmt.Printf("%s: %s\n", field, msg)
		}
		return fmt.Errorf("task not created")
	case form.OutcomeFailure:
		return fmt.Errorf("task not created")
	}
	return nil
}

func doUpdate(ctx context.Context, c *client.Client, id int, title, content, status string) error {
	if id == 0 {
		return fmt.Errorf("--id required")
	}
	var tp, cp *string
	var sp *models.TaskStatus
	if title != "" {
		tp = &title
	}
	if content != "" {
		cp = &content
	}
	if status != "" {
		st := models.TaskStatus(status)
		sp = &st
	}
	if err := c.UpdateTask(ctx, id, tp, cp, sp); err != nil {
		return err
	}
	fmt.Println("Task", strconv.Itoa(id), "updated")
	return nil
}

// consoleNotifier prints form notifications to stdout.
type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println(msg) }
func (consoleNotifier) Error(err error)    { fmt.Println("Error:", err) }
