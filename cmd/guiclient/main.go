package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/client"
	"taskdeck/internal/form"
	"taskdeck/internal/tui"
)

func main() {
	serverFlag := flag.String("server", "", "Override server base URL (e.g. https://api.example.com)")
	flag.Parse()

	cfg := client.LoadConfig()
	if *serverFlag != "" {
		cfg.Server = *serverFlag
	}

	c := client.New(cfg.Server)
	c.SetToken(client.LoadToken())
	if !c.IsLoggedIn() {
		fmt.Fprintln(os.Stderr, "Not logged in. Run: client -cmd login -user <name> -pass <password>")
		os.Exit(1)
	}

	notices := tui.NewNotices()
	ctrl := form.NewController(c, c, c, notices)
	defer ctrl.Close()

	p := tea.NewProgram(tui.NewModel(ctrl, notices), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
