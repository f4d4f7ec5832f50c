package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/luxeauction/marketplace/configs"
	"github.com/luxeauction/marketplace/internal/auth"
	"github.com/luxeauction/marketplace/internal/exports"
	"github.com/luxeauction/marketplace/internal/filter"
	"github.com/luxeauction/marketplace/internal/storage"
	"github.com/luxeauction/marketplace/internal/store"
	"github.com/luxeauction/marketplace/internal/urlstate"
	"github.com/luxeauction/marketplace/pkg/utils"
)

var (
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

var sortCycle = []string{
	filter.SortTimeLeft,
	filter.SortPriceLow,
	filter.SortPriceHigh,
	filter.SortMileage,
	filter.SortNewest,
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Every(1*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Dashboard model: a listings table plus a captured-log viewport.
type model struct {
	marketplace *store.Store
	cfg         *configs.Config
	table       table.Model
	viewport    viewport.Model
	logBuffer   *bytes.Buffer
	logs        []string
	showTable   bool
	quitting    bool
}

func (m model) Init() tea.Cmd {
	return tick()
}

func newDashboard(marketplace *store.Store, cfg *configs.Config) model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "VEHICLE", Width: 28},
		{Title: "CURRENT BID", Width: 14},
		{Title: "RESERVE", Width: 12},
		{Title: "TIME LEFT", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(listingRows(marketplace)),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	vp := viewport.New(100, 15)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		PaddingRight(2)

	return model{marketplace: marketplace, cfg: cfg, table: t, showTable: true, viewport: vp}
}

func listingRows(marketplace *store.Store) []table.Row {
	now := time.Now()
	cars := marketplace.FilteredCars()

	rows := make([]table.Row, 0, len(cars))
	for _, car := range cars {
		reserve := "not met"
		if car.ReserveMet() {
			reserve = "met"
		}

		id := car.ID
		if len(id) > 8 {
			id = id[:8]
		}

		rows = append(rows, table.Row{
			id,
			car.Title(),
			utils.FormatPrice(car.CurrentBid),
			reserve,
			utils.FormatTimeLeft(car.EndTime, now),
		})
	}
	return rows
}

func (m model) refreshLogs() model {
	m.logs = strings.Split(m.logBuffer.String(), "\n")
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)
	switch msg := msg.(type) {
	case tickMsg:
		if m.showTable {
			m.table.SetRows(listingRows(m.marketplace))
		} else {
			m = m.refreshLogs()
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			if !m.showTable {
				m.viewport.LineUp(1)
			}
		case "down":
			if !m.showTable {
				m.viewport.LineDown(1)
			}
		case "tab":
			m.showTable = !m.showTable
			if !m.showTable {
				m = m.refreshLogs()
			}
		case "s":
			next := nextSortKey(m.marketplace.SortBy())
			m.marketplace.SetSortBy(next)
			m.table.SetRows(listingRows(m.marketplace))
		case "c":
			f := m.marketplace.Filters()
			f.CarfaxVerified = !f.CarfaxVerified
			m.marketplace.SetFilters(f)
			m.table.SetRows(listingRows(m.marketplace))
		case "r":
			f := m.marketplace.Filters()
			f.ReserveMet = !f.ReserveMet
			m.marketplace.SetFilters(f)
			m.table.SetRows(listingRows(m.marketplace))
		case "e":
			dir := m.cfg.Persistence.ExportDir
			if path, err := exports.WriteListingsFile(dir, m.marketplace.Cars()); err != nil {
				log.Error("Listings export failed: ", err)
			} else {
				log.Infof("Listings exported to %s", path)
			}
			if path, err := exports.WriteBidsFile(dir, m.marketplace.Cars(), m.marketplace.AllBids()); err != nil {
				log.Error("Bids export failed: ", err)
			} else {
				log.Infof("Bids exported to %s", path)
			}
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.showTable {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func nextSortKey(current string) string {
	for i, key := range sortCycle {
		if key == current {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

func (m model) View() string {
	help := helpStyle.Render("• tab: logs • s: sort • c/r: filters • e: export • q: exit\n")
	if m.quitting {
		return "Bye!\n"
	}
	if m.showTable {
		return baseStyle.Render(m.table.View()) + "\n" + help
	}

	styledLogs := make([]string, len(m.logs))
	copy(styledLogs, m.logs)
	styledLogs = utils.ColorizeLogs(styledLogs)

	// only show last 15 lines of logs
	if len(styledLogs) > 15 {
		styledLogs = styledLogs[len(styledLogs)-15:]
	}

	m.viewport.SetContent(strings.Join(styledLogs, "\n"))
	return m.viewport.View() + "\n" + help
}

func main() {
	// `marketplace hash <password>` prints a credential hash for the
	// admin config and exits.
	if len(os.Args) > 2 && os.Args[1] == "hash" {
		hash, err := auth.HashPassword(os.Args[2])
		if err != nil {
			log.Fatal("Failed to hash password: ", err)
		}
		fmt.Println(hash)
		return
	}

	// Load configurations
	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	// Setup logger
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "debug"
	}
	logLevel, err := log.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		log.Error("Invalid log level: ", err)
	}
	log.SetLevel(logLevel)

	// Redirect logs to buffer for the dashboard viewport
	logBuffer := new(bytes.Buffer)
	log.SetOutput(logBuffer)

	// Select the local store backend
	var local storage.LocalStore
	switch cfg.Persistence.Backend {
	case "sqlite":
		local, err = storage.NewSQLiteStore(cfg.Persistence.SQLitePath)
		if err != nil {
			log.Fatal("Error opening local store: ", err)
		}
	default:
		local = storage.NewMemoryStore()
	}
	defer local.Close()

	authMgr, err := auth.NewManager(cfg)
	if err != nil {
		log.Fatal("Error building auth manager: ", err)
	}

	// LUXE_QUERY simulates opening a shared deep link, e.g.
	// LUXE_QUERY="make=porsche&reserveMet=true&sort=priceHigh"
	urls := urlstate.NewMemoryURL(os.Getenv("LUXE_QUERY"))

	marketplace := store.New(cfg, authMgr, local, urls)
	defer marketplace.Close()

	log.Infof("Marketplace loaded with %d listings", len(marketplace.Cars()))

	m := newDashboard(marketplace, cfg)
	m.logBuffer = logBuffer
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
