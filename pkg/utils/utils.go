package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var levelStyles = map[string]lipgloss.Style{
	"INFO": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("87")).
		Foreground(lipgloss.Color("16")),
	"WARN": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("0")),
	"ERRO": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("204")).
		Foreground(lipgloss.Color("0")),
	"DEBU": lipgloss.NewStyle().
		Padding(0, 1, 0, 1).
		Bold(true).
		MaxWidth(80).
		Background(lipgloss.Color("63")).
		Foreground(lipgloss.Color("0")),
}

// ColorizeLogs styles the level tag of each captured log line for the
// dashboard viewport. Lines already carrying ANSI codes are left alone.
func ColorizeLogs(logs []string) []string {
	for i, line := range logs {
		if strings.Contains(line, "\x1b[") {
			continue
		}
		for tag, style := range levelStyles {
			if strings.Contains(line, tag) {
				logs[i] = strings.Replace(line, tag, style.Render(tag), 1)
				break
			}
		}
	}
	return logs
}

// FormatTimeLeft renders the remaining auction time as "2h 05m" style
// text, or "Ended" once the end time has passed.
func FormatTimeLeft(end time.Time, now time.Time) string {
	left := end.Sub(now)
	if left <= 0 {
		return "Ended"
	}
	left = left.Round(time.Minute)
	h := int(left.Hours())
	m := int(left.Minutes()) % 60
	if h == 0 {
		return strconv.Itoa(m) + "m"
	}
	mm := strconv.Itoa(m)
	if m < 10 {
		mm = "0" + mm
	}
	return strconv.Itoa(h) + "h " + mm + "m"
}

// FormatPrice renders an integer dollar amount with thousands
// separators, e.g. 98000 -> "$98,000".
func FormatPrice(amount int) string {
	s := strconv.Itoa(amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
