package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\nPlayers: %d\n", v.Status, v.Players)
	case Villages:
		for _, name := range v {
			fmt.Fprintln(o.w, name)
		}
	case RegisterResult:
		fmt.Fprintf(o.w, "Registered #%d %s (%s)\n", v.Player.ID, v.Player.Name, v.Player.Village)
	case PlayerList:
		o.printPlayers(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayers(l PlayerList) {
	fmt.Fprintf(o.w, "Players: %d\n", l.Count)
	if len(l.Players) == 0 {
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"ID", "NAME", "PHONE", "VILLAGE", "TEAM", "CREATED"}, "\t"))
	for _, p := range l.Players {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, deref(p.Phone), p.Village, deref(p.Team), p.CreatedAt)
	}
	_ = tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

// Villages response type
type Villages []string

// Player response type (matches API)
type Player struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Village   string  `json:"village"`
	Team      *string `json:"team"`
	CreatedAt string  `json:"created_at"`
}

// RegisterResult response type
type RegisterResult struct {
	Status string `json:"status"`
	Player Player `json:"player"`
}

// PlayerList response type
type PlayerList struct {
	Count   int      `json:"count"`
	Players []Player `json:"players"`
}
