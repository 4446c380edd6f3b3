package models

import "fmt"

type AlertKind string

const (
	AlertMessage   AlertKind = "message"
	AlertOwnership AlertKind = "ownership"
	AlertLiveStat  AlertKind = "live_stat"
)

// Alert is a tagged union. Kind selects which of Message, Ownership or
// LiveStat is populated.
type Alert struct {
	Kind      AlertKind       `json:"kind"`
	Message   string          `json:"message,omitempty"`
	Ownership *OwnershipEvent `json:"ownership,omitempty"`
	LiveStat  *LiveStatEvent  `json:"live_stat,omitempty"`
}

type OwnershipEvent struct {
	PlayerID  string  `json:"player_id"`
	Ownership float64 `json:"ownership"`
	Type      string  `json:"type"`
	Week      int     `json:"week"`
}

type LiveStatEvent struct {
	PlayerID      string `json:"player_id"`
	Touchdowns    int    `json:"td"`
	Fumbles       int    `json:"fumble"`
	Interceptions int    `json:"interception"`
}

func NewMessageAlert(message string) Alert {
	return Alert{Kind: AlertMessage, Message: message}
}

func NewOwnershipAlert(e OwnershipEvent) Alert {
	return Alert{Kind: AlertOwnership, Ownership: &e}
}

func NewLiveStatAlert(e LiveStatEvent) Alert {
	return Alert{Kind: AlertLiveStat, LiveStat: &e}
}

// Text renders the alert as the Markdown string sent to the chat.
func (a Alert) Text() string {
	switch {
	case a.Kind == AlertOwnership && a.Ownership != nil:
		o := a.Ownership
		return fmt.Sprintf("⚠️ Player *%s*\nOwnership: %.1f%%\nTransaction: %s\nWeek: %d",
			o.PlayerID, o.Ownership, o.Type, o.Week)
	case a.Kind == AlertLiveStat && a.LiveStat != nil:
		l := a.LiveStat
		return fmt.Sprintf("⚡ Player %s | TD: %d | Fumble: %d | Interception: %d",
			l.PlayerID, l.Touchdowns, l.Fumbles, l.Interceptions)
	default:
		return a.Message
	}
}
