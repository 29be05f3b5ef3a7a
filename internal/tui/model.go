package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DoyleJ11/heartz-client/internal/engine"
	"github.com/DoyleJ11/heartz-client/internal/room"
	"github.com/DoyleJ11/heartz-client/internal/seating"
	"github.com/DoyleJ11/heartz-client/pkg/types"
)

const actionTimeout = 5 * time.Second

// Actions is what the keyboard can ask of the room.
type Actions interface {
	Toggle(ctx context.Context, position int) error
	Submit(ctx context.Context) error
	Join(ctx context.Context) error
	JoinBot(ctx context.Context) error
}

type actionDoneMsg struct {
	action string
	err    error
}

type Model struct {
	actions Actions
	self    types.PlayerID

	mode          engine.Mode
	progress      types.Progress
	lobby         room.Lobby
	seats         [seating.Slots]seating.Seat
	current       int
	hand          []types.Card
	selected      []int
	submitEnabled bool
	stack         types.Stack
	scores        [seating.Slots]room.SeatScore

	cursor int
	fault  error
	status string
	closed bool
}

func New(actions Actions, self types.PlayerID) Model {
	m := Model{
		actions: actions,
		self:    self,
		mode:    engine.ModeWaitingForMessage,
		current: seating.NoSlot,
	}
	for i := range m.seats {
		m.seats[i].Slot = i
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case bannerMsg:
		// Every snapshot redraws the banner, so a fault line does not
		// outlive the resync that repairs it.
		m.fault = nil
		if msg.mode != m.mode {
			m.status = ""
		}
		m.mode, m.progress = msg.mode, msg.progress
	case lobbyMsg:
		m.lobby = room.Lobby(msg)
	case seatsMsg:
		m.seats = msg
	case highlightMsg:
		m.current = msg.current
	case handMsg:
		m.hand, m.selected, m.submitEnabled = msg.cards, msg.selected, msg.submitEnabled
		m.cursor = min(m.cursor, max(len(m.hand)-1, 0))
	case stackMsg:
		m.stack = types.Stack(msg)
	case scoresMsg:
		m.scores = msg
	case faultMsg:
		m.fault = msg.err

	case actionDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("%s: %v", msg.action, msg.err)
		}

	case ClosedMsg:
		m.closed = true
		if msg.Err != nil {
			m.fault = msg.Err
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.closed = true
		return m, tea.Quit
	case key.Matches(msg, keys.Left):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.Right):
		m.cursor = min(m.cursor+1, max(len(m.hand)-1, 0))
	case key.Matches(msg, keys.Toggle):
		if len(m.hand) == 0 {
			return m, nil
		}
		pos := m.hand[m.cursor].PositionInDeck
		return m, m.run("select", func(ctx context.Context) error { return m.actions.Toggle(ctx, pos) })
	case key.Matches(msg, keys.Submit):
		return m, m.run("submit", m.actions.Submit)
	case key.Matches(msg, keys.Join):
		return m, m.run("join", m.actions.Join)
	case key.Matches(msg, keys.Bot):
		return m, m.run("add bot", m.actions.JoinBot)
	}
	return m, nil
}

// run calls into the room off the UI goroutine. The room renders through
// the program, so waiting for it here would deadlock.
func (m Model) run(action string, f func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()
		return actionDoneMsg{action: action, err: f(ctx)}
	}
}

func (m Model) View() string {
	if m.closed {
		return ""
	}

	sections := []string{m.bannerView()}
	if m.lobby.Open {
		sections = append(sections, m.lobbyView())
	}
	sections = append(sections, m.tableView(), m.handView())
	if m.fault != nil {
		sections = append(sections, faultStyle.Render("! "+m.fault.Error()))
	}
	if m.status != "" {
		sections = append(sections, hintStyle.Render(m.status))
	}
	sections = append(sections, m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

var modeTitles = map[engine.Mode]string{
	engine.ModeWaitingForMessage: "connecting",
	engine.ModeWaitingForPlayers: "waiting for players",
	engine.ModeNewHand:           "new hand",
	engine.ModeExchangeCards:     "exchange cards",
	engine.ModePlayingHand:       "playing",
	engine.ModeEnd:               "game over",
}

func (m Model) bannerView() string {
	title := "♥ heartz · " + modeTitles[m.mode]
	if m.progress.Hands > 0 {
		title += fmt.Sprintf(" · hand %d/%d", m.progress.Hand, m.progress.Hands)
	}
	return bannerStyle.Render(title)
}

func (m Model) lobbyView() string {
	parts := []string{"lobby"}
	if m.lobby.CanJoin {
		parts = append(parts, "[j] join")
	}
	if m.lobby.CanAddBot {
		parts = append(parts, "[b] add bot")
	}
	return lobbyStyle.Render(strings.Join(parts, "  "))
}

func (m Model) tableView() string {
	middle := lipgloss.JoinHorizontal(lipgloss.Center,
		m.seatView(seating.SlotLeft),
		"  "+m.stackView()+"  ",
		m.seatView(seating.SlotRight),
	)
	return lipgloss.JoinVertical(lipgloss.Center,
		m.seatView(seating.SlotTop),
		middle,
		m.seatView(seating.SlotBottom),
	)
}

func (m Model) seatView(slot int) string {
	seat := m.seats[slot]
	if seat.Empty() {
		return emptySeatStyle.Render("(empty)")
	}

	name := seat.Occupant.Short()
	if seat.Occupant == m.self {
		name = "you"
	}
	score := m.scores[slot]
	label := fmt.Sprintf("%s %d/%d", name, score.Hand, score.Total)

	if slot == m.current {
		return currentStyle.Render(label)
	}
	return idleSeatStyle.Render(label)
}

func (m Model) stackView() string {
	cards := m.stack.Cards()
	if len(cards) == 0 {
		return hintStyle.Render("·")
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = cardView(c)
	}
	return strings.Join(out, " ")
}

func (m Model) handView() string {
	if len(m.hand) == 0 {
		return hintStyle.Render("no cards")
	}

	cells := make([]string, len(m.hand))
	for i, c := range m.hand {
		text := cardView(c)
		if slices.Contains(m.selected, c.PositionInDeck) {
			text = selectedStyle.Render("[" + text + "]")
		} else {
			text = " " + text + " "
		}
		if i == m.cursor {
			text = cursorStyle.Render(">") + text
		} else {
			text = " " + text
		}
		cells[i] = text
	}

	line := strings.Join(cells, "")
	if m.submitEnabled {
		line += "  " + readyStyle.Render("enter to submit")
	}
	return line
}

func cardView(c types.Card) string {
	text := c.Emoji
	if text == "" {
		text = fmt.Sprintf("%s#%d", c.Suit, c.PositionInDeck)
	}
	if c.Suit.Red() {
		return redCardStyle.Render(text)
	}
	return blackCardStyle.Render(text)
}

func (m Model) helpView() string {
	bindings := keys.help()
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + " " + b.Help().Desc
	}
	return hintStyle.Render(strings.Join(parts, " · "))
}
