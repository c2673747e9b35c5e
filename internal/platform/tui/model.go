package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tower/internal/core"
	"github.com/vovakirdan/tui-tower/internal/registry"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

// maxUsernameLen bounds the name typed at the prompt.
const maxUsernameLen = 16

// usernamer is implemented by games that settle on a player name of
// their own, for example a default when the prompt was left empty.
type usernamer interface {
	Username() string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState

	prompt     textinput.Model
	prompting  bool // Asking for the player name; the game has not started
	sessionID  string
	best       int // Personal best loaded from the store
	bestLoaded bool

	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game. When cfg
// carries no username the player is asked for one before the game starts.
// A nil logger discards.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = "player"
	ti.Prompt = "Name: "
	ti.CharLimit = maxUsernameLen
	ti.Width = maxUsernameLen + 1
	ti.Focus()

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		prompt:     ti,
		prompting:  cfg.Username == "",
		sessionID:  uuid.NewString(),
	}
}

// Init initializes the model. With a known username the game starts at
// once; otherwise the prompt is shown first.
func (m Model) Init() tea.Cmd {
	if m.prompting {
		return textinput.Blink
	}
	// Note: gameState will be set on first tick (value receiver limitation)
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		return m.handleResize(wsm)
	}
	if m.prompting {
		return m.updatePrompt(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := m.keys.MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// updatePrompt runs the username prompt until the player confirms.
func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.start(strings.TrimSpace(m.prompt.Value()))
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// start leaves the prompt and begins the first session.
func (m Model) start(username string) (tea.Model, tea.Cmd) {
	m.prompting = false
	m.config.Username = username
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.loadBest()

	m.logger.Info("session started", "game", m.game.ID(), "user", m.username(), "session", m.sessionID)
	return m, tickCmd(m.config.TickRate)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.prompt.Width = min(maxUsernameLen+1, max(1, msg.Width-len(m.prompt.Prompt)-1))

	if m.prompting {
		return m, nil
	}

	// Games that can reframe keep their session; others restart.
	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if !m.bestLoaded {
		m.loadBest()
	}

	m.inputFrame.At = now
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game. Storage errors are logged; the
// game continues regardless.
func (m *Model) saveScore() {
	if m.gameState.Score <= 0 || m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.Score{
		GameID:    m.game.ID(),
		Username:  m.username(),
		SessionID: m.sessionID,
		Score:     m.gameState.Score,
		Level:     m.gameState.Level,
	})
	if err != nil {
		m.logger.Error("saving score", "err", err)
		return
	}
	m.logger.Info("score saved", "user", m.username(), "score", m.gameState.Score, "level", m.gameState.Level)
	m.best = max(m.best, m.gameState.Score)
}

// loadBest reads the player's personal best.
func (m *Model) loadBest() {
	m.bestLoaded = true
	if m.store == nil {
		return
	}
	best, err := m.store.PersonalBest(m.game.ID(), m.username())
	if err != nil {
		m.logger.Warn("loading personal best", "err", err)
		return
	}
	m.best = best
}

// username returns the name scores are stored under.
func (m Model) username() string {
	if u, ok := m.game.(usernamer); ok && u.Username() != "" {
		return u.Username()
	}
	return m.config.Username
}

// saveScreenshot writes the current frame as text under ~/.arcade/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// render draws the game and the personal best into the screen buffer.
func (m Model) render() {
	m.screen.Clear()
	m.game.Render(m.screen)
	if m.best > 0 {
		text := fmt.Sprintf("Best: %d", m.best)
		m.screen.DrawTextColor(m.screen.Width()-len(text)-1, m.screen.Height()-1, text, core.ColorOrange)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.prompting {
		return m.promptView()
	}

	m.render()
	return RenderScreen(m.screen)
}

// promptView renders the username prompt centered on the screen.
func (m Model) promptView() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Render(strings.ToUpper(m.game.Title()))
	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("enter to start, esc to quit")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", m.prompt.View(), "", hint))

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// SessionID returns the id scores from this model are stored under.
func (m Model) SessionID() string {
	return m.sessionID
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks cut the moving block
	)

	_, err := p.Run()
	return err
}
