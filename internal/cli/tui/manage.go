package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/types"
	"github.com/AlecGordonToTheMaxx/albumctl/internal/cli/ui"
)

// Form field indexes
const (
	fieldTitle = iota
	fieldArtist
	fieldPrice
	fieldCount
)

// Editor focus areas
type managePane int

const (
	paneForm managePane = iota
	paneList
)

var (
	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	headerTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	errorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Foreground(lipgloss.Color("196")).
				Padding(0, 1)
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// AlbumAPI is the slice of the API client the album editor depends on.
type AlbumAPI interface {
	ListAlbums(ctx context.Context) ([]types.Album, error)
	CreateAlbum(ctx context.Context, input types.CreateAlbumInput) (*types.Album, error)
	UpdateAlbum(ctx context.Context, id int, input types.UpdateAlbumInput) (*types.Album, error)
	DeleteAlbum(ctx context.Context, id int) error
}

// ManageProgram encapsulates the album editor TUI program
type ManageProgram struct {
	model manageModel
}

// NewManageProgram creates a new album editor program instance
func NewManageProgram(api AlbumAPI) *ManageProgram {
	return &ManageProgram{model: initialManageModel(api)}
}

// Run starts the album editor TUI program
func (p *ManageProgram) Run() error {
	program := tea.NewProgram(p.model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// manageModel is the Bubble Tea model for the album list/editor screen. The
// list is Loading, Ready or Error; the form is independently Idle/Create or
// Editing (tracking the edited album's id). Every successful mutation
// triggers a full reload; there is no optimistic update and no local cache.
type manageModel struct {
	api AlbumAPI

	// List state
	albums  []types.Album
	loading bool
	cursor  int

	// Form state. editingID == nil means Idle/Create.
	inputs    [fieldCount]textinput.Model
	focusIdx  int
	editingID *int

	// Pending delete confirmation; nil when none
	confirming *types.Album

	// Screen-level, dismissable error message
	errMsg string

	width  int
	height int
}

// initialManageModel creates the initial album editor model
func initialManageModel(api AlbumAPI) manageModel {
	m := manageModel{
		api:     api,
		loading: true,
	}

	labels := [fieldCount]string{"Album title", "Artist name", "0.00"}
	for i := range m.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.CharLimit = 200
		input.Width = 40
		input.Prompt = ""
		m.inputs[i] = input
	}
	m.inputs[fieldTitle].Focus()

	return m
}

// Init initializes the model (Bubble Tea interface)
func (m manageModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadAlbums())
}

// Message type definitions
type (
	albumsLoadedMsg struct{ albums []types.Album }
	loadFailedMsg   struct{ err error }
	saveDoneMsg     struct{}
	saveFailedMsg   struct{ err error }
	deleteDoneMsg   struct{}
	deleteFailedMsg struct{ err error }
)

// Update processes messages and updates the model (Bubble Tea interface)
func (m manageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		var quit, consumed bool
		cmds, quit, consumed = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		if !consumed && m.formFocused() {
			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case albumsLoadedMsg:
		m.albums = msg.albums
		m.loading = false
		if m.cursor >= len(m.albums) {
			m.cursor = 0
		}

	case loadFailedMsg:
		m.loading = false
		m.errMsg = fmt.Sprintf("Failed to load albums: %v", msg.err)

	case saveDoneMsg:
		// Full reload after every mutation; form returns to create mode
		m.resetForm()
		m.loading = true
		cmds = append(cmds, m.loadAlbums())

	case saveFailedMsg:
		// Form contents stay put so the user can correct and resubmit
		m.errMsg = fmt.Sprintf("Failed to save album: %v", msg.err)

	case deleteDoneMsg:
		m.loading = true
		cmds = append(cmds, m.loadAlbums())

	case deleteFailedMsg:
		m.errMsg = fmt.Sprintf("Failed to delete album: %v", msg.err)

	default:
		if m.formFocused() {
			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *manageModel) formFocused() bool {
	return m.focusIdx < fieldCount
}

// handleKey handles keyboard input. Returns commands, whether to quit, and
// whether the key was consumed and must not reach the focused input.
func (m *manageModel) handleKey(msg tea.KeyMsg) ([]tea.Cmd, bool, bool) {
	var cmds []tea.Cmd

	// A pending delete confirmation captures the keyboard
	if m.confirming != nil {
		switch msg.String() {
		case "y", "Y":
			album := m.confirming
			m.confirming = nil
			cmds = append(cmds, m.deleteAlbum(album.ID))
		case "n", "N", "esc":
			// Declining is a no-op, not an error
			m.confirming = nil
		}
		return cmds, false, true
	}

	switch msg.String() {
	case "ctrl+c":
		return nil, true, false

	case "esc":
		switch {
		case m.errMsg != "":
			m.errMsg = ""
		case m.editingID != nil:
			// Cancel editing without a network call
			m.resetForm()
		default:
			return nil, true, false
		}
		return cmds, false, true

	case "tab":
		m.cycleFocus(1)
		return cmds, false, true

	case "shift+tab":
		m.cycleFocus(-1)
		return cmds, false, true

	case "enter":
		if m.formFocused() {
			if cmd := m.submitForm(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return cmds, false, true
		}
		m.startEditing()
		return cmds, false, true

	case "up", "k":
		if !m.formFocused() {
			if m.cursor > 0 {
				m.cursor--
			}
			return cmds, false, true
		}

	case "down", "j":
		if !m.formFocused() {
			if m.cursor < len(m.albums)-1 {
				m.cursor++
			}
			return cmds, false, true
		}

	case "e":
		if !m.formFocused() {
			m.startEditing()
			return cmds, false, true
		}

	case "d":
		if !m.formFocused() {
			if album := m.selectedAlbum(); album != nil {
				m.confirming = album
			}
			return cmds, false, true
		}

	case "r":
		if !m.formFocused() && !m.loading {
			m.loading = true
			m.errMsg = ""
			cmds = append(cmds, m.loadAlbums())
			return cmds, false, true
		}
	}

	return cmds, false, false
}

// cycleFocus moves focus across the three form fields and then the list.
// focusIdx == fieldCount means the list pane has focus.
func (m *manageModel) cycleFocus(delta int) {
	if m.formFocused() {
		m.inputs[m.focusIdx].Blur()
	}

	m.focusIdx += delta
	if m.focusIdx > fieldCount {
		m.focusIdx = 0
	}
	if m.focusIdx < 0 {
		m.focusIdx = fieldCount
	}

	if m.formFocused() {
		m.inputs[m.focusIdx].Focus()
	}
}

func (m *manageModel) selectedAlbum() *types.Album {
	if m.cursor < 0 || m.cursor >= len(m.albums) {
		return nil
	}
	return &m.albums[m.cursor]
}

// startEditing pre-fills the form from the selected album and tracks its id
func (m *manageModel) startEditing() {
	album := m.selectedAlbum()
	if album == nil {
		return
	}

	id := album.ID
	m.editingID = &id
	m.inputs[fieldTitle].SetValue(album.Title)
	m.inputs[fieldArtist].SetValue(album.Artist)
	m.inputs[fieldPrice].SetValue(strconv.FormatFloat(album.Price, 'f', 2, 64))
	m.setFocus(fieldTitle)
}

// resetForm clears the form back to Idle/Create
func (m *manageModel) resetForm() {
	m.editingID = nil
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.setFocus(fieldTitle)
}

func (m *manageModel) setFocus(idx int) {
	if m.formFocused() {
		m.inputs[m.focusIdx].Blur()
	}
	m.focusIdx = idx
	m.inputs[idx].Focus()
}

// submitForm validates the form and dispatches create or update depending on
// whether an album is being edited.
func (m *manageModel) submitForm() tea.Cmd {
	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	artist := strings.TrimSpace(m.inputs[fieldArtist].Value())
	priceRaw := strings.TrimSpace(m.inputs[fieldPrice].Value())

	if title == "" || artist == "" {
		m.errMsg = "Failed to save album: title and artist are required"
		return nil
	}
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		m.errMsg = "Failed to save album: price must be a non-negative number"
		return nil
	}

	m.errMsg = ""
	api := m.api

	if m.editingID != nil {
		id := *m.editingID
		input := types.UpdateAlbumInput{Title: title, Artist: artist, Price: price}
		return func() tea.Msg {
			if _, err := api.UpdateAlbum(context.Background(), id, input); err != nil {
				return saveFailedMsg{err: err}
			}
			return saveDoneMsg{}
		}
	}

	input := types.CreateAlbumInput{Title: title, Artist: artist, Price: price}
	return func() tea.Msg {
		if _, err := api.CreateAlbum(context.Background(), input); err != nil {
			return saveFailedMsg{err: err}
		}
		return saveDoneMsg{}
	}
}

// loadAlbums fetches the full album list
func (m *manageModel) loadAlbums() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		albums, err := api.ListAlbums(context.Background())
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return albumsLoadedMsg{albums: albums}
	}
}

// deleteAlbum issues the delete after the confirmation step
func (m *manageModel) deleteAlbum(id int) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		if err := api.DeleteAlbum(context.Background(), id); err != nil {
			return deleteFailedMsg{err: err}
		}
		return deleteDoneMsg{}
	}
}

// View renders the UI (Bubble Tea interface)
func (m manageModel) View() string {
	var sections []string

	sections = append(sections, headerTitleStyle.Render("Album Manager"))

	if m.errMsg != "" {
		sections = append(sections, errorBannerStyle.Render(m.errMsg+"  (esc to dismiss)"))
	}

	sections = append(sections, m.viewForm(), m.viewList())

	if m.confirming != nil {
		sections = append(sections, confirmStyle.Render(
			fmt.Sprintf("Delete '%s' by %s? (y/n)", m.confirming.Title, m.confirming.Artist)))
	}

	help := "tab focus • enter submit/edit • d delete • r reload • esc cancel • ctrl+c quit"
	sections = append(sections, dimStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m manageModel) viewForm() string {
	heading := "Add New Album"
	if m.editingID != nil {
		heading = fmt.Sprintf("Edit Album #%d", *m.editingID)
	}

	labels := [fieldCount]string{"Title", "Artist", "Price ($)"}
	var rows []string
	rows = append(rows, boldStyle.Render(heading))
	for i := range m.inputs {
		rows = append(rows, fmt.Sprintf("%-10s %s", labels[i], m.inputs[i].View()))
	}

	return formBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m manageModel) viewList() string {
	if m.loading {
		return dimStyle.Render("Loading albums...")
	}
	if len(m.albums) == 0 {
		return dimStyle.Render("No albums yet. Add one above.")
	}

	var rows []string
	rows = append(rows, dimStyle.Render(fmt.Sprintf("Albums (%d)", len(m.albums))))
	for i, album := range m.albums {
		line := fmt.Sprintf("%-4d %-30s %-20s %10s",
			album.ID, album.Title, album.Artist, ui.FormatPrice(album.Price))
		if i == m.cursor && !m.formFocused() {
			line = selectedRowStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}
