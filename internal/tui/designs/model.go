// Package designs is the interactive gallery over the design catalog:
// three modes (gallery, compare, studio) driven purely by catalog pushes
// and typed requests over the bridge.
package designs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atelierhq/atelier/internal/bridge"
	"github.com/atelierhq/atelier/internal/catalog"
	"github.com/atelierhq/atelier/internal/metadata"
	"github.com/atelierhq/atelier/utils"
)

// previewChars bounds how much of a document body the text preview shows.
const previewChars = 1200

type notificationMsg bridge.Notification

// statusFilterCycle is the V-key rotation: everything, then one bucket
// at a time.
var statusFilterCycle = [][]metadata.Status{
	nil,
	{metadata.StatusDraft},
	{metadata.StatusReview},
	{metadata.StatusApproved},
	{metadata.StatusArchived, metadata.StatusExported},
}

type Model struct {
	list         list.Model
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	bridge       *bridge.Bridge
	view         *ViewState
	renderer     *Renderer
	catalog      []catalog.Design

	sessionPath     string
	previewTheme    string
	sortField       sortField
	sortOrder       sortOrder
	showDetails     bool
	statusCycleIdx  int
	width           int
	height          int
	pendingConfirm  *bridge.Notification
}

func NewModel(b *bridge.Bridge, rendererCap int, sessionPath, previewTheme string) *Model {
	session := LoadSession(sessionPath)
	view := session.View

	lkeys := newListKeyMap()
	dkeys := newDelegateKeyMap()

	l := list.New(nil, newItemDelegate(dkeys, b), 0, 0)
	l.Title = "Designs"
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			lkeys.openCompare,
			lkeys.openStudio,
			lkeys.setPrimary,
		}
	}
	l.AdditionalFullHelpKeys = lkeys.fullHelp

	m := &Model{
		list:         l,
		keys:         lkeys,
		delegateKeys: dkeys,
		bridge:       b,
		view:         &view,
		sessionPath:  sessionPath,
		previewTheme: previewTheme,
		sortField:    sortField(session.SortField),
		sortOrder:    sortOrder(session.SortOrder),
	}
	m.renderer = NewRenderer(rendererCap, m.renderPreview)
	return m
}

func (m *Model) Init() tea.Cmd {
	m.bridge.Submit(bridge.Request{Kind: bridge.RequestReady})
	return m.waitForNotification()
}

// waitForNotification re-arms after every receipt so notifications keep
// streaming into Update.
func (m *Model) waitForNotification() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.bridge.Notifications()
		if !ok {
			return tea.Quit()
		}
		return notificationMsg(n)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width/2-h, msg.Height-v)

	case notificationMsg:
		cmds = append(cmds, m.handleNotification(bridge.Notification(msg)), m.waitForNotification())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.pendingConfirm != nil {
			return m, m.handleConfirmKey(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		if cmd, handled := m.handleModeKey(msg); handled {
			return m, cmd
		}
	}

	nl, cmd := m.list.Update(msg)
	m.list = nl
	cmds = append(cmds, cmd)

	m.renderer.Sync(WantedFor(m.view, m.hoveredName()))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleNotification(n bridge.Notification) tea.Cmd {
	switch n.Kind {
	case bridge.NotifyCatalog:
		m.catalog = n.Designs
		if n.Primary != m.view.Primary {
			m.view.Primary = n.Primary
		}
		m.view.Reconcile(m.catalog)
		m.refreshList()
		m.renderer.Sync(WantedFor(m.view, m.hoveredName()))
		return nil

	case bridge.NotifyStatusChanged:
		return m.list.NewStatusMessage(
			statusStyle(fmt.Sprintf("%s is now %s", n.DesignID, n.Status)),
		)

	case bridge.NotifyActionFailed:
		return m.list.NewStatusMessage(statusStyle("Failed: " + n.Err))

	case bridge.NotifyConfirmRequested:
		pending := n
		m.pendingConfirm = &pending
		return nil
	}
	return nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.confirmAccept):
		m.bridge.Submit(bridge.Request{
			Kind:   bridge.RequestConfirm,
			Token:  m.pendingConfirm.Token,
			Accept: true,
		})
		m.pendingConfirm = nil
	case key.Matches(msg, m.keys.confirmDecline):
		m.bridge.Submit(bridge.Request{
			Kind:   bridge.RequestConfirm,
			Token:  m.pendingConfirm.Token,
			Accept: false,
		})
		m.pendingConfirm = nil
	}
	return nil
}

func (m *Model) handleModeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.saveSession()
		return tea.Quit, true

	case key.Matches(msg, m.keys.openGallery):
		m.view.EnterGallery()
		return nil, true

	case key.Matches(msg, m.keys.openCompare):
		if !m.view.EnterCompare() {
			return m.list.NewStatusMessage(statusStyle("Compare set is empty")), true
		}
		return nil, true

	case key.Matches(msg, m.keys.openStudio):
		name := m.hoveredName()
		if !m.view.EnterStudio(name) {
			return m.list.NewStatusMessage(statusStyle("Nothing selected")), true
		}
		return nil, true

	case key.Matches(msg, m.keys.toggleCompare):
		if name := m.hoveredName(); name != "" {
			m.view.ToggleCompare(name)
			return m.list.NewStatusMessage(
				statusStyle(fmt.Sprintf("Comparing %d design(s)", len(m.view.CompareSet))),
			), true
		}
		return nil, true

	case key.Matches(msg, m.keys.setPrimary):
		if name := m.hoveredName(); name != "" {
			m.view.SetPrimary(name)
			m.bridge.Submit(bridge.Request{Kind: bridge.RequestSetPrimary, DesignID: name})
		}
		return nil, true

	case key.Matches(msg, m.keys.clearPrimary):
		m.view.SetPrimary("")
		m.bridge.Submit(bridge.Request{Kind: bridge.RequestSetPrimary})
		return nil, true

	case key.Matches(msg, m.keys.toggleArchived):
		m.view.Filters.IncludeArchived = !m.view.Filters.IncludeArchived
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.toggleDetails):
		m.showDetails = !m.showDetails
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.toggleHelpMenu):
		m.list.SetShowHelp(!m.list.ShowHelp())
		return nil, true

	case key.Matches(msg, m.keys.cycleStatusView):
		m.statusCycleIdx = (m.statusCycleIdx + 1) % len(statusFilterCycle)
		m.view.Filters.Statuses = statusFilterCycle[m.statusCycleIdx]
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.sortByName):
		m.sortField = sortByName
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.sortByModified):
		m.sortField = sortByModifiedAt
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.sortByStatus):
		m.sortField = sortByStatus
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.sortAscending):
		m.sortOrder = ascending
		m.refreshList()
		return nil, true

	case key.Matches(msg, m.keys.sortDescending):
		m.sortOrder = descending
		m.refreshList()
		return nil, true
	}

	return nil, false
}

// refreshList rebuilds the list items from the catalog through the
// filters and sort settings, keeping the cursor on the same design when
// it survives.
func (m *Model) refreshList() {
	hovered := m.hoveredName()

	visible := sortDesigns(m.view.Visible(m.catalog), m.sortField, m.sortOrder)
	m.list.SetItems(toListItems(visible, m.showDetails))

	if hovered != "" {
		for idx, d := range visible {
			if d.Name == hovered {
				m.list.Select(idx)
				break
			}
		}
	}
}

func (m *Model) hoveredName() string {
	if item, ok := m.list.SelectedItem().(ListItem); ok {
		return item.design.Name
	}
	return ""
}

func (m *Model) saveSession() {
	SaveSession(m.sessionPath, Session{
		View:      *m.view,
		SortField: int(m.sortField),
		SortOrder: int(m.sortOrder),
	})
}

// renderPreview produces the terminal preview for one design.
func (m *Model) renderPreview(name string) string {
	d, ok := catalog.Find(m.catalog, name)
	if !ok {
		return ""
	}

	var sb strings.Builder
	title := strings.TrimSuffix(d.Name, ".html")
	if d.Name == m.view.Primary {
		title = primaryMarkStyle.Render("★ ") + title
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s · %s · %s · v%d\n", renderStatus(d.DisplayStatus), d.Viewport, readableSize(d.Size), d.Version))
	if d.Parent != "" {
		sb.WriteString("derived from " + d.Parent + "\n")
	}
	if len(d.Tags) > 0 {
		sb.WriteString("tags: " + strings.Join(d.Tags, ", ") + "\n")
	}
	if notes := utils.RenderMarkdownNotes(d.Notes, m.previewTheme); notes != "" {
		sb.WriteString(notes)
	}
	sb.WriteString("\n")

	body := d.Body
	if len(body) > previewChars {
		body = body[:previewChars] + "…"
	}
	sb.WriteString(body)
	return sb.String()
}

func (m *Model) View() string {
	var content string
	switch m.view.Mode {
	case ModeCompare:
		content = m.compareView()
	case ModeStudio:
		content = m.studioView()
	default:
		content = m.galleryView()
	}

	if m.pendingConfirm != nil {
		content += "\n" + confirmStyle.Render(
			m.pendingConfirm.Prompt+"  (y/n)",
		)
	}
	return appStyle.Render(content)
}

func (m *Model) galleryView() string {
	preview := ""
	if name := m.hoveredName(); name != "" {
		preview = previewStyle.Render(m.renderer.Mount(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), preview)
}

func (m *Model) compareView() string {
	if len(m.view.CompareSet) == 0 {
		return m.galleryView()
	}

	panes := make([]string, 0, len(m.view.CompareSet))
	width := 0
	if m.width > 0 {
		width = m.width/len(m.view.CompareSet) - 4
	}
	for _, name := range m.view.CompareSet {
		pane := m.renderer.Mount(name)
		if width > 0 {
			pane = paneStyle.Copy().Width(width).Render(pane)
		} else {
			pane = paneStyle.Render(pane)
		}
		panes = append(panes, pane)
	}
	header := helpStyle.Render("compare · space toggles membership · 1 returns to gallery")
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

func (m *Model) studioView() string {
	header := helpStyle.Render("studio · 1 returns to gallery")
	return header + "\n" + m.renderer.Mount(m.view.StudioFocus)
}
