package designs

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atelierhq/atelier/internal/bridge"
	"github.com/atelierhq/atelier/internal/metadata"
)

// newItemDelegate wires per-design actions. Every mutation is submitted
// over the bridge; the list itself is only rewritten when the host
// pushes the next catalog.
func newItemDelegate(keys *delegateKeyMap, b *bridge.Bridge) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(ListItem)
		if !ok {
			return nil
		}
		name := item.design.Name

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.archive):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionArchive,
					DesignID: name,
				})
				return m.NewStatusMessage(statusStyle("Archiving " + name))

			case key.Matches(msg, keys.restore):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionUnarchive,
					DesignID: name,
				})
				return m.NewStatusMessage(statusStyle("Restoring " + name))

			case key.Matches(msg, keys.delete):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionDelete,
					DesignID: name,
				})
				return nil

			case key.Matches(msg, keys.copyPath):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionCopyPath,
					DesignID: name,
				})
				return m.NewStatusMessage(statusStyle("Copied path for " + name))

			case key.Matches(msg, keys.copyPrompt):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionCopyPrompt,
					DesignID: name,
				})
				return m.NewStatusMessage(statusStyle("Copied refine prompt for " + name))

			case key.Matches(msg, keys.open):
				b.Submit(bridge.Request{
					Kind:     bridge.RequestAction,
					Action:   bridge.ActionOpenExternal,
					DesignID: name,
				})
				return nil

			case key.Matches(msg, keys.approve):
				return submitStatus(b, m, name, metadata.StatusApproved)

			case key.Matches(msg, keys.review):
				return submitStatus(b, m, name, metadata.StatusReview)

			case key.Matches(msg, keys.reject):
				return submitStatus(b, m, name, metadata.StatusDraft)
			}
		}

		return nil
	}

	shortHelp := []key.Binding{keys.approve, keys.archive, keys.delete}
	longHelp := [][]key.Binding{{
		keys.approve,
		keys.review,
		keys.reject,
		keys.archive,
		keys.restore,
		keys.delete,
		keys.copyPath,
		keys.copyPrompt,
		keys.open,
	}}

	d.ShortHelpFunc = func() []key.Binding {
		return shortHelp
	}
	d.FullHelpFunc = func() [][]key.Binding {
		return longHelp
	}
	return d
}

func submitStatus(b *bridge.Bridge, m *list.Model, name string, status metadata.Status) tea.Cmd {
	b.Submit(bridge.Request{
		Kind:     bridge.RequestAction,
		Action:   bridge.ActionSetStatus,
		DesignID: name,
		Value:    string(status),
	})
	return m.NewStatusMessage(statusStyle("Setting " + name + " to " + string(status)))
}
