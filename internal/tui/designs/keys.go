package designs

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	openGallery     key.Binding
	openCompare     key.Binding
	openStudio      key.Binding
	toggleCompare   key.Binding
	setPrimary      key.Binding
	clearPrimary    key.Binding
	toggleArchived  key.Binding
	toggleDetails   key.Binding
	toggleHelpMenu  key.Binding
	quit            key.Binding
	sortByName      key.Binding
	sortByModified  key.Binding
	sortByStatus    key.Binding
	sortAscending   key.Binding
	sortDescending  key.Binding
	confirmAccept   key.Binding
	confirmDecline  key.Binding
	cycleStatusView key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		openGallery: key.NewBinding(
			key.WithKeys("1", "g"),
			key.WithHelp("1", "gallery"),
		),
		openCompare: key.NewBinding(
			key.WithKeys("2", "c"),
			key.WithHelp("2", "compare"),
		),
		openStudio: key.NewBinding(
			key.WithKeys("3", "s"),
			key.WithHelp("3", "studio"),
		),
		toggleCompare: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle compare"),
		),
		setPrimary: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "set primary"),
		),
		clearPrimary: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "clear primary"),
		),
		toggleArchived: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "show archived"),
		),
		toggleDetails: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "details"),
		),
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		sortByName: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "sort by name"),
		),
		sortByModified: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "sort by modified"),
		),
		sortByStatus: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "sort by status"),
		),
		sortAscending: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "ascending sort"),
		),
		sortDescending: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("f6", "descending sort"),
		),
		confirmAccept: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		confirmDecline: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		cycleStatusView: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "cycle status filter"),
		),
	}
}

func (m listKeyMap) fullHelp() []key.Binding {
	return []key.Binding{
		m.openGallery,
		m.openCompare,
		m.openStudio,
		m.toggleCompare,
		m.setPrimary,
		m.clearPrimary,
		m.toggleArchived,
		m.toggleDetails,
		m.cycleStatusView,
		m.sortByName,
		m.sortByModified,
		m.sortByStatus,
		m.sortAscending,
		m.sortDescending,
	}
}

type delegateKeyMap struct {
	archive    key.Binding
	restore    key.Binding
	delete     key.Binding
	copyPath   key.Binding
	copyPrompt key.Binding
	open       key.Binding
	approve    key.Binding
	review     key.Binding
	reject     key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		archive: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "archive"),
		),
		restore: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "restore"),
		),
		delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy path"),
		),
		copyPrompt: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "copy refine prompt"),
		),
		open: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open in browser"),
		),
		approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark in review"),
		),
		reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
	}
}
