package controller

import (
	"slices"

	"github.com/dmitrijs2005/devlog/internal/client/models"
)

type Phase int

const (
	Unauthenticated Phase = iota
	Loading
	Idle
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Idle:
		return "idle"
	default:
		return "unauthenticated"
	}
}

// Mode selects what a form submission does: create a new entry, or update
// the entry with ID.
type Mode struct {
	editing bool
	id      models.ID
}

func Creating() Mode { return Mode{} }

func Editing(id models.ID) Mode { return Mode{editing: true, id: id} }

func (m Mode) IsEditing() bool { return m.editing }

// EditID is the entry being edited, or "" in Creating mode.
func (m Mode) EditID() models.ID { return m.id }

func (m Mode) String() string {
	if m.editing {
		return "editing " + m.id.String()
	}
	return "creating"
}

// Fields is the working copy of the form.
type Fields struct {
	Title   string
	Content string
	Tags    string
}

func (f Fields) input() models.EntryInput {
	return models.EntryInput{Title: f.Title, Content: f.Content, Tags: f.Tags}
}

type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageSuccess
	MessageError
)

type Message struct {
	Kind MessageKind
	Text string
}

func (m Message) Empty() bool { return m.Text == "" }

func success(text string) Message { return Message{Kind: MessageSuccess, Text: text} }
func failure(text string) Message { return Message{Kind: MessageError, Text: text} }

// State is a snapshot of everything the entries screen renders.
type State struct {
	Phase  Phase
	Mode   Mode
	Fields Fields

	// Expanded is the one entry shown in full, or "" when all are collapsed.
	Expanded models.ID

	Query      string
	FilterKind models.FilterKind

	// Entries is the last fetched list, in server order.
	Entries []models.Entry

	Message Message

	GeneratingTitle bool
	GeneratingTags  bool
}

func initialState() State {
	return State{Phase: Unauthenticated, FilterKind: models.FilterAll}
}

func (s State) clone() State {
	s.Entries = slices.Clone(s.Entries)
	return s
}

// Entry looks up id in the displayed list.
func (s State) Entry(id models.ID) (models.Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}

func (s State) IsExpanded(id models.ID) bool {
	return s.Expanded != "" && s.Expanded == id
}
