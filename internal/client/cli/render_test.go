package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dmitrijs2005/devlog/internal/client/controller"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderer_EntriesMarksEditedAndExpanded(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Entries(controller.State{
		Mode:     controller.Editing("1"),
		Expanded: "2",
		Entries:  sampleEntries(),
		Message:  controller.Message{Kind: controller.MessageSuccess, Text: "done"},
	})

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "  [2]  Goroutines  go, concurrency", lines[0])
	assert.Contains(t, out.String(), "channels *everywhere*")
	assert.Contains(t, out.String(), "* [1]  Deploy notes  ops")
	assert.NotContains(t, out.String(), "ran the migration")
	assert.Contains(t, out.String(), "✓ done")
}

func TestRenderer_EmptyListAndQuery(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Entries(controller.State{Query: "rust", FilterKind: models.FilterTag})

	assert.Equal(t, "Results for \"rust\" (tag)\nNo entries.\n", out.String())
}

func TestRenderer_FormShowsBusyFlags(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Form(controller.State{
		Fields:          controller.Fields{Title: "T", Content: "a\nb", Tags: "x"},
		GeneratingTitle: true,
		GeneratingTags:  true,
	})

	assert.Contains(t, out.String(), "New entry")
	assert.Contains(t, out.String(), "    a\n    b\n")
	assert.Contains(t, out.String(), "generating title and tags...")
}

func TestRenderer_MarkdownFallsBackToRaw(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, false)
	assert.Equal(t, "# raw", r.Markdown("# raw"))

	r = NewRenderer(&bytes.Buffer{}, true)
	assert.Contains(t, r.Markdown("# Heading"), "Heading")
}

func TestRenderer_MessageKinds(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Message(controller.Message{})
	r.Message(controller.Message{Kind: controller.MessageError, Text: "bad"})
	r.Message(controller.Message{Kind: controller.MessageInfo, Text: "fyi"})

	assert.Equal(t, "✗ bad\nfyi\n", out.String())
}

func TestRenderer_LoadingPhaseShowsIndicator(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, false)

	r.Entries(controller.State{Phase: controller.Loading, Entries: sampleEntries()[:1]})

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, "Loading entries...", lines[0])
	assert.Contains(t, lines[1], "Goroutines")

	out.Reset()
	r.Entries(controller.State{Phase: controller.Idle})
	assert.NotContains(t, out.String(), "Loading entries...")
}
