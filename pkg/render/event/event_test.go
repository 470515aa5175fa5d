package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/ecsdump/pkg/ecs"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/render/event"
)

func printEvents(t *testing.T, settings event.Settings) string {
	t.Helper()
	w := memory.NewWorld()
	hit := w.Registry().Register("Hit", ecs.Event)
	score := w.Registry().Register("Score", ecs.Resource)
	spawned := w.Registry().Register("Spawned", ecs.Event)

	s := memory.NewSchedule("Update")
	s.AddSystem("shoot", ecs.Access{Writes: []ecs.ComponentID{hit}})
	s.AddSystem("tally", ecs.Access{Reads: []ecs.ComponentID{hit}, Writes: []ecs.ComponentID{score}})
	s.AddSystem("idle", ecs.Access{Reads: []ecs.ComponentID{score}})
	s.AddSystem("spawn", ecs.Access{Writes: []ecs.ComponentID{spawned}})
	w.AddSchedule(s)
	require.NoError(t, s.EnsureBuilt(w, nil))

	ctx, err := event.Extract(s, w, settings)
	require.NoError(t, err)
	out, err := event.Print([]*event.Context{ctx}, settings)
	require.NoError(t, err)
	return out
}

func TestPrintWriterEventReader(t *testing.T) {
	out := printEvents(t, event.DefaultSettings())

	assert.Contains(t, out, "Update__system__shoot -> world__event__Hit")
	assert.Contains(t, out, "world__event__Hit -> Update__system__tally")
	assert.NotContains(t, out, "Score")
	assert.NotContains(t, out, "Update__system__idle")
}

func TestPrintHideSingleEdgeEvents(t *testing.T) {
	settings := event.DefaultSettings()
	settings.HideSingleEdgeEvents = true
	out := printEvents(t, settings)

	assert.Contains(t, out, "world__event__Hit")
	assert.NotContains(t, out, "world__event__Spawned")
	assert.NotContains(t, out, "Update__system__spawn")
}
