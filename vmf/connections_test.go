package vmf_test

import (
	"testing"

	"github.com/specialistvlad/vmfgo/vmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected vmf.Action
		wantErr  bool
	}{
		{
			name:     "comma separated",
			raw:      "door,Open,,0,-1",
			expected: vmf.Action{Target: "door", Input: "Open", Delay: 0, Refires: -1},
		},
		{
			name:     "escape separated",
			raw:      "relay\x1bTrigger\x1b\x1b1.5\x1b1",
			expected: vmf.Action{Target: "relay", Input: "Trigger", Delay: 1.5, Refires: 1},
		},
		{
			name:     "escape separated parameter with commas",
			raw:      "cmd\x1bCommand\x1bsay a,b\x1b0\x1b-1",
			expected: vmf.Action{Target: "cmd", Input: "Command", Parameter: "say a,b", Refires: -1},
		},
		{
			name:     "comma separated parameter with commas",
			raw:      "cmd,Command,say a,b,0.25,-1",
			expected: vmf.Action{Target: "cmd", Input: "Command", Parameter: "say a,b", Delay: 0.25, Refires: -1},
		},
		{name: "too few fields", raw: "door,Open,,0", wantErr: true},
		{name: "bad delay", raw: "door,Open,,soon,-1", wantErr: true},
		{name: "bad refires", raw: "door,Open,,0,many", wantErr: true},
		{name: "too many escape fields", raw: "a\x1bb\x1bc\x1b0\x1b-1\x1bx", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := vmf.ParseAction(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, vmf.ErrMalformedValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAction_Format(t *testing.T) {
	a := vmf.Action{Target: "door", Input: "Open", Parameter: "", Delay: 0.5, Refires: -1}
	assert.Equal(t, "door\x1bOpen\x1b\x1b0.5\x1b-1", a.String())
	assert.Equal(t, "door,Open,,0.5,-1", a.Format(","))

	back, err := vmf.ParseAction(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, back)
}

func TestEntity_Connections(t *testing.T) {
	m := parseSample(t)
	relay := m.Entities.FindByID(52)
	require.NotNil(t, relay)
	require.NotNil(t, relay.Connections)
	assert.Equal(t, 4, relay.Connections.Len())
	assert.Equal(t, 3, relay.Connections.Outputs.Count("OnTrigger"))

	var targets []string
	for output, res := range relay.Connections.Actions() {
		require.NoError(t, res.Err)
		if output == "OnTrigger" {
			targets = append(targets, res.Target)
		}
	}
	assert.Equal(t, []string{"spot_a", "spot_a", "missing_door"}, targets)

	assert.True(t, relay.HasConnection("OnTrigger", "spot_a,TurnOff,,5,-1"))
	assert.False(t, relay.HasConnection("OnSpawn", "spot_a,TurnOff,,5,-1"))

	relay.AddConnection("OnTrigger", vmf.Action{Target: "spot_a", Input: "TurnOn", Refires: -1})
	assert.Equal(t, 4, relay.Connections.Outputs.Count("OnTrigger"), "duplicates are appended, never merged")

	out := m.String()
	assert.Contains(t, out, "\t\t\"OnSpawn\" \"!self,Trigger,,1.5,1\"\n\t\t\"OnTrigger\" \"spot_a\x1bTurnOn\x1b\x1b0\x1b-1\"\n\t}\n")
}

func TestEntity_AddConnectionCreatesBlock(t *testing.T) {
	e := vmf.NewEntity("logic_relay", 1)
	assert.Nil(t, e.Connections)
	assert.False(t, e.HasConnection("OnTrigger", "x"))
	assert.Equal(t, 0, e.Connections.Len())

	e.AddConnection("OnTrigger", vmf.Action{Target: "door", Input: "Open", Refires: -1})
	require.NotNil(t, e.Connections)
	assert.True(t, e.HasConnection("OnTrigger", "door\x1bOpen\x1b\x1b0\x1b-1"))

	m := vmf.New()
	m.Entities.Append(e)
	reparsed, err := vmf.Parse([]byte(m.String()))
	require.NoError(t, err)
	got := reparsed.Entities[0]
	require.NotNil(t, got.Connections)
	for _, res := range got.Connections.Actions() {
		require.NoError(t, res.Err)
		assert.Equal(t, "door", res.Target)
	}
}
