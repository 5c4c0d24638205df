package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/internal/domain/grounds"
	"github.com/roadpenalty/appealcore/internal/prediction"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGroundsList(t *testing.T) {
	out, err := runCommand(t, "grounds", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "signage-invalid")
	assert.Contains(t, out, "medical-emergency")
	assert.Equal(t, grounds.Default().Len(), len(strings.Split(strings.TrimSpace(out), "\n")))
}

func TestGroundsListByCategory(t *testing.T) {
	out, err := runCommand(t, "grounds", "list", "--category", "mitigating")
	require.NoError(t, err)
	assert.Contains(t, out, "medical-emergency")
	assert.NotContains(t, out, "signage-invalid")
}

func TestGroundsSearch(t *testing.T) {
	out, err := runCommand(t, "grounds", "search", "faded")
	require.NoError(t, err)
	assert.Contains(t, out, "signage-invalid")

	out, err = runCommand(t, "grounds", "search", "zzzznothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No grounds matched")
}

func TestGroundsShow(t *testing.T) {
	out, err := runCommand(t, "grounds", "show", "blue-badge")
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Badge")
	assert.Contains(t, out, "Legal basis")

	_, err = runCommand(t, "grounds", "show", "no-such-id")
	require.Error(t, err)
}

func TestGroundsShowJSON(t *testing.T) {
	out, err := runCommand(t, "--json", "grounds", "show", "blue-badge")
	require.NoError(t, err)

	var d grounds.Definition
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, "blue-badge", d.ID)
}

func TestPredictText(t *testing.T) {
	out, err := runCommand(t, "predict",
		"the parking sign was completely faded and unreadable",
		"--days-since", "10",
		"--evidence", "photographs of the sign")
	require.NoError(t, err)
	assert.Contains(t, out, "Success probability")
	assert.Contains(t, out, "Signage was missing, obscured or non-compliant")
}

func TestPredictJSON(t *testing.T) {
	out, err := runCommand(t, "--json", "predict", "the parking sign was completely faded")
	require.NoError(t, err)

	var result prediction.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Grounds)
	assert.Equal(t, "signage-invalid", result.Grounds[0].ID)
}

func TestPredictRequiresDescription(t *testing.T) {
	_, err := runCommand(t, "predict")
	require.Error(t, err)
}

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCommand()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"chat", "predict", "grounds", "calibrate"} {
		assert.True(t, names[want], want)
	}
}
