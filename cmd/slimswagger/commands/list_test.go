package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/mikejonesguy/SlimSwagger/internal/testutil"
)

func TestSetupListFlags(t *testing.T) {
	fs, flags := SetupListFlags()
	require.NoError(t, fs.Parse([]string{}))
	assert.Equal(t, FormatText, flags.Format)
	assert.False(t, flags.Tags)
	assert.False(t, flags.Schemas)

	fs, flags = SetupListFlags()
	require.NoError(t, fs.Parse([]string{"-f", "table", "--tags", "--schemas", "-s", "api.json"}))
	assert.Equal(t, FormatTable, flags.Format)
	assert.True(t, flags.Tags)
	assert.True(t, flags.Schemas)
	assert.Equal(t, "api.json", flags.Source)
}

func TestHandleList_NoArgsAndHelp(t *testing.T) {
	assert.Error(t, HandleList([]string{}))
	assert.NoError(t, HandleList([]string{"--help"}))
}

func runListCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := runList(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func TestRunList_Text(t *testing.T) {
	source := testutil.WriteTempFile(t, "openapi.json", testutil.PetstoreOAS3JSON)

	out, err := runListCapture(t, source)
	require.NoError(t, err)
	assert.Equal(t, "addPet\ngetPet\nlistPets\n", out)

	out, err = runListCapture(t, "--tags", "--schemas", source)
	require.NoError(t, err)
	assert.Equal(t, "admin.addPet\npets.addPet\npets.getPet\npets.listPets\n\nError\nNewPet\nPet\nUnused\n", out)
}

func TestRunList_Table(t *testing.T) {
	source := testutil.WriteTempFile(t, "openapi.json", testutil.PetstoreOAS3JSON)

	out, err := runListCapture(t, "-f", "table", "--schemas", source)
	require.NoError(t, err)
	for _, want := range []string{"listPets", "addPet", "POST", "/pets/{petId}", "pets, admin", "NewPet"} {
		assert.Contains(t, out, want)
	}
}

func TestRunList_JSON(t *testing.T) {
	source := testutil.WriteTempFile(t, "openapi.json", testutil.PetstoreOAS3JSON)

	out, err := runListCapture(t, "-f", "json", source)
	require.NoError(t, err)

	var got ListOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3.0.3", got.Version)
	require.Len(t, got.Operations, 3)
	assert.Equal(t, OperationSummary{ID: "listPets", Method: "GET", Path: "/pets", Tags: []string{"pets"}}, got.Operations[0])
	assert.Empty(t, got.Schemas)
}

func TestRunList_YAML(t *testing.T) {
	source := testutil.WriteTempFile(t, "swagger.yaml", testutil.PetstoreOAS2YAML)

	out, err := runListCapture(t, "-f", "yaml", "--schemas", source)
	require.NoError(t, err)

	var got ListOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "2.0", got.Version)
	assert.Len(t, got.Operations, 2)
	assert.Equal(t, []string{"Error", "Pet", "Unused"}, got.Schemas)
}

func TestRunList_InvalidFormat(t *testing.T) {
	_, err := runListCapture(t, "-f", "xml", "api.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRunList_InsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testutil.PetstoreOAS3JSON))
	}))
	defer server.Close()

	_, err := runListCapture(t, server.URL+"/openapi.json")
	require.Error(t, err)

	out, err := runListCapture(t, "--insecure", server.URL+"/openapi.json")
	require.NoError(t, err)
	assert.Equal(t, "addPet\ngetPet\nlistPets\n", out)
}
