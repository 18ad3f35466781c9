package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickstash/catadm/internal/domain/catalog"
	"github.com/brickstash/catadm/internal/domain/model"
)

func TestRequireKind(t *testing.T) {
	t.Parallel()

	kind, err := requireKind("part_colors")
	require.NoError(t, err)
	assert.Equal(t, catalog.KindPartColors, kind)

	_, err = requireKind("")
	require.Error(t, err)

	_, err = requireKind("gadgets")
	require.Error(t, err)
}

func TestReadPayload(t *testing.T) {
	t.Parallel()

	payload, err := readPayload(`{"name":"Red"}`, "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Red"}`, string(payload))

	_, err = readPayload("", "")
	require.Error(t, err, "payload source is mandatory")

	_, err = readPayload(`[1,2]`, "")
	require.Error(t, err, "arrays are not valid record payloads")

	_, err = readPayload(`{"name":"Red"}`, "some.json")
	require.Error(t, err, "inline and file payloads are mutually exclusive")
}

func TestReadPayload_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Azure"}`), 0o600))

	payload, err := readPayload("", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Azure"}`, string(payload))
}

func TestPrintProjected(t *testing.T) {
	t.Parallel()

	rows := []catalog.Record{
		model.Color{ID: 1, Name: "Red", Hex: "#C91A09"},
		model.Color{ID: 2, Name: "Blue", Hex: "#0055BF"},
	}

	var plain bytes.Buffer
	require.NoError(t, printProjected(&plain, rows, ""))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(plain.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Red", decoded[0]["name"])

	var projected bytes.Buffer
	require.NoError(t, printProjected(&projected, rows, "[].name"))
	var names []string
	require.NoError(t, json.Unmarshal(projected.Bytes(), &names))
	assert.Equal(t, []string{"Red", "Blue"}, names)

	err := printProjected(&bytes.Buffer{}, rows, "[")
	require.Error(t, err, "broken expressions surface instead of printing nothing")
}

func TestParseListCmdFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseListCmdFlags([]string{"--kind", "colors", "--search", "red", "--select", "[].id"})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindColors, opts.Kind)
	assert.Equal(t, "red", opts.Search)
	assert.Equal(t, "[].id", opts.Select)

	_, err = parseListCmdFlags([]string{"--kind", "colors", "--select", "["})
	require.Error(t, err)

	_, err = parseListCmdFlags([]string{"--search", "red"})
	require.Error(t, err, "kind is mandatory")
}

func TestParseDeleteCmdFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseDeleteCmdFlags([]string{"--kind", "sets", "--id", "12", "--yes"})
	require.NoError(t, err)
	assert.Equal(t, catalog.KindSets, opts.Kind)
	assert.Equal(t, int64(12), opts.ID)
	assert.True(t, opts.Yes)

	_, err = parseDeleteCmdFlags([]string{"--kind", "sets"})
	require.Error(t, err, "id is mandatory")
}
