package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateModelInput_TracksPresentFields(t *testing.T) {
	var in UpdateModelInput
	require.NoError(t, json.Unmarshal([]byte(`{"description": null, "tags": ["a"]}`), &in))

	assert.True(t, in.Has("description"))
	assert.Nil(t, in.Description)
	assert.True(t, in.Has("tags"))
	assert.Equal(t, &[]string{"a"}, in.Tags)
	assert.False(t, in.Has("name"))
}

func TestUpdateModelInput_KeepsPathID(t *testing.T) {
	in := UpdateModelInput{Id: "abc"}
	require.NoError(t, json.Unmarshal([]byte(`{"name": "renamed"}`), &in))

	assert.Equal(t, "abc", in.Id)
	require.NotNil(t, in.Name)
	assert.Equal(t, "renamed", *in.Name)
}

func TestModelCreate_TracksPresentFields(t *testing.T) {
	var in ModelCreate
	require.NoError(t, json.Unmarshal([]byte(`{"name": "m", "framework": "onnx", "version": null}`), &in))

	assert.Equal(t, "m", in.Name)
	assert.True(t, in.Has("version"))
	assert.Nil(t, in.Version)
	assert.False(t, in.Has("metrics"))

	var literal ModelCreate
	assert.False(t, literal.Has("version"))
}

func TestModelCreate_RejectsNonObject(t *testing.T) {
	var in ModelCreate
	assert.Error(t, json.Unmarshal([]byte(`["m"]`), &in))
}
