package utils

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt_SinglePass(t *testing.T) {
	out := RenderPrompt("{subject}: {content} ({missing})", map[string]string{
		"subject": "Biology",
		"content": "cells use {subject} energy",
	})

	assert.Equal(t, "Biology: cells use {subject} energy ({missing})", out)
}

func TestPromptLoader_LoadPrompt(t *testing.T) {
	loader := NewPromptLoader(fstest.MapFS{
		"greet.txt": {Data: []byte("Hello {name}!\n\n")},
	})

	out, err := loader.LoadPrompt("greet.txt", map[string]string{"name": "Ada"})

	require.NoError(t, err)
	assert.Equal(t, "Hello Ada!", out)
}

func TestPromptLoader_MissingFile(t *testing.T) {
	loader := NewPromptLoader(fstest.MapFS{})

	_, err := loader.LoadRaw("nope.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestPromptLoader_NotesAnalysisTemplate(t *testing.T) {
	loader := NewPromptLoader(fstest.MapFS{
		"analyze_notes_base.txt": {Data: []byte("Analyze {subject}\n{examples_section}\n")},
		"examples_section.txt":   {Data: []byte("EXAMPLES")},
		"subject_math.txt":       {Data: []byte("MATH")},
		"subject_science.txt":    {Data: []byte("SCIENCE")},
		"subject_history.txt":    {Data: []byte("HISTORY")},
		"subject_general.txt":    {Data: []byte("GENERAL")},
		"notes_footer.txt":       {Data: []byte("Notes:\n{content}")},
	})

	math, err := loader.LoadNotesAnalysisTemplate("Math")
	require.NoError(t, err)
	assert.Equal(t, "Analyze {subject}\nEXAMPLES\n\nMATH\n\nNotes:\n{content}", math)

	history, err := loader.LoadNotesAnalysisTemplate("History")
	require.NoError(t, err)
	assert.Equal(t, "Analyze {subject}\n\n\nHISTORY\n\nNotes:\n{content}", history)

	other, err := loader.LoadNotesAnalysisTemplate("Art")
	require.NoError(t, err)
	assert.Contains(t, other, "GENERAL")
	assert.NotContains(t, other, "EXAMPLES")
}
