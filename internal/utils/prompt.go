package utils

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// PromptLoader reads prompt templates from a file system
type PromptLoader struct {
	files fs.FS
}

// NewPromptLoader wraps files, usually the embedded prompts.FS
func NewPromptLoader(files fs.FS) *PromptLoader {
	return &PromptLoader{
		files: files,
	}
}

// RenderPrompt substitutes every {key} placeholder in a single pass,
// so values that themselves contain placeholders are left untouched.
func RenderPrompt(template string, variables map[string]string) string {
	keys := make([]string, 0, len(variables))
	for key := range variables {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", variables[key])
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// LoadRaw returns a template file without substitution
func (p *PromptLoader) LoadRaw(filename string) (string, error) {
	content, err := fs.ReadFile(p.files, path.Clean(filename))
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}

// LoadPrompt reads a template and substitutes variables
func (p *PromptLoader) LoadPrompt(filename string, variables map[string]string) (string, error) {
	template, err := p.LoadRaw(filename)
	if err != nil {
		return "", err
	}
	return RenderPrompt(template, variables), nil
}

// subjectPromptFiles maps a subject to its guidance section. Unknown subjects use General.
var subjectPromptFiles = map[string]string{
	"Math":    "subject_math.txt",
	"Science": "subject_science.txt",
	"History": "subject_history.txt",
	"General": "subject_general.txt",
}

// LoadNotesAnalysisTemplate builds the server-side analysis template for a subject.
// The result still contains the {subject} and {content} placeholders.
func (p *PromptLoader) LoadNotesAnalysisTemplate(subject string) (string, error) {
	base, err := p.LoadRaw("analyze_notes_base.txt")
	if err != nil {
		return "", err
	}

	examples := ""
	if subject == "Math" || subject == "Science" {
		examples, err = p.LoadRaw("examples_section.txt")
		if err != nil {
			return "", err
		}
	}
	base = strings.ReplaceAll(base, "{examples_section}", examples)

	file, ok := subjectPromptFiles[subject]
	if !ok {
		file = subjectPromptFiles["General"]
	}
	guidance, err := p.LoadRaw(file)
	if err != nil {
		return "", err
	}

	footer, err := p.LoadRaw("notes_footer.txt")
	if err != nil {
		return "", err
	}

	return base + "\n\n" + guidance + "\n\n" + footer, nil
}

// LoadOutlinePrompt renders the outline generation prompt
func (p *PromptLoader) LoadOutlinePrompt(subject, content string) (string, error) {
	return p.LoadPrompt("generate_outline.txt", map[string]string{
		"subject": subject,
		"content": content,
	})
}

// LoadConnectionsPrompt renders the concept connections prompt
func (p *PromptLoader) LoadConnectionsPrompt(content string) (string, error) {
	return p.LoadPrompt("find_connections.txt", map[string]string{
		"content": content,
	})
}

// LoadFlashcardsPrompt renders the flashcard generation prompt
func (p *PromptLoader) LoadFlashcardsPrompt(content string) (string, error) {
	return p.LoadPrompt("generate_flashcards.txt", map[string]string{
		"content": content,
	})
}
