package fzf

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/zetbrowse/zb/internal/note"
)

// FuzzyFinder encapsulates the fuzzy finder functionality
type FuzzyFinder struct {
	Header string
	notes  []note.Note
}

// Lister supplies the candidate notes, most commonly the vault store.
type Lister interface {
	ListAll() ([]note.Note, error)
}

func NewFuzzyFinder(header string) *FuzzyFinder {
	return &FuzzyFinder{Header: header}
}

func (f *FuzzyFinder) Run(src Lister, execute bool) (string, error) {
	return f.RunWithQuery(src, "", execute)
}

func (f *FuzzyFinder) RunWithQuery(src Lister, query string, execute bool) (string, error) {
	if execute {
		f.findAndExecute(src, query)
		return "", nil
	}
	return f.findAndReturn(src, query)
}

func (f *FuzzyFinder) find(src Lister, query string) (int, error) {
	notes, err := src.ListAll()
	if err != nil {
		return -1, fmt.Errorf("error listing notes: %w", err)
	}

	f.notes = notes

	return f.fuzzySelectNote(query)
}

// findAndReturn handles the logic of finding and returning the selected note
func (f *FuzzyFinder) findAndReturn(src Lister, query string) (string, error) {
	idx, err := f.find(src, query)
	if err != nil {
		f.handleFuzzySelectError(err)
		return "", err
	}

	if idx == -1 {
		return "", fmt.Errorf("no note selected")
	}

	return f.notes[idx].Path, nil
}

// findAndExecute encapsulates the common logic for note finding and execution
func (f *FuzzyFinder) findAndExecute(src Lister, query string) {
	idx, err := f.find(src, query)
	if err != nil {
		f.handleFuzzySelectError(err)
		return
	}

	if idx != -1 {
		f.Execute(idx)
	}
}

// fuzzySelectNote performs fuzzy selection on notes based on query
func (f *FuzzyFinder) fuzzySelectNote(query string) (int, error) {
	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}

	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}

	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	var titlesWithTags []string
	for _, n := range f.notes {
		titleWithTags := ""

		if len(n.Tags) == 0 {
			titleWithTags = fmt.Sprintf(
				"%s [No tags] ",
				n.DisplayTitle(),
			)
		} else {
			titleWithTags = fmt.Sprintf(
				"%s [Tags: %s] ",
				n.DisplayTitle(),
				strings.Join(n.Tags, ", "),
			)
		}

		titlesWithTags = append(titlesWithTags, titleWithTags)
	}

	return fuzzyfinder.Find(f.notes, func(i int) string {
		return titlesWithTags[i]
	}, options...)
}

func (f *FuzzyFinder) renderMarkdownPreview(
	i, w, h int,
) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.notes[i].Path)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}

// handleFuzzySelectError prints appropriate messages for fuzzy select errors
func (f *FuzzyFinder) handleFuzzySelectError(err error) {
	if err == fuzzyfinder.ErrAbort {
		fmt.Println("No note selected")
	} else {
		fmt.Println("Error selecting note:", err)
	}
}

// Execute opens the selected note in the configured editor.
func (f *FuzzyFinder) Execute(idx int) {
	if err := note.OpenFromPath(f.notes[idx].Path); err != nil {
		fmt.Println("Error opening note:", err)
	}
}
