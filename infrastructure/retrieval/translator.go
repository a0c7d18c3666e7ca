package retrieval

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/flightline-ai/supportbench/internal/ports"
)

// translatorPrompt frames retrieved dictionary entries for the LLM, kept
// close to the dictionary assistant's original wording.
const translatorPrompt = `You are a dictionary assistant. Use the dictionary entries below to help translate.

Dictionary Context:
{{.Context}}

User Question: {{.Question}}

Instructions:
- If the word is in the dictionary, provide the definition or translation
- If not found, say "I couldn't find that word in the dictionary"
- Be helpful, friendly, and concise

Translation:`

// Translator answers dictionary questions by retrieving matching entries
// and asking the LLM to phrase the translation.
type Translator struct {
	store *Store
	llm   ports.LLMClient
	tmpl  *template.Template
	topK  int
}

// TranslatorOption customizes translator construction.
type TranslatorOption func(*Translator)

// WithTopK sets how many dictionary entries are retrieved per question.
func WithTopK(topK int) TranslatorOption {
	return func(t *Translator) {
		if topK > 0 {
			t.topK = topK
		}
	}
}

// NewTranslator creates a translator over the given store and LLM client.
func NewTranslator(store *Store, llm ports.LLMClient, opts ...TranslatorOption) (*Translator, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if llm == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}

	tmpl, err := template.New("translator").Parse(translatorPrompt)
	if err != nil {
		return nil, fmt.Errorf("parsing translator prompt: %w", err)
	}

	t := &Translator{
		store: store,
		llm:   llm,
		tmpl:  tmpl,
		topK:  DefaultTopK,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Translate answers a dictionary question using retrieved entries.
func (t *Translator) Translate(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question cannot be empty")
	}

	matches, err := t.store.Search(ctx, question, t.topK)
	if err != nil {
		return "", fmt.Errorf("retrieving dictionary entries: %w", err)
	}

	prompt, err := t.buildPrompt(question, matches)
	if err != nil {
		return "", err
	}

	response, err := t.llm.Complete(ctx, prompt, map[string]any{"temperature": 0.3})
	if err != nil {
		return "", fmt.Errorf("translating %q: %w", question, err)
	}
	return strings.TrimSpace(response), nil
}

func (t *Translator) buildPrompt(question string, matches []Match) (string, error) {
	var contextBlock strings.Builder
	if len(matches) == 0 {
		contextBlock.WriteString("(no matching entries)")
	}
	for i, match := range matches {
		if i > 0 {
			contextBlock.WriteString("\n\n")
		}
		contextBlock.WriteString(match.Entry.Term + ": " + match.Entry.Definition)
		if match.Entry.Example != "" {
			contextBlock.WriteString("\nExample: " + match.Entry.Example)
		}
	}

	var prompt strings.Builder
	err := t.tmpl.Execute(&prompt, struct {
		Context  string
		Question string
	}{
		Context:  contextBlock.String(),
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("rendering translator prompt: %w", err)
	}
	return prompt.String(), nil
}
