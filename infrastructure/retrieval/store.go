// Package retrieval provides an embedded vector store of dictionary
// entries and a retrieval-augmented translator over it. It backs the
// dictionary assistant surface of the chat API.
package retrieval

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"os"
	"strings"

	"github.com/philippgille/chromem-go"
)

const collectionName = "dictionary"

// DefaultTopK is the number of dictionary entries retrieved per query.
const DefaultTopK = 3

// Entry is a single dictionary record.
type Entry struct {
	// Term is the headword, in either language.
	Term string `json:"term"`

	// Definition is the translation or explanation of the term.
	Definition string `json:"definition"`

	// Example optionally shows the term used in a sentence.
	Example string `json:"example,omitempty"`
}

// Match is a dictionary entry returned by a similarity search.
type Match struct {
	Entry      Entry
	Similarity float64
}

// Store holds dictionary entries in an in-memory chromem collection.
type Store struct {
	col *chromem.Collection
}

// StoreOption customizes store construction.
type StoreOption func(*storeSettings)

type storeSettings struct {
	embed chromem.EmbeddingFunc
}

// WithEmbeddingFunc replaces the default local embedding with a custom
// one, for example chromem's OpenAI embedding function.
func WithEmbeddingFunc(embed chromem.EmbeddingFunc) StoreOption {
	return func(s *storeSettings) { s.embed = embed }
}

// NewStore creates an empty in-memory dictionary store. Without options
// it uses a local character trigram embedding, so it works offline.
func NewStore(opts ...StoreOption) (*Store, error) {
	settings := storeSettings{embed: localTrigramEmbedding}
	for _, opt := range opts {
		opt(&settings)
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection(collectionName, nil, settings.embed)
	if err != nil {
		return nil, fmt.Errorf("creating dictionary collection: %w", err)
	}
	return &Store{col: col}, nil
}

// Add inserts entries into the store. Entries with an empty term are rejected.
func (s *Store) Add(ctx context.Context, entries ...Entry) error {
	for i, entry := range entries {
		if strings.TrimSpace(entry.Term) == "" {
			return fmt.Errorf("entry %d: term cannot be empty", i)
		}

		payload, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encoding entry %q: %w", entry.Term, err)
		}

		doc := chromem.Document{
			ID:      fmt.Sprintf("entry-%d-%s", s.col.Count(), entry.Term),
			Content: entry.Term + ": " + entry.Definition,
			Metadata: map[string]string{
				"entry": string(payload),
			},
		}
		if err := s.col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("adding entry %q: %w", entry.Term, err)
		}
	}
	return nil
}

// Count returns the number of stored entries.
func (s *Store) Count() int { return s.col.Count() }

// Search returns up to topK entries ranked by similarity to the query.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	// chromem rejects result counts above the collection size.
	if count := s.col.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}

	results, err := s.col.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying dictionary: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, result := range results {
		var entry Entry
		if raw, ok := result.Metadata["entry"]; ok {
			if err := json.Unmarshal([]byte(raw), &entry); err != nil {
				return nil, fmt.Errorf("decoding stored entry: %w", err)
			}
		}
		matches = append(matches, Match{
			Entry:      entry,
			Similarity: float64(result.Similarity),
		})
	}
	return matches, nil
}

// LoadFile reads line-delimited JSON dictionary entries from path.
func (s *Store) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer f.Close()
	return s.Load(ctx, f)
}

// Load reads line-delimited JSON dictionary entries from r. Blank lines
// are skipped; a malformed line aborts the load.
func (s *Store) Load(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	loaded := 0
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(text), &entry); err != nil {
			return loaded, fmt.Errorf("dictionary line %d: %w", line, err)
		}
		if err := s.Add(ctx, entry); err != nil {
			return loaded, fmt.Errorf("dictionary line %d: %w", line, err)
		}
		loaded++
	}
	if err := scanner.Err(); err != nil {
		return loaded, fmt.Errorf("reading dictionary: %w", err)
	}
	return loaded, nil
}

// embeddingDims is the fixed width of the local trigram embedding.
const embeddingDims = 256

// localTrigramEmbedding maps text to a normalized bag-of-trigrams vector.
// It is not a semantic embedding, but dictionary lookups are near-exact
// string matches, where character overlap is a good signal, and it keeps
// the store usable without any external embedding service.
func localTrigramEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	folded := strings.ToLower(strings.TrimSpace(text))
	runes := []rune(folded)

	if len(runes) < 3 {
		h := fnv.New32a()
		h.Write([]byte(folded))
		vec[h.Sum32()%embeddingDims]++
	} else {
		for i := 0; i+3 <= len(runes); i++ {
			h := fnv.New32a()
			h.Write([]byte(string(runes[i : i+3])))
			vec[h.Sum32()%embeddingDims]++
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}
