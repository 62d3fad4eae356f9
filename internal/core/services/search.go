package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/core/ports/driving"
	"github.com/custodia-labs/redline/internal/logger"
	"github.com/custodia-labs/redline/internal/markup"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// excerptWindow is the target excerpt width in bytes, centred on the
// match and clamped to document bounds.
const excerptWindow = 60

// excerptDelimiters are the sentence/clause boundaries excerpts are
// trimmed inward to, so they do not begin or end mid-token.
const excerptDelimiters = ".,;:!?\n"

// SearchService scans the whole corpus for a query and produces
// bounded, delimiter-aware excerpts ranked by hit count.
type SearchService struct {
	pages driven.PageStore
}

// NewSearchService creates a search service.
func NewSearchService(pages driven.PageStore) *SearchService {
	return &SearchService{pages: pages}
}

// Search performs a case-insensitive scan over every page's title and
// markup-stripped content.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.PageMatch, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.PageMatch{}, nil
	}
	if s.pages == nil {
		return nil, domain.ErrPageStoreUnavailable
	}

	pages, err := s.pages.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	logger.Debug("Scanning %d pages", len(pages))

	needle := foldRunes(query)
	results := make([]domain.PageMatch, 0)

	for i := range pages {
		page := &pages[i]
		plain := markup.Strip(page.Content)
		matches := findAll(plain, needle)
		titleHit := len(findAll(page.Title, needle)) > 0

		if len(matches) == 0 && !titleHit {
			continue
		}

		match := domain.PageMatch{
			PageID:       page.ID,
			Title:        page.Title,
			TotalMatches: len(matches),
		}
		if titleHit {
			// Title hits carry no content range; callers may
			// special-case the zero-length match.
			match.Matches = append(match.Matches, domain.Excerpt{Text: page.Title})
		}
		for _, m := range matches {
			if opts.MaxPerPage > 0 && len(match.Matches) >= opts.MaxPerPage {
				match.Truncated = true
				break
			}
			match.Matches = append(match.Matches, excerptAround(plain, m))
		}
		results = append(results, match)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalMatches != results[j].TotalMatches {
			return results[i].TotalMatches > results[j].TotalMatches
		}
		return results[i].PageID < results[j].PageID
	})

	logger.Info("Final results: %d pages", len(results))
	return results, nil
}

// foldRunes lowercases the query once, rune by rune, for comparison
// against folded content runes.
func foldRunes(query string) []rune {
	runes := make([]rune, 0, len(query))
	for _, r := range query {
		runes = append(runes, unicode.ToLower(r))
	}
	return runes
}

// findAll returns the byte range of every non-overlapping
// case-insensitive occurrence of needle in plain. Content runes are
// folded one at a time during the scan, never by lowering the whole
// string: a rune whose lowercase form has a different encoded length
// would shift every byte offset after it, and the returned ranges must
// index plain itself.
func findAll(plain string, needle []rune) []domain.Range {
	if len(needle) == 0 {
		return nil
	}
	var found []domain.Range
	for i := 0; i < len(plain); {
		if end, ok := matchAt(plain, i, needle); ok {
			found = append(found, domain.Range{Start: i, End: end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(plain[i:])
		i += size
	}
	return found
}

// matchAt reports whether needle matches at byte offset i, and the end
// offset of the matched text.
func matchAt(plain string, i int, needle []rune) (int, bool) {
	for _, want := range needle {
		r, size := utf8.DecodeRuneInString(plain[i:])
		if size == 0 || unicode.ToLower(r) != want {
			return 0, false
		}
		i += size
	}
	return i, true
}

// excerptAround builds the bounded context window for one match.
//
// The window is centred on the match and clamped to document bounds,
// then trimmed inward to the nearest delimiter on each side. A side
// with no delimiter keeps its raw clamped boundary. Trimming never
// crosses into the match itself.
func excerptAround(plain string, m domain.Range) domain.Excerpt {
	off, matchEnd := m.Start, m.End
	matchLen := m.Len()

	start, end := off, matchEnd
	if matchLen < excerptWindow {
		pad := excerptWindow - matchLen
		start = off - pad/2
		if start < 0 {
			start = 0
		}
		end = start + excerptWindow
		if end > len(plain) {
			end = len(plain)
			if start = end - excerptWindow; start < 0 {
				start = 0
			}
		}
	}

	// Clamping counts bytes and can land inside a multi-byte rune;
	// step to the nearest boundary outside the match.
	for start < off && !utf8.RuneStart(plain[start]) {
		start++
	}
	for end > matchEnd && end < len(plain) && !utf8.RuneStart(plain[end]) {
		end--
	}

	// Trim inward to the first delimiter after the left boundary.
	if i := strings.IndexAny(plain[start:off], excerptDelimiters); i >= 0 {
		start += i + 1
	}
	// Trim inward to the last delimiter before the right boundary,
	// keeping the delimiter so sentences end on their punctuation.
	if i := strings.LastIndexAny(plain[matchEnd:end], excerptDelimiters); i >= 0 {
		end = matchEnd + i + 1
	}

	// Drop boundary spaces left behind by delimiter trimming.
	for start < off && plain[start] == ' ' {
		start++
	}
	for end > matchEnd && plain[end-1] == ' ' {
		end--
	}

	return domain.Excerpt{
		Offset: off,
		Length: matchLen,
		Text:   plain[start:end],
	}
}
