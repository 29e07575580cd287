// Package taxonomy groups posts by tag and by category.
package taxonomy

import (
	"sort"

	"git.home.luguber.info/inful/sitegen/internal/content"
)

// Index maps terms to the posts carrying them. Both the term order and the
// per-term post order follow the order posts were indexed in.
type Index struct {
	terms []string
	posts map[string][]*content.Post
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{posts: make(map[string][]*content.Post)}
}

// Add appends post under term.
func (idx *Index) Add(term string, post *content.Post) {
	if _, ok := idx.posts[term]; !ok {
		idx.terms = append(idx.terms, term)
	}
	idx.posts[term] = append(idx.posts[term], post)
}

// Terms returns terms in first-seen order.
func (idx *Index) Terms() []string {
	return append([]string(nil), idx.terms...)
}

// Sorted returns terms in lexicographic order.
func (idx *Index) Sorted() []string {
	terms := idx.Terms()
	sort.Strings(terms)
	return terms
}

// Posts returns the posts listed under term.
func (idx *Index) Posts(term string) []*content.Post {
	return idx.posts[term]
}

// Count is the number of entries under term.
func (idx *Index) Count(term string) int { return len(idx.posts[term]) }

// Len is the number of distinct terms.
func (idx *Index) Len() int { return len(idx.terms) }

// IndexPosts builds the tag and category indexes. A post listing the same term
// twice is recorded twice.
func IndexPosts(posts []*content.Post) (tags, categories *Index) {
	tags, categories = NewIndex(), NewIndex()
	for _, post := range posts {
		for _, tag := range post.Tags {
			tags.Add(tag, post)
		}
		for _, category := range post.Categories {
			categories.Add(category, post)
		}
	}
	return tags, categories
}
