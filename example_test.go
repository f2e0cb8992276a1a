package parsecache_test

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/parsecache"
)

// Verse is the structured record an expensive parser produces for one line
// of text.
type Verse struct {
	Quote    string `json:"quote"`
	Category string `json:"category"`
	Book     string `json:"book"`
	Position string `json:"position"`
}

// parseVerse stands in for the real line-oriented parser.
func parseVerse(_ context.Context, content string) (Verse, error) {
	return Verse{Quote: content, Book: "Bhagavad Gita", Position: "1.1"}, nil
}

func ExampleMemoize() {
	ctx := context.Background()

	// Endpoint and TTL resolve from REDIS_HOST, REDIS_PORT, REDIS_PASSWORD,
	// REDIS_DB and CACHE_TTL; explicit Config fields override them. If the
	// store is unreachable the cache disables itself and parsing simply
	// runs uncached.
	cache := parsecache.New[Verse](parsecache.Options[Verse]{})
	defer cache.Close(ctx)

	parse := parsecache.Memoize(cache, parseVerse)

	content := "धर्मक्षेत्रे कुरुक्षेत्रे समवेता युयुत्सवः"
	v, err := parse(ctx, content) // parses and caches
	if err != nil {
		fmt.Println("parse:", err)
		return
	}
	v, _ = parse(ctx, content) // served from the store

	fmt.Println(v.Book, v.Position)
	fmt.Println(cache.Stats(ctx))
}

func ExampleCache_SetBatch() {
	ctx := context.Background()
	cache := parsecache.New[Verse](parsecache.Options[Verse]{})
	defer cache.Close(ctx)

	// Pre-warm a whole corpus in one round trip.
	items := []parsecache.Item[Verse]{
		{Content: "verse one", Result: Verse{Quote: "verse one", Position: "1.1"}},
		{Content: "verse two", Result: Verse{Quote: "verse two", Position: "1.2"}},
	}
	n := cache.SetBatch(ctx, items, 0)
	fmt.Println("cached:", n)

	// Drop the whole namespace when the corpus is re-imported.
	deleted := cache.Invalidate(ctx, "")
	fmt.Println("invalidated:", deleted)
}
