// Package main provides a tool to seed the book store with sample data.
//
// This registers a handful of books in various reading states, a user shelf,
// and a few tagged memos, which is handy when developing the UI against a
// fresh data directory.
//
// Usage:
//
//	DATA_PATH=~/tsundoku go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/id"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

var wipe = flag.Bool("wipe", false, "Clear all existing data before seeding")

type seedBook struct {
	title    string
	authors  []string
	isbn     string
	status   domain.Status
	finished string
}

var seedBooks = []seedBook{
	{title: "ソラリス", authors: []string{"スタニスワフ・レム", "沼野充義"}, isbn: "9784150120009", status: domain.StatusRead, finished: "2026-07-12"},
	{title: "三体", authors: []string{"劉慈欣"}, isbn: "9784152098870", status: domain.StatusReading},
	{title: "プロジェクト・ヘイル・メアリー 上", authors: []string{"アンディ・ウィアー"}, isbn: "9784150415334", status: domain.StatusWants},
	{title: "幼年期の終わり", authors: []string{"アーサー・C・クラーク"}, isbn: "9784150117764", status: domain.StatusUnread},
	{title: "アンドロイドは電気羊の夢を見るか?", authors: []string{"フィリップ・K・ディック"}, isbn: "9784150102296", status: domain.StatusUnread},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/tsundoku")
	}
	dbPath := filepath.Join(dataPath, "store")

	fmt.Printf("Opening book store at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *wipe {
		fmt.Println("Clearing existing data...")
		if err := s.ClearAllData(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
	}

	bookIDs := seedLibrary(ctx, s)
	seedShelf(ctx, s, bookIDs)
	seedMemos(ctx, s, bookIDs)

	fmt.Println("Done.")
}

func seedLibrary(ctx context.Context, s *store.Store) []string {
	ids := make([]string, 0, len(seedBooks))

	for i, sb := range seedBooks {
		book := &domain.Book{
			ID:           id.MustGenerate(id.PrefixBook),
			ISBN:         sb.isbn,
			Title:        sb.title,
			Authors:      sb.authors,
			Status:       sb.status,
			FinishedDate: sb.finished,
			// Spread registration times so newest-first ordering is visible.
			RegisteredAt: time.Now().Add(-time.Duration(len(seedBooks)-i) * 24 * time.Hour),
		}

		if err := s.CreateBook(ctx, book); err != nil {
			fmt.Printf("Skipping %q: %v\n", sb.title, err)
			continue
		}
		fmt.Printf("Registered %q (%s)\n", book.Title, book.Status)
		ids = append(ids, book.ID)
	}

	return ids
}

func seedShelf(ctx context.Context, s *store.Store, bookIDs []string) {
	if len(bookIDs) < 2 {
		return
	}

	now := time.Now()
	shelf := &domain.Shelf{
		ID:          id.MustGenerate(id.PrefixShelf),
		Title:       "SF名作",
		Description: "読み継がれる宇宙もの",
		BookIDs:     bookIDs[:2],
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.CreateShelf(ctx, shelf); err != nil {
		fmt.Printf("Skipping shelf: %v\n", err)
		return
	}
	fmt.Printf("Created shelf %q with %d books\n", shelf.Title, len(shelf.BookIDs))
}

func seedMemos(ctx context.Context, s *store.Store, bookIDs []string) {
	if len(bookIDs) == 0 {
		return
	}

	memos := []*domain.Memo{
		{
			ID:        id.MustGenerate(id.PrefixMemo),
			BookID:    bookIDs[0],
			Page:      87,
			Quote:     "我々は鏡を求めているのではない",
			Tags:      []string{"#名言", "#SF"},
			CreatedAt: time.Now().Add(-2 * time.Hour),
		},
		{
			ID:        id.MustGenerate(id.PrefixMemo),
			BookID:    bookIDs[0],
			Comment:   "思考する海という着想が何度読んでも新しい",
			Tags:      []string{"#SF"},
			CreatedAt: time.Now().Add(-1 * time.Hour),
		},
	}

	for _, memo := range memos {
		if err := s.CreateMemo(ctx, memo); err != nil {
			fmt.Printf("Skipping memo: %v\n", err)
			continue
		}
	}
	fmt.Printf("Created %d memos\n", len(memos))
}
