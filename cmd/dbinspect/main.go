package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/tsundoku")
	}
	dbPath := filepath.Join(dataPath, "store")

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Store Inspection ===")
	fmt.Println()

	statusCounts := map[domain.Status]int{}
	bookCount := 0

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("book:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return err
				}

				bookCount++
				statusCounts[book.Status]++

				if bookCount <= 5 {
					fmt.Printf("Book: %s\n", book.Title)
					fmt.Printf("  ID: %s\n", book.ID)
					fmt.Printf("  Status: %s\n", book.Status)
					if book.ISBN != "" {
						fmt.Printf("  ISBN: %s\n", book.ISBN)
					}
					if book.FinishedDate != "" {
						fmt.Printf("  Finished: %s\n", book.FinishedDate)
					}
					fmt.Println()
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading book %s: %v", it.Item().Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating books: %v", err)
	}

	memoCount := 0
	taggedMemos := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("memo:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var memo domain.Memo
				if err := json.Unmarshal(val, &memo); err != nil {
					return err
				}
				memoCount++
				if len(memo.Tags) > 0 {
					taggedMemos++
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading memo %s: %v", it.Item().Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating memos: %v", err)
	}

	shelfCount := 0
	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("shelf:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var shelf domain.Shelf
				if err := json.Unmarshal(val, &shelf); err != nil {
					return err
				}
				shelfCount++
				fmt.Printf("Shelf: %s (%d books)\n", shelf.Title, len(shelf.BookIDs))
				return nil
			})
			if err != nil {
				log.Printf("Error reading shelf %s: %v", it.Item().Key(), err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating shelves: %v", err)
	}
	if shelfCount > 0 {
		fmt.Println()
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total books: %d\n", bookCount)
	for _, status := range domain.Statuses {
		if statusCounts[status] > 0 {
			fmt.Printf("  %s: %d\n", status, statusCounts[status])
		}
	}
	fmt.Printf("Total memos: %d (%d tagged)\n", memoCount, taggedMemos)
	fmt.Printf("Custom shelves: %d\n", shelfCount)
}
