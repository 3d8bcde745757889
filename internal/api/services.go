package api

import "github.com/tsundoku-app/tsundoku-server/internal/service"

// Services groups the application services the server depends on.
type Services struct {
	Book      *service.BookService
	Shelf     *service.ShelfService
	Memo      *service.MemoService
	Knowledge *service.KnowledgeService
	Backup    *service.BackupService
	Session   *service.SessionService
}
