// Command bookmanager is a line-oriented front-end for the library
// catalog: list, add and delete authors and books, backed by MongoDB or
// by the in-memory store when no URI is configured.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/n3d1117/book-manager/config"
	"github.com/n3d1117/book-manager/controller"
	"github.com/n3d1117/book-manager/idgen"
	"github.com/n3d1117/book-manager/memory"
	"github.com/n3d1117/book-manager/model"
	"github.com/n3d1117/book-manager/mongodb"
	"github.com/n3d1117/book-manager/service"
	"github.com/n3d1117/book-manager/transaction"
)

func main() {
	configPath := flag.String("config", ".", "directory containing bookmanager.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath, "bookmanager")
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx := context.Background()
	tm, cleanup, err := buildManager(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage setup failed")
	}
	defer cleanup()

	view := &consoleView{w: os.Stdout}
	ctrl := controller.New(
		service.NewAuthorService(tm, log),
		service.NewBookService(tm, log),
		view,
		log,
	)

	repl(ctx, ctrl, idgen.ForScheme(cfg.IDScheme))
}

func buildManager(ctx context.Context, cfg *config.Config, log zerolog.Logger) (transaction.Manager, func(), error) {
	if cfg.MongoURI == "" {
		log.Info().Msg("no mongo_uri configured, using in-memory store")
		store := memory.NewStore()
		return memory.NewManager(store, cfg.AuthorsCollection, cfg.BooksCollection, log), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.MongoURI, err)
	}
	tm, err := mongodb.NewManager(connectCtx, client, cfg.Database, cfg.AuthorsCollection, cfg.BooksCollection, log)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("disconnect failed")
		}
	}
	return tm, cleanup, nil
}

const usage = `commands:
  authors                                   list all authors
  books                                     list all books
  add-author <id|-> <name>                  add an author ("-" generates an id)
  delete-author <id>                        delete an author and all their books
  add-book <id|-> <author-id> <pages> <title>   add a book
  delete-book <id>                          delete a book
  quit`

func repl(ctx context.Context, ctrl *controller.BookManagerController, newID func() string) {
	fmt.Println(usage)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "authors":
			ctrl.AllAuthors(ctx)
		case "books":
			ctrl.AllBooks(ctx)
		case "add-author":
			if len(args) < 2 {
				fmt.Println("usage: add-author <id|-> <name>")
				continue
			}
			id := args[0]
			if id == "-" {
				id = newID()
			}
			ctrl.AddAuthor(ctx, model.Author{ID: id, Name: strings.Join(args[1:], " ")})
		case "delete-author":
			if len(args) != 1 {
				fmt.Println("usage: delete-author <id>")
				continue
			}
			ctrl.DeleteAuthor(ctx, model.Author{ID: args[0]})
		case "add-book":
			if len(args) < 4 {
				fmt.Println("usage: add-book <id|-> <author-id> <pages> <title>")
				continue
			}
			pages, err := strconv.Atoi(args[2])
			if err != nil || pages < 0 {
				fmt.Println("pages must be a non-negative integer")
				continue
			}
			id := args[0]
			if id == "-" {
				id = newID()
			}
			ctrl.AddBook(ctx, model.Book{
				ID:        id,
				AuthorID:  args[1],
				PageCount: pages,
				Title:     strings.Join(args[3:], " "),
			})
		case "delete-book":
			if len(args) != 1 {
				fmt.Println("usage: delete-book <id>")
				continue
			}
			ctrl.DeleteBook(ctx, model.Book{ID: args[0]})
		case "quit", "exit":
			return
		default:
			fmt.Println(usage)
		}
	}
}
