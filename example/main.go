package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/3-lines-studio/viewpack"
)

type post struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

var posts = []post{
	{Slug: "hello", Title: "Hello", Body: "First post."},
	{Slug: "views", Title: "Compiled views", Body: "Rendered on the server, shipped to the browser."},
}

func main() {
	app := viewpack.New(
		viewpack.WithAppRoot("."),
		viewpack.WithViews(viewpack.Views{
			Root:    "views",
			Include: []string{"**/*.mustache", "**/*.html"},
			Exclude: []string{"**/_*"},
		}),
	)

	if err := app.Compile(context.Background(), "public"); err != nil {
		slog.Error("failed to compile views", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		locals := viewpack.Locals{"title": "viewpack", "name": "World", "posts": posts}
		if err := app.Render(w, "index", locals); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	router.Get("/posts/{slug}", func(w http.ResponseWriter, req *http.Request) {
		slug := chi.URLParam(req, "slug")
		for _, p := range posts {
			if p.Slug == slug {
				locals := viewpack.Locals{"title": "viewpack", "post": p}
				if err := app.Render(w, "blog.post", locals); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}
		}
		http.NotFound(w, req)
	})

	addr := ":8080"
	slog.Info("serving", "url", "http://localhost"+addr)
	if err := http.ListenAndServe(addr, app.Wrap(router)); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
