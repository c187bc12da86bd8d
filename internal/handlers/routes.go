package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prplkane/umazona-website/config"
	"github.com/prplkane/umazona-website/internal/drive"
	"github.com/prplkane/umazona-website/internal/middleware"
	"github.com/prplkane/umazona-website/internal/services"
	"github.com/prplkane/umazona-website/internal/util"
)

// Deps is everything the router needs. Drive fields may be nil when no
// credentials are configured; photo routes then answer 503.
type Deps struct {
	Logger   *slog.Logger
	Options  *config.Options
	Events   *services.EventService
	Contacts *services.ContactService

	Store    drive.Store
	Cache    *drive.FolderCache
	Games    *drive.GameMap
	Resolver *drive.Resolver
}

func (d Deps) driveEnabled() bool {
	return d.Store != nil && d.Cache != nil && d.Resolver != nil
}

// NewRouter wires the full REST boundary.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Cors)

	contacts := &ContactsHandler{Contacts: deps.Contacts}
	publicEvents := &PublicEventsHandler{Events: deps.Events}
	adminEvents := &AdminEventsHandler{Events: deps.Events}
	uploadTheme := &UploadThemeHandler{UploadsDir: deps.Options.UploadsDir, Logger: deps.Logger}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from the backend!"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/contacts", contacts.Create)
		r.Get("/events", publicEvents.List)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminGate(deps.Options.AdminToken, deps.Logger))

			r.Get("/events", adminEvents.List)
			r.Post("/next-game", adminEvents.Create)
			r.Put("/events/{id}", adminEvents.Update)
			r.Delete("/events/{id}", adminEvents.Delete)
			r.Post("/upload-theme", uploadTheme.Upload)
		})

		if deps.driveEnabled() {
			photos := &PhotosHandler{Store: deps.Store, Resolver: deps.Resolver, Logger: deps.Logger}
			folders := &FoldersHandler{Cache: deps.Cache, Resolver: deps.Resolver, Logger: deps.Logger}
			debug := &DebugHandler{Cache: deps.Cache, GameMap: deps.Games, Logger: deps.Logger}

			r.Get("/photos", photos.List)
			r.Get("/photo/{fileID}", photos.Proxy)
			r.Get("/folders/children", folders.Children)
			r.Get("/folders/children-with-cover", folders.ChildrenWithCover)
			r.Get("/debug/folders", debug.Folders)
			r.Get("/debug/games", debug.Games)
			r.Post("/debug/cache-clear", debug.CacheClear)
		} else {
			unavailable := func(w http.ResponseWriter, r *http.Request) {
				util.ErrorResponse(w, http.StatusServiceUnavailable, "photo service is not configured")
			}
			r.Get("/photos", unavailable)
			r.Get("/photo/{fileID}", unavailable)
			r.Get("/folders/children", unavailable)
			r.Get("/folders/children-with-cover", unavailable)
			r.Get("/debug/folders", unavailable)
			r.Get("/debug/games", unavailable)
			r.Post("/debug/cache-clear", unavailable)
		}
	})

	uploadsFS := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.Options.UploadsDir)))
	r.Get("/uploads/*", uploadsFS.ServeHTTP)

	return r
}
