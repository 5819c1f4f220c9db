// Package web serves the human-facing HTTP surface: the active-rooms listing
// page and the static client assets.
package web

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/GitGRG/dragonshoard/internal/game"
)

var roomsTmpl = template.Must(template.New("rooms").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Active Rooms</title>
    <style>
      body { background: #0c0c0c; color: #eee; font-family: sans-serif; padding: 20px; }
      h1 { margin-bottom: 1em; }
      ul { list-style: none; padding: 0; }
      li { margin: 0.5em 0; }
      a { color: #4af; text-decoration: none; }
      a:hover { text-decoration: underline; }
    </style>
  </head>
  <body>
    <h1>Active Rooms</h1>
    <ul>
{{- range .}}
      <li><strong>{{.ID}}</strong> ({{.Occupancy}}/{{.Capacity}}) {{if .Joinable}}<a href="/?room={{.ID}}">Join</a>{{else}}<em>Full</em>{{end}}</li>
{{- end}}
    </ul>
  </body>
</html>
`))

type roomView struct {
	ID        string
	Occupancy int
	Capacity  int
	Joinable  bool
}

// RoomsHandler returns the handler for the active-rooms listing page. Rooms
// at capacity show "Full" instead of a join link.
//
// Precondition: store and logger must be non-nil.
func RoomsHandler(store *game.Store, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rooms := store.Snapshot()
		views := make([]roomView, 0, len(rooms))
		for _, room := range rooms {
			views = append(views, roomView{
				ID:        room.ID,
				Occupancy: room.Occupancy,
				Capacity:  game.MaxPlayers,
				Joinable:  room.Occupancy < game.MaxPlayers,
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := roomsTmpl.Execute(w, views); err != nil {
			logger.Error("rendering rooms page", zap.Error(err))
		}
	})
}

// Static returns a file server for the client assets directory.
func Static(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}
