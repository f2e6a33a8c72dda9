package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/kitchenrun/pkg/errors"
	"github.com/matzehuels/kitchenrun/pkg/kitchen"
	"github.com/matzehuels/kitchenrun/pkg/observability"
	"github.com/matzehuels/kitchenrun/pkg/pipeline"
	"github.com/matzehuels/kitchenrun/pkg/reorder"
	"github.com/matzehuels/kitchenrun/pkg/session"
)

type sessionResponse struct {
	ID    string          `json:"id"`
	Scene json.RawMessage `json:"scene"`

	// Changed reports whether the event changed the committed order.
	Changed *bool `json:"changed,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeKitchen(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var k *kitchen.Configurator
	if req.Modules == nil {
		k, err = kitchen.NewDefault(s.catalog)
		if err == nil {
			err = k.SetSelection(*req.Selection)
		}
	} else {
		k, err = kitchen.New(s.catalog, req.Modules, *req.Selection)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess, err := s.sessions.Create(r.Context(), k)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondSession(w, http.StatusCreated, sess, nil)
}

// session looks up the session named in the URL.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) respondSession(w http.ResponseWriter, status int, sess *session.Session, changed *bool) {
	scene, err := s.scene(sess.Snapshot())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, status, sessionResponse{ID: sess.ID, Scene: scene, Changed: changed})
}

// mutate applies fn to the session's configurator and responds with the
// new scene.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, kind string, fn func(k *kitchen.Configurator) (bool, error)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var changed bool
	err := sess.Do(func(k *kitchen.Configurator) error {
		var err error
		changed, err = fn(k)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	observability.Session().OnSessionEvent(r.Context(), sess.ID, kind)
	s.respondSession(w, http.StatusOK, sess, &changed)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := s.session(w, r); ok {
		s.respondSession(w, http.StatusOK, sess, nil)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts, err := s.renderOptions(r, s.options(kitchenRequest{}))
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), sess.Snapshot(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeRaw(w, http.StatusOK, pipeline.ContentTypes[format], artifacts[format])
}

func (s *Server) handleAddModule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, "add", func(k *kitchen.Configurator) (bool, error) {
		return true, k.Add(req.ID)
	})
}

func (s *Server) handleRemoveModule(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidIndex, "index must be an integer"))
		return
	}
	s.mutate(w, r, "remove", func(k *kitchen.Configurator) (bool, error) {
		return true, k.Remove(i)
	})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	// Decode over the current selection so absent fields keep their values.
	var sel kitchen.Selection
	sess.Do(func(k *kitchen.Configurator) error {
		sel = k.Selection()
		return nil
	})
	if err := decode(w, r, &sel); err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, "selection", func(k *kitchen.Configurator) (bool, error) {
		return true, k.SetSelection(sel)
	})
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorder.Result
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, "reorder", func(k *kitchen.Configurator) (bool, error) {
		return req.Changed(), k.Reorder(req.From, req.To)
	})
}

func (s *Server) handleListDrag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  string `json:"kind"`
		Index int    `json:"index"`
	}
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, "list-drag", func(k *kitchen.Configurator) (bool, error) {
		switch req.Kind {
		case "start":
			return false, k.StartListDrag(req.Index)
		case "drop":
			return k.DropListDrag(req.Index)
		default:
			return false, errors.New(errors.ErrCodeInvalidInput, "list-drag kind must be start or drop, got %q", req.Kind)
		}
	})
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var ev reorder.Event
	if err := decode(w, r, &ev); err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, "pointer", func(k *kitchen.Configurator) (bool, error) {
		return k.Pointer(ev), nil
	})
}
