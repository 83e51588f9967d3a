package server

import (
	"context"
	"sync"
	"time"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

// session holds one resident document. mu serializes every request on it.
type session struct {
	mu sync.Mutex
	bp *blueprint.Blueprint
}

// acquire returns the locked session for id, loading the document from the
// store if it is not resident. The caller must call release.
func (s *Server) acquire(ctx context.Context, id string) (*session, error) {
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}

	for {
		s.mu.Lock()
		sess, ok := s.sessions[id]
		if !ok {
			sess = &session{}
			s.sessions[id] = sess
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if !s.resident(id, sess) {
			// Evicted while we waited.
			sess.mu.Unlock()
			continue
		}
		if sess.bp != nil {
			return sess, nil
		}

		bp, err := s.load(ctx, id)
		if err != nil {
			sess.mu.Unlock()
			s.evict(id, sess)
			return nil, err
		}
		sess.bp = bp
		return sess, nil
	}
}

func (s *Server) resident(id string, sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id] == sess
}

func (s *Server) release(sess *session) {
	sess.mu.Unlock()
}

// evict drops sess if it is still the session registered for id.
func (s *Server) evict(id string, sess *session) {
	s.mu.Lock()
	if s.sessions[id] == sess {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
}

func (s *Server) load(ctx context.Context, id string) (*blueprint.Blueprint, error) {
	start := time.Now()
	data, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	bp, repairs, err := pkgio.Unmarshal(data, s.catalog)
	structures := 0
	if bp != nil {
		structures = bp.Len()
	}
	observability.Engine().OnLoad(ctx, structures, len(repairs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	for _, r := range repairs {
		s.logger.Warn("Repaired stored blueprint", "id", id, "repair", r.String())
	}
	return bp, nil
}

// persist writes the session's blueprint back to the store. On failure the
// session is evicted so the next request reloads the stored state.
func (s *Server) persist(ctx context.Context, id string, sess *session) error {
	start := time.Now()
	data, err := pkgio.Marshal(sess.bp)
	if err == nil {
		err = s.store.Put(ctx, id, data)
	}
	observability.Engine().OnSave(ctx, len(data), time.Since(start), err)
	if err != nil {
		sess.bp = nil
		s.evict(id, sess)
		return err
	}
	sess.bp.MarkClean()
	return nil
}

// register installs a freshly imported blueprint under a new id.
func (s *Server) register(ctx context.Context, bp *blueprint.Blueprint) (string, error) {
	id := store.NewID()
	sess := &session{bp: bp}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if err := s.persist(ctx, id, sess); err != nil {
		return "", err
	}
	return id, nil
}

// forget removes id from the store and the resident set.
func (s *Server) forget(ctx context.Context, id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess != nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		sess.bp = nil
		s.evict(id, sess)
	}
	return s.store.Delete(ctx, id)
}
