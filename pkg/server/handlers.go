package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/errors"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	body := http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	bp, repairs, err := pkgio.ReadJSON(body, s.catalog)
	observability.Engine().OnLoad(r.Context(), lenOf(bp), len(repairs), time.Since(start), err)
	if err != nil {
		s.respondError(w, err)
		return
	}

	id, err := s.register(r.Context(), bp)
	if err != nil {
		s.respondError(w, err)
		return
	}

	resp := CreateResponse{ID: id, Structures: bp.Len()}
	for _, rep := range repairs {
		resp.Repairs = append(resp.Repairs, rep.String())
	}
	s.logger.Info("Imported blueprint", "id", id, "structures", bp.Len(), "repairs", len(repairs))
	s.respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.respondJSON(w, http.StatusOK, ListResponse{IDs: ids})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.acquire(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	data, err := pkgio.Marshal(sess.bp)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.forget(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	sess, err := s.acquire(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	forest := sess.bp.Forest()
	out := make([]*TreeNode, len(forest))
	for i, n := range forest {
		out[i] = treeNode(n)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddStructure(w http.ResponseWriter, r *http.Request) {
	var req AddStructureRequest
	if !s.decode(w, r, &req) {
		return
	}
	scene, ok := s.catalog.Resolve(req.Type)
	if !ok {
		s.respondError(w, errors.New(errors.ErrCodeUnknownStructureType, "unknown structure type %q", req.Type))
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.acquire(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	var (
		st     *blueprint.Structure
		status blueprint.Status
	)
	if req.ID != nil {
		st, status = sess.bp.AddStructureWithID(scene, *req.ID)
	} else {
		st, status = sess.bp.AddStructure(scene)
	}
	if !s.commit(w, r, id, sess, "add", status) {
		return
	}
	s.respondJSON(w, http.StatusCreated, StructureResponse{
		ID:     st.ID(),
		Type:   st.Type(),
		Root:   st.IsHierarchyRoot(),
		Status: status.String(),
	})
}

func (s *Server) handleRemoveStructure(w http.ResponseWriter, r *http.Request) {
	sid, err := strconv.Atoi(chi.URLParam(r, "sid"))
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "structure id"))
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.acquire(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	status := sess.bp.RemoveStructureByID(sid)
	if !s.commit(w, r, id, sess, "remove", status) {
		return
	}
	s.respondJSON(w, http.StatusOK, StatusResponse{Status: status.String()})
}

func (s *Server) handleDock(w http.ResponseWriter, r *http.Request) {
	var req DockRequest
	if !s.decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.acquire(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	bp := sess.bp
	status := bp.DockPorts(
		bp.Port(req.A.Structure, catalog.PortName(req.A.Port)),
		bp.Port(req.B.Structure, catalog.PortName(req.B.Port)),
	)
	if !s.commit(w, r, id, sess, "dock", status) {
		return
	}
	s.respondJSON(w, http.StatusOK, StatusResponse{Status: status.String()})
}

func (s *Server) handleUndock(w http.ResponseWriter, r *http.Request) {
	var req PortRef
	if !s.decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	sess, err := s.acquire(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	defer s.release(sess)

	status := sess.bp.UndockPort(sess.bp.Port(req.Structure, catalog.PortName(req.Port)))
	if !s.commit(w, r, id, sess, "undock", status) {
		return
	}
	s.respondJSON(w, http.StatusOK, StatusResponse{Status: status.String()})
}

// commit reports the mutation, persists it on success and writes the error
// response otherwise. It returns true when the caller should respond.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, id string, sess *session, op string, status blueprint.Status) bool {
	observability.Engine().OnMutation(r.Context(), op, status.String())
	if !status.OK() {
		s.logger.Debug("Mutation rejected", "id", id, "op", op, "status", status)
		s.respondStatus(w, status)
		return false
	}
	if err := s.persist(r.Context(), id, sess); err != nil {
		s.respondError(w, err)
		return false
	}
	s.logger.Debug("Mutation applied", "id", id, "op", op)
	return true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func lenOf(bp *blueprint.Blueprint) int {
	if bp == nil {
		return 0
	}
	return bp.Len()
}
