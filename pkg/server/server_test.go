package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/blueprint"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/catalog"
	pkgio "github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/io"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/observability"
	"github.com/CheeseJedi/HELLION.Explorer-sub000/pkg/store"
)

func setupTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	srv := New(Options{
		Store:  st,
		Logger: log.New(io.Discard),
	})
	return srv, st
}

// outpost is a hub with an airlock docked to its first port.
func outpost(t *testing.T) []byte {
	t.Helper()
	bp := blueprint.New(catalog.Default())
	hub, status := bp.AddStructure(3)
	require.Equal(t, blueprint.Success, status)
	am, status := bp.AddStructure(1)
	require.Equal(t, blueprint.Success, status)
	require.Equal(t, blueprint.Success, bp.DockPorts(hub.Port("StandardDockingPortA"), am.Port("StandardDockingPortA")))

	data, err := pkgio.Marshal(bp)
	require.NoError(t, err)
	return data
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		r = bytes.NewReader(b)
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func create(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/blueprints", outpost(t))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp CreateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, 2, resp.Structures)
	assert.Empty(t, resp.Repairs)
	return resp.ID
}

func statusOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Status
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)
	rr := do(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCreateAndGet(t *testing.T) {
	srv, st := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)

	rr := do(t, h, http.MethodGet, "/blueprints", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Equal(t, []string{id}, list.IDs)

	rr = do(t, h, http.MethodGet, "/blueprints/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	stored, err := st.Get(t.Context(), id)
	require.NoError(t, err)
	assert.JSONEq(t, string(stored), rr.Body.String())

	bp, repairs, err := pkgio.Unmarshal(rr.Body.Bytes(), catalog.Default())
	require.NoError(t, err)
	assert.Empty(t, repairs)
	assert.Equal(t, 2, bp.Len())
	assert.Equal(t, 1, bp.Stats().DockedPairs)
}

func TestCreateInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed", "{", "INVALID_FORMAT"},
		{"wrong object type", `{"__ObjectType":"Ship","Version":0.04,"Structures":[]}`, "INVALID_FORMAT"},
		{"unknown type", `{"__ObjectType":"StationBlueprint","Version":0.04,"Structures":[{"StructureID":0,"StructureType":"NOPE","DockingPorts":[]}]}`, "UNKNOWN_STRUCTURE_TYPE"},
	}
	srv, _ := setupTestServer(t)
	h := srv.Handler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/blueprints", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
		})
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := setupTestServer(t)
	h := srv.Handler()

	for _, path := range []string{"/blueprints/missing", "/blueprints/missing/tree"} {
		rr := do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
	rr := do(t, h, http.MethodPost, "/blueprints/missing/undock", PortRef{Structure: 0, Port: "StandardDockingPortA"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTree(t *testing.T) {
	srv, _ := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)

	rr := do(t, h, http.MethodGet, "/blueprints/"+id+"/tree", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var forest []TreeNode
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &forest))
	require.Len(t, forest, 1)

	root := forest[0]
	assert.Equal(t, 0, root.Structure)
	assert.Equal(t, "CIR", root.Type)
	assert.True(t, root.Primary)
	assert.Empty(t, root.Via)
	require.Len(t, root.Ports, 4)

	first := root.Ports[0]
	assert.Equal(t, "StandardDockingPortA", first.Name)
	assert.Equal(t, 1, first.Order)
	require.NotNil(t, first.DockedTo)
	assert.Equal(t, PortRef{Structure: 1, Port: "StandardDockingPortA"}, *first.DockedTo)
	require.NotNil(t, first.Child)
	assert.Equal(t, "AM", first.Child.Type)
	assert.Equal(t, "StandardDockingPortA", first.Child.Via)
	assert.Nil(t, first.Child.Ports[0].Child, "port leading back to the parent has no child")
}

func TestMutations(t *testing.T) {
	srv, st := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)
	base := "/blueprints/" + id

	rr := do(t, h, http.MethodPost, base+"/structures", AddStructureRequest{Type: "CM"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var added StructureResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, StructureResponse{ID: 2, Type: "CM", Root: true, Status: "Success"}, added)

	dock := DockRequest{
		A: PortRef{Structure: 0, Port: "StandardDockingPortB"},
		B: PortRef{Structure: 2, Port: "StandardDockingPortA"},
	}
	steps := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
		status string
	}{
		{"dock", http.MethodPost, base + "/dock", dock, http.StatusOK, "Success"},
		{"dock again", http.MethodPost, base + "/dock", dock, http.StatusConflict, "AlreadyDockedPortA"},
		{"remove docked", http.MethodDelete, base + "/structures/2", nil, http.StatusConflict, "StructureStillDocked"},
		{"undock", http.MethodPost, base + "/undock", PortRef{Structure: 0, Port: "StandardDockingPortB"}, http.StatusOK, "Success"},
		{"undock again", http.MethodPost, base + "/undock", PortRef{Structure: 0, Port: "StandardDockingPortB"}, http.StatusConflict, "PortANotDocked"},
		{"undock unknown port", http.MethodPost, base + "/undock", PortRef{Structure: 0, Port: "Nope"}, http.StatusConflict, "InvalidPortA"},
		{"remove", http.MethodDelete, base + "/structures/2", nil, http.StatusOK, "Success"},
		{"remove missing", http.MethodDelete, base + "/structures/99", nil, http.StatusNotFound, "StructureNotFound"},
		{"duplicate id", http.MethodPost, base + "/structures", AddStructureRequest{Type: "CM", ID: new(int)}, http.StatusConflict, "DuplicateStructureID"},
	}
	for _, step := range steps {
		rr := do(t, h, step.method, step.path, step.body)
		assert.Equal(t, step.code, rr.Code, "%s: %s", step.name, rr.Body.String())
		assert.Equal(t, step.status, statusOf(t, rr), step.name)
	}

	data, err := st.Get(t.Context(), id)
	require.NoError(t, err)
	bp, _, err := pkgio.Unmarshal(data, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, 2, bp.Len())
	assert.Nil(t, bp.GetStructure(2))
}

func TestAddStructureToEmptiedBlueprint(t *testing.T) {
	srv, st := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)
	base := "/blueprints/" + id

	steps := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
		status string
	}{
		{"undock", http.MethodPost, base + "/undock", PortRef{Structure: 0, Port: "StandardDockingPortA"}, http.StatusOK, "Success"},
		{"remove 1", http.MethodDelete, base + "/structures/1", nil, http.StatusOK, "Success"},
		{"remove 0", http.MethodDelete, base + "/structures/0", nil, http.StatusOK, "Success"},
		{"add at 5", http.MethodPost, base + "/structures", AddStructureRequest{Type: "CM", ID: intPtr(5)}, http.StatusConflict, "MissingRootStructure"},
	}
	for _, step := range steps {
		rr := do(t, h, step.method, step.path, step.body)
		assert.Equal(t, step.code, rr.Code, "%s: %s", step.name, rr.Body.String())
		assert.Equal(t, step.status, statusOf(t, rr), step.name)
	}

	rr := do(t, h, http.MethodPost, base+"/structures", AddStructureRequest{Type: "CM"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	data, err := st.Get(t.Context(), id)
	require.NoError(t, err)
	bp, _, err := pkgio.Unmarshal(data, catalog.Default())
	require.NoError(t, err)
	require.Equal(t, 1, bp.Len())
	assert.True(t, bp.GetStructure(0).IsPrimaryRoot())
}

func intPtr(v int) *int { return &v }

func TestAddStructureRequestErrors(t *testing.T) {
	srv, _ := setupTestServer(t)
	h := srv.Handler()
	base := "/blueprints/" + create(t, h)

	rr := do(t, h, http.MethodPost, base+"/structures", AddStructureRequest{Type: "WARP"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, base+"/structures", `{"kind":"CM"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodDelete, base+"/structures/x", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDelete(t *testing.T) {
	srv, st := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)

	rr := do(t, h, http.MethodDelete, "/blueprints/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	_, err := st.Get(t.Context(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rr = do(t, h, http.MethodGet, "/blueprints/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestConcurrentMutations(t *testing.T) {
	srv, st := setupTestServer(t)
	h := srv.Handler()
	id := create(t, h)

	const n = 20
	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/blueprints/"+id+"/structures",
				strings.NewReader(`{"type":"LSM"}`))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			codes[i] = rr.Code
		}()
	}
	wg.Wait()

	for i, code := range codes {
		assert.Equal(t, http.StatusCreated, code, "request %d", i)
	}

	data, err := st.Get(t.Context(), id)
	require.NoError(t, err)
	bp, _, err := pkgio.Unmarshal(data, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, n+2, bp.Len())
	assert.Equal(t, n, bp.Stats().SecondaryRoots)
}

func TestMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	observability.SetEngineHooks(metrics)
	observability.SetHTTPHooks(metrics)
	t.Cleanup(observability.Reset)

	srv := New(Options{
		Store:    store.NewMemoryStore(),
		Logger:   log.New(io.Discard),
		Registry: metrics.Registry(),
	})
	h := srv.Handler()
	id := create(t, h)
	do(t, h, http.MethodPost, "/blueprints/"+id+"/undock", PortRef{Structure: 0, Port: "StandardDockingPortA"})

	rr := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, want := range []string{
		`hellion_blueprint_loads_total{result="ok"} 1`,
		`hellion_blueprint_mutations_total{op="undock",status="Success"} 1`,
		`hellion_http_requests_total{method="POST",route="/blueprints`,
	} {
		assert.Contains(t, body, want)
	}
}
