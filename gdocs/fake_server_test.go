package gdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"md2gdocs/config"
)

// fakeGoogle serves the subset of the Docs and Drive APIs the package uses.
type fakeGoogle struct {
	t  *testing.T
	mu sync.Mutex

	batches     [][]*docs.Request
	batchCalls  int
	failures    int
	failCode    int
	bodies      []*docs.Body
	created     []string
	renamed     []string
	permissions []*drive.Permission
	comments    []*drive.Comment
	resolved    []string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	return &fakeGoogle{t: t, failCode: http.StatusServiceUnavailable}
}

func (f *fakeGoogle) client(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClientWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return c
}

func (f *fakeGoogle) allRequests() []*docs.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*docs.Request
	for _, b := range f.batches {
		all = append(all, b...)
	}
	return all
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/v1/documents":
		var in docs.Document
		f.decode(r, &in)
		id := fmt.Sprintf("doc-%d", len(f.created)+1)
		f.created = append(f.created, in.Title)
		writeJSON(w, &docs.Document{DocumentId: id, Title: in.Title})

	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		f.batchCalls++
		if f.failures > 0 {
			f.failures--
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.failCode)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":"try later"}}`, f.failCode)
			return
		}
		var in docs.BatchUpdateDocumentRequest
		f.decode(r, &in)
		f.batches = append(f.batches, in.Requests)
		writeJSON(w, &docs.BatchUpdateDocumentResponse{})

	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v1/documents/"):
		body := &docs.Body{}
		if len(f.bodies) > 0 {
			body = f.bodies[0]
			if len(f.bodies) > 1 {
				f.bodies = f.bodies[1:]
			}
		}
		writeJSON(w, &docs.Document{DocumentId: strings.TrimPrefix(path, "/v1/documents/"), Body: body})

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/permissions"):
		var perm drive.Permission
		f.decode(r, &perm)
		f.permissions = append(f.permissions, &perm)
		writeJSON(w, &perm)

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/comments"):
		writeJSON(w, &drive.CommentList{Comments: f.comments})

	case r.Method == http.MethodPatch && strings.Contains(path, "/comments/"):
		id := path[strings.LastIndex(path, "/")+1:]
		if id == "missing" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":{"code":404,"message":"not found"}}`)
			return
		}
		f.resolved = append(f.resolved, id)
		writeJSON(w, &drive.Comment{Id: id, Resolved: true})

	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/files/"):
		var file drive.File
		f.decode(r, &file)
		f.renamed = append(f.renamed, file.Name)
		writeJSON(w, &file)

	default:
		f.t.Errorf("unexpected request %s %s", r.Method, path)
		http.NotFound(w, r)
	}
}

func (f *fakeGoogle) decode(r *http.Request, v any) {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		f.t.Errorf("decode %s: %v", r.URL.Path, err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.RequestsPerMinute = 0
	return cfg
}

func bodyWithEnd(end int64) *docs.Body {
	return &docs.Body{Content: []*docs.StructuralElement{
		{EndIndex: 1, SectionBreak: &docs.SectionBreak{}},
		{StartIndex: 1, EndIndex: end, Paragraph: &docs.Paragraph{}},
	}}
}

func bodyWithTables(starts ...int64) *docs.Body {
	body := bodyWithEnd(2)
	for _, s := range starts {
		body.Content = append(body.Content, &docs.StructuralElement{
			StartIndex: s, EndIndex: s + 5, Table: &docs.Table{Rows: 1, Columns: 1},
		})
	}
	return body
}
