package toyhtml

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dpotapov/toyhtml/markup"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		url         string
		body        string
		handler     *Handler
		wantStatus  int
		wantType    string
		wantBody    string
		wantHeaders map[string]string
	}{
		{
			name:       "json",
			method:     "POST",
			url:        "/",
			body:       `<input disabled>`,
			wantStatus: 200,
			wantType:   "application/json",
			wantBody: `{
  "nodes": [
    {
      "type": "tag",
      "name": "input",
      "attributes": [
        {
          "name": "disabled",
          "value": "true"
        }
      ],
      "children": []
    }
  ],
  "warnings": [],
  "errors": []
}
`,
			wantHeaders: map[string]string{"X-Parse-Warnings": "0", "X-Parse-Errors": "0"},
		},
		{
			name:        "dump",
			method:      "PUT",
			url:         "/?format=tree",
			body:        `<div><p>hi`,
			wantStatus:  200,
			wantType:    "text/plain; charset=utf-8",
			wantBody:    "| <div>\n|   <p>\n|     \"hi\"\n",
			wantHeaders: map[string]string{"X-Parse-Warnings": "2", "X-Parse-Errors": "0"},
		},
		{
			name:       "html",
			method:     "POST",
			url:        "/?format=html",
			body:       `<p>a<br>b`,
			wantStatus: 200,
			wantType:   "text/html; charset=utf-8",
			wantBody:   `<p>a<br/>b</p>`,
		},
		{
			name:       "defaultFormat",
			method:     "POST",
			url:        "/",
			body:       `<b>x</b>`,
			handler:    &Handler{DefaultFormat: markup.FormatDump},
			wantStatus: 200,
			wantBody:   "| <b>\n|   \"x\"\n",
		},
		{
			name:        "errorsAreNotFatal",
			method:      "POST",
			url:         "/?format=dump",
			body:        `<1bad> text`,
			wantStatus:  200,
			wantBody:    "| \"1bad> text\"\n",
			wantHeaders: map[string]string{"X-Parse-Errors": "1"},
		},
		{
			name:       "unknownFormat",
			method:     "POST",
			url:        "/?format=toml",
			body:       `<p></p>`,
			wantStatus: 400,
			wantBody:   "unknown format \"toml\"\n",
		},
		{
			name:        "methodNotAllowed",
			method:      "GET",
			url:         "/",
			wantStatus:  405,
			wantBody:    "Method Not Allowed\n",
			wantHeaders: map[string]string{"Allow": "POST, PUT"},
		},
		{
			name:       "tooLarge",
			method:     "POST",
			url:        "/",
			body:       strings.Repeat("<p>", 100),
			handler:    &Handler{MaxBodyBytes: 64},
			wantStatus: 413,
			wantBody:   "Request Entity Too Large\n",
		},
		{
			name:       "maxDepth",
			method:     "POST",
			url:        "/?format=d",
			body:       `<a><b>x</b></a>`,
			handler:    &Handler{MaxDepth: 1},
			wantStatus: 200,
			wantBody:   "| <a>\n|   <b>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			h := tt.handler
			if h == nil {
				h = &Handler{}
			}
			h.OnError = func(r *http.Request, handlerErr error) { err = handlerErr }

			req := httptest.NewRequest(tt.method, tt.url, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, rr.Code)
			require.Equal(t, tt.wantBody, rr.Body.String())
			if tt.wantType != "" {
				require.Equal(t, tt.wantType, rr.Header().Get("Content-Type"))
			}
			for k, v := range tt.wantHeaders {
				require.Equal(t, v, rr.Header().Get(k), k)
			}
		})
	}
}

func TestHandler_strict(t *testing.T) {
	h := &Handler{Strict: true}

	req := httptest.NewRequest("POST", "/?name=page.html", strings.NewReader("<div>\n  <1>\n</div>"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var report ErrorReport
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.Len(t, report.Errors, 1)

	e := report.Errors[0]
	require.Equal(t, "malformed opening tag at position 8", e.Message)
	require.Equal(t, 2, e.Line)
	require.Equal(t, 3, e.Column)
	require.Equal(t, 8, e.Offset)
	require.NotNil(t, e.Source)
	require.Len(t, e.Source.Lines, 3)
	require.Equal(t, "  <1>", e.Source.Lines[1].Text)

	// Warnings alone pass.
	req = httptest.NewRequest("POST", "/", strings.NewReader("<div>"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_websocket(t *testing.T) {
	srv := httptest.NewServer(&Handler{})
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?format=dump"
	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer ws.Close()

	for _, tc := range []struct {
		doc  string
		want string
	}{
		{`<p>one</p>`, "| <p>\n|   \"one\"\n"},
		{`<br><!-- two -->`, "| <br>\n| <!--  two  -->\n"},
	} {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(tc.doc)))

		typ, msg, err := ws.ReadMessage()
		require.NoError(t, err)
		require.Equal(t, websocket.TextMessage, typ)
		require.Equal(t, tc.want, string(msg))
	}

	err = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	require.NoError(t, err)
}
