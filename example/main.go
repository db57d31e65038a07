package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dpotapov/toyhtml"
)

// indexPage sends the textarea content over a WebSocket on every keystroke and shows the
// parse tree that comes back.
const indexPage = `<!DOCTYPE html>
<html>
<head><title>toyhtml</title></head>
<body>
<textarea id="doc" rows="12" cols="80"><div class="note"><p>Hello<br>world</div></textarea>
<pre id="tree"></pre>
<script>
const ws = new WebSocket("ws://" + location.host + "/parse?format=dump");
const doc = document.getElementById("doc");
ws.onmessage = (ev) => { document.getElementById("tree").textContent = ev.data; };
ws.onopen = () => ws.send(doc.value);
doc.addEventListener("input", () => ws.send(doc.value));
</script>
</body>
</html>
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	mux := http.NewServeMux()
	mux.Handle("/parse", &toyhtml.Handler{
		MaxDepth:        256,
		WarnUnknownTags: true,
		OnError:         nil,
		Logger:          logger,
	})
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexPage))
	})

	logger.Info("Starting HTTP server", "address", "http://localhost:8080")

	err := http.ListenAndServe(":8080", toyhtml.LoggerMiddleware(mux, logger))

	logger.Error("HTTP server error", "error", err)
}
