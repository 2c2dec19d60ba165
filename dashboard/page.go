package dashboard

import (
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/alexfayers/cc-miner/turtle"
)

// Dashboard serves the read-only live view: one page bootstrapping a
// websocket, and the websocket endpoint itself pushing rendered snapshots.
type Dashboard struct {
	source func() []turtle.Snapshot
}

// New returns a dashboard sourcing its snapshots from source, typically
// supervisor.Supervisor.Snapshots.
func New(source func() []turtle.Snapshot) *Dashboard {
	return &Dashboard{source: source}
}

// Routes registers the dashboard's "/" page and "/ws" push endpoint on r.
// r should be a subrouter dedicated to the dashboard — its "/ws" is
// distinct from the agent-facing supervisor's own "/ws" endpoint.
func (d *Dashboard) Routes(r *mux.Router) {
	r.HandleFunc("/", d.serveIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", d.serveWebsocket)
}

func (d *Dashboard) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := newLiveClient(w, r, d.source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = c.serve(r.Context())
}

func (d *Dashboard) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_ = indexTemplate.Execute(w, nil)
}

// indexTemplate bootstraps the push websocket and renders one <pre> block
// per registered agent, replacing the whole list on every push: there is no
// grid-world state here to diff against, just per-agent text.
var indexTemplate = template.Must(template.New("index").Parse(`
<!DOCTYPE html>
<html>
<head>
	<title>cc-miner</title>
	<link rel="icon" href="data:,">
</head>
<body>
	<div id="agents"></div>
	<script>
		const proto = location.protocol === "https:" ? "wss://" : "ws://";
		const ws = new WebSocket(proto + location.host + location.pathname.replace(/\/$/, "") + "/ws");
		ws.onmessage = function (event) {
			const msg = JSON.parse(event.data);
			if (!Array.isArray(msg)) {
				return;
			}
			const root = document.getElementById("agents");
			root.innerHTML = "";
			for (const agent of msg) {
				const pre = document.createElement("pre");
				pre.id = "agent-" + agent.uid;
				pre.textContent = "Agent " + agent.uid + "\n" + agent.text;
				root.appendChild(pre);
			}
		};
	</script>
</body>
</html>
`))
