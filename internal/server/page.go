package server

import "net/http"

// Home serves the built-in chat page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(chatPage))
}

const chatPage = `<!DOCTYPE html>
<html>
<head>
<title>Warehouse Slotting Assistant</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; }
#log { border: 1px solid #ccc; padding: 1em; height: 400px; overflow-y: auto; white-space: pre-wrap; }
.user { color: #0a5; }
.bot { color: #333; }
form { display: flex; margin-top: 1em; }
input { flex: 1; padding: 0.5em; }
button { padding: 0.5em 1em; margin-left: 0.5em; }
</style>
</head>
<body>
<h1>Warehouse Slotting Assistant</h1>
<p>Try "show me empty slots in zone B", "put the monitor in A-01-01-05", or "help".</p>
<div id="log"></div>
<form id="chat">
<input id="msg" autocomplete="off" placeholder="Ask about the warehouse...">
<button type="submit">Send</button>
</form>
<script>
const log = document.getElementById("log");
const form = document.getElementById("chat");
const input = document.getElementById("msg");
function append(cls, text) {
  const div = document.createElement("div");
  div.className = cls;
  div.textContent = text;
  log.appendChild(div);
  log.scrollTop = log.scrollHeight;
}
form.addEventListener("submit", async (e) => {
  e.preventDefault();
  const msg = input.value.trim();
  if (!msg) return;
  append("user", "> " + msg);
  input.value = "";
  const body = new URLSearchParams({user_message: msg});
  const resp = await fetch("/chat", {method: "POST", body});
  const data = await resp.json();
  append("bot", data.response);
});
</script>
</body>
</html>
`
