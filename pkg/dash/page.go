package dash

import "github.com/gofiber/fiber/v2"

// handleIndex serves the inline dashboard page. It is a single file so
// the binaries stay self-contained.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(indexPage)
}

const indexPage = `<!DOCTYPE html>
<html>
<head>
<title>voicedesk</title>
<style>
body { background:#1e1e2e; color:#cdd6f4; font-family:ui-monospace,monospace; margin:0; padding:20px; }
h1 { font-size:18px; color:#89b4fa; }
.row { display:flex; gap:20px; }
.panel { background:#181825; border:1px solid #313244; border-radius:8px; padding:14px; margin-bottom:16px; }
.status { flex:0 0 320px; }
.log { flex:1; height:420px; overflow-y:auto; font-size:13px; }
.log div { padding:1px 0; }
.k-RECOGNIZED { color:#a6e3a1; }
.k-ERROR, .k-FATAL_ERROR { color:#f38ba8; }
.k-STATUS { color:#89b4fa; }
.k-INFO, .k-COMMAND { color:#f9e2af; }
dt { color:#6c7086; font-size:12px; margin-top:8px; }
dd { margin:0; }
.dot { display:inline-block; width:10px; height:10px; border-radius:5px; margin-right:6px; }
.ok { background:#a6e3a1; } .bad { background:#f38ba8; }
input { background:#11111b; color:#cdd6f4; border:1px solid #313244; border-radius:4px; padding:6px; width:70%; }
button { background:#313244; color:#cdd6f4; border:0; border-radius:4px; padding:6px 12px; cursor:pointer; }
button:hover { background:#45475a; }
</style>
</head>
<body>
<h1>voicedesk <span id="app"></span></h1>
<div class="row">
  <div class="panel status">
    <dl>
      <dt>listener</dt><dd><span id="alive" class="dot bad"></span><span id="stage">-</span></dd>
      <dt>calibrated</dt><dd id="calibrated">-</dd>
      <dt>last heard</dt><dd id="last_heard">-</dd>
      <dt>last command</dt><dd id="last_command">-</dd>
      <dt>extra</dt><dd id="extra">-</dd>
    </dl>
    <form id="sayform">
      <input id="saytext" placeholder="type instead of speaking" autocomplete="off">
      <button>say</button>
    </form>
    <p>
      <button onclick="feedback('correct')">correct</button>
      <button onclick="feedback('incorrect')">wrong</button>
      <button onclick="next()">next round</button>
    </p>
  </div>
  <div class="panel log" id="log"></div>
</div>
<script>
const proto = location.protocol === 'https:' ? 'wss' : 'ws';
const statusWS = new WebSocket(proto + '://' + location.host + '/ws/status');
const logWS = new WebSocket(proto + '://' + location.host + '/ws/log');

statusWS.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type !== 'status') return;
  const d = msg.data;
  document.getElementById('app').textContent = d.app || '';
  document.getElementById('alive').className = 'dot ' + (d.alive ? 'ok' : 'bad');
  document.getElementById('stage').textContent = d.stage || '-';
  document.getElementById('calibrated').textContent = d.calibrated ? 'yes' : 'no';
  document.getElementById('last_heard').textContent = d.last_heard || '-';
  document.getElementById('last_command').textContent = d.last_command || '-';
  const extra = [];
  if (d.game_state) extra.push(d.game_state + ' score ' + (d.score||0) + ' hp ' + (d.health||0));
  if (d.round) extra.push('round ' + d.round + ' acc ' + (d.accuracy||0).toFixed(1) + '%');
  if (d.scenario) extra.push(d.scenario + ' → ' + (d.decision||'?'));
  if (d.face) extra.push('face: ' + d.face + (d.speaking ? ' (speaking)' : ''));
  document.getElementById('extra').textContent = extra.join(' | ') || '-';
};

logWS.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type !== 'log') return;
  const line = document.createElement('div');
  line.className = 'k-' + msg.data.kind;
  line.textContent = msg.data.text;
  const pane = document.getElementById('log');
  pane.appendChild(line);
  pane.scrollTop = pane.scrollHeight;
};

document.getElementById('sayform').onsubmit = (ev) => {
  ev.preventDefault();
  const text = document.getElementById('saytext').value.trim();
  if (!text) return;
  statusWS.send(JSON.stringify({type:'say', data:{text:text}}));
  document.getElementById('saytext').value = '';
};

function feedback(verdict) {
  let action = '';
  if (verdict === 'incorrect') {
    action = prompt('correct action (pick_up_red / pick_up_blue / ignore_object)') || '';
    if (!action) return;
  }
  statusWS.send(JSON.stringify({type:'feedback', data:{verdict:verdict, action:action}}));
}

function next() {
  statusWS.send(JSON.stringify({type:'next'}));
}
</script>
</body>
</html>
`
