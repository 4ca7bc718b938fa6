package demo

// indexPage is the single demo page: a profile form backed by a draft
// cell over the websocket, plus an admin box that rewrites the shared
// defaults.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>tether demo</title>
<style>
  body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
  fieldset { margin-bottom: 1.5rem; }
  label { display: block; margin: .5rem 0; }
  #status { font-weight: bold; }
  .attached { color: green; }
  .severed { color: #b00; }
</style>
</head>
<body>
<h1>tether demo</h1>
<p>Tether state: <span id="status">connecting…</span>
   <label><input type="checkbox" id="keep"> sever on local edit (reconnects)</label></p>

<fieldset>
  <legend>Your draft (local cell)</legend>
  <label>Name <input id="name" data-field="name"></label>
  <label>Theme <input id="theme" data-field="theme"></label>
  <label>Language <input id="language" data-field="language"></label>
  <button id="reset">Reset to defaults</button>
</fieldset>

<fieldset>
  <legend>Server defaults (shared source)</legend>
  <label>Name <input id="d-name"></label>
  <label>Theme <input id="d-theme"></label>
  <label>Language <input id="d-language"></label>
  <button id="apply">Apply defaults</button>
</fieldset>

<script>
let ws;
function connect() {
  const keep = document.getElementById('keep').checked ? '1' : '0';
  ws = new WebSocket('ws://' + location.host + '/ws?keep=' + keep);
  ws.onmessage = (ev) => {
    const st = JSON.parse(ev.data);
    for (const f of ['name', 'theme', 'language']) {
      const el = document.getElementById(f);
      if (document.activeElement !== el) el.value = st.value[f];
    }
    const s = document.getElementById('status');
    s.textContent = st.watching ? 'attached' : 'severed';
    s.className = st.watching ? 'attached' : 'severed';
  };
  ws.onclose = () => setTimeout(connect, 500);
}
connect();

document.getElementById('keep').onchange = () => ws.close();
document.getElementById('reset').onclick = () => ws.send(JSON.stringify({type: 'reset'}));
for (const el of document.querySelectorAll('[data-field]')) {
  el.oninput = () => ws.send(JSON.stringify({type: 'set', field: el.dataset.field, value: el.value}));
}
document.getElementById('apply').onclick = async () => {
  await fetch('/defaults', {method: 'POST', headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      name: document.getElementById('d-name').value,
      theme: document.getElementById('d-theme').value,
      language: document.getElementById('d-language').value,
    })});
};
</script>
</body>
</html>
`
