package httpapi

import (
	"html/template"

	"loginattendance/internal/session"
)

type pageData struct {
	View session.View
	Rows template.HTML
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Attendance Login</title>
<style>
  body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
  .success { color: green; } .error { color: red; }
  .hidden { display: none; }
  table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
  td, th { border: 1px solid #ccc; padding: .3rem .6rem; text-align: left; }
</style>
</head>
<body>
<h1>Attendance Login</h1>
<form id="loginForm">
  <input id="username" name="username" placeholder="Username" value="{{.View.Inputs.Username}}" required>
  <input id="password" name="password" type="password" placeholder="Password" required>
  <button type="submit">Login</button>
</form>
<p id="message" class="{{.View.Status.Tone}}{{if not .View.Status.Visible}} hidden{{end}}">{{.View.Status.Text}}</p>
<p id="timestamp">{{.View.LoginTime}}</p>
<p id="attendanceStatus" class="success">{{.View.AttendanceStatus}}</p>
<button id="downloadBtn" class="{{if not .View.ShowDownload}}hidden{{end}}">Download Attendance</button>
<button id="logoutBtn" class="{{if not .View.ShowLogout}}hidden{{end}}">Logout</button>
<table id="attendanceTable">
  <thead><tr><th>Username</th><th>Login Time</th></tr></thead>
  <tbody>{{.Rows}}</tbody>
</table>
<audio id="beep" src="/static/beep.mp3" preload="auto"></audio>
<script>
(function () {
  var $ = function (id) { return document.getElementById(id); };

  function show(el, visible) { el.classList.toggle("hidden", !visible); }

  function applyView(v) {
    var msg = $("message");
    msg.textContent = v.status.text;
    msg.className = v.status.tone || "";
    show(msg, v.status.visible);
    $("timestamp").textContent = v.login_time;
    $("attendanceStatus").textContent = v.attendance_status;
    show($("downloadBtn"), v.show_download);
    show($("logoutBtn"), v.show_logout);
    if (!v.inputs.username) {
      $("username").value = "";
      $("password").value = "";
    }
  }

  function beep() {
    var a = $("beep");
    if (a && a.play) { a.play().catch(function () {}); }
  }

  $("loginForm").addEventListener("submit", function (e) {
    e.preventDefault();
    fetch("/login", { method: "POST", body: new URLSearchParams(new FormData(e.target)) })
      .then(function (r) { return r.json(); })
      .then(function (body) {
        if (body.view) { applyView(body.view); }
        if (body.alert && ws.readyState !== WebSocket.OPEN) { beep(); }
        if (body.error) { window.alert(body.error); }
      });
  });

  $("downloadBtn").addEventListener("click", function () {
    fetch("/attendance.csv").then(function (r) {
      if (!r.ok) {
        return r.json().then(function (body) { window.alert(body.notice || body.error); });
      }
      return r.blob().then(function (blob) {
        var link = document.createElement("a");
        link.href = URL.createObjectURL(blob);
        link.download = "attendance_summary.csv";
        link.click();
      });
    });
  });

  $("logoutBtn").addEventListener("click", function () {
    fetch("/logout", { method: "POST" })
      .then(function (r) { return r.json(); })
      .then(function (body) { applyView(body.view); });
  });

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function (m) {
    var evt = JSON.parse(m.data);
    if (evt.type === "table") {
      document.querySelector("#attendanceTable tbody").innerHTML = evt.data.html;
    } else if (evt.type === "view") {
      applyView(evt.data);
    } else if (evt.type === "alert") {
      beep();
    }
  };
})();
</script>
</body>
</html>
`))
