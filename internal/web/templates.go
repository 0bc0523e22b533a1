package web

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/analytics"
)

var funcMap = template.FuncMap{
	"currency": analytics.FormatCurrency,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("2006-01-02")
	},
}

var pageTmpls = map[string]*template.Template{
	"dashboard": template.Must(template.New("dashboard").Funcs(funcMap).Parse(dashboardHTML)),
}

func renderPage(w http.ResponseWriter, name string, data map[string]any) {
	tmpl, ok := pageTmpls[name]
	if !ok {
		http.Error(w, "unknown page: "+name, http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

const headHTML = `<!DOCTYPE html>
<html lang="en" class="dark">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>HR Dashboard</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.9"></script>
    <style>body { background-color: #0f172a; color: #e2e8f0; }</style>
</head>
<body class="min-h-screen">
<nav class="bg-gray-900 border-b border-gray-700 px-6 py-4">
    <div class="flex items-center justify-between max-w-7xl mx-auto">
        <div class="flex items-center space-x-2">
            <span class="text-xl font-bold text-white">People Analytics</span>
            <span class="text-xs bg-gray-700 text-gray-300 px-2 py-1 rounded">Dashboard</span>
        </div>
        <div class="flex space-x-4">
            <a href="/" class="px-3 py-2 rounded hover:bg-gray-800 text-white">Overview</a>
            <button id="chat-toggle" class="px-3 py-2 rounded bg-indigo-700 hover:bg-indigo-600 text-white">Assistant</button>
        </div>
    </div>
</nav>
<main class="max-w-7xl mx-auto px-6 py-8">`

const footHTML = `</main>
</body>
</html>`

const kpiHTML = `
<div class="grid grid-cols-2 md:grid-cols-6 gap-4 mb-8">
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Active Headcount</div>
        <div class="text-2xl font-bold text-white">{{.Snapshot.Headcount}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Terminated</div>
        <div class="text-2xl font-bold text-red-400">{{.Snapshot.Terminated}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Payroll</div>
        <div class="text-2xl font-bold text-green-400">{{currency .Snapshot.Payroll}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Total Monthly Cost</div>
        <div class="text-2xl font-bold text-green-400">{{currency .Snapshot.TotalCost}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Average Age</div>
        <div class="text-2xl font-bold text-white">{{.Snapshot.AverageAge}}</div>
    </div>
    <div class="bg-gray-900 border border-gray-700 rounded-lg p-5">
        <div class="text-gray-400 text-sm mb-1">Average Rating</div>
        <div class="text-2xl font-bold text-white">{{.Snapshot.AverageRating}}</div>
    </div>
</div>`

const filterHTML = `
<form method="GET" action="/" class="bg-gray-900 border border-gray-700 rounded-lg p-6 mb-8">
    <h2 class="text-lg font-semibold mb-4">Filters</h2>
    <div class="grid grid-cols-2 md:grid-cols-5 gap-4 mb-4">
        <div>
            <label class="block text-sm text-gray-400 mb-1">Department</label>
            <select name="department" multiple size="4" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                {{range .Options.Departments}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Role</label>
            <select name="role" multiple size="4" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                {{range .Options.Roles}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Level</label>
            <select name="level" multiple size="4" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                {{range .Options.Levels}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Sex</label>
            <select name="sex" multiple size="4" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                {{range .Options.Sexes}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Status</label>
            <select name="status" multiple size="4" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                {{range .Options.Statuses}}<option value="{{.}}">{{.}}</option>{{end}}
            </select>
        </div>
    </div>
    <div class="grid grid-cols-2 md:grid-cols-6 gap-4 mb-4">
        <div>
            <label class="block text-sm text-gray-400 mb-1">Name contains</label>
            <input type="text" name="name" value="{{.Criteria.NameContains}}" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Age {{.Options.AgeMin}}–{{.Options.AgeMax}}</label>
            <div class="flex gap-1">
                <input type="number" name="min_age" placeholder="min" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                <input type="number" name="max_age" placeholder="max" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
            </div>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Salary range</label>
            <div class="flex gap-1">
                <input type="number" step="0.01" name="min_salary" placeholder="min" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                <input type="number" step="0.01" name="max_salary" placeholder="max" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
            </div>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Hired from / to</label>
            <div class="flex gap-1">
                <input type="date" name="hired_from" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                <input type="date" name="hired_to" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
            </div>
        </div>
        <div>
            <label class="block text-sm text-gray-400 mb-1">Terminated from / to</label>
            <div class="flex gap-1">
                <input type="date" name="terminated_from" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
                <input type="date" name="terminated_to" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
            </div>
        </div>
        <div class="flex items-end gap-2">
            <button type="submit" class="bg-indigo-700 hover:bg-indigo-600 text-white rounded px-4 py-1.5 text-sm">Apply</button>
            <a href="/" class="bg-gray-700 hover:bg-gray-600 text-white rounded px-4 py-1.5 text-sm">Reset</a>
        </div>
    </div>
</form>`

const chartsHTML = `
<div class="grid grid-cols-1 md:grid-cols-2 gap-6 mb-8" id="charts-grid"></div>
<script>
const chartConfigs = {{.ChartsJSON}};
const grid = document.getElementById('charts-grid');
for (const cfg of chartConfigs) {
    const card = document.createElement('div');
    card.className = 'bg-gray-900 border border-gray-700 rounded-lg p-6';
    card.innerHTML = '<h3 class="text-sm font-semibold text-gray-300 mb-4">' + cfg.title + '</h3><canvas id="' + cfg.id + '"></canvas>';
    grid.appendChild(card);
    new Chart(document.getElementById(cfg.id), {
        type: cfg.type,
        data: {
            labels: cfg.labels,
            datasets: [{ data: cfg.values, backgroundColor: cfg.colors, borderWidth: 0 }]
        },
        options: {
            plugins: { legend: { display: cfg.type === 'pie', labels: { color: '#94a3b8' } } },
            scales: cfg.type === 'pie' ? {} : {
                x: { ticks: { color: '#94a3b8' }, grid: { color: '#1e293b' } },
                y: { ticks: { color: '#94a3b8' }, grid: { color: '#1e293b' } }
            }
        }
    });
}
</script>`

const tableHTML = `
<div class="bg-gray-900 border border-gray-700 rounded-lg p-6 mb-8">
    <div class="flex items-center justify-between mb-4">
        <h2 class="text-lg font-semibold">Employees <span class="text-sm text-gray-400">({{.RowCount}} matching)</span></h2>
        <div class="flex gap-2">
            <a href="/api/export?format=csv&{{.Query}}" class="bg-gray-700 hover:bg-gray-600 text-white rounded px-4 py-1.5 text-sm">Export CSV</a>
            <a href="/api/export?format=xlsx&{{.Query}}" class="bg-gray-700 hover:bg-gray-600 text-white rounded px-4 py-1.5 text-sm">Export XLSX</a>
        </div>
    </div>
    <div class="overflow-x-auto">
        <table class="w-full text-sm text-left">
            <thead class="text-gray-400 border-b border-gray-700">
                <tr>
                    <th class="py-2 pr-4">Name</th>
                    <th class="py-2 pr-4">Department</th>
                    <th class="py-2 pr-4">Role</th>
                    <th class="py-2 pr-4">Level</th>
                    <th class="py-2 pr-4">Status</th>
                    <th class="py-2 pr-4">Hired</th>
                    <th class="py-2 pr-4">Age</th>
                    <th class="py-2 pr-4 text-right">Base Salary</th>
                    <th class="py-2 pr-4 text-right">Monthly Cost</th>
                    <th class="py-2 text-right">Rating</th>
                </tr>
            </thead>
            <tbody>
                {{range .Rows}}
                <tr class="border-b border-gray-800 hover:bg-gray-800">
                    <td class="py-2 pr-4 text-white">{{.FullName}}</td>
                    <td class="py-2 pr-4">{{.Department}}</td>
                    <td class="py-2 pr-4">{{.Role}}</td>
                    <td class="py-2 pr-4">{{.Level}}</td>
                    <td class="py-2 pr-4">{{if eq .Status "Active"}}<span class="text-green-400">{{.Status}}</span>{{else}}<span class="text-red-400">{{.Status}}</span>{{end}}</td>
                    <td class="py-2 pr-4">{{date .HireDate}}</td>
                    <td class="py-2 pr-4">{{.Age}}</td>
                    <td class="py-2 pr-4 text-right">{{currency .BaseSalary}}</td>
                    <td class="py-2 pr-4 text-right">{{currency .TotalMonthlyCost}}</td>
                    <td class="py-2 text-right">{{.Rating}}</td>
                </tr>
                {{else}}
                <tr><td colspan="10" class="py-6 text-center text-gray-500">No employees match the current filters.</td></tr>
                {{end}}
            </tbody>
        </table>
    </div>
    {{if .Truncated}}<p class="text-xs text-gray-500 mt-3">Showing the first {{len .Rows}} rows. Exports include every matching row.</p>{{end}}
</div>`

const chatHTML = `
<div id="chat-panel" class="hidden fixed bottom-6 right-6 w-96 bg-gray-900 border border-gray-700 rounded-lg shadow-xl flex flex-col" style="height: 32rem;">
    <div class="px-4 py-3 border-b border-gray-700 flex items-center justify-between">
        <span class="font-semibold text-white">HR Assistant</span>
        <button id="chat-close" class="text-gray-400 hover:text-white">&times;</button>
    </div>
    <div id="chat-auth" class="p-4 space-y-2">
        <input id="chat-user" type="text" placeholder="Username" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
        <input id="chat-pass" type="password" placeholder="Password" class="w-full bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
        <div class="flex gap-2">
            <button id="chat-login" class="flex-1 bg-indigo-700 hover:bg-indigo-600 text-white rounded px-3 py-1.5 text-sm">Log in</button>
            <button id="chat-signup" class="flex-1 bg-gray-700 hover:bg-gray-600 text-white rounded px-3 py-1.5 text-sm">Sign up</button>
        </div>
        <p id="chat-auth-error" class="text-xs text-red-400"></p>
    </div>
    <div id="chat-messages" class="hidden flex-1 overflow-y-auto p-4 space-y-3 text-sm"></div>
    <form id="chat-form" class="hidden p-3 border-t border-gray-700 flex gap-2">
        <input id="chat-input" type="text" placeholder="Ask about the team…" class="flex-1 bg-gray-800 border border-gray-700 rounded px-2 py-1 text-sm">
        <button type="submit" id="chat-send" class="bg-indigo-700 hover:bg-indigo-600 disabled:opacity-50 text-white rounded px-3 py-1 text-sm">Send</button>
    </form>
</div>
<script>
(function () {
    const panel = document.getElementById('chat-panel');
    const authBox = document.getElementById('chat-auth');
    const messages = document.getElementById('chat-messages');
    const form = document.getElementById('chat-form');
    const input = document.getElementById('chat-input');
    const sendBtn = document.getElementById('chat-send');
    let chatID = null;

    document.getElementById('chat-toggle').onclick = () => {
        panel.classList.toggle('hidden');
        if (localStorage.getItem('token')) showChat();
    };
    document.getElementById('chat-close').onclick = () => panel.classList.add('hidden');

    function showChat() {
        authBox.classList.add('hidden');
        messages.classList.remove('hidden');
        form.classList.remove('hidden');
    }

    function bubble(sender, text) {
        const div = document.createElement('div');
        if (sender === 'user') {
            div.className = 'bg-indigo-900 rounded-lg px-3 py-2 ml-8 text-white';
        } else if (sender === 'system') {
            div.className = 'bg-gray-800 border border-yellow-700 rounded-lg px-3 py-2 text-yellow-300';
        } else {
            div.className = 'bg-gray-800 rounded-lg px-3 py-2 mr-8 text-gray-200';
        }
        div.textContent = text;
        messages.appendChild(div);
        messages.scrollTop = messages.scrollHeight;
        return div;
    }

    async function authenticate(path) {
        const body = JSON.stringify({
            user_id: document.getElementById('chat-user').value,
            password: document.getElementById('chat-pass').value
        });
        const res = await fetch(path, { method: 'POST', headers: { 'Content-Type': 'application/json' }, body });
        if (!res.ok) {
            document.getElementById('chat-auth-error').textContent = await res.text();
            return;
        }
        if (path.endsWith('/signup')) return authenticate('/api/login');
        const data = await res.json();
        localStorage.setItem('token', data.token);
        showChat();
    }
    document.getElementById('chat-login').onclick = () => authenticate('/api/login');
    document.getElementById('chat-signup').onclick = () => authenticate('/api/signup');

    function authHeaders() {
        return { 'Authorization': 'Bearer ' + localStorage.getItem('token'), 'Content-Type': 'application/json' };
    }

    async function ensureChat() {
        if (chatID) return chatID;
        const res = await fetch('/api/chats', { method: 'POST', headers: authHeaders() });
        if (!res.ok) throw new Error('could not create chat');
        const data = await res.json();
        chatID = data.id;
        return chatID;
    }

    form.onsubmit = async (e) => {
        e.preventDefault();
        const text = input.value.trim();
        if (!text) return;
        input.value = '';
        sendBtn.disabled = true;
        bubble('user', text);
        try {
            const id = await ensureChat();
            const url = '/api/chats/' + id + '/stream?message=' + encodeURIComponent(text);
            const res = await fetch(url, { headers: authHeaders() });
            if (!res.ok) throw new Error(await res.text());
            const reply = bubble('model', '');
            const reader = res.body.getReader();
            const decoder = new TextDecoder();
            let buf = '';
            while (true) {
                const { done, value } = await reader.read();
                if (done) break;
                buf += decoder.decode(value, { stream: true });
                let idx;
                while ((idx = buf.indexOf('\n\n')) >= 0) {
                    const frame = buf.slice(0, idx);
                    buf = buf.slice(idx + 2);
                    handleFrame(frame, reply);
                }
            }
        } catch (err) {
            bubble('system', 'Request failed: ' + err.message);
        } finally {
            sendBtn.disabled = false;
        }
    };

    function handleFrame(frame, reply) {
        let event = 'message', data = '';
        for (const line of frame.split('\n')) {
            if (line.startsWith('event: ')) event = line.slice(7);
            else if (line.startsWith('data: ')) data += line.slice(6);
        }
        if (!data) return;
        const payload = JSON.parse(data);
        if (event === 'delta') {
            reply.textContent += payload.text;
        } else if (event === 'done') {
            if (payload.sender === 'system') {
                reply.remove();
                bubble('system', payload.content);
            } else {
                reply.textContent = payload.content;
            }
        } else if (event === 'error') {
            reply.remove();
            bubble('system', payload.error);
        }
        messages.scrollTop = messages.scrollHeight;
    }
})();
</script>`

const dashboardHTML = headHTML + `
<h1 class="text-2xl font-bold mb-6">Workforce Overview</h1>
` + kpiHTML + filterHTML + chartsHTML + tableHTML + chatHTML + footHTML
