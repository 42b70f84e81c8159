package handler

import "github.com/gofiber/fiber/v2"

// Index serves the review page: upload a challan photo, check the extracted
// fields, then submit to the sheet or download the workbook.
func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(reviewPageHTML)
	}
}

const reviewPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Challan Upload</title>
  <style>
    body { font-family: sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; }
    table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
    th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
    th { background: #f2f2f2; }
    input[type=text] { width: 95%; border: none; }
    button { padding: 0.5rem 1rem; margin-right: 0.5rem; }
    #status { margin-top: 1rem; white-space: pre-wrap; }
    .err { color: #b00020; }
    .ok { color: #1b7a1b; }
  </style>
</head>
<body>
  <h1>Challan Upload</h1>
  <form id="upload-form">
    <input type="file" name="image" accept="image/*" required />
    <select name="model" id="model"><option value="">default model</option></select>
    <button type="submit">Extract</button>
  </form>

  <div id="review" style="display:none">
    <h2>Review</h2>
    <p>
      Challan <input type="text" id="challan_number" size="12" style="width:auto;border:1px solid #ccc" />
      Vendor <input type="text" id="vendor_name" size="20" style="width:auto;border:1px solid #ccc" />
      Date <input type="text" id="date" size="12" style="width:auto;border:1px solid #ccc" />
    </p>
    <table id="items">
      <thead><tr><th>Item</th><th>Weight Sent</th><th>Weight Received</th><th>No. of Bags</th><th>Plating Colour</th></tr></thead>
      <tbody></tbody>
    </table>
    <button id="submit-btn">Submit to Sheet</button>
    <button id="export-btn">Download XLSX</button>
  </div>
  <div id="status"></div>

  <script>
    const statusEl = document.getElementById('status');
    const show = (msg, cls) => { statusEl.textContent = msg; statusEl.className = cls || ''; };

    fetch('/models').then(r => r.ok ? r.json() : null).then(body => {
      if (!body) return;
      for (const id of body.models) {
        const opt = document.createElement('option');
        opt.value = id; opt.textContent = id;
        document.getElementById('model').appendChild(opt);
      }
    }).catch(() => {});

    document.getElementById('upload-form').addEventListener('submit', async (e) => {
      e.preventDefault();
      show('Extracting...');
      const resp = await fetch('/extract', { method: 'POST', body: new FormData(e.target) });
      const body = await resp.json();
      if (!resp.ok) { show(body.error.message + (body.error.detail ? '\n' + body.error.detail : ''), 'err'); return; }
      render(body.document);
      show('Review the extracted data, then submit.', 'ok');
    });

    function render(doc) {
      document.getElementById('challan_number').value = doc.challan_info.challan_number || '';
      document.getElementById('vendor_name').value = doc.challan_info.vendor_name || '';
      document.getElementById('date').value = doc.challan_info.date || '';
      const tbody = document.querySelector('#items tbody');
      tbody.innerHTML = '';
      for (const item of doc.table_data || []) {
        const tr = document.createElement('tr');
        for (const key of ['description', 'weight_sent', 'weight_received', 'number_of_bags', 'plating_color']) {
          const td = document.createElement('td');
          const input = document.createElement('input');
          input.type = 'text'; input.value = item[key] || ''; input.dataset.key = key;
          td.appendChild(input); tr.appendChild(td);
        }
        tbody.appendChild(tr);
      }
      document.getElementById('review').style.display = '';
    }

    function collect() {
      const items = [];
      for (const tr of document.querySelectorAll('#items tbody tr')) {
        const item = {};
        for (const input of tr.querySelectorAll('input')) item[input.dataset.key] = input.value;
        items.push(item);
      }
      return {
        challan_info: {
          challan_number: document.getElementById('challan_number').value,
          vendor_name: document.getElementById('vendor_name').value,
          date: document.getElementById('date').value
        },
        table_data: items
      };
    }

    document.getElementById('submit-btn').addEventListener('click', async () => {
      show('Submitting...');
      const resp = await fetch('/submit', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ document: collect() })
      });
      const body = await resp.json();
      if (!resp.ok) { show(body.error.message + (body.error.detail ? '\n' + body.error.detail : ''), 'err'); return; }
      show('Submitted ' + body.rows_submitted + ' row(s).', 'ok');
    });

    document.getElementById('export-btn').addEventListener('click', async () => {
      const resp = await fetch('/export', {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify({ document: collect() })
      });
      if (!resp.ok) { const body = await resp.json(); show(body.error.message, 'err'); return; }
      const blob = await resp.blob();
      const a = document.createElement('a');
      a.href = URL.createObjectURL(blob);
      a.download = (resp.headers.get('Content-Disposition') || '').split('filename=')[1]?.replaceAll('"', '') || 'challan_rows.xlsx';
      a.click();
      URL.revokeObjectURL(a.href);
    });
  </script>
</body>
</html>`
