package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/vango-dev/reconciler/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the resolved node tree for the page content.
	Body *vdom.Node

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Styles contains inline CSS styles.
	Styles []string

	// StreamPath is the WebSocket endpoint of a stream target. When set,
	// the page reloads its body whenever a commit frame arrives.
	StreamPath string

	// ClickPath is the URL prefix clicks are posted to, followed by the
	// clicked element's id. Only elements with an id and a click handler
	// are wired.
	ClickPath string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(bw, `<html lang="%s">`+"\n", escapeAttr(lang))
	bw.WriteString("<head>\n")
	bw.WriteString(`<meta charset="utf-8">` + "\n")
	if page.Title != "" {
		fmt.Fprintf(bw, "<title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, css := range page.Styles {
		fmt.Fprintf(bw, "<style>%s</style>\n", css)
	}
	bw.WriteString("</head>\n<body>\n")

	if err := r.renderNode(bw, page.Body, 0); err != nil {
		return err
	}
	if !r.config.Pretty {
		bw.WriteByte('\n')
	}

	if page.StreamPath != "" || page.ClickPath != "" {
		fmt.Fprintf(bw, `<script data-stream="%s" data-click="%s">%s</script>`+"\n",
			escapeAttr(page.StreamPath), escapeAttr(page.ClickPath), clientScript)
	}
	bw.WriteString("</body>\n</html>\n")
	return bw.Flush()
}

// clientScript wires clicks and refreshes the body on commits.
const clientScript = `
(function() {
    'use strict';
    var script = document.currentScript;
    var streamPath = script.dataset.stream;
    var clickPath = script.dataset.click;

    function refresh() {
        fetch(location.href).then(function(res) { return res.text(); }).then(function(html) {
            var doc = new DOMParser().parseFromString(html, 'text/html');
            var next = doc.body.firstElementChild;
            var cur = document.body.firstElementChild;
            if (next && cur) { cur.replaceWith(next); }
        });
    }

    if (clickPath) {
        document.addEventListener('click', function(e) {
            var el = e.target.closest('[data-on~="click"][id]');
            if (!el) { return; }
            e.preventDefault();
            fetch(clickPath + encodeURIComponent(el.id), {method: 'POST'}).then(function() {
                if (!streamPath) { refresh(); }
            });
        });
    }

    if (streamPath) {
        var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(proto + '//' + location.host + streamPath);
        var pending = false;
        ws.binaryType = 'arraybuffer';
        ws.onmessage = function() {
            if (pending) { return; }
            pending = true;
            setTimeout(function() { pending = false; refresh(); }, 16);
        };
    }
})();
`
