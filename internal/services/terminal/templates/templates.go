// Package templates renders the terminal page shell. The page is a
// static scaffold; every dynamic element is driven by the WebSocket
// client in the static assets.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/miragecorp/mirageos/internal/platform/branding"
)

// Index returns the terminal page.
func Index() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, indexHTML,
			templ.EscapeString(branding.AppName),
			templ.EscapeString(branding.AppName),
			templ.EscapeString(branding.Version),
			templ.EscapeString(branding.CorpName),
		)
		return err
	})
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s Terminal</title>
<link rel="stylesheet" href="/static/terminal.css">
</head>
<body>
<div id="desktop" class="crt">
  <div id="terminal-container">
    <div id="terminal-header">
      <span id="terminal-title">%s v%s &mdash; %s secure shell</span>
    </div>
    <div id="terminal-output"></div>
    <div id="terminal-input-line">
      <span id="prompt"></span>
      <input type="text" id="command-input" autocomplete="off" spellcheck="false" autofocus>
    </div>
  </div>

  <div id="taskbar">
    <div id="vpn-toggle" class="taskbar-item clickable">VPN: <span id="vpn-status">OFF</span></div>
    <div id="wifi-panel-button" class="taskbar-item clickable">WiFi: <span id="wifi-name">MirageNet</span></div>
    <div id="chat-button" class="taskbar-item clickable">CHAT<span id="chat-notification" class="notification-badge hidden"></span></div>
    <div id="clock" class="taskbar-item"></div>
  </div>

  <div id="chat-panel" class="side-panel hidden">
    <div class="panel-header">
      <span>MirageNet Encrypted Chatroom</span>
      <button class="close-panel" data-panel="chat-panel">&times;</button>
    </div>
    <div id="chat-messages"></div>
    <div class="chat-input">
      <input type="text" id="chat-message-input" placeholder="Type your message..." autocomplete="off">
      <button id="chat-send-button">Send</button>
    </div>
  </div>

  <div id="wifi-settings-panel" class="side-panel hidden">
    <div class="panel-header">
      <span>WiFi Networks</span>
      <button class="close-panel" data-panel="wifi-settings-panel">&times;</button>
    </div>
    <div class="wifi-network selected">MirageNet</div>
    <div class="wifi-network">CoffeeShop_Free</div>
    <div class="wifi-network">FBI-Surveillance-Van</div>
  </div>

  <div id="takeover" class="hidden">
    <div id="takeover-content"></div>
  </div>
</div>
<script src="/static/terminal.js"></script>
</body>
</html>
`
