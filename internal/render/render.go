// Package render formats user records as Telegram HTML.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"time"

	"github.com/luminohq/lumino-bot/internal/store"
)

const (
	noName    = "(no name)"
	noEmail   = "(no email)"
	unknownAt = "(unknown)"
)

// UserDetail renders the full detail block for one user, merging the profile
// with its login record when one exists.
func UserDetail(user store.UserProfile, login store.LoginRecord, hasLogin bool) string {
	email := noEmail
	created := unknownAt
	if hasLogin {
		if login.Email != "" {
			email = html.EscapeString(login.Email)
		}
		if !login.CreatedAt.IsZero() {
			created = login.CreatedAt.UTC().Format(time.RFC3339)
		}
	}

	return fmt.Sprintf(
		"<blockquote>🧑 Name: %s</blockquote>\n"+
			"📧 Email: %s\n"+
			"🆔 UUID: <code>%s</code>\n\n"+
			"📂 user_logins → Created: %s\n"+
			"📂 users_profile → Approved: %s\n\n"+
			"📝 Full Profile:\n<pre>%s</pre>",
		displayName(user), email, html.EscapeString(user.ID),
		created, approvedMark(user.Approved), profileJSON(user),
	)
}

// CompactUser renders one row of the /showall listing.
func CompactUser(user store.UserProfile) string {
	return fmt.Sprintf(
		"🧑 <b>%s</b>\n"+
			"✅ Approved: %s\n"+
			"📎 <code>/show %s</code>\n"+
			"───────────────",
		displayName(user), approvedMark(user.Approved), html.EscapeString(user.ID),
	)
}

// LoginAlert renders the broadcast notification for a newly observed login.
func LoginAlert(user store.UserProfile, login store.LoginRecord) string {
	email := noEmail
	if login.Email != "" {
		email = html.EscapeString(login.Email)
	}
	created := unknownAt
	if !login.CreatedAt.IsZero() {
		created = login.CreatedAt.UTC().Format(time.RFC3339)
	}

	return fmt.Sprintf(
		"🆕 New User Logged In\n\n"+
			"🧑 Name: %s\n"+
			"📧 Email: %s\n"+
			"🆔 UUID: <code>%s</code>\n\n"+
			"📂 user_logins → Created: %s\n"+
			"📂 users_profile → Approved: %s\n\n"+
			"🔎 Use <code>/show %s</code> to review.",
		displayName(user), email, html.EscapeString(login.ID),
		created, approvedMark(user.Approved), html.EscapeString(login.ID),
	)
}

// PageFooter renders the "Page x/y" caption under a listing.
func PageFooter(pageIndex, totalPages int) string {
	return fmt.Sprintf("📄 Page %d/%d", pageIndex+1, totalPages)
}

// ToggleButtonLabel names the approval toggle button after the state it will
// set, the inverse of the current one.
func ToggleButtonLabel(approved bool) string {
	if approved {
		return "Set to ❌ False"
	}
	return "Set to ✅ True"
}

func displayName(user store.UserProfile) string {
	if user.Name == "" {
		return noName
	}
	return html.EscapeString(user.Name)
}

func approvedMark(approved bool) string {
	if approved {
		return "✅"
	}
	return "❌"
}

func profileJSON(user store.UserProfile) string {
	if len(user.Attributes) == 0 {
		return "{}"
	}
	raw, err := json.MarshalIndent(user.Attributes, "", "  ")
	if err != nil {
		return "{}"
	}
	return html.EscapeString(string(raw))
}
